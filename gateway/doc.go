// Package gateway provides the in-memory model of storage-grid gateways
// for Grid Manager.
//
// This package implements the data the shell coordinates over:
//
//   - Gateway: A snapshot view of one grid connection (name, quota state,
//     magic folders). Gateways are created and owned by the external
//     gateway subsystem; the shell only reads them and refers to them by
//     pointer identity.
//   - Folder: A magic folder with its sync status and last-sync time.
//   - Registry: The ordered directory of known gateways plus the single
//     "currently selected" gateway.
//
// # Thread Safety
//
// The registry and all snapshot types are owned exclusively by the GTK
// main loop thread. No locking is performed; callers must not share a
// Registry across goroutines.
package gateway
