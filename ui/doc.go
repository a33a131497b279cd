// Package ui provides the view-state coordination layer for Grid Manager.
//
// The shell binds several independently running storage-grid gateways
// into one window. This package owns the rules behind that window, not
// its widgets:
//
//   - Coordinator: which panel (Folders/History/Storage-time) is active
//     per gateway, and which controls are enabled, derived from gateway
//     status.
//   - Queue: buffering of inbound gateway messages while the window is
//     hidden, surfaced one at a time once it becomes visible.
//   - Guard: classification of a quit attempt by scanning folder sync
//     state across all gateways.
//   - Application: GTK4 application lifecycle wiring the pieces to the
//     rendering front-end, tray indicator, and desktop notifications.
//
// # Architecture
//
// The rendering front-end is a dumb consumer: every operation here is a
// synchronous call returning a value (ViewState, Prompt, ...) that the
// front-end renders. Enablement is recomputed from gateway snapshots on
// every relevant event and never cached.
//
// # Thread Safety
//
// All coordination state is owned by the GTK main loop thread. The one
// deferred operation, displaying a pending notification after the window
// becomes visible, is scheduled with glib.IdleAdd onto the next main
// loop iteration rather than run synchronously inside the show handler.
package ui
