// Package gateway provides the in-memory model of storage-grid gateways.
// This file contains the Gateway and Folder snapshot types.
package gateway

import "time"

// FolderStatus represents the sync state of a magic folder.
type FolderStatus int

const (
	// StatusUnknown indicates no status has been recorded yet.
	StatusUnknown FolderStatus = iota
	// StatusLoading indicates the folder is still being set up.
	StatusLoading
	// StatusSyncing indicates an upload or download is in progress.
	StatusSyncing
	// StatusSynced indicates the folder is up to date.
	StatusSynced
	// StatusError indicates the folder failed to sync.
	StatusError
)

// String returns a human-readable representation of the folder status.
func (s FolderStatus) String() string {
	switch s {
	case StatusUnknown:
		return "Unknown"
	case StatusLoading:
		return "Loading..."
	case StatusSyncing:
		return "Syncing"
	case StatusSynced:
		return "Up to date"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Folder is a snapshot of one magic folder belonging to a gateway.
type Folder struct {
	// Name is the folder's display name.
	Name string
	// Status is the last recorded sync status.
	Status FolderStatus
	// LastSync is when the folder last completed a sync.
	// The zero value means the folder has never synced.
	LastSync time.Time
}

// IsLoading reports whether the folder has not finished loading: either
// it was explicitly marked loading, or no status and no last-sync time
// have been recorded yet.
func (f *Folder) IsLoading() bool {
	if f.Status == StatusLoading {
		return true
	}
	return f.Status == StatusUnknown && f.LastSync.IsZero()
}

// Gateway is a read-only snapshot of one grid connection. Instances are
// created by the external gateway subsystem and referenced by identity;
// the shell never copies or mutates them.
type Gateway struct {
	// Name is the gateway's display name.
	Name string
	// ZKAPAuthRequired indicates the grid requires storage-time tokens.
	ZKAPAuthRequired bool
	// ZKAPsRemaining is the number of unspent storage-time tokens.
	// Only meaningful when ZKAPAuthRequired is true.
	ZKAPsRemaining int
	// MagicFolders is the ordered list of folders synced on this gateway.
	MagicFolders []*Folder
}

// QuotaExhausted reports whether the gateway requires storage-time
// tokens and has none remaining.
func (g *Gateway) QuotaExhausted() bool {
	return g.ZKAPAuthRequired && g.ZKAPsRemaining == 0
}
