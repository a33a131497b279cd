package gateway

import (
	"testing"
	"time"
)

func TestFolderStatus_String(t *testing.T) {
	tests := []struct {
		status   FolderStatus
		expected string
	}{
		{StatusUnknown, "Unknown"},
		{StatusLoading, "Loading..."},
		{StatusSyncing, "Syncing"},
		{StatusSynced, "Up to date"},
		{StatusError, "Error"},
		{FolderStatus(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("FolderStatus.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFolder_IsLoading(t *testing.T) {
	tests := []struct {
		name     string
		folder   Folder
		expected bool
	}{
		{"no status, never synced", Folder{}, true},
		{"explicitly loading", Folder{Status: StatusLoading, LastSync: time.Now()}, true},
		{"no status but synced before", Folder{LastSync: time.Now()}, false},
		{"syncing", Folder{Status: StatusSyncing}, false},
		{"synced", Folder{Status: StatusSynced, LastSync: time.Now()}, false},
		{"errored", Folder{Status: StatusError}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.folder.IsLoading(); got != tt.expected {
				t.Errorf("IsLoading() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGateway_QuotaExhausted(t *testing.T) {
	tests := []struct {
		name     string
		gw       Gateway
		expected bool
	}{
		{"auth not required", Gateway{ZKAPAuthRequired: false}, false},
		{"auth not required, zero remaining", Gateway{ZKAPsRemaining: 0}, false},
		{"required with tokens", Gateway{ZKAPAuthRequired: true, ZKAPsRemaining: 5}, false},
		{"required and exhausted", Gateway{ZKAPAuthRequired: true, ZKAPsRemaining: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.gw.QuotaExhausted(); got != tt.expected {
				t.Errorf("QuotaExhausted() = %v, want %v", got, tt.expected)
			}
		})
	}
}
