// Package common provides shared constants, types, and utilities
// used across the Grid Manager application.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "com.gridmanager.app"
	// AppName is the display name of the application.
	AppName = "Grid Manager"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "grid-manager"
)

// File names used by the application.
const (
	PreferencesFileName = "preferences.ini"
	ConfigFileName      = "config.yaml"
	NewscapsFileName    = ".newscaps"
	LogFileName         = "grid-manager.log"
)

// Preference sections and options recognized by the shell.
const (
	// FeaturesSection groups the feature toggles read at startup.
	FeaturesSection = "features"
	// FeatureGridInvites controls the grid-invite toolbar menu.
	FeatureGridInvites = "grid_invites"
	// FeatureInvites controls the plain invite-code control.
	FeatureInvites = "invites"
	// FeatureMultipleGrids controls the grid selector and window titling.
	FeatureMultipleGrids = "multiple_grids"
)

// Default timeouts and intervals.
const (
	// StatusRefreshInterval is how often gateway status snapshots are re-read.
	StatusRefreshInterval = 2 * time.Second
	// TrayUpdateDebounce is the minimum spacing between tray redraws.
	TrayUpdateDebounce = 250 * time.Millisecond
)

// UI constants.
const (
	// DefaultWindowWidth is the default main window width.
	DefaultWindowWidth = 700
	// DefaultWindowHeight is the default main window height.
	DefaultWindowHeight = 450
	// MinWindowWidth is the minimum window width.
	MinWindowWidth = 500
	// MinWindowHeight is the minimum window height.
	MinWindowHeight = 350
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
)
