// Package prefs provides the durable preference store for Grid Manager.
// This file contains the feature toggles read from the "features" section
// at startup.
package prefs

import (
	"errors"
	"strings"

	"github.com/yllada/grid-manager/common"
)

// Features holds the feature toggles that shape the shell at startup.
// Every feature defaults to enabled; only a stored literal "false"
// (case-insensitive) disables one. Absence of the section or option is
// not an error.
type Features struct {
	// GridInvites enables the grid-invite toolbar menu.
	GridInvites bool
	// Invites enables the plain invite-code control. Ignored when
	// GridInvites is enabled, which subsumes it.
	Invites bool
	// MultipleGrids enables the grid selector and per-grid window titles.
	MultipleGrids bool
}

// DefaultFeatures returns the all-enabled feature set.
func DefaultFeatures() Features {
	return Features{
		GridInvites:   true,
		Invites:       true,
		MultipleGrids: true,
	}
}

// LoadFeatures reads the feature toggles from the given store.
// Lookup failures for unset options fall back to the defaults; any other
// store error is returned so a corrupt file does not silently strip
// features.
func LoadFeatures(store *Store) (Features, error) {
	f := DefaultFeatures()

	options := []struct {
		name   string
		target *bool
	}{
		{common.FeatureGridInvites, &f.GridInvites},
		{common.FeatureInvites, &f.Invites},
		{common.FeatureMultipleGrids, &f.MultipleGrids},
	}

	for _, opt := range options {
		value, err := store.Get(common.FeaturesSection, opt.name)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				continue
			}
			return f, err
		}
		if strings.EqualFold(value, "false") {
			*opt.target = false
		}
	}

	return f, nil
}
