// Package prefs provides the durable preference store for Grid Manager.
// Preferences are simple (section, option) -> value string pairs persisted
// in an INI-syntax file in the application's configuration directory.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/yllada/grid-manager/common"
)

// Store reads and writes preference values from an INI file at a fixed
// location. Every call performs a full load (or load-modify-store) cycle
// against the backing file, so a value written by one Store instance is
// immediately visible to any other, including across process restarts.
type Store struct {
	path string
}

// loadOptions keeps section and option names case-sensitive, matching the
// file format contract.
var loadOptions = ini.LoadOptions{}

// NewStore creates a store bound to the given file path. The file itself
// is created lazily on the first Set.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewDefaultStore creates a store bound to preferences.ini in the
// application configuration directory.
func NewDefaultStore() (*Store, error) {
	configDir, err := common.GetConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStore(filepath.Join(configDir, common.PreferencesFileName)), nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get reads the value for the requested [section]option. A pair that has
// never been set fails with common.ErrNotFound; supplying defaults is the
// caller's concern.
func (s *Store) Get(section, option string) (string, error) {
	cfg, err := s.load()
	if err != nil {
		return "", err
	}

	sec, err := cfg.GetSection(section)
	if err != nil {
		return "", fmt.Errorf("%w: [%s] %s", common.ErrNotFound, section, option)
	}
	if !sec.HasKey(option) {
		return "", fmt.Errorf("%w: [%s] %s", common.ErrNotFound, section, option)
	}
	return sec.Key(option).String(), nil
}

// Set rewrites the preference file with the given [section]option value
// added or changed. The write is durable before Set returns.
func (s *Store) Set(section, option, value string) error {
	cfg, err := s.load()
	if err != nil {
		return err
	}

	sec, err := cfg.GetSection(section)
	if err != nil {
		sec, err = cfg.NewSection(section)
		if err != nil {
			return common.WrapError(err, "failed to create preference section")
		}
	}
	sec.Key(option).SetValue(value)

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return common.WrapError(err, "failed to create preference directory")
	}
	if err := cfg.SaveTo(s.path); err != nil {
		return common.WrapError(err, "failed to write preference file")
	}

	common.LogDebug("Set user preference: [%s] %s = %s", section, option, value)
	return nil
}

// load parses the backing file, treating a missing file as empty.
func (s *Store) load() (*ini.File, error) {
	cfg, err := ini.LoadSources(loadOptions, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ini.Empty(loadOptions), nil
		}
		return nil, common.WrapError(err, "failed to read preference file")
	}
	return cfg, nil
}
