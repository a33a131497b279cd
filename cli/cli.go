// Package cli provides command-line interface functionality for Grid
// Manager. This allows users to inspect and edit preferences and stored
// newscaps from the terminal without launching the GUI application.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/yllada/grid-manager/common"
	"github.com/yllada/grid-manager/keyring"
	"github.com/yllada/grid-manager/prefs"
)

// CLI represents the command-line interface.
type CLI struct {
	store    *prefs.Store
	newscaps common.CapabilityStore
}

// New creates a new CLI instance over the default preference store.
func New() (*CLI, error) {
	store, err := prefs.NewDefaultStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}

	return &CLI{
		store:    store,
		newscaps: keyring.Keyring{},
	}, nil
}

// ListFeatures prints the feature toggles with their effective state.
func (c *CLI) ListFeatures() error {
	features, err := prefs.LoadFeatures(c.store)
	if err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FEATURE\tENABLED\tSETTING")
	fmt.Fprintln(w, "-------\t-------\t-------")

	rows := []struct {
		option  string
		enabled bool
	}{
		{common.FeatureGridInvites, features.GridInvites},
		{common.FeatureInvites, features.Invites},
		{common.FeatureMultipleGrids, features.MultipleGrids},
	}
	for _, row := range rows {
		setting, err := c.store.Get(common.FeaturesSection, row.option)
		if errors.Is(err, common.ErrNotFound) {
			setting = "(unset)"
		} else if err != nil {
			return err
		}

		enabled := "Yes"
		if !row.enabled {
			enabled = "No"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.option, enabled, setting)
	}

	w.Flush()
	return nil
}

// GetPref prints one preference value. The key is given as
// "section.option".
func (c *CLI) GetPref(key string) error {
	section, option, err := splitKey(key)
	if err != nil {
		return err
	}

	value, err := c.store.Get(section, option)
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("preference not set: [%s] %s", section, option)
	}
	if err != nil {
		return err
	}

	fmt.Println(value)
	return nil
}

// SetPref writes one preference value. The key is given as
// "section.option".
func (c *CLI) SetPref(key, value string) error {
	section, option, err := splitKey(key)
	if err != nil {
		return err
	}

	if err := c.store.Set(section, option, value); err != nil {
		return fmt.Errorf("failed to write preference: %w", err)
	}

	fmt.Printf("✓ Set [%s] %s = %s\n", section, option, value)
	return nil
}

// SetNewscap stores the newscap for a gateway. The capability is read
// from stdin rather than the command line so it stays out of shell
// history and process listings.
func (c *CLI) SetNewscap(gatewayName string) error {
	if gatewayName == "" {
		return fmt.Errorf("gateway name required")
	}

	fmt.Printf("Paste newscap for %s: ", gatewayName)
	var cap string
	if _, err := fmt.Scanln(&cap); err != nil {
		return fmt.Errorf("failed to read newscap: %w", err)
	}
	cap = strings.TrimSpace(cap)
	if cap == "" {
		return fmt.Errorf("empty newscap")
	}

	if err := c.newscaps.Store(gatewayName, cap); err != nil {
		return fmt.Errorf("failed to store newscap: %w", err)
	}

	fmt.Printf("✓ Stored newscap for %s\n", gatewayName)
	return nil
}

// ClearNewscap removes the stored newscap for a gateway.
func (c *CLI) ClearNewscap(gatewayName string) error {
	if gatewayName == "" {
		return fmt.Errorf("gateway name required")
	}

	if err := c.newscaps.Delete(gatewayName); err != nil {
		return fmt.Errorf("failed to remove newscap: %w", err)
	}

	fmt.Printf("✓ Removed newscap for %s\n", gatewayName)
	return nil
}

// splitKey parses a "section.option" preference key.
func splitKey(key string) (string, string, error) {
	section, option, ok := strings.Cut(strings.TrimSpace(key), ".")
	if !ok || section == "" || option == "" {
		return "", "", fmt.Errorf("invalid preference key %q, expected section.option", key)
	}
	return section, option, nil
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`Grid Manager - Command Line Interface

Usage:
  grid-manager [OPTIONS]

Options:
  --version              Show version and exit
  --verbose              Enable verbose logging
  --features             List feature toggles
  --get KEY              Print a preference (KEY is section.option)
  --set KEY --value VAL  Write a preference
  --newscap GATEWAY      Store a newscap for a gateway (read from stdin)
  --clear-newscap GATEWAY  Remove a stored newscap
  --help                 Show this help message

Examples:
  grid-manager --features
  grid-manager --get features.multiple_grids
  grid-manager --set features.invites --value false
  grid-manager --newscap AcmeGrid

Notes:
  - Feature changes take effect on the next GUI start
  - Run without options to launch the GUI`)
}
