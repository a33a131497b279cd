// Package ui provides the view-state coordination layer for Grid Manager.
// This file contains the Coordinator, which decides the active panel and
// control enablement for the selected gateway.
package ui

import (
	"fmt"

	"github.com/yllada/grid-manager/common"
	"github.com/yllada/grid-manager/gateway"
	"github.com/yllada/grid-manager/prefs"
)

// ViewKind identifies one of the stacked panels shown per gateway.
type ViewKind int

const (
	// ViewFolders shows the magic-folder list.
	ViewFolders ViewKind = iota
	// ViewHistory shows the activity history.
	ViewHistory
	// ViewQuota shows the storage-time (ZKAP) pane.
	ViewQuota
)

// String returns the panel's display name.
func (v ViewKind) String() string {
	switch v {
	case ViewFolders:
		return "Folders"
	case ViewHistory:
		return "History"
	case ViewQuota:
		return "Storage-time"
	default:
		return "Unknown"
	}
}

// InviteControl identifies which invite control the toolbar carries.
// Resolved once at construction from the feature toggles; there is no
// optional-attribute probing at enablement time.
type InviteControl int

const (
	// InviteNone means no invite control is present.
	InviteNone InviteControl = iota
	// InviteMenu is the two-entry grid-invite menu button.
	InviteMenu
	// InviteButton is the plain enter-invite-code button.
	InviteButton
)

// Enablement captures whether each interactive control is enabled for a
// gateway. It is derived from the gateway snapshot on demand and never
// stored or persisted.
type Enablement struct {
	AddFolder    bool
	Invite       bool
	History      bool
	Recovery     bool
	FoldersPane  bool
	QuotaPane    bool
	GridSelector bool

	// Restricted is set when the gateway requires storage-time tokens
	// and has none remaining.
	Restricted bool
}

// ComputeEnablement derives the control enablement for a gateway.
// It is pure and total: any snapshot, including one with no folders and
// uninitialized quota fields, yields a result. A gateway that does not
// require storage-time tokens is never restricted, whatever its token
// count reads.
func ComputeEnablement(gw *gateway.Gateway) Enablement {
	if gw == nil || !gw.QuotaExhausted() {
		return Enablement{
			AddFolder:    true,
			Invite:       true,
			History:      true,
			Recovery:     true,
			FoldersPane:  true,
			QuotaPane:    true,
			GridSelector: true,
		}
	}
	// Out of storage-time: only the quota pane stays reachable so the
	// user can purchase more.
	return Enablement{
		QuotaPane:  true,
		Restricted: true,
	}
}

// ViewState is the complete render state for the current gateway,
// consumed as a value by the rendering front-end.
type ViewState struct {
	Enablement Enablement
	Active     ViewKind
	Invite     InviteControl
	// Title is the window title, including the gateway name when several
	// grids are configured.
	Title string
}

// Coordinator owns per-gateway panel registration and the last active
// view of each gateway. All methods are synchronous and perform no I/O.
type Coordinator struct {
	registry *gateway.Registry
	features prefs.Features
	invite   InviteControl

	panels   map[*gateway.Gateway]map[ViewKind]bool
	lastView map[*gateway.Gateway]ViewKind
}

// NewCoordinator creates a coordinator over the given registry, with the
// invite control shape resolved from the feature toggles.
func NewCoordinator(registry *gateway.Registry, features prefs.Features) *Coordinator {
	invite := InviteNone
	switch {
	case features.GridInvites:
		invite = InviteMenu
	case features.Invites:
		invite = InviteButton
	}
	return &Coordinator{
		registry: registry,
		features: features,
		invite:   invite,
		panels:   make(map[*gateway.Gateway]map[ViewKind]bool),
		lastView: make(map[*gateway.Gateway]ViewKind),
	}
}

// Registry returns the gateway registry the coordinator operates on.
func (c *Coordinator) Registry() *gateway.Registry {
	return c.registry
}

// RegisterGateway adds a gateway to the registry and creates its
// Folders/History/Storage-time panel bindings. Calling it again for the
// same gateway is a no-op. The initial view defaults to Folders, except
// that a quota-exhausted gateway with no folders lands on the
// storage-time pane instead of an empty folder list.
func (c *Coordinator) RegisterGateway(gw *gateway.Gateway) {
	if gw == nil {
		return
	}
	if _, exists := c.panels[gw]; exists {
		return
	}
	c.registry.Register(gw)
	c.panels[gw] = map[ViewKind]bool{
		ViewFolders: true,
		ViewHistory: true,
		ViewQuota:   true,
	}
	if gw.QuotaExhausted() && len(gw.MagicFolders) == 0 {
		c.lastView[gw] = ViewQuota
	} else {
		c.lastView[gw] = ViewFolders
	}
	common.LogDebug("Registered gateway %s", gw.Name)
}

// SelectView makes the given panel the active view for the current
// gateway. Selecting a panel that was never registered (or selecting
// with no current gateway) fails with common.ErrNoSuchView and changes
// nothing; that failure signals a caller ordering bug, not a user error.
func (c *Coordinator) SelectView(kind ViewKind) error {
	cur, ok := c.registry.Current()
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrNoSuchView, kind)
	}
	if !c.panels[cur][kind] {
		return fmt.Errorf("%w: %s", common.ErrNoSuchView, kind)
	}
	c.lastView[cur] = kind
	return nil
}

// ActiveView returns the active panel of the current gateway.
func (c *Coordinator) ActiveView() (ViewKind, bool) {
	cur, ok := c.registry.Current()
	if !ok {
		return ViewFolders, false
	}
	kind, ok := c.lastView[cur]
	if !ok {
		return ViewFolders, false
	}
	return kind, true
}

// OnGatewaySelected switches the current selection to the given gateway
// and returns the recomputed view state, restoring that gateway's own
// last active view. A gateway absent from the registry fails with
// common.ErrUnknownGateway and leaves the selection unchanged.
func (c *Coordinator) OnGatewaySelected(gw *gateway.Gateway) (ViewState, error) {
	if err := c.registry.Select(gw); err != nil {
		return ViewState{}, err
	}
	return c.Refresh(), nil
}

// Refresh recomputes the view state for the current gateway. Called on
// every gateway status change (quota, folder sync, selection).
func (c *Coordinator) Refresh() ViewState {
	cur, ok := c.registry.Current()
	if !ok {
		return ViewState{
			Enablement: ComputeEnablement(nil),
			Active:     ViewFolders,
			Invite:     c.invite,
			Title:      common.AppName,
		}
	}

	en := ComputeEnablement(cur)

	// A quota-exhausted gateway with no folders is forced onto the
	// storage-time pane, provided one was registered for it.
	if en.Restricted && len(cur.MagicFolders) == 0 && c.panels[cur][ViewQuota] {
		c.lastView[cur] = ViewQuota
	}

	title := common.AppName
	if c.features.MultipleGrids && c.registry.Len() > 1 {
		title = fmt.Sprintf("%s - %s", common.AppName, cur.Name)
	}

	return ViewState{
		Enablement: en,
		Active:     c.lastView[cur],
		Invite:     c.invite,
		Title:      title,
	}
}
