package ui

import (
	"errors"
	"testing"

	"github.com/yllada/grid-manager/common"
	"github.com/yllada/grid-manager/gateway"
	"github.com/yllada/grid-manager/prefs"
)

func TestViewKind_String(t *testing.T) {
	tests := []struct {
		kind ViewKind
		want string
	}{
		{ViewFolders, "Folders"},
		{ViewHistory, "History"},
		{ViewQuota, "Storage-time"},
		{ViewKind(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComputeEnablement(t *testing.T) {
	tests := []struct {
		name           string
		gw             *gateway.Gateway
		wantRestricted bool
	}{
		{
			name:           "nil gateway",
			gw:             nil,
			wantRestricted: false,
		},
		{
			name:           "no token metering",
			gw:             &gateway.Gateway{Name: "grid"},
			wantRestricted: false,
		},
		{
			name: "zero tokens without metering never restricts",
			gw: &gateway.Gateway{
				Name:             "grid",
				ZKAPAuthRequired: false,
				ZKAPsRemaining:   0,
			},
			wantRestricted: false,
		},
		{
			name: "metered with tokens",
			gw: &gateway.Gateway{
				Name:             "grid",
				ZKAPAuthRequired: true,
				ZKAPsRemaining:   100,
			},
			wantRestricted: false,
		},
		{
			name: "metered and exhausted",
			gw: &gateway.Gateway{
				Name:             "grid",
				ZKAPAuthRequired: true,
				ZKAPsRemaining:   0,
			},
			wantRestricted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			en := ComputeEnablement(tt.gw)
			if en.Restricted != tt.wantRestricted {
				t.Fatalf("Restricted = %v, want %v", en.Restricted, tt.wantRestricted)
			}
			if tt.wantRestricted {
				if en.AddFolder || en.Invite || en.History || en.Recovery ||
					en.FoldersPane || en.GridSelector {
					t.Errorf("restricted gateway should disable everything, got %+v", en)
				}
				if !en.QuotaPane {
					t.Error("restricted gateway must keep the storage-time pane enabled")
				}
			} else {
				if !en.AddFolder || !en.Invite || !en.History || !en.Recovery ||
					!en.FoldersPane || !en.QuotaPane || !en.GridSelector {
					t.Errorf("unrestricted gateway should enable everything, got %+v", en)
				}
			}
		})
	}
}

func newTestCoordinator() *Coordinator {
	return NewCoordinator(gateway.NewRegistry(), prefs.DefaultFeatures())
}

func TestCoordinator_RegisterGateway(t *testing.T) {
	c := newTestCoordinator()
	gw := &gateway.Gateway{Name: "grid-a"}

	c.RegisterGateway(gw)

	if !c.Registry().Contains(gw) {
		t.Fatal("registered gateway missing from registry")
	}
	kind, ok := c.ActiveView()
	if !ok || kind != ViewFolders {
		t.Errorf("ActiveView() = %v, %v; want Folders view", kind, ok)
	}

	// Registering again is a no-op
	c.RegisterGateway(gw)
	if c.Registry().Len() != 1 {
		t.Errorf("duplicate registration changed registry length to %d", c.Registry().Len())
	}
}

func TestCoordinator_RegisterExhaustedGatewayLandsOnQuota(t *testing.T) {
	c := newTestCoordinator()
	gw := &gateway.Gateway{
		Name:             "grid-a",
		ZKAPAuthRequired: true,
		ZKAPsRemaining:   0,
	}

	c.RegisterGateway(gw)

	kind, ok := c.ActiveView()
	if !ok || kind != ViewQuota {
		t.Errorf("ActiveView() = %v, %v; want forced Storage-time view", kind, ok)
	}
}

func TestCoordinator_SelectView(t *testing.T) {
	c := newTestCoordinator()

	// No current gateway
	if err := c.SelectView(ViewHistory); !errors.Is(err, common.ErrNoSuchView) {
		t.Errorf("SelectView() with empty registry error = %v, want ErrNoSuchView", err)
	}

	gw := &gateway.Gateway{Name: "grid-a"}
	c.RegisterGateway(gw)

	if err := c.SelectView(ViewHistory); err != nil {
		t.Fatalf("SelectView() error = %v", err)
	}
	if kind, _ := c.ActiveView(); kind != ViewHistory {
		t.Errorf("ActiveView() = %v, want History", kind)
	}

	// An unregistered view kind fails and changes nothing
	if err := c.SelectView(ViewKind(42)); !errors.Is(err, common.ErrNoSuchView) {
		t.Errorf("SelectView() with unknown kind error = %v, want ErrNoSuchView", err)
	}
	if kind, _ := c.ActiveView(); kind != ViewHistory {
		t.Errorf("failed selection moved the active view to %v", kind)
	}
}

func TestCoordinator_PerGatewayViewMemory(t *testing.T) {
	c := newTestCoordinator()
	a := &gateway.Gateway{Name: "grid-a"}
	b := &gateway.Gateway{Name: "grid-b"}
	c.RegisterGateway(a)
	c.RegisterGateway(b)

	// b is current after registration; put it on History
	if err := c.SelectView(ViewHistory); err != nil {
		t.Fatal(err)
	}

	// Switching to a restores a's own view, untouched by b's
	state, err := c.OnGatewaySelected(a)
	if err != nil {
		t.Fatalf("OnGatewaySelected() error = %v", err)
	}
	if state.Active != ViewFolders {
		t.Errorf("gateway a active view = %v, want Folders", state.Active)
	}

	// And back to b, which kept History
	state, err = c.OnGatewaySelected(b)
	if err != nil {
		t.Fatal(err)
	}
	if state.Active != ViewHistory {
		t.Errorf("gateway b active view = %v, want History", state.Active)
	}
}

func TestCoordinator_MixedGatewaySelection(t *testing.T) {
	c := newTestCoordinator()
	a := &gateway.Gateway{Name: "grid-a"}
	b := &gateway.Gateway{
		Name:             "grid-b",
		ZKAPAuthRequired: true,
		ZKAPsRemaining:   0,
	}
	c.RegisterGateway(a)
	c.RegisterGateway(b)

	state, err := c.OnGatewaySelected(b)
	if err != nil {
		t.Fatal(err)
	}
	if !state.Enablement.Restricted {
		t.Error("exhausted gateway b should be restricted")
	}
	if state.Active != ViewQuota {
		t.Errorf("gateway b active view = %v, want Storage-time", state.Active)
	}

	state, err = c.OnGatewaySelected(a)
	if err != nil {
		t.Fatal(err)
	}
	if state.Enablement.Restricted {
		t.Error("gateway a should be fully enabled")
	}
	if state.Active != ViewFolders {
		t.Errorf("gateway a active view = %v, want Folders", state.Active)
	}
}

func TestCoordinator_OnGatewaySelectedUnknown(t *testing.T) {
	c := newTestCoordinator()
	a := &gateway.Gateway{Name: "grid-a"}
	c.RegisterGateway(a)

	_, err := c.OnGatewaySelected(&gateway.Gateway{Name: "stranger"})
	if !errors.Is(err, common.ErrUnknownGateway) {
		t.Errorf("OnGatewaySelected() error = %v, want ErrUnknownGateway", err)
	}

	// Selection is unchanged
	if cur, _ := c.Registry().Current(); cur != a {
		t.Errorf("failed selection moved current gateway to %v", cur)
	}
}

func TestCoordinator_RefreshForcesQuotaView(t *testing.T) {
	c := newTestCoordinator()
	gw := &gateway.Gateway{
		Name:             "grid-a",
		ZKAPAuthRequired: true,
		ZKAPsRemaining:   10,
	}
	c.RegisterGateway(gw)

	if state := c.Refresh(); state.Active != ViewFolders {
		t.Fatalf("initial active view = %v, want Folders", state.Active)
	}

	// Tokens run out with no folders: the view is forced to quota
	gw.ZKAPsRemaining = 0
	state := c.Refresh()
	if !state.Enablement.Restricted {
		t.Fatal("exhausted gateway should be restricted")
	}
	if state.Active != ViewQuota {
		t.Errorf("active view = %v, want forced Storage-time", state.Active)
	}

	// With folders present the view is left alone
	gw2 := &gateway.Gateway{
		Name:             "grid-b",
		ZKAPAuthRequired: true,
		ZKAPsRemaining:   0,
		MagicFolders: []*gateway.Folder{
			{Name: "Documents", Status: gateway.StatusSynced},
		},
	}
	c.RegisterGateway(gw2)
	state = c.Refresh()
	if state.Active != ViewFolders {
		t.Errorf("exhausted gateway with folders: active view = %v, want Folders", state.Active)
	}
}

func TestCoordinator_Title(t *testing.T) {
	tests := []struct {
		name      string
		features  prefs.Features
		gateways  []string
		wantTitle string
	}{
		{
			name:      "single gateway",
			features:  prefs.DefaultFeatures(),
			gateways:  []string{"AcmeGrid"},
			wantTitle: common.AppName,
		},
		{
			name:      "multiple gateways",
			features:  prefs.DefaultFeatures(),
			gateways:  []string{"AcmeGrid", "OtherGrid"},
			wantTitle: common.AppName + " - OtherGrid",
		},
		{
			name:      "multiple grids feature disabled",
			features:  prefs.Features{GridInvites: true, Invites: true, MultipleGrids: false},
			gateways:  []string{"AcmeGrid", "OtherGrid"},
			wantTitle: common.AppName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCoordinator(gateway.NewRegistry(), tt.features)
			for _, name := range tt.gateways {
				c.RegisterGateway(&gateway.Gateway{Name: name})
			}
			if got := c.Refresh().Title; got != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got, tt.wantTitle)
			}
		})
	}
}

func TestCoordinator_InviteControl(t *testing.T) {
	tests := []struct {
		name     string
		features prefs.Features
		want     InviteControl
	}{
		{"grid invites", prefs.Features{GridInvites: true, Invites: true}, InviteMenu},
		{"plain invites", prefs.Features{Invites: true}, InviteButton},
		{"no invites", prefs.Features{}, InviteNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCoordinator(gateway.NewRegistry(), tt.features)
			if got := c.Refresh().Invite; got != tt.want {
				t.Errorf("Invite = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoordinator_EmptyRegistryRefresh(t *testing.T) {
	c := newTestCoordinator()

	state := c.Refresh()
	if state.Title != common.AppName {
		t.Errorf("Title = %q, want %q", state.Title, common.AppName)
	}
	if state.Enablement.Restricted {
		t.Error("empty registry should not be restricted")
	}
}
