package ui

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/grid-manager/common"
	"github.com/yllada/grid-manager/config"
	"github.com/yllada/grid-manager/gateway"
	"github.com/yllada/grid-manager/prefs"
)

// FrontEnd renders the view state produced by the coordination layer.
// Implementations own the widgets; this package hands them values.
type FrontEnd interface {
	// Present raises the main window.
	Present()
	// ApplyViewState renders a freshly computed view state.
	ApplyViewState(state ViewState)
	// ShowMessage displays a message dialog for a gateway. The
	// implementation must call Queue.OnDisplayed once the user has seen
	// it.
	ShowMessage(gw *gateway.Gateway, title, body string)
	// PresentQuitPrompt shows the quit confirmation and invokes onAccept
	// only if the user explicitly confirms.
	PresentQuitPrompt(p Prompt, onAccept func())
}

// Application represents the main application. It wires the GTK4
// lifecycle to the coordinator, message queue, quit guard, and tray.
type Application struct {
	app         *gtk.Application
	config      *config.Config
	store       *prefs.Store
	features    prefs.Features
	registry    *gateway.Registry
	coordinator *Coordinator
	queue       *Queue
	guard       *Guard
	tray        *TrayIndicator
	frontEnd    FrontEnd
	version     string
}

// NewApplication creates a new application.
func NewApplication(appID, version string) *Application {
	// Create GTK4 application
	app := gtk.NewApplication(appID, gio.ApplicationFlagsNone)

	// Open the preference store; feature toggles are read once here and
	// fixed for the process lifetime.
	store, err := prefs.NewDefaultStore()
	if err != nil {
		panic(err)
	}
	features, err := prefs.LoadFeatures(store)
	if err != nil {
		common.LogWarn("Failed to load feature toggles, using defaults: %v", err)
		features = prefs.DefaultFeatures()
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use default configuration if there's an error
		cfg = config.DefaultConfig()
	}

	registry := gateway.NewRegistry()

	application := &Application{
		app:      app,
		config:   cfg,
		store:    store,
		features: features,
		registry: registry,
		version:  version,
	}
	application.coordinator = NewCoordinator(registry, features)
	application.guard = NewGuard(registry)
	application.queue = NewQueue(registry, application, application, MainLoopScheduler{})
	if cfg.ShowNotifications {
		application.queue.SetNotifier(DesktopNotifier{})
	}

	// Connect activation signal
	app.ConnectActivate(application.onActivate)

	return application
}

// Run runs the application
func (a *Application) Run(args []string) int {
	return a.app.Run(args)
}

// onActivate is called when the application is activated
func (a *Application) onActivate() {
	// Apply configured theme
	a.ApplyTheme(a.config.Theme)

	// Start system tray indicator
	a.tray = NewTrayIndicator(a)
	go a.tray.Run()

	// Create the default window front-end unless one was injected
	if a.frontEnd == nil {
		a.frontEnd = NewMainWindow(a)
	}
	a.frontEnd.ApplyViewState(a.coordinator.Refresh())
	a.frontEnd.Present()

	a.startStatusRefresh()
}

// startStatusRefresh periodically re-renders the view state so folder
// and quota changes written into the gateway snapshots by the external
// subsystem show up without an explicit event.
func (a *Application) startStatusRefresh() {
	ticker := time.NewTicker(common.StatusRefreshInterval)
	go func() {
		for range ticker.C {
			glib.IdleAdd(func() {
				a.RefreshViewState()
			})
		}
	}()
}

// SetFrontEnd attaches the rendering front-end. Must be called before
// Run; gateway messages arriving with no front-end attached stay in the
// unread list until one is.
func (a *Application) SetFrontEnd(fe FrontEnd) {
	a.frontEnd = fe
}

// ApplyTheme applies the specified theme to the application.
// Supported values: "auto" (system default), "light", "dark"
func (a *Application) ApplyTheme(theme string) {
	settings := gtk.SettingsGetDefault()
	if settings == nil {
		return
	}

	switch theme {
	case "light":
		settings.SetObjectProperty("gtk-application-prefer-dark-theme", false)
	case "dark":
		settings.SetObjectProperty("gtk-application-prefer-dark-theme", true)
	default: // "auto" - follow system theme, don't override
	}
}

// AddGateway registers a gateway with the coordination layer, makes it
// the current selection, and refreshes the rendered state.
func (a *Application) AddGateway(gw *gateway.Gateway) {
	a.coordinator.RegisterGateway(gw)
	a.RefreshViewState()
}

// PopulateGateways registers every configured gateway in order and
// leaves the first one selected, matching the selector's initial state.
func (a *Application) PopulateGateways(gws []*gateway.Gateway) {
	for _, gw := range gws {
		a.coordinator.RegisterGateway(gw)
	}
	if len(gws) > 0 {
		a.registry.Select(gws[0])
	}
	a.RefreshViewState()
}

// SelectGateway switches the window to another gateway's panels.
func (a *Application) SelectGateway(gw *gateway.Gateway) error {
	state, err := a.coordinator.OnGatewaySelected(gw)
	if err != nil {
		return err
	}
	if a.frontEnd != nil {
		a.frontEnd.ApplyViewState(state)
	}
	a.Update()
	return nil
}

// RefreshViewState recomputes and re-renders the current gateway's view
// state. Called whenever a gateway status snapshot changes.
func (a *Application) RefreshViewState() {
	state := a.coordinator.Refresh()
	if a.frontEnd != nil {
		a.frontEnd.ApplyViewState(state)
	}
	a.Update()
}

// OnWindowShown forwards window visibility to the message queue.
func (a *Application) OnWindowShown() {
	a.queue.OnShown()
}

// OnWindowHidden forwards window visibility to the message queue.
func (a *Application) OnWindowHidden() {
	a.queue.OnHidden()
}

// ShowWindow raises the main window.
func (a *Application) ShowWindow() {
	if a.frontEnd != nil {
		a.frontEnd.Present()
	}
}

// ShowMessage implements Presenter by forwarding to the front-end.
func (a *Application) ShowMessage(gw *gateway.Gateway, title, body string) {
	if a.frontEnd == nil {
		common.LogWarn("No front-end attached, message from %s stays unread", gw.Name)
		return
	}
	a.frontEnd.ShowMessage(gw, title, body)
}

// Update implements Indicator by forwarding to the tray.
func (a *Application) Update() {
	if a.tray != nil {
		a.tray.Update()
	}
}

// ConfirmQuit classifies the current folder state and returns the
// prompt the dialog layer should render.
func (a *Application) ConfirmQuit() Prompt {
	return a.guard.ConfirmQuit()
}

// RequestQuit runs the quit confirmation flow. The folder scan decides
// which warning the user sees; quitting proceeds only on explicit
// confirmation.
func (a *Application) RequestQuit() {
	prompt := a.ConfirmQuit()
	if a.frontEnd == nil {
		a.Quit()
		return
	}
	a.frontEnd.PresentQuitPrompt(prompt, a.Quit)
}

// Quit closes the application. The tray icon is removed first so no
// stale icon outlives the process in the desktop shell.
func (a *Application) Quit() {
	if a.tray != nil {
		a.tray.Hide()
	}
	a.app.Quit()
}

// Registry returns the gateway registry.
func (a *Application) Registry() *gateway.Registry {
	return a.registry
}

// Coordinator returns the view-state coordinator.
func (a *Application) Coordinator() *Coordinator {
	return a.coordinator
}

// Queue returns the message queue.
func (a *Application) Queue() *Queue {
	return a.queue
}

// Guard returns the quit guard.
func (a *Application) Guard() *Guard {
	return a.guard
}

// GetConfig returns the configuration
func (a *Application) GetConfig() *config.Config {
	return a.config
}

// Features returns the feature toggles read at startup.
func (a *Application) Features() prefs.Features {
	return a.features
}

// Prefs returns the preference store.
func (a *Application) Prefs() *prefs.Store {
	return a.store
}

// GetVersion returns the application version
func (a *Application) GetVersion() string {
	return a.version
}
