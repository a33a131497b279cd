package ui

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/grid-manager/common"
	"github.com/yllada/grid-manager/gateway"
)

// MainWindow is the default FrontEnd: one window per process, binding
// every gateway's panels behind a selector and a panel stack. It renders
// the states computed by the coordination layer and reports visibility
// changes back to the message queue.
type MainWindow struct {
	app       *Application
	window    *gtk.ApplicationWindow
	headerBar *gtk.HeaderBar

	gatewayCombo *gtk.ComboBoxText
	addButton    *gtk.Button
	inviteButton *gtk.Button

	foldersButton *gtk.Button
	historyButton *gtk.Button
	quotaButton   *gtk.Button

	stack       *gtk.Stack
	foldersView *gtk.Label
	historyView *gtk.Label
	quotaView   *gtk.Label

	// applying suppresses selector feedback while state is rendered
	applying bool
}

// NewMainWindow creates the main window.
func NewMainWindow(app *Application) *MainWindow {
	mw := &MainWindow{
		app: app,
	}

	mw.window = gtk.NewApplicationWindow(app.app)
	mw.window.SetTitle(common.AppName)
	mw.window.SetDefaultSize(common.DefaultWindowWidth, common.DefaultWindowHeight)
	mw.window.SetSizeRequest(common.MinWindowWidth, common.MinWindowHeight)

	mw.createLayout()

	// Visibility drives the notification queue
	mw.window.ConnectMap(func() {
		mw.app.OnWindowShown()
	})
	mw.window.ConnectUnmap(func() {
		mw.app.OnWindowHidden()
	})

	// Closing either minimizes to tray or runs the quit confirmation
	mw.window.ConnectCloseRequest(func() bool {
		if mw.app.GetConfig().MinimizeToTray {
			mw.window.SetVisible(false)
		} else {
			mw.app.RequestQuit()
		}
		return true
	})

	return mw
}

// createLayout creates the window layout.
func (mw *MainWindow) createLayout() {
	mw.headerBar = gtk.NewHeaderBar()

	// Gateway selector; hidden unless several grids are configured
	mw.gatewayCombo = gtk.NewComboBoxText()
	mw.gatewayCombo.ConnectChanged(mw.onGatewayChanged)
	mw.headerBar.PackStart(mw.gatewayCombo)

	// Button to add a new folder
	mw.addButton = gtk.NewButton()
	mw.addButton.SetIconName("folder-new-symbolic")
	mw.addButton.SetTooltipText("Add folder")
	mw.headerBar.PackStart(mw.addButton)

	// Invite control, shaped by the feature toggles
	switch mw.app.Coordinator().Refresh().Invite {
	case InviteMenu:
		mw.inviteButton = gtk.NewButton()
		mw.inviteButton.SetIconName("contact-new-symbolic")
		mw.inviteButton.SetTooltipText("Create or accept a grid invite")
		mw.headerBar.PackStart(mw.inviteButton)
	case InviteButton:
		mw.inviteButton = gtk.NewButtonWithLabel("Enter Code")
		mw.inviteButton.SetTooltipText("Enter an invite code")
		mw.headerBar.PackStart(mw.inviteButton)
	}

	// Panel switcher
	mw.foldersButton = gtk.NewButtonWithLabel(ViewFolders.String())
	mw.foldersButton.ConnectClicked(func() { mw.onSelectView(ViewFolders) })
	mw.headerBar.PackEnd(mw.foldersButton)

	mw.historyButton = gtk.NewButtonWithLabel(ViewHistory.String())
	mw.historyButton.ConnectClicked(func() { mw.onSelectView(ViewHistory) })
	mw.headerBar.PackEnd(mw.historyButton)

	mw.quotaButton = gtk.NewButtonWithLabel(ViewQuota.String())
	mw.quotaButton.ConnectClicked(func() { mw.onSelectView(ViewQuota) })
	mw.headerBar.PackEnd(mw.quotaButton)

	mw.window.SetTitlebar(mw.headerBar)

	// Panel stack, one page per view kind
	mw.stack = gtk.NewStack()
	mw.stack.SetVExpand(true)

	mw.foldersView = gtk.NewLabel("No folders yet")
	mw.stack.AddTitled(mw.foldersView, ViewFolders.String(), ViewFolders.String())

	mw.historyView = gtk.NewLabel("No recent activity")
	mw.stack.AddTitled(mw.historyView, ViewHistory.String(), ViewHistory.String())

	mw.quotaView = gtk.NewLabel("")
	mw.stack.AddTitled(mw.quotaView, ViewQuota.String(), ViewQuota.String())

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)
	mainBox.Append(mw.stack)
	mw.window.SetChild(mainBox)
}

// onGatewayChanged handles a selector change made by the user.
func (mw *MainWindow) onGatewayChanged() {
	if mw.applying {
		return
	}
	idx := mw.gatewayCombo.Active()
	gws := mw.app.Registry().List()
	if idx < 0 || int(idx) >= len(gws) {
		return
	}
	if err := mw.app.SelectGateway(gws[idx]); err != nil {
		common.LogWarn("Gateway selection failed: %v", err)
	}
}

// onSelectView handles a panel switch made by the user.
func (mw *MainWindow) onSelectView(kind ViewKind) {
	if err := mw.app.Coordinator().SelectView(kind); err != nil {
		common.LogWarn("View selection failed: %v", err)
		return
	}
	mw.app.RefreshViewState()
}

// Present implements FrontEnd.
func (mw *MainWindow) Present() {
	mw.window.Present()
}

// ApplyViewState implements FrontEnd, rendering a computed state.
func (mw *MainWindow) ApplyViewState(state ViewState) {
	mw.applying = true
	defer func() { mw.applying = false }()

	mw.window.SetTitle(state.Title)

	en := state.Enablement
	mw.addButton.SetSensitive(en.AddFolder)
	if mw.inviteButton != nil {
		mw.inviteButton.SetSensitive(en.Invite)
	}
	mw.foldersButton.SetSensitive(en.FoldersPane)
	mw.historyButton.SetSensitive(en.History)
	mw.quotaButton.SetSensitive(en.QuotaPane)
	mw.gatewayCombo.SetSensitive(en.GridSelector)

	mw.refreshSelector()
	mw.refreshPanels()
	mw.stack.SetVisibleChildName(state.Active.String())
}

// refreshSelector rebuilds the gateway selector from the registry.
func (mw *MainWindow) refreshSelector() {
	gws := mw.app.Registry().List()
	showSelector := mw.app.Features().MultipleGrids && len(gws) > 1
	mw.gatewayCombo.SetVisible(showSelector)

	mw.gatewayCombo.RemoveAll()
	active := -1
	cur, _ := mw.app.Registry().Current()
	for i, gw := range gws {
		mw.gatewayCombo.AppendText(gw.Name)
		if gw == cur {
			active = i
		}
	}
	if active >= 0 {
		mw.gatewayCombo.SetActive(active)
	}
}

// refreshPanels rerenders the panel placeholders for the current gateway.
func (mw *MainWindow) refreshPanels() {
	cur, ok := mw.app.Registry().Current()
	if !ok {
		return
	}

	if len(cur.MagicFolders) == 0 {
		mw.foldersView.SetText("No folders yet")
	} else {
		text := ""
		for _, f := range cur.MagicFolders {
			text += fmt.Sprintf("%s — %s\n", f.Name, f.Status)
		}
		mw.foldersView.SetText(text)
	}

	if cur.ZKAPAuthRequired {
		mw.quotaView.SetText(fmt.Sprintf("Storage-time remaining: %d", cur.ZKAPsRemaining))
	} else {
		mw.quotaView.SetText("This grid does not meter storage-time")
	}
}

// ShowMessage implements FrontEnd with a floating message dialog.
func (mw *MainWindow) ShowMessage(gw *gateway.Gateway, title, body string) {
	dialog := gtk.NewWindow()
	dialog.SetTitle(title)
	dialog.SetTransientFor(&mw.window.Window)
	dialog.SetModal(true)
	dialog.SetDefaultSize(420, 200)
	dialog.SetResizable(false)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)

	contentBox := gtk.NewBox(gtk.OrientationVertical, 12)
	contentBox.SetMarginTop(24)
	contentBox.SetMarginBottom(12)
	contentBox.SetMarginStart(24)
	contentBox.SetMarginEnd(24)

	titleLabel := gtk.NewLabel(title)
	titleLabel.AddCSSClass("title-3")
	contentBox.Append(titleLabel)

	bodyLabel := gtk.NewLabel(common.StripHTMLTags(body))
	bodyLabel.SetWrap(true)
	bodyLabel.SetXAlign(0)
	contentBox.Append(bodyLabel)

	mainBox.Append(contentBox)

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(12)
	buttonBox.SetMarginBottom(24)
	buttonBox.SetMarginStart(24)
	buttonBox.SetMarginEnd(24)

	okBtn := gtk.NewButtonWithLabel("OK")
	okBtn.AddCSSClass("suggested-action")
	okBtn.ConnectClicked(func() {
		dialog.Close()
		// Acknowledge display so the unread count drops
		mw.app.Queue().OnDisplayed(gw, title, body)
	})
	buttonBox.Append(okBtn)

	mainBox.Append(buttonBox)
	dialog.SetChild(mainBox)
	dialog.Show()
}

// PresentQuitPrompt implements FrontEnd with a floating confirmation
// dialog. Declining is the default; onAccept runs only on Yes.
func (mw *MainWindow) PresentQuitPrompt(p Prompt, onAccept func()) {
	dialog := gtk.NewWindow()
	dialog.SetTitle(p.Title)
	dialog.SetTransientFor(&mw.window.Window)
	dialog.SetModal(true)
	dialog.SetDefaultSize(420, 180)
	dialog.SetResizable(false)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)

	contentBox := gtk.NewBox(gtk.OrientationVertical, 12)
	contentBox.SetMarginTop(24)
	contentBox.SetMarginBottom(12)
	contentBox.SetMarginStart(24)
	contentBox.SetMarginEnd(24)

	headerBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	if p.Warning {
		warnIcon := gtk.NewImage()
		warnIcon.SetFromIconName("dialog-warning-symbolic")
		warnIcon.SetPixelSize(32)
		headerBox.Append(warnIcon)
	}
	questionLabel := gtk.NewLabel(p.Question)
	questionLabel.AddCSSClass("title-3")
	headerBox.Append(questionLabel)
	contentBox.Append(headerBox)

	detailLabel := gtk.NewLabel(p.Detail)
	detailLabel.SetWrap(true)
	detailLabel.SetXAlign(0)
	detailLabel.AddCSSClass("dim-label")
	contentBox.Append(detailLabel)

	mainBox.Append(contentBox)

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 12)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(12)
	buttonBox.SetMarginBottom(24)
	buttonBox.SetMarginStart(24)
	buttonBox.SetMarginEnd(24)

	yesBtn := gtk.NewButtonWithLabel(p.AcceptLabel)
	yesBtn.ConnectClicked(func() {
		dialog.Close()
		onAccept()
	})
	buttonBox.Append(yesBtn)

	noBtn := gtk.NewButtonWithLabel(p.RejectLabel)
	noBtn.AddCSSClass("suggested-action")
	noBtn.ConnectClicked(func() {
		dialog.Close()
	})
	buttonBox.Append(noBtn)

	mainBox.Append(buttonBox)
	dialog.SetChild(mainBox)
	dialog.Show()
	dialog.SetDefaultWidget(noBtn)
}

// Window returns the underlying GTK window.
func (mw *MainWindow) Window() *gtk.Window {
	return &mw.window.Window
}
