// Package ui provides the view-state coordination layer for Grid Manager.
// This file contains the system tray indicator functionality.
package ui

import (
	"fmt"
	"time"

	"fyne.io/systray"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/yllada/grid-manager/common"
	"github.com/yllada/grid-manager/gateway"
)

// Pre-generated icons for performance.
var (
	iconIdle          = GenerateIdleIcon()
	iconSyncing       = GenerateSyncingIcon()
	iconIdleUnread    = GenerateIdleUnreadIcon()
	iconSyncingUnread = GenerateSyncingUnreadIcon()
)

// TrayIndicator manages the system tray icon and menu. It mirrors the
// unread-message count and the aggregate folder sync state so the user
// sees both without opening the window.
type TrayIndicator struct {
	app        *Application
	statusItem *systray.MenuItem
	unreadItem *systray.MenuItem
	ready      bool
	gate       redrawGate
}

// redrawGate coalesces bursts of redraw requests: at most one redraw
// per debounce window, but a request landing inside the window is never
// lost — it schedules exactly one trailing redraw at the window's end.
type redrawGate struct {
	last    time.Time
	trailer bool
}

// next decides whether a redraw may run at now. When it may not and no
// trailing redraw has been scheduled yet, wait is the delay after which
// the trailing redraw must run; wait of zero with run false means one is
// already on its way.
func (g *redrawGate) next(now time.Time) (run bool, wait time.Duration) {
	if since := now.Sub(g.last); since < common.TrayUpdateDebounce {
		if g.trailer {
			return false, 0
		}
		g.trailer = true
		return false, common.TrayUpdateDebounce - since
	}
	g.last = now
	return true, 0
}

// trail marks the scheduled trailing redraw as running. Unlike next it
// never declines: the trailing redraw is what keeps a coalesced burst
// from being lost, even if its timer fires marginally early.
func (g *redrawGate) trail(now time.Time) {
	g.last = now
	g.trailer = false
}

// NewTrayIndicator creates a new system tray indicator.
func NewTrayIndicator(app *Application) *TrayIndicator {
	return &TrayIndicator{app: app}
}

// Run starts the system tray indicator.
// This should be called from a goroutine as it blocks.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the systray is ready.
func (t *TrayIndicator) onReady() {
	systray.SetIcon(iconIdle)
	systray.SetTitle(common.AppName)
	systray.SetTooltip(common.AppName)

	// Status item - shows aggregate folder state
	t.statusItem = systray.AddMenuItem("Up to date", "Folder sync status")
	t.statusItem.Disable()

	// Unread message count
	t.unreadItem = systray.AddMenuItem("No unread messages", "Messages awaiting review")
	t.unreadItem.Disable()

	systray.AddSeparator()

	// Show window
	showItem := systray.AddMenuItem("Open "+common.AppName, "Show main window")
	go func() {
		for range showItem.ClickedCh {
			glib.IdleAdd(func() {
				t.app.ShowWindow()
			})
		}
	}()

	systray.AddSeparator()

	// Quit goes through the confirmation prompt, not straight out
	quitItem := systray.AddMenuItem("Quit", "Close "+common.AppName)
	go func() {
		for range quitItem.ClickedCh {
			glib.IdleAdd(func() {
				t.app.RequestQuit()
			})
		}
	}()

	t.ready = true
	t.Update()
}

// onExit is called when the systray is about to exit.
func (t *TrayIndicator) onExit() {
	common.LogInfo("Tray indicator cleanup completed")
}

// Update redraws the tray from the current unread count and folder
// state. It implements Indicator and is safe to call before onReady has
// built the menu; the first onReady update catches up.
func (t *TrayIndicator) Update() {
	if !t.ready {
		return
	}

	run, wait := t.gate.next(time.Now())
	if !run {
		if wait > 0 {
			time.AfterFunc(wait, func() {
				glib.IdleAdd(func() {
					t.gate.trail(time.Now())
					t.redraw()
				})
			})
		}
		return
	}

	t.redraw()
}

// redraw renders the current unread count and folder state into the
// tray without consulting the gate.
func (t *TrayIndicator) redraw() {
	unread := t.app.Queue().UnreadCount()
	syncing := t.app.Guard().Classify() != QuitIdle
	common.LogDebug("Tray update (%d unread):\n%s", unread,
		statusSummary(t.app.Registry().List()))

	switch {
	case syncing && unread > 0:
		systray.SetIcon(iconSyncingUnread)
	case syncing:
		systray.SetIcon(iconSyncing)
	case unread > 0:
		systray.SetIcon(iconIdleUnread)
	default:
		systray.SetIcon(iconIdle)
	}

	status := "Up to date"
	if syncing {
		status = "Synchronizing..."
	}
	t.statusItem.SetTitle(status)

	unreadText := "No unread messages"
	if unread == 1 {
		unreadText = "1 unread message"
	} else if unread > 1 {
		unreadText = fmt.Sprintf("%d unread messages", unread)
	}
	t.unreadItem.SetTitle(unreadText)

	tooltip := fmt.Sprintf("%s - %s", common.AppName, status)
	if unread > 0 {
		tooltip = fmt.Sprintf("%s (%s)", tooltip, unreadText)
	}
	systray.SetTooltip(tooltip)
}

// Hide removes the tray icon. Called on quit before the GTK application
// exits so no orphaned icon lingers in the shell.
func (t *TrayIndicator) Hide() {
	systray.Quit()
}

// statusSummary is a debugging aid listing folder states per gateway.
func statusSummary(gateways []*gateway.Gateway) string {
	out := ""
	for _, gw := range gateways {
		for _, f := range gw.MagicFolders {
			out += fmt.Sprintf("%s/%s: %s\n", gw.Name, f.Name, f.Status)
		}
	}
	return out
}
