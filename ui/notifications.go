package ui

import (
	"fmt"

	"github.com/yllada/grid-manager/common"
	"github.com/yllada/grid-manager/gateway"
)

// Message is one gateway-scoped notification awaiting acknowledgement.
type Message struct {
	Gateway *gateway.Gateway
	Title   string
	Body    string
}

// Presenter displays a message dialog for a gateway. Implemented by the
// rendering front-end; the queue never touches widgets directly.
type Presenter interface {
	ShowMessage(gw *gateway.Gateway, title, body string)
}

// Indicator is a visual unread/status indicator, typically the tray
// icon. Update is called whenever the unread set changes.
type Indicator interface {
	Update()
}

// Scheduler defers a function onto the next main loop iteration. The
// production implementation wraps glib.IdleAdd; tests substitute an
// immediate or recording one.
type Scheduler interface {
	Schedule(fn func())
}

// Queue buffers gateway messages while the window is hidden and
// surfaces them once it becomes visible. At most one message occupies
// the pending display slot; a newer arrival while hidden overwrites an
// older one there, but never removes it from the unread list.
//
// All methods must be called from the main loop thread.
type Queue struct {
	registry  *gateway.Registry
	presenter Presenter
	indicator Indicator
	scheduler Scheduler
	notifier  common.Notifier

	visible bool
	unread  []Message
	pending *Message
}

// NewQueue creates a message queue over the given collaborators. The
// window starts hidden.
func NewQueue(registry *gateway.Registry, presenter Presenter, indicator Indicator, scheduler Scheduler) *Queue {
	return &Queue{
		registry:  registry,
		presenter: presenter,
		indicator: indicator,
		scheduler: scheduler,
	}
}

// SetNotifier attaches a desktop notifier, used to mirror incoming news
// messages outside the window. Optional; nil disables mirroring.
func (q *Queue) SetNotifier(n common.Notifier) {
	q.notifier = n
}

// Enqueue records a message from a gateway. The message is appended to
// the unread list and the indicator refreshed. If the window is visible
// the message is displayed immediately; otherwise it takes over the
// single pending slot, displacing whatever waited there.
//
// Messages from a gateway the registry does not know are rejected with
// common.ErrUnknownGateway.
func (q *Queue) Enqueue(gw *gateway.Gateway, title, body string) error {
	if !q.registry.Contains(gw) {
		name := "<nil>"
		if gw != nil {
			name = gw.Name
		}
		return fmt.Errorf("%w: %s", common.ErrUnknownGateway, name)
	}

	m := Message{Gateway: gw, Title: title, Body: body}
	q.unread = append(q.unread, m)
	q.indicator.Update()

	if q.visible {
		q.presenter.ShowMessage(gw, title, body)
	} else {
		q.pending = &m
		common.LogDebug("Window hidden, holding message from %s", gw.Name)
	}
	return nil
}

// EnqueueNews wraps a raw news payload from a gateway's news stream.
// The desktop notifier, when attached, receives a plain-text rendering;
// the in-window dialog keeps the original markup.
func (q *Queue) EnqueueNews(gw *gateway.Gateway, raw string) error {
	if !q.registry.Contains(gw) {
		name := "<nil>"
		if gw != nil {
			name = gw.Name
		}
		return fmt.Errorf("%w: %s", common.ErrUnknownGateway, name)
	}
	title := fmt.Sprintf("New message from %s", gw.Name)
	if q.notifier != nil {
		if err := q.notifier.Notify(title, common.StripHTMLTags(raw)); err != nil {
			common.LogWarn("Desktop notification failed: %v", err)
		}
	}
	return q.Enqueue(gw, title, raw)
}

// EnqueueUpgradeRequired records the canned message shown when a
// gateway announces that this client version is too old for it.
func (q *Queue) EnqueueUpgradeRequired(gw *gateway.Gateway) error {
	if !q.registry.Contains(gw) {
		name := "<nil>"
		if gw != nil {
			name = gw.Name
		}
		return fmt.Errorf("%w: %s", common.ErrUnknownGateway, name)
	}
	if q.notifier != nil {
		if err := q.notifier.NotifyWithIcon("Upgrade required",
			fmt.Sprintf("Received an unsupported message from %s", gw.Name),
			"dialog-warning"); err != nil {
			common.LogWarn("Desktop notification failed: %v", err)
		}
	}
	body := fmt.Sprintf(
		"A message was received from %s in an unsupported format. This "+
			"may indicate that you are running an out-of-date version of "+
			"%s.\n\nTo avoid seeing this warning, please upgrade to the "+
			"latest version.", gw.Name, common.AppName)
	return q.Enqueue(gw, "Upgrade required", body)
}

// OnShown marks the window visible. A message waiting in the pending
// slot is released for display on the next main loop iteration, not
// synchronously inside the show handler.
func (q *Queue) OnShown() {
	q.visible = true
	if q.pending == nil {
		return
	}
	m := *q.pending
	q.pending = nil
	q.scheduler.Schedule(func() {
		q.presenter.ShowMessage(m.Gateway, m.Title, m.Body)
	})
}

// OnHidden marks the window hidden. Messages already handed to the
// scheduler are not recalled.
func (q *Queue) OnHidden() {
	q.visible = false
}

// Visible reports whether the window is currently visible.
func (q *Queue) Visible() bool {
	return q.visible
}

// OnDisplayed acknowledges that a message was actually shown to the
// user, removing the first unread entry equal to the given tuple and
// refreshing the indicator. An unmatched tuple is ignored; the display
// already happened and there is nothing to roll back.
func (q *Queue) OnDisplayed(gw *gateway.Gateway, title, body string) {
	for i, m := range q.unread {
		if m.Gateway == gw && m.Title == title && m.Body == body {
			q.unread = append(q.unread[:i], q.unread[i+1:]...)
			break
		}
	}
	q.indicator.Update()
}

// Unread returns a copy of the unread messages, oldest first.
func (q *Queue) Unread() []Message {
	out := make([]Message, len(q.unread))
	copy(out, q.unread)
	return out
}

// UnreadCount returns the number of unacknowledged messages.
func (q *Queue) UnreadCount() int {
	return len(q.unread)
}
