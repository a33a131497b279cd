package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/yllada/grid-manager/common"
	"github.com/yllada/grid-manager/gateway"
)

type fakePresenter struct {
	shown []Message
}

func (p *fakePresenter) ShowMessage(gw *gateway.Gateway, title, body string) {
	p.shown = append(p.shown, Message{Gateway: gw, Title: title, Body: body})
}

type fakeIndicator struct {
	updates int
}

func (i *fakeIndicator) Update() {
	i.updates++
}

// fakeScheduler records deferred functions; Flush runs them, standing in
// for the next main loop iteration.
type fakeScheduler struct {
	queued []func()
}

func (s *fakeScheduler) Schedule(fn func()) {
	s.queued = append(s.queued, fn)
}

func (s *fakeScheduler) Flush() {
	queued := s.queued
	s.queued = nil
	for _, fn := range queued {
		fn()
	}
}

type queueFixture struct {
	queue     *Queue
	registry  *gateway.Registry
	presenter *fakePresenter
	indicator *fakeIndicator
	scheduler *fakeScheduler
}

func newQueueFixture(gws ...*gateway.Gateway) *queueFixture {
	f := &queueFixture{
		registry:  gateway.NewRegistry(),
		presenter: &fakePresenter{},
		indicator: &fakeIndicator{},
		scheduler: &fakeScheduler{},
	}
	for _, gw := range gws {
		f.registry.Register(gw)
	}
	f.queue = NewQueue(f.registry, f.presenter, f.indicator, f.scheduler)
	return f
}

func TestQueue_EnqueueVisible(t *testing.T) {
	gw := &gateway.Gateway{Name: "grid-a"}
	f := newQueueFixture(gw)
	f.queue.OnShown()

	if err := f.queue.Enqueue(gw, "Hello", "body"); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	if len(f.presenter.shown) != 1 {
		t.Fatalf("visible window should display immediately, shown = %d", len(f.presenter.shown))
	}
	if f.queue.UnreadCount() != 1 {
		t.Errorf("UnreadCount() = %d, want 1 until display is acknowledged", f.queue.UnreadCount())
	}
	if f.indicator.updates == 0 {
		t.Error("enqueue should refresh the indicator")
	}
}

func TestQueue_EnqueueHiddenHoldsPending(t *testing.T) {
	gw := &gateway.Gateway{Name: "grid-a"}
	f := newQueueFixture(gw)

	if err := f.queue.Enqueue(gw, "Hello", "body"); err != nil {
		t.Fatal(err)
	}

	if len(f.presenter.shown) != 0 {
		t.Fatal("hidden window must not display")
	}
	if f.queue.UnreadCount() != 1 {
		t.Errorf("UnreadCount() = %d, want 1", f.queue.UnreadCount())
	}
}

func TestQueue_PendingSlotLatestWins(t *testing.T) {
	gw := &gateway.Gateway{Name: "grid-a"}
	f := newQueueFixture(gw)

	f.queue.Enqueue(gw, "first", "one")
	f.queue.Enqueue(gw, "second", "two")

	f.queue.OnShown()
	f.scheduler.Flush()

	// Only the newest message takes the pending display slot
	if len(f.presenter.shown) != 1 {
		t.Fatalf("shown = %d, want 1", len(f.presenter.shown))
	}
	if f.presenter.shown[0].Title != "second" {
		t.Errorf("displayed %q, want the newest message", f.presenter.shown[0].Title)
	}

	// Both stay unread until each is acknowledged
	if f.queue.UnreadCount() != 2 {
		t.Errorf("UnreadCount() = %d, want 2", f.queue.UnreadCount())
	}
}

func TestQueue_ShowDefersDisplay(t *testing.T) {
	gw := &gateway.Gateway{Name: "grid-a"}
	f := newQueueFixture(gw)
	f.queue.Enqueue(gw, "Hello", "body")

	f.queue.OnShown()

	// Nothing is displayed synchronously inside the show handler
	if len(f.presenter.shown) != 0 {
		t.Fatal("display must be deferred to the next main loop iteration")
	}
	if len(f.scheduler.queued) != 1 {
		t.Fatalf("queued = %d deferred calls, want 1", len(f.scheduler.queued))
	}

	f.scheduler.Flush()
	if len(f.presenter.shown) != 1 {
		t.Fatal("deferred display never ran")
	}

	// The pending slot was consumed; a second show displays nothing new
	f.queue.OnHidden()
	f.queue.OnShown()
	f.scheduler.Flush()
	if len(f.presenter.shown) != 1 {
		t.Errorf("re-show replayed the pending slot, shown = %d", len(f.presenter.shown))
	}
}

func TestQueue_DeferredDisplaySurvivesHide(t *testing.T) {
	gw := &gateway.Gateway{Name: "grid-a"}
	f := newQueueFixture(gw)
	f.queue.Enqueue(gw, "Hello", "body")

	f.queue.OnShown()
	f.queue.OnHidden()

	// The handed-off display still runs; it is not recalled on hide
	f.scheduler.Flush()
	if len(f.presenter.shown) != 1 {
		t.Errorf("shown = %d, want 1", len(f.presenter.shown))
	}
}

func TestQueue_OnDisplayed(t *testing.T) {
	gw := &gateway.Gateway{Name: "grid-a"}
	f := newQueueFixture(gw)
	f.queue.OnShown()

	f.queue.Enqueue(gw, "Hello", "body")
	f.queue.Enqueue(gw, "Hello", "body")

	// Acknowledging removes exactly one copy
	f.queue.OnDisplayed(gw, "Hello", "body")
	if f.queue.UnreadCount() != 1 {
		t.Errorf("UnreadCount() = %d, want 1", f.queue.UnreadCount())
	}

	// A tuple that never matched is ignored
	f.queue.OnDisplayed(gw, "Hello", "different body")
	if f.queue.UnreadCount() != 1 {
		t.Errorf("mismatched acknowledgement changed UnreadCount() to %d", f.queue.UnreadCount())
	}

	f.queue.OnDisplayed(gw, "Hello", "body")
	if f.queue.UnreadCount() != 0 {
		t.Errorf("UnreadCount() = %d, want 0", f.queue.UnreadCount())
	}
}

func TestQueue_UnknownGateway(t *testing.T) {
	f := newQueueFixture(&gateway.Gateway{Name: "grid-a"})

	err := f.queue.Enqueue(&gateway.Gateway{Name: "stranger"}, "t", "b")
	if !errors.Is(err, common.ErrUnknownGateway) {
		t.Errorf("Enqueue() error = %v, want ErrUnknownGateway", err)
	}
	if f.queue.UnreadCount() != 0 {
		t.Error("rejected message must not join the unread list")
	}

	if err := f.queue.EnqueueNews(nil, "raw"); !errors.Is(err, common.ErrUnknownGateway) {
		t.Errorf("EnqueueNews(nil) error = %v, want ErrUnknownGateway", err)
	}

	// The upgrade-required path degrades the same way, nil included
	if err := f.queue.EnqueueUpgradeRequired(nil); !errors.Is(err, common.ErrUnknownGateway) {
		t.Errorf("EnqueueUpgradeRequired(nil) error = %v, want ErrUnknownGateway", err)
	}
	err = f.queue.EnqueueUpgradeRequired(&gateway.Gateway{Name: "stranger"})
	if !errors.Is(err, common.ErrUnknownGateway) {
		t.Errorf("EnqueueUpgradeRequired() error = %v, want ErrUnknownGateway", err)
	}
	if f.queue.UnreadCount() != 0 {
		t.Error("rejected upgrade message must not join the unread list")
	}
}

type fakeNotifier struct {
	titles   []string
	messages []string
}

func (n *fakeNotifier) Notify(title, message string) error {
	n.titles = append(n.titles, title)
	n.messages = append(n.messages, message)
	return nil
}

func (n *fakeNotifier) NotifyWithIcon(title, message, icon string) error {
	return n.Notify(title, message)
}

func TestQueue_EnqueueNews(t *testing.T) {
	gw := &gateway.Gateway{Name: "AcmeGrid"}
	f := newQueueFixture(gw)
	notifier := &fakeNotifier{}
	f.queue.SetNotifier(notifier)

	raw := "<p>Scheduled <b>maintenance</b> tonight</p>"
	if err := f.queue.EnqueueNews(gw, raw); err != nil {
		t.Fatalf("EnqueueNews() error = %v", err)
	}

	unread := f.queue.Unread()
	if len(unread) != 1 {
		t.Fatalf("Unread() = %d messages, want 1", len(unread))
	}
	if unread[0].Title != "New message from AcmeGrid" {
		t.Errorf("title = %q", unread[0].Title)
	}
	// The stored body keeps the original markup
	if unread[0].Body != raw {
		t.Errorf("body = %q, want raw payload", unread[0].Body)
	}

	// The desktop notification is stripped to plain text
	if len(notifier.messages) != 1 {
		t.Fatalf("notifier received %d messages, want 1", len(notifier.messages))
	}
	if strings.ContainsAny(notifier.messages[0], "<>") {
		t.Errorf("desktop notification still contains markup: %q", notifier.messages[0])
	}
}

func TestQueue_EnqueueUpgradeRequired(t *testing.T) {
	gw := &gateway.Gateway{Name: "AcmeGrid"}
	f := newQueueFixture(gw)

	if err := f.queue.EnqueueUpgradeRequired(gw); err != nil {
		t.Fatalf("EnqueueUpgradeRequired() error = %v", err)
	}

	unread := f.queue.Unread()
	if len(unread) != 1 {
		t.Fatalf("Unread() = %d messages, want 1", len(unread))
	}
	if unread[0].Title != "Upgrade required" {
		t.Errorf("title = %q, want %q", unread[0].Title, "Upgrade required")
	}
	if !strings.Contains(unread[0].Body, "AcmeGrid") {
		t.Errorf("body should name the gateway, got %q", unread[0].Body)
	}
	if !strings.Contains(unread[0].Body, common.AppName) {
		t.Errorf("body should name the application, got %q", unread[0].Body)
	}
}

func TestQueue_UnreadIsACopy(t *testing.T) {
	gw := &gateway.Gateway{Name: "grid-a"}
	f := newQueueFixture(gw)
	f.queue.Enqueue(gw, "Hello", "body")

	unread := f.queue.Unread()
	unread[0].Title = "mutated"

	if f.queue.Unread()[0].Title != "Hello" {
		t.Error("Unread() must return a copy")
	}
}
