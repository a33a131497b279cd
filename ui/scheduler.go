package ui

import (
	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

// MainLoopScheduler schedules work onto the next GTK main loop
// iteration. It is the production Scheduler; the queued function runs on
// the main loop thread after the current event handler has returned.
type MainLoopScheduler struct{}

// Schedule queues fn for the next main loop iteration.
func (MainLoopScheduler) Schedule(fn func()) {
	glib.IdleAdd(fn)
}
