// Package taskwake bridges a single-threaded executor run loop to the task it
// runs on: the loop parks its task with [CurrentTaskWait] and any number of
// other contexts wake it through [SharedTaskHandle] notifiers minted from the
// loop's [TaskHandle].
//
// Notifiers never own the task identity. Once the handle is closed every
// notifier degrades to a no-op, and Close itself waits out notifications that
// are in flight.
package taskwake

import (
	"errors"
	"time"
)

// TaskID names a schedulable unit of the host platform. Zero is never a valid
// task and marks an unbound slot.
type TaskID uint64

// Platform is the host's task notification service.
type Platform interface {
	// Current returns the identity of the calling task, or ErrNoTask.
	Current() (TaskID, error)
	// WaitNotification blocks the calling task until at least one
	// notification arrives, returning the accumulated notification value.
	WaitNotification() uint32
	// Notify delivers value to the task id.
	Notify(id TaskID, value uint32)
}

var (
	// ErrNoTask is reported when the caller is not running as a task.
	ErrNoTask = errors.New("taskwake: not called from a task")
	// ErrRebind is the panic cause when a bound TaskHandle is prerun from a
	// different task.
	ErrRebind = errors.New("taskwake: task handle already bound to another task")
	// ErrClosed is the panic cause when a closed TaskHandle is prerun.
	ErrClosed = errors.New("taskwake: task handle closed")
)

// Wait parks the calling task until it is notified.
type Wait interface {
	Wait()
}

// Notify wakes a task. It must be safe to call from any goroutine, any number
// of times.
type Notify interface {
	Notify()
}

// NotifyFactory mints notifiers for the task an executor runs on.
type NotifyFactory[N Notify] interface {
	Notifier() N
}

// RunContextFactory is called once per run loop entry, from the task that
// will subsequently Wait.
type RunContextFactory interface {
	Prerun()
}

// NotifyFunc adapts an ordinary function to Notify.
type NotifyFunc func()

// Notify calls f().
func (f NotifyFunc) Notify() {
	f()
}

// NotifyAfter notifies n once d has elapsed. Stop the returned timer to cancel.
func NotifyAfter(d time.Duration, n Notify) *time.Timer {
	return time.AfterFunc(d, n.Notify)
}

var (
	_ Wait                            = CurrentTaskWait{}
	_ Notify                          = SharedTaskHandle{}
	_ Notify                          = NotifyFunc(nil)
	_ NotifyFactory[SharedTaskHandle] = (*TaskHandle)(nil)
	_ RunContextFactory               = (*TaskHandle)(nil)
	_ Platform                        = (*Tasks)(nil)
)
