package taskwake

import (
	"github.com/llxisdsh/pb"
)

// Tasks is a Platform backed by goroutines. A goroutine becomes a task for the
// duration of Run, and each task owns one notification word: notifications
// coalesce until the task next waits, and a notification that arrives before
// the wait is not lost.
//
// Task ids are goroutine ids, which the Go runtime never reuses, so a stale id
// can never address a different task. Notifying an id that is not a live task
// does nothing.
//
// The zero value is not usable; use NewTasks.
type Tasks struct {
	_     noCopy
	tasks pb.MapOf[TaskID, *task]
	cfg   Config
}

type task struct {
	id TaskID
	mb mailbox
}

// NewTasks returns an empty task table.
func NewTasks(options ...func(*Config)) *Tasks {
	return &Tasks{cfg: newConfig(options)}
}

// Run calls fn with the calling goroutine registered as a task, unregistering
// it once fn returns. Nested calls on the same goroutine share the outer
// registration.
func (t *Tasks) Run(fn func()) {
	id := goid()
	if _, loaded := t.tasks.LoadOrStore(id, &task{id: id}); loaded {
		fn()
		return
	}
	t.cfg.logger.Debug().
		Uint64("task", uint64(id)).
		Log("task registered")
	defer func() {
		t.tasks.Delete(id)
		t.cfg.logger.Debug().
			Uint64("task", uint64(id)).
			Log("task unregistered")
	}()
	fn()
}

// Go runs fn as a new task on a new goroutine.
func (t *Tasks) Go(fn func()) {
	go t.Run(fn)
}

// Current implements Platform.
func (t *Tasks) Current() (TaskID, error) {
	id := goid()
	if _, ok := t.tasks.Load(id); !ok {
		return 0, ErrNoTask
	}
	return id, nil
}

// WaitNotification implements Platform. It panics with ErrNoTask if the
// caller is not a task.
func (t *Tasks) WaitNotification() uint32 {
	tk, ok := t.tasks.Load(goid())
	if !ok {
		panic(ErrNoTask)
	}
	return tk.mb.take()
}

// Notify implements Platform.
func (t *Tasks) Notify(id TaskID, value uint32) {
	tk, ok := t.tasks.Load(id)
	if !ok {
		t.cfg.logger.Debug().
			Uint64("task", uint64(id)).
			Log("notify dropped: no such task")
		return
	}
	tk.mb.post(value)
}

// Pending reports whether task id has a notification it has not yet waited for.
func (t *Tasks) Pending(id TaskID) bool {
	tk, ok := t.tasks.Load(id)
	return ok && tk.mb.pending()
}

// Len returns the number of live tasks.
func (t *Tasks) Len() int {
	return t.tasks.Size()
}
