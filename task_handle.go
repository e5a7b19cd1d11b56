package taskwake

import (
	"fmt"
	"sync/atomic"
	"weak"

	"github.com/llxisdsh/taskwake/internal/opt"
)

// cell is the storage a TaskHandle shares with its notifiers.
//
// refs counts strong references: the owning handle holds one, and every
// Notify in flight holds one more for the duration of its platform call.
// Close sets cellClosed, after which no new reference can be taken, then
// waits for the count to drain back to its own.
type cell struct {
	refs atomic.Uint32
	task atomic.Uint64 // TaskID, 0 while unbound
	_    opt.CellPad_
}

const cellClosed = 1 << 31

// TaskHandle is the identity of the task an executor run loop runs on.
//
// It is bound lazily by the first Prerun, and from then on serves exactly
// that task. Notifiers minted by Notifier observe the handle but never keep
// it alive: after Close they all do nothing.
//
// A TaskHandle is owned by its run loop. Notifier may be called from any
// goroutine; Prerun and Close only from the owner.
type TaskHandle struct {
	_    noCopy
	cell atomic.Pointer[cell]
	p    Platform
	cfg  Config
}

// NewTaskHandle returns an unbound handle for tasks of p.
func NewTaskHandle(p Platform, options ...func(*Config)) *TaskHandle {
	c := &cell{}
	c.refs.Store(1)
	h := &TaskHandle{p: p, cfg: newConfig(options)}
	h.cell.Store(c)
	return h
}

// Prerun binds the handle to the calling task, if it is not bound yet.
//
// It panics, with an error wrapping ErrRebind, if the handle is already bound
// to a different task: notifications would otherwise silently go to the wrong
// task. It also panics if the caller is not a task (wrapping the platform's
// error, typically ErrNoTask) or if the handle is closed (ErrClosed).
func (h *TaskHandle) Prerun() {
	c := h.cell.Load()
	if c == nil {
		panic(ErrClosed)
	}

	cur, err := h.p.Current()
	if err != nil {
		panic(fmt.Errorf("taskwake: prerun: %w", err))
	}

	if c.task.CompareAndSwap(0, uint64(cur)) {
		h.cfg.logger.Debug().
			Uint64("task", uint64(cur)).
			Log("task handle bound")
		return
	}

	if bound := TaskID(c.task.Load()); bound != cur {
		h.cfg.logger.Err().
			Uint64("task", uint64(cur)).
			Uint64("bound_task", uint64(bound)).
			Log("prerun called from a second task")
		panic(fmt.Errorf("taskwake: prerun from task %d, bound to task %d: %w", cur, bound, ErrRebind))
	}
}

// Notifier mints a notifier for the task this handle is, or will be, bound
// to. Notifiers minted before Prerun do nothing until the handle is bound.
// A notifier minted after Close does nothing.
func (h *TaskHandle) Notifier() SharedTaskHandle {
	n := SharedTaskHandle{p: h.p, value: h.cfg.notifyValue}
	if c := h.cell.Load(); c != nil {
		n.ref = weak.Make(c)
	}
	return n
}

// Task returns the bound task, or 0 if the handle is unbound or closed.
func (h *TaskHandle) Task() TaskID {
	if c := h.cell.Load(); c != nil {
		return TaskID(c.task.Load())
	}
	return 0
}

// Close releases the handle. Notify calls that start afterwards do nothing,
// and Close returns only once every Notify call already in flight has
// returned from the platform, so no wake reaches the task after Close.
//
// Close is idempotent.
func (h *TaskHandle) Close() {
	c := h.cell.Swap(nil)
	if c == nil {
		return
	}

	// Only Notify calls already past acquire can hold references now, each
	// for one platform call.
	c.refs.Or(cellClosed)
	var spins, rounds int
	for c.refs.Load() != cellClosed|1 {
		yield(&spins)
		rounds++
	}
	c.refs.Store(cellClosed)
	c.task.Store(0)

	h.cfg.logger.Debug().
		Int("spin_rounds", rounds).
		Log("task handle closed")
}
