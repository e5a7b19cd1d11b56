package taskwake

import (
	"weak"
)

// SharedTaskHandle wakes the task a TaskHandle is bound to.
//
// It is a small value: copies are independent notifiers for the same handle,
// and any of them may be used from any goroutine. It refers to the handle's
// storage weakly, so it never delays Close. The zero value does nothing.
type SharedTaskHandle struct {
	ref   weak.Pointer[cell]
	p     Platform
	value uint32
}

// Notify wakes the bound task once. It does nothing if the handle is not
// bound yet or has been closed.
func (n SharedTaskHandle) Notify() {
	c := n.acquire()
	if c == nil {
		return
	}
	defer c.refs.Add(^uint32(0))

	if id := TaskID(c.task.Load()); id != 0 {
		n.p.Notify(id, n.value)
	}
}

// acquire upgrades the weak reference to a strong one, which the caller must
// release. It fails once the owning handle has started closing.
func (n SharedTaskHandle) acquire() *cell {
	c := n.ref.Value()
	if c == nil {
		return nil
	}
	for {
		r := c.refs.Load()
		if r&cellClosed != 0 {
			return nil
		}
		if c.refs.CompareAndSwap(r, r+1) {
			return c
		}
	}
}
