package taskwake

import (
	"sync/atomic"

	"github.com/llxisdsh/taskwake/internal/opt"
)

// mailbox is a task's notification word: notifications coalesce into a
// pending flag plus an OR-accumulated value, and a single owner parks on it.
//
// Size: 12 bytes (4 byte state + 4 byte value + 4 byte sema).
type mailbox struct {
	_ noCopy
	// state 32-bit:
	//   bit 0: pending (a notification arrived since the last take)
	//   bit 1: waiting (the owner is parked, or about to park, on sema)
	state atomic.Uint32
	value atomic.Uint32
	sema  opt.Sema
}

const (
	mailboxPending = 1 << iota
	mailboxWaiting
)

// post delivers value, releasing the owner if it is parked.
// Repeated posts before the next take wake the owner at most once.
func (m *mailbox) post(value uint32) {
	m.value.Or(value)
	for {
		s := m.state.Load()
		if s&mailboxPending != 0 {
			return
		}
		// Setting pending also clears waiting: we own the one release.
		if m.state.CompareAndSwap(s, mailboxPending) {
			if s&mailboxWaiting != 0 {
				m.sema.Release()
			}
			return
		}
	}
}

// take blocks until a post is pending, consumes it, and returns the value
// accumulated since the previous take. Only the owner may call take.
func (m *mailbox) take() uint32 {
	for {
		s := m.state.Load()
		if s&mailboxPending != 0 {
			if m.state.CompareAndSwap(s, 0) {
				return m.value.Swap(0)
			}
			continue
		}
		if m.state.CompareAndSwap(s, s|mailboxWaiting) {
			m.sema.Acquire()
		}
	}
}

// pending reports whether a post is waiting to be taken.
func (m *mailbox) pending() bool {
	return m.state.Load()&mailboxPending != 0
}
