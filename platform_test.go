package taskwake

import (
	"sync"
	"sync/atomic"
)

// fakePlatform records Notify calls. Its current task is whatever the test
// last stored, so a single goroutine can play several tasks.
type fakePlatform struct {
	current atomic.Uint64
	waits   atomic.Int32

	// entered receives once per Notify call, if set.
	entered chan struct{}
	// block holds every Notify call until closed, if set.
	block chan struct{}

	mu     sync.Mutex
	calls  []TaskID
	values []uint32
}

func newFakePlatform(current TaskID) *fakePlatform {
	p := &fakePlatform{}
	p.current.Store(uint64(current))
	return p
}

func (p *fakePlatform) Current() (TaskID, error) {
	id := TaskID(p.current.Load())
	if id == 0 {
		return 0, ErrNoTask
	}
	return id, nil
}

func (p *fakePlatform) WaitNotification() uint32 {
	p.waits.Add(1)
	return 1
}

func (p *fakePlatform) Notify(id TaskID, value uint32) {
	if p.entered != nil {
		p.entered <- struct{}{}
	}
	if p.block != nil {
		<-p.block
	}
	p.mu.Lock()
	p.calls = append(p.calls, id)
	p.values = append(p.values, value)
	p.mu.Unlock()
}

func (p *fakePlatform) notified() []TaskID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]TaskID(nil), p.calls...)
}

func (p *fakePlatform) notifiedValues() []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uint32(nil), p.values...)
}

// recoverError runs fn and returns the error it panicked with, or nil.
func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}
