package taskwake

// CurrentTaskWait parks the calling task until it receives a notification.
// It holds no state of its own.
type CurrentTaskWait struct {
	p Platform
}

// NewCurrentTaskWait returns a Wait that parks on p.
func NewCurrentTaskWait(p Platform) CurrentTaskWait {
	return CurrentTaskWait{p: p}
}

// Wait blocks until some notifier delivers at least one notification to the
// calling task. Several notifications may be observed as one wake, so callers
// re-check their own readiness afterwards.
func (w CurrentTaskWait) Wait() {
	w.p.WaitNotification()
}
