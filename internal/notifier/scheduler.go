package notifier

import "time"

// Timer is a cancellable one-shot scheduled callback. Cancel is a no-op
// after the callback has fired.
type Timer interface {
	Cancel()
}

// Scheduler produces one-shot timers. The production implementation wraps
// time.AfterFunc; tests substitute a manual clock so lifecycle timing can
// be driven deterministically.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
}

// NewScheduler returns a Scheduler backed by time.AfterFunc.
func NewScheduler() Scheduler {
	return realScheduler{}
}

type realScheduler struct{}

func (realScheduler) Schedule(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTimer struct {
	t *time.Timer
}

func (rt realTimer) Cancel() {
	rt.t.Stop()
}
