package notifier

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/beacon/internal/core/notify"
)

// fakeScheduler is a manual clock. Advance fires due timers in due order,
// so lifecycle timing can be tested without sleeping.
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	due       time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (t *fakeTimer) Cancel() { t.cancelled = true }

func (s *fakeScheduler) Schedule(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{due: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		var next *fakeTimer
		for _, t := range s.timers {
			if t.fired || t.cancelled || t.due > target {
				continue
			}
			if next == nil || t.due < next.due {
				next = t
			}
		}
		if next == nil {
			break
		}
		s.now = next.due
		next.fired = true
		fn := next.fn
		// Callbacks schedule follow-up timers, so release the lock.
		s.mu.Unlock()
		fn()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

func (s *fakeScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, t := range s.timers {
		if !t.fired && !t.cancelled {
			count++
		}
	}
	return count
}

// collector records every listener emission.
type collector struct {
	mu     sync.Mutex
	events []notify.Notification
}

func (c *collector) listen(n notify.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, n)
}

func (c *collector) states() []notify.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]notify.State, 0, len(c.events))
	for _, n := range c.events {
		out = append(out, n.State)
	}
	return out
}

func newTestManager(opts Options) (*Manager, *fakeScheduler, *collector) {
	sched := &fakeScheduler{}
	opts.Scheduler = sched
	m := New(opts)
	c := &collector{}
	m.Subscribe(c.listen)
	return m, sched, c
}

func TestManager_Notify_preserves_call_order(t *testing.T) {
	m, _, _ := newTestManager(Options{})

	m.Notify("first", notify.KindError)
	m.Notify("second", notify.KindWarning)
	m.Notify("third", notify.KindSuccess)

	snap := m.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "first", snap[0].Message)
	assert.Equal(t, "second", snap[1].Message)
	assert.Equal(t, "third", snap[2].Message)
	for _, n := range snap {
		assert.Equal(t, notify.StateEntering, n.State)
		assert.NotEmpty(t, n.ID)
	}

	// IDs are unique among tracked notifications.
	assert.NotEqual(t, snap[0].ID, snap[1].ID)
	assert.NotEqual(t, snap[1].ID, snap[2].ID)
}

func TestManager_Notify_without_surface_is_noop(t *testing.T) {
	sched := &fakeScheduler{}
	m := New(Options{Scheduler: sched})

	h := m.Notify("lost", notify.KindError)

	assert.Empty(t, h.ID())
	assert.Empty(t, m.Snapshot())
	assert.Zero(t, sched.pending())
}

func TestManager_Notify_empty_message_is_noop(t *testing.T) {
	m, sched, _ := newTestManager(Options{})

	h := m.Notify("   ", notify.KindError)

	assert.Empty(t, h.ID())
	assert.Empty(t, m.Snapshot())
	assert.Zero(t, sched.pending())
}

func TestManager_Notify_unknown_kind_falls_back_to_info(t *testing.T) {
	m, _, _ := newTestManager(Options{})

	m.Notify("odd", notify.Kind("fatal"))

	snap := m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, notify.KindInfo, snap[0].Kind)
	assert.Equal(t, notify.DurationInfo, snap[0].Duration)
}

func TestManager_auto_dismiss_lifecycle(t *testing.T) {
	m, sched, c := newTestManager(Options{})

	m.Notify("Upload failed", notify.KindError)

	snap := m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, notify.StateEntering, snap[0].State)
	assert.Equal(t, 1, sched.pending(), "only the enter timer should be armed")

	sched.Advance(DefaultEnterDelay)
	snap = m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, notify.StateVisible, snap[0].State)
	assert.Equal(t, 1, sched.pending(), "only the auto-dismiss timer should be armed")

	sched.Advance(notify.DurationError)
	snap = m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, notify.StateDismissing, snap[0].State)
	assert.Equal(t, 1, sched.pending(), "only the removal timer should be armed")

	sched.Advance(DefaultExitWindow)
	assert.Empty(t, m.Snapshot())
	assert.Zero(t, sched.pending())

	assert.Equal(t, []notify.State{
		notify.StateEntering,
		notify.StateVisible,
		notify.StateDismissing,
		notify.StateDismissing, // removal emission
	}, c.states())
}

func TestManager_sticky_waits_for_manual_dismiss(t *testing.T) {
	m, sched, _ := newTestManager(Options{})

	h := m.NotifyFor("Saved", notify.KindSuccess, 0)

	sched.Advance(DefaultEnterDelay)
	snap := m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, notify.StateVisible, snap[0].State)
	assert.Zero(t, sched.pending(), "sticky notifications have no auto-dismiss timer")

	sched.Advance(time.Hour)
	snap = m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, notify.StateVisible, snap[0].State)

	m.Dismiss(h)
	snap = m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, notify.StateDismissing, snap[0].State)

	sched.Advance(DefaultExitWindow)
	assert.Empty(t, m.Snapshot())
}

func TestManager_Dismiss_is_idempotent(t *testing.T) {
	m, sched, _ := newTestManager(Options{})

	h := m.Notify("boom", notify.KindError)
	sched.Advance(DefaultEnterDelay)

	m.Dismiss(h)
	m.Dismiss(h)

	assert.Equal(t, 1, sched.pending(), "double dismiss must not arm a second removal timer")

	sched.Advance(DefaultExitWindow)
	assert.Empty(t, m.Snapshot())

	// Dismissing an already-removed handle is a no-op too.
	m.Dismiss(h)
	assert.Empty(t, m.Snapshot())
}

func TestManager_Dismiss_during_entering(t *testing.T) {
	m, sched, c := newTestManager(Options{})

	h := m.Notify("early out", notify.KindWarning)
	m.Dismiss(h)

	snap := m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, notify.StateDismissing, snap[0].State)

	sched.Advance(DefaultExitWindow)
	assert.Empty(t, m.Snapshot())

	// The cancelled enter timer must not resurrect the notification.
	sched.Advance(time.Minute)
	assert.Empty(t, m.Snapshot())
	assert.NotContains(t, c.states(), notify.StateVisible)
}

func TestManager_Dismiss_zero_handle(t *testing.T) {
	m, _, _ := newTestManager(Options{})
	m.Dismiss(Handle{})
	assert.Empty(t, m.Snapshot())
}

func TestManager_ClearAll_cancels_everything(t *testing.T) {
	m, sched, _ := newTestManager(Options{})

	m.Notify("a", notify.KindError)
	m.Notify("b", notify.KindWarning)
	m.NotifyFor("c", notify.KindSuccess, 0)

	m.ClearAll()

	assert.Empty(t, m.Snapshot())
	assert.Zero(t, sched.pending())

	// No residual timer may fire after the clear.
	sched.Advance(time.Hour)
	assert.Empty(t, m.Snapshot())
}

func TestManager_Close_refuses_further_work(t *testing.T) {
	m, sched, _ := newTestManager(Options{})

	m.Notify("going away", notify.KindInfo)
	m.Close()

	assert.Empty(t, m.Snapshot())
	assert.Zero(t, sched.pending())

	h := m.Notify("too late", notify.KindError)
	assert.Empty(t, h.ID())
	assert.Empty(t, m.Snapshot())
}

func TestManager_custom_durations(t *testing.T) {
	m, sched, _ := newTestManager(Options{
		Durations: map[notify.Kind]time.Duration{
			notify.KindError: time.Second,
		},
	})

	m.Notify("quick error", notify.KindError)
	sched.Advance(DefaultEnterDelay)
	sched.Advance(time.Second)

	snap := m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, notify.StateDismissing, snap[0].State)
}

func TestManager_SetDurations_applies_to_new_notifications(t *testing.T) {
	m, sched, _ := newTestManager(Options{})

	m.SetDurations(map[notify.Kind]time.Duration{
		notify.KindSuccess: 500 * time.Millisecond,
	})

	m.Notify("snappy", notify.KindSuccess)
	sched.Advance(DefaultEnterDelay)
	sched.Advance(500 * time.Millisecond)

	snap := m.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, notify.StateDismissing, snap[0].State)
}

// memStore is an in-memory notify.Store for persistence tests.
type memStore struct {
	mu    sync.Mutex
	saved []notify.Notification
}

func (s *memStore) Save(_ context.Context, n notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, n)
	return nil
}

func (s *memStore) List(_ context.Context) ([]notify.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notify.Notification, len(s.saved))
	copy(out, s.saved)
	return out, nil
}

func (s *memStore) Clear(_ context.Context) error          { return nil }
func (s *memStore) Count(_ context.Context) (int64, error) { return int64(len(s.saved)), nil }
func (s *memStore) Prune(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func TestManager_persists_created_notifications(t *testing.T) {
	store := &memStore{}
	m, _, _ := newTestManager(Options{Store: store})

	m.Errorf("disk %s is full", "/dev/sda1")
	m.Successf("saved")

	require.Len(t, store.saved, 2)
	assert.Equal(t, "disk /dev/sda1 is full", store.saved[0].Message)
	assert.Equal(t, notify.KindError, store.saved[0].Kind)
	assert.Equal(t, notify.KindSuccess, store.saved[1].Kind)
}
