// Package notifier implements the lifecycle engine for ephemeral
// notifications: creation, timed auto-dismissal, manual dismissal, and
// removal after the exit window. The Manager is an explicitly constructed
// service; callers hold a reference rather than relying on a package
// global, and rendering surfaces attach through Subscribe.
package notifier

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/beacon/internal/core/logging"
	"github.com/colonyops/beacon/internal/core/notify"
)

const (
	// DefaultEnterDelay is the entrance window before a notification is
	// treated as fully visible.
	DefaultEnterDelay = 50 * time.Millisecond
	// DefaultExitWindow is how long a dismissing notification lingers
	// before it is removed.
	DefaultExitWindow = 300 * time.Millisecond
)

// Handle is an opaque reference to a created notification, usable for a
// later manual Dismiss. The zero Handle is inert.
type Handle struct {
	id string
}

// ID returns the referenced notification's identifier.
func (h Handle) ID() string {
	return h.id
}

// Listener is invoked after every lifecycle change, including removal.
// Renderers should treat the call as a repaint signal and re-read
// Snapshot rather than mutating their own copy of the notification.
type Listener func(n notify.Notification)

// Options configures a Manager. Zero fields fall back to defaults.
type Options struct {
	// Durations overrides the per-kind default display durations.
	Durations map[notify.Kind]time.Duration
	// EnterDelay is the entering -> visible window.
	EnterDelay time.Duration
	// ExitWindow is the dismissing -> removed window.
	ExitWindow time.Duration
	// Scheduler supplies timers; nil uses time.AfterFunc.
	Scheduler Scheduler
	// Store, when set, receives every created notification as history.
	Store notify.Store
}

type entry struct {
	n notify.Notification
	// At most one timer is outstanding per notification: the enter
	// timer, then the auto-dismiss timer, then the removal timer. A new
	// timer is only ever set after the previous one fired or was
	// cancelled.
	timer Timer
}

// Manager owns the full lifecycle of ephemeral notifications. All methods
// are safe for concurrent use; timer callbacks and callers serialize on
// an internal mutex.
type Manager struct {
	mu        sync.Mutex
	durations map[notify.Kind]time.Duration
	enter     time.Duration
	exit      time.Duration
	sched     Scheduler
	store     notify.Store

	order     []string
	entries   map[string]*entry
	listeners []Listener
	closed    bool

	log zerolog.Logger
}

// New constructs a Manager from opts.
func New(opts Options) *Manager {
	if opts.Scheduler == nil {
		opts.Scheduler = NewScheduler()
	}
	if opts.EnterDelay <= 0 {
		opts.EnterDelay = DefaultEnterDelay
	}
	if opts.ExitWindow <= 0 {
		opts.ExitWindow = DefaultExitWindow
	}

	m := &Manager{
		durations: make(map[notify.Kind]time.Duration, len(opts.Durations)),
		enter:     opts.EnterDelay,
		exit:      opts.ExitWindow,
		sched:     opts.Scheduler,
		store:     opts.Store,
		entries:   make(map[string]*entry),
		log:       logging.Component("notifier"),
	}
	for k, d := range opts.Durations {
		m.durations[k] = d
	}
	return m
}

// Subscribe attaches a rendering surface. Notifications created while no
// listener is attached are dropped with a diagnostic, never an error.
func (m *Manager) Subscribe(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// SetDurations replaces the per-kind duration overrides. Already-created
// notifications keep the duration they were created with.
func (m *Manager) SetDurations(durations map[notify.Kind]time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = make(map[notify.Kind]time.Duration, len(durations))
	for k, d := range durations {
		m.durations[k] = d
	}
}

// Notify creates a notification with the kind's default display duration
// and returns a handle for manual dismissal.
func (m *Manager) Notify(message string, kind notify.Kind) Handle {
	return m.create(message, kind, -1)
}

// NotifyFor creates a notification with an explicit display duration.
// A duration of 0 disables auto-dismissal; the notification stays until
// Dismiss or ClearAll. A negative duration selects the kind's default.
func (m *Manager) NotifyFor(message string, kind notify.Kind, d time.Duration) Handle {
	return m.create(message, kind, d)
}

// Errorf creates an error notification from a format string.
func (m *Manager) Errorf(format string, args ...any) Handle {
	return m.create(fmt.Sprintf(format, args...), notify.KindError, -1)
}

// Warnf creates a warning notification from a format string.
func (m *Manager) Warnf(format string, args ...any) Handle {
	return m.create(fmt.Sprintf(format, args...), notify.KindWarning, -1)
}

// Successf creates a success notification from a format string.
func (m *Manager) Successf(format string, args ...any) Handle {
	return m.create(fmt.Sprintf(format, args...), notify.KindSuccess, -1)
}

// Infof creates an info notification from a format string.
func (m *Manager) Infof(format string, args ...any) Handle {
	return m.create(fmt.Sprintf(format, args...), notify.KindInfo, -1)
}

func (m *Manager) create(message string, kind notify.Kind, d time.Duration) Handle {
	if strings.TrimSpace(message) == "" {
		m.log.Warn().Msg("dropping notification with empty message")
		return Handle{}
	}

	kind = notify.NormalizeKind(kind)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.log.Warn().Str("message", message).Msg("notify on closed manager")
		return Handle{}
	}
	if len(m.listeners) == 0 {
		m.mu.Unlock()
		m.log.Warn().Str("message", message).Msg("no surface attached, dropping notification")
		return Handle{}
	}

	if d < 0 {
		d = m.durationFor(kind)
	}

	n := notify.Notification{
		ID:        ulid.Make().String(),
		Kind:      kind,
		Message:   message,
		Duration:  d,
		State:     notify.StateEntering,
		CreatedAt: time.Now(),
	}

	id := n.ID
	e := &entry{n: n}
	e.timer = m.sched.Schedule(m.enter, func() { m.shown(id) })
	m.entries[id] = e
	m.order = append(m.order, id)
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Save(context.Background(), n); err != nil {
			m.log.Error().Err(err).Str("message", n.Message).Msg("failed to persist notification")
		}
	}

	m.emit(n)
	return Handle{id: id}
}

// Dismiss transitions the referenced notification to its exit window and
// cancels any pending auto-dismiss timer. Unknown, already-removed, and
// already-dismissing handles are no-ops; calling Dismiss twice has the
// same effect as calling it once.
func (m *Manager) Dismiss(h Handle) {
	m.mu.Lock()
	e, ok := m.entries[h.id]
	if !ok {
		m.mu.Unlock()
		return
	}

	n, ok := notify.Apply(e.n, notify.EventDismissed)
	if !ok {
		m.mu.Unlock()
		return
	}

	if e.timer != nil {
		e.timer.Cancel()
	}
	e.n = n
	id := h.id
	e.timer = m.sched.Schedule(m.exit, func() { m.remove(id) })
	m.mu.Unlock()

	m.emit(n)
}

// ClearAll removes every tracked notification immediately, with no exit
// window, and cancels all outstanding timers so none can fire afterward.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	cleared := make([]notify.Notification, 0, len(m.order))
	for _, id := range m.order {
		e := m.entries[id]
		if e.timer != nil {
			e.timer.Cancel()
		}
		cleared = append(cleared, e.n)
	}
	m.order = nil
	m.entries = make(map[string]*entry)
	m.mu.Unlock()

	for _, n := range cleared {
		m.emit(n)
	}
}

// Close tears the manager down: all notifications are cleared, all timers
// cancelled, and further Notify calls become no-ops.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.ClearAll()
}

// Snapshot returns the tracked notifications in creation order. The
// manager never reorders them.
func (m *Manager) Snapshot() []notify.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]notify.Notification, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entries[id].n)
	}
	return out
}

// shown completes the entrance window and arms the auto-dismiss timer.
// Sticky notifications get no timer and stay visible until dismissed.
func (m *Manager) shown(id string) {
	m.mu.Lock()
	e, ok := m.entries[id]
	if !ok {
		m.mu.Unlock()
		return
	}

	n, ok := notify.Apply(e.n, notify.EventShown)
	if !ok {
		m.mu.Unlock()
		return
	}

	e.n = n
	e.timer = nil
	if n.Duration > 0 {
		e.timer = m.sched.Schedule(n.Duration, func() { m.expire(id) })
	}
	m.mu.Unlock()

	m.emit(n)
}

// expire fires when the display duration elapses and starts the exit
// window.
func (m *Manager) expire(id string) {
	m.mu.Lock()
	e, ok := m.entries[id]
	if !ok {
		m.mu.Unlock()
		return
	}

	n, ok := notify.Apply(e.n, notify.EventExpired)
	if !ok {
		m.mu.Unlock()
		return
	}

	e.n = n
	e.timer = m.sched.Schedule(m.exit, func() { m.remove(id) })
	m.mu.Unlock()

	m.emit(n)
}

// remove detaches the notification once its exit window elapses. The
// identifier is never reused.
func (m *Manager) remove(id string) {
	m.mu.Lock()
	e, ok := m.entries[id]
	if !ok {
		m.mu.Unlock()
		return
	}

	delete(m.entries, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	n := e.n
	m.mu.Unlock()

	m.emit(n)
}

func (m *Manager) durationFor(kind notify.Kind) time.Duration {
	if d, ok := m.durations[kind]; ok && d > 0 {
		return d
	}
	return notify.DefaultDuration(kind)
}

func (m *Manager) emit(n notify.Notification) {
	m.mu.Lock()
	subs := make([]Listener, len(m.listeners))
	copy(subs, m.listeners)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}
