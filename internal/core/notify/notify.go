// Package notify defines the ephemeral notification entity and the pure
// state machine that drives its lifecycle. The lifecycle engine in
// internal/notifier layers timers on top of this package; rendering lives
// in internal/tui. Keeping the transitions pure makes the state machine
// testable without timers or a terminal.
package notify

import "time"

// Kind classifies a notification. It selects the icon, the styling, and
// the default display duration.
type Kind string

const (
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
)

// NormalizeKind maps unrecognized kinds to KindInfo so a bad caller value
// degrades to default styling instead of being rejected.
func NormalizeKind(k Kind) Kind {
	switch k {
	case KindError, KindWarning, KindSuccess, KindInfo:
		return k
	default:
		return KindInfo
	}
}

// State is a notification's position in its display lifecycle.
type State string

const (
	// StateEntering is the transient entrance window. It always advances
	// to StateVisible; it is never terminal.
	StateEntering State = "entering"
	// StateVisible is the fully-displayed state. A notification stays
	// here until its duration elapses or it is dismissed.
	StateVisible State = "visible"
	// StateDismissing is the transient exit window. On completion the
	// notification is removed unconditionally.
	StateDismissing State = "dismissing"
)

// Default display durations per kind. More urgent kinds stay on screen
// longer. These are presentation defaults; config can override them.
const (
	DurationError   = 5 * time.Second
	DurationWarning = 4 * time.Second
	DurationSuccess = 3 * time.Second
	DurationInfo    = 4 * time.Second
)

// DefaultDuration returns the display duration for a kind.
func DefaultDuration(k Kind) time.Duration {
	switch NormalizeKind(k) {
	case KindError:
		return DurationError
	case KindWarning:
		return DurationWarning
	case KindSuccess:
		return DurationSuccess
	default:
		return DurationInfo
	}
}

// Notification represents a single ephemeral user-facing message.
// Kind and Message are fixed at creation; only State changes afterward.
// A zero Duration keeps the notification until it is manually dismissed.
type Notification struct {
	ID        string
	Kind      Kind
	Message   string
	Duration  time.Duration
	State     State
	CreatedAt time.Time
}

// Sticky reports whether the notification is exempt from auto-dismissal.
func (n Notification) Sticky() bool {
	return n.Duration == 0
}
