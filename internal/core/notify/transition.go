package notify

// Event drives a notification through its lifecycle.
type Event string

const (
	// EventShown marks the entrance window complete.
	EventShown Event = "shown"
	// EventExpired fires when the display duration elapses.
	EventExpired Event = "expired"
	// EventDismissed is an explicit dismissal by a user or caller.
	EventDismissed Event = "dismissed"
)

// Apply returns the notification advanced by ev. The bool reports whether
// the event is legal in the current state; illegal events return the
// notification unchanged so callers can treat them as no-ops.
func Apply(n Notification, ev Event) (Notification, bool) {
	switch n.State {
	case StateEntering:
		switch ev {
		case EventShown:
			n.State = StateVisible
			return n, true
		case EventDismissed:
			// Dismissal during the entrance window skips straight to the
			// exit window.
			n.State = StateDismissing
			return n, true
		}
	case StateVisible:
		switch ev {
		case EventExpired, EventDismissed:
			n.State = StateDismissing
			return n, true
		}
	}
	return n, false
}
