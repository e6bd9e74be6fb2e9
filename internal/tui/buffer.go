package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/beacon/internal/core/notify"
)

// drainNotificationsMsg signals the model that buffered notifications are
// ready to drain.
type drainNotificationsMsg struct{}

// NotificationBuffer carries lifecycle changes from the manager's timer
// goroutines into the Bubble Tea update loop, emitting coalesced drain
// signals.
type NotificationBuffer struct {
	mu            sync.Mutex
	notifications []notify.Notification
	signal        chan struct{}
}

// NewNotificationBuffer constructs a buffer for async notification delivery.
func NewNotificationBuffer() *NotificationBuffer {
	return &NotificationBuffer{
		notifications: make([]notify.Notification, 0),
		signal:        make(chan struct{}, 1),
	}
}

// Push appends a notification change and emits a non-blocking drain signal.
func (b *NotificationBuffer) Push(n notify.Notification) {
	b.mu.Lock()
	b.notifications = append(b.notifications, n)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered notifications and clears the buffer.
func (b *NotificationBuffer) Drain() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.notifications) == 0 {
		return nil
	}

	out := make([]notify.Notification, len(b.notifications))
	copy(out, b.notifications)
	b.notifications = b.notifications[:0]
	return out
}

// WaitForSignal blocks until there are notifications ready to drain.
func (b *NotificationBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainNotificationsMsg{}
	}
}
