package notify

import (
	"context"
	"time"
)

// Store persists notifications to durable storage as a browsable history.
// Only creation-time fields are persisted; lifecycle state is ephemeral
// and never stored.
type Store interface {
	Save(ctx context.Context, n Notification) error
	// List returns all notifications ordered by newest first.
	List(ctx context.Context) ([]Notification, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	// Prune deletes notifications created before the cutoff and returns
	// the number deleted.
	Prune(ctx context.Context, before time.Time) (int64, error)
}
