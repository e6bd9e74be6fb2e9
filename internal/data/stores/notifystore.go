// Package stores provides SQLite-backed implementations of the storage
// interfaces in internal/core.
package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/data/db"
)

// NotifyStore implements notify.Store using SQLite. Only creation-time
// fields are persisted; lifecycle state is ephemeral and never stored.
type NotifyStore struct {
	db *db.DB
}

var _ notify.Store = (*NotifyStore)(nil)

// NewNotifyStore creates a new SQLite-backed notification store.
func NewNotifyStore(db *db.DB) *NotifyStore {
	return &NotifyStore{db: db}
}

// Save persists a notification.
func (s *NotifyStore) Save(ctx context.Context, n notify.Notification) error {
	_, err := s.db.Conn().ExecContext(ctx,
		`INSERT INTO notifications (id, kind, message, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		n.ID, string(n.Kind), n.Message, n.Duration.Milliseconds(), n.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List returns all notifications ordered by newest first.
func (s *NotifyStore) List(ctx context.Context) ([]notify.Notification, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, kind, message, duration_ms, created_at
		 FROM notifications
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var result []notify.Notification
	for rows.Next() {
		var (
			n          notify.Notification
			kind       string
			durationMs int64
			createdAt  int64
		)
		if err := rows.Scan(&n.ID, &kind, &n.Message, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Kind = notify.Kind(kind)
		n.Duration = time.Duration(durationMs) * time.Millisecond
		n.CreatedAt = time.Unix(0, createdAt)
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return result, nil
}

// Clear deletes all notifications.
func (s *NotifyStore) Clear(ctx context.Context) error {
	if _, err := s.db.Conn().ExecContext(ctx, `DELETE FROM notifications`); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// Count returns the total number of notifications.
func (s *NotifyStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}

// Prune deletes notifications created before the cutoff and returns the
// number deleted.
func (s *NotifyStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.Conn().ExecContext(ctx,
		`DELETE FROM notifications WHERE created_at < ?`, before.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("prune notifications: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune notifications: %w", err)
	}
	return deleted, nil
}
