package storage

import (
	"context"
	"fmt"
	"time"

	"finbook/internal/core"
)

const notificationColumns = "id, user_id, type, priority, title, message, is_read, related_kind, related_id, created_at"

func scanNotification(row interface{ Scan(...any) error }) (core.Notification, error) {
	var (
		n       core.Notification
		isRead  int64
		created int64
	)
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Priority, &n.Title, &n.Message,
		&isRead, &n.RelatedKind, &n.RelatedID, &created)
	if err != nil {
		return core.Notification{}, err
	}
	n.IsRead = isRead != 0
	n.CreatedAt = fromDBTime(created)
	return n, nil
}

// InsertNotification derives the day bucket from the creation time. The
// unique index on the bucket makes a racing duplicate insert fail with a
// conflict instead of producing a second notification for the same item.
func (q *Queries) InsertNotification(ctx context.Context, n core.Notification) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, type, priority, title, message, is_read, related_kind, related_id, day_bucket, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Type, n.Priority, n.Title, n.Message, boolToInt(n.IsRead),
		n.RelatedKind, n.RelatedID, n.CreatedAt.UTC().Format("2006-01-02"), dbTime(n.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", mapSQLiteErr(err))
	}
	return nil
}

func (q *Queries) ListNotifications(ctx context.Context, userID string) ([]core.Notification, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", mapSQLiteErr(err))
	}
	defer rows.Close()

	var items []core.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

func (q *Queries) MarkNotificationRead(ctx context.Context, userID, id string) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, mapSQLiteErr(err))
	}
	return requireRow(res, "notification", id)
}

// HasRecentNotification reports whether a notification of the given type for
// the given related item was created at or after since. Read notifications
// count too: acknowledging a reminder does not re-arm it within the window.
func (q *Queries) HasRecentNotification(ctx context.Context, userID string, typ core.NotificationType, kind core.RelatedKind, relatedID string, since time.Time) (bool, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = ? AND type = ? AND related_kind = ? AND related_id = ? AND created_at >= ?`,
		userID, typ, kind, relatedID, dbTime(since),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check recent notification: %w", mapSQLiteErr(err))
	}
	return n > 0, nil
}

// DeleteReadNotificationsBefore removes read notifications created before the
// cutoff and reports how many were deleted. Unread ones are kept regardless
// of age.
func (q *Queries) DeleteReadNotificationsBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM notifications WHERE user_id = ? AND is_read = 1 AND created_at < ?`,
		userID, dbTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("delete old notifications: %w", mapSQLiteErr(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
