package storage

import (
	"context"
	"fmt"

	"finbook/internal/core"
)

// GetDashboardSummary aggregates the per-user counters in one round trip per
// table. Total balance spans active accounts only.
func (q *Queries) GetDashboardSummary(ctx context.Context, userID string) (core.DashboardSummary, error) {
	var s core.DashboardSummary

	err := q.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(balance), 0), COUNT(*)
		FROM accounts WHERE user_id = ? AND is_active = 1`, userID,
	).Scan(&s.TotalBalance.Cents, &s.ActiveAccounts)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("summarize accounts: %w", mapSQLiteErr(err))
	}

	err = q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bills WHERE user_id = ? AND is_paid = 0`, userID,
	).Scan(&s.UnpaidBills)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("count unpaid bills: %w", mapSQLiteErr(err))
	}

	err = q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM scheduled_transactions WHERE user_id = ? AND is_executed = 0`, userID,
	).Scan(&s.PendingScheduled)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("count pending scheduled: %w", mapSQLiteErr(err))
	}

	err = q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID,
	).Scan(&s.UnreadNotifications)
	if err != nil {
		return core.DashboardSummary{}, fmt.Errorf("count unread notifications: %w", mapSQLiteErr(err))
	}

	return s, nil
}

// ListActiveUserIDs returns every user with at least one unpaid bill or
// pending scheduled transaction. The reminder worker iterates this set
// instead of scanning all rows of all users on each tick.
func (q *Queries) ListActiveUserIDs(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT DISTINCT user_id FROM bills WHERE is_paid = 0
		UNION
		SELECT DISTINCT user_id FROM scheduled_transactions WHERE is_executed = 0`)
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", mapSQLiteErr(err))
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
