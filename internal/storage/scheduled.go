package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"finbook/internal/core"
)

const scheduledColumns = "id, user_id, description, amount, currency, type, from_account_id, to_account_id, scheduled_date, frequency, is_executed, executed_date, created_at, updated_at"

func scanScheduled(row interface{ Scan(...any) error }) (core.ScheduledTransaction, error) {
	var (
		s          core.ScheduledTransaction
		scheduled  int64
		isExecuted int64
		executed   sql.NullInt64
		created    int64
		updated    int64
	)
	err := row.Scan(&s.ID, &s.UserID, &s.Description, &s.Amount.Cents, &s.Currency, &s.Type,
		&s.FromAccountID, &s.ToAccountID, &scheduled, &s.Frequency, &isExecuted, &executed,
		&created, &updated)
	if err != nil {
		return core.ScheduledTransaction{}, err
	}
	s.ScheduledDate = fromDBTime(scheduled)
	s.IsExecuted = isExecuted != 0
	s.ExecutedDate = fromDBTimePtr(executed)
	s.CreatedAt = fromDBTime(created)
	s.UpdatedAt = fromDBTime(updated)
	return s, nil
}

func (q *Queries) InsertScheduledTransaction(ctx context.Context, s core.ScheduledTransaction) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO scheduled_transactions (`+scheduledColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Description, s.Amount.Cents, s.Currency, s.Type,
		s.FromAccountID, s.ToAccountID, dbTime(s.ScheduledDate), s.Frequency,
		boolToInt(s.IsExecuted), dbTimePtr(s.ExecutedDate), dbTime(s.CreatedAt), dbTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert scheduled transaction: %w", mapSQLiteErr(err))
	}
	return nil
}

func (q *Queries) GetScheduledTransaction(ctx context.Context, userID, id string) (core.ScheduledTransaction, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+scheduledColumns+` FROM scheduled_transactions WHERE id = ? AND user_id = ?`, id, userID)
	s, err := scanScheduled(row)
	if err != nil {
		return core.ScheduledTransaction{}, fmt.Errorf("get scheduled transaction %s: %w", id, mapSQLiteErr(err))
	}
	return s, nil
}

func (q *Queries) ListScheduledTransactions(ctx context.Context, userID string) ([]core.ScheduledTransaction, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+scheduledColumns+` FROM scheduled_transactions
		WHERE user_id = ? ORDER BY scheduled_date`, userID)
	if err != nil {
		return nil, fmt.Errorf("list scheduled transactions: %w", mapSQLiteErr(err))
	}
	defer rows.Close()

	var items []core.ScheduledTransaction
	for rows.Next() {
		s, err := scanScheduled(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled transaction: %w", err)
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// ListPendingScheduledDueBy returns unexecuted items scheduled at or before
// the cutoff, for the reminder scan.
func (q *Queries) ListPendingScheduledDueBy(ctx context.Context, userID string, cutoff time.Time) ([]core.ScheduledTransaction, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+scheduledColumns+` FROM scheduled_transactions
		WHERE user_id = ? AND is_executed = 0 AND scheduled_date <= ?
		ORDER BY scheduled_date`, userID, dbTime(cutoff))
	if err != nil {
		return nil, fmt.Errorf("list pending scheduled transactions: %w", mapSQLiteErr(err))
	}
	defer rows.Close()

	var items []core.ScheduledTransaction
	for rows.Next() {
		s, err := scanScheduled(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled transaction: %w", err)
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (q *Queries) UpdateScheduledTransaction(ctx context.Context, s core.ScheduledTransaction) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE scheduled_transactions
		SET description = ?, amount = ?, currency = ?, type = ?, from_account_id = ?,
		    to_account_id = ?, scheduled_date = ?, frequency = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		s.Description, s.Amount.Cents, s.Currency, s.Type, s.FromAccountID,
		s.ToAccountID, dbTime(s.ScheduledDate), s.Frequency, dbTime(s.UpdatedAt),
		s.ID, s.UserID,
	)
	if err != nil {
		return fmt.Errorf("update scheduled transaction %s: %w", s.ID, mapSQLiteErr(err))
	}
	return requireRow(res, "scheduled transaction", s.ID)
}

// SetScheduledExecution flips the execution flag, stamping updated_at with
// the caller's clock. Callers check the current state first inside the same
// database transaction, so a double execute or undo surfaces as a conflict
// before this write.
func (q *Queries) SetScheduledExecution(ctx context.Context, userID, id string, executed bool, executedAt *time.Time, updatedAt time.Time) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE scheduled_transactions
		SET is_executed = ?, executed_date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		boolToInt(executed), dbTimePtr(executedAt), dbTime(updatedAt), id, userID,
	)
	if err != nil {
		return fmt.Errorf("set execution of scheduled transaction %s: %w", id, mapSQLiteErr(err))
	}
	return requireRow(res, "scheduled transaction", id)
}

func (q *Queries) DeleteScheduledTransaction(ctx context.Context, userID, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM scheduled_transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete scheduled transaction %s: %w", id, mapSQLiteErr(err))
	}
	return requireRow(res, "scheduled transaction", id)
}
