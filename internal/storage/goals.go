package storage

import (
	"context"
	"database/sql"
	"fmt"

	"finbook/internal/core"
)

const goalColumns = "id, user_id, name, target_amount, current_amount, deadline, account_id, created_at, updated_at"

func scanGoal(row interface{ Scan(...any) error }) (core.Goal, error) {
	var (
		g        core.Goal
		deadline sql.NullInt64
		created  int64
		updated  int64
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount.Cents, &g.CurrentAmount.Cents,
		&deadline, &g.AccountID, &created, &updated)
	if err != nil {
		return core.Goal{}, err
	}
	if deadline.Valid {
		g.Deadline = fromDBTime(deadline.Int64)
	}
	g.CreatedAt = fromDBTime(created)
	g.UpdatedAt = fromDBTime(updated)
	return g, nil
}

func goalDeadline(g core.Goal) any {
	if g.Deadline.IsZero() {
		return nil
	}
	return dbTime(g.Deadline)
}

func (q *Queries) InsertGoal(ctx context.Context, g core.Goal) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents,
		goalDeadline(g), g.AccountID, dbTime(g.CreatedAt), dbTime(g.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert goal: %w", mapSQLiteErr(err))
	}
	return nil
}

func (q *Queries) GetGoal(ctx context.Context, userID, id string) (core.Goal, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+goalColumns+` FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	g, err := scanGoal(row)
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal %s: %w", id, mapSQLiteErr(err))
	}
	return g, nil
}

func (q *Queries) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", mapSQLiteErr(err))
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (q *Queries) UpdateGoal(ctx context.Context, g core.Goal) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE goals
		SET name = ?, target_amount = ?, current_amount = ?, deadline = ?, account_id = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		g.Name, g.TargetAmount.Cents, g.CurrentAmount.Cents, goalDeadline(g), g.AccountID,
		dbTime(g.UpdatedAt), g.ID, g.UserID,
	)
	if err != nil {
		return fmt.Errorf("update goal %s: %w", g.ID, mapSQLiteErr(err))
	}
	return requireRow(res, "goal", g.ID)
}

func (q *Queries) DeleteGoal(ctx context.Context, userID, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal %s: %w", id, mapSQLiteErr(err))
	}
	return requireRow(res, "goal", id)
}
