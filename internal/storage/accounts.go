package storage

import (
	"context"
	"database/sql"
	"fmt"

	"finbook/internal/core"
)

const accountColumns = "id, user_id, name, type, balance, currency, is_active, created_at, updated_at"

func scanAccount(row interface{ Scan(...any) error }) (core.Account, error) {
	var (
		a        core.Account
		isActive int64
		created  int64
		updated  int64
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance.Cents, &a.Currency, &isActive, &created, &updated)
	if err != nil {
		return core.Account{}, err
	}
	a.IsActive = isActive != 0
	a.CreatedAt = fromDBTime(created)
	a.UpdatedAt = fromDBTime(updated)
	return a, nil
}

func (q *Queries) CreateAccount(ctx context.Context, a core.Account) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Name, a.Type, a.Balance.Cents, a.Currency,
		boolToInt(a.IsActive), dbTime(a.CreatedAt), dbTime(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", mapSQLiteErr(err))
	}
	return nil
}

func (q *Queries) GetAccount(ctx context.Context, userID, id string) (core.Account, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE id = ? AND user_id = ?`, id, userID)
	a, err := scanAccount(row)
	if err != nil {
		return core.Account{}, fmt.Errorf("get account %s: %w", id, mapSQLiteErr(err))
	}
	return a, nil
}

func (q *Queries) ListAccounts(ctx context.Context, userID string) ([]core.Account, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", mapSQLiteErr(err))
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateAccount writes the mutable metadata fields. The balance column is
// untouched here: it moves only through AdjustAccountBalance and the explicit
// SetAccountBalance correction.
func (q *Queries) UpdateAccount(ctx context.Context, a core.Account) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE accounts
		SET name = ?, type = ?, currency = ?, is_active = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		a.Name, a.Type, a.Currency, boolToInt(a.IsActive), dbTime(a.UpdatedAt),
		a.ID, a.UserID,
	)
	if err != nil {
		return fmt.Errorf("update account %s: %w", a.ID, mapSQLiteErr(err))
	}
	return requireRow(res, "account", a.ID)
}

func (q *Queries) DeleteAccount(ctx context.Context, userID, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete account %s: %w", id, mapSQLiteErr(err))
	}
	return requireRow(res, "account", id)
}

// AdjustAccountBalance applies a signed delta in minor units. The update is
// relative so two concurrent ledger operations never clobber each other's
// effect with a stale read.
func (q *Queries) AdjustAccountBalance(ctx context.Context, userID, id string, deltaCents int64) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE accounts SET balance = balance + ? WHERE id = ? AND user_id = ?`,
		deltaCents, id, userID,
	)
	if err != nil {
		return fmt.Errorf("adjust balance of account %s: %w", id, mapSQLiteErr(err))
	}
	return requireRow(res, "account", id)
}

// SetAccountBalance overwrites the stored balance. Reserved for the manual
// correction endpoint; ledger code must use AdjustAccountBalance.
func (q *Queries) SetAccountBalance(ctx context.Context, userID, id string, cents int64) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE accounts SET balance = ? WHERE id = ? AND user_id = ?`,
		cents, id, userID,
	)
	if err != nil {
		return fmt.Errorf("set balance of account %s: %w", id, mapSQLiteErr(err))
	}
	return requireRow(res, "account", id)
}

func requireRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.NotFoundf("%s %s", entity, id)
	}
	return nil
}
