package storage

import (
	"context"
	"fmt"

	"finbook/internal/core"
)

const transactionColumns = "id, user_id, description, amount, currency, type, from_account_id, to_account_id, category, tx_date, is_recurring, frequency, created_at, updated_at"

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var (
		t           core.Transaction
		isRecurring int64
		date        int64
		created     int64
		updated     int64
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Description, &t.Amount.Cents, &t.Currency, &t.Type,
		&t.FromAccountID, &t.ToAccountID, &t.Category, &date, &isRecurring, &t.Frequency,
		&created, &updated)
	if err != nil {
		return core.Transaction{}, err
	}
	t.IsRecurring = isRecurring != 0
	t.Date = fromDBTime(date)
	t.CreatedAt = fromDBTime(created)
	t.UpdatedAt = fromDBTime(updated)
	return t, nil
}

func (q *Queries) InsertTransaction(ctx context.Context, t core.Transaction) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Description, t.Amount.Cents, t.Currency, t.Type,
		t.FromAccountID, t.ToAccountID, t.Category, dbTime(t.Date),
		boolToInt(t.IsRecurring), t.Frequency, dbTime(t.CreatedAt), dbTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", mapSQLiteErr(err))
	}
	return nil
}

func (q *Queries) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTransaction(row)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %s: %w", id, mapSQLiteErr(err))
	}
	return t, nil
}

func (q *Queries) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = ? ORDER BY tx_date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", mapSQLiteErr(err))
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// UpdateTransactionRecord rewrites the record fields. The balance effect of
// the change is applied separately by the ledger inside the same database
// transaction.
func (q *Queries) UpdateTransactionRecord(ctx context.Context, t core.Transaction) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE transactions
		SET description = ?, amount = ?, currency = ?, type = ?, from_account_id = ?,
		    to_account_id = ?, category = ?, tx_date = ?, is_recurring = ?, frequency = ?,
		    updated_at = ?
		WHERE id = ? AND user_id = ?`,
		t.Description, t.Amount.Cents, t.Currency, t.Type, t.FromAccountID,
		t.ToAccountID, t.Category, dbTime(t.Date), boolToInt(t.IsRecurring), t.Frequency,
		dbTime(t.UpdatedAt), t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", t.ID, mapSQLiteErr(err))
	}
	return requireRow(res, "transaction", t.ID)
}

func (q *Queries) DeleteTransactionRecord(ctx context.Context, userID, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, mapSQLiteErr(err))
	}
	return requireRow(res, "transaction", id)
}
