package storage

import (
	"context"
	"fmt"
	"time"

	"finbook/internal/core"
)

const billColumns = "id, user_id, name, amount, currency, due_date, is_paid, is_recurring, frequency, category, account_id, created_at, updated_at"

func scanBill(row interface{ Scan(...any) error }) (core.Bill, error) {
	var (
		b           core.Bill
		due         int64
		isPaid      int64
		isRecurring int64
		created     int64
		updated     int64
	)
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Amount.Cents, &b.Currency, &due,
		&isPaid, &isRecurring, &b.Frequency, &b.Category, &b.AccountID, &created, &updated)
	if err != nil {
		return core.Bill{}, err
	}
	b.DueDate = fromDBTime(due)
	b.IsPaid = isPaid != 0
	b.IsRecurring = isRecurring != 0
	b.CreatedAt = fromDBTime(created)
	b.UpdatedAt = fromDBTime(updated)
	return b, nil
}

func (q *Queries) InsertBill(ctx context.Context, b core.Bill) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO bills (`+billColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.Name, b.Amount.Cents, b.Currency, dbTime(b.DueDate),
		boolToInt(b.IsPaid), boolToInt(b.IsRecurring), b.Frequency, b.Category, b.AccountID,
		dbTime(b.CreatedAt), dbTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert bill: %w", mapSQLiteErr(err))
	}
	return nil
}

func (q *Queries) GetBill(ctx context.Context, userID, id string) (core.Bill, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+billColumns+` FROM bills WHERE id = ? AND user_id = ?`, id, userID)
	b, err := scanBill(row)
	if err != nil {
		return core.Bill{}, fmt.Errorf("get bill %s: %w", id, mapSQLiteErr(err))
	}
	return b, nil
}

func (q *Queries) ListBills(ctx context.Context, userID string) ([]core.Bill, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+billColumns+` FROM bills WHERE user_id = ? ORDER BY due_date`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", mapSQLiteErr(err))
	}
	defer rows.Close()

	var bills []core.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// ListUnpaidBillsDueBy returns unpaid bills with a due date at or before the
// cutoff, for the reminder scan.
func (q *Queries) ListUnpaidBillsDueBy(ctx context.Context, userID string, cutoff time.Time) ([]core.Bill, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+billColumns+` FROM bills
		WHERE user_id = ? AND is_paid = 0 AND due_date <= ?
		ORDER BY due_date`, userID, dbTime(cutoff))
	if err != nil {
		return nil, fmt.Errorf("list unpaid bills: %w", mapSQLiteErr(err))
	}
	defer rows.Close()

	var bills []core.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (q *Queries) UpdateBill(ctx context.Context, b core.Bill) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE bills
		SET name = ?, amount = ?, currency = ?, due_date = ?, is_recurring = ?,
		    frequency = ?, category = ?, account_id = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		b.Name, b.Amount.Cents, b.Currency, dbTime(b.DueDate), boolToInt(b.IsRecurring),
		b.Frequency, b.Category, b.AccountID, dbTime(b.UpdatedAt), b.ID, b.UserID,
	)
	if err != nil {
		return fmt.Errorf("update bill %s: %w", b.ID, mapSQLiteErr(err))
	}
	return requireRow(res, "bill", b.ID)
}

func (q *Queries) SetBillPaid(ctx context.Context, userID, id string, paid bool) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE bills SET is_paid = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		boolToInt(paid), dbTime(time.Now()), id, userID,
	)
	if err != nil {
		return fmt.Errorf("set paid on bill %s: %w", id, mapSQLiteErr(err))
	}
	return requireRow(res, "bill", id)
}

func (q *Queries) DeleteBill(ctx context.Context, userID, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM bills WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete bill %s: %w", id, mapSQLiteErr(err))
	}
	return requireRow(res, "bill", id)
}
