package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"finbook/internal/core"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "finbook.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedAccount(t *testing.T, repo *Repository, userID, id string, cents int64) {
	t.Helper()
	now := time.Now()
	err := repo.CreateAccount(context.Background(), core.Account{
		ID:        id,
		UserID:    userID,
		Name:      "account " + id,
		Type:      core.AccountBank,
		Balance:   core.Money{Cents: cents},
		Currency:  "EUR",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed account %s: %v", id, err)
	}
}

func accountBalance(t *testing.T, repo *Repository, userID, id string) int64 {
	t.Helper()
	a, err := repo.GetAccount(context.Background(), userID, id)
	if err != nil {
		t.Fatalf("get account %s: %v", id, err)
	}
	return a.Balance.Cents
}

func TestTransactRollsBackOnFailure(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seedAccount(t, repo, "user-1", "acc-1", 100000)

	now := time.Now()
	tx := core.Transaction{
		ID:            "tx-1",
		UserID:        "user-1",
		Description:   "doomed",
		Amount:        core.Money{Cents: 5000},
		Type:          core.TypeExpense,
		FromAccountID: "acc-1",
		Date:          now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := repo.Transact(ctx, func(q *Queries) error {
		if err := q.InsertTransaction(ctx, tx); err != nil {
			return err
		}
		if err := q.AdjustAccountBalance(ctx, "user-1", "acc-1", -5000); err != nil {
			return err
		}
		// The second leg hits a nonexistent account and must sink the
		// whole unit of work, insert and first adjustment included.
		return q.AdjustAccountBalance(ctx, "user-1", "ghost", 5000)
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("transact error = %v, want ErrNotFound", err)
	}

	if _, err := repo.GetTransaction(ctx, "user-1", "tx-1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("get after rollback: error = %v, want ErrNotFound", err)
	}
	if got := accountBalance(t, repo, "user-1", "acc-1"); got != 100000 {
		t.Errorf("balance after rollback = %d, want untouched 100000", got)
	}
}

func TestTransactCommitsAllWrites(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seedAccount(t, repo, "user-1", "acc-1", 100000)

	now := time.Now()
	err := repo.Transact(ctx, func(q *Queries) error {
		if err := q.InsertTransaction(ctx, core.Transaction{
			ID:            "tx-1",
			UserID:        "user-1",
			Description:   "rent",
			Amount:        core.Money{Cents: 80000},
			Type:          core.TypeExpense,
			FromAccountID: "acc-1",
			Date:          now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}); err != nil {
			return err
		}
		return q.AdjustAccountBalance(ctx, "user-1", "acc-1", -80000)
	})
	if err != nil {
		t.Fatalf("transact: %v", err)
	}

	stored, err := repo.GetTransaction(ctx, "user-1", "tx-1")
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if stored.Amount.Cents != 80000 {
		t.Errorf("stored amount = %d, want 80000", stored.Amount.Cents)
	}
	if got := accountBalance(t, repo, "user-1", "acc-1"); got != 20000 {
		t.Errorf("balance = %d, want 20000", got)
	}
}

func TestAdjustAccountBalance(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seedAccount(t, repo, "user-1", "acc-1", 10000)

	if err := repo.AdjustAccountBalance(ctx, "user-1", "acc-1", -2500); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if err := repo.AdjustAccountBalance(ctx, "user-1", "acc-1", 500); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got := accountBalance(t, repo, "user-1", "acc-1"); got != 8000 {
		t.Errorf("balance = %d, want 8000 (deltas must stack relatively)", got)
	}

	// Ownership scoping: another user's adjustment must not land.
	if err := repo.AdjustAccountBalance(ctx, "user-2", "acc-1", -8000); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("foreign adjust error = %v, want ErrNotFound", err)
	}
	if got := accountBalance(t, repo, "user-1", "acc-1"); got != 8000 {
		t.Errorf("balance after foreign adjust = %d, want unchanged 8000", got)
	}
}

func TestInsertNotificationDuplicateConflict(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now()

	base := core.Notification{
		UserID:      "user-1",
		Type:        core.NotifyBillDue,
		Priority:    core.PriorityHigh,
		Title:       "Bill due",
		Message:     "Rent is due",
		RelatedKind: core.RelatedBill,
		RelatedID:   "bill-1",
		CreatedAt:   now,
	}

	first := base
	first.ID = uuid.NewString()
	if err := repo.InsertNotification(ctx, first); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	// Same user, type, and related item on the same day: the dedup index
	// rejects the racing duplicate as a conflict.
	dup := base
	dup.ID = uuid.NewString()
	if err := repo.InsertNotification(ctx, dup); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("duplicate insert error = %v, want ErrConflict", err)
	}

	other := base
	other.ID = uuid.NewString()
	other.RelatedID = "bill-2"
	if err := repo.InsertNotification(ctx, other); err != nil {
		t.Errorf("different related item should insert: %v", err)
	}

	// Notifications without a related item are exempt from the index.
	for i := 0; i < 2; i++ {
		free := base
		free.ID = uuid.NewString()
		free.RelatedKind = ""
		free.RelatedID = ""
		if err := repo.InsertNotification(ctx, free); err != nil {
			t.Errorf("unrelated notification insert %d: %v", i, err)
		}
	}
}

func TestGetTransactionNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetTransaction(context.Background(), "user-1", "missing")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestSetScheduledExecutionStampsCallerTime(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	if err := repo.InsertScheduledTransaction(ctx, core.ScheduledTransaction{
		ID:            "sch-1",
		UserID:        "user-1",
		Description:   "gym",
		Amount:        core.Money{Cents: 5000},
		Type:          core.TypeExpense,
		FromAccountID: "acc-1",
		ScheduledDate: created,
		CreatedAt:     created,
		UpdatedAt:     created,
	}); err != nil {
		t.Fatalf("insert scheduled: %v", err)
	}

	executedAt := created.Add(26 * time.Hour)
	if err := repo.SetScheduledExecution(ctx, "user-1", "sch-1", true, &executedAt, executedAt); err != nil {
		t.Fatalf("set execution: %v", err)
	}

	got, err := repo.GetScheduledTransaction(ctx, "user-1", "sch-1")
	if err != nil {
		t.Fatalf("get scheduled: %v", err)
	}
	if !got.IsExecuted || got.ExecutedDate == nil || !got.ExecutedDate.Equal(executedAt) {
		t.Errorf("executed date = %v, want %v", got.ExecutedDate, executedAt)
	}
	if !got.UpdatedAt.Equal(executedAt) {
		t.Errorf("updated at = %v, want the passed timestamp %v", got.UpdatedAt, executedAt)
	}
}
