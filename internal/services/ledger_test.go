package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"finbook/internal/core"
)

// fakeStore is an in-memory LedgerStore. It applies writes directly, which is
// safe for these tests because every guarded operation checks its conflict
// condition before mutating anything.
type fakeStore struct {
	accounts     map[string]*core.Account
	transactions map[string]core.Transaction
	scheduled    map[string]core.ScheduledTransaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:     make(map[string]*core.Account),
		transactions: make(map[string]core.Transaction),
		scheduled:    make(map[string]core.ScheduledTransaction),
	}
}

func (f *fakeStore) addAccount(userID, id string, cents int64) {
	f.accounts[id] = &core.Account{ID: id, UserID: userID, Balance: core.Money{Cents: cents}}
}

func (f *fakeStore) Transact(ctx context.Context, fn func(tx Tx) error) error {
	return fn(f)
}

func (f *fakeStore) GetTransaction(_ context.Context, userID, id string) (core.Transaction, error) {
	t, ok := f.transactions[id]
	if !ok || t.UserID != userID {
		return core.Transaction{}, core.NotFoundf("transaction %s", id)
	}
	return t, nil
}

func (f *fakeStore) InsertTransaction(_ context.Context, t core.Transaction) error {
	f.transactions[t.ID] = t
	return nil
}

func (f *fakeStore) UpdateTransactionRecord(_ context.Context, t core.Transaction) error {
	if _, ok := f.transactions[t.ID]; !ok {
		return core.NotFoundf("transaction %s", t.ID)
	}
	f.transactions[t.ID] = t
	return nil
}

func (f *fakeStore) DeleteTransactionRecord(_ context.Context, userID, id string) error {
	t, ok := f.transactions[id]
	if !ok || t.UserID != userID {
		return core.NotFoundf("transaction %s", id)
	}
	delete(f.transactions, id)
	return nil
}

func (f *fakeStore) ListTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, t := range f.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) GetScheduledTransaction(_ context.Context, userID, id string) (core.ScheduledTransaction, error) {
	s, ok := f.scheduled[id]
	if !ok || s.UserID != userID {
		return core.ScheduledTransaction{}, core.NotFoundf("scheduled transaction %s", id)
	}
	return s, nil
}

func (f *fakeStore) SetScheduledExecution(_ context.Context, userID, id string, executed bool, executedAt *time.Time, updatedAt time.Time) error {
	s, ok := f.scheduled[id]
	if !ok || s.UserID != userID {
		return core.NotFoundf("scheduled transaction %s", id)
	}
	s.IsExecuted = executed
	s.ExecutedDate = executedAt
	s.UpdatedAt = updatedAt
	f.scheduled[id] = s
	return nil
}

func (f *fakeStore) AdjustAccountBalance(_ context.Context, userID, id string, deltaCents int64) error {
	a, ok := f.accounts[id]
	if !ok || a.UserID != userID {
		return core.NotFoundf("account %s", id)
	}
	a.Balance.Cents += deltaCents
	return nil
}

func (f *fakeStore) balance(id string) int64 {
	return f.accounts[id].Balance.Cents
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishLedgerEvent(_ context.Context, kind, id, userID, action string) error {
	p.events = append(p.events, kind+":"+action)
	return nil
}

func TestCreateTransactionTransfer(t *testing.T) {
	store := newFakeStore()
	store.addAccount("user-1", "acc-a", 100000)
	store.addAccount("user-1", "acc-b", 0)
	pub := &recordingPublisher{}
	svc := NewLedgerService(store, pub)

	created, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:        "user-1",
		Description:   "move savings",
		Amount:        core.Money{Cents: 20000},
		Type:          core.TypeTransfer,
		FromAccountID: "acc-a",
		ToAccountID:   "acc-b",
		Date:          time.Now(),
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated transaction ID")
	}
	if got := store.balance("acc-a"); got != 80000 {
		t.Errorf("source balance = %d, want 80000", got)
	}
	if got := store.balance("acc-b"); got != 20000 {
		t.Errorf("destination balance = %d, want 20000", got)
	}
	if sum := store.balance("acc-a") + store.balance("acc-b"); sum != 100000 {
		t.Errorf("total balance = %d, want 100000 (transfer must conserve money)", sum)
	}
	if len(pub.events) != 1 || pub.events[0] != "transaction:created" {
		t.Errorf("published events = %v, want [transaction:created]", pub.events)
	}
}

func TestCreateTransactionEffects(t *testing.T) {
	tests := []struct {
		name     string
		typ      core.TransactionType
		from, to string
		wantA    int64
		wantB    int64
	}{
		{name: "expense debits source", typ: core.TypeExpense, from: "acc-a", wantA: 95000, wantB: 10000},
		{name: "income credits destination", typ: core.TypeIncome, to: "acc-b", wantA: 100000, wantB: 15000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.addAccount("user-1", "acc-a", 100000)
			store.addAccount("user-1", "acc-b", 10000)
			svc := NewLedgerService(store, nil)

			_, err := svc.CreateTransaction(context.Background(), core.Transaction{
				UserID:        "user-1",
				Description:   "test",
				Amount:        core.Money{Cents: 5000},
				Type:          tt.typ,
				FromAccountID: tt.from,
				ToAccountID:   tt.to,
				Date:          time.Now(),
			})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if got := store.balance("acc-a"); got != tt.wantA {
				t.Errorf("acc-a = %d, want %d", got, tt.wantA)
			}
			if got := store.balance("acc-b"); got != tt.wantB {
				t.Errorf("acc-b = %d, want %d", got, tt.wantB)
			}
		})
	}
}

func TestCreateTransactionRejectsExtraAccount(t *testing.T) {
	store := newFakeStore()
	store.addAccount("user-1", "acc-a", 100000)
	store.addAccount("user-1", "acc-b", 0)
	svc := NewLedgerService(store, nil)

	// An expense with a destination account must fail outright, not debit
	// the source while silently dropping the destination.
	_, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:        "user-1",
		Description:   "mislabeled transfer",
		Amount:        core.Money{Cents: 5000},
		Type:          core.TypeExpense,
		FromAccountID: "acc-a",
		ToAccountID:   "acc-b",
		Date:          time.Now(),
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if len(store.transactions) != 0 {
		t.Error("rejected transaction must not be stored")
	}
	if got := store.balance("acc-a"); got != 100000 {
		t.Errorf("acc-a = %d, want untouched 100000", got)
	}
	if got := store.balance("acc-b"); got != 0 {
		t.Errorf("acc-b = %d, want untouched 0", got)
	}

	_, err = svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:        "user-1",
		Description:   "mislabeled income",
		Amount:        core.Money{Cents: 5000},
		Type:          core.TypeIncome,
		FromAccountID: "acc-a",
		ToAccountID:   "acc-b",
		Date:          time.Now(),
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("income with source: error = %v, want ErrValidation", err)
	}
}

func TestCreateTransactionMissingAccount(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)

	_, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:        "user-1",
		Description:   "ghost",
		Amount:        core.Money{Cents: 100},
		Type:          core.TypeExpense,
		FromAccountID: "nope",
		Date:          time.Now(),
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateTransactionOtherUsersAccount(t *testing.T) {
	store := newFakeStore()
	store.addAccount("user-2", "acc-x", 50000)
	svc := NewLedgerService(store, nil)

	_, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:        "user-1",
		Description:   "poach",
		Amount:        core.Money{Cents: 100},
		Type:          core.TypeExpense,
		FromAccountID: "acc-x",
		Date:          time.Now(),
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound (foreign account must look absent)", err)
	}
	if got := store.balance("acc-x"); got != 50000 {
		t.Errorf("foreign account balance = %d, want untouched 50000", got)
	}
}

func TestUpdateTransactionReversesOldEffect(t *testing.T) {
	store := newFakeStore()
	store.addAccount("user-1", "acc-a", 100000)
	svc := NewLedgerService(store, nil)

	created, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:        "user-1",
		Description:   "dinner",
		Amount:        core.Money{Cents: 5000},
		Type:          core.TypeExpense,
		FromAccountID: "acc-a",
		Date:          time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Amount = core.Money{Cents: 8000}
	if _, err := svc.UpdateTransaction(context.Background(), created); err != nil {
		t.Fatalf("update: %v", err)
	}

	// Net effect is the new amount only, never old plus new.
	if got := store.balance("acc-a"); got != 92000 {
		t.Errorf("balance after update = %d, want 92000", got)
	}
}

func TestUpdateTransactionChangesDirection(t *testing.T) {
	store := newFakeStore()
	store.addAccount("user-1", "acc-a", 100000)
	store.addAccount("user-1", "acc-b", 0)
	svc := NewLedgerService(store, nil)

	created, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:        "user-1",
		Description:   "expense first",
		Amount:        core.Money{Cents: 3000},
		Type:          core.TypeExpense,
		FromAccountID: "acc-a",
		Date:          time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Type = core.TypeTransfer
	created.ToAccountID = "acc-b"
	if _, err := svc.UpdateTransaction(context.Background(), created); err != nil {
		t.Fatalf("update: %v", err)
	}

	if got := store.balance("acc-a"); got != 97000 {
		t.Errorf("acc-a = %d, want 97000", got)
	}
	if got := store.balance("acc-b"); got != 3000 {
		t.Errorf("acc-b = %d, want 3000", got)
	}
}

func TestDeleteTransactionRestoresBalance(t *testing.T) {
	store := newFakeStore()
	store.addAccount("user-1", "acc-a", 100000)
	svc := NewLedgerService(store, nil)

	created, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:        "user-1",
		Description:   "refundable",
		Amount:        core.Money{Cents: 2500},
		Type:          core.TypeExpense,
		FromAccountID: "acc-a",
		Date:          time.Now(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteTransaction(context.Background(), "user-1", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := store.balance("acc-a"); got != 100000 {
		t.Errorf("balance after delete = %d, want restored 100000", got)
	}

	if err := svc.DeleteTransaction(context.Background(), "user-1", created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
	if got := store.balance("acc-a"); got != 100000 {
		t.Errorf("balance after failed delete = %d, want unchanged 100000", got)
	}
}

func TestExecuteScheduledTransaction(t *testing.T) {
	store := newFakeStore()
	store.addAccount("user-1", "acc-a", 100000)
	store.scheduled["sch-1"] = core.ScheduledTransaction{
		ID:            "sch-1",
		UserID:        "user-1",
		Description:   "gym",
		Amount:        core.Money{Cents: 5000},
		Type:          core.TypeExpense,
		FromAccountID: "acc-a",
		ScheduledDate: time.Now(),
	}
	svc := NewLedgerService(store, nil)

	executed, err := svc.ExecuteScheduledTransaction(context.Background(), "user-1", "sch-1")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !executed.IsExecuted || executed.ExecutedDate == nil {
		t.Error("expected execution flags set")
	}
	if got := store.balance("acc-a"); got != 95000 {
		t.Errorf("balance = %d, want 95000", got)
	}

	// A second execute must not apply the effect again.
	if _, err := svc.ExecuteScheduledTransaction(context.Background(), "user-1", "sch-1"); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("double execute error = %v, want ErrConflict", err)
	}
	if got := store.balance("acc-a"); got != 95000 {
		t.Errorf("balance after double execute = %d, want unchanged 95000", got)
	}
}

func TestUndoScheduledTransaction(t *testing.T) {
	store := newFakeStore()
	store.addAccount("user-1", "acc-a", 100000)
	store.scheduled["sch-1"] = core.ScheduledTransaction{
		ID:            "sch-1",
		UserID:        "user-1",
		Description:   "gym",
		Amount:        core.Money{Cents: 5000},
		Type:          core.TypeExpense,
		FromAccountID: "acc-a",
		ScheduledDate: time.Now(),
	}
	svc := NewLedgerService(store, nil)

	if _, err := svc.UndoScheduledTransaction(context.Background(), "user-1", "sch-1"); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("undo before execute error = %v, want ErrConflict", err)
	}

	if _, err := svc.ExecuteScheduledTransaction(context.Background(), "user-1", "sch-1"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	undone, err := svc.UndoScheduledTransaction(context.Background(), "user-1", "sch-1")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if undone.IsExecuted || undone.ExecutedDate != nil {
		t.Error("expected execution flags cleared")
	}
	if got := store.balance("acc-a"); got != 100000 {
		t.Errorf("balance after undo = %d, want restored 100000", got)
	}

	if _, err := svc.UndoScheduledTransaction(context.Background(), "user-1", "sch-1"); !errors.Is(err, core.ErrConflict) {
		t.Errorf("double undo error = %v, want ErrConflict", err)
	}
	if got := store.balance("acc-a"); got != 100000 {
		t.Errorf("balance after double undo = %d, want unchanged 100000", got)
	}
}

func TestScheduledExecutionTimestampsUseServiceClock(t *testing.T) {
	store := newFakeStore()
	store.addAccount("user-1", "acc-a", 100000)
	store.scheduled["sch-1"] = core.ScheduledTransaction{
		ID:            "sch-1",
		UserID:        "user-1",
		Description:   "gym",
		Amount:        core.Money{Cents: 5000},
		Type:          core.TypeExpense,
		FromAccountID: "acc-a",
		ScheduledDate: time.Now(),
	}
	svc := NewLedgerService(store, nil)

	execTime := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return execTime }

	executed, err := svc.ExecuteScheduledTransaction(context.Background(), "user-1", "sch-1")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if executed.ExecutedDate == nil || !executed.ExecutedDate.Equal(execTime) {
		t.Errorf("executed date = %v, want %v", executed.ExecutedDate, execTime)
	}
	if got := store.scheduled["sch-1"].UpdatedAt; !got.Equal(execTime) {
		t.Errorf("updated at after execute = %v, want %v", got, execTime)
	}

	undoTime := execTime.Add(2 * time.Hour)
	svc.now = func() time.Time { return undoTime }

	undone, err := svc.UndoScheduledTransaction(context.Background(), "user-1", "sch-1")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if undone.ExecutedDate != nil {
		t.Error("expected executed date cleared")
	}
	if got := store.scheduled["sch-1"].UpdatedAt; !got.Equal(undoTime) {
		t.Errorf("updated at after undo = %v, want %v", got, undoTime)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	store := newFakeStore()
	store.addAccount("user-1", "acc-a", 100000)
	svc := NewLedgerService(store, nil)

	_, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:      "user-1",
		Description: "",
		Amount:      core.Money{Cents: 100},
		Type:        core.TypeExpense,
		Date:        time.Now(),
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	if len(store.transactions) != 0 {
		t.Error("invalid transaction must not be stored")
	}
	if got := store.balance("acc-a"); got != 100000 {
		t.Errorf("balance = %d, want unchanged 100000", got)
	}
}
