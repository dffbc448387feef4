package worker

import (
	"context"
	"testing"
	"time"

	"finbook/internal/amqp"
	"finbook/internal/core"
	"finbook/internal/sheets/memory"
)

type fakeReader struct {
	transactions map[string]core.Transaction
	scheduled    map[string]core.ScheduledTransaction
}

func (f *fakeReader) GetTransaction(_ context.Context, userID, id string) (core.Transaction, error) {
	t, ok := f.transactions[id]
	if !ok || t.UserID != userID {
		return core.Transaction{}, core.NotFoundf("transaction %s not found", id)
	}
	return t, nil
}

func (f *fakeReader) GetScheduledTransaction(_ context.Context, userID, id string) (core.ScheduledTransaction, error) {
	st, ok := f.scheduled[id]
	if !ok || st.UserID != userID {
		return core.ScheduledTransaction{}, core.NotFoundf("scheduled transaction %s not found", id)
	}
	return st, nil
}

func TestHandleLedgerEventCreated(t *testing.T) {
	store := &fakeReader{transactions: map[string]core.Transaction{
		"tx-1": {
			ID: "tx-1", UserID: "user-1", Description: "Groceries",
			Amount: core.Money{Cents: 4250}, Type: core.TypeExpense,
			FromAccountID: "acc-1", Date: time.Now(),
		},
	}}
	mirror := memory.New()
	w := NewMirrorWorker(store, mirror)

	msg := amqp.NewLedgerEventMessage(amqp.KindTransaction, "tx-1", "user-1", amqp.ActionCreated)
	if err := w.HandleLedgerEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}

	rows := mirror.Rows()
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Transaction.Description != "Groceries" {
		t.Fatalf("row description = %q", rows[0].Transaction.Description)
	}
	if rows[0].Action != amqp.ActionCreated {
		t.Fatalf("row action = %q, want created", rows[0].Action)
	}
}

func TestHandleLedgerEventDeletedWritesTombstone(t *testing.T) {
	store := &fakeReader{transactions: map[string]core.Transaction{}}
	mirror := memory.New()
	w := NewMirrorWorker(store, mirror)

	msg := amqp.NewLedgerEventMessage(amqp.KindTransaction, "tx-9", "user-1", amqp.ActionDeleted)
	if err := w.HandleLedgerEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}

	rows := mirror.Rows()
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Transaction.ID != "tx-9" || rows[0].Action != amqp.ActionDeleted {
		t.Fatalf("tombstone row = %+v", rows[0])
	}
}

func TestHandleLedgerEventExecutedScheduled(t *testing.T) {
	executed := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	store := &fakeReader{scheduled: map[string]core.ScheduledTransaction{
		"st-1": {
			ID: "st-1", UserID: "user-1", Description: "Rent",
			Amount: core.Money{Cents: 50000}, Type: core.TypeExpense,
			FromAccountID: "acc-1",
			ScheduledDate: time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC),
			IsExecuted:    true, ExecutedDate: &executed,
		},
	}}
	mirror := memory.New()
	w := NewMirrorWorker(store, mirror)

	msg := amqp.NewLedgerEventMessage(amqp.KindScheduledTransaction, "st-1", "user-1", amqp.ActionExecuted)
	if err := w.HandleLedgerEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}

	rows := mirror.Rows()
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if !rows[0].Transaction.Date.Equal(executed) {
		t.Fatalf("row date = %v, want execution date %v", rows[0].Transaction.Date, executed)
	}
}

func TestHandleLedgerEventUnknownKind(t *testing.T) {
	w := NewMirrorWorker(&fakeReader{}, memory.New())

	msg := amqp.NewLedgerEventMessage("bogus", "x", "user-1", amqp.ActionCreated)
	if err := w.HandleLedgerEvent(context.Background(), msg); err == nil {
		t.Fatal("unknown entity kind should fail")
	}
}
