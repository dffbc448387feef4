package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"finbook/internal/amqp"
	"finbook/internal/core"
)

// LedgerPublisher emits ledger events after a successful mutation. Publishing
// is best-effort; the mutation has already committed when it runs.
type LedgerPublisher interface {
	PublishLedgerEvent(ctx context.Context, entityKind, entityID, userID, action string) error
}

// LedgerService owns every operation that moves money between accounts.
// Each mutation commits the record write and its balance effect in one unit
// of work, so balances and records can never disagree.
type LedgerService struct {
	store LedgerStore
	pub   LedgerPublisher
	now   func() time.Time
}

func NewLedgerService(store LedgerStore, pub LedgerPublisher) *LedgerService {
	return &LedgerService{store: store, pub: pub, now: time.Now}
}

// applyEffect moves the transaction amount through the accounts its type
// touches. sign +1 applies the effect, -1 reverses it.
func applyEffect(ctx context.Context, tx Tx, userID string, amount core.Money, typ core.TransactionType, fromID, toID string, sign int64) error {
	delta := amount.Cents * sign
	switch typ {
	case core.TypeExpense:
		return tx.AdjustAccountBalance(ctx, userID, fromID, -delta)
	case core.TypeIncome:
		return tx.AdjustAccountBalance(ctx, userID, toID, delta)
	case core.TypeTransfer:
		if err := tx.AdjustAccountBalance(ctx, userID, fromID, -delta); err != nil {
			return err
		}
		return tx.AdjustAccountBalance(ctx, userID, toID, delta)
	default:
		return fmt.Errorf("apply effect: unknown transaction type %q", typ)
	}
}

func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	now := s.now()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	err := s.store.Transact(ctx, func(tx Tx) error {
		if err := tx.InsertTransaction(ctx, t); err != nil {
			return err
		}
		return applyEffect(ctx, tx, t.UserID, t.Amount, t.Type, t.FromAccountID, t.ToAccountID, 1)
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	s.publish(ctx, amqp.KindTransaction, t.ID, t.UserID, amqp.ActionCreated)
	return t, nil
}

// UpdateTransaction reverses the stored transaction's effect, rewrites the
// record, and applies the new effect, all in one unit of work. The reversal
// is computed from the pre-update snapshot, never from client input.
func (s *LedgerService) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	err := s.store.Transact(ctx, func(tx Tx) error {
		old, err := tx.GetTransaction(ctx, t.UserID, t.ID)
		if err != nil {
			return err
		}
		if err := applyEffect(ctx, tx, old.UserID, old.Amount, old.Type, old.FromAccountID, old.ToAccountID, -1); err != nil {
			return err
		}
		t.CreatedAt = old.CreatedAt
		t.UpdatedAt = s.now()
		if err := tx.UpdateTransactionRecord(ctx, t); err != nil {
			return err
		}
		return applyEffect(ctx, tx, t.UserID, t.Amount, t.Type, t.FromAccountID, t.ToAccountID, 1)
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.publish(ctx, amqp.KindTransaction, t.ID, t.UserID, amqp.ActionUpdated)
	return t, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, id string) error {
	err := s.store.Transact(ctx, func(tx Tx) error {
		old, err := tx.GetTransaction(ctx, userID, id)
		if err != nil {
			return err
		}
		if err := applyEffect(ctx, tx, old.UserID, old.Amount, old.Type, old.FromAccountID, old.ToAccountID, -1); err != nil {
			return err
		}
		return tx.DeleteTransactionRecord(ctx, userID, id)
	})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publish(ctx, amqp.KindTransaction, id, userID, amqp.ActionDeleted)
	return nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, userID, id)
}

func (s *LedgerService) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, userID)
}

// ExecuteScheduledTransaction applies the scheduled movement and marks it
// executed. A second execute finds the flag already set and fails with a
// conflict before touching any balance.
func (s *LedgerService) ExecuteScheduledTransaction(ctx context.Context, userID, id string) (core.ScheduledTransaction, error) {
	var result core.ScheduledTransaction
	err := s.store.Transact(ctx, func(tx Tx) error {
		st, err := tx.GetScheduledTransaction(ctx, userID, id)
		if err != nil {
			return err
		}
		if st.IsExecuted {
			return core.Conflictf("scheduled transaction %s already executed", id)
		}
		if err := applyEffect(ctx, tx, st.UserID, st.Amount, st.Type, st.FromAccountID, st.ToAccountID, 1); err != nil {
			return err
		}
		executedAt := s.now()
		if err := tx.SetScheduledExecution(ctx, userID, id, true, &executedAt, executedAt); err != nil {
			return err
		}
		st.IsExecuted = true
		st.ExecutedDate = &executedAt
		st.UpdatedAt = executedAt
		result = st
		return nil
	})
	if err != nil {
		return core.ScheduledTransaction{}, fmt.Errorf("execute scheduled transaction: %w", err)
	}

	s.publish(ctx, amqp.KindScheduledTransaction, id, userID, amqp.ActionExecuted)
	return result, nil
}

// UndoScheduledTransaction reverses a prior execution. Undoing one that was
// never executed is a conflict, so the effect can never be reversed twice.
func (s *LedgerService) UndoScheduledTransaction(ctx context.Context, userID, id string) (core.ScheduledTransaction, error) {
	var result core.ScheduledTransaction
	err := s.store.Transact(ctx, func(tx Tx) error {
		st, err := tx.GetScheduledTransaction(ctx, userID, id)
		if err != nil {
			return err
		}
		if !st.IsExecuted {
			return core.Conflictf("scheduled transaction %s is not executed", id)
		}
		if err := applyEffect(ctx, tx, st.UserID, st.Amount, st.Type, st.FromAccountID, st.ToAccountID, -1); err != nil {
			return err
		}
		now := s.now()
		if err := tx.SetScheduledExecution(ctx, userID, id, false, nil, now); err != nil {
			return err
		}
		st.IsExecuted = false
		st.ExecutedDate = nil
		st.UpdatedAt = now
		result = st
		return nil
	})
	if err != nil {
		return core.ScheduledTransaction{}, fmt.Errorf("undo scheduled transaction: %w", err)
	}

	s.publish(ctx, amqp.KindScheduledTransaction, id, userID, amqp.ActionUndone)
	return result, nil
}

func (s *LedgerService) publish(ctx context.Context, kind, id, userID, action string) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishLedgerEvent(ctx, kind, id, userID, action); err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"entity_kind", kind,
			"entity_id", id,
			"action", action,
			"error", err)
	}
}
