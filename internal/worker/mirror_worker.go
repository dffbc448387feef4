// Package worker contains the background consumers: the spreadsheet mirror
// fed by ledger events and the periodic reminder pass.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finbook/internal/amqp"
	"finbook/internal/core"
	"finbook/internal/sheets"
)

// LedgerReader is the slice of storage the mirror needs to resolve an event
// into a full record.
type LedgerReader interface {
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	GetScheduledTransaction(ctx context.Context, userID, id string) (core.ScheduledTransaction, error)
}

// MirrorWorker resolves ledger events against the database and appends the
// result to the spreadsheet mirror.
type MirrorWorker struct {
	store  LedgerReader
	mirror sheets.TransactionMirror
}

func NewMirrorWorker(store LedgerReader, mirror sheets.TransactionMirror) *MirrorWorker {
	return &MirrorWorker{store: store, mirror: mirror}
}

// HandleLedgerEvent processes one event. Returning an error requeues the
// message, so anything unrecoverable is logged and swallowed instead.
func (w *MirrorWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"entity_kind", msg.EntityKind,
		"entity_id", msg.EntityID,
		"action", msg.Action)

	row, err := w.resolveRow(ctx, msg)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Deleted (or deleted-then-replayed) records cannot be fetched;
			// mirror a tombstone so the audit trail stays complete.
			row = core.Transaction{ID: msg.EntityID, UserID: msg.UserID, Date: msg.Timestamp}
		} else {
			return fmt.Errorf("resolve ledger event %s/%s: %w", msg.EntityKind, msg.EntityID, err)
		}
	}

	ref, err := w.mirror.Append(ctx, row, msg.Action)
	if err != nil {
		return fmt.Errorf("append to mirror: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored ledger event",
		"entity_id", msg.EntityID,
		"action", msg.Action,
		"row_ref", ref)
	return nil
}

func (w *MirrorWorker) resolveRow(ctx context.Context, msg *amqp.LedgerEventMessage) (core.Transaction, error) {
	switch msg.EntityKind {
	case amqp.KindTransaction:
		if msg.Action == amqp.ActionDeleted {
			return core.Transaction{}, core.ErrNotFound
		}
		return w.store.GetTransaction(ctx, msg.UserID, msg.EntityID)
	case amqp.KindScheduledTransaction:
		st, err := w.store.GetScheduledTransaction(ctx, msg.UserID, msg.EntityID)
		if err != nil {
			return core.Transaction{}, err
		}
		return scheduledAsRow(st), nil
	default:
		return core.Transaction{}, fmt.Errorf("unknown entity kind %q", msg.EntityKind)
	}
}

// scheduledAsRow shapes an executed or undone scheduled transaction as a
// mirror row. Execution date wins over the planned date when present.
func scheduledAsRow(st core.ScheduledTransaction) core.Transaction {
	date := st.ScheduledDate
	if st.ExecutedDate != nil {
		date = *st.ExecutedDate
	}
	return core.Transaction{
		ID:            st.ID,
		UserID:        st.UserID,
		Description:   st.Description,
		Amount:        st.Amount,
		Currency:      st.Currency,
		Type:          st.Type,
		FromAccountID: st.FromAccountID,
		ToAccountID:   st.ToAccountID,
		Date:          date,
	}
}
