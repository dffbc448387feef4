// Package services holds the business logic: the ledger engine that keeps
// account balances consistent with transaction records, the notification
// generator, and plain entity orchestration over storage.
package services

import (
	"context"
	"time"

	"finbook/internal/core"
	"finbook/internal/storage"
)

// Tx is the query surface available inside a unit of work. All writes issued
// through it commit or roll back together.
type Tx interface {
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	InsertTransaction(ctx context.Context, t core.Transaction) error
	UpdateTransactionRecord(ctx context.Context, t core.Transaction) error
	DeleteTransactionRecord(ctx context.Context, userID, id string) error

	GetScheduledTransaction(ctx context.Context, userID, id string) (core.ScheduledTransaction, error)
	SetScheduledExecution(ctx context.Context, userID, id string, executed bool, executedAt *time.Time, updatedAt time.Time) error

	AdjustAccountBalance(ctx context.Context, userID, id string, deltaCents int64) error
}

// LedgerStore is what the ledger engine needs from persistence.
type LedgerStore interface {
	Transact(ctx context.Context, fn func(tx Tx) error) error
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	GetScheduledTransaction(ctx context.Context, userID, id string) (core.ScheduledTransaction, error)
}

// ReminderStore is what the notification generator needs.
type ReminderStore interface {
	ListUnpaidBillsDueBy(ctx context.Context, userID string, cutoff time.Time) ([]core.Bill, error)
	ListPendingScheduledDueBy(ctx context.Context, userID string, cutoff time.Time) ([]core.ScheduledTransaction, error)
	HasRecentNotification(ctx context.Context, userID string, typ core.NotificationType, kind core.RelatedKind, relatedID string, since time.Time) (bool, error)
	InsertNotification(ctx context.Context, n core.Notification) error
	DeleteReadNotificationsBefore(ctx context.Context, userID string, cutoff time.Time) (int64, error)
	ListActiveUserIDs(ctx context.Context) ([]string, error)
}

// EntityStore covers the plain owner-scoped CRUD used outside the ledger.
type EntityStore interface {
	CreateAccount(ctx context.Context, a core.Account) error
	GetAccount(ctx context.Context, userID, id string) (core.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]core.Account, error)
	UpdateAccount(ctx context.Context, a core.Account) error
	DeleteAccount(ctx context.Context, userID, id string) error
	SetAccountBalance(ctx context.Context, userID, id string, cents int64) error

	InsertScheduledTransaction(ctx context.Context, s core.ScheduledTransaction) error
	GetScheduledTransaction(ctx context.Context, userID, id string) (core.ScheduledTransaction, error)
	ListScheduledTransactions(ctx context.Context, userID string) ([]core.ScheduledTransaction, error)
	UpdateScheduledTransaction(ctx context.Context, s core.ScheduledTransaction) error
	DeleteScheduledTransaction(ctx context.Context, userID, id string) error

	InsertBill(ctx context.Context, b core.Bill) error
	GetBill(ctx context.Context, userID, id string) (core.Bill, error)
	ListBills(ctx context.Context, userID string) ([]core.Bill, error)
	UpdateBill(ctx context.Context, b core.Bill) error
	SetBillPaid(ctx context.Context, userID, id string, paid bool) error
	DeleteBill(ctx context.Context, userID, id string) error

	InsertGoal(ctx context.Context, g core.Goal) error
	GetGoal(ctx context.Context, userID, id string) (core.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]core.Goal, error)
	UpdateGoal(ctx context.Context, g core.Goal) error
	DeleteGoal(ctx context.Context, userID, id string) error

	ListNotifications(ctx context.Context, userID string) ([]core.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error

	GetDashboardSummary(ctx context.Context, userID string) (core.DashboardSummary, error)
}

// SQLStore adapts *storage.Repository to the service interfaces. The only
// non-promoted method is Transact, which narrows the concrete *storage.Queries
// to the Tx interface.
type SQLStore struct {
	*storage.Repository
}

func NewSQLStore(r *storage.Repository) SQLStore {
	return SQLStore{Repository: r}
}

func (s SQLStore) Transact(ctx context.Context, fn func(tx Tx) error) error {
	return s.Repository.Transact(ctx, func(q *storage.Queries) error {
		return fn(q)
	})
}
