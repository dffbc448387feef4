package http

import (
	"context"

	"finbook/internal/core"
	"finbook/internal/services"
)

// The handler-facing service surfaces. Defined here so tests can substitute
// fakes; in production they are *services.LedgerService, *services.EntityService
// and *services.NotificationService.

type LedgerAPI interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
	ExecuteScheduledTransaction(ctx context.Context, userID, id string) (core.ScheduledTransaction, error)
	UndoScheduledTransaction(ctx context.Context, userID, id string) (core.ScheduledTransaction, error)
}

type EntityAPI interface {
	CreateAccount(ctx context.Context, a core.Account) (core.Account, error)
	GetAccount(ctx context.Context, userID, id string) (core.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]core.Account, error)
	UpdateAccount(ctx context.Context, a core.Account) (core.Account, error)
	DeleteAccount(ctx context.Context, userID, id string) error
	CorrectAccountBalance(ctx context.Context, userID, id string, balance core.Money) (core.Account, error)

	CreateScheduledTransaction(ctx context.Context, st core.ScheduledTransaction) (core.ScheduledTransaction, error)
	GetScheduledTransaction(ctx context.Context, userID, id string) (core.ScheduledTransaction, error)
	ListScheduledTransactions(ctx context.Context, userID string) ([]core.ScheduledTransaction, error)
	UpdateScheduledTransaction(ctx context.Context, st core.ScheduledTransaction) (core.ScheduledTransaction, error)
	DeleteScheduledTransaction(ctx context.Context, userID, id string) error

	CreateBill(ctx context.Context, b core.Bill) (core.Bill, error)
	GetBill(ctx context.Context, userID, id string) (core.Bill, error)
	ListBills(ctx context.Context, userID string) ([]core.Bill, error)
	UpdateBill(ctx context.Context, b core.Bill) (core.Bill, error)
	PayBill(ctx context.Context, userID, id string) (core.Bill, error)
	DeleteBill(ctx context.Context, userID, id string) error

	CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	GetGoal(ctx context.Context, userID, id string) (core.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]core.Goal, error)
	UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	DeleteGoal(ctx context.Context, userID, id string) error

	ListNotifications(ctx context.Context, userID string) ([]core.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error

	GetDashboardSummary(ctx context.Context, userID string) (core.DashboardSummary, error)
}

type NotifierAPI interface {
	GenerateDueDateNotifications(ctx context.Context, userID string) (services.GenerationResult, error)
	CleanupOldNotifications(ctx context.Context, userID string) (int64, error)
}
