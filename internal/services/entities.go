package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"finbook/internal/core"
)

// EntityService carries the owner-scoped CRUD that never moves money:
// accounts, scheduled-transaction records, bills, goals, and the notification
// read/list surface. Validation runs here so handlers stay thin.
type EntityService struct {
	store EntityStore
	now   func() time.Time
}

func NewEntityService(store EntityStore) *EntityService {
	return &EntityService{store: store, now: time.Now}
}

func (s *EntityService) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	now := s.now()
	a.ID = uuid.NewString()
	a.IsActive = true
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := s.store.CreateAccount(ctx, a); err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}

func (s *EntityService) GetAccount(ctx context.Context, userID, id string) (core.Account, error) {
	return s.store.GetAccount(ctx, userID, id)
}

func (s *EntityService) ListAccounts(ctx context.Context, userID string) ([]core.Account, error) {
	return s.store.ListAccounts(ctx, userID)
}

func (s *EntityService) UpdateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	a.UpdatedAt = s.now()
	if err := s.store.UpdateAccount(ctx, a); err != nil {
		return core.Account{}, fmt.Errorf("update account: %w", err)
	}
	return s.store.GetAccount(ctx, a.UserID, a.ID)
}

func (s *EntityService) DeleteAccount(ctx context.Context, userID, id string) error {
	return s.store.DeleteAccount(ctx, userID, id)
}

// CorrectAccountBalance overwrites the stored balance outside the ledger.
// It exists for reconciliation against a real bank statement and is loud in
// the logs for that reason.
func (s *EntityService) CorrectAccountBalance(ctx context.Context, userID, id string, balance core.Money) (core.Account, error) {
	slog.WarnContext(ctx, "Manual balance correction",
		"user_id", userID,
		"account_id", id,
		"new_balance", balance)
	if err := s.store.SetAccountBalance(ctx, userID, id, balance.Cents); err != nil {
		return core.Account{}, fmt.Errorf("correct account balance: %w", err)
	}
	return s.store.GetAccount(ctx, userID, id)
}

func (s *EntityService) CreateScheduledTransaction(ctx context.Context, st core.ScheduledTransaction) (core.ScheduledTransaction, error) {
	if err := st.Validate(); err != nil {
		return core.ScheduledTransaction{}, err
	}
	now := s.now()
	st.ID = uuid.NewString()
	st.IsExecuted = false
	st.ExecutedDate = nil
	st.CreatedAt = now
	st.UpdatedAt = now
	if err := s.store.InsertScheduledTransaction(ctx, st); err != nil {
		return core.ScheduledTransaction{}, fmt.Errorf("create scheduled transaction: %w", err)
	}
	return st, nil
}

func (s *EntityService) GetScheduledTransaction(ctx context.Context, userID, id string) (core.ScheduledTransaction, error) {
	return s.store.GetScheduledTransaction(ctx, userID, id)
}

func (s *EntityService) ListScheduledTransactions(ctx context.Context, userID string) ([]core.ScheduledTransaction, error) {
	return s.store.ListScheduledTransactions(ctx, userID)
}

// UpdateScheduledTransaction rewrites the schedulable fields. Execution state
// is owned by the ledger engine and cannot be edited here.
func (s *EntityService) UpdateScheduledTransaction(ctx context.Context, st core.ScheduledTransaction) (core.ScheduledTransaction, error) {
	if err := st.Validate(); err != nil {
		return core.ScheduledTransaction{}, err
	}
	st.UpdatedAt = s.now()
	if err := s.store.UpdateScheduledTransaction(ctx, st); err != nil {
		return core.ScheduledTransaction{}, fmt.Errorf("update scheduled transaction: %w", err)
	}
	return s.store.GetScheduledTransaction(ctx, st.UserID, st.ID)
}

func (s *EntityService) DeleteScheduledTransaction(ctx context.Context, userID, id string) error {
	return s.store.DeleteScheduledTransaction(ctx, userID, id)
}

func (s *EntityService) CreateBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	now := s.now()
	b.ID = uuid.NewString()
	b.IsPaid = false
	b.CreatedAt = now
	b.UpdatedAt = now
	if err := s.store.InsertBill(ctx, b); err != nil {
		return core.Bill{}, fmt.Errorf("create bill: %w", err)
	}
	return b, nil
}

func (s *EntityService) GetBill(ctx context.Context, userID, id string) (core.Bill, error) {
	return s.store.GetBill(ctx, userID, id)
}

func (s *EntityService) ListBills(ctx context.Context, userID string) ([]core.Bill, error) {
	return s.store.ListBills(ctx, userID)
}

func (s *EntityService) UpdateBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	b.UpdatedAt = s.now()
	if err := s.store.UpdateBill(ctx, b); err != nil {
		return core.Bill{}, fmt.Errorf("update bill: %w", err)
	}
	return s.store.GetBill(ctx, b.UserID, b.ID)
}

// PayBill flips the paid flag. Paying has no balance effect; the money moves
// when the matching transaction is recorded.
func (s *EntityService) PayBill(ctx context.Context, userID, id string) (core.Bill, error) {
	if err := s.store.SetBillPaid(ctx, userID, id, true); err != nil {
		return core.Bill{}, fmt.Errorf("pay bill: %w", err)
	}
	return s.store.GetBill(ctx, userID, id)
}

func (s *EntityService) DeleteBill(ctx context.Context, userID, id string) error {
	return s.store.DeleteBill(ctx, userID, id)
}

func (s *EntityService) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	now := s.now()
	g.ID = uuid.NewString()
	g.CreatedAt = now
	g.UpdatedAt = now
	if err := s.store.InsertGoal(ctx, g); err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return g, nil
}

func (s *EntityService) GetGoal(ctx context.Context, userID, id string) (core.Goal, error) {
	return s.store.GetGoal(ctx, userID, id)
}

func (s *EntityService) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	return s.store.ListGoals(ctx, userID)
}

func (s *EntityService) UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	g.UpdatedAt = s.now()
	if err := s.store.UpdateGoal(ctx, g); err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}
	return s.store.GetGoal(ctx, g.UserID, g.ID)
}

func (s *EntityService) DeleteGoal(ctx context.Context, userID, id string) error {
	return s.store.DeleteGoal(ctx, userID, id)
}

func (s *EntityService) ListNotifications(ctx context.Context, userID string) ([]core.Notification, error) {
	return s.store.ListNotifications(ctx, userID)
}

func (s *EntityService) MarkNotificationRead(ctx context.Context, userID, id string) error {
	return s.store.MarkNotificationRead(ctx, userID, id)
}

func (s *EntityService) GetDashboardSummary(ctx context.Context, userID string) (core.DashboardSummary, error) {
	return s.store.GetDashboardSummary(ctx, userID)
}
