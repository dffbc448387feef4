package core

import (
	"strings"
	"time"
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

const (
	AccountBank       AccountType = "bank"
	AccountSavings    AccountType = "savings"
	AccountCash       AccountType = "cash"
	AccountCreditCard AccountType = "credit-card"
	AccountInvestment AccountType = "investment"
	AccountOther      AccountType = "other"
)

const (
	TypeIncome   TransactionType = "INCOME"
	TypeExpense  TransactionType = "EXPENSE"
	TypeTransfer TransactionType = "TRANSFER"
)

const (
	NotifyBillDue        NotificationType = "BILL_DUE"
	NotifyScheduledTx    NotificationType = "SCHEDULED_TRANSACTION"
	NotifyGoalDeadline   NotificationType = "GOAL_DEADLINE"
	NotifyBudgetExceeded NotificationType = "BUDGET_EXCEEDED"
	NotifyLowBalance     NotificationType = "LOW_BALANCE"
	NotifyGeneral        NotificationType = "GENERAL"
)

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

const (
	RelatedBill        RelatedKind = "bill"
	RelatedScheduledTx RelatedKind = "scheduled_transaction"
	RelatedGoal        RelatedKind = "goal"
)

type (
	Frequency        string
	AccountType      string
	TransactionType  string
	NotificationType string
	Priority         string

	// RelatedKind tags which entity a notification points at. Together with the
	// related ID it forms a typed association instead of an opaque blob.
	RelatedKind string

	// Account carries a stored running balance in minor currency units. The
	// balance is mutated only through ledger operations, never written directly
	// by entity updates (the explicit balance correction is the one exception).
	Account struct {
		ID        string
		UserID    string
		Name      string
		Type      AccountType
		Balance   Money
		Currency  string
		IsActive  bool
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// Transaction is a ledger record. Amount is a positive magnitude; the sign
	// of the balance effect is implied by direction: amount leaves FromAccountID
	// and enters ToAccountID, whichever of the two are set.
	Transaction struct {
		ID            string
		UserID        string
		Description   string
		Amount        Money
		Currency      string
		Type          TransactionType
		FromAccountID string
		ToAccountID   string
		Category      string
		Date          time.Time
		IsRecurring   bool
		Frequency     Frequency
		CreatedAt     time.Time
		UpdatedAt     time.Time
	}

	// ScheduledTransaction has no balance effect until executed. The effect
	// exists iff IsExecuted, applied exactly once.
	ScheduledTransaction struct {
		ID            string
		UserID        string
		Description   string
		Amount        Money
		Currency      string
		Type          TransactionType
		FromAccountID string
		ToAccountID   string
		ScheduledDate time.Time
		Frequency     Frequency
		IsExecuted    bool
		ExecutedDate  *time.Time
		CreatedAt     time.Time
		UpdatedAt     time.Time
	}

	Bill struct {
		ID          string
		UserID      string
		Name        string
		Amount      Money
		Currency    string
		DueDate     time.Time
		IsPaid      bool
		IsRecurring bool
		Frequency   Frequency
		Category    string
		AccountID   string
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	Goal struct {
		ID            string
		UserID        string
		Name          string
		TargetAmount  Money
		CurrentAmount Money
		Deadline      time.Time
		AccountID     string
		CreatedAt     time.Time
		UpdatedAt     time.Time
	}

	Notification struct {
		ID          string
		UserID      string
		Type        NotificationType
		Priority    Priority
		Title       string
		Message     string
		IsRead      bool
		RelatedKind RelatedKind
		RelatedID   string
		CreatedAt   time.Time
	}

	// DashboardSummary aggregates per-user state for the dashboard endpoint.
	DashboardSummary struct {
		TotalBalance        Money
		ActiveAccounts      int
		UnpaidBills         int
		PendingScheduled    int
		UnreadNotifications int
	}
)

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (t AccountType) Valid() bool {
	switch t {
	case AccountBank, AccountSavings, AccountCash, AccountCreditCard, AccountInvestment, AccountOther:
		return true
	}
	return false
}

func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return validationf("account name is required")
	}
	if !a.Type.Valid() {
		return validationf("invalid account type %q", a.Type)
	}
	if strings.TrimSpace(a.Currency) == "" {
		return validationf("currency is required")
	}
	return nil
}

// Validate checks the common transaction fields plus the per-type account
// requirements. The requirements are enforced uniformly on every path:
// an EXPENSE needs a source account and no destination, an INCOME the
// reverse, a TRANSFER both. An account field the type does not use is
// rejected rather than stored and ignored.
func (t Transaction) Validate() error {
	if err := validateMovement(t.Description, t.Amount, t.Type, t.FromAccountID, t.ToAccountID); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return validationf("date is required")
	}
	if t.IsRecurring && !t.Frequency.Valid() {
		return validationf("invalid frequency %q", t.Frequency)
	}
	return nil
}

func (s ScheduledTransaction) Validate() error {
	if err := validateMovement(s.Description, s.Amount, s.Type, s.FromAccountID, s.ToAccountID); err != nil {
		return err
	}
	if s.ScheduledDate.IsZero() {
		return validationf("scheduled date is required")
	}
	if s.Frequency != "" && !s.Frequency.Valid() {
		return validationf("invalid frequency %q", s.Frequency)
	}
	return nil
}

func validateMovement(description string, amount Money, typ TransactionType, fromID, toID string) error {
	if strings.TrimSpace(description) == "" {
		return validationf("description is required")
	}
	if len(description) > 200 {
		return validationf("description too long (max 200 characters)")
	}
	if amount.Cents <= 0 {
		return validationf("amount must be greater than zero")
	}
	if !typ.Valid() {
		return validationf("invalid transaction type %q", typ)
	}
	switch typ {
	case TypeExpense:
		if fromID == "" {
			return validationf("expense requires a source account")
		}
		if toID != "" {
			return validationf("expense cannot have a destination account")
		}
	case TypeIncome:
		if toID == "" {
			return validationf("income requires a destination account")
		}
		if fromID != "" {
			return validationf("income cannot have a source account")
		}
	case TypeTransfer:
		if fromID == "" || toID == "" {
			return validationf("transfer requires both source and destination accounts")
		}
		if fromID == toID {
			return validationf("transfer accounts must differ")
		}
	}
	return nil
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return validationf("bill name is required")
	}
	if b.Amount.Cents <= 0 {
		return validationf("amount must be greater than zero")
	}
	if b.DueDate.IsZero() {
		return validationf("due date is required")
	}
	if b.IsRecurring && !b.Frequency.Valid() {
		return validationf("invalid frequency %q", b.Frequency)
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return validationf("goal name is required")
	}
	if g.TargetAmount.Cents <= 0 {
		return validationf("target amount must be greater than zero")
	}
	if g.CurrentAmount.Cents < 0 {
		return validationf("current amount cannot be negative")
	}
	return nil
}
