package http

import (
	"fmt"
	"time"

	"finbook/internal/core"
)

// Wire types. Amounts travel as decimal strings ("12.34") on both sides so
// clients never deal in minor units; dates accept YYYY-MM-DD or RFC 3339.

type transactionRequest struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Type          string `json:"type"`
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Category      string `json:"category"`
	Date          string `json:"date"`
	IsRecurring   bool   `json:"is_recurring"`
	Frequency     string `json:"frequency"`
}

func (req transactionRequest) toDomain(userID string) (core.Transaction, error) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date := time.Now()
	if req.Date != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("%w: invalid date %q", core.ErrValidation, req.Date)
		}
	}
	return core.Transaction{
		UserID:        userID,
		Description:   req.Description,
		Amount:        amount,
		Currency:      req.Currency,
		Type:          core.TransactionType(req.Type),
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Category:      req.Category,
		Date:          date,
		IsRecurring:   req.IsRecurring,
		Frequency:     core.Frequency(req.Frequency),
	}, nil
}

type transactionResponse struct {
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency,omitempty"`
	Type          string    `json:"type"`
	FromAccountID string    `json:"from_account_id,omitempty"`
	ToAccountID   string    `json:"to_account_id,omitempty"`
	Category      string    `json:"category,omitempty"`
	Date          time.Time `json:"date"`
	IsRecurring   bool      `json:"is_recurring"`
	Frequency     string    `json:"frequency,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:            t.ID,
		Description:   t.Description,
		Amount:        t.Amount.String(),
		Currency:      t.Currency,
		Type:          string(t.Type),
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Category:      t.Category,
		Date:          t.Date,
		IsRecurring:   t.IsRecurring,
		Frequency:     string(t.Frequency),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func toTransactionResponses(ts []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

type scheduledRequest struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Type          string `json:"type"`
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	ScheduledDate string `json:"scheduled_date"`
	Frequency     string `json:"frequency"`
}

func (req scheduledRequest) toDomain(userID string) (core.ScheduledTransaction, error) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return core.ScheduledTransaction{}, err
	}
	var scheduled time.Time
	if req.ScheduledDate != "" {
		scheduled, err = parseDate(req.ScheduledDate)
		if err != nil {
			return core.ScheduledTransaction{}, fmt.Errorf("%w: invalid scheduled_date %q", core.ErrValidation, req.ScheduledDate)
		}
	}
	return core.ScheduledTransaction{
		UserID:        userID,
		Description:   req.Description,
		Amount:        amount,
		Currency:      req.Currency,
		Type:          core.TransactionType(req.Type),
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		ScheduledDate: scheduled,
		Frequency:     core.Frequency(req.Frequency),
	}, nil
}

type scheduledResponse struct {
	ID            string     `json:"id"`
	Description   string     `json:"description"`
	Amount        string     `json:"amount"`
	Currency      string     `json:"currency,omitempty"`
	Type          string     `json:"type"`
	FromAccountID string     `json:"from_account_id,omitempty"`
	ToAccountID   string     `json:"to_account_id,omitempty"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	Frequency     string     `json:"frequency,omitempty"`
	IsExecuted    bool       `json:"is_executed"`
	ExecutedDate  *time.Time `json:"executed_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toScheduledResponse(s core.ScheduledTransaction) scheduledResponse {
	return scheduledResponse{
		ID:            s.ID,
		Description:   s.Description,
		Amount:        s.Amount.String(),
		Currency:      s.Currency,
		Type:          string(s.Type),
		FromAccountID: s.FromAccountID,
		ToAccountID:   s.ToAccountID,
		ScheduledDate: s.ScheduledDate,
		Frequency:     string(s.Frequency),
		IsExecuted:    s.IsExecuted,
		ExecutedDate:  s.ExecutedDate,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toScheduledResponses(ss []core.ScheduledTransaction) []scheduledResponse {
	out := make([]scheduledResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, toScheduledResponse(s))
	}
	return out
}

type accountRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
	IsActive *bool  `json:"is_active"`
}

func (req accountRequest) toDomain(userID string) core.Account {
	a := core.Account{
		UserID:   userID,
		Name:     req.Name,
		Type:     core.AccountType(req.Type),
		Currency: req.Currency,
		IsActive: true,
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	return a
}

type accountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Balance   string    `json:"balance"`
	Currency  string    `json:"currency"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAccountResponse(a core.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.Balance.String(),
		Currency:  a.Currency,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAccountResponses(as []core.Account) []accountResponse {
	out := make([]accountResponse, 0, len(as))
	for _, a := range as {
		out = append(out, toAccountResponse(a))
	}
	return out
}

type billRequest struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	DueDate     string `json:"due_date"`
	IsRecurring bool   `json:"is_recurring"`
	Frequency   string `json:"frequency"`
	Category    string `json:"category"`
	AccountID   string `json:"account_id"`
}

func (req billRequest) toDomain(userID string) (core.Bill, error) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return core.Bill{}, err
	}
	var due time.Time
	if req.DueDate != "" {
		due, err = parseDate(req.DueDate)
		if err != nil {
			return core.Bill{}, fmt.Errorf("%w: invalid due_date %q", core.ErrValidation, req.DueDate)
		}
	}
	return core.Bill{
		UserID:      userID,
		Name:        req.Name,
		Amount:      amount,
		Currency:    req.Currency,
		DueDate:     due,
		IsRecurring: req.IsRecurring,
		Frequency:   core.Frequency(req.Frequency),
		Category:    req.Category,
		AccountID:   req.AccountID,
	}, nil
}

type billResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency,omitempty"`
	DueDate     time.Time `json:"due_date"`
	IsPaid      bool      `json:"is_paid"`
	IsRecurring bool      `json:"is_recurring"`
	Frequency   string    `json:"frequency,omitempty"`
	Category    string    `json:"category,omitempty"`
	AccountID   string    `json:"account_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toBillResponse(b core.Bill) billResponse {
	return billResponse{
		ID:          b.ID,
		Name:        b.Name,
		Amount:      b.Amount.String(),
		Currency:    b.Currency,
		DueDate:     b.DueDate,
		IsPaid:      b.IsPaid,
		IsRecurring: b.IsRecurring,
		Frequency:   string(b.Frequency),
		Category:    b.Category,
		AccountID:   b.AccountID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBillResponses(bs []core.Bill) []billResponse {
	out := make([]billResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBillResponse(b))
	}
	return out
}

type goalRequest struct {
	Name          string `json:"name"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	Deadline      string `json:"deadline"`
	AccountID     string `json:"account_id"`
}

func (req goalRequest) toDomain(userID string) (core.Goal, error) {
	target, err := core.ParseAmount(req.TargetAmount)
	if err != nil {
		return core.Goal{}, err
	}
	var current core.Money
	if req.CurrentAmount != "" {
		current, err = core.ParseAmount(req.CurrentAmount)
		if err != nil {
			return core.Goal{}, err
		}
	}
	var deadline time.Time
	if req.Deadline != "" {
		deadline, err = parseDate(req.Deadline)
		if err != nil {
			return core.Goal{}, fmt.Errorf("%w: invalid deadline %q", core.ErrValidation, req.Deadline)
		}
	}
	return core.Goal{
		UserID:        userID,
		Name:          req.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		AccountID:     req.AccountID,
	}, nil
}

type goalResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	TargetAmount  string     `json:"target_amount"`
	CurrentAmount string     `json:"current_amount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	AccountID     string     `json:"account_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toGoalResponse(g core.Goal) goalResponse {
	resp := goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.String(),
		CurrentAmount: g.CurrentAmount.String(),
		AccountID:     g.AccountID,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
	if !g.Deadline.IsZero() {
		d := g.Deadline
		resp.Deadline = &d
	}
	return resp
}

func toGoalResponses(gs []core.Goal) []goalResponse {
	out := make([]goalResponse, 0, len(gs))
	for _, g := range gs {
		out = append(out, toGoalResponse(g))
	}
	return out
}

type notificationResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Priority    string    `json:"priority"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	RelatedKind string    `json:"related_kind,omitempty"`
	RelatedID   string    `json:"related_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toNotificationResponse(n core.Notification) notificationResponse {
	return notificationResponse{
		ID:          n.ID,
		Type:        string(n.Type),
		Priority:    string(n.Priority),
		Title:       n.Title,
		Message:     n.Message,
		IsRead:      n.IsRead,
		RelatedKind: string(n.RelatedKind),
		RelatedID:   n.RelatedID,
		CreatedAt:   n.CreatedAt,
	}
}

func toNotificationResponses(ns []core.Notification) []notificationResponse {
	out := make([]notificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, toNotificationResponse(n))
	}
	return out
}

type dashboardResponse struct {
	TotalBalance        string `json:"total_balance"`
	ActiveAccounts      int    `json:"active_accounts"`
	UnpaidBills         int    `json:"unpaid_bills"`
	PendingScheduled    int    `json:"pending_scheduled"`
	UnreadNotifications int    `json:"unread_notifications"`
}

func toDashboardResponse(s core.DashboardSummary) dashboardResponse {
	return dashboardResponse{
		TotalBalance:        s.TotalBalance.String(),
		ActiveAccounts:      s.ActiveAccounts,
		UnpaidBills:         s.UnpaidBills,
		PendingScheduled:    s.PendingScheduled,
		UnreadNotifications: s.UnreadNotifications,
	}
}
