package core

import (
	"errors"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		Description:   "groceries",
		Amount:        Money{Cents: 4500},
		Type:          TypeExpense,
		FromAccountID: "acc-1",
		Date:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr bool
	}{
		{name: "valid expense", mutate: func(*Transaction) {}},
		{name: "empty description", mutate: func(tx *Transaction) { tx.Description = "  " }, wantErr: true},
		{name: "zero amount", mutate: func(tx *Transaction) { tx.Amount = Money{} }, wantErr: true},
		{name: "negative amount", mutate: func(tx *Transaction) { tx.Amount = Money{Cents: -100} }, wantErr: true},
		{name: "bad type", mutate: func(tx *Transaction) { tx.Type = "REFUND" }, wantErr: true},
		{name: "expense without source", mutate: func(tx *Transaction) { tx.FromAccountID = "" }, wantErr: true},
		{name: "expense with destination", mutate: func(tx *Transaction) { tx.ToAccountID = "acc-2" }, wantErr: true},
		{name: "income without destination", mutate: func(tx *Transaction) {
			tx.Type = TypeIncome
			tx.FromAccountID = ""
		}, wantErr: true},
		{name: "income with destination", mutate: func(tx *Transaction) {
			tx.Type = TypeIncome
			tx.FromAccountID = ""
			tx.ToAccountID = "acc-2"
		}},
		{name: "income with source", mutate: func(tx *Transaction) {
			tx.Type = TypeIncome
			tx.ToAccountID = "acc-2"
		}, wantErr: true},
		{name: "transfer missing destination", mutate: func(tx *Transaction) { tx.Type = TypeTransfer }, wantErr: true},
		{name: "transfer same account", mutate: func(tx *Transaction) {
			tx.Type = TypeTransfer
			tx.ToAccountID = tx.FromAccountID
		}, wantErr: true},
		{name: "transfer both accounts", mutate: func(tx *Transaction) {
			tx.Type = TypeTransfer
			tx.ToAccountID = "acc-2"
		}},
		{name: "zero date", mutate: func(tx *Transaction) { tx.Date = time.Time{} }, wantErr: true},
		{name: "recurring without frequency", mutate: func(tx *Transaction) { tx.IsRecurring = true }, wantErr: true},
		{name: "recurring monthly", mutate: func(tx *Transaction) {
			tx.IsRecurring = true
			tx.Frequency = Monthly
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("error = %v, want ErrValidation", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestScheduledTransactionValidate(t *testing.T) {
	s := ScheduledTransaction{
		Description:   "rent",
		Amount:        Money{Cents: 120000},
		Type:          TypeTransfer,
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		ScheduledDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Frequency:     Monthly,
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("valid scheduled transaction rejected: %v", err)
	}

	s.ScheduledDate = time.Time{}
	if err := s.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("zero scheduled date: error = %v, want ErrValidation", err)
	}
}

func TestBillValidate(t *testing.T) {
	b := Bill{
		Name:    "Rent",
		Amount:  Money{Cents: 384000},
		DueDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("valid bill rejected: %v", err)
	}

	b.Amount = Money{}
	if err := b.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("zero amount: error = %v, want ErrValidation", err)
	}
}

func TestAccountValidate(t *testing.T) {
	a := Account{Name: "Checking", Type: AccountBank, Currency: "EUR"}
	if err := a.Validate(); err != nil {
		t.Fatalf("valid account rejected: %v", err)
	}
	a.Type = "wallet"
	if err := a.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("bad type: error = %v, want ErrValidation", err)
	}
}
