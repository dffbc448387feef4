package google

import (
	"context"
	"testing"
	"time"

	"finbook/internal/core"
)

func TestRowValues(t *testing.T) {
	tx := core.Transaction{
		ID:            "tx-1",
		UserID:        "user-1",
		Description:   "Groceries",
		Amount:        core.Money{Cents: 4250},
		Currency:      "EUR",
		Type:          core.TypeExpense,
		FromAccountID: "acc-1",
		Date:          time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}

	row := rowValues(tx, "created")
	if len(row) != 10 {
		t.Fatalf("row has %d columns, want 10", len(row))
	}
	if row[0] != "2026-03-15" {
		t.Errorf("date column = %v, want 2026-03-15", row[0])
	}
	if row[2] != "created" {
		t.Errorf("action column = %v, want created", row[2])
	}
	if row[5] != "42.50" {
		t.Errorf("amount column = %v, want 42.50", row[5])
	}
	if row[9] != "tx-1" {
		t.Errorf("id column = %v, want tx-1", row[9])
	}
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Config{})
	if err == nil {
		t.Fatal("New should fail without a spreadsheet ID")
	}
}

func TestLoadJSON(t *testing.T) {
	b, err := loadJSON(`{"a":1}`, "")
	if err != nil {
		t.Fatalf("inline JSON: %v", err)
	}
	if string(b) != `{"a":1}` {
		t.Fatalf("inline JSON = %s", b)
	}

	if _, err := loadJSON("", "/non/existent/file.json"); err == nil {
		t.Fatal("missing file should fail")
	}
	if _, err := loadJSON("", ""); err == nil {
		t.Fatal("empty config should fail")
	}
}
