package memory

import (
	"context"
	"testing"

	"finbook/internal/core"
)

func TestAppendAndRows(t *testing.T) {
	s := New()

	ref, err := s.Append(context.Background(), core.Transaction{ID: "tx-1", UserID: "user-1"}, "created")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if ref != "mem:1" {
		t.Fatalf("ref = %q, want mem:1", ref)
	}

	if _, err := s.Append(context.Background(), core.Transaction{ID: "tx-1", UserID: "user-1"}, "deleted"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := s.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Action != "created" || rows[1].Action != "deleted" {
		t.Fatalf("actions = %q, %q", rows[0].Action, rows[1].Action)
	}
}
