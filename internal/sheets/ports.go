// Package sheets defines the outbound port for mirroring ledger rows to a
// spreadsheet. The mirror is append-only: updates and deletes land as new
// rows tagged with the action, so the sheet is an audit trail, not a replica.
package sheets

import (
	"context"

	"finbook/internal/core"
)

type TransactionMirror interface {
	// Append writes one transaction row and returns a reference to where it
	// landed (sheet range or a synthetic position).
	Append(ctx context.Context, t core.Transaction, action string) (rowRef string, err error)
}
