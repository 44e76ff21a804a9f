package sheets

import (
	"context"

	"housetab/internal/core"
)

// ExpenseMirror is the outbound port for the spreadsheet copy of the
// ledger. The mirror is eventually consistent: the worker drives it from
// sync messages and periodic sweeps, never the request path.
type ExpenseMirror interface {
	// AppendExpense writes or rewrites one expense row and returns a
	// reference to it.
	AppendExpense(ctx context.Context, e core.Expense) (rowRef string, err error)

	// RemoveExpense deletes the row holding the given expense id. Removing
	// an id that was never mirrored is not an error.
	RemoveExpense(ctx context.Context, expenseID string) error
}
