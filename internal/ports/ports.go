// Package ports declares the narrow contracts the service layer consumes.
// Storage adapters implement them; services and handlers depend only on the
// interfaces so tests can swap fakes in.
package ports

import (
	"context"

	"housetab/internal/core"
)

// ExpenseFilter narrows a ledger listing. Zero-valued fields are ignored;
// date bounds are inclusive at day granularity.
type ExpenseFilter struct {
	CategoryID string
	StartDate  core.Date
	EndDate    core.Date
}

type (
	// CategoryRegistry resolves category references for display. Get returns
	// core.ErrNotFound for unknown ids; callers fall back to the "Unknown"
	// sentinel label rather than failing.
	CategoryRegistry interface {
		GetCategory(ctx context.Context, id string) (core.Category, error)
		ListCategories(ctx context.Context) ([]core.Category, error)
	}

	// MemberRegistry exposes the fixed group roster.
	MemberRegistry interface {
		ListMembers(ctx context.Context) ([]core.Member, error)
		CountMembers(ctx context.Context) (int, error)
	}

	// BudgetStore persists the admin-configured monthly budget ceiling
	// ("full amount").
	BudgetStore interface {
		GetFullAmount(ctx context.Context) (core.Money, error)
		SetFullAmount(ctx context.Context, amount core.Money) error
	}

	// ExpenseStore is the ledger persistence port.
	ExpenseStore interface {
		CreateExpense(ctx context.Context, e core.Expense) error
		GetExpense(ctx context.Context, id string) (core.Expense, error)
		UpdateExpense(ctx context.Context, e core.Expense) error
		// DeleteExpense removes the expense and its whole comment thread in
		// one transaction.
		DeleteExpense(ctx context.Context, id string) error
		// FilterExpenses returns matching expenses sorted by date descending.
		FilterExpenses(ctx context.Context, f ExpenseFilter) ([]core.Expense, error)
	}

	// EntryStore is the calendar-entry persistence port.
	EntryStore interface {
		CreateEntry(ctx context.Context, e core.CalendarEntry) error
		GetEntry(ctx context.Context, id string) (core.CalendarEntry, error)
		UpdateEntry(ctx context.Context, e core.CalendarEntry) error
		// DeleteEntry removes the entry and its whole comment thread in one
		// transaction.
		DeleteEntry(ctx context.Context, id string) error
		ListEntriesByMonth(ctx context.Context, year, month0 int) ([]core.CalendarEntry, error)
	}

	// CommentStore persists comment threads keyed by parent kind and id.
	CommentStore interface {
		ParentExists(ctx context.Context, kind core.ParentKind, parentID string) (bool, error)
		AddComment(ctx context.Context, kind core.ParentKind, parentID string, c core.Comment) error
		GetComment(ctx context.Context, kind core.ParentKind, parentID, commentID string) (core.Comment, error)
		// ListComments returns comments in insertion order, replies in
		// insertion order within each comment.
		ListComments(ctx context.Context, kind core.ParentKind, parentID string) ([]core.Comment, error)
		// UpdateCommentText replaces the text only; the original timestamp
		// is preserved so the edit window stays anchored to creation.
		UpdateCommentText(ctx context.Context, kind core.ParentKind, parentID, commentID, text string) error
		// DeleteComment removes the comment and all its replies atomically.
		DeleteComment(ctx context.Context, kind core.ParentKind, parentID, commentID string) error
		AddReply(ctx context.Context, commentID string, r core.Reply) error
	}
)
