package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"housetab/internal/core"
	"housetab/internal/ports"
)

// SyncPublisher emits change notifications for the sheet mirror worker.
// A nil publisher disables mirroring; expense operations never fail
// because a message could not be sent.
type SyncPublisher interface {
	PublishExpenseUpsert(ctx context.Context, expenseID string) error
	PublishExpenseDelete(ctx context.Context, expenseID string) error
}

// ExpenseService orchestrates expense operations across SQLite and AMQP.
// Expense edits and deletes are not time-limited: the ledger is the
// household's shared source of truth and stays correctable.
type ExpenseService struct {
	store      ports.ExpenseStore
	categories ports.CategoryRegistry
	publisher  SyncPublisher
	now        func() time.Time
}

func NewExpenseService(store ports.ExpenseStore, categories ports.CategoryRegistry, publisher SyncPublisher) *ExpenseService {
	return &ExpenseService{
		store:      store,
		categories: categories,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Create validates and saves a new expense. The category name is resolved
// once here and stored on the record; later category renames or deletions
// do not rewrite history.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	e.ID = uuid.NewString()
	e.CategoryName = s.resolveCategoryName(ctx, e.CategoryID)
	e.AddedDate = s.now()

	if err := s.store.CreateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.publishUpsert(ctx, e.ID)

	return e, nil
}

func (s *ExpenseService) Get(ctx context.Context, id string) (core.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

// Update rewrites an expense's date, category, amount and description.
// If the category changed, the stored display name is re-resolved.
func (s *ExpenseService) Update(ctx context.Context, e core.Expense) (core.Expense, error) {
	current, err := s.store.GetExpense(ctx, e.ID)
	if err != nil {
		return core.Expense{}, err
	}

	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if e.CategoryID != current.CategoryID {
		e.CategoryName = s.resolveCategoryName(ctx, e.CategoryID)
	} else {
		e.CategoryName = current.CategoryName
	}
	e.AddedBy = current.AddedBy
	e.AddedDate = current.AddedDate

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	s.publishUpsert(ctx, e.ID)

	return e, nil
}

// Delete removes an expense together with its comment thread, then
// publishes a delete message for the mirror.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return err
	}

	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishExpenseDelete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"expense_id", id, "error", err)
		// Don't fail the request, the expense is gone locally.
	}
	return nil
}

// Filter returns expenses matching the given criteria, most recent first.
// An empty filter returns the whole ledger.
func (s *ExpenseService) Filter(ctx context.Context, f ports.ExpenseFilter) ([]core.Expense, error) {
	return s.store.FilterExpenses(ctx, f)
}

func (s *ExpenseService) publishUpsert(ctx context.Context, id string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseUpsert(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"expense_id", id, "error", err)
	}
}

func (s *ExpenseService) resolveCategoryName(ctx context.Context, categoryID string) string {
	c, err := s.categories.GetCategory(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			slog.WarnContext(ctx, "Category lookup failed, using fallback name",
				"category_id", categoryID, "error", err)
		}
		return core.UnknownCategoryName
	}
	return c.Name
}
