package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"housetab/internal/amqp"
	"housetab/internal/core"
	"housetab/internal/log"
	"housetab/internal/sheets"
	"housetab/internal/storage"
)

// SyncWorker mirrors the expense ledger from SQLite to a spreadsheet.
// AMQP messages are the fast path; the periodic pending sweep recovers
// anything a lost message left behind.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	mirror    sheets.ExpenseMirror
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, mirror sheets.ExpenseMirror, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		mirror:    mirror,
		batchSize: batchSize,
	}
}

// HandleMessage processes a single expense sync message from AMQP.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.ExpenseSyncMessage) error {
	switch msg.Action {
	case amqp.ActionUpsert:
		return w.syncExpense(ctx, msg.ExpenseID)
	case amqp.ActionDelete:
		return w.removeExpense(ctx, msg.ExpenseID)
	default:
		// Unknown actions are dropped rather than requeued forever.
		slog.WarnContext(ctx, "Dropping sync message with unknown action",
			"expense_id", msg.ExpenseID, "action", msg.Action)
		return nil
	}
}

// ProcessPending mirrors expenses that haven't been synced yet. This is
// the backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.PendingSyncExpenses(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending expenses: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending expenses", "count", len(pending))

	for _, e := range pending {
		if err := w.mirrorExpense(ctx, e); err != nil {
			slog.ErrorContext(ctx, "Failed to sync expense", "expense_id", e.ID, "error", err)
		}
	}

	return nil
}

// StartupSyncCheck drains the pending backlog at worker startup, useful
// to recover from missed messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	// Wider batch than the periodic sweep; downtime backlogs can be long.
	pending, err := w.storage.PendingSyncExpenses(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending expenses for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending expenses found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending expenses on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0
	for _, e := range pending {
		if err := w.mirrorExpense(ctx, e); err != nil {
			slog.ErrorContext(ctx, "Failed to sync expense during startup",
				"expense_id", e.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) syncExpense(ctx context.Context, expenseID string) error {
	e, err := w.storage.GetExpense(ctx, expenseID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Deleted before the message was consumed; the delete message
			// will follow or already ran.
			slog.InfoContext(ctx, "Expense vanished before sync, skipping",
				"expense_id", expenseID)
			return nil
		}
		return fmt.Errorf("get expense from storage: %w", err)
	}
	return w.mirrorExpense(ctx, e)
}

func (w *SyncWorker) mirrorExpense(ctx context.Context, e core.Expense) error {
	ref, err := w.mirror.AppendExpense(ctx, e)
	if err != nil {
		if markErr := w.storage.MarkExpenseSyncError(ctx, e.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "expense_id", e.ID, "error", markErr)
		}
		return fmt.Errorf("append to sheets: %w", err)
	}

	if err := w.storage.MarkExpenseSynced(ctx, e.ID); err != nil {
		// The mirror write worked; the sweep will retry the bookkeeping.
		slog.ErrorContext(ctx, "Failed to mark as synced", "expense_id", e.ID, "error", err)
	}

	fields := log.NewFields().
		WithOperation(log.OpSync).
		WithExpense(e.ID, e.CategoryID, e.Amount.Cents)
	fields[log.FieldSheetsRef] = ref
	slog.InfoContext(ctx, "Successfully synced expense", fields.ToSlice()...)

	return nil
}

func (w *SyncWorker) removeExpense(ctx context.Context, expenseID string) error {
	if err := w.mirror.RemoveExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("remove from sheets: %w", err)
	}
	slog.InfoContext(ctx, "Removed expense from mirror", log.FieldExpenseID, expenseID)
	return nil
}
