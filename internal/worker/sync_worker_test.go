package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"housetab/internal/amqp"
	"housetab/internal/core"
	"housetab/internal/sheets/memory"
	"housetab/internal/storage"
)

func newFixture(t *testing.T) (*SyncWorker, *storage.SQLiteRepository, *memory.Mirror) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "housetab.db"))
	if err != nil {
		t.Fatalf("open test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	mirror := memory.New()
	return NewSyncWorker(repo, mirror, 10), repo, mirror
}

func seedExpense(t *testing.T, repo *storage.SQLiteRepository, id string) core.Expense {
	t.Helper()
	e := core.Expense{
		ID:           id,
		Date:         core.NewDate(2024, 3, 5),
		CategoryID:   "cat-1",
		CategoryName: "Rice",
		Amount:       core.Money{Cents: 12345},
		Description:  "seed " + id,
		AddedDate:    time.Now(),
	}
	if err := repo.CreateExpense(context.Background(), e); err != nil {
		t.Fatalf("seed expense %s: %v", id, err)
	}
	return e
}

func TestHandleMessageUpsert(t *testing.T) {
	w, repo, mirror := newFixture(t)
	ctx := context.Background()
	seedExpense(t, repo, "e1")

	if err := w.HandleMessage(ctx, amqp.NewExpenseSyncMessage("e1", amqp.ActionUpsert)); err != nil {
		t.Fatalf("handle upsert: %v", err)
	}

	row, ok := mirror.Get("e1")
	if !ok {
		t.Fatal("expense was not mirrored")
	}
	if row.Amount.Cents != 12345 {
		t.Fatalf("mirrored amount = %d, want 12345", row.Amount.Cents)
	}

	pending, err := repo.PendingSyncExpenses(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after sync = %d, want 0", len(pending))
	}
}

func TestHandleMessageDelete(t *testing.T) {
	w, repo, mirror := newFixture(t)
	ctx := context.Background()
	seedExpense(t, repo, "e1")

	if err := w.HandleMessage(ctx, amqp.NewExpenseSyncMessage("e1", amqp.ActionUpsert)); err != nil {
		t.Fatalf("handle upsert: %v", err)
	}
	if err := w.HandleMessage(ctx, amqp.NewExpenseSyncMessage("e1", amqp.ActionDelete)); err != nil {
		t.Fatalf("handle delete: %v", err)
	}
	if mirror.Len() != 0 {
		t.Fatalf("mirror rows = %d, want 0", mirror.Len())
	}

	// Deleting a never-mirrored id is not an error.
	if err := w.HandleMessage(ctx, amqp.NewExpenseSyncMessage("ghost", amqp.ActionDelete)); err != nil {
		t.Fatalf("handle delete of unknown id: %v", err)
	}
}

func TestHandleMessageVanishedExpense(t *testing.T) {
	w, _, mirror := newFixture(t)

	// Upsert for an id that no longer exists must not requeue forever.
	if err := w.HandleMessage(context.Background(), amqp.NewExpenseSyncMessage("gone", amqp.ActionUpsert)); err != nil {
		t.Fatalf("handle upsert for vanished expense: %v", err)
	}
	if mirror.Len() != 0 {
		t.Fatalf("mirror rows = %d, want 0", mirror.Len())
	}
}

func TestHandleMessageUnknownAction(t *testing.T) {
	w, repo, mirror := newFixture(t)
	seedExpense(t, repo, "e1")

	if err := w.HandleMessage(context.Background(), amqp.NewExpenseSyncMessage("e1", "explode")); err != nil {
		t.Fatalf("unknown action should be dropped, got %v", err)
	}
	if mirror.Len() != 0 {
		t.Fatalf("mirror rows = %d, want 0", mirror.Len())
	}
}

func TestProcessPending(t *testing.T) {
	w, repo, mirror := newFixture(t)
	ctx := context.Background()
	seedExpense(t, repo, "e1")
	seedExpense(t, repo, "e2")

	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if mirror.Len() != 2 {
		t.Fatalf("mirror rows = %d, want 2", mirror.Len())
	}

	// A second sweep finds nothing left to do.
	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("second sweep: %v", err)
	}

	pending, err := repo.PendingSyncExpenses(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending after sweep = %d, want 0", len(pending))
	}
}

func TestProcessPendingMirrorFailure(t *testing.T) {
	w, repo, mirror := newFixture(t)
	ctx := context.Background()
	seedExpense(t, repo, "e1")

	mirror.Fail(errors.New("quota exceeded"))
	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("sweep itself should not fail: %v", err)
	}

	// The expense stays pending for the next sweep.
	pending, err := repo.PendingSyncExpenses(ctx, 10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending after failed sweep = %d, want 1", len(pending))
	}

	mirror.Fail(nil)
	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("recovery sweep: %v", err)
	}
	if mirror.Len() != 1 {
		t.Fatalf("mirror rows = %d, want 1 after recovery", mirror.Len())
	}
}

func TestStartupSyncCheck(t *testing.T) {
	w, repo, mirror := newFixture(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		seedExpense(t, repo, id)
	}

	if err := w.StartupSyncCheck(ctx); err != nil {
		t.Fatalf("startup sync: %v", err)
	}
	if mirror.Len() != 3 {
		t.Fatalf("mirror rows = %d, want 3", mirror.Len())
	}
}
