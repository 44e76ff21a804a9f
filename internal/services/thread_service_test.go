package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"housetab/internal/core"
	"housetab/internal/storage"
)

func newThreadFixture(t *testing.T) (*ThreadService, *storage.SQLiteRepository, *fixedClock) {
	t.Helper()
	repo := newTestRepo(t)
	if err := repo.CreateExpense(context.Background(), core.Expense{
		ID: "exp-1", Date: core.NewDate(2024, 3, 5), CategoryID: "c",
		Amount: core.Money{Cents: 100}, Description: "seed", AddedDate: time.Now(),
	}); err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	clock := newFixedClock()
	svc := NewThreadService(repo, core.NewEditWindow())
	svc.now = clock.Now
	return svc, repo, clock
}

func TestThreadAdd(t *testing.T) {
	svc, _, clock := newThreadFixture(t)
	ctx := context.Background()

	c, err := svc.Add(ctx, core.ParentExpense, "exp-1", core.Comment{
		AuthorID: "mem-1", AuthorName: "Aye", Text: "was this shared?",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.ID == "" {
		t.Fatal("add did not assign an id")
	}
	if !c.CreatedAt.Equal(clock.Now()) {
		t.Fatalf("created at = %v, want clock time", c.CreatedAt)
	}

	if _, err := svc.Add(ctx, core.ParentExpense, "missing", core.Comment{Text: "hi"}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("add on missing parent: got %v, want ErrNotFound", err)
	}
	if _, err := svc.Add(ctx, core.ParentKind("meal"), "exp-1", core.Comment{Text: "hi"}); !errors.Is(err, core.ErrInvalidParent) {
		t.Fatalf("add with bad kind: got %v, want ErrInvalidParent", err)
	}
	if _, err := svc.Add(ctx, core.ParentExpense, "exp-1", core.Comment{Text: "  "}); !errors.Is(err, core.ErrEmptyText) {
		t.Fatalf("blank comment: got %v, want ErrEmptyText", err)
	}
}

func TestThreadEditWindow(t *testing.T) {
	svc, _, clock := newThreadFixture(t)
	ctx := context.Background()

	c, err := svc.Add(ctx, core.ParentExpense, "exp-1", core.Comment{Text: "original"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	clock.offset = 3 * time.Minute
	edited, err := svc.Edit(ctx, core.ParentExpense, "exp-1", c.ID, "revised")
	if err != nil {
		t.Fatalf("edit inside window: %v", err)
	}
	if edited.Text != "revised" {
		t.Fatalf("text = %q, want revised", edited.Text)
	}
	if !edited.CreatedAt.Equal(c.CreatedAt) {
		t.Fatal("editing must not move the creation timestamp")
	}

	// The window stays anchored to creation: a later edit still fails even
	// though the first edit happened recently.
	clock.offset = 5 * time.Minute
	if _, err := svc.Edit(ctx, core.ParentExpense, "exp-1", c.ID, "again"); !errors.Is(err, core.ErrWindowExpired) {
		t.Fatalf("edit after window: got %v, want ErrWindowExpired", err)
	}
}

func TestThreadDeleteWindow(t *testing.T) {
	svc, _, clock := newThreadFixture(t)
	ctx := context.Background()

	c, err := svc.Add(ctx, core.ParentExpense, "exp-1", core.Comment{Text: "oops"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	clock.offset = 10 * time.Minute
	if err := svc.Delete(ctx, core.ParentExpense, "exp-1", c.ID); !errors.Is(err, core.ErrWindowExpired) {
		t.Fatalf("delete after window: got %v, want ErrWindowExpired", err)
	}

	clock.offset = time.Minute
	if err := svc.Delete(ctx, core.ParentExpense, "exp-1", c.ID); err != nil {
		t.Fatalf("delete inside window: %v", err)
	}
	if err := svc.Delete(ctx, core.ParentExpense, "exp-1", c.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestThreadReplies(t *testing.T) {
	svc, _, clock := newThreadFixture(t)
	ctx := context.Background()

	c, err := svc.Add(ctx, core.ParentExpense, "exp-1", core.Comment{Text: "question"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Replies are accepted even long after the comment's own window closed.
	clock.offset = time.Hour
	rep, err := svc.Reply(ctx, core.ParentExpense, "exp-1", c.ID, core.Reply{
		AuthorID: "mem-2", AuthorName: "Mya", Text: "answer",
	})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if rep.ID == "" {
		t.Fatal("reply did not assign an id")
	}

	if _, err := svc.Reply(ctx, core.ParentExpense, "exp-1", "missing", core.Reply{Text: "hi"}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("reply to missing comment: got %v, want ErrNotFound", err)
	}
	if _, err := svc.Reply(ctx, core.ParentExpense, "exp-1", c.ID, core.Reply{Text: ""}); !errors.Is(err, core.ErrEmptyText) {
		t.Fatalf("blank reply: got %v, want ErrEmptyText", err)
	}

	views, err := svc.List(ctx, core.ParentExpense, "exp-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 || len(views[0].Replies) != 1 {
		t.Fatalf("thread = %+v, want one comment with one reply", views)
	}
	if views[0].Replies[0].Text != "answer" {
		t.Fatalf("reply text = %q, want answer", views[0].Replies[0].Text)
	}
}

func TestThreadFlagsRecomputedPerRead(t *testing.T) {
	svc, _, clock := newThreadFixture(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, core.ParentExpense, "exp-1", core.Comment{Text: "fresh"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	views, err := svc.List(ctx, core.ParentExpense, "exp-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !views[0].CanEdit || !views[0].CanDelete {
		t.Fatal("fresh comment must read as mutable")
	}

	clock.offset = 10 * time.Minute
	views, err = svc.List(ctx, core.ParentExpense, "exp-1")
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if views[0].CanEdit || views[0].CanDelete {
		t.Fatal("the same comment must read as frozen after the window")
	}
}

func TestThreadListAfterParentDeleted(t *testing.T) {
	svc, repo, _ := newThreadFixture(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, core.ParentExpense, "exp-1", core.Comment{Text: "doomed"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.DeleteExpense(ctx, "exp-1"); err != nil {
		t.Fatalf("delete expense: %v", err)
	}

	// A removed parent is a missing resource, not an empty thread.
	if _, err := svc.List(ctx, core.ParentExpense, "exp-1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("list after parent delete: got %v, want ErrNotFound", err)
	}
}
