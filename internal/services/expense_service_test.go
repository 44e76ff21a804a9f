package services

import (
	"context"
	"errors"
	"testing"

	"housetab/internal/core"
	"housetab/internal/ports"
)

func TestExpenseCreate(t *testing.T) {
	repo := newTestRepo(t)
	seedCategory(t, repo, "cat-rice", "Rice")
	pub := &recordingPublisher{}
	clock := newFixedClock()
	svc := NewExpenseService(repo, repo, pub)
	svc.now = clock.Now

	created, err := svc.Create(context.Background(), core.Expense{
		Date:        core.NewDate(2024, 3, 5),
		CategoryID:  "cat-rice",
		Amount:      core.Money{Cents: 15000},
		Description: "rice bags",
		AddedBy:     "mem-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create did not assign an id")
	}
	if created.CategoryName != "Rice" {
		t.Fatalf("category name = %q, want Rice", created.CategoryName)
	}
	if !created.AddedDate.Equal(clock.Now()) {
		t.Fatalf("added date = %v, want clock time", created.AddedDate)
	}
	if len(pub.upserts) != 1 || pub.upserts[0] != created.ID {
		t.Fatalf("published upserts = %v, want [%s]", pub.upserts, created.ID)
	}

	stored, err := repo.GetExpense(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	if stored.CategoryName != "Rice" {
		t.Fatalf("stored category name = %q, want Rice", stored.CategoryName)
	}
}

func TestExpenseCreateUnknownCategory(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewExpenseService(repo, repo, nil)

	created, err := svc.Create(context.Background(), core.Expense{
		Date:        core.NewDate(2024, 3, 5),
		CategoryID:  "gone",
		Amount:      core.Money{Cents: 100},
		Description: "misc",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CategoryName != core.UnknownCategoryName {
		t.Fatalf("category name = %q, want %q", created.CategoryName, core.UnknownCategoryName)
	}
}

func TestExpenseCreateValidation(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewExpenseService(repo, repo, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		e    core.Expense
		want error
	}{
		{"zero amount", core.Expense{Date: core.NewDate(2024, 3, 5), CategoryID: "c", Description: "x"}, core.ErrInvalidAmount},
		{"negative amount", core.Expense{Date: core.NewDate(2024, 3, 5), CategoryID: "c", Amount: core.Money{Cents: -5}, Description: "x"}, core.ErrInvalidAmount},
		{"missing date", core.Expense{CategoryID: "c", Amount: core.Money{Cents: 100}, Description: "x"}, core.ErrMissingDate},
		{"empty category", core.Expense{Date: core.NewDate(2024, 3, 5), Amount: core.Money{Cents: 100}, Description: "x"}, core.ErrEmptyCategory},
		{"blank description", core.Expense{Date: core.NewDate(2024, 3, 5), CategoryID: "c", Amount: core.Money{Cents: 100}, Description: "   "}, core.ErrEmptyText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.e); !errors.Is(err, tt.want) {
				t.Errorf("create: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExpenseCreateSurvivesPublisherFailure(t *testing.T) {
	repo := newTestRepo(t)
	pub := &recordingPublisher{fail: errors.New("broker down")}
	svc := NewExpenseService(repo, repo, pub)

	created, err := svc.Create(context.Background(), core.Expense{
		Date:        core.NewDate(2024, 3, 5),
		CategoryID:  "c",
		Amount:      core.Money{Cents: 100},
		Description: "misc",
	})
	if err != nil {
		t.Fatalf("create should not fail on publish error: %v", err)
	}
	if _, err := repo.GetExpense(context.Background(), created.ID); err != nil {
		t.Fatalf("expense was not saved: %v", err)
	}
}

func TestExpenseUpdate(t *testing.T) {
	repo := newTestRepo(t)
	seedCategory(t, repo, "cat-rice", "Rice")
	seedCategory(t, repo, "cat-oil", "Oil")
	pub := &recordingPublisher{}
	svc := NewExpenseService(repo, repo, pub)

	created, err := svc.Create(context.Background(), core.Expense{
		Date:        core.NewDate(2024, 3, 5),
		CategoryID:  "cat-rice",
		Amount:      core.Money{Cents: 100},
		Description: "rice",
		AddedBy:     "mem-1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.CategoryID = "cat-oil"
	created.Amount = core.Money{Cents: 250}
	created.Description = "oil instead"
	created.AddedBy = "intruder" // must be ignored

	updated, err := svc.Update(context.Background(), created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CategoryName != "Oil" {
		t.Fatalf("category name = %q, want Oil (re-resolved)", updated.CategoryName)
	}
	if updated.AddedBy != "mem-1" {
		t.Fatalf("added by = %q, want original author preserved", updated.AddedBy)
	}
	if len(pub.upserts) != 2 {
		t.Fatalf("published upserts = %d, want 2 (create + update)", len(pub.upserts))
	}

	if _, err := svc.Update(context.Background(), core.Expense{ID: "missing", Date: core.NewDate(2024, 3, 5), CategoryID: "c", Amount: core.Money{Cents: 1}, Description: "x"}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("update missing: got %v, want ErrNotFound", err)
	}
}

func TestExpenseDeletePublishes(t *testing.T) {
	repo := newTestRepo(t)
	pub := &recordingPublisher{}
	svc := NewExpenseService(repo, repo, pub)

	created, err := svc.Create(context.Background(), core.Expense{
		Date: core.NewDate(2024, 3, 5), CategoryID: "c", Amount: core.Money{Cents: 100}, Description: "x",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(pub.deletes) != 1 || pub.deletes[0] != created.ID {
		t.Fatalf("published deletes = %v, want [%s]", pub.deletes, created.ID)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("delete missing: got %v, want ErrNotFound", err)
	}
}

func TestExpenseFilterPassthrough(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewExpenseService(repo, repo, nil)
	ctx := context.Background()

	for _, d := range []int{1, 15, 28} {
		if _, err := svc.Create(ctx, core.Expense{
			Date: core.NewDate(2024, 3, d), CategoryID: "c", Amount: core.Money{Cents: 100}, Description: "x",
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := svc.Filter(ctx, ports.ExpenseFilter{
		StartDate: core.NewDate(2024, 3, 10),
		EndDate:   core.NewDate(2024, 3, 31),
	})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d expenses, want 2", len(got))
	}
}
