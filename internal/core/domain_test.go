package core

import (
	"errors"
	"testing"
	"time"
)

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatal("expected error for zero")
	}
	if err := (Money{Cents: -100}).Validate(); err == nil {
		t.Fatal("expected error for negative")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2024, 3, 1),
		CategoryID:  "cat-1",
		Amount:      Money{Cents: 100},
		Description: "groceries",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		e    Expense
		want error
	}{
		{"zero date", Expense{CategoryID: "c", Amount: Money{Cents: 1}, Description: "a"}, ErrMissingDate},
		{"empty category", Expense{Date: NewDate(2024, 3, 1), Amount: Money{Cents: 1}, Description: "a"}, ErrEmptyCategory},
		{"zero amount", Expense{Date: NewDate(2024, 3, 1), CategoryID: "c", Description: "a"}, ErrInvalidAmount},
		{"negative amount", Expense{Date: NewDate(2024, 3, 1), CategoryID: "c", Amount: Money{Cents: -5}, Description: "a"}, ErrInvalidAmount},
		{"blank description", Expense{Date: NewDate(2024, 3, 1), CategoryID: "c", Amount: Money{Cents: 1}, Description: "   "}, ErrEmptyText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.e.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCalendarEntryValidate(t *testing.T) {
	good := CalendarEntry{
		Date:       NewDate(2024, 3, 1),
		CategoryID: "cat-1",
		Text:       "plumber at noon",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero price is fine: the price is optional on entries.
	good.Price = Money{}
	if err := good.Validate(); err != nil {
		t.Fatalf("zero price should be ok, got %v", err)
	}
	good.Price = Money{Cents: -1}
	if err := good.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative price: got %v, want ErrInvalidAmount", err)
	}

	bad := CalendarEntry{Date: NewDate(2024, 3, 1), CategoryID: "", Text: "x"}
	if err := bad.Validate(); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("got %v, want ErrEmptyCategory", err)
	}
}

func TestMemberValidate(t *testing.T) {
	good := Member{Name: "Aye", Phone: "0912345678", AddedDate: time.Now()}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		m    Member
		want error
	}{
		{"empty name", Member{Phone: "0912345678"}, ErrEmptyName},
		{"short phone", Member{Name: "A", Phone: "12345"}, ErrInvalidPhone},
		{"long phone", Member{Name: "A", Phone: "09123456789"}, ErrInvalidPhone},
		{"non-digit phone", Member{Name: "A", Phone: "09123abc78"}, ErrInvalidPhone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.m.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestValidateCommentText(t *testing.T) {
	if err := ValidateCommentText("looks right"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := ValidateCommentText("  \t "); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("got %v, want ErrEmptyText", err)
	}
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}
	if err := ValidateCommentText(string(long)); !errors.Is(err, ErrTextTooLong) {
		t.Fatalf("got %v, want ErrTextTooLong", err)
	}
}

func TestParentKind(t *testing.T) {
	if !ParentExpense.Valid() || !ParentEntry.Valid() {
		t.Fatal("known kinds should be valid")
	}
	if ParentKind("reply").Valid() {
		t.Fatal("unknown kind should be invalid")
	}
}
