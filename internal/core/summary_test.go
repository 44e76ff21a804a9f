package core

import "testing"

func TestComputeMonthlySummary(t *testing.T) {
	expenses := []Expense{
		{Date: NewDate(2024, 3, 5), Amount: Money{Cents: 10000}},
		{Date: NewDate(2024, 3, 20), Amount: Money{Cents: 5000}},
		{Date: NewDate(2024, 4, 1), Amount: Money{Cents: 99900}},
	}

	got := ComputeMonthlySummary(3, 2024, expenses, 3, Money{Cents: 50000})

	if got.TotalExpenses.Cents != 15000 {
		t.Fatalf("TotalExpenses = %d, want 15000 (April must be excluded)", got.TotalExpenses.Cents)
	}
	if got.PerPersonAmount.Cents != 5000 {
		t.Fatalf("PerPersonAmount = %d, want 5000", got.PerPersonAmount.Cents)
	}
	if got.Balance.Cents != 35000 {
		t.Fatalf("Balance = %d, want 35000", got.Balance.Cents)
	}
	if got.Month != 3 || got.Year != 2024 {
		t.Fatalf("month/year = %d/%d, want 3/2024", got.Month, got.Year)
	}
}

func TestComputeMonthlySummaryNoMembers(t *testing.T) {
	expenses := []Expense{
		{Date: NewDate(2024, 3, 5), Amount: Money{Cents: 10000}},
	}

	got := ComputeMonthlySummary(3, 2024, expenses, 0, Money{Cents: 20000})

	if got.PerPersonAmount.Cents != 0 {
		t.Fatalf("PerPersonAmount = %d, want 0 with no members", got.PerPersonAmount.Cents)
	}
	if got.TotalExpenses.Cents != 10000 {
		t.Fatalf("TotalExpenses = %d, want 10000", got.TotalExpenses.Cents)
	}
}

func TestComputeMonthlySummaryYearBoundary(t *testing.T) {
	expenses := []Expense{
		{Date: NewDate(2023, 12, 31), Amount: Money{Cents: 100}},
		{Date: NewDate(2024, 12, 31), Amount: Money{Cents: 200}},
	}

	got := ComputeMonthlySummary(12, 2024, expenses, 1, Money{})
	if got.TotalExpenses.Cents != 200 {
		t.Fatalf("TotalExpenses = %d, want 200 (same month of other year excluded)", got.TotalExpenses.Cents)
	}
}

func TestComputeMonthlySummaryOverspend(t *testing.T) {
	expenses := []Expense{
		{Date: NewDate(2024, 3, 5), Amount: Money{Cents: 30000}},
	}

	got := ComputeMonthlySummary(3, 2024, expenses, 2, Money{Cents: 20000})
	if got.Balance.Cents != -10000 {
		t.Fatalf("Balance = %d, want -10000 when spend exceeds the budget", got.Balance.Cents)
	}
}

func TestZeroSummary(t *testing.T) {
	got := ZeroSummary(7, 2025)
	if got.Month != 7 || got.Year != 2025 {
		t.Fatalf("month/year = %d/%d", got.Month, got.Year)
	}
	if got.TotalExpenses.Cents != 0 || got.PerPersonAmount.Cents != 0 || got.Balance.Cents != 0 || got.TotalMembers != 0 {
		t.Fatal("zero summary must have all-zero values")
	}
}
