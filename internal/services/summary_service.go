package services

import (
	"context"
	"log/slog"

	"housetab/internal/core"
	"housetab/internal/ports"
)

// SummaryService computes the monthly aggregate from the ledger, the
// member registry and the configured budget. It never fails: any storage
// error degrades to a zero summary so the view keeps rendering.
type SummaryService struct {
	expenses ports.ExpenseStore
	members  ports.MemberRegistry
	budget   ports.BudgetStore
}

func NewSummaryService(expenses ports.ExpenseStore, members ports.MemberRegistry, budget ports.BudgetStore) *SummaryService {
	return &SummaryService{
		expenses: expenses,
		members:  members,
		budget:   budget,
	}
}

// Monthly returns the summary for a 1-based month.
func (s *SummaryService) Monthly(ctx context.Context, month, year int) core.MonthlySummary {
	if month < 1 || month > 12 {
		slog.WarnContext(ctx, "Summary requested for out-of-range month",
			"month", month, "year", year)
		return core.ZeroSummary(month, year)
	}

	start := core.NewDate(year, month, 1)
	end := core.NewDate(year, month+1, 0) // day 0 normalizes to the month's last day

	expenses, err := s.expenses.FilterExpenses(ctx, ports.ExpenseFilter{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Summary degraded to zero: expense query failed",
			"month", month, "year", year, "error", err)
		return core.ZeroSummary(month, year)
	}

	totalMembers, err := s.members.CountMembers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Summary degraded to zero: member count failed",
			"month", month, "year", year, "error", err)
		return core.ZeroSummary(month, year)
	}

	fullAmount, err := s.budget.GetFullAmount(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Summary degraded to zero: budget lookup failed",
			"month", month, "year", year, "error", err)
		return core.ZeroSummary(month, year)
	}

	return core.ComputeMonthlySummary(month, year, expenses, totalMembers, fullAmount)
}
