package core

// MonthlySummary is the derived aggregate for one month/year pair. It is a
// value snapshot computed at read time, never persisted.
type MonthlySummary struct {
	Month           int // 1-12
	Year            int
	TotalExpenses   Money
	TotalMembers    int
	PerPersonAmount Money
	Balance         Money
}

// ComputeMonthlySummary derives the summary for the given 1-based month.
//
// This is the one place the 1-based summary contract meets the 0-based month
// convention used by the calendar components; the conversion happens here
// via Date.InMonth(year, month-1).
//
// fullAmount is the admin-configured budget ceiling; balance is what remains
// of it after the month's spend. With no members the per-person share is
// zero rather than a division error.
func ComputeMonthlySummary(month, year int, expenses []Expense, totalMembers int, fullAmount Money) MonthlySummary {
	var total int64
	for _, e := range expenses {
		if e.Date.InMonth(year, month-1) {
			total += e.Amount.Cents
		}
	}

	var perPerson int64
	if totalMembers > 0 {
		perPerson = total / int64(totalMembers)
	}

	return MonthlySummary{
		Month:           month,
		Year:            year,
		TotalExpenses:   Money{Cents: total},
		TotalMembers:    totalMembers,
		PerPersonAmount: Money{Cents: perPerson},
		Balance:         Money{Cents: fullAmount.Cents - total},
	}
}

// ZeroSummary is the degraded result returned when the expense source is
// unavailable: the aggregation is display-only and must never block a view.
func ZeroSummary(month, year int) MonthlySummary {
	return MonthlySummary{Month: month, Year: year}
}
