package core

import "time"

// GridCells is the fixed size of the calendar grid: six Sunday-first weeks
// covering the month plus lead and trail days.
const GridCells = 42

// MonthGrid derives the 42-cell grid for the given year and 0-based month.
// The first cell is the Sunday on or before the first of the month; cells
// from adjacent months fill the remainder. Pure derivation, no state.
func MonthGrid(year, month0 int) []Date {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]Date, GridCells)
	for i := range cells {
		cells[i] = Date{Time: start.AddDate(0, 0, i)}
	}
	return cells
}

// PreviousMonth steps month navigation back one month, wrapping the year at
// the 0/11 boundary. Months are 0-based here, matching the calendar UI state.
func PreviousMonth(year, month0 int) (int, int) {
	month0--
	if month0 < 0 {
		month0 = 11
		year--
	}
	return year, month0
}

// NextMonth steps month navigation forward one month, wrapping the year.
func NextMonth(year, month0 int) (int, int) {
	month0++
	if month0 > 11 {
		month0 = 0
		year++
	}
	return year, month0
}
