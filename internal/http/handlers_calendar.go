package http

import (
	"net/http"
	"strconv"
	"time"

	"housetab/internal/core"
	"housetab/internal/services"
)

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var in entryRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := in.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.calendar.Create(r.Context(), e)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newEntryJSON(created))
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	v, err := s.calendar.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryJSON(v))
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	var in entryRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := in.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	e.ID = r.PathValue("id")

	updated, err := s.calendar.Update(r.Context(), e)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newEntryJSON(updated))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.calendar.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListEntries lists a month (?year=&month=, month 0-based) or a
// single day (?date=YYYY-MM-DD). With no parameters it lists the current
// month.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if d := q.Get("date"); d != "" {
		day, err := parseDate(d)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		views, err := s.calendar.ListDay(r.Context(), day)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeEntries(w, views)
		return
	}

	now := time.Now()
	year, month0, ok := parseYearMonth(q.Get("year"), q.Get("month"), now.Year(), int(now.Month())-1)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid year or month")
		return
	}

	views, err := s.calendar.ListMonth(r.Context(), year, month0)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeEntries(w, views)
}

// handleCalendarGrid returns the fixed 42-cell Sunday-first grid for a
// month, plus the neighboring month coordinates for navigation.
func (s *Server) handleCalendarGrid(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	q := r.URL.Query()
	year, month0, ok := parseYearMonth(q.Get("year"), q.Get("month"), now.Year(), int(now.Month())-1)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid year or month")
		return
	}

	type cell struct {
		Date           string `json:"date"`
		InCurrentMonth bool   `json:"inCurrentMonth"`
	}
	type monthRef struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}

	cells := make([]cell, 0, core.GridCells)
	for _, d := range core.MonthGrid(year, month0) {
		cells = append(cells, cell{
			Date:           formatDate(d),
			InCurrentMonth: d.InMonth(year, month0),
		})
	}

	prevYear, prevMonth := core.PreviousMonth(year, month0)
	nextYear, nextMonth := core.NextMonth(year, month0)

	writeJSON(w, http.StatusOK, struct {
		Year  int      `json:"year"`
		Month int      `json:"month"`
		Cells []cell   `json:"cells"`
		Prev  monthRef `json:"prev"`
		Next  monthRef `json:"next"`
	}{
		Year:  year,
		Month: month0,
		Cells: cells,
		Prev:  monthRef{Year: prevYear, Month: prevMonth},
		Next:  monthRef{Year: nextYear, Month: nextMonth},
	})
}

func writeEntries(w http.ResponseWriter, views []services.EntryView) {
	out := make([]entryJSON, len(views))
	for i, v := range views {
		out[i] = toEntryJSON(v)
	}
	writeJSON(w, http.StatusOK, out)
}

// parseYearMonth parses optional year and 0-based month parameters,
// falling back to the given defaults when absent.
func parseYearMonth(yearStr, monthStr string, defYear, defMonth0 int) (int, int, bool) {
	year, month0 := defYear, defMonth0
	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return 0, 0, false
		}
		year = y
	}
	if monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 0 || m > 11 {
			return 0, 0, false
		}
		month0 = m
	}
	return year, month0, true
}
