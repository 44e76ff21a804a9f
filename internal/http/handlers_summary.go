package http

import (
	"net/http"
	"strconv"
	"time"
)

// handleSummary serves the monthly settlement figures. Month is 1-based.
// The response is always 200: on storage trouble the service hands back
// zeroed figures so dashboards keep rendering.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if v := r.URL.Query().Get("month"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			month = n
		}
	}
	if v := r.URL.Query().Get("year"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			year = n
		}
	}

	key := summaryCacheKey(month, year)
	if cached, ok := s.summaryCache.Get(key); ok {
		writeJSON(w, http.StatusOK, toSummaryJSON(cached))
		return
	}

	summary := s.summary.Monthly(r.Context(), month, year)
	s.summaryCache.Set(key, summary)
	writeJSON(w, http.StatusOK, toSummaryJSON(summary))
}
