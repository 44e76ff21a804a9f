package http

import (
	"net/http"

	"housetab/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]categoryJSON, len(categories))
	for i, c := range categories {
		out[i] = toCategoryJSON(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.members.ListMembers(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]memberJSON, len(members))
	for i, m := range members {
		out[i] = toMemberJSON(m)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetFullAmount(w http.ResponseWriter, r *http.Request) {
	amount, err := s.budget.GetFullAmount(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fullAmountJSON{AmountCents: amount.Cents})
}

func (s *Server) handleSetFullAmount(w http.ResponseWriter, r *http.Request) {
	var in fullAmountJSON
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.AmountCents < 0 {
		writeError(w, http.StatusUnprocessableEntity, "amount must not be negative")
		return
	}

	if err := s.budget.SetFullAmount(r.Context(), core.Money{Cents: in.AmountCents}); err != nil {
		writeDomainError(w, r, err)
		return
	}

	// The budget feeds the balance line of every cached summary.
	s.invalidateSummaries()
	writeJSON(w, http.StatusOK, fullAmountJSON{AmountCents: in.AmountCents})
}
