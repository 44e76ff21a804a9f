package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"housetab/internal/core"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a bounded request body into v.
func decodeJSON(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer io.Copy(io.Discard, body)

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeDomainError maps domain errors onto HTTP statuses: missing records
// are 404, an expired edit window is 403, validation failures are 422,
// anything else is a 500 with a generic body.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrWindowExpired):
		writeError(w, http.StatusForbidden, "edit window expired")
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyText),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrMissingDate),
		errors.Is(err, core.ErrInvalidPhone),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrInvalidParent),
		errors.Is(err, core.ErrTextTooLong):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
