package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/taskvault/internal/domain"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidBody      = "Invalid request body"
	msgInvalidEmail     = "Invalid email address"
	msgInternal         = "Internal server error"
)

// errInvalidBody reports a request body that could not be decoded.
var errInvalidBody = errors.New("invalid request body")

// writeServiceError maps a service error to its HTTP status. Messages of
// *domain.Error values are passed through unchanged; anything else is logged
// and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errInvalidBody) {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	var derr *domain.Error
	if !errors.As(err, &derr) {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	switch {
	case errors.Is(derr, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, derr.Message)
	case errors.Is(derr, domain.ErrConflict):
		writeError(w, http.StatusBadRequest, derr.Message)
	case errors.Is(derr, domain.ErrUnauthorized):
		writeUnauthorized(w, derr.Message)
	case errors.Is(derr, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, derr.Message)
	default:
		slog.ErrorContext(r.Context(), "unmapped error kind",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, message)
}
