package httputil

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/padel-draw/internal/bracket"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

type errorResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error maps a service error to its status: unknown ids are 404, broken
// configurations or draws are 400 with their violations, anything else 500.
func Error(w http.ResponseWriter, msg string, err error) {
	var cfgErr *bracket.ConfigurationError
	switch {
	case errors.Is(err, bracket.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		slog.Warn("not found", "message", msg, "error", err)
		JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &cfgErr):
		slog.Warn("bad request", "message", msg, "error", err)
		JSON(w, http.StatusBadRequest, errorResponse{Error: msg, Violations: cfgErr.Violations()})
	case errors.Is(err, bracket.ErrInvalidConfiguration),
		errors.Is(err, bracket.ErrSlotOccupied),
		errors.Is(err, bracket.ErrNotEnoughSlots):
		slog.Warn("bad request", "message", msg, "error", err)
		JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		slog.Error(msg, "error", err)
		JSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}
