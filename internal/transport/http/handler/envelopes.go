package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-otp-auth/internal/domain"
)

// APIResponse is the generic response wrapper for all endpoints.
type APIResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: message})
}

func writeFailure(w http.ResponseWriter, status int, message string, errs []string) {
	writeJSON(w, status, APIResponse{Success: false, Message: message, Errors: errs})
}

// httpError maps a service error onto the response envelope. Domain
// errors become a 400 carrying their caller-facing message; anything
// else is an infrastructure failure, logged in full and surfaced as a
// generic 500.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrDeliveryFailed):
		writeFailure(w, http.StatusBadRequest, err.Error(), nil)
	default:
		slog.Error("request failed", "err", err)
		writeFailure(w, http.StatusInternalServerError, "an error occurred", nil)
	}
}
