// Package respond writes JSON bodies and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/inventory"
	"github.com/MrJamesThe3rd/till/internal/settings"
	"github.com/MrJamesThe3rd/till/internal/settlement"
)

type errorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// BadRequest is for malformed requests that never reached a service.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// Error writes the status for a service error. Unrecognised errors are logged and hidden.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		JSON(w, status, errorResponse{Error: "internal error"})

		return
	}

	JSON(w, status, errorResponse{Error: err.Error()})
}

func Status(err error) int {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, inventory.ErrInvalidInput),
		errors.Is(err, settlement.ErrInvalidInput),
		errors.Is(err, settings.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, inventory.ErrNotFound),
		errors.Is(err, settlement.ErrNotFound),
		errors.Is(err, settings.ErrUnknownKey):
		return http.StatusNotFound
	case errors.Is(err, inventory.ErrDuplicateItem),
		errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, settlement.ErrNotInitialized):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrInsufficientPayment):
		return http.StatusPaymentRequired
	}

	return http.StatusInternalServerError
}
