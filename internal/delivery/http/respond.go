package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/swenautos/escrow-service/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err.Error())
	}
}

// writeError maps the domain sentinels onto HTTP status codes. Anything
// unrecognized is a 500 with a generic body so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrDoubleFunding),
		errors.Is(err, domain.ErrAlreadyRated),
		errors.Is(err, domain.ErrDuplicateResolution),
		errors.Is(err, domain.ErrNotEligible),
		errors.Is(err, domain.ErrListingInactive):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrAmountMismatch),
		errors.Is(err, domain.ErrInsufficientInventory),
		errors.Is(err, domain.ErrInvalidRestore),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrScoreOutOfRange):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	}

	body := errorResponse{Error: err.Error()}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err.Error())
		body.Error = "internal error"
	}
	writeJSON(w, status, body)
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", domain.ErrInvalidArgument)
	}
	return nil
}

func pathID(r *http.Request, name string) (uint64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a numeric id", domain.ErrInvalidArgument, name)
	}
	return id, nil
}

// parseAmount parses a decimal string amount. Empty means absent and maps
// to nil, which operations interpret as "full balance".
func parseAmount(raw string) (*big.Int, error) {
	if raw == "" {
		return nil, nil
	}
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("%w: amount %q is not a base-10 integer", domain.ErrInvalidArgument, raw)
	}
	return amount, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

type pageResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
}
