package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/cardsmith/internal/bridge"
	"github.com/MrSnakeDoc/cardsmith/internal/domain"
	"github.com/MrSnakeDoc/cardsmith/internal/logger"
	"github.com/MrSnakeDoc/cardsmith/internal/pagehost"
	"github.com/MrSnakeDoc/cardsmith/internal/session"
	"github.com/MrSnakeDoc/cardsmith/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, bridge.ErrReceiverUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, bridge.ErrScrapeTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, bridge.ErrScrapeFailed), errors.Is(err, session.ErrNothingToExport):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrScrapeInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrShopNotFound), errors.Is(err, store.ErrHistoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, pagehost.ErrInvalidPageURL):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Server-side failures are logged.
func fail(w http.ResponseWriter, log logger.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway && status != http.StatusGatewayTimeout {
		log.Error("request failed", logger.Error(err))
	}
	writeError(w, status, err.Error())
}

// decodeBody decodes a JSON request body, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
