package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mkhai207/app-shop-checkout/internal/buynow"
	"github.com/mkhai207/app-shop-checkout/internal/checkout"
	"github.com/mkhai207/app-shop-checkout/internal/client"
	"github.com/mkhai207/app-shop-checkout/internal/discount"
	"github.com/mkhai207/app-shop-checkout/internal/resolver"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details string            `json:"details,omitempty"`
}

var respondLogger = zap.NewNop()

// SetLogger wires the package logger used when response encoding fails.
func SetLogger(l *zap.Logger) {
	respondLogger = l
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		respondLogger.Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleCheckoutError maps domain failures onto HTTP statuses and
// stable error codes.
func handleCheckoutError(w http.ResponseWriter, err error) {
	var validation *checkout.ValidationError
	if errors.As(err, &validation) {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "invalid checkout form",
			Code:   "validation_failed",
			Fields: validation.Fields,
		})
		return
	}

	var belowMin *discount.BelowMinimumError
	switch {
	case errors.Is(err, discount.ErrEmptyCode):
		respondError(w, http.StatusBadRequest, "discount_empty_code", err.Error())
	case errors.Is(err, discount.ErrNotFound):
		respondError(w, http.StatusNotFound, "discount_not_found", err.Error())
	case errors.Is(err, discount.ErrExpired):
		respondError(w, http.StatusUnprocessableEntity, "discount_expired", err.Error())
	case errors.As(err, &belowMin):
		respondError(w, http.StatusUnprocessableEntity, "discount_below_minimum", err.Error())
	case errors.Is(err, resolver.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, resolver.ErrMissingSelection):
		respondError(w, http.StatusConflict, "missing_selection", err.Error())
	case errors.Is(err, buynow.ErrNoSelection):
		respondError(w, http.StatusConflict, "missing_selection", err.Error())
	default:
		var backend *client.BackendError
		if errors.As(err, &backend) {
			respondError(w, http.StatusBadGateway, "backend_error", backend.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
