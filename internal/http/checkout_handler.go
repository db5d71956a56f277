package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkhai207/app-shop-checkout/internal/buynow"
	"github.com/mkhai207/app-shop-checkout/internal/cart"
	"github.com/mkhai207/app-shop-checkout/internal/checkout"
	"github.com/mkhai207/app-shop-checkout/internal/domain"
	"github.com/mkhai207/app-shop-checkout/internal/resolver"
)

type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	provider     *cart.Provider
	selections   buynow.Store
	timeout      time.Duration
}

func NewCheckoutHandler(orchestrator *checkout.Orchestrator, provider *cart.Provider, selections buynow.Store, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		provider:     provider,
		selections:   selections,
		timeout:      timeout,
	}
}

type BuyNowRequestDTO struct {
	ProductVariantID string       `json:"product_variant_id"`
	Quantity         int          `json:"quantity"`
	UnitPrice        domain.Money `json:"unit_price"`
	DisplayName      string       `json:"display_name"`
	DisplayColor     string       `json:"display_color"`
	DisplaySize      string       `json:"display_size"`
}

type ApplyDiscountRequestDTO struct {
	Code string `json:"code"`
}

// POST /api/v1/checkout/buy-now
// Stashes a one-off selection; the next checkout entry consumes it.
func (h *CheckoutHandler) StashBuyNow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req BuyNowRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sel := &domain.BuyNowSelection{
		ProductVariantID: req.ProductVariantID,
		Quantity:         req.Quantity,
		UnitPrice:        req.UnitPrice,
		DisplayName:      req.DisplayName,
		DisplayColor:     req.DisplayColor,
		DisplaySize:      req.DisplaySize,
	}
	if !sel.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_selection", "selection requires a variant id and quantity >= 1")
		return
	}

	if err := h.selections.Put(ctx, userID, sel); err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"status": "stashed"})
}

// POST /api/v1/checkout/discount
// Prices the current cart with a code without consuming anything.
func (h *CheckoutHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req ApplyDiscountRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cartSnapshot, err := h.provider.GetCart(ctx, userID)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	if len(cartSnapshot.Entries) == 0 {
		handleCheckoutError(w, resolver.ErrEmptyCart)
		return
	}

	totals, applied, err := h.orchestrator.Quote(ctx, cartSnapshot.EntryLineItems(), req.Code)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"totals":  totals,
		"applied": applied,
	})
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var form checkout.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	submission, err := h.orchestrator.Submit(ctx, userID, form, isAdminFromContext(r.Context()))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, submission)
}
