package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkhai207/app-shop-checkout/internal/cart"
	"github.com/mkhai207/app-shop-checkout/internal/client"
)

type CartHandler struct {
	registry *cart.Registry
	provider *cart.Provider
	timeout  time.Duration
}

func NewCartHandler(registry *cart.Registry, provider *cart.Provider, timeout time.Duration) *CartHandler {
	return &CartHandler{
		registry: registry,
		provider: provider,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductVariantID string `json:"product_variant_id"`
	Quantity         int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	cartSnapshot, err := h.provider.GetCart(ctx, userID)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cartSnapshot)
}

// GetState returns the mutation state machine for the session, for UIs
// that render pending/error flags.
func (h *CartHandler) GetState(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	respondJSON(w, http.StatusOK, h.registry.Slice(userID).State())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductVariantID == "" {
		respondError(w, http.StatusBadRequest, "invalid_variant_id", "product_variant_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	state := h.registry.Slice(userID).AddItem(ctx, client.AddCartItemRequest{
		ProductVariantID: req.ProductVariantID,
		Quantity:         req.Quantity,
	})

	respondJSON(w, statusForMutation(state.Add, http.StatusCreated), state)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	state := h.registry.Slice(userID).UpdateItem(ctx, itemID, client.UpdateCartItemRequest{
		Quantity: req.Quantity,
	})

	respondJSON(w, statusForMutation(state.Update, http.StatusOK), state)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id is required")
		return
	}

	state := h.registry.Slice(userID).RemoveItem(ctx, itemID)

	respondJSON(w, statusForMutation(state.Remove, http.StatusOK), state)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	state := h.registry.Slice(userID).ClearCart(ctx)

	respondJSON(w, statusForMutation(state.Clear, http.StatusOK), state)
}

// Reset clears the mutation status flags, used when the UI navigates
// away from cart-affecting views.
func (h *CartHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	slice := h.registry.Slice(userID)
	slice.Reset()
	respondJSON(w, http.StatusOK, slice.State())
}

// statusForMutation keeps mutation failures at 200-level semantics on
// the slice itself but tells HTTP callers something went wrong.
func statusForMutation(m cart.MutationState, successStatus int) int {
	if m.Status == cart.StatusError {
		return http.StatusBadGateway
	}
	return successStatus
}
