package client

import (
	"context"
	"net/http"
	"time"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

// cartDTO mirrors the backend's cart payload. The backend keeps the
// storefront's camelCase field names on the wire.
type cartDTO struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Items     []cartEntryDTO `json:"cartItems"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type cartEntryDTO struct {
	ID       string     `json:"id"`
	Variant  variantDTO `json:"productVariant"`
	Quantity int        `json:"quantity"`
}

type variantDTO struct {
	ID      string     `json:"id"`
	Product productDTO `json:"product"`
	Color   string     `json:"color"`
	Size    string     `json:"size"`
}

type productDTO struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Price     domain.Money `json:"price"`
	Thumbnail string       `json:"thumbnail"`
}

type cartItemIDDTO struct {
	ID string `json:"id"`
}

type AddCartItemRequest struct {
	ProductVariantID string `json:"productVariantId"`
	Quantity         int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartClient wraps the backend cart endpoints.
type CartClient struct {
	c *Client
}

func NewCartClient(c *Client) *CartClient {
	return &CartClient{c: c}
}

func (cc *CartClient) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	var dto cartDTO
	if err := cc.c.do(ctx, "cart.get", http.MethodGet, "/carts", userID, nil, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

// AddItem creates a cart entry and returns the created entry id.
// An empty id with a success envelope is the caller's problem to treat
// as a failure; the client just reports what the backend said.
func (cc *CartClient) AddItem(ctx context.Context, userID string, req AddCartItemRequest) (string, error) {
	var created cartItemIDDTO
	if err := cc.c.do(ctx, "cart.add", http.MethodPost, "/carts/create", userID, req, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (cc *CartClient) UpdateItem(ctx context.Context, userID, itemID string, req UpdateCartItemRequest) (string, error) {
	var updated cartItemIDDTO
	if err := cc.c.do(ctx, "cart.update", http.MethodPut, "/carts/"+itemID, userID, req, &updated); err != nil {
		return "", err
	}
	return updated.ID, nil
}

func (cc *CartClient) RemoveItem(ctx context.Context, userID, itemID string) (string, error) {
	var removed cartItemIDDTO
	if err := cc.c.do(ctx, "cart.remove", http.MethodDelete, "/carts/"+itemID, userID, nil, &removed); err != nil {
		return "", err
	}
	return removed.ID, nil
}

func (cc *CartClient) ClearCart(ctx context.Context, userID string) error {
	return cc.c.do(ctx, "cart.clear", http.MethodDelete, "/carts", userID, nil, nil)
}

func (d *cartDTO) toDomain() *domain.Cart {
	cart := &domain.Cart{
		ID:        d.ID,
		UserID:    d.UserID,
		Entries:   make([]domain.CartEntry, len(d.Items)),
		UpdatedAt: d.UpdatedAt,
	}
	for i, item := range d.Items {
		cart.Entries[i] = domain.CartEntry{
			ID:       item.ID,
			Quantity: item.Quantity,
			Variant: domain.Variant{
				ID:    item.Variant.ID,
				Color: item.Variant.Color,
				Size:  item.Variant.Size,
				Product: domain.Product{
					ID:        item.Variant.Product.ID,
					Name:      item.Variant.Product.Name,
					Price:     item.Variant.Product.Price,
					Thumbnail: item.Variant.Product.Thumbnail,
				},
			},
		}
	}
	return cart
}
