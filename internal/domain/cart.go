package domain

import "time"

// Cart is the server-owned cart snapshot. The backend is the source of
// truth; everything here is a cached copy fetched over REST.
type Cart struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Entries   []CartEntry `json:"entries"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type CartEntry struct {
	ID       string  `json:"id"`
	Variant  Variant `json:"variant"`
	Quantity int     `json:"quantity"`
}

type Variant struct {
	ID      string  `json:"id"`
	Product Product `json:"product"`
	Color   string  `json:"color"`
	Size    string  `json:"size"`
}

type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Thumbnail string `json:"thumbnail"`
}

// LineItem is one variant/quantity pair contributing to an order's
// subtotal. Built either from a cart entry or a buy-now selection and
// immutable for the rest of the checkout attempt.
type LineItem struct {
	ProductVariantID string `json:"product_variant_id"`
	Quantity         int    `json:"quantity"`
	UnitPrice        Money  `json:"unit_price"`
	DisplayName      string `json:"display_name"`
	DisplayColor     string `json:"display_color"`
	DisplaySize      string `json:"display_size"`
}

// BuyNowSelection is the transient single-item purchase stashed by the
// "buy now" action. It lives in the selection store until the first
// resolution consumes it.
type BuyNowSelection struct {
	ProductVariantID string `json:"product_variant_id"`
	Quantity         int    `json:"quantity"`
	UnitPrice        Money  `json:"unit_price"`
	DisplayName      string `json:"display_name"`
	DisplayColor     string `json:"display_color"`
	DisplaySize      string `json:"display_size"`
}

func (s *BuyNowSelection) LineItem() LineItem {
	return LineItem{
		ProductVariantID: s.ProductVariantID,
		Quantity:         s.Quantity,
		UnitPrice:        s.UnitPrice,
		DisplayName:      s.DisplayName,
		DisplayColor:     s.DisplayColor,
		DisplaySize:      s.DisplaySize,
	}
}

func (s *BuyNowSelection) Valid() bool {
	return s != nil && s.ProductVariantID != "" && s.Quantity >= 1 && s.UnitPrice >= 0
}

// EntryLineItems converts cart entries into the uniform line-item shape.
func (c *Cart) EntryLineItems() []LineItem {
	items := make([]LineItem, len(c.Entries))
	for i, e := range c.Entries {
		items[i] = LineItem{
			ProductVariantID: e.Variant.ID,
			Quantity:         e.Quantity,
			UnitPrice:        e.Variant.Product.Price,
			DisplayName:      e.Variant.Product.Name,
			DisplayColor:     e.Variant.Color,
			DisplaySize:      e.Variant.Size,
		}
	}
	return items
}
