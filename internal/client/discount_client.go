package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

type discountDTO struct {
	Code              string       `json:"code"`
	DiscountType      string       `json:"discountType"`
	DiscountValue     float64      `json:"discountValue"`
	ValidFrom         time.Time    `json:"validFrom"`
	ValidUntil        time.Time    `json:"validUntil"`
	MinimumOrderValue domain.Money `json:"minimumOrderValue"`
	MaxDiscountAmount domain.Money `json:"maxDiscountAmount"`
}

// DiscountClient looks up discount rules by code. It satisfies
// discount.Lookup.
type DiscountClient struct {
	c *Client
}

func NewDiscountClient(c *Client) *DiscountClient {
	return &DiscountClient{c: c}
}

func (dc *DiscountClient) GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	var dto discountDTO
	path := "/discounts/get-by-code/" + url.PathEscape(code)
	if err := dc.c.do(ctx, "discount.getByCode", http.MethodGet, path, "", nil, &dto); err != nil {
		return nil, err
	}
	return &domain.DiscountCode{
		Code:              dto.Code,
		DiscountType:      domain.DiscountType(dto.DiscountType),
		DiscountValue:     dto.DiscountValue,
		ValidFrom:         dto.ValidFrom,
		ValidUntil:        dto.ValidUntil,
		MinimumOrderValue: dto.MinimumOrderValue,
		MaxDiscountAmount: dto.MaxDiscountAmount,
	}, nil
}
