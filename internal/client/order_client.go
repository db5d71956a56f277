package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

type orderLineItemDTO struct {
	ProductVariantID string       `json:"productVariantId"`
	Quantity         int          `json:"quantity"`
	UnitPrice        domain.Money `json:"unitPrice"`
}

type createOrderRequest struct {
	PaymentMethod   string             `json:"paymentMethod"`
	ShippingAddress string             `json:"shippingAddress"`
	RecipientName   string             `json:"recipientName"`
	RecipientPhone  string             `json:"recipientPhone"`
	DiscountCode    string             `json:"discountCode,omitempty"`
	Items           []orderLineItemDTO `json:"items"`
	Status          string             `json:"status,omitempty"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	VnpayURL string `json:"vnpayUrl"`
}

type orderDTO struct {
	ID            string       `json:"id"`
	Status        string       `json:"status"`
	PaymentMethod string       `json:"paymentMethod"`
	TotalAmount   domain.Money `json:"totalAmount"`
}

type Order struct {
	ID            string       `json:"id"`
	Status        string       `json:"status"`
	PaymentMethod string       `json:"payment_method"`
	TotalAmount   domain.Money `json:"total_amount"`
}

// OrderClient wraps the backend order endpoints.
type OrderClient struct {
	c *Client
}

func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{c: c}
}

// Submit posts an order draft. The backend answers with the created
// order id and, for online payment, the gateway redirect URL.
func (oc *OrderClient) Submit(ctx context.Context, userID string, draft *domain.OrderDraft) (*domain.OrderResult, error) {
	req := createOrderRequest{
		PaymentMethod:   string(draft.PaymentMethod),
		ShippingAddress: draft.ShippingAddress,
		RecipientName:   draft.RecipientName,
		RecipientPhone:  draft.RecipientPhone,
		DiscountCode:    draft.DiscountCode,
		Status:          draft.Status,
		Items:           make([]orderLineItemDTO, len(draft.LineItems)),
	}
	for i, item := range draft.LineItems {
		req.Items[i] = orderLineItemDTO{
			ProductVariantID: item.ProductVariantID,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
		}
	}

	var resp createOrderResponse
	if err := oc.c.do(ctx, "order.submit", http.MethodPost, "/orders", userID, req, &resp); err != nil {
		return nil, err
	}

	result := &domain.OrderResult{OrderID: resp.ID, Outcome: domain.OutcomeConfirmed}
	if resp.VnpayURL != "" {
		result.Outcome = domain.OutcomeRedirect
		result.RedirectURL = resp.VnpayURL
	}
	return result, nil
}

func (oc *OrderClient) GetOrders(ctx context.Context, userID string) ([]Order, error) {
	var dtos []orderDTO
	path := "/orders/get-orders/" + url.PathEscape(userID)
	if err := oc.c.do(ctx, "order.list", http.MethodGet, path, userID, nil, &dtos); err != nil {
		return nil, err
	}
	orders := make([]Order, len(dtos))
	for i, d := range dtos {
		orders[i] = Order{
			ID:            d.ID,
			Status:        d.Status,
			PaymentMethod: d.PaymentMethod,
			TotalAmount:   d.TotalAmount,
		}
	}
	return orders, nil
}

// RetryPayment asks the backend for a fresh gateway URL for an unpaid
// online order.
func (oc *OrderClient) RetryPayment(ctx context.Context, userID, orderID string) (string, error) {
	var resp createOrderResponse
	path := "/orders/" + url.PathEscape(orderID) + "/retry-payment"
	if err := oc.c.do(ctx, "order.retryPayment", http.MethodPost, path, userID, nil, &resp); err != nil {
		return "", err
	}
	return resp.VnpayURL, nil
}
