package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

const Topic = "order-submitted"

// OrderSubmittedEvent is what downstream consumers (notifications,
// analytics) receive after a checkout succeeds.
type OrderSubmittedEvent struct {
	OrderID       string            `json:"order_id"`
	UserID        string            `json:"user_id"`
	PaymentMethod string            `json:"payment_method"`
	Items         []domain.LineItem `json:"items"`
	Subtotal      domain.Money      `json:"subtotal"`
	ShippingFee   domain.Money      `json:"shipping_fee"`
	Discount      domain.Money      `json:"discount"`
	GrandTotal    domain.Money      `json:"grand_total"`
	SubmittedAt   time.Time         `json:"submitted_at"`
}

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers ...string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

func (p *Publisher) Publish(ctx context.Context, event *OrderSubmittedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID), // order_id for per-order ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order_submitted")},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
