package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mkhai207/app-shop-checkout/internal/discount"
	"github.com/mkhai207/app-shop-checkout/internal/domain"
	"github.com/mkhai207/app-shop-checkout/internal/events"
	"github.com/mkhai207/app-shop-checkout/internal/pricing"
	"github.com/mkhai207/app-shop-checkout/internal/resolver"
)

// ItemResolver supplies the line items for a checkout attempt.
type ItemResolver interface {
	Resolve(ctx context.Context, userID string) (resolver.Mode, []domain.LineItem, error)
}

// DiscountEvaluator validates a code against the current subtotal.
type DiscountEvaluator interface {
	Apply(ctx context.Context, code string, subtotal domain.Money) (*domain.AppliedDiscount, error)
}

// OrderSubmitter posts the assembled draft to the order service.
type OrderSubmitter interface {
	Submit(ctx context.Context, userID string, draft *domain.OrderDraft) (*domain.OrderResult, error)
}

// CartClearer empties the user's persisted cart after a cart-mode order.
type CartClearer interface {
	ClearCart(ctx context.Context, userID string) error
}

// EventPublisher announces a submitted order to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event *events.OrderSubmittedEvent) error
}

// Invalidator drops a cached cart snapshot.
type Invalidator interface {
	Invalidate(userID string)
}

// Submission is the full outcome of one successful submit: where to
// send the user plus the totals the order was priced at.
type Submission struct {
	Order  domain.OrderResult `json:"order"`
	Mode   resolver.Mode      `json:"mode"`
	Totals pricing.Totals     `json:"totals"`
}

// Orchestrator coordinates one checkout attempt end to end: form
// validation, item resolution, discount re-validation, pricing, order
// assembly and submission, and the post-success cleanup.
type Orchestrator struct {
	resolver    ItemResolver
	evaluator   DiscountEvaluator
	orders      OrderSubmitter
	carts       CartClearer
	invalidator Invalidator
	publisher   EventPublisher
	pricing     pricing.Config
	logger      *zap.Logger

	cleanupTimeout time.Duration
	cleanupWG      sync.WaitGroup
}

func NewOrchestrator(
	itemResolver ItemResolver,
	evaluator DiscountEvaluator,
	orders OrderSubmitter,
	carts CartClearer,
	invalidator Invalidator,
	publisher EventPublisher,
	pricingCfg pricing.Config,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		resolver:       itemResolver,
		evaluator:      evaluator,
		orders:         orders,
		carts:          carts,
		invalidator:    invalidator,
		publisher:      publisher,
		pricing:        pricingCfg,
		logger:         logger,
		cleanupTimeout: 5 * time.Second,
	}
}

// Quote prices an item set with an optional discount code. It is the
// preview path: callers hand it the cart's items directly so the
// one-shot buy-now stash is never consumed by a preview.
func (o *Orchestrator) Quote(ctx context.Context, items []domain.LineItem, code string) (pricing.Totals, *domain.AppliedDiscount, error) {
	subtotal := pricing.Subtotal(items)

	var applied *domain.AppliedDiscount
	if code != "" {
		var err error
		applied, err = o.evaluator.Apply(ctx, code, subtotal)
		if err != nil {
			return pricing.Totals{}, nil, err
		}
	}
	return o.pricing.ComputeTotals(items, applied), applied, nil
}

// Submit runs one order submission. Validation failures and discount
// rejections happen before any order-service call; a submission failure
// surfaces as an error with no navigation outcome and no cart clear.
func (o *Orchestrator) Submit(ctx context.Context, userID string, form Form, isAdmin bool) (*Submission, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	mode, items, err := o.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	subtotal := pricing.Subtotal(items)

	// Any discount is re-validated against the subtotal of the items
	// actually being submitted, so a code applied earlier can never
	// carry a stale amount into the order.
	var applied *domain.AppliedDiscount
	if form.DiscountCode != "" {
		applied, err = o.evaluator.Apply(ctx, form.DiscountCode, subtotal)
		if err != nil {
			return nil, fmt.Errorf("discount %q no longer applies: %w", form.DiscountCode, err)
		}
	}

	totals := o.pricing.ComputeTotals(items, applied)

	draft := &domain.OrderDraft{
		PaymentMethod:   domain.PaymentMethod(form.PaymentMethod),
		ShippingAddress: form.ShippingAddress,
		RecipientName:   form.RecipientName,
		RecipientPhone:  form.RecipientPhone,
		LineItems:       items,
	}
	if applied != nil {
		draft.DiscountCode = applied.Code
	}
	if isAdmin {
		draft.Status = domain.OrderStatusPending
	}

	result, err := o.orders.Submit(ctx, userID, draft)
	if err != nil {
		return nil, err
	}

	o.logger.Info("order submitted",
		zap.String("order_id", result.OrderID),
		zap.String("user_id", userID),
		zap.String("mode", string(mode)),
		zap.Int64("grand_total", totals.GrandTotal))

	// Cleanup must not block the user-visible success path. It runs
	// detached with its own deadline, no retry, failures logged only.
	o.cleanupWG.Add(1)
	go func() {
		defer o.cleanupWG.Done()
		o.afterSubmit(userID, mode, draft, result, totals)
	}()

	return &Submission{Order: *result, Mode: mode, Totals: totals}, nil
}

// Drain blocks until all detached post-submit tasks finish. Called on
// shutdown so in-flight cart clears and event publishes can land.
func (o *Orchestrator) Drain() {
	o.cleanupWG.Wait()
}

func (o *Orchestrator) afterSubmit(userID string, mode resolver.Mode, draft *domain.OrderDraft, result *domain.OrderResult, totals pricing.Totals) {
	ctx, cancel := context.WithTimeout(context.Background(), o.cleanupTimeout)
	defer cancel()

	if mode == resolver.ModeCart {
		if err := o.carts.ClearCart(ctx, userID); err != nil {
			o.logger.Warn("cart clear after order failed",
				zap.String("user_id", userID),
				zap.String("order_id", result.OrderID),
				zap.Error(err))
		}
		if o.invalidator != nil {
			o.invalidator.Invalidate(userID)
		}
	}

	if o.publisher == nil {
		return
	}
	event := &events.OrderSubmittedEvent{
		OrderID:       result.OrderID,
		UserID:        userID,
		PaymentMethod: string(draft.PaymentMethod),
		Items:         draft.LineItems,
		Subtotal:      totals.Subtotal,
		ShippingFee:   totals.ShippingFee,
		Discount:      totals.DiscountAmount,
		GrandTotal:    totals.GrandTotal,
		SubmittedAt:   time.Now(),
	}
	if err := o.publisher.Publish(ctx, event); err != nil {
		o.logger.Warn("order event publish failed",
			zap.String("order_id", result.OrderID),
			zap.Error(err))
	}
}

var _ DiscountEvaluator = (*discount.Evaluator)(nil)
