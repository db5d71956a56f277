package checkout

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
	"github.com/mkhai207/app-shop-checkout/internal/events"
	"github.com/mkhai207/app-shop-checkout/internal/pricing"
	"github.com/mkhai207/app-shop-checkout/internal/resolver"
)

// MockResolver implements ItemResolver for testing
type MockResolver struct {
	mode  resolver.Mode
	items []domain.LineItem
	err   error
}

func (m *MockResolver) Resolve(_ context.Context, _ string) (resolver.Mode, []domain.LineItem, error) {
	return m.mode, m.items, m.err
}

// MockEvaluator implements DiscountEvaluator for testing
type MockEvaluator struct {
	applied      *domain.AppliedDiscount
	err          error
	seenCode     string
	seenSubtotal domain.Money
}

func (m *MockEvaluator) Apply(_ context.Context, code string, subtotal domain.Money) (*domain.AppliedDiscount, error) {
	m.seenCode = code
	m.seenSubtotal = subtotal
	if m.err != nil {
		return nil, m.err
	}
	return m.applied, nil
}

// MockOrderService implements OrderSubmitter for testing
type MockOrderService struct {
	result    *domain.OrderResult
	err       error
	submitted *domain.OrderDraft
}

func (m *MockOrderService) Submit(_ context.Context, _ string, draft *domain.OrderDraft) (*domain.OrderResult, error) {
	m.submitted = draft
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// MockCartService implements CartClearer for testing
type MockCartService struct {
	mu       sync.Mutex
	cleared  bool
	clearErr error
}

func (m *MockCartService) ClearCart(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = true
	return m.clearErr
}

func (m *MockCartService) Cleared() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleared
}

// MockPublisher implements EventPublisher for testing
type MockPublisher struct {
	mu     sync.Mutex
	events []*events.OrderSubmittedEvent
	err    error
}

func (m *MockPublisher) Publish(_ context.Context, event *events.OrderSubmittedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

func (m *MockPublisher) Events() []*events.OrderSubmittedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events
}

// MockInvalidator implements Invalidator for testing
type MockInvalidator struct {
	mu          sync.Mutex
	invalidated []string
}

func (m *MockInvalidator) Invalidate(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, userID)
}

// newTestOrchestrator creates a fully wired Orchestrator for testing
func newTestOrchestrator(
	itemResolver *MockResolver,
	evaluator *MockEvaluator,
	orders *MockOrderService,
	carts *MockCartService,
	publisher *MockPublisher,
) *Orchestrator {
	o := NewOrchestrator(
		itemResolver,
		evaluator,
		orders,
		carts,
		&MockInvalidator{},
		publisher,
		pricing.DefaultConfig(),
		zap.NewNop(),
	)
	o.cleanupTimeout = time.Second
	return o
}

func validForm() Form {
	return Form{
		RecipientName:   "Nguyen Van A",
		RecipientPhone:  "0912345678",
		ShippingAddress: "1 Tran Hung Dao, Ha Noi",
		PaymentMethod:   string(domain.PaymentMethodCash),
	}
}
