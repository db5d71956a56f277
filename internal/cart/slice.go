package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/mkhai207/app-shop-checkout/internal/client"
)

// Mutator is the write side of the cart on the backend.
type Mutator interface {
	AddItem(ctx context.Context, userID string, req client.AddCartItemRequest) (string, error)
	UpdateItem(ctx context.Context, userID, itemID string, req client.UpdateCartItemRequest) (string, error)
	RemoveItem(ctx context.Context, userID, itemID string) (string, error)
	ClearCart(ctx context.Context, userID string) error
}

const genericMutationError = "cart update failed, please try again"

// Slice is the cart mutation state machine for one user. Every mutation
// runs the same two-step protocol: mutate on the backend, then refresh
// the authoritative snapshot. The refresh is issued only after the
// mutation's own response, never concurrently with it. If the user
// fires two mutations back to back their refreshes may interleave and
// the slice keeps whichever resolves last. The backend stays the source
// of truth either way.
type Slice struct {
	mu       sync.Mutex
	state    State
	mutator  Mutator
	provider *Provider
	userID   string
	logger   *zap.Logger
}

func NewSlice(userID string, mutator Mutator, provider *Provider, logger *zap.Logger) *Slice {
	return &Slice{
		state:    initialState(),
		mutator:  mutator,
		provider: provider,
		userID:   userID,
		logger:   logger,
	}
}

func (s *Slice) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset clears all status and message fields back to the initial idle
// shape. The snapshot is kept; only mutation statuses reset.
func (s *Slice) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.state.Cart
	s.state = initialState()
	s.state.Cart = cart
}

func (s *Slice) AddItem(ctx context.Context, req client.AddCartItemRequest) State {
	return s.runMutation(ctx, mutationAdd, func() (string, error) {
		return s.mutator.AddItem(ctx, s.userID, req)
	})
}

func (s *Slice) UpdateItem(ctx context.Context, itemID string, req client.UpdateCartItemRequest) State {
	return s.runMutation(ctx, mutationUpdate, func() (string, error) {
		return s.mutator.UpdateItem(ctx, s.userID, itemID, req)
	})
}

func (s *Slice) RemoveItem(ctx context.Context, itemID string) State {
	return s.runMutation(ctx, mutationRemove, func() (string, error) {
		return s.mutator.RemoveItem(ctx, s.userID, itemID)
	})
}

// ClearCart has no created resource, so envelope success alone completes it.
func (s *Slice) ClearCart(ctx context.Context) State {
	s.transition(mutationClear, MutationState{Status: StatusPending})

	if err := s.mutator.ClearCart(ctx, s.userID); err != nil {
		s.transition(mutationClear, MutationState{Status: StatusError, Message: backendMessage(err)})
		return s.State()
	}

	s.refresh(ctx)
	s.transition(mutationClear, MutationState{Status: StatusSuccess})
	return s.State()
}

type mutationKind int

const (
	mutationAdd mutationKind = iota
	mutationUpdate
	mutationRemove
	mutationClear
)

func (s *Slice) runMutation(ctx context.Context, kind mutationKind, call func() (string, error)) State {
	s.transition(kind, MutationState{Status: StatusPending})

	id, err := call()
	if err != nil {
		s.transition(kind, MutationState{Status: StatusError, Message: backendMessage(err)})
		return s.State()
	}

	// A success envelope without a resource id is an ambiguous answer;
	// treat it as a failure rather than trusting it.
	if id == "" {
		s.transition(kind, MutationState{Status: StatusError, Message: genericMutationError})
		return s.State()
	}

	s.refresh(ctx)
	s.transition(kind, MutationState{Status: StatusSuccess})
	return s.State()
}

// refresh re-fetches the authoritative cart after a committed mutation.
// A failed refresh keeps the previous snapshot; the mutation itself
// already succeeded on the backend.
func (s *Slice) refresh(ctx context.Context) {
	s.provider.Invalidate(s.userID)

	cart, err := s.provider.GetCart(ctx, s.userID)
	if err != nil {
		s.logger.Warn("cart refresh after mutation failed", zap.String("user_id", s.userID), zap.Error(err))
		return
	}

	s.mu.Lock()
	s.state.Cart = cart
	s.mu.Unlock()
}

func (s *Slice) transition(kind mutationKind, next MutationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case mutationAdd:
		s.state.Add = next
	case mutationUpdate:
		s.state.Update = next
	case mutationRemove:
		s.state.Remove = next
	case mutationClear:
		s.state.Clear = next
	}
}

// backendMessage prefers the backend's own error text, falling back to
// a generic string. Errors never escape the slice; they become state.
func backendMessage(err error) string {
	var be *client.BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return genericMutationError
}
