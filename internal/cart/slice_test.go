package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkhai207/app-shop-checkout/internal/cache"
	"github.com/mkhai207/app-shop-checkout/internal/client"
	"github.com/mkhai207/app-shop-checkout/internal/domain"
)

// MemoryCache implements cache.CartCache for testing
type MemoryCache struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{carts: make(map[string]*domain.Cart)}
}

func (m *MemoryCache) Get(_ context.Context, userID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return cart, nil
}

func (m *MemoryCache) Set(_ context.Context, userID string, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[userID] = cart
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
	return nil
}

// MockBackend implements Fetcher and Mutator for testing
type MockBackend struct {
	mu         sync.Mutex
	cart       *domain.Cart
	fetchErr   error
	mutateErr  error
	returnedID string
	fetches    int
	cleared    bool
}

func (m *MockBackend) GetCart(_ context.Context, _ string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.cart, nil
}

func (m *MockBackend) AddItem(_ context.Context, _ string, _ client.AddCartItemRequest) (string, error) {
	return m.returnedID, m.mutateErr
}

func (m *MockBackend) UpdateItem(_ context.Context, _, _ string, _ client.UpdateCartItemRequest) (string, error) {
	return m.returnedID, m.mutateErr
}

func (m *MockBackend) RemoveItem(_ context.Context, _, _ string) (string, error) {
	return m.returnedID, m.mutateErr
}

func (m *MockBackend) ClearCart(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared = true
	return m.mutateErr
}

func (m *MockBackend) SetFetchErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
}

func (m *MockBackend) Fetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

func newTestSlice(backend *MockBackend) *Slice {
	logger := zap.NewNop()
	provider := NewProvider(backend, NewMemoryCache(), logger)
	return NewSlice("user123", backend, provider, logger)
}

func snapshotCart() *domain.Cart {
	return &domain.Cart{
		ID:     "cart-1",
		UserID: "user123",
		Entries: []domain.CartEntry{
			{ID: "entry-1", Quantity: 1, Variant: domain.Variant{ID: "variant-1"}},
		},
	}
}

func TestAddItem_SuccessRefreshesSnapshot(t *testing.T) {
	backend := &MockBackend{cart: snapshotCart(), returnedID: "entry-1"}
	slice := newTestSlice(backend)

	state := slice.AddItem(context.Background(), client.AddCartItemRequest{
		ProductVariantID: "variant-1",
		Quantity:         1,
	})

	assert.Equal(t, StatusSuccess, state.Add.Status)
	assert.Empty(t, state.Add.Message)
	require.NotNil(t, state.Cart)
	assert.Equal(t, "cart-1", state.Cart.ID)
	// the snapshot came from a re-fetch, not a local merge
	assert.Equal(t, 1, backend.Fetches())
}

func TestAddItem_BackendErrorSurfacesMessage(t *testing.T) {
	backend := &MockBackend{
		mutateErr: &client.BackendError{Op: "cart.add", Message: "variant out of stock"},
	}
	slice := newTestSlice(backend)

	state := slice.AddItem(context.Background(), client.AddCartItemRequest{
		ProductVariantID: "variant-1",
		Quantity:         1,
	})

	assert.Equal(t, StatusError, state.Add.Status)
	assert.Equal(t, "variant out of stock", state.Add.Message)
	// no refresh after a failed mutation
	assert.Equal(t, 0, backend.Fetches())
	assert.Nil(t, state.Cart)
}

func TestAddItem_GenericFallbackMessage(t *testing.T) {
	backend := &MockBackend{mutateErr: errors.New("connection reset")}
	slice := newTestSlice(backend)

	state := slice.AddItem(context.Background(), client.AddCartItemRequest{
		ProductVariantID: "variant-1",
		Quantity:         1,
	})

	assert.Equal(t, StatusError, state.Add.Status)
	assert.Equal(t, genericMutationError, state.Add.Message)
}

func TestAddItem_SuccessWithoutResourceIDIsError(t *testing.T) {
	backend := &MockBackend{cart: snapshotCart(), returnedID: ""}
	slice := newTestSlice(backend)

	state := slice.AddItem(context.Background(), client.AddCartItemRequest{
		ProductVariantID: "variant-1",
		Quantity:         1,
	})

	assert.Equal(t, StatusError, state.Add.Status)
	assert.Equal(t, 0, backend.Fetches())
}

func TestUpdateItem_Success(t *testing.T) {
	backend := &MockBackend{cart: snapshotCart(), returnedID: "entry-1"}
	slice := newTestSlice(backend)

	state := slice.UpdateItem(context.Background(), "entry-1", client.UpdateCartItemRequest{Quantity: 3})

	assert.Equal(t, StatusSuccess, state.Update.Status)
	assert.Equal(t, StatusIdle, state.Add.Status)
}

func TestRemoveItem_Success(t *testing.T) {
	backend := &MockBackend{cart: snapshotCart(), returnedID: "entry-1"}
	slice := newTestSlice(backend)

	state := slice.RemoveItem(context.Background(), "entry-1")

	assert.Equal(t, StatusSuccess, state.Remove.Status)
}

func TestClearCart_SuccessWithoutResourceID(t *testing.T) {
	backend := &MockBackend{cart: &domain.Cart{ID: "cart-1", UserID: "user123"}}
	slice := newTestSlice(backend)

	state := slice.ClearCart(context.Background())

	assert.Equal(t, StatusSuccess, state.Clear.Status)
	assert.True(t, backend.cleared)
}

func TestRefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	backend := &MockBackend{cart: snapshotCart(), returnedID: "entry-1"}
	slice := newTestSlice(backend)

	state := slice.AddItem(context.Background(), client.AddCartItemRequest{
		ProductVariantID: "variant-1",
		Quantity:         1,
	})
	require.NotNil(t, state.Cart)

	backend.SetFetchErr(errors.New("backend down"))
	state = slice.AddItem(context.Background(), client.AddCartItemRequest{
		ProductVariantID: "variant-2",
		Quantity:         1,
	})

	// mutation still succeeded on the backend; only the refresh failed
	assert.Equal(t, StatusSuccess, state.Add.Status)
	assert.NotNil(t, state.Cart)
	assert.Equal(t, "cart-1", state.Cart.ID)
}

func TestReset_ClearsStatusesKeepsSnapshot(t *testing.T) {
	backend := &MockBackend{cart: snapshotCart(), returnedID: "entry-1"}
	slice := newTestSlice(backend)

	slice.AddItem(context.Background(), client.AddCartItemRequest{ProductVariantID: "variant-1", Quantity: 1})
	slice.Reset()

	state := slice.State()
	assert.Equal(t, StatusIdle, state.Add.Status)
	assert.Equal(t, StatusIdle, state.Update.Status)
	assert.Equal(t, StatusIdle, state.Remove.Status)
	assert.Equal(t, StatusIdle, state.Clear.Status)
	assert.Empty(t, state.Add.Message)
	assert.NotNil(t, state.Cart)
}
