package cart

import (
	"sync"

	"go.uber.org/zap"
)

// Registry hands out one Slice per user session.
type Registry struct {
	mu       sync.Mutex
	slices   map[string]*Slice
	mutator  Mutator
	provider *Provider
	logger   *zap.Logger
}

func NewRegistry(mutator Mutator, provider *Provider, logger *zap.Logger) *Registry {
	return &Registry{
		slices:   make(map[string]*Slice),
		mutator:  mutator,
		provider: provider,
		logger:   logger,
	}
}

func (r *Registry) Slice(userID string) *Slice {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slices[userID]
	if !ok {
		s = NewSlice(userID, r.mutator, r.provider, r.logger)
		r.slices[userID] = s
	}
	return s
}
