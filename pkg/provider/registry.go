package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type producer func(ctx context.Context) (any, error)

// Registry holds one deferred producer per provider key.
type Registry struct {
	mu        sync.RWMutex
	factories *Factories
	producers map[string]producer
}

// NewRegistry creates an empty registry resolving specs through factories.
// A nil table falls back to DefaultFactories.
func NewRegistry(factories *Factories) *Registry {
	if factories == nil {
		factories = DefaultFactories()
	}
	return &Registry{
		factories: factories,
		producers: make(map[string]producer),
	}
}

// Register builds a provider for every spec and stores its producer under
// the provider key. Later specs replace earlier ones with the same key. The
// first spec that cannot be resolved aborts registration.
func (r *Registry) Register(specs []Spec) error {
	for idx, spec := range specs {
		id := spec.Identifier()
		factory, ok := r.factories.Lookup(id)
		if !ok {
			return &ProviderResolutionError{Type: id, Index: idx, Err: ErrUnknownType}
		}

		params := spec.Parameters
		if params == nil {
			params = map[string]any{}
		}
		p, err := factory(params)
		if err != nil {
			return &ProviderResolutionError{Type: id, Index: idx, Err: err}
		}
		if p == nil {
			return &ProviderResolutionError{Type: id, Index: idx, Err: fmt.Errorf("factory returned nil provider")}
		}
		r.Add(p)
	}
	return nil
}

// Add registers an already constructed provider.
func (r *Registry) Add(p ContentProvider) {
	if r == nil || p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.producers[p.Key()] = p.Value
}

// ResolveAll invokes every producer and returns a fresh key -> value map.
func (r *Registry) ResolveAll(ctx context.Context) (map[string]any, error) {
	if r == nil {
		return map[string]any{}, nil
	}
	r.mu.RLock()
	producers := make(map[string]producer, len(r.producers))
	for key, fn := range r.producers {
		producers[key] = fn
	}
	r.mu.RUnlock()

	out := make(map[string]any, len(producers))
	for key, fn := range producers {
		value, err := fn(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider: value for %q: %w", key, err)
		}
		out[key] = value
	}
	return out, nil
}

// Keys returns the registered provider keys in sorted order.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.producers))
	for key := range r.producers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len reports the number of registered providers.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.producers)
}
