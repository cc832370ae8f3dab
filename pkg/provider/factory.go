package provider

import (
	"sort"
	"strings"
	"sync"
)

// Spec is one entry of the content_providers configuration list. Type names
// the factory; class_name is accepted as an alias for existing configs.
type Spec struct {
	Type       string         `yaml:"type,omitempty" json:"type,omitempty"`
	ClassName  string         `yaml:"class_name,omitempty" json:"class_name,omitempty"`
	Parameters map[string]any `yaml:"parameters" json:"parameters"`
}

// Identifier returns the factory identifier selected by the spec.
func (s Spec) Identifier() string {
	if id := strings.TrimSpace(s.Type); id != "" {
		return id
	}
	return strings.TrimSpace(s.ClassName)
}

// Factory constructs a provider from its parameters.
type Factory func(params map[string]any) (ContentProvider, error)

// Factories maps provider type identifiers to constructors. It is populated at
// startup; configuration picks an identifier rather than naming code.
type Factories struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewFactories returns an empty table.
func NewFactories() *Factories {
	return &Factories{factories: make(map[string]Factory)}
}

// DefaultFactories returns a table with the built-in provider types.
func DefaultFactories() *Factories {
	f := NewFactories()
	f.Register(TypeStatic, NewStatic)
	f.Register(TypePageTitle, NewPageTitle)
	f.Register(TypeAssets, NewAssets)
	f.Register(TypeHTML, NewHTML)
	f.Register(TypeClock, NewClock)
	return f
}

// Register adds factory under name. An identifier that is already present is
// kept and false is returned.
func (f *Factories) Register(name string, factory Factory) bool {
	trimmed := strings.TrimSpace(name)
	if f == nil || trimmed == "" || factory == nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.factories[trimmed]; exists {
		return false
	}
	f.factories[trimmed] = factory
	return true
}

// Lookup returns the factory registered for name.
func (f *Factories) Lookup(name string) (Factory, bool) {
	if f == nil {
		return nil, false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	factory, ok := f.factories[strings.TrimSpace(name)]
	return factory, ok
}

// Names returns the registered identifiers in sorted order.
func (f *Factories) Names() []string {
	if f == nil {
		return nil
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.factories))
	for name := range f.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
