package provider

import (
	"context"
	"fmt"
	"strings"
)

// NameKey is the configuration field holding the provider key.
const NameKey = "name"

// ContentProvider contributes a single value to the render context.
type ContentProvider interface {
	Key() string
	Configuration() map[string]any
	Value(ctx context.Context) (any, error)
}

// Base carries the key and remaining configuration every provider is built
// from. Concrete providers embed it and implement Value.
type Base struct {
	key    string
	config map[string]any
}

// NewBase extracts the name field as the key and keeps a copy of the other
// parameters. A missing or blank name fails with a ConfigurationError.
func NewBase(cfg map[string]any) (Base, error) {
	raw, ok := cfg[NameKey]
	if !ok || raw == nil {
		return Base{}, &ConfigurationError{Field: NameKey, Reason: "missing", Err: ErrMissingName}
	}
	key := strings.TrimSpace(fmt.Sprint(raw))
	if key == "" {
		return Base{}, &ConfigurationError{Field: NameKey, Reason: "empty", Err: ErrMissingName}
	}

	rest := make(map[string]any, len(cfg))
	for k, v := range cfg {
		if k == NameKey {
			continue
		}
		rest[k] = v
	}
	return Base{key: key, config: rest}, nil
}

// Key returns the identifier the provider's value is published under.
func (b Base) Key() string {
	return b.key
}

// Configuration returns a copy of the parameters without the name field.
func (b Base) Configuration() map[string]any {
	out := make(map[string]any, len(b.config))
	for k, v := range b.config {
		out[k] = v
	}
	return out
}

func (b Base) param(name string) (any, bool) {
	v, ok := b.config[name]
	return v, ok
}

func (b Base) stringParam(name, fallback string) string {
	v, ok := b.config[name]
	if !ok || v == nil {
		return fallback
	}
	return fmt.Sprint(v)
}

// Func adapts a function into a ContentProvider.
type Func struct {
	Base
	fn func(ctx context.Context) (any, error)
}

// NewFunc builds a provider named key whose value comes from fn.
func NewFunc(key string, fn func(ctx context.Context) (any, error)) (*Func, error) {
	base, err := NewBase(map[string]any{NameKey: key})
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, &ConfigurationError{Field: "func", Reason: "missing"}
	}
	return &Func{Base: base, fn: fn}, nil
}

// Value calls the wrapped function.
func (f *Func) Value(ctx context.Context) (any, error) {
	return f.fn(ctx)
}
