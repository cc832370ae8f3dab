package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingName is matched by configuration errors raised when a
	// provider configuration has no name.
	ErrMissingName = errors.New("provider: name is required")
	// ErrUnknownType is matched by resolution errors for unregistered
	// provider type identifiers.
	ErrUnknownType = errors.New("provider: unknown provider type")
)

// ConfigurationError reports a missing or invalid configuration field, such
// as a provider without a name. It is raised at construction time.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("configuration: invalid field %q", e.Field)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ProviderResolutionError reports a configured provider that could not be
// instantiated.
type ProviderResolutionError struct {
	Type  string
	Index int
	Err   error
}

func (e *ProviderResolutionError) Error() string {
	return fmt.Sprintf("provider: resolve content provider #%d (%q): %v", e.Index, e.Type, e.Err)
}

func (e *ProviderResolutionError) Unwrap() error {
	return e.Err
}
