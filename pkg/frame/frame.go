// Package frame resolves which page frame (outer layout template) wraps a
// full-page render.
package frame

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultKey is used when neither an override nor the route names a frame.
const DefaultKey = "default"

// Selection is either a single frame template or a mapping from frame key
// to template. The zero value is unconfigured.
type Selection struct {
	single string
	frames map[string]string
}

// Single selects path for every full-page render.
func Single(path string) Selection {
	return Selection{single: strings.TrimSpace(path)}
}

// Mapping selects frames by key.
func Mapping(frames map[string]string) Selection {
	copied := make(map[string]string, len(frames))
	for key, path := range frames {
		copied[strings.TrimSpace(key)] = strings.TrimSpace(path)
	}
	return Selection{frames: copied}
}

// IsZero reports whether no frame is configured.
func (s Selection) IsZero() bool {
	return s.single == "" && s.frames == nil
}

// IsMapping reports whether frames are selected by key.
func (s Selection) IsMapping() bool {
	return s.frames != nil
}

// Keys returns the configured frame keys in sorted order, or nil for a
// single-path selection.
func (s Selection) Keys() []string {
	if s.frames == nil {
		return nil
	}
	keys := make([]string, 0, len(s.frames))
	for key := range s.frames {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Key picks the frame key: override, else routeFrame, else DefaultKey.
func Key(override, routeFrame string) string {
	if key := strings.TrimSpace(override); key != "" {
		return key
	}
	if key := strings.TrimSpace(routeFrame); key != "" {
		return key
	}
	return DefaultKey
}

// Resolve returns the frame template for a render. A single-path selection
// ignores both keys. A mapping without the chosen key fails with an
// InternalConfigurationError rather than falling back to another entry.
func (s Selection) Resolve(override, routeFrame string) (string, error) {
	if s.frames == nil {
		if s.single == "" {
			return "", &InternalConfigurationError{Reason: "no page frame template configured"}
		}
		return s.single, nil
	}

	key := Key(override, routeFrame)
	path, ok := s.frames[key]
	if !ok || path == "" {
		return "", &InternalConfigurationError{Frame: key}
	}
	return path, nil
}

// UnmarshalYAML accepts a scalar template path or a key -> path mapping.
func (s *Selection) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var path string
		if err := node.Decode(&path); err != nil {
			return fmt.Errorf("frame: decode page frame path: %w", err)
		}
		*s = Single(path)
		return nil
	case yaml.MappingNode:
		var frames map[string]string
		if err := node.Decode(&frames); err != nil {
			return fmt.Errorf("frame: decode page frame mapping: %w", err)
		}
		*s = Mapping(frames)
		return nil
	default:
		return fmt.Errorf("frame: page frame must be a string or a mapping (line %d)", node.Line)
	}
}

// MarshalYAML writes the selection back in the shape it was configured.
func (s Selection) MarshalYAML() (any, error) {
	if s.frames != nil {
		return s.frames, nil
	}
	return s.single, nil
}
