// Package template defines the engine contract the page renderer depends on.
// The gotemplate sub-package provides the pongo2-backed implementation.
package template
