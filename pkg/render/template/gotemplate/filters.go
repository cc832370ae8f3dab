package gotemplate

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizePolicyOnce sync.Once
	sanitizePolicy     *bluemonday.Policy
)

// SanitizeHTML runs markup through the UGC policy shared by the sanitize
// filter and the html content provider.
func SanitizeHTML(markup string) string {
	sanitizePolicyOnce.Do(func() {
		sanitizePolicy = bluemonday.UGCPolicy()
	})
	return strings.TrimSpace(sanitizePolicy.Sanitize(markup))
}

// Dump renders value as an escaped, indented block. The renderer exposes it
// as the dump function in development.
func Dump(value *pongo2.Value) *pongo2.Value {
	var payload string
	if value == nil || value.IsNil() {
		payload = "null"
	} else if raw, err := json.MarshalIndent(value.Interface(), "", "  "); err == nil {
		payload = string(raw)
	} else {
		payload = fmt.Sprintf("%#v", value.Interface())
	}
	return pongo2.AsSafeValue("<pre>" + html.EscapeString(payload) + "</pre>")
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("sanitize") {
		_ = pongo2.RegisterFilter("sanitize", filterSanitize)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsSafeValue(""), nil
	}
	return pongo2.AsSafeValue(SanitizeHTML(in.String())), nil
}
