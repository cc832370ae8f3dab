package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-pageframe/pkg/render/template/gotemplate"
)

// Built-in provider type identifiers.
const (
	TypeStatic    = "static"
	TypePageTitle = "page_title"
	TypeAssets    = "assets"
	TypeHTML      = "html"
	TypeClock     = "clock"
	TypeTheme     = "theme"
)

// Static publishes the configured value parameter unchanged.
type Static struct {
	Base
	value any
}

// NewStatic builds a Static provider; the value parameter is required.
func NewStatic(params map[string]any) (ContentProvider, error) {
	base, err := NewBase(params)
	if err != nil {
		return nil, err
	}
	value, ok := base.param("value")
	if !ok {
		return nil, &ConfigurationError{Field: "value", Reason: "missing"}
	}
	return &Static{Base: base, value: value}, nil
}

func (p *Static) Value(context.Context) (any, error) {
	return p.value, nil
}

// PageTitle joins a title with an optional site suffix.
type PageTitle struct {
	Base
	title     string
	suffix    string
	separator string
}

// NewPageTitle builds a PageTitle provider from title, suffix, and separator.
func NewPageTitle(params map[string]any) (ContentProvider, error) {
	base, err := NewBase(params)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(base.stringParam("title", ""))
	if title == "" {
		return nil, &ConfigurationError{Field: "title", Reason: "missing"}
	}
	return &PageTitle{
		Base:      base,
		title:     title,
		suffix:    strings.TrimSpace(base.stringParam("suffix", "")),
		separator: base.stringParam("separator", " | "),
	}, nil
}

func (p *PageTitle) Value(context.Context) (any, error) {
	if p.suffix == "" {
		return p.title, nil
	}
	return p.title + p.separator + p.suffix, nil
}

// Assets resolves named static files to URLs under a common prefix.
type Assets struct {
	Base
	urls map[string]string
}

// NewAssets builds an Assets provider from prefix and a files mapping.
func NewAssets(params map[string]any) (ContentProvider, error) {
	base, err := NewBase(params)
	if err != nil {
		return nil, err
	}
	raw, _ := base.param("files")
	files, err := stringMap(raw)
	if err != nil {
		return nil, &ConfigurationError{Field: "files", Reason: err.Error()}
	}
	prefix := base.stringParam("prefix", "")

	urls := make(map[string]string, len(files))
	for name, file := range files {
		urls[name] = AssetURL(prefix, file)
	}
	return &Assets{Base: base, urls: urls}, nil
}

func (p *Assets) Value(context.Context) (any, error) {
	out := make(map[string]string, len(p.urls))
	for k, v := range p.urls {
		out[k] = v
	}
	return out, nil
}

// AssetURL joins prefix and file, leaving absolute URLs untouched.
func AssetURL(prefix, file string) string {
	file = strings.TrimSpace(file)
	if file == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "//") {
		return file
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return file
	}
	return prefix + "/" + strings.TrimLeft(file, "/")
}

// HTML publishes a sanitised markup snippet that templates can print without
// the safe filter.
type HTML struct {
	Base
	markup string
}

// NewHTML builds an HTML provider from the html parameter.
func NewHTML(params map[string]any) (ContentProvider, error) {
	base, err := NewBase(params)
	if err != nil {
		return nil, err
	}
	if _, ok := base.param("html"); !ok {
		return nil, &ConfigurationError{Field: "html", Reason: "missing"}
	}
	return &HTML{Base: base, markup: gotemplate.SanitizeHTML(base.stringParam("html", ""))}, nil
}

func (p *HTML) Value(context.Context) (any, error) {
	return pongo2.AsSafeValue(p.markup), nil
}

// Clock publishes the current time formatted with layout. Its value changes
// between renders.
type Clock struct {
	Base
	layout string
	now    func() time.Time
}

// NewClock builds a Clock provider using the wall clock.
func NewClock(params map[string]any) (ContentProvider, error) {
	return ClockFactory(time.Now)(params)
}

// ClockFactory returns a clock factory reading time from now.
func ClockFactory(now func() time.Time) Factory {
	clock := now
	if clock == nil {
		clock = time.Now
	}
	return func(params map[string]any) (ContentProvider, error) {
		base, err := NewBase(params)
		if err != nil {
			return nil, err
		}
		return &Clock{Base: base, layout: base.stringParam("layout", time.RFC3339), now: clock}, nil
	}
}

func (p *Clock) Value(context.Context) (any, error) {
	return p.now().Format(p.layout), nil
}

func stringMap(raw any) (map[string]string, error) {
	switch v := raw.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return v, nil
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, val := range v {
			out[k] = fmt.Sprint(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", raw)
	}
}
