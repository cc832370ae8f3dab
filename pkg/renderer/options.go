package renderer

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-pageframe/pkg/provider"
	"github.com/goliatone/go-pageframe/pkg/render"
	"github.com/goliatone/go-pageframe/pkg/render/template"
	"github.com/goliatone/go-pageframe/pkg/render/template/gotemplate"
)

// Option configures a Renderer at construction.
type Option func(*Renderer)

// WithEngine renders through engine instead of building one from the
// configured path. Use it to share one compiled template set between
// request-scoped renderers.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithEngineOptions passes extra options to the pongo2 adapter when the
// renderer builds its own engine.
func WithEngineOptions(options ...gotemplate.Option) Option {
	return func(r *Renderer) {
		r.engineOptions = append(r.engineOptions, options...)
	}
}

// WithFactories resolves content provider specs through factories.
func WithFactories(factories *provider.Factories) Option {
	return func(r *Renderer) {
		if factories != nil {
			r.factories = factories
		}
	}
}

// WithProviders registers constructed providers after the configured ones.
func WithProviders(providers ...provider.ContentProvider) Option {
	return func(r *Renderer) {
		r.extraProviders = append(r.extraProviders, providers...)
	}
}

// WithRouter sets the route source consulted for the page_frame attribute.
func WithRouter(router Router) Option {
	return func(r *Renderer) {
		r.router = router
	}
}

// WithRequest inspects req's headers for AJAX detection.
func WithRequest(req *http.Request) Option {
	return func(r *Renderer) {
		if req != nil {
			r.header = req.Header
		}
	}
}

// WithHeader inspects h for AJAX detection.
func WithHeader(h http.Header) Option {
	return func(r *Renderer) {
		r.header = h
	}
}

// WithAjax forces fragment mode on or off regardless of request headers.
func WithAjax(enabled bool) Option {
	return func(r *Renderer) {
		r.ajaxOverride = &enabled
	}
}

// WithTranslator registers the translate and current_locale template
// functions backed by t.
func WithTranslator(t render.Translator, cfg render.TemplateI18nConfig) Option {
	return func(r *Renderer) {
		r.templateFuncs = render.TemplateI18nFuncs(t, cfg)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// RenderOption adjusts a single Render call.
type RenderOption func(*renderOptions)

type renderOptions struct {
	raw     bool
	frame   string
	writers []io.Writer
}

// ForceRaw renders the template without a page frame.
func ForceRaw() RenderOption {
	return func(o *renderOptions) {
		o.raw = true
	}
}

// PageFrame selects the frame key for this call, taking precedence over the
// route attribute.
func PageFrame(key string) RenderOption {
	return func(o *renderOptions) {
		o.frame = key
	}
}

// WriteTo copies the rendered output to w.
func WriteTo(w io.Writer) RenderOption {
	return func(o *renderOptions) {
		if w != nil {
			o.writers = append(o.writers, w)
		}
	}
}
