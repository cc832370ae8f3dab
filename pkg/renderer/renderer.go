package renderer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/goliatone/go-pageframe/pkg/config"
	"github.com/goliatone/go-pageframe/pkg/frame"
	"github.com/goliatone/go-pageframe/pkg/provider"
	"github.com/goliatone/go-pageframe/pkg/render/template"
	"github.com/goliatone/go-pageframe/pkg/render/template/gotemplate"
)

const (
	// AppKey is the context entry holding provider values.
	AppKey = "app"
	// ContentTemplateKey is set inside AppKey in full-page mode to the name
	// of the template the frame should include.
	ContentTemplateKey = "content_template_name"
)

// Renderer renders templates inside page frames. It is read-only after New
// and safe for concurrent Render calls.
type Renderer struct {
	engine    template.TemplateRenderer
	frames    frame.Selection
	providers *provider.Registry
	env       config.Environment
	useAjax   bool
	router    Router
	logger    *slog.Logger

	engineOptions  []gotemplate.Option
	factories      *provider.Factories
	extraProviders []provider.ContentProvider
	header         http.Header
	ajaxOverride   *bool
	templateFuncs  map[string]any
}

// New builds a Renderer from cfg. Content provider specs are registered and
// then dropped; a spec that cannot be resolved fails construction.
func New(cfg config.Config, options ...Option) (*Renderer, error) {
	r := &Renderer{
		frames: cfg.PageFrame,
		env:    cfg.Environment,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if r.env == "" {
		r.env = config.EnvProduction
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}

	r.providers = provider.NewRegistry(r.factories)
	if err := r.providers.Register(cfg.ContentProviders); err != nil {
		return nil, err
	}
	for _, p := range r.extraProviders {
		r.providers.Add(p)
	}
	r.extraProviders = nil

	if r.engine == nil {
		if cfg.Path == "" {
			return nil, &provider.ConfigurationError{Field: "path", Reason: "missing"}
		}
		engineOptions := append([]gotemplate.Option{
			gotemplate.WithBaseDir(cfg.Path),
			gotemplate.WithExtension(cfg.Extension),
			gotemplate.WithDebug(r.env.IsDevelopment()),
			gotemplate.WithAutoescape(true),
		}, r.engineOptions...)
		engine, err := gotemplate.New(engineOptions...)
		if err != nil {
			return nil, fmt.Errorf("renderer: build engine: %w", err)
		}
		r.engine = engine
	}
	r.engineOptions = nil

	if r.ajaxOverride != nil {
		r.useAjax = *r.ajaxOverride
	} else {
		r.useAjax = IsAjax(r.header)
	}
	r.header = nil

	if err := r.registerBaseFunctions(); err != nil {
		return nil, err
	}

	r.logger.Debug("renderer ready",
		slog.String("environment", string(r.env)),
		slog.Bool("ajax", r.useAjax),
		slog.Any("providers", r.providers.Keys()),
		slog.Any("frames", r.frames.Keys()),
	)
	return r, nil
}

// Render renders name with params. In fragment mode (AJAX or ForceRaw) the
// template is rendered on its own; otherwise the selected page frame is
// rendered with app.content_template_name set to name. params is not
// modified.
func (r *Renderer) Render(ctx context.Context, name string, params map[string]any, options ...RenderOption) (string, error) {
	opts := renderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	app, err := r.appContext(ctx, params)
	if err != nil {
		return "", err
	}
	data := make(map[string]any, len(params)+1)
	for key, value := range params {
		data[key] = value
	}
	data[AppKey] = app

	if r.useAjax || opts.raw {
		return r.engine.RenderTemplate(name, data, opts.writers...)
	}

	frameTemplate, err := r.frames.Resolve(opts.frame, routeFrame(r.router))
	if err != nil {
		return "", err
	}
	content := name
	if resolver, ok := r.engine.(template.PathResolver); ok {
		content = resolver.TemplatePath(name)
	}
	app[ContentTemplateKey] = content

	r.logger.Debug("rendering page frame",
		slog.String("template", content),
		slog.String("frame", frameTemplate),
	)
	return r.engine.RenderTemplate(frameTemplate, data, opts.writers...)
}

// Ajax reports whether the renderer produces fragments for every call.
func (r *Renderer) Ajax() bool {
	return r.useAjax
}

// Environment returns the mode the renderer was built for.
func (r *Renderer) Environment() config.Environment {
	return r.env
}

// Engine returns the wrapped template engine.
func (r *Renderer) Engine() template.TemplateRenderer {
	return r.engine
}

// Frames returns the page frame configuration.
func (r *Renderer) Frames() frame.Selection {
	return r.frames
}

// ProviderKeys lists the registered content provider keys.
func (r *Renderer) ProviderKeys() []string {
	return r.providers.Keys()
}

func (r *Renderer) appContext(ctx context.Context, params map[string]any) (map[string]any, error) {
	values, err := r.providers.ResolveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	existing, _ := params[AppKey].(map[string]any)
	app := make(map[string]any, len(existing)+len(values)+1)
	for key, value := range existing {
		app[key] = value
	}
	for key, value := range values {
		app[key] = value
	}
	return app, nil
}

type templateFunc struct {
	name string
	fn   any
	dev  bool
}

func (r *Renderer) registerBaseFunctions() error {
	dev := r.env.IsDevelopment()
	functions := []templateFunc{
		{name: "is_dev", fn: func() bool { return dev }},
		{name: "dump", fn: gotemplate.Dump, dev: true},
	}

	names := make([]string, 0, len(r.templateFuncs))
	for name := range r.templateFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		functions = append(functions, templateFunc{name: name, fn: r.templateFuncs[name]})
	}
	r.templateFuncs = nil

	for _, f := range functions {
		if f.dev && !dev {
			continue
		}
		added, err := r.engine.RegisterFunction(f.name, f.fn)
		if err != nil {
			return fmt.Errorf("renderer: register %s: %w", f.name, err)
		}
		if !added {
			r.logger.Debug("template function already registered", slog.String("function", f.name))
		}
	}
	return nil
}
