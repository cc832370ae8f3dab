package pageframe

import (
	"context"

	"github.com/goliatone/go-pageframe/pkg/config"
	"github.com/goliatone/go-pageframe/pkg/frame"
	"github.com/goliatone/go-pageframe/pkg/provider"
	"github.com/goliatone/go-pageframe/pkg/renderer"
	theme "github.com/goliatone/go-theme"
	"github.com/samber/do/v2"
)

// Config aliases config.Config so callers can build one without importing
// the config package.
type Config = config.Config

// Renderer aliases renderer.Renderer.
type Renderer = renderer.Renderer

// ContentProvider aliases provider.ContentProvider for callers implementing
// their own providers.
type ContentProvider = provider.ContentProvider

// ProviderSpec describes a configured content provider.
type ProviderSpec = provider.Spec

// FrameSelection aliases frame.Selection.
type FrameSelection = frame.Selection

// New builds a renderer from cfg.
func New(cfg Config, options ...renderer.Option) (*Renderer, error) {
	return renderer.New(cfg, options...)
}

// Load reads a YAML configuration file and builds a renderer from it.
func Load(path string, options ...renderer.Option) (*Renderer, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return renderer.New(cfg, options...)
}

// Register adds the renderer service, and its alias, to i. The renderer is
// built on first invocation.
func Register(i do.Injector, cfg Config, options ...renderer.Option) error {
	return renderer.NewServiceProvider(cfg, options...).Register(i)
}

// Render fetches the renderer from i and renders name with params.
func Render(ctx context.Context, i do.Injector, name string, params map[string]any, options ...renderer.RenderOption) (string, error) {
	r, err := renderer.FromContainer(i)
	if err != nil {
		return "", err
	}
	return r.Render(ctx, name, params, options...)
}

// WithThemeSelector enables the theme content provider type, resolving
// selections through selector.
func WithThemeSelector(selector theme.ThemeSelector) renderer.Option {
	factories := provider.DefaultFactories()
	factories.Register(provider.TypeTheme, provider.ThemeFactory(selector))
	return renderer.WithFactories(factories)
}
