package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-pageframe/pkg/config"
	"github.com/samber/do/v2"
)

const (
	// ServiceName is the injector key the renderer is registered under.
	ServiceName = "twig"
	// ServiceAlias resolves to the same instance as ServiceName.
	ServiceAlias = "renderer"
)

// ErrServiceRegistered is returned when the injector already declares the
// renderer service or its alias.
var ErrServiceRegistered = errors.New("renderer: service already registered")

// ServiceProvider registers a lazily built Renderer on an injector.
type ServiceProvider struct {
	Config  config.Config
	Options []Option
}

// NewServiceProvider captures cfg and options for later construction.
func NewServiceProvider(cfg config.Config, options ...Option) *ServiceProvider {
	return &ServiceProvider{Config: cfg, Options: options}
}

// Register declares the renderer under ServiceName and ServiceAlias. Nothing
// is built until the first invocation; a failed build is retried on the next
// one.
func (p *ServiceProvider) Register(i do.Injector) error {
	for _, svc := range i.ListProvidedServices() {
		if svc.Service == ServiceName || svc.Service == ServiceAlias {
			return fmt.Errorf("%w: %s", ErrServiceRegistered, svc.Service)
		}
	}

	cfg := p.Config
	options := append([]Option(nil), p.Options...)

	do.ProvideNamed(i, ServiceName, func(do.Injector) (*Renderer, error) {
		return New(cfg, options...)
	})
	return do.AsNamed[*Renderer, *Renderer](i, ServiceName, ServiceAlias)
}

// FromContainer returns the renderer registered on i.
func FromContainer(i do.Injector) (*Renderer, error) {
	return do.InvokeNamed[*Renderer](i, ServiceName)
}

// NewInjector returns a root injector whose internal events are written to
// logger at debug level. Failed invocations are logged as warnings.
func NewInjector(logger *slog.Logger) *do.RootScope {
	if logger == nil {
		return do.New()
	}
	return do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		},
		HookAfterInvocation: []func(*do.Scope, string, error){
			func(scope *do.Scope, name string, err error) {
				if err != nil {
					logger.Warn("service invocation failed",
						slog.String("service", name),
						slog.String("scope", scope.Name()),
						slog.Any("error", err),
					)
				}
			},
		},
	})
}
