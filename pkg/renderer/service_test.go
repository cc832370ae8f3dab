package renderer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-pageframe/pkg/config"
	"github.com/goliatone/go-pageframe/pkg/provider"
	"github.com/goliatone/go-pageframe/pkg/testsupport"
	"github.com/samber/do/v2"
)

func TestServiceProvider_LazySingleton(t *testing.T) {
	var builds atomic.Int32
	factories := provider.DefaultFactories()
	factories.Register("counted", func(params map[string]any) (provider.ContentProvider, error) {
		builds.Add(1)
		return provider.NewStatic(params)
	})

	dir := testsupport.WriteTemplates(t, pageTemplates)
	injector := do.New()
	sp := NewServiceProvider(config.Config{
		Path:      dir,
		PageFrame: mappedFrames(),
		ContentProviders: []provider.Spec{{
			Type:       "counted",
			Parameters: map[string]any{"name": "lang", "value": "en"},
		}},
	}, WithFactories(factories))
	if err := sp.Register(injector); err != nil {
		t.Fatalf("register: %v", err)
	}

	provided := map[string]bool{}
	for _, svc := range injector.ListProvidedServices() {
		provided[svc.Service] = true
	}
	if !provided[ServiceName] || !provided[ServiceAlias] {
		t.Fatalf("expected %q and %q to be registered", ServiceName, ServiceAlias)
	}
	if builds.Load() != 0 {
		t.Fatalf("renderer must not be built before first lookup")
	}

	var wg sync.WaitGroup
	results := make([]*Renderer, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := FromContainer(injector)
			if err != nil {
				t.Errorf("from container: %v", err)
				return
			}
			results[i] = r
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r == nil || r != results[0] {
			t.Fatalf("result %d is not the shared instance", i)
		}
	}
	if builds.Load() != 1 {
		t.Fatalf("expected one construction, got %d", builds.Load())
	}

	aliased, err := do.InvokeNamed[*Renderer](injector, ServiceAlias)
	if err != nil {
		t.Fatalf("invoke alias: %v", err)
	}
	if aliased != results[0] {
		t.Fatalf("alias resolved to a different instance")
	}

	out, err := results[0].Render(context.Background(), "content.twig", map[string]any{"title": "Hi"}, PageFrame("minimal"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "minimal[content.twig]" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestServiceProvider_RegisterTwice(t *testing.T) {
	injector := do.New()
	sp := NewServiceProvider(config.Config{Path: t.TempDir()})
	if err := sp.Register(injector); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := sp.Register(injector); !errors.Is(err, ErrServiceRegistered) {
		t.Fatalf("expected ErrServiceRegistered, got %v", err)
	}

	taken := do.New()
	do.ProvideNamedValue(taken, ServiceAlias, "occupied")
	if err := sp.Register(taken); !errors.Is(err, ErrServiceRegistered) {
		t.Fatalf("expected ErrServiceRegistered for a taken alias, got %v", err)
	}
	if _, err := FromContainer(taken); !errors.Is(err, do.ErrServiceNotFound) {
		t.Fatalf("expected nothing registered under %q, got %v", ServiceName, err)
	}
}

func TestServiceProvider_ConstructionErrorSurfacesOnGet(t *testing.T) {
	injector := do.New()
	if err := NewServiceProvider(config.Config{}).Register(injector); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := FromContainer(injector)
	var cfgErr *provider.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestFromContainer_Errors(t *testing.T) {
	injector := do.New()
	if _, err := FromContainer(injector); !errors.Is(err, do.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}

	do.ProvideNamedValue(injector, ServiceName, "not a renderer")
	if _, err := FromContainer(injector); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestNewInjector_LogsFailedInvocation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	injector := NewInjector(logger)
	if err := NewServiceProvider(config.Config{}).Register(injector); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := FromContainer(injector); err == nil {
		t.Fatalf("expected construction error")
	}

	out := buf.String()
	if !strings.Contains(out, "service invocation failed") || !strings.Contains(out, "service="+ServiceName) {
		t.Fatalf("expected failed invocation to be logged, got %q", out)
	}
}
