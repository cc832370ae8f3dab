package provider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/google/go-cmp/cmp"
)

func TestNewBase_ExtractsName(t *testing.T) {
	cfg := map[string]any{"name": "page_title", "title": "Home"}

	base, err := NewBase(cfg)
	if err != nil {
		t.Fatalf("new base: %v", err)
	}
	if base.Key() != "page_title" {
		t.Fatalf("key mismatch: %q", base.Key())
	}
	if diff := cmp.Diff(map[string]any{"title": "Home"}, base.Configuration()); diff != "" {
		t.Fatalf("configuration mismatch (-want +got):\n%s", diff)
	}
	if _, ok := cfg["name"]; !ok {
		t.Fatalf("input configuration must not be mutated")
	}

	got := base.Configuration()
	got["title"] = "changed"
	if base.Configuration()["title"] != "Home" {
		t.Fatalf("configuration accessor must return a copy")
	}
}

func TestNewBase_MissingName(t *testing.T) {
	cases := map[string]map[string]any{
		"absent": {"title": "Home"},
		"blank":  {"name": "  "},
		"nil":    {"name": nil},
	}
	for label, cfg := range cases {
		t.Run(label, func(t *testing.T) {
			_, err := NewBase(cfg)
			if err == nil {
				t.Fatalf("expected configuration error")
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T", err)
			}
			if !errors.Is(err, ErrMissingName) {
				t.Fatalf("expected ErrMissingName, got %v", err)
			}
		})
	}
}

func TestBuiltins(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	cases := []struct {
		name    string
		factory Factory
		params  map[string]any
		want    any
	}{
		{
			name:    "static",
			factory: NewStatic,
			params:  map[string]any{"name": "site", "value": map[string]any{"lang": "en"}},
			want:    map[string]any{"lang": "en"},
		},
		{
			name:    "page title with suffix",
			factory: NewPageTitle,
			params:  map[string]any{"name": "page_title", "title": "Home", "suffix": "Acme"},
			want:    "Home | Acme",
		},
		{
			name:    "page title custom separator",
			factory: NewPageTitle,
			params:  map[string]any{"name": "page_title", "title": "Home", "suffix": "Acme", "separator": " - "},
			want:    "Home - Acme",
		},
		{
			name:    "page title alone",
			factory: NewPageTitle,
			params:  map[string]any{"name": "page_title", "title": "Home"},
			want:    "Home",
		},
		{
			name:    "assets",
			factory: NewAssets,
			params: map[string]any{
				"name":   "assets",
				"prefix": "/static/",
				"files": map[string]any{
					"css": "/app.css",
					"js":  "app.js",
					"cdn": "https://cdn.example.com/lib.js",
				},
			},
			want: map[string]string{
				"css": "/static/app.css",
				"js":  "/static/app.js",
				"cdn": "https://cdn.example.com/lib.js",
			},
		},
		{
			name:    "clock",
			factory: ClockFactory(func() time.Time { return fixed }),
			params:  map[string]any{"name": "now", "layout": "2006-01-02"},
			want:    "2024-05-01",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.factory(tc.params)
			if err != nil {
				t.Fatalf("factory: %v", err)
			}
			got, err := p.Value(ctx)
			if err != nil {
				t.Fatalf("value: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClockFactory_NilClockSharedAcrossGoroutines(t *testing.T) {
	factory := ClockFactory(nil)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := factory(map[string]any{"name": "now"})
			if err != nil {
				errs <- err
				return
			}
			value, err := p.Value(context.Background())
			if err != nil {
				errs <- err
				return
			}
			if _, err := time.Parse(time.RFC3339, value.(string)); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("clock provider: %v", err)
	}
}

func TestBuiltins_RequiredParameters(t *testing.T) {
	cases := map[string]struct {
		factory Factory
		params  map[string]any
		field   string
	}{
		"static value": {NewStatic, map[string]any{"name": "x"}, "value"},
		"title":        {NewPageTitle, map[string]any{"name": "x"}, "title"},
		"html":         {NewHTML, map[string]any{"name": "x"}, "html"},
		"assets files": {NewAssets, map[string]any{"name": "x", "files": []any{"a"}}, "files"},
		"missing name": {NewStatic, map[string]any{"value": 1}, NameKey},
	}
	for label, tc := range cases {
		t.Run(label, func(t *testing.T) {
			_, err := tc.factory(tc.params)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %v", err)
			}
			if cfgErr.Field != tc.field {
				t.Fatalf("field mismatch: want %q, got %q", tc.field, cfgErr.Field)
			}
		})
	}
}

func TestHTML_SanitisesAndMarksSafe(t *testing.T) {
	p, err := NewHTML(map[string]any{
		"name": "banner",
		"html": `<p onclick="steal()">Sale <b>today</b></p><script>alert(1)</script>`,
	})
	if err != nil {
		t.Fatalf("new html: %v", err)
	}
	got, err := p.Value(context.Background())
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	value, ok := got.(*pongo2.Value)
	if !ok {
		t.Fatalf("expected *pongo2.Value, got %T", got)
	}
	if want := "<p>Sale <b>today</b></p>"; value.String() != want {
		t.Fatalf("sanitised markup mismatch\nwant: %q\n got: %q", want, value.String())
	}
}

func TestFunc(t *testing.T) {
	calls := 0
	p, err := NewFunc("counter", func(context.Context) (any, error) {
		calls++
		return calls, nil
	})
	if err != nil {
		t.Fatalf("new func: %v", err)
	}
	if p.Key() != "counter" {
		t.Fatalf("key mismatch: %q", p.Key())
	}
	first, _ := p.Value(context.Background())
	second, _ := p.Value(context.Background())
	if first != 1 || second != 2 {
		t.Fatalf("expected fresh values per call, got %v and %v", first, second)
	}

	if _, err := NewFunc("", func(context.Context) (any, error) { return nil, nil }); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}
