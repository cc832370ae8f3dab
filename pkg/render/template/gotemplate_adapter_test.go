package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-pageframe/pkg/render/template/gotemplate"
	"github.com/goliatone/go-pageframe/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if diff := testsupport.CompareGolden(want, result); diff != "" {
		t.Fatalf("global context mismatch (-want +got):\n%s", diff)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("pageframe_shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}

	if err := engine.RegisterFilter("pageframe_shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
}

func TestGoTemplateEngine_EscapesAndSanitizes(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("escape", map[string]any{
		"markup": "<b>ok</b><script>alert(1)</script>",
		"count":  3,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "&lt;b&gt;ok&lt;/b&gt;&lt;script&gt;alert(1)&lt;/script&gt;|<b>ok</b>|3"
	if result != want {
		t.Fatalf("escape mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RegisterFunctionIsIdempotent(t *testing.T) {
	engine := newEngine(t)

	added, err := engine.RegisterFunction("is_dev", func() bool { return true })
	if err != nil || !added {
		t.Fatalf("first registration: added=%v err=%v", added, err)
	}
	added, err = engine.RegisterFunction("is_dev", func() bool { return false })
	if err != nil {
		t.Fatalf("second registration: %v", err)
	}
	if added {
		t.Fatalf("expected duplicate registration to be skipped")
	}
	if !engine.HasFunction("is_dev") {
		t.Fatalf("expected is_dev to be registered")
	}

	result, err := engine.RenderTemplate("call", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "dev" {
		t.Fatalf("expected first registration to win, got %q", result)
	}

	if _, err := engine.RegisterFunction("not_a_func", "value"); err == nil {
		t.Fatalf("expected non-callable registration to fail")
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ greeting }}, {{ name }}", map[string]any{"greeting": "Hi", "name": "Ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "Hi, Ada" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)

	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestGoTemplateEngine_RequiresLoader(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func TestGoTemplateEngine_FSIncludesResolveFromRoot(t *testing.T) {
	files := fstest.MapFS{
		"layouts/default.twig": {Data: []byte(`[{% include page %}]`)},
		"pages/home.twig":      {Data: []byte(`home {{ name }}`)},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("layouts/default.twig", map[string]any{"page": "pages/home.twig", "name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "[home Ada]" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_SetName(t *testing.T) {
	files := fstest.MapFS{"a.twig": {Data: []byte(`a`)}}

	tests := []struct {
		name    string
		options []gotemplate.Option
		want    string
	}{
		{name: "default", want: "pageframe"},
		{name: "custom", options: []gotemplate.Option{gotemplate.WithSetName(" pageframe-production ")}, want: "pageframe-production"},
		{name: "blank keeps default", options: []gotemplate.Option{gotemplate.WithSetName("  ")}, want: "pageframe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, tt.options...)...)
			if err != nil {
				t.Fatalf("new engine: %v", err)
			}
			if got := engine.Name(); got != tt.want {
				t.Fatalf("expected set name %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGoTemplateEngine_TemplatePath(t *testing.T) {
	files := fstest.MapFS{
		"layouts/default.twig": {Data: []byte(`[{% include page %}]`)},
		"content.twig":         {Data: []byte(`content {{ name }}`)},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files), gotemplate.WithExtension("twig"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if got := engine.TemplatePath("content"); got != "content.twig" {
		t.Fatalf("expected extension to be appended, got %q", got)
	}
	if got := engine.TemplatePath("content.twig"); got != "content.twig" {
		t.Fatalf("expected name to be kept, got %q", got)
	}

	result, err := engine.RenderTemplate("layouts/default", map[string]any{"page": engine.TemplatePath("content"), "name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "[content Ada]" {
		t.Fatalf("unexpected output %q", result)
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS), gotemplate.WithExtension(".tpl"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
