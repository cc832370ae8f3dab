package template

import (
	"io"
)

// TemplateRenderer is the seam between the page renderer and the wrapped
// templating engine. Names passed to Render/RenderTemplate are resolved
// against the engine's loaders.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	RegisterFunction(name string, fn any) (bool, error)
	HasFunction(name string) bool
	GlobalContext(data any) error
}

// PathResolver is implemented by engines that rewrite template names, e.g. by
// appending a configured extension. TemplatePath returns the name the engine
// would load for name, which is what an {% include %} must reference.
type PathResolver interface {
	TemplatePath(name string) string
}
