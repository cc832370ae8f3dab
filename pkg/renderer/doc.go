// Package renderer wraps the pongo2 engine with page-frame selection and
// content providers.
//
// A Renderer is built once from a config.Config. Every Render call merges the
// current provider values into the `app` context entry and then either renders
// the requested template on its own (AJAX requests, ForceRaw) or renders the
// page frame chosen for the call with `app.content_template_name` pointing at
// the requested template:
//
//	{# layouts/default.twig #}
//	<title>{{ app.page_title }}</title>
//	<main>{% include app.content_template_name %}</main>
//
// Whether the renderer produces fragments is decided once, from the
// X-Requested-With header seen at construction time.
package renderer
