package renderer

import (
	"fmt"
	"net/http"
	"strings"
)

const (
	// HeaderRequestedWith is the header inspected for AJAX requests.
	HeaderRequestedWith = "X-Requested-With"
	// AjaxHeaderValue is compared case-insensitively with the header value.
	AjaxHeaderValue = "XMLHttpRequest"
	// RouteFrameAttribute is the route attribute naming a page frame key.
	RouteFrameAttribute = "page_frame"
)

// IsAjax reports whether h marks the request as an AJAX request.
func IsAjax(h http.Header) bool {
	if h == nil {
		return false
	}
	value := strings.TrimSpace(h.Get(HeaderRequestedWith))
	return value != "" && strings.EqualFold(value, AjaxHeaderValue)
}

// Router exposes the attributes of the route being served.
type Router interface {
	ActualRoute() map[string]any
}

// RouterFunc adapts a function to Router.
type RouterFunc func() map[string]any

func (f RouterFunc) ActualRoute() map[string]any {
	if f == nil {
		return nil
	}
	return f()
}

// Route is a fixed set of route attributes.
type Route map[string]any

func (r Route) ActualRoute() map[string]any {
	return r
}

func routeFrame(router Router) string {
	if router == nil {
		return ""
	}
	attrs := router.ActualRoute()
	if attrs == nil {
		return ""
	}
	raw, ok := attrs[RouteFrameAttribute]
	if !ok || raw == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(raw))
}
