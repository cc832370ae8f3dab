package provider

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
)

// Theme publishes the resolved go-theme selection: name, variant, merged
// tokens, CSS variables, templates, and asset URLs.
type Theme struct {
	Base
	selector theme.ThemeSelector
	theme    string
	variant  string
}

// ThemeFactory returns a factory for theme providers backed by selector.
// Register it under TypeTheme.
func ThemeFactory(selector theme.ThemeSelector) Factory {
	return func(params map[string]any) (ContentProvider, error) {
		base, err := NewBase(params)
		if err != nil {
			return nil, err
		}
		if selector == nil {
			return nil, errors.New("theme selector is required")
		}
		return &Theme{
			Base:     base,
			selector: selector,
			theme:    base.stringParam("theme", ""),
			variant:  base.stringParam("variant", ""),
		}, nil
	}
}

func (p *Theme) Value(context.Context) (any, error) {
	selection, err := p.selector.Select(p.theme, p.variant)
	if err != nil {
		return nil, fmt.Errorf("select theme %q/%q: %w", p.theme, p.variant, err)
	}
	if selection == nil {
		return map[string]any{}, nil
	}

	tokens := map[string]string{}
	templates := map[string]string{}
	assets := map[string]string{}

	if manifest := selection.Manifest; manifest != nil {
		mergeStrings(tokens, manifest.Tokens)
		mergeStrings(templates, manifest.Templates)
		for name, file := range manifest.Assets.Files {
			assets[name] = AssetURL(manifest.Assets.Prefix, file)
		}
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			mergeStrings(tokens, variant.Tokens)
			mergeStrings(templates, variant.Templates)
			prefix := variant.Assets.Prefix
			if prefix == "" {
				prefix = manifest.Assets.Prefix
			}
			for name, file := range variant.Assets.Files {
				assets[name] = AssetURL(prefix, file)
			}
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return map[string]any{
		"name":      selection.Theme,
		"variant":   selection.Variant,
		"tokens":    tokens,
		"css_vars":  cssVars,
		"templates": templates,
		"assets":    assets,
	}, nil
}

func mergeStrings(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}
