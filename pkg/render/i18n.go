// Package render holds template helpers shared by the page renderer. The
// pongo2 engine adapter lives in the template subpackages.
package render

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what a template prints when a key has no
// translation. err is the translator error, or ErrMissingTranslator.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Catalog is an in-memory Translator backed by an x/text message catalog.
// Lookups walk the locale's parent chain, so "es-MX" falls back to "es", and
// arguments are formatted with the locale's number conventions.
type Catalog struct {
	builder *catalog.Builder
}

// NewCatalog builds a catalog from locale -> key -> message entries.
func NewCatalog(messages map[string]map[string]string) (*Catalog, error) {
	c := &Catalog{builder: catalog.NewBuilder()}
	for locale, entries := range messages {
		for key, msg := range entries {
			if err := c.Set(locale, key, msg); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// Set adds or replaces the message for key in locale.
func (c *Catalog) Set(locale, key, msg string) error {
	tag, err := parseLocale(locale)
	if err != nil {
		return err
	}
	if err := c.builder.SetString(tag, key, msg); err != nil {
		return fmt.Errorf("render: set %q in %q: %w", key, locale, err)
	}
	return nil
}

// Translate implements Translator.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	tag, err := parseLocale(locale)
	if err != nil {
		return "", err
	}
	if err := c.builder.Context(tag, discardRenderer{}).Execute(key); errors.Is(err, catalog.ErrNotFound) {
		return "", fmt.Errorf("render: no translation for %q in %q", key, locale)
	}
	return message.NewPrinter(tag, message.Catalog(c.builder)).Sprintf(key, args...), nil
}

// Locales lists the catalog locales in sorted order.
func (c *Catalog) Locales() []string {
	tags := c.builder.Languages()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	sort.Strings(out)
	return out
}

func parseLocale(locale string) (language.Tag, error) {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return language.Und, errors.New("render: empty locale")
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("render: locale %q: %w", locale, err)
	}
	return tag, nil
}

// discardRenderer lets Translate test for a key without formatting it.
type discardRenderer struct{}

func (discardRenderer) Render(string) {}
func (discardRenderer) Arg(int) any   { return nil }

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey selects the field/key used to infer locale from template data
	// when callers pass a struct or map instead of a raw string.
	LocaleKey string
	// FuncName customizes the translator helper name (defaults to "translate").
	FuncName string
	// DefaultLocale is used when the locale source resolves to nothing.
	DefaultLocale string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns the functions to register on a template engine:
//
//	translate(localeSrc, key, ...args) string
//	current_locale(localeSrc) string
//
// localeSrc is a locale string or a map/struct holding one under LocaleKey,
// so templates can pass the app namespace directly.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}

	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}

	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	locale := func(src any) string {
		if resolved := resolveLocale(src, localeKey); resolved != "" {
			return resolved
		}
		return cfg.DefaultLocale
	}

	return map[string]any{
		translateName: func(localeSrc any, key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			loc := locale(localeSrc)
			if t == nil {
				return onMissing(loc, key, params, ErrMissingTranslator)
			}
			msg, err := t.Translate(loc, key, params...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(loc, key, params, err)
			}
			return msg
		},
		"current_locale": func(localeSrc any) string {
			return locale(localeSrc)
		},
	}
}

func missingTranslationDefault(_, key string, _ []any, _ error) string {
	return key
}

func resolveLocale(src any, key string) string {
	if src == nil {
		return ""
	}

	if str, ok := src.(string); ok {
		return strings.TrimSpace(str)
	}

	switch data := src.(type) {
	case map[string]any:
		if v, ok := data[key]; ok && v != nil {
			return strings.TrimSpace(fmt.Sprint(v))
		}
		return ""
	case map[string]string:
		return strings.TrimSpace(data[key])
	}

	value := reflect.ValueOf(src)
	for value.IsValid() && value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ""
		}
		value = value.Elem()
	}
	if !value.IsValid() {
		return ""
	}

	switch value.Kind() {
	case reflect.Struct:
		field := value.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, key)
		})
		if field.IsValid() && field.Kind() == reflect.String {
			return field.String()
		}
	case reflect.Map:
		if value.Type().Key().Kind() == reflect.String {
			val := value.MapIndex(reflect.ValueOf(key))
			if val.IsValid() && val.Kind() == reflect.String {
				return val.String()
			}
		}
	}
	return ""
}
