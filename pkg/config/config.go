// Package config describes the renderer configuration and loads it from
// YAML (or JSON) documents.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pageframe/pkg/frame"
	"github.com/goliatone/go-pageframe/pkg/provider"
)

// Environment is the application mode threaded into the renderer.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
	EnvTest        Environment = "test"
)

// IsDevelopment reports whether debug helpers should be enabled.
func (e Environment) IsDevelopment() bool {
	return e == EnvDevelopment
}

// ParseEnvironment maps common spellings onto an Environment. Unknown or
// empty values resolve to production.
func ParseEnvironment(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dev", "develop", "development":
		return EnvDevelopment
	case "test", "testing":
		return EnvTest
	default:
		return EnvProduction
	}
}

// EnvFromOS reads the environment mode from the named variable.
func EnvFromOS(key string) Environment {
	return ParseEnvironment(os.Getenv(key))
}

// Config holds the recognised renderer options. ContentProviders is consumed
// by the renderer at construction and not retained.
type Config struct {
	Path             string          `yaml:"path" json:"path"`
	PageFrame        frame.Selection `yaml:"page_frame_template_path" json:"-"`
	ContentProviders []provider.Spec `yaml:"content_providers" json:"content_providers"`
	Environment      Environment     `yaml:"environment" json:"environment"`
	Extension        string          `yaml:"extension" json:"extension"`
}

// Load reads a configuration file from disk. A relative path in the file is
// resolved against the directory holding it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.Path != "" && !filepath.IsAbs(cfg.Path) {
		cfg.Path = filepath.Join(filepath.Dir(path), cfg.Path)
	}
	return cfg, nil
}

// LoadFS reads a configuration file from fsys. Path is returned as written,
// since it names a directory on disk rather than inside fsys.
func LoadFS(fsys fs.FS, path string) (Config, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document. JSON documents parse as YAML.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Path = strings.TrimSpace(cfg.Path)
	if cfg.Environment != "" {
		cfg.Environment = ParseEnvironment(string(cfg.Environment))
	}
	for idx, spec := range cfg.ContentProviders {
		if spec.Identifier() == "" {
			return Config{}, &provider.ConfigurationError{
				Field:  fmt.Sprintf("content_providers[%d].type", idx),
				Reason: "missing",
			}
		}
	}
	return cfg, nil
}
