package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/goliatone/go-pageframe/internal/prompt"
	"github.com/goliatone/go-pageframe/pkg/config"
	"github.com/goliatone/go-pageframe/pkg/renderer"
	"gopkg.in/yaml.v3"
)

type options struct {
	configPath  string
	template    string
	dataPath    string
	frame       string
	templateDir string
	env         string
	output      string
	raw         bool
	ajax        bool
	interactive bool
	verbose     bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("pageframe: %v", err)
	}

	out, err := run(context.Background(), opts, prompt.Survey(), os.Stderr)
	if err != nil {
		log.Fatalf("pageframe: %v", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
			log.Fatalf("pageframe: write output: %v", err)
		}
		fmt.Printf("Page written to %s\n", opts.output)
		return
	}
	fmt.Println(out)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("pageframe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "pageframe.yaml", "YAML configuration file")
	fs.StringVar(&opts.template, "template", "", "template to render")
	fs.StringVar(&opts.dataPath, "data", "", "YAML file with template parameters")
	fs.StringVar(&opts.frame, "frame", "", "page frame key")
	fs.StringVar(&opts.templateDir, "path", "", "template directory (overrides the config path)")
	fs.StringVar(&opts.env, "env", "", "environment (defaults to config, then PAGEFRAME_ENV)")
	fs.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	fs.BoolVar(&opts.raw, "raw", false, "render without a page frame")
	fs.BoolVar(&opts.ajax, "ajax", false, "simulate an XMLHttpRequest")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for the page frame and render mode")
	fs.BoolVar(&opts.verbose, "v", false, "log debug records to stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if strings.TrimSpace(opts.template) == "" && fs.NArg() > 0 {
		opts.template = fs.Arg(0)
	}
	if strings.TrimSpace(opts.template) == "" && !opts.interactive {
		return options{}, errors.New("a template name is required")
	}
	return opts, nil
}

func run(ctx context.Context, opts options, driver prompt.Driver, stderr io.Writer) (string, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return "", err
	}
	if opts.templateDir != "" {
		cfg.Path = opts.templateDir
	}
	switch {
	case opts.env != "":
		cfg.Environment = config.ParseEnvironment(opts.env)
	case cfg.Environment == "":
		cfg.Environment = config.EnvFromOS("PAGEFRAME_ENV")
	}

	params, err := loadParams(opts.dataPath)
	if err != nil {
		return "", err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rendererOptions := []renderer.Option{renderer.WithLogger(logger)}
	if opts.ajax {
		rendererOptions = append(rendererOptions, renderer.WithAjax(true))
	}

	injector := renderer.NewInjector(logger)
	if err := renderer.NewServiceProvider(cfg, rendererOptions...).Register(injector); err != nil {
		return "", err
	}
	r, err := renderer.FromContainer(injector)
	if err != nil {
		return "", err
	}

	if opts.interactive {
		if err := choose(ctx, driver, r, &opts); err != nil {
			return "", err
		}
	}

	var renderOptions []renderer.RenderOption
	if opts.raw {
		renderOptions = append(renderOptions, renderer.ForceRaw())
	}
	if opts.frame != "" {
		renderOptions = append(renderOptions, renderer.PageFrame(opts.frame))
	}
	return r.Render(ctx, opts.template, params, renderOptions...)
}

// choose asks for anything the flags left open: the template, the render
// mode and, for full pages, the frame key.
func choose(ctx context.Context, driver prompt.Driver, r *renderer.Renderer, opts *options) error {
	if strings.TrimSpace(opts.template) == "" {
		name, err := driver.Input(ctx, prompt.InputConfig{
			Message: "Template",
			Validator: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("template name is required")
				}
				return nil
			},
		})
		if err != nil {
			return err
		}
		opts.template = strings.TrimSpace(name)
	}

	if r.Ajax() {
		return nil
	}

	raw, err := driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: "Render without a page frame?",
		Default: opts.raw,
	})
	if err != nil {
		return err
	}
	opts.raw = raw
	if raw {
		return nil
	}

	keys := r.Frames().Keys()
	if len(keys) < 2 {
		return nil
	}
	defaultIndex := prompt.IndexOf(keys, opts.frame)
	if defaultIndex < 0 {
		defaultIndex = prompt.IndexOf(keys, "default")
	}
	idx, err := driver.Select(ctx, prompt.SelectConfig{
		Message:      "Page frame",
		Options:      keys,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return err
	}
	if idx >= 0 && idx < len(keys) {
		opts.frame = keys[idx]
	}
	return nil
}

func loadParams(path string) (map[string]any, error) {
	params := map[string]any{}
	if strings.TrimSpace(path) == "" {
		return params, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	if err := yaml.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("parse data %s: %w", path, err)
	}
	return params, nil
}
