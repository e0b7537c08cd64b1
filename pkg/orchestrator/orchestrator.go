package orchestrator

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-docdantic/internal/loader"
	"github.com/goliatone/go-docdantic/pkg/directive"
	"github.com/goliatone/go-docdantic/pkg/jsonschema"
	"github.com/goliatone/go-docdantic/pkg/model"
	"github.com/goliatone/go-docdantic/pkg/openapi"
	"github.com/goliatone/go-docdantic/pkg/registry"
	"github.com/goliatone/go-docdantic/pkg/render"
	"github.com/goliatone/go-docdantic/pkg/schema"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects the type registry directives resolve against.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = reg
	}
}

// WithRenderOptions forwards options to the table renderer.
func WithRenderOptions(options ...render.Option) Option {
	return func(o *Orchestrator) {
		o.renderOptions = append(o.renderOptions, options...)
	}
}

// WithLogger routes debug events through logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithLoader injects the loader used by Load.
func WithLoader(l schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithAdapterRegistry replaces the built-in format adapters.
func WithAdapterRegistry(adapters *AdapterRegistry) Option {
	return func(o *Orchestrator) {
		o.adapters = adapters
	}
}

// Orchestrator resolves directives against a registry and renders them. Each
// call renders with a fresh context, so one Orchestrator serves any number of
// documents.
type Orchestrator struct {
	registry      *registry.Registry
	renderer      *render.Renderer
	renderOptions []render.Option
	logger        logrus.FieldLogger
	loader        schema.Loader
	adapters      *AdapterRegistry
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies fall back to an empty registry, a silent logger, the local
// loader and the JSON Schema / OpenAPI adapters.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.registry == nil {
		o.registry = registry.New()
	}
	if o.logger == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		o.logger = silent
	}
	if o.loader == nil {
		o.loader = loader.New(loader.Options{})
	}
	if o.adapters == nil {
		o.adapters = NewAdapterRegistry()
		o.adapters.MustRegister(openapi.Adapter{})
		o.adapters.MustRegister(jsonschema.Adapter{})
	}
	o.renderer = render.New(o.registry, o.renderOptions...)
}

// Registry exposes the registry so callers can register declarations.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.registry
}

// Render resolves the directive's target and renders its table.
func (o *Orchestrator) Render(d directive.Directive) (string, error) {
	return o.RenderPath(d.Target, d.Config)
}

// RenderPath resolves path and renders it with cfg. Errors from resolution
// and rendering are returned unchanged in their chain so callers can match
// registry.ResolutionError and registry.TypeError.
func (o *Orchestrator) RenderPath(path string, cfg directive.Config) (string, error) {
	if o == nil {
		return "", errors.New("orchestrator: orchestrator is nil")
	}
	log := o.logger.WithField("path", path)

	decl, err := o.registry.Resolve(path)
	if err != nil {
		log.WithError(err).Debug("directive target did not resolve")
		return "", err
	}

	table, err := o.renderer.Render(decl, cfg.Exclude)
	if err != nil {
		log.WithError(err).Debug("directive failed to render")
		return "", fmt.Errorf("orchestrator: render %s: %w", path, err)
	}
	log.WithField("excluded_models", len(cfg.Exclude)).Debug("directive rendered")
	return table, nil
}

// RenderDeclaration renders a declaration that was not necessarily
// registered. Nested references still resolve through the registry.
func (o *Orchestrator) RenderDeclaration(decl model.Declaration, exclude model.Exclusions) (string, error) {
	return o.renderer.Render(decl, exclude)
}
