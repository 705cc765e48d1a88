package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	internalLoader "github.com/goliatone/go-displaymeta/internal/openapi/loader"
	internalParser "github.com/goliatone/go-displaymeta/internal/openapi/parser"
	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/model"
	pkgopenapi "github.com/goliatone/go-displaymeta/pkg/openapi"
	"github.com/goliatone/go-displaymeta/pkg/overlay"
	"github.com/goliatone/go-displaymeta/pkg/render"
	"github.com/goliatone/go-displaymeta/pkg/renderers/vanilla"
)

const (
	defaultRendererName = "vanilla"
	defaultCacheSize    = 128
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithModelBuilder injects a custom model builder. Scope settings from
// WithScope or an overlay are ignored in that case since the builder owns
// its resolver.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithScope limits label generation for the default builder.
func WithScope(rule metadata.ScopeRule) Option {
	return func(o *Orchestrator) {
		o.scope = &rule
	}
}

// WithCacheSize sets the per-type cache size of the default builder. Zero
// disables caching.
func WithCacheSize(size int) Option {
	return func(o *Orchestrator) {
		o.cacheSize = size
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that can mutate form models after
// building but before overlay decorators run.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against every built model
// before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		for _, d := range decorators {
			if d != nil {
				o.decorators = append(o.decorators, d)
			}
		}
	}
}

// WithOverlayFS supplies an fs.FS holding overlay files. A scope configured
// by the overlay applies unless WithScope is also given.
func WithOverlayFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.overlayFS = fsys
	}
}

// Orchestrator coordinates the pipeline from a descriptor source to rendered
// output. It applies sensible defaults (vanilla renderer, caching builder)
// while remaining open to dependency injection for advanced callers. It is
// safe for concurrent use once constructed.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	parser          pkgopenapi.Parser
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	scope           *metadata.ScopeRule
	cacheSize       int
	decorators      []model.Decorator
	overlayFS       fs.FS
	transformer     Transformer
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		cacheSize:       defaultCacheSize,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if err := o.applyDefaults(); err != nil {
		return nil, err
	}
	return o, nil
}

// MustNew is New that panics on error.
func MustNew(options ...Option) *Orchestrator {
	o, err := New(options...)
	if err != nil {
		panic(err)
	}
	return o
}

// Request describes the inputs required to render an OpenAPI component
// schema.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader when they already hold
	// the payload.
	Document *pkgopenapi.Document

	// Schema selects the component schema to render.
	Schema string

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as the mode,
	// prefilled values, or server-side errors.
	RenderOptions render.RenderOptions
}

// Generate executes the loader → parser → model builder → renderer sequence
// and returns the rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Model(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.Render(ctx, req.Renderer, form, req.RenderOptions)
}

// Model resolves the display model for req without rendering it.
func (o *Orchestrator) Model(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if req.Schema == "" {
		return model.FormModel{}, errors.New("orchestrator: schema name is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}
	catalog, err := o.parser.Schemas(ctx, doc)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: parse schemas: %w", err)
	}
	form, err := catalog.Build(o.builder, req.Schema)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if err := o.finish(ctx, &form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

// Build resolves the display model of a Go struct value or type.
func (o *Orchestrator) Build(ctx context.Context, v any) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	form, err := o.builder.Build(v)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if err := o.finish(ctx, &form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

// Render hands form to the named renderer, or the default one when name is
// empty.
func (o *Orchestrator) Render(ctx context.Context, name string, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	renderer, err := o.Renderer(name)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// RenderList renders rows through the named renderer, which must implement
// render.ListRenderer.
func (o *Orchestrator) RenderList(ctx context.Context, name string, form model.FormModel, rows []map[string]any, opts render.RenderOptions) ([]byte, error) {
	renderer, err := o.Renderer(name)
	if err != nil {
		return nil, err
	}
	lister, ok := renderer.(render.ListRenderer)
	if !ok {
		return nil, fmt.Errorf("orchestrator: renderer %q cannot render lists", renderer.Name())
	}
	output, err := lister.RenderList(ctx, form, rows, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render list: %w", err)
	}
	return output, nil
}

// Renderer looks up a renderer by name. An empty name selects the default
// renderer, falling back to the first registered one.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" || !errors.Is(err, render.ErrUnknownRenderer) {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) finish(ctx context.Context, form *model.FormModel) error {
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, form); err != nil {
			return fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	for _, decorator := range o.decorators {
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyDefaults() error {
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}

	if o.overlayFS != nil {
		store, err := overlay.LoadFS(o.overlayFS)
		if err != nil {
			return fmt.Errorf("orchestrator: load overlay: %w", err)
		}
		if rule, ok := store.Scope(); ok && o.scope == nil {
			o.scope = &rule
		}
		if !store.Empty() {
			o.decorators = append(o.decorators, store.Decorator())
		}
	}

	if o.builder == nil {
		var resolverOpts []metadata.Option
		if o.scope != nil {
			resolverOpts = append(resolverOpts, metadata.WithScopeRule(*o.scope))
		}
		resolver, err := metadata.NewResolver(resolverOpts...)
		if err != nil {
			return fmt.Errorf("orchestrator: configure resolver: %w", err)
		}
		builderOpts := []model.BuilderOption{model.WithResolver(resolver)}
		if o.cacheSize > 0 {
			builderOpts = append(builderOpts, model.WithCache(o.cacheSize))
		}
		builder, err := model.NewBuilder(builderOpts...)
		if err != nil {
			return fmt.Errorf("orchestrator: configure builder: %w", err)
		}
		o.builder = builder
	}

	if o.registry == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return fmt.Errorf("orchestrator: default renderer: %w", err)
		}
		registry, err := render.NewRegistry(renderer)
		if err != nil {
			return fmt.Errorf("orchestrator: default registry: %w", err)
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	return nil
}
