package displaymeta

import (
	"context"

	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/model"
	pkgopenapi "github.com/goliatone/go-displaymeta/pkg/openapi"
	"github.com/goliatone/go-displaymeta/pkg/orchestrator"
	"github.com/goliatone/go-displaymeta/pkg/render"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// ScopeRule selects the container types that receive generated labels.
type ScopeRule = metadata.ScopeRule

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(options...)
}

// NewBuilder exposes the model builder constructor from the top-level module.
func NewBuilder(options ...model.BuilderOption) (model.Builder, error) {
	return model.NewBuilder(options...)
}

// GenerateHTML loads the OpenAPI source, resolves the requested component
// schema and renders it using the named renderer. It is the simplest entry
// point for callers that just want HTML output.
func GenerateHTML(ctx context.Context, source pkgopenapi.Source, schema, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen, err := orchestrator.New(options...)
	if err != nil {
		return nil, err
	}
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Schema:   schema,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDocument renders a schema from a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, doc pkgopenapi.Document, schema, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen, err := orchestrator.New(options...)
	if err != nil {
		return nil, err
	}
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Schema:   schema,
		Renderer: rendererName,
	})
}

// RenderStruct resolves the display model of v and renders it with the named
// renderer, passing v's current values along.
func RenderStruct(ctx context.Context, v any, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen, err := orchestrator.New(options...)
	if err != nil {
		return nil, err
	}
	form, err := gen.Build(ctx, v)
	if err != nil {
		return nil, err
	}
	if opts.Values == nil {
		opts.Values = model.Values(form, v)
	}
	return gen.Render(ctx, rendererName, form, opts)
}
