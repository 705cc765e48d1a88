package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-displaymeta/pkg/model"
	"github.com/goliatone/go-displaymeta/pkg/render"
	rendertemplate "github.com/goliatone/go-displaymeta/pkg/render/template"
	"github.com/goliatone/go-displaymeta/pkg/render/template/gotemplate"
	"github.com/goliatone/go-displaymeta/pkg/renderers/vanilla/components"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	display          *components.Registry
	editor           *components.Registry
	policy           *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from disk ahead of the embedded bundle,
// so a host can override single templates.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		if _, err := os.Stat(path); err == nil {
			cfg.templateDir = path
		}
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDisplayTemplates replaces the templates used in display mode.
func WithDisplayTemplates(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.display = registry
		}
	}
}

// WithEditorTemplates replaces the templates used in edit mode.
func WithEditorTemplates(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.editor = registry
		}
	}
}

// WithPolicy overrides the sanitiser applied to field descriptions.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Renderer produces HTML details views, editors and tables. Controls are
// chosen by each field's template hint.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	display   *components.Registry
	editor    *components.Registry
	policy    *bluemonday.Policy
}

var _ render.ListRenderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		opts := []gotemplate.Option{
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		}
		if cfg.templateDir != "" {
			opts = append(opts, gotemplate.WithBaseDir(cfg.templateDir))
		}
		e, err := gotemplate.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		engine = e
	}
	if cfg.display == nil {
		cfg.display = components.NewDisplayRegistry()
	}
	if cfg.editor == nil {
		cfg.editor = components.NewEditorRegistry()
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.UGCPolicy()
	}

	return &Renderer{
		templates: engine,
		display:   cfg.display,
		editor:    cfg.editor,
		policy:    cfg.policy,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces a details view or an editor depending on options.Mode.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if options.EffectiveMode() == render.ModeEdit {
		return r.renderEditor(form, options)
	}
	return r.renderDetails(form, options)
}

func (r *Renderer) renderDetails(form model.FormModel, options render.RenderOptions) ([]byte, error) {
	fr := r.fieldRenderer(render.ModeDisplay, nil)
	rows, err := fr.rows(form.Fields, "", options.Values)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	out, err := r.templates.RenderTemplate("templates/details.tmpl", map[string]any{
		"title": titleFor(form, options),
		"rows":  rows,
		"links": options.Links,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render details: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) renderEditor(form model.FormModel, options render.RenderOptions) ([]byte, error) {
	mapping := render.MapErrors(form, options.Errors)
	fr := r.fieldRenderer(render.ModeEdit, mapping.Fields)
	fields, err := fr.controls(form.Fields, "", options.Values)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	method, override := formMethod(options.EffectiveMethod())
	out, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"title":          titleFor(form, options),
		"action":         options.Action,
		"method":         method,
		"methodOverride": override,
		"formErrors":     mapping.Form,
		"fields":         fields,
		"links":          options.Links,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return []byte(out), nil
}

type listRow struct {
	Cells []string
	Href  string
}

// RenderList renders rows as a table with one column per visible top-level
// field. options.Links["row"] may reference field values as "{Name}" to link
// the first cell of each row.
func (r *Renderer) RenderList(ctx context.Context, form model.FormModel, rows []map[string]any, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	columns := listColumns(form)
	headers := make([]string, 0, len(columns))
	for _, field := range columns {
		headers = append(headers, field.Label)
	}

	fr := r.fieldRenderer(render.ModeDisplay, nil)
	out := make([]listRow, 0, len(rows))
	for _, values := range rows {
		row := listRow{Href: expandLink(options.Links["row"], values)}
		for _, field := range columns {
			cell, err := fr.control(field, field.Name, values[field.Name])
			if err != nil {
				return nil, fmt.Errorf("vanilla renderer: %w", err)
			}
			row.Cells = append(row.Cells, cell)
		}
		out = append(out, row)
	}

	html, err := r.templates.RenderTemplate("templates/list.tmpl", map[string]any{
		"title":   titleFor(form, options),
		"headers": headers,
		"rows":    out,
		"links":   options.Links,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render list: %w", err)
	}
	return []byte(html), nil
}

// Stylesheets lists the stylesheets the templates used by form need.
func (r *Renderer) Stylesheets(form model.FormModel, mode render.Mode) []string {
	registry := r.display
	if mode == render.ModeEdit {
		registry = r.editor
	}
	names := []string{}
	var walk func(fields []model.Field)
	walk = func(fields []model.Field) {
		for _, f := range fields {
			names = append(names, templateFor(registry, f))
			walk(f.Nested)
		}
	}
	walk(form.Fields)
	return registry.Stylesheets(names)
}

func (r *Renderer) fieldRenderer(mode render.Mode, errs map[string][]string) *fieldRenderer {
	registry := r.display
	if mode == render.ModeEdit {
		registry = r.editor
	}
	return &fieldRenderer{
		templates: r.templates,
		registry:  registry,
		policy:    r.policy,
		mode:      mode,
		errors:    errs,
	}
}
