package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/model"
	"github.com/goliatone/go-displaymeta/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven edit sessions.
// Each visible field is prompted in model order and the collected values are
// serialized as the render output.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	validate          *validator.Validate
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		validate:     validator.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every visible field of form. Hidden fields are not
// prompted; their prefilled values pass through untouched.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.EffectiveMode() != render.ModeEdit {
		return nil, ErrDisplayUnsupported
	}

	if title := strings.TrimSpace(opts.Title); title != "" {
		if err := r.info(ctx, title); err != nil {
			return nil, err
		}
	}
	mapping := render.MapErrors(form, opts.Errors)
	for _, msg := range mapping.Form {
		if err := r.errorf(ctx, "%s", msg); err != nil {
			return nil, err
		}
	}

	values, err := r.promptFields(ctx, form.Fields, "", opts.Values, mapping.Fields)
	if err != nil {
		return nil, err
	}
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(form, values)
}

func (r *Renderer) promptFields(ctx context.Context, fields []model.Field, prefix string, current map[string]any, errs map[string][]string) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		path := joinPath(prefix, field.Name)
		value, has := current[field.Name]
		if field.Hidden {
			if has {
				out[field.Name] = value
			}
			continue
		}
		for _, msg := range errs[path] {
			if err := r.errorf(ctx, "%s: %s", field.Label, msg); err != nil {
				return nil, err
			}
		}

		if field.Type == model.FieldTypeObject && len(field.Nested) > 0 {
			nested, _ := value.(map[string]any)
			if err := r.info(ctx, field.Label); err != nil {
				return nil, err
			}
			child, err := r.promptFields(ctx, field.Nested, path, nested, errs)
			if err != nil {
				return nil, err
			}
			out[field.Name] = child
			continue
		}

		got, err := r.promptField(ctx, field, path, value)
		if err != nil {
			return nil, err
		}
		out[field.Name] = got
	}
	return out, nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, path string, current any) (any, error) {
	switch {
	case field.TypeTag == metadata.TypeBoolean:
		def, _ := current.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Label,
			Default: def,
			Help:    helpFor(field),
		})
	case strings.EqualFold(field.TemplateHint, "MultilineText"):
		text, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: field.Label,
			Default: render.EditValue(field, current),
			Help:    helpFor(field),
		})
		if err != nil {
			return nil, err
		}
		if err := r.check(field, text); err != nil {
			// multiline editors cannot validate inline, so report and retry
			if infoErr := r.errorf(ctx, "%s: %v", path, err); infoErr != nil {
				return nil, infoErr
			}
			return r.promptField(ctx, field, path, text)
		}
		return text, nil
	}

	validate := func(raw string) error {
		_, err := r.convert(field, raw)
		return err
	}
	def := render.EditValue(field, current)
	for {
		raw, err := r.driver.Input(ctx, InputConfig{
			Message:   field.Label,
			Default:   def,
			Help:      helpFor(field),
			Validator: validate,
		})
		if err != nil {
			return nil, err
		}
		value, err := r.convert(field, raw)
		if err != nil {
			if infoErr := r.errorf(ctx, "%s: %v", path, err); infoErr != nil {
				return nil, infoErr
			}
			continue
		}
		return value, nil
	}
}

// convert validates raw input for field and returns the typed value.
func (r *Renderer) convert(field model.Field, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if err := r.check(field, raw); err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	switch field.Type {
	case model.FieldTypeInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a whole number", raw)
		}
		return n, nil
	case model.FieldTypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", raw)
		}
		return n, nil
	}
	if field.TypeTag == metadata.TypeDate || field.TypeTag == metadata.TypeDateOnly {
		value, err := render.ParseEdited(field, raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid date", raw)
		}
		return value, nil
	}
	return raw, nil
}

func (r *Renderer) check(field model.Field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		if field.Required {
			return errors.New("a value is required")
		}
		return nil
	}
	if strings.EqualFold(field.TemplateHint, metadata.HintEmail.String()) {
		if err := r.validate.Var(raw, "email"); err != nil {
			return fmt.Errorf("%q is not a valid email address", raw)
		}
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) errorf(ctx context.Context, format string, args ...any) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+fmt.Sprintf(format, args...))
}

func (r *Renderer) serialize(form model.FormModel, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		out := url.Values{}
		flattenForm(form.Fields, "", values, out)
		return []byte(out.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		writePretty(&b, form.Fields, "", values)
		return []byte(b.String()), nil
	default:
		payload, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return payload, nil
	}
}

func flattenForm(fields []model.Field, prefix string, values map[string]any, out url.Values) {
	for _, field := range fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		path := joinPath(prefix, field.Name)
		if nested, isMap := value.(map[string]any); isMap {
			flattenForm(field.Nested, path, nested, out)
			continue
		}
		out.Set(path, render.EditValue(field, value))
	}
}

func writePretty(b *strings.Builder, fields []model.Field, indent string, values map[string]any) {
	for _, field := range fields {
		value, ok := values[field.Name]
		if !ok || field.Hidden {
			continue
		}
		if nested, isMap := value.(map[string]any); isMap {
			fmt.Fprintf(b, "%s%s:\n", indent, field.Label)
			writePretty(b, field.Nested, indent+"  ", nested)
			continue
		}
		fmt.Fprintf(b, "%s%s: %s\n", indent, field.Label, render.DisplayValue(field, value))
	}
}

func helpFor(field model.Field) string {
	if help := strings.TrimSpace(field.UIHints["helpText"]); help != "" {
		return help
	}
	return strings.TrimSpace(field.Description)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
