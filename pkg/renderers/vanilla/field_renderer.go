package vanilla

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/model"
	"github.com/goliatone/go-displaymeta/pkg/render"
	rendertemplate "github.com/goliatone/go-displaymeta/pkg/render/template"
	"github.com/goliatone/go-displaymeta/pkg/renderers/vanilla/components"
)

const defaultTextareaRows = 3

type fieldRenderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
	policy    *bluemonday.Policy
	mode      render.Mode
	errors    map[string][]string
}

// rows renders display rows (dt/dd pairs). Hidden fields are skipped.
func (r *fieldRenderer) rows(fields []model.Field, prefix string, values map[string]any) ([]string, error) {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if field.Hidden {
			continue
		}
		path := joinPath(prefix, field.Name)
		view, control, err := r.render(field, path, values[field.Name])
		if err != nil {
			return nil, err
		}
		row, err := r.templates.RenderTemplate("templates/row.tmpl", map[string]any{
			"field":   view,
			"control": control,
		})
		if err != nil {
			return nil, fmt.Errorf("render row %q: %w", path, err)
		}
		out = append(out, row)
	}
	return out, nil
}

// controls renders labelled editor controls. Hidden fields are kept as
// hidden inputs so keys round-trip.
func (r *fieldRenderer) controls(fields []model.Field, prefix string, values map[string]any) ([]string, error) {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		path := joinPath(prefix, field.Name)
		view, control, err := r.render(field, path, values[field.Name])
		if err != nil {
			return nil, err
		}
		wrapped, err := r.templates.RenderTemplate("templates/field.tmpl", map[string]any{
			"field":   view,
			"control": control,
		})
		if err != nil {
			return nil, fmt.Errorf("render field %q: %w", path, err)
		}
		out = append(out, wrapped)
	}
	return out, nil
}

// control renders only the value or input markup for field.
func (r *fieldRenderer) control(field model.Field, path string, value any) (string, error) {
	_, control, err := r.render(field, path, value)
	return control, err
}

func (r *fieldRenderer) render(field model.Field, path string, value any) (components.Field, string, error) {
	view := r.view(field, path, value)
	if view.IsObject {
		nested, _ := value.(map[string]any)
		var (
			children []string
			err      error
		)
		if r.mode == render.ModeEdit {
			children, err = r.controls(field.Nested, path, nested)
		} else {
			children, err = r.rows(field.Nested, path, nested)
		}
		if err != nil {
			return view, "", err
		}
		view.Children = children
	}

	name := templateFor(r.registry, field)
	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return view, "", fmt.Errorf("template %q not registered for field %q", name, path)
	}
	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, view, components.ComponentData{Template: r.templates}); err != nil {
		return view, "", fmt.Errorf("render %q for field %q: %w", name, path, err)
	}
	return view, buf.String(), nil
}

func (r *fieldRenderer) view(field model.Field, path string, value any) components.Field {
	view := components.Field{
		Name:        field.Name,
		Path:        path,
		ID:          controlID(path),
		Label:       field.Label,
		Description: r.policy.Sanitize(field.Description),
		InputType:   inputType(field),
		Placeholder: field.UIHints["placeholder"],
		HelpText:    field.UIHints["helpText"],
		CSSClass:    sanitizeClassList(firstNonEmpty(field.UIHints["class"], field.UIHints["cssClass"])),
		Rows:        textareaRows(field.UIHints["rows"]),
		Required:    field.Required,
		Hidden:      field.Hidden,
		HideLabel:   field.UIHints["hideLabel"] == "true",
		IsObject:    field.Type == model.FieldTypeObject && len(field.Nested) > 0,
		Errors:      r.errors[path],
		UIHints:     field.UIHints,
	}
	if view.Label == "" {
		view.Label = field.Name
	}
	if r.mode == render.ModeEdit {
		view.Value = render.EditValue(field, value)
	} else {
		view.Value = render.DisplayValue(field, value)
	}
	if field.TypeTag == metadata.TypeBoolean {
		view.Checked = isTrue(value)
	}
	if view.Value != "" && strings.EqualFold(field.TemplateHint, metadata.HintEmail.String()) {
		view.Href = "mailto:" + view.Value
	}
	return view
}

// templateFor picks the registry entry for field: an explicit widget hint,
// then the template hint, then the field kind.
func templateFor(registry *components.Registry, field model.Field) string {
	for _, candidate := range []string{field.UIHints["widget"], field.TemplateHint} {
		if candidate != "" && registry.Has(candidate) {
			return candidate
		}
	}
	switch {
	case field.Type == model.FieldTypeObject && len(field.Nested) > 0:
		return components.NameObject
	case field.TypeTag == metadata.TypeBoolean:
		return components.NameBoolean
	default:
		return components.NameString
	}
}

func inputType(field model.Field) string {
	if t := strings.TrimSpace(field.UIHints["inputType"]); t != "" {
		return t
	}
	switch {
	case field.Hidden:
		return "hidden"
	case strings.EqualFold(field.TemplateHint, metadata.HintEmail.String()):
		return "email"
	case field.TypeTag == metadata.TypeDate:
		return "datetime-local"
	case field.TypeTag == metadata.TypeDateOnly:
		return "date"
	case field.Type == model.FieldTypeInteger, field.Type == model.FieldTypeNumber:
		return "number"
	default:
		return "text"
	}
}

func textareaRows(raw string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
		return n
	}
	return defaultTextareaRows
}

func isTrue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case *bool:
		return v != nil && *v
	}
	return false
}
