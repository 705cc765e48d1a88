package components

import (
	"bytes"
	"fmt"
)

// Template names selected by field template hints. Fields without a
// registered hint fall back to the name of their kind.
const (
	NameString        = "String"
	NameEmail         = "Email"
	NameHidden        = "Hidden"
	NameBoolean       = "Boolean"
	NameMultilineText = "MultilineText"
	NameObject        = "Object"
)

const templatePrefix = "templates/"

// NewDisplayRegistry returns the read-only templates.
func NewDisplayRegistry() *Registry {
	registry := New()
	for _, name := range []string{NameString, NameEmail, NameBoolean, NameMultilineText, NameObject} {
		registry.MustRegister(name, Descriptor{
			Renderer: TemplateRenderer(templatePrefix + "display/" + name + ".tmpl"),
		})
	}
	// hidden values are not presented
	registry.MustRegister(NameHidden, Descriptor{
		Renderer: func(*bytes.Buffer, Field, ComponentData) error { return nil },
	})
	return registry
}

// NewEditorRegistry returns the editor templates.
func NewEditorRegistry() *Registry {
	registry := New()
	for _, name := range []string{NameString, NameEmail, NameHidden, NameBoolean, NameMultilineText, NameObject} {
		registry.MustRegister(name, Descriptor{
			Renderer: TemplateRenderer(templatePrefix + "editor/" + name + ".tmpl"),
		})
	}
	return registry
}

// TemplateRenderer renders templateName with the field bound as "field".
func TemplateRenderer(templateName string) Renderer {
	return func(buf *bytes.Buffer, field Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}
		if _, err := data.Template.RenderTemplate(templateName, map[string]any{"field": field}, buf); err != nil {
			return fmt.Errorf("components: render template %q: %w", templateName, err)
		}
		return nil
	}
}
