package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-displaymeta/pkg/openapi"
)

const componentRefPrefix = "#/components/schemas/"

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Schemas converts the component schemas of doc into a catalog.
func (p *Parser) Schemas(ctx context.Context, doc pkgopenapi.Document) (pkgopenapi.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Catalog{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgopenapi.Catalog{}, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.AllowExternalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return pkgopenapi.Catalog{}, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return pkgopenapi.Catalog{}, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	catalog := pkgopenapi.Catalog{Schemas: map[string]pkgopenapi.Schema{}}
	if spec.Components == nil {
		return catalog, nil
	}
	for name, ref := range spec.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		schema := convertSchema(ref.Value)
		schema.Name = name
		catalog.Schemas[name] = schema
	}
	return catalog, nil
}

func convertSchema(src *openapi3.Schema) pkgopenapi.Schema {
	schema := pkgopenapi.Schema{
		Title:       src.Title,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Description: src.Description,
		Nullable:    src.Nullable,
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	applyExtensions(&schema, src.Extensions)
	if schema.Label == "" {
		schema.Label = strings.TrimSpace(src.Title)
	}

	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertRef(property)
		}
	}
	if src.Items != nil {
		items := convertRef(src.Items)
		schema.Items = &items
	}

	for _, part := range src.AllOf {
		if part == nil {
			continue
		}
		if name := strings.TrimPrefix(part.Ref, componentRefPrefix); part.Ref != "" && name != part.Ref {
			schema.Bases = append(schema.Bases, name)
			continue
		}
		if part.Value != nil {
			mergeInline(&schema, convertSchema(part.Value))
		}
	}
	if schema.Type == "" && (len(schema.Properties) > 0 || len(schema.Bases) > 0) {
		schema.Type = "object"
	}
	return schema
}

// convertRef keeps references symbolic so recursive component graphs stay
// finite. Only the target's kind is copied for classification.
func convertRef(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Ref != "" {
		schema := pkgopenapi.Schema{Ref: ref.Ref}
		if ref.Value != nil {
			schema.Type = firstSchemaType(ref.Value.Type)
			schema.Format = ref.Value.Format
			if schema.Type == "" && (len(ref.Value.Properties) > 0 || len(ref.Value.AllOf) > 0) {
				schema.Type = "object"
			}
		}
		return schema
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{}
	}
	return convertSchema(ref.Value)
}

func mergeInline(target *pkgopenapi.Schema, part pkgopenapi.Schema) {
	for name, property := range part.Properties {
		if target.Properties == nil {
			target.Properties = map[string]pkgopenapi.Schema{}
		}
		if _, exists := target.Properties[name]; !exists {
			target.Properties[name] = property
		}
	}
	for _, req := range part.Required {
		if !contains(target.Required, req) {
			target.Required = append(target.Required, req)
		}
	}
	for _, base := range part.Bases {
		if !contains(target.Bases, base) {
			target.Bases = append(target.Bases, base)
		}
	}
	if target.Description == "" {
		target.Description = part.Description
	}
}

func applyExtensions(schema *pkgopenapi.Schema, ext map[string]any) {
	if label, ok := ext[pkgopenapi.ExtensionLabel].(string); ok {
		schema.Label = strings.TrimSpace(label)
	}
	if hint, ok := ext[pkgopenapi.ExtensionHint].(string); ok {
		schema.Hint = strings.TrimSpace(hint)
	}
	if ui, ok := ext[pkgopenapi.ExtensionUI].(map[string]any); ok && len(ui) > 0 {
		schema.UIHints = make(map[string]string, len(ui))
		for key, value := range ui {
			schema.UIHints[key] = fmt.Sprint(value)
		}
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != "null" {
			return value
		}
	}
	return ""
}

func contains(values []string, needle string) bool {
	for _, v := range values {
		if v == needle {
			return true
		}
	}
	return false
}
