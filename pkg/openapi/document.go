package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/model"
)

const (
	// ExtensionLabel carries an explicit display label on a property.
	ExtensionLabel = "x-display-label"
	// ExtensionHint carries an explicit template hint on a property.
	ExtensionHint = "x-ui-hint"
	// ExtensionUI carries curated renderer hints as an object.
	ExtensionUI = "x-ui"

	componentRefPrefix = "#/components/schemas/"
)

// ErrUnknownSchema is returned when a component name is not in the catalog.
var ErrUnknownSchema = errors.New("openapi: unknown schema")

// Document wraps the raw payload and its origin so the public API stays
// decoupled from kin-openapi.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin of the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the origin identifier.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Schema is the subset of an OpenAPI schema needed to describe display
// properties.
type Schema struct {
	Name        string
	Ref         string
	Title       string
	Type        string
	Format      string
	Description string
	Nullable    bool
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	// Bases lists the component names referenced from allOf, in order.
	Bases   []string
	Label   string
	Hint    string
	UIHints map[string]string
}

// RefName returns the component name a "#/components/schemas/X" reference
// points at, or "" for inline schemas.
func (s Schema) RefName() string {
	return refName(s.Ref)
}

// TypeTag classifies the schema for the type-based formatter.
func (s Schema) TypeTag() metadata.TypeTag {
	switch {
	case s.Type == "boolean":
		return metadata.TypeBoolean
	case s.Type == "string" && s.Format == "date-time":
		return metadata.TypeDate
	case s.Type == "string" && s.Format == "date":
		return metadata.TypeDateOnly
	default:
		return metadata.TypeOther
	}
}

// FieldType maps the schema onto the form field kinds.
func (s Schema) FieldType() model.FieldType {
	switch s.TypeTag() {
	case metadata.TypeBoolean:
		return model.FieldTypeBoolean
	case metadata.TypeDate:
		return model.FieldTypeDateTime
	case metadata.TypeDateOnly:
		return model.FieldTypeDate
	}
	switch s.Type {
	case "integer":
		return model.FieldTypeInteger
	case "number":
		return model.FieldTypeNumber
	case "object":
		return model.FieldTypeObject
	default:
		return model.FieldTypeString
	}
}

func (s Schema) requires(name string) bool {
	for _, req := range s.Required {
		if req == name {
			return true
		}
	}
	return false
}

// Catalog holds the component schemas of a document keyed by name.
type Catalog struct {
	Schemas map[string]Schema
}

// Names returns the component names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.Schemas))
	for name := range c.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema looks up a component by name.
func (c Catalog) Schema(name string) (Schema, bool) {
	s, ok := c.Schemas[name]
	return s, ok
}

// Container describes a component and every allOf ancestor, nearest first.
func (c Catalog) Container(name string) metadata.ContainerType {
	container := metadata.ContainerType{Name: name}
	seen := map[string]bool{name: true}
	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, base := range c.Schemas[current].Bases {
			if seen[base] {
				continue
			}
			seen[base] = true
			container.Bases = append(container.Bases, base)
			queue = append(queue, base)
		}
	}
	return container
}

// Properties flattens a component into builder properties. Ancestor
// properties come first; a property redeclared by a descendant replaces the
// inherited one in place. Names are sorted within each declaring schema since
// OpenAPI property maps carry no order.
func (c Catalog) Properties(name string) (metadata.ContainerType, []model.Property, error) {
	if _, ok := c.Schemas[name]; !ok {
		return metadata.ContainerType{}, nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	container := c.Container(name)
	props := c.propertiesOf(name, container, map[string]bool{})
	return container, props, nil
}

// Descriptors returns the resolver inputs for the flattened properties of a
// component.
func (c Catalog) Descriptors(name string) ([]metadata.PropertyDescriptor, error) {
	_, props, err := c.Properties(name)
	if err != nil {
		return nil, err
	}
	out := make([]metadata.PropertyDescriptor, 0, len(props))
	for _, p := range props {
		out = append(out, p.Descriptor)
	}
	return out, nil
}

// Build resolves a component into a form model through builder.
func (c Catalog) Build(builder model.Builder, name string) (model.FormModel, error) {
	container, props, err := c.Properties(name)
	if err != nil {
		return model.FormModel{}, err
	}
	return builder.BuildProperties(name, container, props)
}

func (c Catalog) propertiesOf(name string, container metadata.ContainerType, visiting map[string]bool) []model.Property {
	if visiting[name] {
		return nil
	}
	visiting[name] = true
	defer delete(visiting, name)

	schema := c.Schemas[name]

	var props []model.Property
	index := map[string]int{}
	add := func(p model.Property) {
		if i, ok := index[p.Descriptor.Name]; ok {
			props[i] = p
			return
		}
		index[p.Descriptor.Name] = len(props)
		props = append(props, p)
	}

	// Nearest ancestors are listed first, so walk them in reverse to emit the
	// root of the hierarchy before its descendants.
	for i := len(schema.Bases) - 1; i >= 0; i-- {
		for _, p := range c.propertiesOf(schema.Bases[i], container, visiting) {
			add(p)
		}
	}
	for _, p := range c.ownProperties(schema, container, visiting) {
		add(p)
	}
	return props
}

func (c Catalog) ownProperties(schema Schema, container metadata.ContainerType, visiting map[string]bool) []model.Property {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make([]model.Property, 0, len(names))
	for _, name := range names {
		ps := c.deref(schema.Properties[name])
		prop := model.Property{
			Descriptor: metadata.PropertyDescriptor{
				Name:          name,
				DeclaredType:  ps.TypeTag(),
				Container:     container,
				ExplicitLabel: ps.Label,
			},
			Type:        ps.FieldType(),
			Description: ps.Description,
			Required:    schema.requires(name),
			Hint:        ps.Hint,
			UIHints:     ps.UIHints,
		}
		if ps.Type == "object" {
			if ref := ps.RefName(); ref != "" {
				prop.Nested = c.propertiesOf(ref, c.Container(ref), visiting)
			} else {
				nested := metadata.ContainerType{Name: container.Name + "." + name}
				prop.Nested = c.ownProperties(ps, nested, visiting)
			}
		}
		props = append(props, prop)
	}
	return props
}

// deref merges a $ref property with the component it points at. Label and
// hint belong to the property, never to the referenced component.
func (c Catalog) deref(s Schema) Schema {
	name := s.RefName()
	if name == "" {
		return s
	}
	target, ok := c.Schemas[name]
	if !ok {
		return s
	}
	merged := target
	merged.Ref = s.Ref
	merged.Label = s.Label
	merged.Hint = s.Hint
	if s.Description != "" {
		merged.Description = s.Description
	}
	if len(s.UIHints) > 0 {
		merged.UIHints = s.UIHints
	}
	if merged.Type == "" && len(merged.Properties) > 0 {
		merged.Type = "object"
	}
	return merged
}

func refName(ref string) string {
	if !strings.HasPrefix(ref, componentRefPrefix) {
		return ""
	}
	return strings.TrimPrefix(ref, componentRefPrefix)
}
