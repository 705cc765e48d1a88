package model

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-displaymeta/pkg/metadata"
)

const (
	tagDisplay     = "display"
	tagDescription = "description"
	tagUIHint      = "uihint"
	tagUI          = "ui"
	tagValidate    = "validate"
	tagBinding     = "binding"

	labelSourceKey = "label.source"
	hintSourceKey  = "hint.source"
)

// Property is a source-neutral description of one model property. Struct
// reflection and schema documents both produce properties that the builder
// turns into fields.
type Property struct {
	Descriptor  metadata.PropertyDescriptor
	Type        FieldType
	Description string
	Required    bool
	// Hint is an explicit template hint that overrides the conventions.
	Hint    string
	UIHints map[string]string
	Index   []int
	Nested  []Property
}

// Builder converts Go struct types and property lists into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Resolver != nil {
		opts.Resolver = options.Resolver
	}
	return &Builder{opts: opts}
}

// Build reflects v, which may be a struct value, a pointer to one, or a
// reflect.Type.
func (b *Builder) Build(v any) (FormModel, error) {
	if v == nil {
		return FormModel{}, fmt.Errorf("model builder: value is required")
	}
	if t, ok := v.(reflect.Type); ok {
		return b.BuildType(t)
	}
	return b.BuildType(reflect.TypeOf(v))
}

// BuildType reflects a struct type into a FormModel.
func (b *Builder) BuildType(t reflect.Type) (FormModel, error) {
	t = indirectType(t)
	if t == nil || t.Kind() != reflect.Struct {
		return FormModel{}, fmt.Errorf("model builder: %v is not a struct type", t)
	}
	container := ContainerOf(t)
	props := propertiesOf(t, container, nil, map[reflect.Type]bool{t: true})
	return b.BuildProperties(t.Name(), container, props), nil
}

// BuildProperties resolves display metadata for an explicit property list.
func (b *Builder) BuildProperties(name string, container metadata.ContainerType, props []Property) FormModel {
	form := FormModel{
		Name:   name,
		Type:   container,
		Fields: b.fieldsFor(props),
	}
	if container.Name != "" {
		form.Metadata = map[string]string{"type": container.Name}
	}
	return form
}

func (b *Builder) fieldsFor(props []Property) []Field {
	if len(props) == 0 {
		return nil
	}
	fields := make([]Field, 0, len(props))
	for _, prop := range props {
		fields = append(fields, b.fieldFor(prop))
	}
	return fields
}

func (b *Builder) fieldFor(prop Property) Field {
	desc := prop.Descriptor
	md := &metadata.FieldMetadata{}
	if desc.HasExplicitLabel() {
		label := strings.TrimSpace(desc.ExplicitLabel)
		md.DisplayName = func() string { return label }
	}
	decision := b.opts.Resolver.ApplyTo(desc, md)

	field := Field{
		Name:          desc.Name,
		Type:          prop.Type,
		TypeTag:       desc.DeclaredType,
		Label:         md.Label(),
		Description:   prop.Description,
		Required:      prop.Required,
		DisplayFormat: md.DisplayFormatString,
		EditFormat:    md.EditFormatString,
		TemplateHint:  md.TemplateHint,
		UIHints:       mergeUIHints(nil, prop.UIHints),
		Index:         append([]int(nil), prop.Index...),
		Metadata:      make(map[string]string),
	}
	if field.Type == "" {
		field.Type = FieldTypeString
	}

	switch {
	case desc.HasExplicitLabel():
		field.Metadata[labelSourceKey] = "explicit"
	case decision.HasLabel:
		field.Metadata[labelSourceKey] = "generated"
	default:
		field.Label = desc.Name
		field.Metadata[labelSourceKey] = "name"
	}

	if hint := strings.TrimSpace(prop.Hint); hint != "" {
		field.TemplateHint = hint
		field.Metadata[hintSourceKey] = "explicit"
	} else if decision.Hint != metadata.HintNone {
		field.Metadata[hintSourceKey] = "convention"
	}
	field.Hidden = strings.EqualFold(field.TemplateHint, metadata.HintHidden.String())
	field.Nested = b.fieldsFor(prop.Nested)
	return field
}

func propertiesOf(t reflect.Type, container metadata.ContainerType, prefix []int, visiting map[reflect.Type]bool) []Property {
	var props []Property
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int(nil), prefix...), i)
		fieldType := indirectType(sf.Type)

		if sf.Anonymous && fieldType.Kind() == reflect.Struct && !isLeafStruct(fieldType) {
			if visiting[fieldType] {
				continue
			}
			visiting[fieldType] = true
			props = append(props, propertiesOf(fieldType, container, index, visiting)...)
			delete(visiting, fieldType)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		label := sf.Tag.Get(tagDisplay)
		if label == "-" {
			continue
		}

		prop := Property{
			Descriptor: metadata.PropertyDescriptor{
				Name:          sf.Name,
				DeclaredType:  TypeTagOf(sf.Type),
				Container:     container,
				ExplicitLabel: label,
			},
			Type:        FieldTypeOf(sf.Type),
			Description: sf.Tag.Get(tagDescription),
			Required:    isRequired(sf.Tag),
			Hint:        sf.Tag.Get(tagUIHint),
			UIHints:     ParseUIHints(sf.Tag.Get(tagUI)),
			Index:       index,
		}

		if prop.Type == FieldTypeObject && !visiting[fieldType] {
			visiting[fieldType] = true
			prop.Nested = propertiesOf(fieldType, ContainerOf(fieldType), index, visiting)
			delete(visiting, fieldType)
		}
		props = append(props, prop)
	}
	return props
}

func isRequired(tag reflect.StructTag) bool {
	for _, key := range []string{tagValidate, tagBinding} {
		for _, rule := range strings.Split(tag.Get(key), ",") {
			if strings.TrimSpace(rule) == "required" {
				return true
			}
		}
	}
	return false
}
