package model

import (
	"reflect"

	internalmodel "github.com/goliatone/go-displaymeta/internal/model"
	"github.com/goliatone/go-displaymeta/pkg/metadata"
)

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString   = internalmodel.FieldTypeString
	FieldTypeInteger  = internalmodel.FieldTypeInteger
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeBoolean  = internalmodel.FieldTypeBoolean
	FieldTypeDate     = internalmodel.FieldTypeDate
	FieldTypeDateTime = internalmodel.FieldTypeDateTime
	FieldTypeObject   = internalmodel.FieldTypeObject
)

type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
type Property = internalmodel.Property

// TypeName returns the fully qualified name used in scope configuration.
func TypeName(t reflect.Type) string {
	return internalmodel.TypeName(t)
}

// TypeNameOf is TypeName for a value.
func TypeNameOf(v any) string {
	return internalmodel.TypeName(reflect.TypeOf(v))
}

// ContainerOf describes t and its embedded ancestors.
func ContainerOf(t reflect.Type) metadata.ContainerType {
	return internalmodel.ContainerOf(t)
}

// TypeTagOf classifies a Go type for the type-based formatter.
func TypeTagOf(t reflect.Type) metadata.TypeTag {
	return internalmodel.TypeTagOf(t)
}

// Values reads the current field values of v keyed by field name.
func Values(form FormModel, v any) map[string]any {
	return internalmodel.Values(form, v)
}

// Assign writes converted values onto the struct pointed to by dst.
func Assign(form FormModel, dst any, values map[string]any) error {
	return internalmodel.Assign(form, dst, values)
}

// HumanizeLabeler title-cases snake, kebab and camel case names.
func HumanizeLabeler(name string) string {
	return internalmodel.HumanizeLabeler(name)
}

// AllowedUIHintKeys returns the curated `ui` tag keys.
func AllowedUIHintKeys() []string {
	return internalmodel.AllowedUIHintKeys()
}
