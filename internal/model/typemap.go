package model

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"reflect"
	"time"

	"cloud.google.com/go/civil"

	"github.com/goliatone/go-displaymeta/pkg/dateonly"
	"github.com/goliatone/go-displaymeta/pkg/metadata"
)

var (
	timeType      = reflect.TypeOf(time.Time{})
	civilDateType = reflect.TypeOf(civil.Date{})
	dateOnlyType  = reflect.TypeOf(dateonly.Date{})
	nullBoolType  = reflect.TypeOf(sql.NullBool{})
	nullTimeType  = reflect.TypeOf(sql.NullTime{})
	nullStrType   = reflect.TypeOf(sql.NullString{})
	nullInt64Type = reflect.TypeOf(sql.NullInt64{})

	valuerType        = reflect.TypeOf((*driver.Valuer)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// TypeTagOf classifies a Go type for the type-based formatter. Pointers and
// sql.Null wrappers are treated as their nullable underlying type.
func TypeTagOf(t reflect.Type) metadata.TypeTag {
	t = indirectType(t)
	if t == nil {
		return metadata.TypeOther
	}
	switch t {
	case timeType, nullTimeType:
		return metadata.TypeDate
	case civilDateType, dateOnlyType:
		return metadata.TypeDateOnly
	case nullBoolType:
		return metadata.TypeBoolean
	}
	if t.Kind() == reflect.Bool {
		return metadata.TypeBoolean
	}
	return metadata.TypeOther
}

// FieldTypeOf maps a Go type onto the form field kinds.
func FieldTypeOf(t reflect.Type) FieldType {
	t = indirectType(t)
	if t == nil {
		return FieldTypeString
	}
	switch TypeTagOf(t) {
	case metadata.TypeBoolean:
		return FieldTypeBoolean
	case metadata.TypeDate:
		return FieldTypeDateTime
	case metadata.TypeDateOnly:
		return FieldTypeDate
	}
	switch t {
	case nullStrType:
		return FieldTypeString
	case nullInt64Type:
		return FieldTypeInteger
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FieldTypeInteger
	case reflect.Float32, reflect.Float64:
		return FieldTypeNumber
	case reflect.Struct:
		if isLeafStruct(t) {
			return FieldTypeString
		}
		return FieldTypeObject
	default:
		return FieldTypeString
	}
}

// TypeName returns the fully qualified name used to identify t in scope
// configuration, e.g. "github.com/acme/app/models.Person".
func TypeName(t reflect.Type) string {
	t = indirectType(t)
	if t == nil {
		return ""
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// ContainerOf describes t and every struct it embeds, directly or through
// other embedded structs.
func ContainerOf(t reflect.Type) metadata.ContainerType {
	t = indirectType(t)
	if t == nil {
		return metadata.ContainerType{}
	}
	container := metadata.ContainerType{Name: TypeName(t)}
	seen := map[reflect.Type]bool{t: true}
	collectBases(t, seen, &container.Bases)
	return container
}

func collectBases(t reflect.Type, seen map[reflect.Type]bool, bases *[]string) {
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}
		embedded := indirectType(sf.Type)
		if embedded.Kind() != reflect.Struct || seen[embedded] {
			continue
		}
		seen[embedded] = true
		*bases = append(*bases, TypeName(embedded))
		collectBases(embedded, seen, bases)
	}
}

// isLeafStruct reports struct types that are values rather than containers:
// the known date and sql.Null types plus anything that serialises itself.
func isLeafStruct(t reflect.Type) bool {
	switch t {
	case timeType, civilDateType, dateOnlyType, nullBoolType, nullTimeType, nullStrType, nullInt64Type:
		return true
	}
	return t.Implements(valuerType) || t.Implements(textMarshalerType) ||
		reflect.PointerTo(t).Implements(textMarshalerType)
}

func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
