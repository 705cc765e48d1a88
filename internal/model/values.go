package model

import (
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"cloud.google.com/go/civil"

	"github.com/goliatone/go-displaymeta/pkg/dateonly"
)

// Values reads the current value of every top-level field from v, keyed by
// field name. Nested object fields are returned as maps. Fields behind a nil
// embedded pointer are reported as nil.
func Values(form FormModel, v any) map[string]any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil
	}
	return valuesOf(form.Fields, rv)
}

func valuesOf(fields []Field, root reflect.Value) map[string]any {
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		fv, ok := fieldByIndex(root, field.Index)
		if !ok {
			out[field.Name] = nil
			continue
		}
		if len(field.Nested) > 0 {
			out[field.Name] = valuesOf(field.Nested, root)
			continue
		}
		out[field.Name] = fv.Interface()
	}
	return out
}

func fieldByIndex(root reflect.Value, index []int) (reflect.Value, bool) {
	if len(index) == 0 {
		return reflect.Value{}, false
	}
	v := root
	for i, idx := range index {
		if i > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					return reflect.Value{}, false
				}
				v = v.Elem()
			}
		}
		v = v.Field(idx)
	}
	return v, true
}

// Assign writes values onto the struct pointed to by dst. Values are
// converted to the destination field type; nil clears the field.
func Assign(form FormModel, dst any, values map[string]any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("model assign: destination must be a non-nil struct pointer, got %T", dst)
	}
	root := rv.Elem()
	for _, field := range form.Fields {
		value, ok := values[field.Name]
		if !ok || len(field.Nested) > 0 {
			continue
		}
		target, err := settableField(root, field.Index)
		if err != nil {
			return fmt.Errorf("model assign: field %q: %w", field.Name, err)
		}
		if err := assignValue(target, value); err != nil {
			return fmt.Errorf("model assign: field %q: %w", field.Name, err)
		}
	}
	return nil
}

func settableField(root reflect.Value, index []int) (reflect.Value, error) {
	if len(index) == 0 {
		return reflect.Value{}, fmt.Errorf("no field index")
	}
	v := root
	for i, idx := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("cannot allocate embedded pointer")
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(idx)
	}
	if !v.CanSet() {
		return reflect.Value{}, fmt.Errorf("field is not settable")
	}
	return v, nil
}

func assignValue(target reflect.Value, value any) error {
	if value == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	if target.Kind() == reflect.Pointer {
		elem := reflect.New(target.Type().Elem())
		if err := assignValue(elem.Elem(), value); err != nil {
			return err
		}
		target.Set(elem)
		return nil
	}

	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(target.Type()) {
		target.Set(src)
		return nil
	}

	switch target.Type() {
	case dateOnlyType:
		return assignDate(target, value, func(d civil.Date) reflect.Value { return reflect.ValueOf(dateonly.Date{Date: d}) })
	case civilDateType:
		return assignDate(target, value, func(d civil.Date) reflect.Value { return reflect.ValueOf(d) })
	case timeType:
		switch v := value.(type) {
		case dateonly.Date:
			target.Set(reflect.ValueOf(v.Time()))
			return nil
		case civil.Date:
			target.Set(reflect.ValueOf(v.In(time.UTC)))
			return nil
		}
	case nullBoolType:
		if b, ok := value.(bool); ok {
			target.Set(reflect.ValueOf(sql.NullBool{Bool: b, Valid: true}))
			return nil
		}
	case nullTimeType:
		if t, ok := value.(time.Time); ok {
			target.Set(reflect.ValueOf(sql.NullTime{Time: t, Valid: true}))
			return nil
		}
	case nullStrType:
		if s, ok := value.(string); ok {
			target.Set(reflect.ValueOf(sql.NullString{String: s, Valid: true}))
			return nil
		}
	}

	if s, ok := value.(string); ok {
		return assignString(target, s)
	}
	if src.Type().ConvertibleTo(target.Type()) && src.Kind() == target.Kind() {
		target.Set(src.Convert(target.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, target.Type())
}

func assignDate(target reflect.Value, value any, wrap func(civil.Date) reflect.Value) error {
	switch v := value.(type) {
	case dateonly.Date:
		target.Set(wrap(v.Date))
	case civil.Date:
		target.Set(wrap(v))
	case time.Time:
		target.Set(wrap(civil.DateOf(v)))
	case string:
		d, err := dateonly.Parse(v)
		if err != nil {
			return err
		}
		target.Set(wrap(d.Date))
	default:
		return fmt.Errorf("cannot assign %T to %s", value, target.Type())
	}
	return nil
}

func assignString(target reflect.Value, s string) error {
	switch target.Kind() {
	case reflect.String:
		target.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		target.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, target.Type().Bits())
		if err != nil {
			return err
		}
		target.SetFloat(n)
	default:
		return fmt.Errorf("cannot assign string to %s", target.Type())
	}
	return nil
}
