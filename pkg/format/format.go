// Package format applies the composite format strings produced by the
// metadata resolver ("{0:Yes;Yes;No}", "{0:yyyy-MM-dd}") to Go values, and
// parses edited input back using the same patterns.
package format

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/goliatone/go-displaymeta/pkg/dateonly"
)

const defaultTimeLayout = "2006-01-02 15:04:05"

// Apply renders value using a composite format string. Literal text around
// "{0}" placeholders is preserved and "{{"/"}}" escape braces. An empty
// format falls back to the default rendering of the value.
func Apply(format string, value any) string {
	if format == "" {
		return formatValue("", value)
	}

	var out strings.Builder
	for i := 0; i < len(format); i++ {
		ch := format[i]
		switch {
		case ch == '{' && i+1 < len(format) && format[i+1] == '{':
			out.WriteByte('{')
			i++
		case ch == '}' && i+1 < len(format) && format[i+1] == '}':
			out.WriteByte('}')
			i++
		case ch == '{':
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				out.WriteString(format[i:])
				return out.String()
			}
			_, spec := splitPlaceholder(format[i+1 : i+end])
			out.WriteString(formatValue(spec, value))
			i += end
		default:
			out.WriteByte(ch)
		}
	}
	return out.String()
}

// Spec returns the format specifier of the first placeholder in format, e.g.
// "yyyy-MM-dd" for "{0:yyyy-MM-dd}".
func Spec(format string) string {
	start := strings.IndexByte(format, '{')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(format[start:], '}')
	if end < 0 {
		return ""
	}
	_, spec := splitPlaceholder(format[start+1 : start+end])
	return spec
}

func splitPlaceholder(body string) (index, spec string) {
	if idx := strings.IndexByte(body, ':'); idx >= 0 {
		return strings.TrimSpace(body[:idx]), body[idx+1:]
	}
	return strings.TrimSpace(body), ""
}

func formatValue(spec string, value any) string {
	v, isNull, isBool := unwrap(value)
	if isBool || (isNull && strings.Contains(spec, ";")) {
		return formatBool(spec, v, isNull)
	}
	if isNull {
		return ""
	}

	switch t := v.(type) {
	case time.Time:
		if spec == "" {
			return t.Format(defaultTimeLayout)
		}
		return FormatTime(t, spec)
	case dateonly.Date:
		if spec == "" {
			return t.String()
		}
		return FormatTime(t.Time(), spec)
	case civil.Date:
		if spec == "" {
			return t.String()
		}
		return FormatTime(t.In(time.UTC), spec)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// formatBool picks a section of a "true;null;false" template.
func formatBool(spec string, v any, isNull bool) string {
	sections := strings.Split(spec, ";")
	if spec == "" {
		if isNull {
			return ""
		}
		return fmt.Sprint(v)
	}
	b, _ := v.(bool)
	switch {
	case isNull:
		if len(sections) == 3 {
			return sections[1]
		}
		return ""
	case b:
		return sections[0]
	default:
		return sections[len(sections)-1]
	}
}

// unwrap dereferences pointers and sql.Null* wrappers, reporting whether the
// value is null and whether its underlying type is a boolean.
func unwrap(value any) (v any, isNull, isBool bool) {
	switch t := value.(type) {
	case nil:
		return nil, true, false
	case bool:
		return t, false, true
	case sql.NullBool:
		return t.Bool, !t.Valid, true
	case sql.NullTime:
		return t.Time, !t.Valid, false
	case sql.NullString:
		return t.String, !t.Valid, false
	case time.Time:
		// zero dates come from unset columns
		return t, t.IsZero(), false
	case dateonly.Date:
		return t, t.IsZero(), false
	case civil.Date:
		return t, t == civil.Date{}, false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Pointer {
		return value, false, false
	}
	if rv.IsNil() {
		return nil, true, rv.Type().Elem().Kind() == reflect.Bool
	}
	return unwrap(rv.Elem().Interface())
}
