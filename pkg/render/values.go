package render

import (
	"time"

	"github.com/goliatone/go-displaymeta/pkg/format"
	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/model"
)

// Layouts browsers expect in date and datetime-local inputs.
const (
	htmlDateLayout     = "2006-01-02"
	htmlDateTimeLayout = "2006-01-02T15:04"
)

// DisplayValue renders value for presentation using the field's display
// format.
func DisplayValue(field model.Field, value any) string {
	return format.Apply(field.DisplayFormat, value)
}

// EditValue renders value for an editor control. The edit format wins when
// present; date-times without one use the datetime-local layout so the value
// round-trips through the browser.
func EditValue(field model.Field, value any) string {
	if field.EditFormat != "" {
		return format.Apply(field.EditFormat, value)
	}
	switch field.TypeTag {
	case metadata.TypeDate:
		if t, ok := asTime(value); ok {
			return t.Format(htmlDateTimeLayout)
		}
		return ""
	case metadata.TypeDateOnly:
		return format.Apply("{0:yyyy-MM-dd}", value)
	case metadata.TypeBoolean:
		return format.Apply("{0:true;;false}", value)
	}
	return format.Apply("", value)
}

// ParseEdited converts submitted text back into a typed value for field.
func ParseEdited(field model.Field, raw string) (any, error) {
	switch {
	case field.TypeTag == metadata.TypeBoolean && raw == "":
		// unchecked checkboxes are not submitted
		return false, nil
	case field.EditFormat != "":
		return format.Parse(field.EditFormat, raw, field.TypeTag)
	case field.TypeTag == metadata.TypeDate:
		if raw == "" {
			return nil, nil
		}
		if t, err := time.ParseInLocation(htmlDateTimeLayout, raw, time.UTC); err == nil {
			return t, nil
		}
		return format.Parse("", raw, field.TypeTag)
	default:
		return format.Parse("", raw, field.TypeTag)
	}
}

func asTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	}
	return time.Time{}, false
}
