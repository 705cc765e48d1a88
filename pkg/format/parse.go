package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-displaymeta/pkg/dateonly"
	"github.com/goliatone/go-displaymeta/pkg/metadata"
)

// ErrInvalidValue reports edit input that does not match the field format.
var ErrInvalidValue = errors.New("format: invalid value")

// Parse converts edited text back into a value for a property of the given
// type. format is the composite edit (or display) format; when empty the
// ISO layouts are used. Blank input yields nil.
func Parse(format, raw string, tag metadata.TypeTag) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	spec := Spec(format)

	switch tag {
	case metadata.TypeBoolean:
		return parseBool(spec, raw)
	case metadata.TypeDate:
		layout := time.RFC3339
		if spec != "" {
			var err error
			if layout, err = ParseLayout(spec); err != nil {
				return nil, err
			}
		}
		t, err := time.Parse(layout, raw)
		if err != nil {
			return nil, fmt.Errorf("format: parse date %q: %w", raw, ErrInvalidValue)
		}
		return t, nil
	case metadata.TypeDateOnly:
		layout := "2006-01-02"
		if spec != "" {
			var err error
			if layout, err = ParseLayout(spec); err != nil {
				return nil, err
			}
		}
		t, err := time.Parse(layout, raw)
		if err != nil {
			return nil, fmt.Errorf("format: parse date %q: %w", raw, ErrInvalidValue)
		}
		return dateonly.Of(t), nil
	default:
		return raw, nil
	}
}

func parseBool(spec, raw string) (bool, error) {
	if spec != "" {
		sections := strings.Split(spec, ";")
		if strings.EqualFold(raw, sections[0]) {
			return true, nil
		}
		if strings.EqualFold(raw, sections[len(sections)-1]) {
			return false, nil
		}
	}
	if strings.EqualFold(raw, "on") {
		return true, nil
	}
	if strings.EqualFold(raw, "off") {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("format: parse boolean %q: %w", raw, ErrInvalidValue)
	}
	return b, nil
}
