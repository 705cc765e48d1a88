// Package validation checks struct values with go-playground/validator tags
// and reports messages that use the resolved display labels, keyed by field
// path so renderers can attach them to controls.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-displaymeta/pkg/model"
)

// Option configures a Validator.
type Option func(*Validator)

// WithBuilder supplies the model builder used to resolve labels.
func WithBuilder(builder model.Builder) Option {
	return func(v *Validator) {
		if builder != nil {
			v.builder = builder
		}
	}
}

// WithMessage overrides the message template for a validation tag. The
// template receives the field label and the tag parameter, e.g.
// "%s needs at least %s characters".
func WithMessage(tag, template string) Option {
	return func(v *Validator) {
		if tag != "" && template != "" {
			v.messages[tag] = template
		}
	}
}

// Validator runs tag validation and maps failures onto display labels.
type Validator struct {
	validate *validator.Validate
	builder  model.Builder
	messages map[string]string
}

var defaultMessages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"url":      "%s must be a valid URL",
	"min":      "%s must be at least %s",
	"max":      "%s must be at most %s",
	"len":      "%s must be exactly %s",
	"gte":      "%s must be greater than or equal to %s",
	"lte":      "%s must be less than or equal to %s",
	"oneof":    "%s must be one of: %s",
}

// New constructs a Validator. Without WithBuilder a caching builder with the
// default resolver is used.
func New(options ...Option) (*Validator, error) {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		messages: make(map[string]string, len(defaultMessages)),
	}
	for tag, template := range defaultMessages {
		v.messages[tag] = template
	}
	for _, opt := range options {
		if opt != nil {
			opt(v)
		}
	}
	if v.builder == nil {
		builder, err := model.NewBuilder(model.WithCache(64))
		if err != nil {
			return nil, fmt.Errorf("validation: configure builder: %w", err)
		}
		v.builder = builder
	}
	return v, nil
}

// MustNew is New that panics on error.
func MustNew(options ...Option) *Validator {
	v, err := New(options...)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks value, a struct or pointer to one. It returns nil when the
// value is valid, otherwise messages keyed by field path ("FirstName",
// "Home.Street"). A non-struct value is an error.
func (v *Validator) Validate(value any) (map[string][]string, error) {
	err := v.validate.Struct(value)
	if err == nil {
		return nil, nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil, fmt.Errorf("validation: %w", err)
	}
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return nil, fmt.Errorf("validation: %w", err)
	}

	form, err := v.builder.BuildType(reflect.TypeOf(value))
	if err != nil {
		return nil, fmt.Errorf("validation: resolve labels: %w", err)
	}

	out := make(map[string][]string)
	for _, failure := range failures {
		path, label := locate(form.Fields, namespaceSegments(failure.StructNamespace()))
		if path == "" {
			path, label = failure.StructField(), failure.StructField()
		}
		out[path] = append(out[path], v.message(failure, label))
	}
	return out, nil
}

func (v *Validator) message(failure validator.FieldError, label string) string {
	template, ok := v.messages[failure.Tag()]
	if !ok {
		return fmt.Sprintf("%s is invalid", label)
	}
	if strings.Count(template, "%s") > 1 {
		return fmt.Sprintf(template, label, failure.Param())
	}
	return fmt.Sprintf(template, label)
}

// namespaceSegments drops the root type name from "Person.Home.Street".
func namespaceSegments(namespace string) []string {
	segments := strings.Split(namespace, ".")
	if len(segments) <= 1 {
		return segments
	}
	return segments[1:]
}

// locate walks the form fields along segments. Segments that name no field
// are embedded structs whose fields were promoted and are skipped.
func locate(fields []model.Field, segments []string) (path, label string) {
	var parts []string
	for i, segment := range segments {
		name := segment
		if idx := strings.IndexByte(name, '['); idx >= 0 {
			name = name[:idx]
		}
		var match *model.Field
		for j := range fields {
			if fields[j].Name == name {
				match = &fields[j]
				break
			}
		}
		if match == nil {
			if i == len(segments)-1 {
				return "", ""
			}
			continue
		}
		parts = append(parts, match.Name)
		label = match.Label
		fields = match.Nested
	}
	if len(parts) == 0 {
		return "", ""
	}
	return strings.Join(parts, "."), label
}
