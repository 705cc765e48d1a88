package model

import "github.com/goliatone/go-displaymeta/pkg/metadata"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeNumber   FieldType = "number"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDate     FieldType = "date"
	FieldTypeDateTime FieldType = "datetime"
	FieldTypeObject   FieldType = "object"
)

// Field is the display metadata for one property after the resolver ran.
// Struct fields are annotated so renderers can serialise them directly.
type Field struct {
	Name          string            `json:"name"`
	Type          FieldType         `json:"type"`
	TypeTag       metadata.TypeTag  `json:"typeTag"`
	Label         string            `json:"label"`
	Description   string            `json:"description,omitempty"`
	Required      bool              `json:"required"`
	Hidden        bool              `json:"hidden,omitempty"`
	DisplayFormat string            `json:"displayFormat,omitempty"`
	EditFormat    string            `json:"editFormat,omitempty"`
	TemplateHint  string            `json:"templateHint,omitempty"`
	Nested        []Field           `json:"nested,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	UIHints       map[string]string `json:"uiHints,omitempty"`

	// Index is the reflect field path for struct-backed models.
	Index []int `json:"-"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	Name     string                 `json:"name"`
	Type     metadata.ContainerType `json:"type"`
	Fields   []Field                `json:"fields"`
	Metadata map[string]string      `json:"metadata,omitempty"`
}

// Field returns the field with the supplied name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// VisibleFields returns the fields that are not hidden.
func (f FormModel) VisibleFields() []Field {
	out := make([]Field, 0, len(f.Fields))
	for _, field := range f.Fields {
		if !field.Hidden {
			out = append(out, field)
		}
	}
	return out
}

// Clone deep copies the form so cached models can be handed out safely.
func (f FormModel) Clone() FormModel {
	out := f
	out.Type.Bases = append([]string(nil), f.Type.Bases...)
	out.Metadata = cloneStrings(f.Metadata)
	out.Fields = cloneFields(f.Fields)
	return out
}

func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, field := range fields {
		field.Metadata = cloneStrings(field.Metadata)
		field.UIHints = cloneStrings(field.UIHints)
		field.Index = append([]int(nil), field.Index...)
		field.Nested = cloneFields(field.Nested)
		out[i] = field
	}
	return out
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
