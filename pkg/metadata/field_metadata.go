package metadata

import "strings"

// FieldMetadata is the mutable display record a host owns for a property.
// DisplayName is a function so labels can be produced lazily by the host.
type FieldMetadata struct {
	DisplayFormatString string
	EditFormatString    string
	TemplateHint        string
	DisplayName         func() string
}

// Label returns the current display name or "".
func (m *FieldMetadata) Label() string {
	if m == nil || m.DisplayName == nil {
		return ""
	}
	return m.DisplayName()
}

// ApplyTo resolves desc and writes the decided values onto md. A display
// name already present on md counts as an explicit label and is never
// replaced.
func (r *Resolver) ApplyTo(desc PropertyDescriptor, md *FieldMetadata) DisplayDecision {
	if md == nil {
		return r.Resolve(desc)
	}
	if existing := strings.TrimSpace(md.Label()); existing != "" && !desc.HasExplicitLabel() {
		desc.ExplicitLabel = existing
	}

	decision := r.Resolve(desc)
	if decision.HasDisplayFormat {
		md.DisplayFormatString = decision.DisplayFormat
	}
	if decision.HasEditFormat {
		md.EditFormatString = decision.EditFormat
	}
	if decision.Hint != HintNone {
		md.TemplateHint = decision.Hint.String()
	}
	if decision.HasLabel {
		label := decision.Label
		md.DisplayName = func() string { return label }
	}
	return decision
}
