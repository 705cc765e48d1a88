package metadata

import "strings"

// TypeTag classifies the declared type of a property for formatting.
type TypeTag string

const (
	TypeOther    TypeTag = "other"
	TypeBoolean  TypeTag = "boolean"
	TypeDate     TypeTag = "date"
	TypeDateOnly TypeTag = "dateOnly"
)

// ContainerType identifies the type that declares a property. Name is the
// fully qualified type name and Bases lists every ancestor of the type
// (embedded structs for Go types, allOf parents for schema documents).
type ContainerType struct {
	Name  string   `json:"name" yaml:"name"`
	Bases []string `json:"bases,omitempty" yaml:"bases,omitempty"`
}

// IsZero reports whether the container carries no type information.
func (c ContainerType) IsZero() bool {
	return c.Name == "" && len(c.Bases) == 0
}

// Is reports whether name is the container itself or one of its ancestors.
func (c ContainerType) Is(name string) bool {
	if c.Name == name {
		return true
	}
	for _, base := range c.Bases {
		if base == name {
			return true
		}
	}
	return false
}

// PropertyDescriptor is the static description of a property handed to the
// resolver.
type PropertyDescriptor struct {
	Name          string        `json:"name"`
	DeclaredType  TypeTag       `json:"declaredType"`
	Container     ContainerType `json:"container"`
	ExplicitLabel string        `json:"explicitLabel,omitempty"`
}

// HasExplicitLabel reports whether the caller already set a label.
func (d PropertyDescriptor) HasExplicitLabel() bool {
	return strings.TrimSpace(d.ExplicitLabel) != ""
}

// UIHint selects the template a renderer uses for a field.
type UIHint int

const (
	HintNone UIHint = iota
	HintHidden
	HintEmail
)

// String returns the template name for the hint. HintNone maps to "".
func (h UIHint) String() string {
	switch h {
	case HintHidden:
		return "Hidden"
	case HintEmail:
		return "Email"
	default:
		return ""
	}
}

// ParseUIHint maps a template name back to a hint. Unknown names yield
// HintNone and false.
func ParseUIHint(name string) (UIHint, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hidden":
		return HintHidden, true
	case "email":
		return HintEmail, true
	default:
		return HintNone, false
	}
}

// DisplayDecision is the resolver output for one property. The Has* flags
// distinguish "no decision" from an empty value so decisions stay
// comparable with ==.
type DisplayDecision struct {
	DisplayFormat    string `json:"displayFormat,omitempty"`
	HasDisplayFormat bool   `json:"-"`
	EditFormat       string `json:"editFormat,omitempty"`
	HasEditFormat    bool   `json:"-"`
	Hint             UIHint `json:"-"`
	Label            string `json:"label,omitempty"`
	HasLabel         bool   `json:"-"`
}

// IsEmpty reports whether no rule produced anything.
func (d DisplayDecision) IsEmpty() bool {
	return !d.HasDisplayFormat && !d.HasEditFormat && d.Hint == HintNone && !d.HasLabel
}

// ScopeRule configures which container types receive generated labels.
type ScopeRule struct {
	Targets        []string `json:"targets" yaml:"targets" mapstructure:"targets"`
	IncludeDerived bool     `json:"includeDerived" yaml:"includeDerived" mapstructure:"include_derived"`
}
