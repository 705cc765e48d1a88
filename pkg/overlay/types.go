package overlay

import (
	"strings"

	"github.com/goliatone/go-displaymeta/pkg/metadata"
)

// Store keeps the parsed overlay files. It is safe for concurrent readers when
// treated as immutable after construction.
type Store struct {
	scope       *metadata.ScopeRule
	scopeSource string
	models      map[string]Model
}

// Model holds the field overrides configured for one model name.
type Model struct {
	Name   string
	Source string
	Fields map[string]FieldConfig
}

// ScopeConfig mirrors metadata.ScopeRule in overlay files.
type ScopeConfig struct {
	Targets        []string `json:"targets" yaml:"targets"`
	IncludeDerived bool     `json:"includeDerived" yaml:"includeDerived"`
}

// FieldConfig customises one field. Empty values leave the resolved metadata
// untouched.
type FieldConfig struct {
	Label        string            `json:"label,omitempty" yaml:"label,omitempty"`
	Hint         string            `json:"hint,omitempty" yaml:"hint,omitempty"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	HelpText     string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	UIHints      map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
	OriginalPath string            `json:"-" yaml:"-"`
}

// NormalizeFieldPath converts overlay field keys into dotted notation, e.g.
// "Home[PostalCode]" and " Home..PostalCode " both become "Home.PostalCode".
func NormalizeFieldPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	replacer := strings.NewReplacer("[", ".", "]", "", "/", ".")
	normalised := replacer.Replace(trimmed)
	for strings.Contains(normalised, "..") {
		normalised = strings.ReplaceAll(normalised, "..", ".")
	}
	return strings.Trim(normalised, ".")
}
