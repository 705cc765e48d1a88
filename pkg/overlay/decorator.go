package overlay

import (
	"strings"

	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/model"
)

const (
	labelSourceKey = "label.source"
	hintSourceKey  = "hint.source"
	sourceOverlay  = "overlay"
)

// Decorator applies overlay field overrides to a form model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate applies every matching model configuration to form. Fields the
// overlay names but the form lacks are ignored.
func (d *Decorator) Decorate(form *model.FormModel) error {
	if d == nil || d.store == nil || len(d.store.models) == 0 || form == nil {
		return nil
	}
	for _, name := range candidates(form) {
		m, ok := d.store.Model(name)
		if !ok {
			continue
		}
		for path, cfg := range m.Fields {
			if field := lookup(form.Fields, strings.Split(path, ".")); field != nil {
				applyField(field, cfg)
			}
		}
	}
	return nil
}

// candidates lists the names a model may be configured under, farthest
// ancestor first.
func candidates(form *model.FormModel) []string {
	var names []string
	seen := map[string]bool{}
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for i := len(form.Type.Bases) - 1; i >= 0; i-- {
		base := form.Type.Bases[i]
		add(shortName(base))
		add(base)
	}
	add(form.Name)
	add(form.Type.Name)
	return names
}

func shortName(qualified string) string {
	if idx := strings.LastIndex(qualified, "."); idx >= 0 && strings.Contains(qualified, "/") {
		return qualified[idx+1:]
	}
	return qualified
}

func lookup(fields []model.Field, segments []string) *model.Field {
	for i := range fields {
		if !strings.EqualFold(fields[i].Name, segments[0]) {
			continue
		}
		if len(segments) == 1 {
			return &fields[i]
		}
		return lookup(fields[i].Nested, segments[1:])
	}
	return nil
}

func applyField(field *model.Field, cfg FieldConfig) {
	if label := strings.TrimSpace(cfg.Label); label != "" {
		field.Label = label
		setMetadata(field, labelSourceKey, sourceOverlay)
	}
	if hint := strings.TrimSpace(cfg.Hint); hint != "" {
		field.TemplateHint = hint
		field.Hidden = strings.EqualFold(hint, metadata.HintHidden.String())
		setMetadata(field, hintSourceKey, sourceOverlay)
	}
	if desc := sanitizeDescription(cfg.Description); desc != "" {
		field.Description = desc
	}
	for key, value := range cfg.UIHints {
		setUIHint(field, key, value)
	}
	if cfg.HelpText != "" {
		setUIHint(field, "helpText", cfg.HelpText)
	}
	if cfg.Placeholder != "" {
		setUIHint(field, "placeholder", cfg.Placeholder)
	}
}

func setMetadata(field *model.Field, key, value string) {
	if field.Metadata == nil {
		field.Metadata = make(map[string]string)
	}
	field.Metadata[key] = value
}

func setUIHint(field *model.Field, key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if field.UIHints == nil {
		field.UIHints = make(map[string]string)
	}
	field.UIHints[key] = value
}
