package overlay

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/model"
)

// LoadFS walks the provided filesystem and parses JSON/YAML overlay files.
// When fsys is nil or no overlay files are present, the returned store is
// empty. A model or scope configured by more than one file is an error.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{models: make(map[string]Model)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("overlay: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		if doc.Scope != nil {
			if store.scope != nil {
				return fmt.Errorf("overlay: scope defined by %s and %s", store.scopeSource, path)
			}
			rule := metadata.ScopeRule{
				Targets:        trimAll(doc.Scope.Targets),
				IncludeDerived: doc.Scope.IncludeDerived,
			}
			store.scope = &rule
			store.scopeSource = path
		}

		for name, raw := range doc.Models {
			id := strings.TrimSpace(name)
			if id == "" {
				return fmt.Errorf("overlay: file %s defines an empty model name", path)
			}
			if existing, exists := store.models[id]; exists {
				return fmt.Errorf("overlay: duplicate model %q (files %s and %s)", id, existing.Source, path)
			}
			m, err := normaliseModel(raw, id, path)
			if err != nil {
				return err
			}
			store.models[id] = m
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Model returns the overrides for the supplied model name.
func (s *Store) Model(name string) (Model, bool) {
	if s == nil {
		return Model{}, false
	}
	m, ok := s.models[name]
	return m, ok
}

// Scope returns the configured label scope, if any file defined one.
func (s *Store) Scope() (metadata.ScopeRule, bool) {
	if s == nil || s.scope == nil {
		return metadata.ScopeRule{}, false
	}
	rule := *s.scope
	rule.Targets = append([]string(nil), s.scope.Targets...)
	return rule, true
}

// Empty reports whether the store holds neither models nor a scope.
func (s *Store) Empty() bool {
	return s == nil || (len(s.models) == 0 && s.scope == nil)
}

// Decorator returns a model decorator applying the field overrides.
func (s *Store) Decorator() model.Decorator {
	return NewDecorator(s)
}

type documentFile struct {
	Scope  *ScopeConfig         `json:"scope" yaml:"scope"`
	Models map[string]modelFile `json:"models" yaml:"models"`
}

type modelFile struct {
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("overlay: file %s is empty", source)
	}
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("overlay: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("overlay: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseModel(raw modelFile, name, source string) (Model, error) {
	m := Model{
		Name:   name,
		Source: source,
		Fields: make(map[string]FieldConfig, len(raw.Fields)),
	}
	for key, cfg := range raw.Fields {
		normalised := NormalizeFieldPath(key)
		if normalised == "" {
			return Model{}, fmt.Errorf("overlay: model %q (file %s) field key %q normalises to empty path", name, source, key)
		}
		if _, exists := m.Fields[normalised]; exists {
			return Model{}, fmt.Errorf("overlay: model %q (file %s) defines duplicate field path %q", name, source, normalised)
		}
		for hintKey := range cfg.UIHints {
			if !isAllowedUIHintKey(hintKey) {
				return Model{}, fmt.Errorf("overlay: model %q (file %s) field %q uses unknown ui hint %q", name, source, key, hintKey)
			}
		}
		cloned := cloneFieldConfig(cfg)
		cloned.OriginalPath = key
		m.Fields[normalised] = cloned
	}
	return m, nil
}

func cloneFieldConfig(cfg FieldConfig) FieldConfig {
	out := cfg
	if len(cfg.UIHints) > 0 {
		out.UIHints = make(map[string]string, len(cfg.UIHints))
		for k, v := range cfg.UIHints {
			out.UIHints[k] = v
		}
	}
	return out
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func isAllowedUIHintKey(key string) bool {
	for _, allowed := range model.AllowedUIHintKeys() {
		if key == allowed {
			return true
		}
	}
	return false
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
