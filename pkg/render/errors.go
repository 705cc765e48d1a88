package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-displaymeta/pkg/model"
)

// ErrorMapping splits a validation payload into field-level messages keyed by
// dotted field paths and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors resolves payload keys against the fields of form. Keys may be
// Go field names, JSON pointers ("/body/owner/email") or dotted paths and
// are matched case-insensitively. Unknown keys become form-level messages
// so nothing is lost.
func MapErrors(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	paths := make(map[string]string)
	collectFieldPaths(form.Fields, "", paths)

	for raw, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		path := resolvePath(raw, paths)
		if path == "" {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[path] = append(mapping.Fields[path], messages...)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// resolvePath returns the longest field path matching raw, trying the key as
// given, without wrapper segments and without array indexes.
func resolvePath(raw string, paths map[string]string) string {
	if isFormLevelKey(raw) {
		return ""
	}
	segments := splitSegments(raw)
	if len(segments) == 0 {
		return ""
	}

	best := ""
	unwrapped := dropWrappers(segments)
	for _, variant := range [][]string{segments, unwrapped, dropIndexes(segments), dropIndexes(unwrapped)} {
		for end := len(variant); end > 0; end-- {
			key := strings.ToLower(strings.Join(variant[:end], "."))
			if path, ok := paths[key]; ok {
				if strings.Count(path, ".") >= strings.Count(best, ".") || best == "" {
					best = path
				}
				break
			}
		}
	}
	return best
}

func splitSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$./")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		out = append(out, part)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

func dropWrappers(segments []string) []string {
	out := segments
	for len(out) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

func dropIndexes(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

// collectFieldPaths indexes dotted field paths by their lower-cased form.
func collectFieldPaths(fields []model.Field, prefix string, dest map[string]string) {
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		dest[strings.ToLower(path)] = path
		collectFieldPaths(field.Nested, path, dest)
	}
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
