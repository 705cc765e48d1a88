package vanilla

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-displaymeta/pkg/model"
	"github.com/goliatone/go-displaymeta/pkg/render"
)

func controlID(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	return "dm-" + strings.ReplaceAll(trimmed, ".", "-")
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// sanitizeClassList drops the dm- prefix reserved for the built-in styles.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "dm-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func titleFor(form model.FormModel, options render.RenderOptions) string {
	if options.Title != "" {
		return options.Title
	}
	return form.Name
}

// formMethod maps verbs browsers cannot submit onto POST plus an override.
func formMethod(method string) (string, string) {
	switch upper := strings.ToUpper(strings.TrimSpace(method)); upper {
	case "GET", "POST":
		return strings.ToLower(upper), ""
	default:
		return "post", upper
	}
}

// listColumns returns the visible scalar fields shown in tables.
func listColumns(form model.FormModel) []model.Field {
	var out []model.Field
	for _, field := range form.VisibleFields() {
		if field.Type == model.FieldTypeObject {
			continue
		}
		out = append(out, field)
	}
	return out
}

// expandLink substitutes "{Field}" tokens in pattern with escaped row values.
func expandLink(pattern string, values map[string]any) string {
	if pattern == "" || !strings.Contains(pattern, "{") {
		return pattern
	}
	var out strings.Builder
	for {
		start := strings.IndexByte(pattern, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(pattern[start:], '}')
		if end < 0 {
			break
		}
		out.WriteString(pattern[:start])
		key := pattern[start+1 : start+end]
		if v, ok := values[key]; ok && v != nil {
			out.WriteString(url.PathEscape(fmt.Sprint(v)))
		}
		pattern = pattern[start+end+1:]
	}
	out.WriteString(pattern)
	return out.String()
}
