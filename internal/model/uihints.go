package model

import (
	"sort"
	"strings"
)

var (
	uiHintKeys = []string{
		"class",
		"cssClass",
		"helpText",
		"hideLabel",
		"inputType",
		"placeholder",
		"rows",
		"section",
		"widget",
	}

	uiHintKeySet = func(keys []string) map[string]struct{} {
		result := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			result[key] = struct{}{}
		}
		return result
	}(uiHintKeys)
)

// AllowedUIHintKeys returns a sorted copy of the recognised UI hint keys.
func AllowedUIHintKeys() []string {
	keys := append([]string(nil), uiHintKeys...)
	sort.Strings(keys)
	return keys
}

// IsAllowedUIHintKey reports whether the supplied key participates in the
// curated UI hint contract.
func IsAllowedUIHintKey(key string) bool {
	_, ok := uiHintKeySet[key]
	return ok
}

// ParseUIHints reads a `ui:"placeholder=Jane;cssClass=wide"` tag value.
// Unknown keys and empty values are dropped; nil is returned when nothing
// survives.
func ParseUIHints(tag string) map[string]string {
	if strings.TrimSpace(tag) == "" {
		return nil
	}
	hints := make(map[string]string)
	for _, pair := range strings.Split(tag, ";") {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !IsAllowedUIHintKey(key) {
			continue
		}
		value = strings.TrimSpace(value)
		if !found {
			value = "true"
		}
		if value == "" {
			continue
		}
		hints[key] = value
	}
	if len(hints) == 0 {
		return nil
	}
	return hints
}

func mergeUIHints(target map[string]string, updates map[string]string) map[string]string {
	if len(updates) == 0 {
		return target
	}
	if target == nil {
		target = make(map[string]string, len(updates))
	}
	for key, value := range updates {
		target[key] = value
	}
	return target
}
