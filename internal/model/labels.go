package model

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-displaymeta/pkg/metadata"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// HumanizeLabeler converts snake_case, kebab-case and camelCase names into
// title-cased words. Schema documents tend to use these styles where Go
// structs use PascalCase.
func HumanizeLabeler(name string) string {
	if strings.TrimSpace(name) == "" {
		return name
	}

	words := splitWordsPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		for _, part := range strings.Fields(metadata.SplitPascalCase(word)) {
			segments = append(segments, titleCase(part))
		}
	}
	return strings.Join(segments, " ")
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	if strings.ToUpper(word) == word {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
