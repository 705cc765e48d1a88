package metadata

import (
	"strings"
	"unicode"
)

// SplitPascalCase inserts a space at every word boundary of a PascalCase or
// camelCase identifier:
//
//	"FirstName"  -> "First Name"
//	"firstName"  -> "first Name"
//	"HTTPServer" -> "HTTP Server"
//	"Address2Id" -> "Address2 Id"
//
// A boundary sits before an uppercase letter that follows a lowercase letter
// or digit, and before the last capital of a run when a lowercase letter
// follows it. Empty or whitespace-only names are returned unchanged and
// already spaced text gains no extra spaces.
func SplitPascalCase(name string) string {
	if strings.TrimSpace(name) == "" {
		return name
	}

	runes := []rune(name)
	var out strings.Builder
	out.Grow(len(name) + 4)
	for i, r := range runes {
		if i > 0 && isWordBoundary(runes, i) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isWordBoundary(runes []rune, i int) bool {
	curr := runes[i]
	if !unicode.IsUpper(curr) {
		return false
	}
	prev := runes[i-1]
	if unicode.IsSpace(prev) {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
