package metadata

import "strings"

// HintFor applies the name conventions. Names ending in "Id" are hidden
// before the Email check runs, so "ContactEmailId" is hidden. Matching is
// case-insensitive.
func HintFor(name string) UIHint {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, "id"):
		return HintHidden
	case strings.Contains(lower, "email"):
		return HintEmail
	default:
		return HintNone
	}
}

func hiddenKeyRule(desc PropertyDescriptor, decision *DisplayDecision) bool {
	if HintFor(desc.Name) != HintHidden {
		return false
	}
	decision.Hint = HintHidden
	return true
}

func emailRule(desc PropertyDescriptor, decision *DisplayDecision) bool {
	if HintFor(desc.Name) != HintEmail {
		return false
	}
	decision.Hint = HintEmail
	return true
}
