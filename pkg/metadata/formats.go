package metadata

const (
	// FormatYesNo renders true as "Yes" and false as "No". The middle
	// section covers the null case of a nullable boolean.
	FormatYesNo = "{0:Yes;Yes;No}"
	// FormatISODate renders dates as yyyy-MM-dd.
	FormatISODate = "{0:yyyy-MM-dd}"
)

// FormatFor returns the display and edit format strings for a declared type.
// ok is false for types without a formatting decision.
func FormatFor(tag TypeTag) (display, edit string, ok bool) {
	switch tag {
	case TypeBoolean:
		return FormatYesNo, "", true
	case TypeDate:
		return FormatISODate, "", true
	case TypeDateOnly:
		// edit controls need the same round-trippable pattern
		return FormatISODate, FormatISODate, true
	default:
		return "", "", false
	}
}

func applyFormats(tag TypeTag, decision *DisplayDecision) {
	display, edit, ok := FormatFor(tag)
	if !ok {
		return
	}
	if display != "" {
		decision.DisplayFormat = display
		decision.HasDisplayFormat = true
	}
	if edit != "" {
		decision.EditFormat = edit
		decision.HasEditFormat = true
	}
}
