package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrAmbiguousPattern reports a date pattern whose literal text would be
// read as a Go reference token when used as a parse layout.
var ErrAmbiguousPattern = errors.New("format: ambiguous date pattern")

// layoutTokens maps date pattern tokens to Go reference layout fragments.
// Longer tokens come first so "yyyy" wins over "yy".
var layoutTokens = []struct {
	token  string
	layout string
}{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"dd", "02"},
	{"d", "2"},
	{"HH", "15"},
	// Go has no unpadded 24 hour token. Parsing "15" accepts one digit.
	{"H", "15"},
	{"hh", "03"},
	{"h", "3"},
	{"mm", "04"},
	{"m", "4"},
	{"ss", "05"},
	{"s", "5"},
	{"fff", "000"},
	{"ff", "00"},
	{"f", "0"},
	{"tt", "PM"},
	{"zzz", "-07:00"},
	{"zz", "-07"},
}

// referenceFragments are the Go layout fragments that time.Format and
// time.Parse interpret wherever they appear.
var referenceFragments = []string{"Jan", "Mon", "MST", "PM", "pm", "Z07", "_2"}

type segment struct {
	text    string
	token   string
	literal bool
}

// tokenize splits pattern into literal runs and date tokens. Text inside
// single or double quotes and characters escaped with a backslash are
// literal, as are characters no token matches.
func tokenize(pattern string) []segment {
	var (
		out     []segment
		literal strings.Builder
	)
	flush := func() {
		if literal.Len() > 0 {
			out = append(out, segment{text: literal.String(), literal: true})
			literal.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		ch := pattern[i]
		if ch == '\\' && i+1 < len(pattern) {
			literal.WriteByte(pattern[i+1])
			i += 2
			continue
		}
		if ch == '\'' || ch == '"' {
			end := strings.IndexByte(pattern[i+1:], ch)
			if end < 0 {
				literal.WriteString(pattern[i+1:])
				break
			}
			literal.WriteString(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, entry := range layoutTokens {
			if strings.HasPrefix(pattern[i:], entry.token) {
				flush()
				out = append(out, segment{text: entry.layout, token: entry.token})
				i += len(entry.token)
				matched = true
				break
			}
		}
		if !matched {
			literal.WriteByte(ch)
			i++
		}
	}
	flush()
	return out
}

// Layout translates a yyyy-MM-dd style date pattern into a Go time layout.
// Literal text is copied unchanged, so a literal that spells a Go reference
// token ("1", "Jan", "PM") changes meaning. Use FormatTime to render and
// ParseLayout to build a layout that is checked for that.
func Layout(pattern string) string {
	var out strings.Builder
	for _, seg := range tokenize(pattern) {
		out.WriteString(seg.text)
	}
	return out.String()
}

// ParseLayout is Layout for time.Parse. It fails with ErrAmbiguousPattern
// when a literal run would be read as a reference token.
func ParseLayout(pattern string) (string, error) {
	for _, seg := range tokenize(pattern) {
		if seg.literal && collides(seg.text) {
			return "", fmt.Errorf("%w: literal %q in %q", ErrAmbiguousPattern, seg.text, pattern)
		}
	}
	return Layout(pattern), nil
}

// FormatTime renders t with a date pattern. Each token is formatted on its
// own and literal text is written verbatim.
func FormatTime(t time.Time, pattern string) string {
	var out strings.Builder
	for _, seg := range tokenize(pattern) {
		switch {
		case seg.literal:
			out.WriteString(seg.text)
		case seg.token == "H":
			out.WriteString(strconv.Itoa(t.Hour()))
		case strings.Trim(seg.token, "f") == "":
			out.WriteString(fraction(t, len(seg.token)))
		default:
			out.WriteString(t.Format(seg.text))
		}
	}
	return out.String()
}

func fraction(t time.Time, digits int) string {
	n := t.Nanosecond()
	for i := digits; i < 9; i++ {
		n /= 10
	}
	return fmt.Sprintf("%0*d", digits, n)
}

func collides(literal string) bool {
	if strings.ContainsAny(literal, "0123456789") {
		return true
	}
	for _, fragment := range referenceFragments {
		if strings.Contains(literal, fragment) {
			return true
		}
	}
	return false
}
