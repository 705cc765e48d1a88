package metadata

import "testing"

func TestSplitPascalCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"FirstName", "First Name"},
		{"firstName", "first Name"},
		{"HTTPServer", "HTTP Server"},
		{"EmailAddress", "Email Address"},
		{"BirthDate", "Birth Date"},
		{"Address2Line", "Address2 Line"},
		{"ID", "ID"},
		{"A", "A"},
		{"lowercase", "lowercase"},
		{"IOReader", "IO Reader"},
		{"First Name", "First Name"},
		{"HTTP Server", "HTTP Server"},
		{"", ""},
		{"   ", "   "},
	}

	for _, tc := range cases {
		if got := SplitPascalCase(tc.in); got != tc.want {
			t.Fatalf("SplitPascalCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitPascalCaseIsIdempotent(t *testing.T) {
	for _, name := range []string{"FirstName", "HTTPServer", "XMLHttpRequest", "UserIdValue"} {
		once := SplitPascalCase(name)
		twice := SplitPascalCase(once)
		if once != twice {
			t.Fatalf("expected idempotent split for %q: %q then %q", name, once, twice)
		}
	}
}

func TestSplitPascalCaseNoLeadingSpace(t *testing.T) {
	for _, name := range []string{"Name", "NAme", "N"} {
		got := SplitPascalCase(name)
		if got != "" && got[0] == ' ' {
			t.Fatalf("unexpected leading space for %q: %q", name, got)
		}
	}
}
