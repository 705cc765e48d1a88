package overlay_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/overlay"
)

const peopleYAML = `
scope:
  targets: [" example.com/app.Person ", ""]
  includeDerived: true
models:
  Person:
    fields:
      EmailAddress:
        label: E-mail
        description: "Work <b>address</b><script>alert(1)</script>"
      Home[PostalCode]:
        label: ZIP
      Bio:
        hint: MultilineText
        uiHints:
          rows: "6"
`

const employeeJSON = `{
  "models": {
    "Employee": {"fields": {"ManagerId": {"hint": "String", "label": "Manager"}}}
  }
}`

func TestLoadFS_YAMLAndJSON(t *testing.T) {
	store, err := overlay.LoadFS(fstest.MapFS{
		"people.yaml":       {Data: []byte(peopleYAML)},
		"nested/staff.json": {Data: []byte(employeeJSON)},
		"README.md":         {Data: []byte("ignored")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Empty() {
		t.Fatal("expected store to hold overlays")
	}

	rule, ok := store.Scope()
	if !ok {
		t.Fatal("expected scope to be configured")
	}
	want := metadata.ScopeRule{Targets: []string{"example.com/app.Person"}, IncludeDerived: true}
	if diff := cmp.Diff(want, rule); diff != "" {
		t.Fatalf("scope mismatch (-want +got):\n%s", diff)
	}

	person, ok := store.Model("Person")
	if !ok {
		t.Fatal("Person overlay missing")
	}
	zip, ok := person.Fields["Home.PostalCode"]
	if !ok || zip.Label != "ZIP" || zip.OriginalPath != "Home[PostalCode]" {
		t.Fatalf("expected normalised nested path, got %#v", person.Fields)
	}
	if person.Source != "people.yaml" {
		t.Fatalf("unexpected source %q", person.Source)
	}

	employee, ok := store.Model("Employee")
	if !ok || employee.Fields["ManagerId"].Label != "Manager" {
		t.Fatalf("Employee overlay not parsed: %#v", employee)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]struct {
		files fstest.MapFS
		want  string
	}{
		"duplicate model": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("models:\n  Person:\n    fields: {}\n")},
				"b.yaml": {Data: []byte("models:\n  Person:\n    fields: {}\n")},
			},
			want: `duplicate model "Person"`,
		},
		"duplicate scope": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("scope:\n  targets: [A]\n")},
				"b.yaml": {Data: []byte("scope:\n  targets: [B]\n")},
			},
			want: "scope defined by a.yaml and b.yaml",
		},
		"duplicate field path": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("models:\n  Person:\n    fields:\n      Home.Street: {label: A}\n      Home[Street]: {label: B}\n")},
			},
			want: "duplicate field path",
		},
		"unknown ui hint": {
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("models:\n  Person:\n    fields:\n      Bio:\n        uiHints: {colour: red}\n")},
			},
			want: `unknown ui hint "colour"`,
		},
		"empty file": {
			files: fstest.MapFS{"a.json": {Data: []byte("  ")}},
			want:  "is empty",
		},
		"invalid json": {
			files: fstest.MapFS{"a.json": {Data: []byte("{")}},
			want:  "parse a.json",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := overlay.LoadFS(tc.files)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFS_NilAndEmbedded(t *testing.T) {
	store, err := overlay.LoadFS(nil)
	if err != nil || !store.Empty() {
		t.Fatalf("expected empty store, got %v %v", store, err)
	}
	if _, ok := store.Scope(); ok {
		t.Fatal("expected no scope")
	}

	defaults, err := overlay.LoadFS(overlay.EmbeddedFS())
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if _, ok := defaults.Model("Person"); !ok {
		t.Fatal("expected embedded Person overlay")
	}
}

func TestNormalizeFieldPath(t *testing.T) {
	cases := map[string]string{
		"Home[PostalCode]":   "Home.PostalCode",
		" Home..PostalCode ": "Home.PostalCode",
		"Home/Street":        "Home.Street",
		".Bio.":              "Bio",
		"  ":                 "",
	}
	for in, want := range cases {
		if got := overlay.NormalizeFieldPath(in); got != want {
			t.Fatalf("NormalizeFieldPath(%q) = %q, want %q", in, got, want)
		}
	}
}
