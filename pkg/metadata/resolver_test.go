package metadata

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var person = ContainerType{Name: "example.com/app/models.Person"}

func TestFormatFor(t *testing.T) {
	cases := []struct {
		tag         TypeTag
		wantDisplay string
		wantEdit    string
		wantOK      bool
	}{
		{TypeBoolean, "{0:Yes;Yes;No}", "", true},
		{TypeDate, "{0:yyyy-MM-dd}", "", true},
		{TypeDateOnly, "{0:yyyy-MM-dd}", "{0:yyyy-MM-dd}", true},
		{TypeOther, "", "", false},
		{TypeTag(""), "", "", false},
	}
	for _, tc := range cases {
		display, edit, ok := FormatFor(tc.tag)
		if display != tc.wantDisplay || edit != tc.wantEdit || ok != tc.wantOK {
			t.Fatalf("FormatFor(%q) = (%q, %q, %v)", tc.tag, display, edit, ok)
		}
	}
}

func TestHintFor(t *testing.T) {
	cases := map[string]UIHint{
		"UserId":         HintHidden,
		"userid":         HintHidden,
		"ID":             HintHidden,
		"EmailAddress":   HintEmail,
		"email":          HintEmail,
		"WorkEmail":      HintEmail,
		"ContactEmailId": HintHidden,
		"FirstName":      HintNone,
	}
	for name, want := range cases {
		if got := HintFor(name); got != want {
			t.Fatalf("HintFor(%q) = %v, want %v", name, got, want)
		}
	}
}

// The hidden suffix is a plain case-insensitive "id" suffix, not a word
// match, so ordinary words ending in "id" are hidden too.
func TestHintFor_SuffixIgnoresWordBoundaries(t *testing.T) {
	for _, name := range []string{"Paid", "Valid", "IsValid", "Squid"} {
		if got := HintFor(name); got != HintHidden {
			t.Fatalf("HintFor(%q) = %v, want %v", name, got, HintHidden)
		}
	}

	decision := MustResolver().Resolve(PropertyDescriptor{Name: "Paid", DeclaredType: TypeBoolean, Container: person})
	if decision.Hint != HintHidden || decision.Label != "" {
		t.Fatalf("unexpected decision for Paid: %+v", decision)
	}
	if decision.DisplayFormat != FormatYesNo {
		t.Fatalf("expected boolean format to still apply, got %q", decision.DisplayFormat)
	}
}

func TestResolve_Pipeline(t *testing.T) {
	resolver := MustResolver()

	cases := []struct {
		name string
		desc PropertyDescriptor
		want DisplayDecision
	}{
		{
			name: "id is hidden without label",
			desc: PropertyDescriptor{Name: "UserId", DeclaredType: TypeOther, Container: person},
			want: DisplayDecision{Hint: HintHidden},
		},
		{
			name: "id with email substring is hidden",
			desc: PropertyDescriptor{Name: "EmailId", DeclaredType: TypeOther, Container: person},
			want: DisplayDecision{Hint: HintHidden},
		},
		{
			name: "email hint",
			desc: PropertyDescriptor{Name: "EmailAddress", DeclaredType: TypeOther, Container: person},
			want: DisplayDecision{Hint: HintEmail},
		},
		{
			name: "label generated",
			desc: PropertyDescriptor{Name: "FirstName", DeclaredType: TypeOther, Container: person},
			want: DisplayDecision{Label: "First Name", HasLabel: true},
		},
		{
			name: "explicit label kept",
			desc: PropertyDescriptor{Name: "FirstName", DeclaredType: TypeOther, Container: person, ExplicitLabel: "Given name"},
			want: DisplayDecision{},
		},
		{
			name: "boolean formats coexist with label",
			desc: PropertyDescriptor{Name: "IsActive", DeclaredType: TypeBoolean, Container: person},
			want: DisplayDecision{
				DisplayFormat: FormatYesNo, HasDisplayFormat: true,
				Label: "Is Active", HasLabel: true,
			},
		},
		{
			name: "date only formats coexist with hidden hint",
			desc: PropertyDescriptor{Name: "ValidId", DeclaredType: TypeDateOnly, Container: person},
			want: DisplayDecision{
				DisplayFormat: FormatISODate, HasDisplayFormat: true,
				EditFormat: FormatISODate, HasEditFormat: true,
				Hint: HintHidden,
			},
		},
		{
			name: "date display only",
			desc: PropertyDescriptor{Name: "CreatedAt", DeclaredType: TypeDate, Container: person},
			want: DisplayDecision{
				DisplayFormat: FormatISODate, HasDisplayFormat: true,
				Label: "Created At", HasLabel: true,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolver.Resolve(tc.desc)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("decision mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	resolver := MustResolver(WithScopeRule(ScopeRule{Targets: []string{person.Name}}))
	desc := PropertyDescriptor{Name: "HTTPServerName", DeclaredType: TypeBoolean, Container: person}

	first := resolver.Resolve(desc)
	second := resolver.Resolve(desc)
	if first != second {
		t.Fatalf("expected identical decisions, got %+v and %+v", first, second)
	}
}

func TestResolve_Scope(t *testing.T) {
	employee := ContainerType{Name: "example.com/app/models.Employee", Bases: []string{person.Name}}
	other := ContainerType{Name: "example.com/app/models.Order"}

	exact := MustResolver(WithScopeRule(ScopeRule{Targets: []string{person.Name}}))
	derived := MustResolver(WithScopeRule(ScopeRule{Targets: []string{person.Name}, IncludeDerived: true}))
	empty := MustResolver(WithScopeRule(ScopeRule{Targets: []string{}}))

	desc := func(container ContainerType) PropertyDescriptor {
		return PropertyDescriptor{Name: "LastName", DeclaredType: TypeOther, Container: container}
	}

	if got := exact.Resolve(desc(person)); !got.HasLabel || got.Label != "Last Name" {
		t.Fatalf("expected label for exact target, got %+v", got)
	}
	if got := exact.Resolve(desc(employee)); got.HasLabel {
		t.Fatalf("expected no label for derived type without includeDerived, got %+v", got)
	}
	if got := derived.Resolve(desc(employee)); !got.HasLabel {
		t.Fatalf("expected label for derived type, got %+v", got)
	}
	if got := derived.Resolve(desc(other)); got.HasLabel {
		t.Fatalf("expected no label for unrelated type, got %+v", got)
	}
	for _, container := range []ContainerType{person, employee, other, {}} {
		if got := empty.Resolve(desc(container)); got.HasLabel {
			t.Fatalf("expected empty scope to disable labels, got %+v for %q", got, container.Name)
		}
	}
}

func TestResolve_ScopeDoesNotAffectFormats(t *testing.T) {
	resolver := MustResolver(WithScopeRule(ScopeRule{Targets: []string{}}))
	got := resolver.Resolve(PropertyDescriptor{Name: "Subscribed", DeclaredType: TypeBoolean})
	if !got.HasDisplayFormat || got.DisplayFormat != FormatYesNo {
		t.Fatalf("expected boolean format regardless of scope, got %+v", got)
	}
}

func TestNewScopeFilter_NilTargets(t *testing.T) {
	if _, err := NewScopeFilter(nil, false); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := NewResolver(WithScopeRule(ScopeRule{})); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected resolver construction to surface ErrInvalidArgument, got %v", err)
	}
}

func TestScopeFilter_Rule(t *testing.T) {
	filter, err := NewScopeFilter([]string{"b.Type", " a.Type ", ""}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ScopeRule{Targets: []string{"a.Type", "b.Type"}, IncludeDerived: true}
	if diff := cmp.Diff(want, filter.Rule()); diff != "" {
		t.Fatalf("rule mismatch (-want +got):\n%s", diff)
	}
}

func TestWithRules_RunAfterConventions(t *testing.T) {
	var calls []string
	custom := func(desc PropertyDescriptor, decision *DisplayDecision) bool {
		calls = append(calls, desc.Name)
		return false
	}
	resolver := MustResolver(WithRules(custom), WithScopeRule(ScopeRule{Targets: []string{}}))

	resolver.Resolve(PropertyDescriptor{Name: "UserId"})
	resolver.Resolve(PropertyDescriptor{Name: "Nickname"})

	if diff := cmp.Diff([]string{"Nickname"}, calls); diff != "" {
		t.Fatalf("custom rule calls mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyTo(t *testing.T) {
	resolver := MustResolver()

	md := &FieldMetadata{}
	resolver.ApplyTo(PropertyDescriptor{Name: "IsAdmin", DeclaredType: TypeBoolean, Container: person}, md)
	if md.DisplayFormatString != FormatYesNo {
		t.Fatalf("expected display format, got %q", md.DisplayFormatString)
	}
	if md.Label() != "Is Admin" {
		t.Fatalf("expected generated label, got %q", md.Label())
	}

	preset := &FieldMetadata{DisplayName: func() string { return "Administrator" }}
	resolver.ApplyTo(PropertyDescriptor{Name: "IsAdmin", DeclaredType: TypeOther, Container: person}, preset)
	if preset.Label() != "Administrator" {
		t.Fatalf("expected existing label preserved, got %q", preset.Label())
	}

	hidden := &FieldMetadata{}
	resolver.ApplyTo(PropertyDescriptor{Name: "PersonId", Container: person}, hidden)
	if hidden.TemplateHint != "Hidden" || hidden.DisplayName != nil {
		t.Fatalf("expected hidden hint without label, got %+v", hidden)
	}
}
