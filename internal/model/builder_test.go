package model

import (
	"database/sql"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-displaymeta/pkg/dateonly"
	"github.com/goliatone/go-displaymeta/pkg/metadata"
)

type auditable struct {
	CreatedAt time.Time
}

type contact struct {
	auditable
	ContactId    int
	FirstName    string `validate:"required"`
	Nickname     string `display:"Known as" description:"Optional"`
	EmailAddress string `validate:"required,email" ui:"placeholder=you@example.com;bogus=1"`
	Subscribed   *bool
	BirthDate    dateonly.Date
	Notes        string `uihint:"MultilineText"`
	internal     string
	Secret       string `display:"-"`
}

type customer struct {
	contact
	LoyaltyTier string
}

type address struct {
	StreetLine string
}

type shipment struct {
	ShipmentId int
	Destination address
	Delivered   sql.NullBool
}

func TestBuild_Contact(t *testing.T) {
	builder := New(Options{})
	form, err := builder.Build(&contact{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	ignore := cmpopts.IgnoreFields(Field{}, "Index", "Metadata")
	want := []Field{
		{Name: "CreatedAt", Type: FieldTypeDateTime, TypeTag: metadata.TypeDate, Label: "Created At", DisplayFormat: metadata.FormatISODate},
		{Name: "ContactId", Type: FieldTypeInteger, TypeTag: metadata.TypeOther, Label: "ContactId", TemplateHint: "Hidden", Hidden: true},
		{Name: "FirstName", Type: FieldTypeString, TypeTag: metadata.TypeOther, Label: "First Name", Required: true},
		{Name: "Nickname", Type: FieldTypeString, TypeTag: metadata.TypeOther, Label: "Known as", Description: "Optional"},
		{Name: "EmailAddress", Type: FieldTypeString, TypeTag: metadata.TypeOther, Label: "EmailAddress", Required: true, TemplateHint: "Email",
			UIHints: map[string]string{"placeholder": "you@example.com"}},
		{Name: "Subscribed", Type: FieldTypeBoolean, TypeTag: metadata.TypeBoolean, Label: "Subscribed", DisplayFormat: metadata.FormatYesNo},
		{Name: "BirthDate", Type: FieldTypeDate, TypeTag: metadata.TypeDateOnly, Label: "Birth Date",
			DisplayFormat: metadata.FormatISODate, EditFormat: metadata.FormatISODate},
		{Name: "Notes", Type: FieldTypeString, TypeTag: metadata.TypeOther, Label: "Notes", TemplateHint: "MultilineText"},
	}
	if diff := cmp.Diff(want, form.Fields, ignore); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	if form.Name != "contact" {
		t.Fatalf("expected form name contact, got %q", form.Name)
	}
	if got := form.Fields[3].Metadata[labelSourceKey]; got != "explicit" {
		t.Fatalf("expected explicit label source, got %q", got)
	}
	if got := form.Fields[7].Metadata[hintSourceKey]; got != "explicit" {
		t.Fatalf("expected explicit hint source, got %q", got)
	}
}

func TestBuild_ScopedLabels(t *testing.T) {
	contactName := TypeName(reflect.TypeOf(contact{}))
	resolver := metadata.MustResolver(metadata.WithScopeRule(metadata.ScopeRule{Targets: []string{contactName}}))
	builder := New(Options{Resolver: resolver})

	direct, err := builder.Build(contact{})
	if err != nil {
		t.Fatalf("build contact: %v", err)
	}
	if field, _ := direct.Field("FirstName"); field.Label != "First Name" {
		t.Fatalf("expected generated label in scope, got %q", field.Label)
	}

	derived, err := builder.Build(customer{})
	if err != nil {
		t.Fatalf("build customer: %v", err)
	}
	if field, _ := derived.Field("LoyaltyTier"); field.Label != "LoyaltyTier" {
		t.Fatalf("expected raw name outside scope, got %q", field.Label)
	}
	if field, _ := derived.Field("Subscribed"); field.DisplayFormat != metadata.FormatYesNo {
		t.Fatalf("expected formats to ignore scope, got %q", field.DisplayFormat)
	}

	inclusive := New(Options{Resolver: metadata.MustResolver(
		metadata.WithScopeRule(metadata.ScopeRule{Targets: []string{contactName}, IncludeDerived: true}),
	)})
	derived, err = inclusive.Build(customer{})
	if err != nil {
		t.Fatalf("build customer: %v", err)
	}
	if field, _ := derived.Field("LoyaltyTier"); field.Label != "Loyalty Tier" {
		t.Fatalf("expected label for derived type, got %q", field.Label)
	}
}

func TestContainerOf(t *testing.T) {
	got := ContainerOf(reflect.TypeOf(&customer{}))
	want := metadata.ContainerType{
		Name: TypeName(reflect.TypeOf(customer{})),
		Bases: []string{
			TypeName(reflect.TypeOf(contact{})),
			TypeName(reflect.TypeOf(auditable{})),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("container mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_NestedAndNull(t *testing.T) {
	form, err := New(Options{}).Build(shipment{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	dest, ok := form.Field("Destination")
	if !ok || dest.Type != FieldTypeObject || len(dest.Nested) != 1 {
		t.Fatalf("expected nested destination field, got %+v", dest)
	}
	if dest.Nested[0].Label != "Street Line" {
		t.Fatalf("expected nested label, got %q", dest.Nested[0].Label)
	}
	delivered, _ := form.Field("Delivered")
	if delivered.TypeTag != metadata.TypeBoolean || delivered.DisplayFormat != metadata.FormatYesNo {
		t.Fatalf("expected sql.NullBool to format as boolean, got %+v", delivered)
	}
}

func TestBuild_RejectsNonStruct(t *testing.T) {
	if _, err := New(Options{}).Build(42); err == nil {
		t.Fatalf("expected error for non-struct")
	}
	if _, err := New(Options{}).Build(nil); err == nil {
		t.Fatalf("expected error for nil")
	}
}

func TestValuesAndAssign(t *testing.T) {
	form, err := New(Options{}).Build(contact{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	yes := true
	src := contact{FirstName: "Ada", Subscribed: &yes, BirthDate: dateonly.New(1815, time.December, 10)}
	values := Values(form, &src)
	if values["FirstName"] != "Ada" {
		t.Fatalf("unexpected first name %v", values["FirstName"])
	}
	if values["BirthDate"] != src.BirthDate {
		t.Fatalf("unexpected birth date %v", values["BirthDate"])
	}

	var dst contact
	err = Assign(form, &dst, map[string]any{
		"FirstName":  "Grace",
		"Subscribed": false,
		"BirthDate":  "1906-12-09",
		"ContactId":  "7",
		"CreatedAt":  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if dst.FirstName != "Grace" || dst.ContactId != 7 {
		t.Fatalf("unexpected assignment %+v", dst)
	}
	if dst.Subscribed == nil || *dst.Subscribed {
		t.Fatalf("expected subscribed=false pointer, got %v", dst.Subscribed)
	}
	if dst.BirthDate != dateonly.New(1906, time.December, 9) {
		t.Fatalf("unexpected birth date %v", dst.BirthDate)
	}
	if dst.CreatedAt.Year() != 2020 {
		t.Fatalf("expected promoted field assignment, got %v", dst.CreatedAt)
	}

	if err := Assign(form, dst, nil); err == nil {
		t.Fatalf("expected error for non-pointer destination")
	}
}

func TestHumanizeLabeler(t *testing.T) {
	cases := map[string]string{
		"first_name":     "First Name",
		"email-address":  "Email Address",
		"createdAt":      "Created At",
		"HTTPServerName": "HTTP Server Name",
		"":               "",
	}
	for in, want := range cases {
		if got := HumanizeLabeler(in); got != want {
			t.Fatalf("HumanizeLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseUIHints(t *testing.T) {
	got := ParseUIHints("placeholder=Jane; hideLabel ;unknown=x;cssClass=")
	want := map[string]string{"placeholder": "Jane", "hideLabel": "true"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hints mismatch (-want +got):\n%s", diff)
	}
	if ParseUIHints("") != nil {
		t.Fatalf("expected nil for empty tag")
	}
}

func TestClone(t *testing.T) {
	form, err := New(Options{}).Build(contact{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	clone := form.Clone()
	clone.Fields[0].Label = "changed"
	clone.Fields[4].UIHints["placeholder"] = "changed"
	if form.Fields[0].Label == "changed" || form.Fields[4].UIHints["placeholder"] == "changed" {
		t.Fatalf("expected clone to be independent")
	}
}
