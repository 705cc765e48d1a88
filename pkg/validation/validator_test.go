package validation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-displaymeta/pkg/model"
	"github.com/goliatone/go-displaymeta/pkg/validation"
)

type Address struct {
	Street     string `validate:"required"`
	PostalCode string `validate:"omitempty,len=5" display:"ZIP"`
}

type Entity struct {
	Id int
}

type Person struct {
	Entity
	FirstName    string `validate:"required"`
	LastName     string `validate:"max=10"`
	EmailAddress string `validate:"required,email"`
	Home         Address
}

func TestValidate_Messages(t *testing.T) {
	v := validation.MustNew()
	got, err := v.Validate(&Person{
		LastName:     "Hopper-Mountbatten",
		EmailAddress: "grace",
		Home:         Address{PostalCode: "123"},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := map[string][]string{
		"FirstName":       {"First Name is required"},
		"LastName":        {"Last Name must be at most 10"},
		"EmailAddress":    {"EmailAddress must be a valid email address"},
		"Home.Street":     {"Street is required"},
		"Home.PostalCode": {"ZIP must be exactly 5"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Valid(t *testing.T) {
	got, err := validation.MustNew().Validate(Person{
		FirstName:    "Grace",
		EmailAddress: "grace@example.com",
		Home:         Address{Street: "1 Loop"},
	})
	if err != nil || got != nil {
		t.Fatalf("expected no errors, got %v %v", got, err)
	}
}

func TestValidate_CustomLabelsAndMessages(t *testing.T) {
	builder := model.MustBuilder(model.WithLabeler(strings.ToUpper))
	v := validation.MustNew(
		validation.WithBuilder(builder),
		validation.WithMessage("required", "please fill in %s"),
	)
	got, err := v.Validate(Person{EmailAddress: "grace@example.com", Home: Address{Street: "x"}})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff(map[string][]string{"FirstName": {"please fill in FIRSTNAME"}}, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RejectsNonStruct(t *testing.T) {
	if _, err := validation.MustNew().Validate("nope"); err == nil {
		t.Fatal("expected error for non-struct value")
	}
}
