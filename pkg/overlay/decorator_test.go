package overlay_test

import (
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/model"
	"github.com/goliatone/go-displaymeta/pkg/overlay"
)

type Entity struct {
	Id int
}

type Address struct {
	Street     string
	PostalCode string
}

type Person struct {
	Entity
	FirstName    string
	EmailAddress string
	Bio          string
	Home         Address
}

type Employee struct {
	Person
	ManagerId int
}

func mustField(t *testing.T, fields []model.Field, path ...string) model.Field {
	t.Helper()
	for _, field := range fields {
		if field.Name != path[0] {
			continue
		}
		if len(path) == 1 {
			return field
		}
		return mustField(t, field.Nested, path[1:]...)
	}
	t.Fatalf("field %v not found", path)
	return model.Field{}
}

func loadPeople(t *testing.T) *overlay.Store {
	t.Helper()
	store, err := overlay.LoadFS(fstest.MapFS{
		"people.yaml": {Data: []byte(peopleYAML)},
		"staff.json":  {Data: []byte(employeeJSON)},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return store
}

func TestDecorator_AppliesFieldOverrides(t *testing.T) {
	builder := model.MustBuilder(model.WithDecorators(loadPeople(t).Decorator()))
	form, err := builder.Build(Person{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	email := mustField(t, form.Fields, "EmailAddress")
	if email.Label != "E-mail" || email.Metadata["label.source"] != "overlay" {
		t.Fatalf("expected overlay label, got %q (%v)", email.Label, email.Metadata)
	}
	if email.Description != "Work <b>address</b>" {
		t.Fatalf("expected sanitised description, got %q", email.Description)
	}
	if email.TemplateHint != "Email" {
		t.Fatalf("expected convention hint to survive, got %q", email.TemplateHint)
	}

	if zip := mustField(t, form.Fields, "Home", "PostalCode"); zip.Label != "ZIP" {
		t.Fatalf("expected nested override, got %q", zip.Label)
	}

	bio := mustField(t, form.Fields, "Bio")
	if bio.TemplateHint != "MultilineText" || bio.UIHints["rows"] != "6" {
		t.Fatalf("expected hint overrides, got %q %v", bio.TemplateHint, bio.UIHints)
	}
}

func TestDecorator_AncestorThenDerived(t *testing.T) {
	builder := model.MustBuilder(model.WithDecorators(overlay.NewDecorator(loadPeople(t))))
	form, err := builder.Build(Employee{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if got := mustField(t, form.Fields, "EmailAddress").Label; got != "E-mail" {
		t.Fatalf("expected Person overlay to apply to Employee, got %q", got)
	}
	manager := mustField(t, form.Fields, "ManagerId")
	if manager.Hidden || manager.TemplateHint != "String" || manager.Label != "Manager" {
		t.Fatalf("expected overlay to un-hide ManagerId, got %#v", manager)
	}
	if !mustField(t, form.Fields, "Id").Hidden {
		t.Fatal("expected Id to stay hidden")
	}
}

func TestDecorator_NoOp(t *testing.T) {
	form := model.FormModel{Name: "Person", Fields: []model.Field{{Name: "FirstName", Label: "First Name"}}}
	if err := overlay.NewDecorator(nil).Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if err := loadPeople(t).Decorator().Decorate(nil); err != nil {
		t.Fatalf("decorate nil form: %v", err)
	}
	if form.Fields[0].Label != "First Name" {
		t.Fatalf("expected untouched form, got %q", form.Fields[0].Label)
	}
}

func TestStoreScope_FeedsResolver(t *testing.T) {
	store, err := overlay.LoadFS(fstest.MapFS{
		"scope.yaml": {Data: []byte("scope:\n  targets: [" + model.TypeNameOf(Person{}) + "]\n")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rule, _ := store.Scope()
	resolver := metadata.MustResolver(metadata.WithScopeRule(rule))
	builder := model.MustBuilder(model.WithResolver(resolver))

	person, _ := builder.Build(Person{})
	if got := mustField(t, person.Fields, "FirstName").Label; got != "First Name" {
		t.Fatalf("expected scoped label, got %q", got)
	}
	employee, _ := builder.Build(Employee{})
	if got := mustField(t, employee.Fields, "FirstName").Label; got != "FirstName" {
		t.Fatalf("expected exact scope to skip Employee, got %q", got)
	}
}
