package model_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-displaymeta/pkg/model"
)

type Person struct {
	PersonId     int
	FirstName    string
	EmailAddress string
	Active       bool
}

func TestNewBuilder_CachesPerType(t *testing.T) {
	calls := 0
	counter := model.DecoratorFunc(func(form *model.FormModel) error {
		calls++
		return nil
	})
	builder := model.MustBuilder(model.WithCache(8), model.WithDecorators(counter))

	first, err := builder.Build(Person{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	first.Fields[1].Label = "mutated"

	second, err := builder.Build(&Person{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected decorators to run once, ran %d times", calls)
	}
	if second.Fields[1].Label != "First Name" {
		t.Fatalf("expected cached model to be isolated from callers, got %q", second.Fields[1].Label)
	}
}

func TestNewBuilder_WithLabeler(t *testing.T) {
	builder := model.MustBuilder(model.WithLabeler(func(name string) string { return "label:" + name }))
	form, err := builder.BuildType(reflect.TypeOf(Person{}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	field, _ := form.Field("FirstName")
	if field.Label != "label:FirstName" {
		t.Fatalf("expected custom labeler, got %q", field.Label)
	}
}

func TestNewBuilder_DecoratorError(t *testing.T) {
	boom := errors.New("boom")
	builder := model.MustBuilder(model.WithDecorators(model.DecoratorFunc(func(*model.FormModel) error {
		return boom
	})))
	if _, err := builder.Build(Person{}); !errors.Is(err, boom) {
		t.Fatalf("expected decorator error, got %v", err)
	}
}

func TestTypeNameOf(t *testing.T) {
	if got := model.TypeNameOf(&Person{}); got != "github.com/goliatone/go-displaymeta/pkg/model_test.Person" {
		t.Fatalf("unexpected type name %q", got)
	}
}
