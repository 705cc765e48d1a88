package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-displaymeta/pkg/model"
	"github.com/goliatone/go-displaymeta/pkg/render"
)

func TestMapErrors(t *testing.T) {
	form := model.FormModel{
		Fields: []model.Field{
			{Name: "FirstName", Type: model.FieldTypeString},
			{
				Name: "Home",
				Type: model.FieldTypeObject,
				Nested: []model.Field{
					{Name: "Street", Type: model.FieldTypeString},
					{Name: "PostalCode", Type: model.FieldTypeString},
				},
			},
			{Name: "Tags", Type: model.FieldTypeString},
		},
	}

	payload := map[string][]string{
		"FirstName":                  {"First Name is required", " First Name is required "},
		"/body/home/street":          {"Street invalid"},
		"$.body.Tags[0]":             {"Tags must be unique"},
		"request.payload.Home":       {"Home missing"},
		"non_field_errors":           {"Form level error"},
		"data.Home.PostalCode.extra": {"Postal code malformed"},
		"request/body/unknown-field": {"Should fall back to form errors"},
		"":                           {"Unscoped form error"},
	}

	mapped := render.MapErrors(form, payload)

	wantFields := map[string][]string{
		"FirstName":       {"First Name is required"},
		"Home.Street":     {"Street invalid"},
		"Tags":            {"Tags must be unique"},
		"Home":            {"Home missing"},
		"Home.PostalCode": {"Postal code malformed"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrors_Empty(t *testing.T) {
	mapped := render.MapErrors(model.FormModel{}, nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
