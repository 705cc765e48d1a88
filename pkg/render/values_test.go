package render_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-displaymeta/pkg/dateonly"
	"github.com/goliatone/go-displaymeta/pkg/metadata"
	"github.com/goliatone/go-displaymeta/pkg/model"
	"github.com/goliatone/go-displaymeta/pkg/render"
)

func TestDisplayAndEditValues(t *testing.T) {
	created := model.Field{Name: "CreatedAt", TypeTag: metadata.TypeDate, DisplayFormat: metadata.FormatISODate}
	birth := model.Field{Name: "BirthDate", TypeTag: metadata.TypeDateOnly, DisplayFormat: metadata.FormatISODate, EditFormat: metadata.FormatISODate}
	active := model.Field{Name: "Active", TypeTag: metadata.TypeBoolean, DisplayFormat: metadata.FormatYesNo}

	at := time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"display date", render.DisplayValue(created, at), "2024-03-09"},
		{"edit datetime", render.EditValue(created, at), "2024-03-09T14:30"},
		{"edit zero datetime", render.EditValue(created, time.Time{}), ""},
		{"display date only", render.DisplayValue(birth, dateonly.New(1990, time.May, 1)), "1990-05-01"},
		{"edit date only", render.EditValue(birth, dateonly.New(1990, time.May, 1)), "1990-05-01"},
		{"display true", render.DisplayValue(active, true), "Yes"},
		{"display false", render.DisplayValue(active, false), "No"},
		{"edit bool", render.EditValue(active, true), "true"},
		{"plain", render.DisplayValue(model.Field{}, 42), "42"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: want %q got %q", tc.name, tc.want, tc.got)
		}
	}
}

func TestParseEdited(t *testing.T) {
	created := model.Field{TypeTag: metadata.TypeDate}
	v, err := render.ParseEdited(created, "2024-03-09T14:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !v.(time.Time).Equal(time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time %v", v)
	}

	birth := model.Field{TypeTag: metadata.TypeDateOnly, EditFormat: metadata.FormatISODate}
	v, err = render.ParseEdited(birth, "1990-05-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v.(dateonly.Date) != dateonly.New(1990, time.May, 1) {
		t.Fatalf("unexpected date %v", v)
	}
	if _, err := render.ParseEdited(birth, "01/05/1990"); err == nil {
		t.Fatalf("expected invalid date error")
	}

	active := model.Field{TypeTag: metadata.TypeBoolean}
	if v, _ := render.ParseEdited(active, ""); v != false {
		t.Fatalf("expected unchecked box to mean false, got %v", v)
	}
	if v, _ := render.ParseEdited(active, "on"); v != true {
		t.Fatalf("expected on to mean true, got %v", v)
	}
}
