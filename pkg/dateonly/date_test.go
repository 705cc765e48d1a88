package dateonly

import (
	"testing"
	"time"
)

func TestScan(t *testing.T) {
	cases := []struct {
		name string
		src  any
		want Date
	}{
		{"nil", nil, Date{}},
		{"time", time.Date(2024, 2, 29, 13, 4, 0, 0, time.UTC), New(2024, time.February, 29)},
		{"string", "1990-07-04", New(1990, time.July, 4)},
		{"bytes", []byte("1990-07-04"), New(1990, time.July, 4)},
		{"sqlite datetime", "1990-07-04 00:00:00+00:00", New(1990, time.July, 4)},
		{"rfc3339", "1990-07-04T00:00:00Z", New(1990, time.July, 4)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got Date
			if err := got.Scan(tc.src); err != nil {
				t.Fatalf("scan: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestScanRejectsUnknownTypes(t *testing.T) {
	var d Date
	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error scanning int")
	}
}

func TestValue(t *testing.T) {
	v, err := Date{}.Value()
	if err != nil || v != nil {
		t.Fatalf("expected nil value for zero date, got %v (%v)", v, err)
	}
	v, err = New(2020, time.January, 2).Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if got := v.(time.Time).Format("2006-01-02"); got != "2020-01-02" {
		t.Fatalf("unexpected value %s", got)
	}
}

func TestTextRoundTrip(t *testing.T) {
	in := New(2001, time.September, 9)
	text, err := in.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(text) != "2001-09-09" {
		t.Fatalf("unexpected text %q", text)
	}
	var out Date
	if err := out.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("expected %v, got %v", in, out)
	}
}
