package dtl

import (
	"errors"
	"math"
	"testing"
)

func TestNewDatasetValidation(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		rows    []Row
	}{
		{"no headers", nil, []Row{{Features: []Value{Numeric(1)}, Label: "a"}}},
		{"no rows", []string{"x"}, nil},
		{"ragged", []string{"x", "y"}, []Row{
			{Features: []Value{Numeric(1), Numeric(2)}, Label: "a"},
			{Features: []Value{Numeric(1)}, Label: "b"},
		}},
		{"mixed column", []string{"x"}, []Row{
			{Features: []Value{Numeric(1)}, Label: "a"},
			{Features: []Value{Text("1")}, Label: "b"},
		}},
		{"missing value", []string{"x"}, []Row{{Features: []Value{Numeric(math.NaN())}, Label: "a"}}},
		{"empty label", []string{"x"}, []Row{{Features: []Value{Numeric(1)}, Label: ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDataset(tt.headers, tt.rows); !errors.Is(err, ErrMalformedDataset) {
				t.Fatalf("expected ErrMalformedDataset, got %v", err)
			}
		})
	}
}

func TestNewDatasetCopiesInput(t *testing.T) {
	headers := []string{"Color"}
	rows := []Row{{Features: []Value{Text("Red")}, Label: "Grape"}}
	dataset, err := NewDataset(headers, rows)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	headers[0] = "Shape"
	rows[0].Features[0] = Text("Blue")

	if dataset.Header(0) != "Color" {
		t.Fatalf("headers were shared: %v", dataset.Headers())
	}
	if dataset.Rows()[0].Features[0].Str() != "Red" {
		t.Fatalf("rows were shared: %v", dataset.Rows())
	}
	if dataset.ColumnKind(0) != TextKind || dataset.Width() != 1 || dataset.Height() != 1 {
		t.Fatalf("unexpected shape or kind")
	}
}

func TestNewRow(t *testing.T) {
	row, err := NewRow("Green", 3, "Apple")
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if row.Label != "Apple" || !row.Features[0].Equal(Text("Green")) || !row.Features[1].Equal(Numeric(3)) {
		t.Fatalf("unexpected row %+v", row)
	}
	if _, err := NewRow("Green", 3, 4); !errors.Is(err, ErrMalformedDataset) {
		t.Fatalf("expected ErrMalformedDataset for a numeric label, got %v", err)
	}
	if _, err := NewRow("Apple"); !errors.Is(err, ErrMalformedDataset) {
		t.Fatalf("expected ErrMalformedDataset for a row without features, got %v", err)
	}
	if _, err := NewRow([]int{1}, "Apple"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestParseValue(t *testing.T) {
	if v := ParseValue(" 4.5 "); !v.Equal(Numeric(4.5)) {
		t.Fatalf("got %v (%s)", v, v.Kind())
	}
	if v := ParseValue("Yellow"); !v.Equal(Text("Yellow")) {
		t.Fatalf("got %v (%s)", v, v.Kind())
	}
	if Numeric(3).Equal(Text("3")) {
		t.Fatalf("values of different kinds must differ")
	}
	if Numeric(3).String() != "3" || Numeric(0.25).String() != "0.25" {
		t.Fatalf("unexpected formatting")
	}
}
