package dtl

import (
	"math"
	"testing"
)

func labelledRows(labels ...string) []Row {
	rows := make([]Row, len(labels))
	for ind, label := range labels {
		rows[ind] = Row{Features: []Value{Numeric(float64(ind))}, Label: label}
	}
	return rows
}

func TestGini(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   float64
	}{
		{"single label", []string{"Apple", "Apple"}, 0},
		{"two labels", []string{"Apple", "Mango"}, 0.5},
		{"fruits", []string{"Apple", "Apple", "Mango", "Grape", "Grape", "Lemon"}, 1 - (4.0+1+4+1)/36},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Gini(labelledRows(tt.labels...))
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Gini = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGiniBounds(t *testing.T) {
	sets := [][]string{
		{"a"},
		{"a", "b", "c"},
		{"a", "a", "a", "b"},
		{"a", "b", "c", "d", "e", "a", "b"},
	}
	for _, labels := range sets {
		rows := labelledRows(labels...)
		distinct, _ := LabelCounts(rows)
		upper := 1 - 1/float64(len(distinct))
		got := Gini(rows)
		if got < 0 || got > upper+1e-12 {
			t.Fatalf("Gini(%v) = %v outside [0, %v]", labels, got, upper)
		}
	}
}

func TestLabelCountsKeepsFirstOccurrenceOrder(t *testing.T) {
	labels, counts := LabelCounts(labelledRows("b", "a", "b", "c", "a", "b"))
	wantLabels := []string{"b", "a", "c"}
	wantCounts := []int{3, 2, 1}
	for ind := range wantLabels {
		if labels[ind] != wantLabels[ind] || counts[ind] != wantCounts[ind] {
			t.Fatalf("got %v %v, want %v %v", labels, counts, wantLabels, wantCounts)
		}
	}
}

func TestInfoGain(t *testing.T) {
	dataset := fruitDataset(t)
	rows := dataset.Rows()
	parent := Gini(rows)

	trueRows, falseRows, err := Partition(rows, NewQuestion(0, Text("Red"), "Color"))
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	want := parent - 4.0/6*0.625
	if got := InfoGain(trueRows, falseRows, parent); math.Abs(got-want) > 1e-12 {
		t.Fatalf("InfoGain = %v, want %v", got, want)
	}

	trueRows, falseRows, err = Partition(rows, NewQuestion(0, Text("Green"), "Color"))
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	if got := InfoGain(trueRows, falseRows, parent); got < 0 {
		t.Fatalf("InfoGain is negative: %v", got)
	}
}

func TestInfoGainOfIdenticalHalvesIsZero(t *testing.T) {
	left := labelledRows("a", "b")
	right := labelledRows("a", "b")
	parent := Gini(append(append([]Row(nil), left...), right...))
	if got := InfoGain(left, right, parent); math.Abs(got) > 1e-12 {
		t.Fatalf("expected zero gain, got %v", got)
	}
	if got := InfoGain(nil, nil, 0.3); got != 0 {
		t.Fatalf("expected zero gain for empty halves, got %v", got)
	}
}
