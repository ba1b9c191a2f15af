package dtl

import (
	"errors"
	"math"
	"testing"
)

func TestTheBestSplitOnFruits(t *testing.T) {
	dataset := fruitDataset(t)
	bestSplit, err := TheBestSplit(dataset.Rows(), dataset.Headers())
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if bestSplit.IsLeaf() {
		t.Fatalf("expected a question")
	}
	// "Color == Red" and "Diameter >= 3" make the same partition; the first one found wins.
	if bestSplit.Question.Column != 0 || !bestSplit.Question.Value.Equal(Text("Red")) {
		t.Fatalf("best question = %s", bestSplit.Question)
	}
	wantGain := (1 - 10.0/36) - 4.0/6*0.625
	if math.Abs(bestSplit.Gain-wantGain) > 1e-12 {
		t.Fatalf("gain = %v, want %v", bestSplit.Gain, wantGain)
	}
	if bestSplit.NumberOfRows != 6 {
		t.Fatalf("number of rows = %d", bestSplit.NumberOfRows)
	}
}

func TestTheBestSplitPrefersFirstColumnOnTies(t *testing.T) {
	rows := []Row{
		{Features: []Value{Numeric(1), Text("x")}, Label: "a"},
		{Features: []Value{Numeric(2), Text("y")}, Label: "b"},
	}
	bestSplit, err := TheBestSplit(rows, nil)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if bestSplit.Question == nil || bestSplit.Question.Column != 0 {
		t.Fatalf("expected a question on column 0, got %+v", bestSplit.Question)
	}
	if !bestSplit.Question.Value.Equal(Numeric(2)) {
		t.Fatalf("expected threshold 2, got %s", bestSplit.Question.Value)
	}
}

func TestTheBestSplitIdenticalFeatures(t *testing.T) {
	rows := []Row{
		{Features: []Value{Text("Yellow"), Numeric(3)}, Label: "Apple"},
		{Features: []Value{Text("Yellow"), Numeric(3)}, Label: "Lemon"},
		{Features: []Value{Text("Yellow"), Numeric(3)}, Label: "Apple"},
	}
	bestSplit, err := TheBestSplit(rows, []string{"Color", "Diameter"})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if !bestSplit.IsLeaf() || bestSplit.Gain != 0 {
		t.Fatalf("expected no question and zero gain, got %+v", bestSplit)
	}
}

func TestTheBestSplitPureRows(t *testing.T) {
	rows := labelledRows("a", "a", "a")
	bestSplit, err := TheBestSplit(rows, nil)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if !bestSplit.IsLeaf() || bestSplit.CurrentImpurity != 0 {
		t.Fatalf("expected a pure leaf, got %+v", bestSplit)
	}
}

func TestTheBestSplitErrors(t *testing.T) {
	if _, err := TheBestSplit(nil, nil); !errors.Is(err, ErrEmptyRows) {
		t.Fatalf("expected ErrEmptyRows, got %v", err)
	}
	ragged := []Row{
		{Features: []Value{Numeric(1), Numeric(2)}, Label: "a"},
		{Features: []Value{Numeric(1)}, Label: "b"},
	}
	if _, err := TheBestSplit(ragged, nil); !errors.Is(err, ErrMalformedDataset) {
		t.Fatalf("expected ErrMalformedDataset, got %v", err)
	}
	if _, err := TheBestSplit(labelledRows("a", "b"), []string{"x", "y"}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestDistinctValuesOrder(t *testing.T) {
	values := distinctValues(fruitDataset(t).Rows(), 0)
	want := []string{"Green", "Yellow", "Orange", "Red"}
	if len(values) != len(want) {
		t.Fatalf("got %v", values)
	}
	for ind, value := range values {
		if value.Str() != want[ind] {
			t.Fatalf("got %v, want %v", values, want)
		}
	}
}

func TestTheBestSplitIgnoresRoundingResidue(t *testing.T) {
	pattern := []string{"a", "b", "b", "b"}
	for _, sizes := range [][2]int{{1, 6}, {2, 5}, {3, 7}} {
		rows := make([]Row, 0)
		for _, group := range []struct {
			color  string
			copies int
		}{{"A", sizes[0]}, {"B", sizes[1]}} {
			for c := 0; c < group.copies; c++ {
				for _, label := range pattern {
					rows = append(rows, Row{Features: []Value{Text(group.color)}, Label: label})
				}
			}
		}

		bestSplit, err := TheBestSplit(rows, []string{"Color"})
		if err != nil {
			t.Fatalf("split: %v", err)
		}
		if !bestSplit.IsLeaf() || bestSplit.Gain != 0 {
			t.Fatalf("%dx/%dx %v: expected no question, got %s with gain %g", sizes[0], sizes[1], pattern, bestSplit.Question, bestSplit.Gain)
		}

		dataset, err := NewDataset([]string{"Color"}, rows)
		if err != nil {
			t.Fatalf("dataset: %v", err)
		}
		tree, err := Train(dataset)
		if err != nil {
			t.Fatalf("train: %v", err)
		}
		if len(tree.TreeNodes) != 1 || !tree.TreeNodes[0].IsLeaf() {
			t.Fatalf("%dx/%dx: expected a single leaf, got %d nodes", sizes[0], sizes[1], len(tree.TreeNodes))
		}
	}
}
