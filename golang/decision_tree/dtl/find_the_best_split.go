package dtl

import "fmt"

//gainEpsilon is the smallest gain treated as an improvement. Splits into halves with equal label
//distributions have zero gain but may come out of InfoGain as a rounding residue around 1e-17.
const gainEpsilon = 1e-12

//BestSplit contains results of the split selection algorithm.
//Question is nil when no question improves the purity of the rows.
type BestSplit struct {
	Gain            float64
	Question        *Question
	CurrentImpurity float64
	NumberOfRows    int
}

//IsLeaf tells whether the rows should end up in a leaf.
func (split BestSplit) IsLeaf() bool {
	return split.Question == nil
}

//distinctValues returns the values of the column q in order of their first occurrence.
func distinctValues(rows []Row, q int) []Value {
	seen := make(map[Value]struct{})
	values := make([]Value, 0)
	for _, row := range rows {
		cell := row.Features[q]
		if _, ok := seen[cell]; ok {
			continue
		}
		seen[cell] = struct{}{}
		values = append(values, cell)
	}
	return values
}

//TheBestSplit tries every distinct value of every column as a question and returns
//the question with the largest information gain. Columns are scanned in index order and values
//in order of first occurrence; on equal gains the first question found is kept, unlike
//a ">=" update that would keep the last one (on the fruit data "Color == Red" wins over "Diameter >= 3").
//Gains within gainEpsilon of the current best count as equal, and gains below gainEpsilon as zero.
//headers are used only to name the questions and may be nil.
func TheBestSplit(rows []Row, headers []string) (BestSplit, error) {
	if len(rows) == 0 {
		return BestSplit{}, ErrEmptyRows
	}
	w := len(rows[0].Features)
	if headers != nil && len(headers) != w {
		return BestSplit{}, fmt.Errorf("%w: %d headers for %d features", ErrShapeMismatch, len(headers), w)
	}
	for p, row := range rows {
		if len(row.Features) != w {
			return BestSplit{}, fmt.Errorf("%w: row %d has %d features, expected %d", ErrMalformedDataset, p, len(row.Features), w)
		}
	}

	best := BestSplit{CurrentImpurity: Gini(rows), NumberOfRows: len(rows)}

	for q := 0; q < w; q++ {
		header := ""
		if headers != nil {
			header = headers[q]
		}
		for _, value := range distinctValues(rows, q) {
			question := NewQuestion(q, value, header)
			trueRows, falseRows, err := Partition(rows, question)
			if err != nil {
				return BestSplit{}, err
			}
			if len(trueRows) == 0 || len(falseRows) == 0 {
				continue
			}
			gain := InfoGain(trueRows, falseRows, best.CurrentImpurity)
			if gain > best.Gain+gainEpsilon {
				best.Gain = gain
				best.Question = &question
			}
		}
	}

	return best, nil
}
