package dtl

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorgonia.org/tensor"
)

//ClassifyBatch classifies rows with up to threadsNum goroutines. Predictions are aligned with rows.
func ClassifyBatch(ctx context.Context, tree *Tree, rows []Row, threadsNum int) ([]Prediction, error) {
	if threadsNum < 1 {
		threadsNum = 1
	}
	result := make([]Prediction, len(rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threadsNum)
	for p := range rows {
		p := p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			prediction, err := tree.ClassifyRow(rows[p])
			if err != nil {
				return fmt.Errorf("row %d: %w", p, err)
			}
			result[p] = prediction
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

//Evaluation compares the most frequent label of every prediction with the true label.
//Confusion is a square Int tensor indexed by (actual, predicted) positions in Labels.
type Evaluation struct {
	Labels    []string
	Confusion *tensor.Dense
	Correct   int
	Total     int
}

//Accuracy is the share of rows whose top predicted label is the true one.
func (evaluation Evaluation) Accuracy() float64 {
	if evaluation.Total == 0 {
		return 0
	}
	return float64(evaluation.Correct) / float64(evaluation.Total)
}

//Count returns how many rows labelled actual were predicted as predicted.
func (evaluation Evaluation) Count(actual, predicted string) int {
	actualInd, predictedInd := -1, -1
	for ind, label := range evaluation.Labels {
		if label == actual {
			actualInd = ind
		}
		if label == predicted {
			predictedInd = ind
		}
	}
	if actualInd == -1 || predictedInd == -1 {
		return 0
	}
	value, err := evaluation.Confusion.At(actualInd, predictedInd)
	if err != nil {
		return 0
	}
	return value.(int)
}

//Evaluate classifies every row of dataset and collects accuracy and the confusion matrix.
func Evaluate(ctx context.Context, tree *Tree, dataset *Dataset, threadsNum int) (Evaluation, error) {
	rows := dataset.Rows()
	predictions, err := ClassifyBatch(ctx, tree, rows, threadsNum)
	if err != nil {
		return Evaluation{}, err
	}

	index := make(map[string]int)
	var labels []string
	labelIndex := func(label string) int {
		ind, ok := index[label]
		if !ok {
			ind = len(labels)
			index[label] = ind
			labels = append(labels, label)
		}
		return ind
	}
	pairs := make([][2]int, len(rows))
	for p, row := range rows {
		pairs[p] = [2]int{labelIndex(row.Label), labelIndex(predictions[p].Top())}
	}

	k := len(labels)
	confusion := tensor.New(tensor.WithShape(k, k), tensor.Of(tensor.Int))
	evaluation := Evaluation{Labels: labels, Confusion: confusion, Total: len(rows)}
	for _, pair := range pairs {
		current, err := confusion.At(pair[0], pair[1])
		if err != nil {
			return Evaluation{}, err
		}
		if err := confusion.SetAt(current.(int)+1, pair[0], pair[1]); err != nil {
			return Evaluation{}, err
		}
		if pair[0] == pair[1] {
			evaluation.Correct++
		}
	}
	return evaluation, nil
}
