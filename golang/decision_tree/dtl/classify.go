package dtl

import "fmt"

//Prediction is the label distribution of the leaf reached by a feature vector.
//It is a copy owned by the caller.
type Prediction struct {
	Labels       []string
	Counts       []int
	NumberOfRows int
	LeafIndex    int
}

func newPrediction(leaf LeafNode) Prediction {
	return Prediction{
		Labels:       append([]string(nil), leaf.Labels...),
		Counts:       append([]int(nil), leaf.Counts...),
		NumberOfRows: leaf.NumberOfRows,
		LeafIndex:    leaf.LeafNodeId,
	}
}

//Frequencies maps every label of the leaf to its share among the training rows in the leaf.
//The values sum to 1.
func (prediction Prediction) Frequencies() map[string]float64 {
	result := make(map[string]float64, len(prediction.Labels))
	total := float64(prediction.NumberOfRows)
	for ind, label := range prediction.Labels {
		result[label] = float64(prediction.Counts[ind]) / total
	}
	return result
}

//DistinctLabelFrequencies divides label counts by the number of distinct labels in the leaf
//instead of the number of rows. The values are not a distribution and need not sum to 1.
func (prediction Prediction) DistinctLabelFrequencies() map[string]float64 {
	result := make(map[string]float64, len(prediction.Labels))
	size := float64(len(prediction.Labels))
	for ind, label := range prediction.Labels {
		result[label] = float64(prediction.Counts[ind]) / size
	}
	return result
}

//CountsMap maps every label of the leaf to the number of training rows carrying it.
func (prediction Prediction) CountsMap() map[string]int {
	result := make(map[string]int, len(prediction.Labels))
	for ind, label := range prediction.Labels {
		result[label] = prediction.Counts[ind]
	}
	return result
}

//Top returns the most frequent label. Among equally frequent labels the one met first in training wins.
func (prediction Prediction) Top() string {
	bestInd := 0
	for ind, count := range prediction.Counts {
		if count > prediction.Counts[bestInd] {
			bestInd = ind
		}
	}
	if len(prediction.Labels) == 0 {
		return ""
	}
	return prediction.Labels[bestInd]
}

//Classify walks the tree with a feature vector and returns the label distribution of the leaf it reaches.
func (tree *Tree) Classify(features ...Value) (Prediction, error) {
	if len(tree.TreeNodes) == 0 {
		return Prediction{}, fmt.Errorf("%w: the tree is not trained", ErrEmptyRows)
	}
	if len(features) != tree.FeatureCount() {
		return Prediction{}, fmt.Errorf("%w: got %d features, the tree was trained on %d",
			ErrShapeMismatch, len(features), tree.FeatureCount())
	}
	for q, cell := range features {
		if cell.Kind() != tree.Kinds[q] {
			return Prediction{}, fmt.Errorf("%w: column %q expects %s, got %s %q",
				ErrTypeMismatch, tree.Headers[q], tree.Kinds[q], cell.Kind(), cell.String())
		}
	}

	ind := 0
	for !tree.TreeNodes[ind].IsLeaf() {
		node := tree.TreeNodes[ind]
		matched, err := node.Question.Match(features)
		if err != nil {
			return Prediction{}, err
		}
		if matched {
			ind = node.TrueIndex
		} else {
			ind = node.FalseIndex
		}
	}
	return newPrediction(tree.LeafNodes[tree.TreeNodes[ind].LeafIndex]), nil
}

//ClassifyRow classifies the features of a row, ignoring its label.
func (tree *Tree) ClassifyRow(row Row) (Prediction, error) {
	return tree.Classify(row.Features...)
}
