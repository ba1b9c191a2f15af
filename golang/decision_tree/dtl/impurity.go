package dtl

import "gonum.org/v1/gonum/floats"

//LabelCounts returns the distinct labels of rows in order of their first occurrence and how many rows carry each.
func LabelCounts(rows []Row) (labels []string, counts []int) {
	index := make(map[string]int)
	for _, row := range rows {
		ind, ok := index[row.Label]
		if !ok {
			ind = len(labels)
			index[row.Label] = ind
			labels = append(labels, row.Label)
			counts = append(counts, 0)
		}
		counts[ind]++
	}
	return
}

//Gini is the Gini impurity of the labels of rows, 1 - sum(p^2).
//An empty row set has impurity 0 so that it adds nothing to a weighted average.
func Gini(rows []Row) float64 {
	if len(rows) == 0 {
		return 0
	}
	_, counts := LabelCounts(rows)

	probabilities := make([]float64, len(counts))
	numOfRows := float64(len(rows))
	for ind, count := range counts {
		probabilities[ind] = float64(count) / numOfRows
	}
	return 1 - floats.Dot(probabilities, probabilities)
}

//InfoGain is the decrease of impurity obtained by splitting a parent with parentImpurity into left and right.
func InfoGain(left, right []Row, parentImpurity float64) float64 {
	totalSize := float64(len(left) + len(right))
	if totalSize == 0 {
		return 0
	}
	avgImpurity := float64(len(left))/totalSize*Gini(left) + float64(len(right))/totalSize*Gini(right)
	return parentImpurity - avgImpurity
}
