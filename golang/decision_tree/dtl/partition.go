package dtl

//Partition splits rows into those that match the question and those that do not.
//The order of rows is kept inside both halves.
func Partition(rows []Row, question Question) (trueRows, falseRows []Row, err error) {
	trueRows, falseRows = make([]Row, 0), make([]Row, 0)
	for _, row := range rows {
		matched, err := question.Match(row.Features)
		if err != nil {
			return nil, nil, err
		}
		if matched {
			trueRows = append(trueRows, row)
		} else {
			falseRows = append(falseRows, row)
		}
	}
	return trueRows, falseRows, nil
}
