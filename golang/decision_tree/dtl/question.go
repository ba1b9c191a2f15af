package dtl

import "fmt"

//Question is a test of one feature column: "value >= reference" for numeric columns
//and "value == reference" for text ones. The kind of the reference value decides which test is used.
type Question struct {
	Column int
	Value  Value
	Header string
}

func NewQuestion(column int, value Value, header string) Question {
	return Question{Column: column, Value: value, Header: header}
}

//Match answers the question for a feature vector.
func (q Question) Match(features []Value) (bool, error) {
	if q.Column < 0 || q.Column >= len(features) {
		return false, fmt.Errorf("%w: column %d, vector of %d features", ErrColumnOutOfRange, q.Column, len(features))
	}
	cell := features[q.Column]
	if cell.Kind() != q.Value.Kind() {
		return false, fmt.Errorf("%w: column %q expects %s, got %s %q",
			ErrTypeMismatch, q.Header, q.Value.Kind(), cell.Kind(), cell.String())
	}

	if q.Value.IsNumeric() {
		return cell.Float() >= q.Value.Float(), nil
	}
	return cell.Str() == q.Value.Str(), nil
}

//Operator is ">=" for numeric questions and "==" for text ones.
func (q Question) Operator() string {
	if q.Value.IsNumeric() {
		return ">="
	}
	return "=="
}

func (q Question) String() string {
	header := q.Header
	if header == "" {
		header = fmt.Sprintf("f_%d", q.Column)
	}
	return fmt.Sprintf("Is %s %s %s?", header, q.Operator(), q.Value)
}
