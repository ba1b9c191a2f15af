package dtl

import (
	"fmt"
	"strconv"
	"strings"
)

//Kind tells whether a Value is a number or a piece of text.
type Kind int

const (
	NumericKind Kind = iota
	TextKind
)

func (k Kind) String() string {
	switch k {
	case NumericKind:
		return "numeric"
	case TextKind:
		return "text"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

//Value is a single cell of a dataset: either a number or a text.
type Value struct {
	kind Kind
	num  float64
	text string
}

func Numeric(v float64) Value {
	return Value{kind: NumericKind, num: v}
}

func Text(s string) Value {
	return Value{kind: TextKind, text: s}
}

//ParseValue turns a raw string into a Numeric value when it parses as a number and into a Text value otherwise.
func ParseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if num, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Numeric(num)
	}
	return Text(raw)
}

//Values is a shorthand for building a feature vector from Go literals: numbers become Numeric, strings Text.
func Values(raw ...interface{}) ([]Value, error) {
	result := make([]Value, len(raw))
	for ind, elem := range raw {
		switch v := elem.(type) {
		case Value:
			result[ind] = v
		case string:
			result[ind] = Text(v)
		case float64:
			result[ind] = Numeric(v)
		case float32:
			result[ind] = Numeric(float64(v))
		case int:
			result[ind] = Numeric(float64(v))
		case int64:
			result[ind] = Numeric(float64(v))
		case int32:
			result[ind] = Numeric(float64(v))
		default:
			return nil, fmt.Errorf("%w: unsupported cell type %T at position %d", ErrTypeMismatch, elem, ind)
		}
	}
	return result, nil
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNumeric() bool {
	return v.kind == NumericKind
}

//Float returns the number held by a Numeric value and 0 for a Text one.
func (v Value) Float() float64 {
	return v.num
}

//Str returns the text held by a Text value and an empty string for a Numeric one.
func (v Value) Str() string {
	return v.text
}

func (v Value) String() string {
	if v.kind == NumericKind {
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return v.text
}

//Equal reports whether two values have the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == NumericKind {
		return v.num == other.num
	}
	return v.text == other.text
}
