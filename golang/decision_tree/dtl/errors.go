package dtl

import "errors"

var (
	ErrMalformedDataset = errors.New("malformed dataset")
	ErrEmptyRows        = errors.New("empty row set")
	ErrShapeMismatch    = errors.New("feature vector shape mismatch")
	ErrTypeMismatch     = errors.New("value kind mismatch")
	ErrColumnOutOfRange = errors.New("column index out of range")
	ErrUnknownFormat    = errors.New("unknown figure format")
)
