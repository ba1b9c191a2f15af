package dtl

import (
	"fmt"
	"math"
)

//Row is one record of a dataset. Features are the leading columns of the source table, Label is its last column.
type Row struct {
	Features []Value
	Label    string
}

//NewRow builds a row from Go literals, the last element being the label.
func NewRow(cells ...interface{}) (Row, error) {
	if len(cells) < 2 {
		return Row{}, fmt.Errorf("%w: a row needs at least one feature and a label", ErrMalformedDataset)
	}
	label, ok := cells[len(cells)-1].(string)
	if !ok {
		return Row{}, fmt.Errorf("%w: label must be text, got %T", ErrMalformedDataset, cells[len(cells)-1])
	}
	features, err := Values(cells[:len(cells)-1]...)
	if err != nil {
		return Row{}, err
	}
	return Row{Features: features, Label: label}, nil
}

//Dataset is an immutable training table: named feature columns plus rows.
//Every column holds values of one kind.
type Dataset struct {
	headers []string
	kinds   []Kind
	rows    []Row
}

//NewDataset validates rows against headers and returns a dataset that owns copies of both.
func NewDataset(headers []string, rows []Row) (*Dataset, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no feature columns", ErrMalformedDataset)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedDataset)
	}

	w := len(headers)
	kinds := make([]Kind, w)
	for q := 0; q < w; q++ {
		kinds[q] = -1
	}

	ownRows := make([]Row, len(rows))
	for p, row := range rows {
		if len(row.Features) != w {
			return nil, fmt.Errorf("%w: row %d has %d features, expected %d", ErrMalformedDataset, p, len(row.Features), w)
		}
		if row.Label == "" {
			return nil, fmt.Errorf("%w: row %d has an empty label", ErrMalformedDataset, p)
		}
		for q, cell := range row.Features {
			if cell.IsNumeric() && math.IsNaN(cell.Float()) {
				return nil, fmt.Errorf("%w: missing value in column %q (row %d)", ErrMalformedDataset, headers[q], p)
			}
			if kinds[q] == -1 {
				kinds[q] = cell.Kind()
			} else if kinds[q] != cell.Kind() {
				return nil, fmt.Errorf("%w: column %q mixes %s and %s values (row %d)",
					ErrMalformedDataset, headers[q], kinds[q], cell.Kind(), p)
			}
		}
		ownRows[p] = Row{Features: append([]Value(nil), row.Features...), Label: row.Label}
	}

	return &Dataset{
		headers: append([]string(nil), headers...),
		kinds:   kinds,
		rows:    ownRows,
	}, nil
}

//Headers returns a copy of the feature column names.
func (ds *Dataset) Headers() []string {
	return append([]string(nil), ds.headers...)
}

//Header returns the name of the feature column q.
func (ds *Dataset) Header(q int) string {
	return ds.headers[q]
}

//ColumnKind returns the kind of values stored in the feature column q.
func (ds *Dataset) ColumnKind(q int) Kind {
	return ds.kinds[q]
}

//Width is the number of feature columns.
func (ds *Dataset) Width() int {
	return len(ds.headers)
}

//Height is the number of rows.
func (ds *Dataset) Height() int {
	return len(ds.rows)
}

//Rows returns the rows of the dataset. The slice must not be modified.
func (ds *Dataset) Rows() []Row {
	return ds.rows
}
