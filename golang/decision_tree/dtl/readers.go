package dtl

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

//ReadCSVDataset reads a table with a header line. Int and Float columns become numeric features,
//all other columns text ones. The last column is the label.
func ReadCSVDataset(source io.Reader) (*Dataset, error) {
	df := dataframe.ReadCSV(source, dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, df.Err)
	}

	h, w := df.Dims()
	if w < 2 {
		return nil, fmt.Errorf("%w: need at least one feature column and a label column, got %d columns", ErrMalformedDataset, w)
	}

	names := df.Names()
	headers := names[:w-1]
	rows := make([]Row, h)
	for p := range rows {
		rows[p].Features = make([]Value, w-1)
	}

	for q, name := range names {
		column := df.Col(name)
		numeric := column.Type() == series.Int || column.Type() == series.Float
		for p := 0; p < h; p++ {
			elem := column.Elem(p)
			if elem.IsNA() {
				return nil, fmt.Errorf("%w: missing value in column %q, row %d", ErrMalformedDataset, name, p)
			}
			if q == w-1 {
				if column.Type() == series.Float {
					rows[p].Label = strconv.FormatFloat(elem.Float(), 'g', -1, 64)
				} else {
					rows[p].Label = elem.String()
				}
				continue
			}
			if numeric {
				rows[p].Features[q] = Numeric(elem.Float())
			} else {
				rows[p].Features[q] = Text(elem.String())
			}
		}
	}

	return NewDataset(headers, rows)
}

//LoadCSVDataset reads a csv file with ReadCSVDataset.
func LoadCSVDataset(fileName string) (*Dataset, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSVDataset(f)
}

//ReadNpyDataset reads a numeric feature matrix and a target column stored as npy arrays.
//Target values are turned into text labels. When headers is nil columns are named f_0, f_1, ...
func ReadNpyDataset(featuresSource, targetSource io.Reader, headers []string) (*Dataset, error) {
	features, err := readNpy(featuresSource)
	if err != nil {
		return nil, err
	}
	target, err := readNpy(targetSource)
	if err != nil {
		return nil, err
	}

	h, w := features.Dims()
	targetH, targetW := target.Dims()
	if targetH != h {
		return nil, fmt.Errorf("%w: the target height %d is not equal to the features height %d", ErrMalformedDataset, targetH, h)
	}
	if targetW != 1 {
		return nil, fmt.Errorf("%w: the width of target should be 1 not %d", ErrMalformedDataset, targetW)
	}

	if headers == nil {
		headers = make([]string, w)
		for q := range headers {
			headers[q] = fmt.Sprintf("f_%d", q)
		}
	}

	rows := make([]Row, h)
	for p := 0; p < h; p++ {
		rows[p].Features = make([]Value, w)
		for q := 0; q < w; q++ {
			rows[p].Features[q] = Numeric(features.At(p, q))
		}
		rows[p].Label = strconv.FormatFloat(target.At(p, 0), 'g', -1, 64)
	}

	return NewDataset(headers, rows)
}

//LoadNpyDataset reads a pair of npy files with ReadNpyDataset.
func LoadNpyDataset(fileNameFeatures, fileNameTarget string, headers []string) (*Dataset, error) {
	featuresFile, err := os.Open(fileNameFeatures)
	if err != nil {
		return nil, err
	}
	defer featuresFile.Close()

	targetFile, err := os.Open(fileNameTarget)
	if err != nil {
		return nil, err
	}
	defer targetFile.Close()

	return ReadNpyDataset(featuresFile, targetFile, headers)
}

func readNpy(source io.Reader) (*mat.Dense, error) {
	r, err := npyio.NewReader(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}

	denseMat := &mat.Dense{}
	if err := r.Read(denseMat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}
	return denseMat, nil
}
