package loader

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// readWorkbookColumns returns the first `width` columns of the first sheet as
// numbers. A first row that does not parse is taken as a header; any later
// row that does not parse is an error. Rows with every cell empty are
// skipped.
func readWorkbookColumns(path string, width int) ([][]float64, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open workbook %s", path)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q of %s", sheet, path)
	}

	cols := make([][]float64, width)
	for i, row := range rows {
		if blankRow(row, width) {
			continue
		}
		values, err := parseRow(row, width)
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, &FormatError{Line: i + 1, Reason: fmt.Sprintf("invalid row in sheet %q", sheet), Err: err}
		}
		for c, v := range values {
			cols[c] = append(cols[c], v)
		}
	}
	if len(cols[0]) == 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("sheet %q of %s holds no numeric rows", sheet, path)}
	}
	return cols, nil
}

func blankRow(row []string, width int) bool {
	for c := 0; c < width && c < len(row); c++ {
		if row[c] != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string, width int) ([]float64, error) {
	if len(row) < width {
		return nil, fmt.Errorf("expected %d cells, found %d", width, len(row))
	}
	values := make([]float64, width)
	for c := 0; c < width; c++ {
		v, err := parseNumber(row[c])
		if err != nil {
			return nil, err
		}
		values[c] = v
	}
	return values, nil
}

func readWorkbookSample(path string) ([]float64, error) {
	cols, err := readWorkbookColumns(path, 1)
	if err != nil {
		return nil, err
	}
	return cols[0], nil
}

func readWorkbookPairs(path string) (x, y []float64, err error) {
	cols, err := readWorkbookColumns(path, 2)
	if err != nil {
		return nil, nil, err
	}
	return cols[0], cols[1], nil
}
