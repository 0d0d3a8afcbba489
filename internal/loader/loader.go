// Package loader parses the small numeric datasets consumed by the statlab
// analyses.
//
// Two text layouts are understood. A sample file starts with the number of
// values followed by one value per line:
//
//	5
//	72
//	85
//	...
//
// A pairs file starts with a header whose first run of digits is the number
// of points, followed by whitespace separated x/y rows. Commas are accepted
// as decimal separators:
//
//	M = 3
//	1,5	2
//	2	4,25
//	3	6
//
// Both layouts can also be supplied as .xlsx workbooks.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FormatError reports input that does not match the expected layout.
type FormatError struct {
	Line   int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "format error: " + msg
}

func (e *FormatError) Unwrap() error { return e.Err }

var headerDigits = regexp.MustCompile(`\d+`)

// maxPrealloc caps the capacity reserved from a declared count; the count
// comes from the file and is not trusted until the rows are read.
const maxPrealloc = 4096

// ReadSample reads a count-prefixed list of numbers. Blank lines before the
// count are skipped; lines after the declared count are ignored.
func ReadSample(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	header, line := "", 0
	for header == "" && sc.Scan() {
		line++
		header = strings.TrimSpace(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if header == "" {
		return nil, &FormatError{Reason: "missing count header"}
	}
	m, err := strconv.Atoi(header)
	if err != nil {
		return nil, &FormatError{Line: line, Reason: "invalid count header", Err: err}
	}
	if m < 1 {
		return nil, &FormatError{Line: line, Reason: fmt.Sprintf("count must be positive, got %d", m)}
	}

	data := make([]float64, 0, min(m, maxPrealloc))
	for len(data) < m && sc.Scan() {
		line++
		v, err := parseNumber(sc.Text())
		if err != nil {
			return nil, &FormatError{Line: line, Reason: "invalid value", Err: err}
		}
		data = append(data, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(data) != m {
		return nil, &FormatError{Reason: fmt.Sprintf("expected %d values, read %d", m, len(data))}
	}
	return data, nil
}

// ReadPairs reads up to M x/y points, where M is the first number found in the
// header line. Blank, short and unparsable rows are skipped.
func ReadPairs(r io.Reader) (x, y []float64, err error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, nil, err
		}
		return nil, nil, &FormatError{Reason: "missing header"}
	}
	digits := headerDigits.FindString(sc.Text())
	if digits == "" {
		return nil, nil, &FormatError{Line: 1, Reason: "header does not contain a point count"}
	}
	m, err := strconv.Atoi(digits)
	if err != nil {
		return nil, nil, &FormatError{Line: 1, Reason: "invalid point count", Err: err}
	}

	x = make([]float64, 0, min(m, maxPrealloc))
	y = make([]float64, 0, min(m, maxPrealloc))
	for len(x) < m && sc.Scan() {
		parts := strings.Fields(sc.Text())
		if len(parts) < 2 {
			continue
		}
		xi, err := parseNumber(parts[0])
		if err != nil {
			continue
		}
		yi, err := parseNumber(parts[1])
		if err != nil {
			continue
		}
		x = append(x, xi)
		y = append(y, yi)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	if len(x) != m {
		return nil, nil, &FormatError{Reason: fmt.Sprintf("expected %d points, read %d", m, len(x))}
	}
	return x, y, nil
}

// LoadSample reads a sample from path, dispatching on the file extension.
func LoadSample(path string) ([]float64, error) {
	if isWorkbook(path) {
		return readWorkbookSample(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := ReadSample(f)
	return data, errors.Wrapf(err, "load %s", path)
}

// LoadPairs reads paired x/y points from path, dispatching on the file
// extension.
func LoadPairs(path string) (x, y []float64, err error) {
	if isWorkbook(path) {
		return readWorkbookPairs(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	x, y, err = ReadPairs(f)
	return x, y, errors.Wrapf(err, "load %s", path)
}

func isWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}
