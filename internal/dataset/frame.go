// Package dataset loads the fitness tracking table and exposes the column access and
// filtering the dashboard needs. The table is read once and never mutated; every
// filter produces a new Frame.
package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Frame is an immutable, typed view over the dataset rows.
type Frame struct {
	df dataframe.DataFrame
}

// Load reads the dataset at path using the source registered for its extension.
// Every failure is returned as a *LoadError.
func Load(path string, opt LoadOptions) (*Frame, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Err: ErrNotFound}
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	src, err := sourceFor(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	records, err := src.Records(path, opt)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	f, err := FromRecords(records)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return f, nil
}

// FromRecords builds a frame from header-first string records. Categorical columns
// are kept as strings and numeric columns parsed as floats (unparsable cells are NaN).
func FromRecords(records [][]string) (*Frame, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrNoRows)
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimPrefix(h, "\ufeff")
		header[i] = strings.TrimSpace(h)
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	if len(records) < 2 {
		return nil, ErrNoRows
	}

	rows := make([][]string, 0, len(records))
	rows = append(rows, header)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrMalformed, i+2, len(rec), len(header))
		}
		row := make([]string, len(rec))
		for j, cell := range rec {
			row[j] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}

	df := dataframe.LoadRecords(rows,
		dataframe.WithTypes(columnTypes()),
		dataframe.DetectTypes(false),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, df.Err)
	}
	return &Frame{df: df}, nil
}

func missingColumns(header []string) []string {
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[h] = true
	}
	var missing []string
	for _, c := range RequiredColumns() {
		if !seen[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return f.df.Nrow()
}

// Columns returns the header in file order.
func (f *Frame) Columns() []string {
	if f == nil {
		return nil
	}
	return f.df.Names()
}

// Has reports whether col exists.
func (f *Frame) Has(col string) bool {
	for _, c := range f.Columns() {
		if c == col {
			return true
		}
	}
	return false
}

// Strings returns the column values as strings. Unknown columns yield nil.
func (f *Frame) Strings(col string) []string {
	if f.Len() == 0 || !f.Has(col) {
		return nil
	}
	return f.df.Col(col).Records()
}

// Floats returns the column values as floats; missing and infinite cells are NaN.
func (f *Frame) Floats(col string) []float64 {
	if f.Len() == 0 || !f.Has(col) {
		return nil
	}
	vals := f.df.Col(col).Float()
	for i, v := range vals {
		if math.IsInf(v, 0) {
			vals[i] = math.NaN()
		}
	}
	return vals
}

// Rows returns up to n formatted data rows (all rows when n < 0), aligned with Columns.
func (f *Frame) Rows(n int) [][]string {
	total := f.Len()
	if n < 0 || n > total {
		n = total
	}
	if n == 0 {
		return nil
	}
	names := f.Columns()
	types := f.df.Types()
	cols := make([][]string, len(names))
	for i, name := range names {
		if types[i] == series.Float {
			vals := f.df.Col(name).Float()
			formatted := make([]string, n)
			for r := 0; r < n; r++ {
				formatted[r] = FormatFloat(vals[r])
			}
			cols[i] = formatted
			continue
		}
		cols[i] = f.df.Col(name).Records()[:n]
	}
	out := make([][]string, n)
	for r := 0; r < n; r++ {
		row := make([]string, len(names))
		for c := range names {
			row[c] = cols[c][r]
		}
		out[r] = row
	}
	return out
}

// FormatFloat renders whole numbers without a fraction and NaN as an empty cell.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatFloat(v, 'f', 0, 64)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
