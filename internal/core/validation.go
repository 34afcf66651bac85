package core

// validation.go checks column layouts.
//
// Validation happens at two points:
//  1. Load: the input header must contain every declared and designated column
//  2. Append: rows written to an existing output must match its header
//
// Row-level hygiene is not validation; it lives in classify.go and never fails.

import (
	"fmt"
	"strings"
)

// HeaderIndex maps column names to their position in a header row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Names are matched exactly; a duplicate name keeps its first position.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

// ValidateHeaders checks that every declared field and designated column exists.
// Returns the header index, or an error listing all missing columns.
func ValidateHeaders(header []string, specs []FieldSpec, designated []string) (HeaderIndex, error) {
	idx := MakeHeaderIndex(header)
	if len(idx) != len(header) {
		return nil, fmt.Errorf("%w: duplicate column names in header", ErrFormat)
	}

	var missing []string
	for _, spec := range specs {
		if _, ok := idx[spec.Name]; !ok {
			missing = append(missing, spec.Name)
		}
	}
	for _, name := range designated {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

// alignToHeader returns, for each header position, the dataset column that
// feeds it. The dataset must have exactly the header's column set.
func alignToHeader(header []string, ds *Dataset) ([]int, error) {
	if len(header) != len(ds.Columns) {
		return nil, fmt.Errorf("%w: existing %v, writing %v", ErrHeaderMismatch, header, ds.ColumnNames())
	}

	order := make([]int, len(header))
	for i, name := range header {
		pos := ds.ColumnIndex(name)
		if pos < 0 {
			return nil, fmt.Errorf("%w: existing %v, writing %v", ErrHeaderMismatch, header, ds.ColumnNames())
		}
		order[i] = pos
	}
	return order, nil
}
