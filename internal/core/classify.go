package core

// classify.go holds the row hygiene rules.
//
// Every rule partitions its input into kept and rejected rows and merges the
// rejected ones into the running RejectedSet. A rule only ever sees rows that
// survived the rules before it, so a row is recorded at most once.

import "fmt"

// Classifier is a hygiene rule: (Dataset, RejectedSet) -> (Dataset, RejectedSet).
type Classifier func(ds, rejected *Dataset) (*Dataset, *Dataset)

// RemoveRowsWithEmptyFields rejects rows holding at least one Null value.
// An empty string is a value, not Null, and passes this rule.
func RemoveRowsWithEmptyFields(ds, rejected *Dataset) (*Dataset, *Dataset) {
	kept, dirty := ds.partition(func(r Row) bool {
		for _, v := range r.Values {
			if v.IsNull() {
				return true
			}
		}
		return false
	})
	return kept, MergeRejected(rejected, dirty)
}

// RemoveRowsWithBlankStrings rejects rows where any non-Null value renders as
// an empty or whitespace-only string. "   " and "" are rejected, " x " is not.
func RemoveRowsWithBlankStrings(ds, rejected *Dataset) (*Dataset, *Dataset) {
	kept, dirty := ds.partition(func(r Row) bool {
		for _, v := range r.Values {
			if !v.IsNull() && IsBlank(v.String()) {
				return true
			}
		}
		return false
	})
	return kept, MergeRejected(rejected, dirty)
}

// RemoveDirtyRows applies the production rule chain: blank strings, then empty fields.
func RemoveDirtyRows(ds, rejected *Dataset) (*Dataset, *Dataset) {
	return Chain(RemoveRowsWithBlankStrings, RemoveRowsWithEmptyFields)(ds, rejected)
}

// Chain composes classifiers in order. Each one only sees the previous survivors.
func Chain(rules ...Classifier) Classifier {
	return func(ds, rejected *Dataset) (*Dataset, *Dataset) {
		for _, rule := range rules {
			ds, rejected = rule(ds, rejected)
		}
		return ds, rejected
	}
}

// ConvertToDates converts a column's values to dates, day-first.
// Rows whose value cannot be converted (Null included) move to the RejectedSet
// with their original values; with clean input the RejectedSet is unchanged.
func ConvertToDates(ds *Dataset, column string, rejected *Dataset) (*Dataset, *Dataset, error) {
	return convertColumn(ds, column, FieldDate, ToDate, rejected)
}

// ConvertToInt converts a column's numeric or numeric-as-text values to strict
// integers. Unconvertible rows are rejected the same way as in ConvertToDates.
func ConvertToInt(ds *Dataset, column string, rejected *Dataset) (*Dataset, *Dataset, error) {
	return convertColumn(ds, column, FieldInt, ToInteger, rejected)
}

func convertColumn(ds *Dataset, column string, to FieldType, conv func(Value) (Value, bool), rejected *Dataset) (*Dataset, *Dataset, error) {
	pos := ds.ColumnIndex(column)
	if pos < 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}

	kept := &Dataset{Columns: cloneColumns(ds.Columns)}
	dirty := &Dataset{Columns: cloneColumns(ds.Columns)}
	for _, r := range ds.Rows {
		v, ok := conv(r.Values[pos])
		if !ok {
			dirty.Rows = append(dirty.Rows, r)
			continue
		}
		values := make([]Value, len(r.Values))
		copy(values, r.Values)
		values[pos] = v
		kept.Rows = append(kept.Rows, Row{Index: r.Index, Values: values})
	}
	kept.Columns[pos].Type = to
	kept.Columns[pos].Nullable = false

	return kept, MergeRejected(rejected, dirty), nil
}
