package core

// MergeRejected appends a batch of rejected rows to the RejectedSet and
// returns the result. Prior rows come first, then the batch, both in their
// existing order; values and row indexes are not touched.
//
// An empty RejectedSet adopts the batch's columns. A batch carrying columns
// the set has not seen yet grows the column set; rows lacking a column hold
// Null there. Neither argument is modified.
func MergeRejected(rejected, batch *Dataset) *Dataset {
	if rejected == nil {
		rejected = NewRejectedSet()
	}
	if batch == nil || batch.Empty() {
		return rejected
	}

	out := &Dataset{Columns: cloneColumns(rejected.Columns)}
	for _, c := range batch.Columns {
		if out.ColumnIndex(c.Name) < 0 {
			out.Columns = append(out.Columns, Column{Name: c.Name, Type: c.Type})
		}
	}

	out.Rows = make([]Row, 0, len(rejected.Rows)+len(batch.Rows))
	out.Rows = appendAligned(out.Rows, out.Columns, rejected)
	out.Rows = appendAligned(out.Rows, out.Columns, batch)

	for i := range out.Columns {
		for _, r := range out.Rows {
			if r.Values[i].IsNull() {
				out.Columns[i].Nullable = true
				break
			}
		}
	}
	return out
}

// appendAligned copies src's rows into the target column layout.
func appendAligned(dst []Row, columns []Column, src *Dataset) []Row {
	pos := make([]int, len(columns))
	for i, c := range columns {
		pos[i] = src.ColumnIndex(c.Name)
	}

	for _, r := range src.Rows {
		values := make([]Value, len(columns))
		for i, p := range pos {
			if p >= 0 {
				values[i] = r.Values[p]
			}
		}
		dst = append(dst, Row{Index: r.Index, Values: values})
	}
	return dst
}
