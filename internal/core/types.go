package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// FieldType represents the declared data type of a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInt
	FieldFloat
	FieldDate
)

// String returns the lowercase name used in source definition files.
func (t FieldType) String() string {
	switch t {
	case FieldText:
		return "text"
	case FieldInt:
		return "int"
	case FieldFloat:
		return "float"
	case FieldDate:
		return "date"
	default:
		return "unknown"
	}
}

// ParseFieldType converts a source definition type name into a FieldType.
func ParseFieldType(s string) (FieldType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "string":
		return FieldText, true
	case "int", "integer":
		return FieldInt, true
	case "float", "number", "numeric":
		return FieldFloat, true
	case "date":
		return FieldDate, true
	default:
		return FieldText, false
	}
}

// FieldSpec declares the expected type of a single input column.
type FieldSpec struct {
	Name string    // Column header name (must match the input exactly)
	Type FieldType // Declared data type
}

// Column describes one column of a Dataset.
type Column struct {
	Name     string
	Type     FieldType
	Nullable bool // At least one value in the column is Null
}

// Kind identifies what a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindInt
	KindFloat
	KindDate
)

// Value is a single typed cell. The zero Value is Null.
type Value struct {
	Kind  Kind
	Text  string
	Int   int64
	Float float64
	Date  time.Time
}

// Null returns the absent/missing marker.
func Null() Value { return Value{} }

// Text returns a text value. An empty string is a value, not Null.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Float returns a floating-point value.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{Kind: KindDate, Date: t} }

// IsNull reports whether the value is the missing marker.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// IsNumeric reports whether the value is written unquoted.
func (v Value) IsNumeric() bool { return v.Kind == KindInt || v.Kind == KindFloat }

// String renders the value as text. Null renders as the empty string.
//
// Floats always carry a decimal point ("1.0"), so an int column promoted to
// float stays distinguishable from a true int column in the output.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return formatFloat(v.Float)
	case KindDate:
		return formatDate(v.Date)
	default:
		return ""
	}
}

// formatFloat switches to exponent form below 1e-4 and from 1e16 up.
func formatFloat(f float64) string {
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

func formatDate(t time.Time) string {
	h, m, s := t.Clock()
	if h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// Row is one record of a Dataset.
// Index is the position of the row in its source file and is never renumbered.
type Row struct {
	Index  int
	Values []Value
}

// Dataset is an ordered, in-memory table of rows sharing one column set.
type Dataset struct {
	Columns []Column
	Rows    []Row
}

// NewDataset creates an empty Dataset with the given columns.
func NewDataset(columns ...Column) *Dataset {
	return &Dataset{Columns: columns}
}

// NewRejectedSet creates an empty RejectedSet. It has no columns until the
// first batch of rejected rows is merged into it.
func NewRejectedSet() *Dataset {
	return &Dataset{}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Empty reports whether the dataset has zero rows.
func (d *Dataset) Empty() bool { return d.Len() == 0 }

// ColumnNames returns the column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// AppendRow adds a row whose Index is its position in the dataset.
// Intended for building datasets by hand; loaders set Index explicitly.
func (d *Dataset) AppendRow(values ...Value) {
	d.Rows = append(d.Rows, Row{Index: len(d.Rows), Values: values})
}

// Column returns the values of one column in row order.
func (d *Dataset) Column(name string) []Value {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]Value, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.Values[idx]
	}
	return out
}

// partition splits the dataset by a row predicate. Both results share the
// receiver's columns and keep relative row order.
func (d *Dataset) partition(reject func(Row) bool) (kept, rejected *Dataset) {
	kept = &Dataset{Columns: cloneColumns(d.Columns)}
	rejected = &Dataset{Columns: cloneColumns(d.Columns)}
	for _, r := range d.Rows {
		if reject(r) {
			rejected.Rows = append(rejected.Rows, r)
		} else {
			kept.Rows = append(kept.Rows, r)
		}
	}
	return kept, rejected
}

func cloneColumns(cols []Column) []Column {
	out := make([]Column, len(cols))
	copy(out, cols)
	return out
}
