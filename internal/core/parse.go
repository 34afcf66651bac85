package core

// parse.go loads whole datasets from delimited text or record arrays.
//
// Delimited text is read with encoding/csv: the first record is the header,
// an empty cell is Null, and every cell is parsed once into its column's
// declared type. Any cell that does not fit its type fails the whole load.
//
// Record arrays are one JSON array of flat objects. Values are taken as they
// come: strings stay text (dates are converted later, explicitly), numbers
// become int or float and null becomes Null.

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Format identifies an input file format.
type Format string

const (
	FormatDelimited Format = "delimited-text"
	FormatRecords   Format = "record-array"
)

// FormatFromPath derives the input format from a file suffix.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatDelimited, nil
	case ".json":
		return FormatRecords, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// NullableIntPolicy decides what happens to an int column that holds Null values.
type NullableIntPolicy int

const (
	// PromoteNullableInt turns the column into a float column ("4" is written "4.0").
	PromoteNullableInt NullableIntPolicy = iota
	// KeepNullableInt keeps the column as int.
	KeepNullableInt
)

// ParseNullableIntPolicy converts a config value ("float" or "int").
func ParseNullableIntPolicy(s string) (NullableIntPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "float":
		return PromoteNullableInt, true
	case "int":
		return KeepNullableInt, true
	default:
		return PromoteNullableInt, false
	}
}

// LoadOptions controls how a dataset is parsed.
type LoadOptions struct {
	Fields      []FieldSpec       // Declared columns; undeclared columns load as text
	DateColumns []string          // Columns parsed as dates (delimited text only)
	NullableInt NullableIntPolicy // Applied once after all rows are read
}

// LoadFile loads a dataset from path and reports the number of bytes read.
func LoadFile(path string, format Format, opts LoadOptions) (*Dataset, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	cr := NewCountingReader(f)

	var ds *Dataset
	switch format {
	case FormatDelimited:
		ds, err = LoadDelimited(cr, opts)
	case FormatRecords:
		ds, err = LoadRecords(cr, opts)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, cr.BytesRead, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return ds, cr.BytesRead, nil
}

// LoadDelimited parses comma-separated text with a header row.
func LoadDelimited(r io.Reader, opts LoadOptions) (*Dataset, error) {
	data, err := readInput(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(data))

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	columns, err := declareColumns(header, opts)
	if err != nil {
		return nil, err
	}

	ds := NewDataset(columns...)
	for i := 0; ; i++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		line, _ := cr.FieldPos(0)

		values := make([]Value, len(columns))
		for j, col := range columns {
			v, err := parseCell(record[j], col.Type)
			if err != nil {
				return nil, &ValidationError{Line: line, Field: col.Name, Value: record[j], Message: err.Error()}
			}
			values[j] = v
		}
		ds.Rows = append(ds.Rows, Row{Index: i, Values: values})
	}

	finalizeColumns(ds, opts.NullableInt)
	return ds, nil
}

// declareColumns builds the column list of a delimited file from its header.
func declareColumns(header []string, opts LoadOptions) ([]Column, error) {
	idx, err := ValidateHeaders(header, opts.Fields, opts.DateColumns)
	if err != nil {
		return nil, err
	}

	columns := make([]Column, len(header))
	for i, name := range header {
		columns[i] = Column{Name: name, Type: FieldText}
	}
	for _, spec := range opts.Fields {
		columns[idx[spec.Name]].Type = spec.Type
	}
	for _, name := range opts.DateColumns {
		columns[idx[name]].Type = FieldDate
	}

	return columns, nil
}

// parseCell converts one delimited cell. Only the exact empty string is Null.
func parseCell(raw string, t FieldType) (Value, error) {
	if raw == "" {
		return Null(), nil
	}

	switch t {
	case FieldInt:
		if v, ok := ParseInt(raw); ok {
			return v, nil
		}
		return Null(), errors.New("invalid integer")
	case FieldFloat:
		if v, ok := ParseFloat(raw); ok {
			return v, nil
		}
		return Null(), errors.New("invalid number")
	case FieldDate:
		if v, ok := ParseDate(raw); ok {
			return v, nil
		}
		return Null(), errors.New("invalid date")
	default:
		return Text(raw), nil
	}
}

// LoadRecords parses a JSON array of flat objects, keeping key order of first appearance.
func LoadRecords(r io.Reader, opts LoadOptions) (*Dataset, error) {
	data, err := readInput(r)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var names []string
	positions := make(map[string]int)
	var records []map[int]Value

	for n := 1; dec.More(); n++ {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}

		rec := make(map[int]Value)
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("%w: record %d: %v", ErrFormat, n, err)
			}
			key := tok.(string) // object keys are always strings

			tok, err = dec.Token()
			if err != nil {
				return nil, fmt.Errorf("%w: record %d: %v", ErrFormat, n, err)
			}
			v, err := jsonValue(tok)
			if err != nil {
				return nil, &ValidationError{Line: n, Field: key, Message: err.Error()}
			}

			pos, ok := positions[key]
			if !ok {
				pos = len(names)
				positions[key] = pos
				names = append(names, key)
			}
			rec[pos] = v
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		records = append(records, rec)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}

	if _, err := ValidateHeaders(names, opts.Fields, nil); err != nil {
		return nil, err
	}

	ds := NewDataset()
	for i, rec := range records {
		values := make([]Value, len(names))
		for pos, v := range rec {
			values[pos] = v
		}
		ds.Rows = append(ds.Rows, Row{Index: i, Values: values})
	}
	for pos, name := range names {
		ds.Columns = append(ds.Columns, Column{Name: name, Type: recordColumnType(ds, pos)})
	}

	finalizeColumns(ds, opts.NullableInt)
	return ds, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: expected %q: %v", ErrFormat, want, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrFormat, want, tok)
	}
	return nil
}

func jsonValue(tok json.Token) (Value, error) {
	switch v := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return Text(v), nil
	case bool:
		if v {
			return Text("True"), nil
		}
		return Text("False"), nil
	case json.Number:
		s := v.String()
		if integerRegex.MatchString(s) {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return Int(i), nil
			}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Null(), errors.New("invalid number")
		}
		return Float(f), nil
	case json.Delim:
		return Null(), errors.New("nested values are not supported")
	default:
		return Null(), fmt.Errorf("unexpected token %v", v)
	}
}

// recordColumnType derives a record-array column's type from its values.
// Ints mixed with floats widen to float; anything mixed with text is text.
func recordColumnType(ds *Dataset, pos int) FieldType {
	var ints, floats, texts int
	for _, r := range ds.Rows {
		switch r.Values[pos].Kind {
		case KindInt:
			ints++
		case KindFloat:
			floats++
		case KindText:
			texts++
		}
	}

	switch {
	case texts > 0 || ints+floats == 0:
		return FieldText
	case floats > 0:
		for i := range ds.Rows {
			if v := ds.Rows[i].Values[pos]; v.Kind == KindInt {
				ds.Rows[i].Values[pos] = Float(float64(v.Int))
			}
		}
		return FieldFloat
	default:
		return FieldInt
	}
}

// finalizeColumns records nullability and applies the nullable-int policy.
func finalizeColumns(ds *Dataset, policy NullableIntPolicy) {
	for c := range ds.Columns {
		nullable := false
		for _, r := range ds.Rows {
			if r.Values[c].IsNull() {
				nullable = true
				break
			}
		}
		ds.Columns[c].Nullable = nullable

		if nullable && policy == PromoteNullableInt && ds.Columns[c].Type == FieldInt {
			ds.Columns[c].Type = FieldFloat
			for _, r := range ds.Rows {
				if v := r.Values[c]; v.Kind == KindInt {
					r.Values[c] = Float(float64(v.Int))
				}
			}
		}
	}
}
