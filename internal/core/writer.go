package core

// writer.go persists datasets as delimited text.
//
// The encoding quotes every non-numeric field with '"' (doubling embedded
// quotes) and leaves ints and floats bare. The header is written only when the
// destination is new or empty, so several steps can append to one output file.
//
// encoding/csv cannot force quoting per field, so fields are encoded here.

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// AppendCSV appends ds to the file at path and returns the bytes written.
//
// A dataset with zero rows writes nothing and does not create the file.
// The header is written only if the file does not exist or is empty; otherwise
// rows are aligned to the existing header, which must name the same columns.
func AppendCSV(path string, ds *Dataset) (int64, error) {
	if ds.Empty() {
		return 0, nil
	}

	existing, err := readExistingHeader(path)
	if err != nil {
		return 0, fmt.Errorf("append %s: %w", path, err)
	}

	order := identityOrder(len(ds.Columns))
	writeHeader := existing == nil
	if !writeHeader {
		order, err = alignToHeader(existing, ds)
		if err != nil {
			return 0, fmt.Errorf("append %s: %w", path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("append %s: %w", path, err)
	}

	n, err := encode(f, ds, order, writeHeader)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("append %s: %w", path, err)
	}
	return n, nil
}

// EncodeCSV writes ds to w, with a header row when header is true.
func EncodeCSV(w io.Writer, ds *Dataset, header bool) (int64, error) {
	return encode(w, ds, identityOrder(len(ds.Columns)), header)
}

// RenderCSV returns ds encoded as a fresh document, header included.
// A dataset with zero rows renders as the empty string.
func RenderCSV(ds *Dataset) string {
	if ds.Empty() {
		return ""
	}
	var buf bytes.Buffer
	_, _ = EncodeCSV(&buf, ds, true)
	return buf.String()
}

func encode(w io.Writer, ds *Dataset, order []int, header bool) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	if header {
		fields := make([]string, len(order))
		for i, pos := range order {
			fields[i] = quoteField(ds.Columns[pos].Name)
		}
		bw.WriteString(strings.Join(fields, ","))
		bw.WriteByte('\n')
	}

	fields := make([]string, len(order))
	for _, r := range ds.Rows {
		for i, pos := range order {
			fields[i] = encodeValue(r.Values[pos])
		}
		bw.WriteString(strings.Join(fields, ","))
		bw.WriteByte('\n')
	}

	err := bw.Flush()
	return cw.n, err
}

// encodeValue writes numbers bare and everything else quoted. Null is "".
func encodeValue(v Value) string {
	if v.IsNumeric() {
		return v.String()
	}
	return quoteField(v.String())
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// readExistingHeader returns the header of an existing, non-empty file,
// or nil when the file is absent or empty.
func readExistingHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading existing header: %v", ErrFormat, err)
	}
	return header, nil
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
