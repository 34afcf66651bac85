package core

// readers.go prepares raw input bytes before parsing.
//
// Datasets are loaded whole, so the input is read into memory once and
// cleaned there:
//
//   - UTF-16 input with a byte order mark ("Unicode text" exports) is decoded
//   - the UTF-8 BOM (0xEF 0xBB 0xBF) added by Windows programs is removed
//   - invalid UTF-8 sequences are replaced with '?'
//
// CountingReader records how many bytes were consumed, for logging.

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// readInput reads the whole input, strips a leading BOM and sanitises invalid UTF-8.
func readInput(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(data, utf16LEBOM):
		data, err = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
	case bytes.HasPrefix(data, utf16BEBOM):
		data, err = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decoding UTF-16: %v", ErrFormat, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	return bytes.ToValidUTF8(data, []byte("?")), nil
}
