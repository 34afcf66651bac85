package core

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,title")...),
			expected: "id,title",
		},
		{
			name:     "file without BOM",
			input:    []byte("id,title"),
			expected: "id,title",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start is kept and sanitised",
			input:    []byte{0xEF, 0xBB, 'a'},
			expected: "?a",
		},
		{
			name:     "invalid byte replaced",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he?lo",
		},
		{
			name:     "UTF-16 little endian",
			input:    []byte{0xFF, 0xFE, 'i', 0, 'd', 0, ',', 0, 0xE9, 0},
			expected: "id,é",
		},
		{
			name:     "UTF-16 big endian",
			input:    []byte{0xFE, 0xFF, 0, 'i', 0, 'd'},
			expected: "id",
		},
		{
			name:     "valid multibyte untouched",
			input:    []byte("Böhm,ß"),
			expected: "Böhm,ß",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readInput(bytes.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("got %q, want %q", string(got), tt.expected)
			}
		})
	}
}

func TestCountingReader(t *testing.T) {
	cr := NewCountingReader(strings.NewReader("id,title\n1,a\n"))
	if _, err := readInput(cr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cr.BytesRead != 13 {
		t.Errorf("BytesRead = %d, want 13", cr.BytesRead)
	}
}
