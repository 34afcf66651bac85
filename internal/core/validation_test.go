package core

import (
	"errors"
	"strings"
	"testing"
)

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{"id", "title", "Title", "id"})

	if idx["id"] != 0 {
		t.Errorf("idx[id] = %d, want 0 (first position)", idx["id"])
	}
	if idx["Title"] != 2 {
		t.Errorf("idx[Title] = %d, want 2 (exact match)", idx["Title"])
	}
	if len(idx) != 3 {
		t.Errorf("len(idx) = %d, want 3", len(idx))
	}
}

func TestValidateHeaders(t *testing.T) {
	header := []string{"id", "title", "date", "journal"}

	tests := []struct {
		name       string
		header     []string
		specs      []FieldSpec
		designated []string
		wantErr    error
		wantMsg    string
	}{
		{
			name:       "all present",
			header:     header,
			specs:      []FieldSpec{{Name: "id"}, {Name: "journal"}},
			designated: []string{"date"},
		},
		{
			name:       "missing field and date column",
			header:     header,
			specs:      []FieldSpec{{Name: "pmid"}},
			designated: []string{"published"},
			wantErr:    ErrMissingColumn,
			wantMsg:    "pmid, published",
		},
		{
			name:    "case sensitive",
			header:  header,
			specs:   []FieldSpec{{Name: "ID"}},
			wantErr: ErrMissingColumn,
		},
		{
			name:    "duplicate header",
			header:  []string{"id", "id"},
			wantErr: ErrFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := ValidateHeaders(tt.header, tt.specs, tt.designated)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateHeaders() error = %v", err)
				}
				if idx["journal"] != 3 {
					t.Errorf("idx[journal] = %d, want 3", idx["journal"])
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateHeaders() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}
