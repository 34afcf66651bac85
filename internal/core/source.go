package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Source describes one known input file and how it flows through the pipeline.
type Source struct {
	Name         string      // Unique key: "pubmed_json"
	File         string      // File name looked up in the inbox: "pubmed.json"
	Output       string      // Output file name; defaults to File with a .csv suffix
	Fields       []FieldSpec // Declared columns
	DateColumns  []string    // Parsed as dates at load time (delimited text only)
	ConvertDates []string    // Converted to dates after load (record arrays)
	IntColumns   []string    // Coerced to strict integers after load
	PassThrough  bool        // Skip coercions and hygiene rules entirely
}

// OutputName returns the file name accepted and rejected rows are written to.
func (s Source) OutputName() string {
	if s.Output != "" {
		return s.Output
	}
	return strings.TrimSuffix(s.File, filepath.Ext(s.File)) + ".csv"
}

// LoadOptions returns the parser options for this source.
func (s Source) LoadOptions(policy NullableIntPolicy) LoadOptions {
	return LoadOptions{
		Fields:      s.Fields,
		DateColumns: s.DateColumns,
		NullableInt: policy,
	}
}

// Validate checks that the definition is usable.
func (s Source) Validate() error {
	var errs []string
	if s.Name == "" {
		errs = append(errs, "name is required")
	}
	if s.File == "" {
		errs = append(errs, "file is required")
	}
	if s.File != filepath.Base(s.File) {
		errs = append(errs, fmt.Sprintf("file %q must be a bare file name", s.File))
	}
	if s.Output != "" && s.Output != filepath.Base(s.Output) {
		errs = append(errs, fmt.Sprintf("output %q must be a bare file name", s.Output))
	}
	if len(errs) > 0 {
		return fmt.Errorf("source %q: %s", s.Name, strings.Join(errs, "; "))
	}
	return nil
}
