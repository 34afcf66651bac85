// Package core provides the business logic for cleaning and loading record files.
//
// This package has no CLI or directory-layout dependencies. It can be used by
// the command line, other frontends or tests without modification.
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Dataset: an ordered in-memory table. Every [Column] has a declared
//     [FieldType] and every cell is a typed [Value]; Null is its own kind.
//   - Source: a known input file, its declared columns and the coercions
//     applied to it. Sources are kept in a [Registry] in processing order.
//   - Hygiene rules: [Classifier] functions that split a Dataset into kept
//     and rejected rows. Rejected rows accumulate with [MergeRejected].
//
// # Loading
//
// [LoadFile] picks a parser from the file suffix:
//
//	ds, n, err := core.LoadFile(path, core.FormatDelimited, core.LoadOptions{
//	    Fields:      []core.FieldSpec{{Name: "id", Type: core.FieldInt}},
//	    DateColumns: []string{"date"},
//	})
//
// Declared types are enforced once at load. A cell that does not fit its
// column is a [ValidationError] and fails the load. An int column holding
// Null values is handled by the configured [NullableIntPolicy].
//
// Numeric dates are read day-first: "01/07/2021" is the 1st of July.
//
// # Cleaning
//
// [ConvertToDates] and [ConvertToInt] coerce a column after load. Rows that
// cannot be coerced are rejected with their original values rather than
// failing the run. [RemoveDirtyRows] then rejects rows with blank strings
// followed by rows with missing values.
//
// # Writing
//
// [AppendCSV] appends to an output file. Text and dates are quoted, numbers
// are not, and the header is only written to a new or empty file.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - DIR001: Missing data directory
//   - FILE001-FILE003: File errors (suffix, parse, header mismatch)
//   - VAL001-VAL003: Validation errors (missing columns, dates, numbers)
//   - CFG001: Configuration errors
package core
