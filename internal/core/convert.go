package core

// convert.go provides type conversion functions for raw cell text.
//
// These functions handle the messy reality of exported publication data:
//   - Mixed date formats within one column (EU numeric, ISO, "1 July 2021")
//   - Numbers written as text ("4", " 4 ", "4.0")
//   - Whitespace-only cells that should count as blank
//
// All ToPg* functions return pgtype values with Valid=false for empty/invalid input.
// The pgtype values are the nullable intermediate form; callers turn them into Values.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// integerRegex matches a plain integer literal.
var integerRegex = regexp.MustCompile(`^[+-]?\d+$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
var TwoDigitYearPivot = 20

// Date layouts split by year format for proper 2-digit year handling.
// Numeric layouts prefer day-first: "01/07/2021" is the 1st of July.
// Month-first layouts come last and only match when the day-first reading
// is impossible ("12/25/2021").
var (
	twoDigitYearLayouts = []string{
		"2/1/06", "02/01/06", "2-1-06", "2.1.06", "02.01.06",
		"1/2/06", "01/02/06", "1-2-06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006-1-2", "2006/01/02", "2006.01.02",
		"2/1/2006", "02/01/2006", "2-1-2006", "02-01-2006", "2.1.2006", "02.01.2006",
		"2 January 2006", "2 Jan 2006", "2-Jan-2006",
		"January 2, 2006", "Jan 2, 2006", "January 2 2006", "Jan 2 2006",
		"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02 15:04",
		"20060102",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006",
	}
)

// ToPgText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// IsBlank reports whether s is empty or consists only of whitespace.
// " x " is not blank.
func IsBlank(s string) bool {
	return !ToPgText(s).Valid
}

// ToPgDate converts a string to pgtype.Date.
// Supports mixed date formats, prefers day-first for ambiguous numeric dates
// and handles 2-digit years with a pivot.
func ToPgDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{Valid: false}
	}

	// Try 4-digit year layouts first (unambiguous)
	for _, layout := range fourDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	// Try 2-digit year layouts with pivot year adjustment
	currentYear := time.Now().Year()
	pivotYear := currentYear + TwoDigitYearPivot

	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{Valid: false}
}

// ParseDate parses a date cell into a Value.
// Returns false if s is blank or matches no known layout.
func ParseDate(s string) (Value, bool) {
	d := ToPgDate(s)
	if !d.Valid {
		return Null(), false
	}
	return Date(d.Time), true
}

// ToPgNumeric converts a string to pgtype.Numeric.
// Surrounding whitespace is ignored; anything else non-numeric is invalid.
func ToPgNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric

	// Numeric.Scan does not accept an exponent
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return pgtype.Numeric{Valid: false}
		}
		if err := n.ScanFloat64(pgtype.Float8{Float64: f, Valid: true}); err != nil {
			return pgtype.Numeric{Valid: false}
		}
		return n
	}

	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}

	return n
}

// ToPgInt8 converts a string to pgtype.Int8.
// Accepts integer literals and integral decimals ("4.0"); rejects "4.5".
func ToPgInt8(s string) pgtype.Int8 {
	s = strings.TrimSpace(s)
	n := ToPgNumeric(s)
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite {
		return pgtype.Int8{Valid: false}
	}

	// Int64Value truncates fractional digits, so the exponent has to be checked first
	if n.Exp < 0 && !integerRegex.MatchString(s) {
		f, err := n.Float64Value()
		if err != nil || !f.Valid || f.Float64 != math.Trunc(f.Float64) {
			return pgtype.Int8{Valid: false}
		}
	}

	i, err := n.Int64Value()
	if err != nil {
		return pgtype.Int8{Valid: false}
	}
	return i
}

// ParseInt parses an integer cell into a Value.
func ParseInt(s string) (Value, bool) {
	i := ToPgInt8(s)
	if !i.Valid {
		return Null(), false
	}
	return Int(i.Int64), true
}

// ParseFloat parses a numeric cell into a float Value.
func ParseFloat(s string) (Value, bool) {
	n := ToPgNumeric(s)
	if !n.Valid {
		return Null(), false
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return Null(), false
	}
	return Float(f.Float64), true
}

// ToInteger coerces an already-typed value to a strict integer.
// Text is parsed; floats must be integral; everything else fails.
func ToInteger(v Value) (Value, bool) {
	switch v.Kind {
	case KindInt:
		return v, true
	case KindFloat:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) || v.Float != math.Trunc(v.Float) {
			return Null(), false
		}
		if v.Float > math.MaxInt64 || v.Float < math.MinInt64 {
			return Null(), false
		}
		return Int(int64(v.Float)), true
	case KindText:
		return ParseInt(v.Text)
	default:
		return Null(), false
	}
}

// ToDate coerces an already-typed value to a date.
func ToDate(v Value) (Value, bool) {
	switch v.Kind {
	case KindDate:
		return v, true
	case KindText:
		return ParseDate(v.Text)
	default:
		return Null(), false
	}
}
