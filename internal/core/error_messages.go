// Package core provides the business logic for cleaning and loading record files.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// A failed run ends with one log line carrying the code, so operators can
// look up what went wrong without reading the technical error first.
//
// # Directory Errors (DIR001-DIR099)
//
//	DIR001 - Missing directory: A required data directory does not exist
//	         Action: Create the inbox directory before running
//	         Match: ErrPrecondition
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Unsupported format: An input file has an unsupported suffix
//	          Action: Provide .csv or .json files only
//	          Match: ErrUnsupportedFormat
//
//	FILE002 - Invalid file: An input file could not be parsed
//	          Action: Check the file is well-formed CSV or a JSON array of flat records
//	          Match: ErrFormat
//
//	FILE003 - Header mismatch: Output file already has a different header
//	          Action: Make sure sources sharing an output declare the same columns
//	          Match: ErrHeaderMismatch
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Missing column: A declared column is missing from the input
//	         Action: Check that all declared columns are present in the file
//	         Match: ErrMissingColumn
//
//	VAL002 - Invalid date: A designated date column holds an unparsable value
//	         Action: Use DD/MM/YYYY, YYYY-MM-DD or "1 July 2021"
//	         Patterns: "invalid date"
//
//	VAL003 - Invalid number: A numeric column holds a non-numeric value
//	         Action: Remove non-numeric characters from numeric columns
//	         Patterns: "invalid number", "invalid integer"
//
// # Configuration Errors (CFG001-CFG099)
//
//	CFG001 - Invalid configuration: Environment or source file settings are invalid
//	         Action: Fix the reported settings and run again
//	         Patterns: "config load", "config validation", "source file"
//
// # Default Error (ERR000)
//
// Fallback when nothing specific matches.
//
// # Matching
//
// Sentinel errors are matched first with errors.Is; after that, patterns are
// matched case-insensitively using strings.Contains. The first match wins.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type sentinelMessage struct {
	target error
	msg    UserMessage
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// Date and number messages must win over the generic ErrFormat message,
// so they are checked as patterns before the sentinels.
var errorPatterns = []errorPattern{
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "A date column holds an unparsable value",
			Action:  `Use DD/MM/YYYY, YYYY-MM-DD or "1 July 2021"`,
			Code:    "VAL002",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "A numeric column holds a non-numeric value",
			Action:  "Remove non-numeric characters from numeric columns",
			Code:    "VAL003",
		},
	},
	{
		pattern: "invalid integer",
		msg: UserMessage{
			Message: "A numeric column holds a non-numeric value",
			Action:  "Remove non-numeric characters from numeric columns",
			Code:    "VAL003",
		},
	},
	{
		pattern: "config load",
		msg: UserMessage{
			Message: "Configuration is invalid",
			Action:  "Fix the reported settings and run again",
			Code:    "CFG001",
		},
	},
	{
		pattern: "config validation",
		msg: UserMessage{
			Message: "Configuration is invalid",
			Action:  "Fix the reported settings and run again",
			Code:    "CFG001",
		},
	},
	{
		pattern: "source file",
		msg: UserMessage{
			Message: "Source definition file is invalid",
			Action:  "Fix the reported settings and run again",
			Code:    "CFG001",
		},
	},
}

var sentinelMessages = []sentinelMessage{
	{
		target: ErrPrecondition,
		msg: UserMessage{
			Message: "A required data directory does not exist",
			Action:  "Create the inbox directory before running",
			Code:    "DIR001",
		},
	},
	{
		target: ErrUnsupportedFormat,
		msg: UserMessage{
			Message: "An input file has an unsupported format",
			Action:  "Provide .csv or .json files only",
			Code:    "FILE001",
		},
	},
	{
		target: ErrHeaderMismatch,
		msg: UserMessage{
			Message: "Output file already has a different header",
			Action:  "Make sure sources sharing an output declare the same columns",
			Code:    "FILE003",
		},
	},
	{
		target: ErrMissingColumn,
		msg: UserMessage{
			Message: "A declared column is missing from the input",
			Action:  "Check that all declared columns are present in the file",
			Code:    "VAL001",
		},
	},
	{
		target: ErrFormat,
		msg: UserMessage{
			Message: "An input file could not be parsed",
			Action:  "Check the file is well-formed CSV or a JSON array of flat records",
			Code:    "FILE002",
		},
	},
}

// defaultMessage is returned when no specific pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log for the technical error",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage if err is nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.target) {
			return sm.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error maps to a specific code rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
