// Package core provides the normalization and diff logic for service inventory snapshots.
//
// # Error Codes Reference
//
// This file maps technical errors to user-friendly messages with codes for
// support reference. Codes are grouped by category:
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL004 - Missing column: A snapshot has no Name or Status column
//	         Action: Export the inventory with both Name and Status columns
//	         Match: errors.Is(err, ErrMissingColumn), "missing required column"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Unsupported format: The file type cannot be read
//	          Action: Upload a .csv, .tsv or .xlsx export
//	          Match: errors.Is(err, ErrUnsupportedFormat), "unsupported file format"
//
//	FILE002 - Invalid file: The file could not be parsed
//	          Action: Check the file is a valid CSV or Excel workbook
//	          Patterns: "parse csv", "open workbook", "read sheet"
//
//	FILE003 - File too large: The upload exceeds the size limit
//	          Action: Split or trim the export and try again
//	          Patterns: "request body too large", "file too large"
//
//	FILE004 - No file: A snapshot file was not provided
//	          Action: Attach both the current and previous snapshot
//	          Patterns: "no file provided"
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Source unavailable: The snapshot could not be read
//	         Action: Check the path or URL and your access to it
//	         Patterns: "no such file", "not found", "connection refused"
//
// # Comparison Errors (CMP001-CMP099)
//
//	CMP001 - System busy: Too many comparisons in progress
//	         Action: Please wait a moment and try again
//	         Match: errors.Is(err, ErrTooManyComparisons)
//
//	CMP002 - Request timeout: The comparison took too long
//	         Action: Try smaller snapshots or try again later
//	         Patterns: "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches; check the logs for the technical error.
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

var (
	msgMissingColumn = UserMessage{
		Message: "A snapshot is missing the Name or Status column",
		Action:  "Export the inventory with both Name and Status columns",
		Code:    "VAL004",
	}
	msgUnsupportedFormat = UserMessage{
		Message: "This file type cannot be read",
		Action:  "Upload a .csv, .tsv or .xlsx export",
		Code:    "FILE001",
	}
	msgBusy = UserMessage{
		Message: "Too many comparisons in progress",
		Action:  "Please wait a moment and try again",
		Code:    "CMP001",
	}
)

// sentinelMessages is checked first, with errors.Is.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrMissingColumn, msgMissingColumn},
	{ErrUnsupportedFormat, msgUnsupportedFormat},
	{ErrTooManyComparisons, msgBusy},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is matched case-insensitively with strings.Contains when no
// sentinel matches. The first matching pattern wins.
var errorPatterns = []errorPattern{
	{pattern: "missing required column", msg: msgMissingColumn},
	{pattern: "unsupported file format", msg: msgUnsupportedFormat},
	{
		pattern: "parse csv",
		msg: UserMessage{
			Message: "The file could not be parsed",
			Action:  "Check the file is a valid CSV or Excel workbook",
			Code:    "FILE002",
		},
	},
	{
		pattern: "open workbook",
		msg: UserMessage{
			Message: "The file could not be parsed",
			Action:  "Check the file is a valid CSV or Excel workbook",
			Code:    "FILE002",
		},
	},
	{
		pattern: "read sheet",
		msg: UserMessage{
			Message: "The file could not be parsed",
			Action:  "Check the file is a valid CSV or Excel workbook",
			Code:    "FILE002",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The upload exceeds the size limit",
			Action:  "Split or trim the export and try again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The upload exceeds the size limit",
			Action:  "Split or trim the export and try again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "A snapshot file was not provided",
			Action:  "Attach both the current and previous snapshot",
			Code:    "FILE004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The comparison took too long",
			Action:  "Try smaller snapshots or try again later",
			Code:    "CMP002",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The snapshot could not be read",
			Action:  "Check the path or URL and your access to it",
			Code:    "SRC001",
		},
	},
	{
		pattern: "not found",
		msg: UserMessage{
			Message: "The snapshot could not be read",
			Action:  "Check the path or URL and your access to it",
			Code:    "SRC001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "The snapshot could not be read",
			Action:  "Check the path or URL and your access to it",
			Code:    "SRC001",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Sentinel errors are matched with errors.Is, then known patterns in the
// error text; anything else maps to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
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

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
