package main

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. Patterns are matched with strings.Contains and the first match
// wins, so specific patterns come before general ones.
//
// Codes are grouped by category:
//
//	DB001-DB099   database connection and query errors
//	ED001-ED099   editor launch errors
//	FILE001-...   file handling errors
//	JSON001-...   JSON Lines input errors
//	ERR000        fallback for anything unmatched
var errorPatterns = []errorPattern{
	// =========================================================================
	// Database Errors (DB001-DB006)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the database",
			Action:  "Check that the server is running and DATABASE_URL points at it",
			Code:    "DB001",
		},
	},
	{
		pattern: "password authentication",
		msg: UserMessage{
			Message: "Database rejected the credentials",
			Action:  "Check the user and password in DATABASE_URL",
			Code:    "DB002",
		},
	},
	{
		pattern: "sasl",
		msg: UserMessage{
			Message: "Database rejected the credentials",
			Action:  "Check the user and password in DATABASE_URL",
			Code:    "DB002",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "Database host could not be resolved",
			Action:  "Check the host name in DATABASE_URL",
			Code:    "DB003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The query timed out",
			Action:  "Narrow the query or raise DB_QUERY_TIMEOUT",
			Code:    "DB004",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The query timed out",
			Action:  "Narrow the query or raise DB_QUERY_TIMEOUT",
			Code:    "DB004",
		},
	},
	{
		pattern: "does not exist",
		msg: UserMessage{
			Message: "The query references a table or column that does not exist",
			Action:  "Check the table and column names in the query",
			Code:    "DB005",
		},
	},
	{
		pattern: "syntax error",
		msg: UserMessage{
			Message: "The query is not valid SQL",
			Action:  "Check the query syntax",
			Code:    "DB006",
		},
	},

	// =========================================================================
	// Editor Errors (ED001-ED002)
	// =========================================================================
	{
		pattern: "executable file not found",
		msg: UserMessage{
			Message: "The editor command was not found",
			Action:  "Set VISUAL or EDITOR to an installed editor, or pass --editor",
			Code:    "ED001",
		},
	},
	{
		pattern: "exit status",
		msg: UserMessage{
			Message: "The editor exited with an error",
			Action:  "No changes were applied; run the command again to retry",
			Code:    "ED002",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE003)
	// =========================================================================
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "The file could not be accessed",
			Action:  "Check the file permissions",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The file does not exist",
			Action:  "Check the file path",
			Code:    "FILE002",
		},
	},
	{
		pattern: "byte limit",
		msg: UserMessage{
			Message: "The edited file is too large",
			Action:  "Raise TABED_MAX_FILE_SIZE if the file really should be that big",
			Code:    "FILE003",
		},
	},

	// =========================================================================
	// JSON Lines Errors (JSON001-JSON002)
	// =========================================================================
	{
		pattern: "invalid json",
		msg: UserMessage{
			Message: "A line in the input is not valid JSON",
			Action:  "Each line must be a complete JSON object",
			Code:    "JSON001",
		},
	},
	{
		pattern: "not a json object",
		msg: UserMessage{
			Message: "A line in the input is not a JSON object",
			Action:  "Arrays and bare values are not supported; use one object per line",
			Code:    "JSON002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Re-run with TABED_LOG_LEVEL=debug for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
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

// IsUserFacing reports whether an error matches a known pattern (not the
// generic ERR000 fallback). Use it to decide whether to print the mapped
// message alongside the raw error.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}
