package core

// # Error Codes Reference
//
// User-facing messages carry a code that users can quote to support.
// Codes are grouped by category:
//
// # Table Errors (TBL001-TBL099)
//
//	TBL001 - Screen not found                Patterns: "screen not found"
//	TBL002 - Invalid page                    Patterns: "invalid page size", "invalid page index"
//	TBL003 - Invalid filter                  Patterns: "unknown filter value", "filter is disabled"
//	TBL004 - Invalid sort                    Patterns: "invalid sort column"
//	TBL005 - Broken screen configuration     Patterns: "table configuration"
//	TBL006 - Row not found                   Patterns: "row not found"
//	TBL007 - Action unavailable              Patterns: "action not available", "unknown action"
//	TBL008 - Search disabled                 Patterns: "search is disabled"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Session expired                 Patterns: "session expired"
//	SES002 - Too many sessions               Patterns: "too many sessions"
//
// # Selection Errors (SEL001-SEL099)
//
//	SEL001 - Selection disabled              Patterns: "selection disabled"
//	SEL002 - Unknown selection operation     Patterns: "unknown selection operation"
//
// # Export and Data Errors
//
//	EXP001 - Too many exports                Patterns: "too many exports"
//	DAT001 - Duplicate row key               Patterns: "duplicate row key"
//	DAT002 - Unreadable row key              Patterns: "invalid row key"
//
// # Database Errors (DB004-DB006)
//
//	DB004 - Connection refused               Patterns: "connection refused"
//	DB005 - Connection reset                 Patterns: "connection reset"
//	DB006 - Timeout                          Patterns: "timeout"
//
// # Request Errors (UPL004-UPL005)
//
//	UPL004 - Request cancelled               Patterns: "context canceled"
//	UPL005 - Request timeout                 Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests              Patterns: "rate limit"
//
// ERR000 is the fallback when nothing matches; the technical error is in
// the application log.
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Configuration errors wrap other sentinels, so they match first.
	{
		pattern: "table configuration",
		msg: UserMessage{
			Message: "This screen is misconfigured",
			Action:  "Please contact support",
			Code:    "TBL005",
		},
	},
	{
		pattern: "duplicate row key",
		msg: UserMessage{
			Message: "The data for this screen contains duplicate records",
			Action:  "Please refresh and contact support if it persists",
			Code:    "DAT001",
		},
	},
	{
		pattern: "invalid row key",
		msg: UserMessage{
			Message: "The data for this screen contains a record without an identifier",
			Action:  "Please refresh and contact support if it persists",
			Code:    "DAT002",
		},
	},

	// =========================================================================
	// Table Errors (TBL001-TBL008)
	// =========================================================================
	{
		pattern: "screen not found",
		msg: UserMessage{
			Message: "Screen not found",
			Action:  "Check the address or pick a screen from the menu",
			Code:    "TBL001",
		},
	},
	{
		pattern: "invalid page size",
		msg: UserMessage{
			Message: "That page size is not available",
			Action:  "Choose one of the offered page sizes",
			Code:    "TBL002",
		},
	},
	{
		pattern: "invalid page index",
		msg: UserMessage{
			Message: "That page does not exist",
			Action:  "Go back to the first page",
			Code:    "TBL002",
		},
	},
	{
		pattern: "unknown filter value",
		msg: UserMessage{
			Message: "That filter is not available",
			Action:  "Choose one of the offered filter options",
			Code:    "TBL003",
		},
	},
	{
		pattern: "filter is disabled",
		msg: UserMessage{
			Message: "This table cannot be filtered",
			Action:  "Use search instead",
			Code:    "TBL003",
		},
	},
	{
		pattern: "invalid sort column",
		msg: UserMessage{
			Message: "This table cannot be sorted by that column",
			Action:  "Choose one of the offered sort options",
			Code:    "TBL004",
		},
	},
	{
		pattern: "row not found",
		msg: UserMessage{
			Message: "That record is no longer in the table",
			Action:  "Refresh the table and try again",
			Code:    "TBL006",
		},
	},
	{
		pattern: "action not available",
		msg: UserMessage{
			Message: "That action is not available for this record",
			Action:  "Refresh the table to see current actions",
			Code:    "TBL007",
		},
	},
	{
		pattern: "unknown action",
		msg: UserMessage{
			Message: "Unknown action",
			Action:  "Refresh the table to see current actions",
			Code:    "TBL007",
		},
	},
	{
		pattern: "search is disabled",
		msg: UserMessage{
			Message: "This table cannot be searched",
			Action:  "Use the filter instead",
			Code:    "TBL008",
		},
	},

	// =========================================================================
	// Session and Selection Errors
	// =========================================================================
	{
		pattern: "session expired",
		msg: UserMessage{
			Message: "This table was closed after a period of inactivity",
			Action:  "Reload the page to open it again",
			Code:    "SES001",
		},
	},
	{
		pattern: "too many sessions",
		msg: UserMessage{
			Message: "Too many tables are open",
			Action:  "Close a table and try again",
			Code:    "SES002",
		},
	},
	{
		pattern: "selection disabled",
		msg: UserMessage{
			Message: "Rows in this table cannot be selected",
			Action:  "Open the row instead",
			Code:    "SEL001",
		},
	},
	{
		pattern: "unknown selection operation",
		msg: UserMessage{
			Message: "Unknown selection change",
			Action:  "Please try again",
			Code:    "SEL002",
		},
	},
	{
		pattern: "too many exports",
		msg: UserMessage{
			Message: "The system is busy with other exports",
			Action:  "Please wait a moment and try again",
			Code:    "EXP001",
		},
	},

	// =========================================================================
	// Database Connection Errors (DB004-DB006)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},

	// =========================================================================
	// Request Errors (UPL004-UPL005)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Narrow the search or check your connection",
			Code:    "UPL005",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first pattern match, or the ERR000 fallback.
//
// Example:
//
//	msg := MapError(fmt.Errorf("sort: %w", datatable.ErrInvalidSortColumn))
//	// msg.Code == "TBL004"
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

// IsUserFacing reports whether err matches a known pattern rather than the
// generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
