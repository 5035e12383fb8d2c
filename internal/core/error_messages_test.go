package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/opsconsole/internal/datatable"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "unknown screen",
			err:         fmt.Errorf("%w: billing", ErrScreenNotFound),
			wantCode:    "TBL001",
			wantMessage: "Screen not found",
		},
		{
			name:        "page size outside options",
			err:         fmt.Errorf("%w: 7", datatable.ErrInvalidPageSize),
			wantCode:    "TBL002",
			wantMessage: "That page size is not available",
		},
		{
			name:        "unknown filter value",
			err:         datatable.ErrUnknownFilterValue,
			wantCode:    "TBL003",
			wantMessage: "That filter is not available",
		},
		{
			name:        "sort on non-sortable column",
			err:         fmt.Errorf("%w: owner", datatable.ErrInvalidSortColumn),
			wantCode:    "TBL004",
			wantMessage: "This table cannot be sorted by that column",
		},
		{
			name:        "configuration error wins over wrapped sentinel",
			err:         fmt.Errorf("%w: default page size 7 not in options", datatable.ErrInvalidPagination),
			wantCode:    "TBL005",
			wantMessage: "This screen is misconfigured",
		},
		{
			name:        "expired session",
			err:         ErrSessionNotFound,
			wantCode:    "SES001",
			wantMessage: "This table was closed after a period of inactivity",
		},
		{
			name:        "session cap",
			err:         ErrTooManySessions,
			wantCode:    "SES002",
			wantMessage: "Too many tables are open",
		},
		{
			name:        "selection disabled",
			err:         datatable.ErrSelectionDisabled,
			wantCode:    "SEL001",
			wantMessage: "Rows in this table cannot be selected",
		},
		{
			name:        "export limiter",
			err:         ErrTooManyExports,
			wantCode:    "EXP001",
			wantMessage: "The system is busy with other exports",
		},
		{
			name:        "duplicate row key",
			err:         fmt.Errorf("screen users: %w: usr_01", datatable.ErrDuplicateRowKey),
			wantCode:    "DAT001",
			wantMessage: "The data for this screen contains duplicate records",
		},
		{
			name:        "unreadable row key",
			err:         fmt.Errorf("screen users: %w: row 3", datatable.ErrInvalidRowKey),
			wantCode:    "DAT002",
			wantMessage: "The data for this screen contains a record without an identifier",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New("dial tcp: connection refused"),
			wantCode:    "DB004",
			wantMessage: "Unable to connect to database",
		},
		{
			name:        "cancelled request",
			err:         context.Canceled,
			wantCode:    "UPL004",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("ROW NOT FOUND: usr_99"),
			wantCode:    "TBL006",
			wantMessage: "That record is no longer in the table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(datatable.ErrRowNotFound)

	expected := "That record is no longer in the table (Code: TBL006). Refresh the table and try again"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  datatable.ErrActionNotAvailable,
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := fmt.Errorf("invoke: %w", datatable.ErrUnknownAction)
		userErr := NewUserError(techErr)

		if userErr.Error() != "Unknown action" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}

		if !errors.Is(userErr, datatable.ErrUnknownAction) {
			t.Error("Unwrap() should return original error")
		}
	})
}
