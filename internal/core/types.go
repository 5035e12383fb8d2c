// Package core provides the business logic of the operations console.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"time"

	"github.com/JonMunkholm/opsconsole/internal/datatable"
	"github.com/JonMunkholm/opsconsole/internal/store"
	"golang.org/x/text/language"
)

// ScreenInfo contains display information about a screen.
type ScreenInfo struct {
	Key         string `json:"key"`   // Unique identifier: "users"
	Group       string `json:"group"` // Navigation group: "People", "Commerce"
	Label       string `json:"label"` // Display name: "Users"
	Description string `json:"description,omitempty"`
}

// Dataset is one consistent load of every record the screens show. It is
// replaced as a whole on refresh and never mutated afterwards.
type Dataset struct {
	Version   int64
	LoadedAt  time.Time
	Users     []store.User
	Merchants []store.Merchant
	Accounts  []store.Account
}

// Preset carries table preferences applied to a screen when it mounts.
// Zero fields leave the screen's own configuration untouched.
type Preset struct {
	PageSize             int
	PageSizeOptions      []int
	DefaultSort          string
	DefaultSortDirection datatable.SortDirection
	Locale               language.Tag
}

// Hooks receive the interaction events of a mounted grid.
type Hooks struct {
	OnRowClick        func(key string)
	OnAction          func(event datatable.ActionEvent)
	OnSelectionChange func(keys []string)
	OnPageChange      func(page int)
}

// Field is one labelled value of a row detail.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// RowDetail is what a row click opens.
type RowDetail struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Grid is a mounted table bound to a dataset.
type Grid interface {
	datatable.Controller

	// Reload replaces the rows with those of ds.
	Reload(ds *Dataset) error

	// Detail clicks the row and returns its detail view.
	Detail(key string) (RowDetail, error)

	// RenderRow renders one row regardless of the current page.
	RenderRow(key string) (datatable.RowView, bool)

	// Len returns the number of rows loaded.
	Len() int

	// Faults returns the accessor faults contained by the last recompute.
	Faults() int
}

// MountFunc mounts a new grid for a screen.
type MountFunc func(ds *Dataset, preset Preset, hooks Hooks) (Grid, error)

// ScreenDefinition contains everything needed to mount a screen.
type ScreenDefinition struct {
	Info  ScreenInfo
	Mount MountFunc
}

// SelectionOp names a selection change.
type SelectionOp string

const (
	SelectRow        SelectionOp = "select"
	DeselectRow      SelectionOp = "deselect"
	ToggleRow        SelectionOp = "toggle"
	SelectAllVisible SelectionOp = "select_visible"
	ClearSelection   SelectionOp = "clear"
)

// Query is a batch of view-state changes. Nil fields are left unchanged.
// Changes apply in a fixed order: page size, search, filter, sort, page.
type Query struct {
	PageSize      *int
	Search        *string
	Filter        *string // empty string clears the filter
	SortColumn    *string
	SortDirection *datatable.SortDirection
	Page          *int
}

// Empty reports whether the query changes nothing.
func (q Query) Empty() bool {
	return q.PageSize == nil && q.Search == nil && q.Filter == nil &&
		q.SortColumn == nil && q.SortDirection == nil && q.Page == nil
}

// NoticeLevel drives how a notice is presented.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a short message for the toast area.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// ActionResult is returned from an action invocation.
type ActionResult struct {
	Event    datatable.ActionEvent `json:"event"`
	Entry    ActionEntry           `json:"entry"`
	Notice   Notice                `json:"notice"`
	Snapshot datatable.Snapshot    `json:"snapshot"`
}

// SessionInfo identifies a mounted table.
type SessionInfo struct {
	ID        string     `json:"id"`
	Screen    ScreenInfo `json:"screen"`
	Version   int64      `json:"datasetVersion"`
	CreatedAt time.Time  `json:"createdAt"`
}

// View is a session together with its rendered snapshot.
type View struct {
	Session  SessionInfo        `json:"session"`
	Snapshot datatable.Snapshot `json:"snapshot"`
}
