package datatable

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// SortNone indicates no sorting.
	SortNone SortDirection = iota
	// SortAscending indicates ascending sort order.
	SortAscending
	// SortDescending indicates descending sort order.
	SortDescending
)

// String returns the short form used in URLs and JSON: "none", "asc" or "desc".
func (d SortDirection) String() string {
	switch d {
	case SortNone:
		return "none"
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d SortDirection) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *SortDirection) UnmarshalText(b []byte) error {
	dir, ok := ParseSortDirection(string(b))
	if !ok {
		return fmt.Errorf("invalid sort direction %q", b)
	}
	*d = dir
	return nil
}

// ParseSortDirection parses "asc", "desc" or "none" (and their long forms).
// The empty string parses as SortNone.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, true
	case "asc", "ascending":
		return SortAscending, true
	case "desc", "descending":
		return SortDescending, true
	default:
		return SortNone, false
	}
}

// Variant tells the renderer how to present an action.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Column describes how one field of a row is extracted, searched, sorted and
// rendered. ID must be unique within a table.
type Column[T any] struct {
	ID     string
	Header string

	// Accessor returns the value used for search, filter and sort.
	// It should resolve to a primitive: string, number, bool or time.Time.
	Accessor func(row T) any

	// Text is an explicit string projection, required when Accessor returns a
	// structured value. It takes precedence over the accessor for search and
	// filter.
	Text func(row T) string

	// Compare overrides the type-aware comparator. It receives accessor values.
	Compare func(a, b any) int

	// Render produces the display string of a cell. Defaults to the string
	// projection.
	Render func(row T) string

	Sortable   bool
	Searchable bool
	Width      int
}

// Action is one entry of the per-row action menu.
type Action[T any] struct {
	ID      string
	Label   string
	Variant Variant

	// Handler runs once per invocation. Optional: OnAction sees every invocation.
	Handler func(row T)

	// Visible hides the action for rows where it returns false. Nil means always visible.
	Visible func(row T) bool
}

// Option is one entry of a closed filter or sort vocabulary.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Pagination enables paging. PageSize must be positive and, when
// PageSizeOptions is not empty, one of the options.
type Pagination struct {
	PageSize        int
	PageSizeOptions []int
}

// Config is the full declarative configuration of a table.
type Config[T any] struct {
	Columns []Column[T]
	Actions []Action[T]

	// Key returns the stable identity of a row. Required.
	Key func(row T) string

	Searchable        bool
	SearchPlaceholder string
	// SearchFields names the columns searched. Empty means every Searchable column.
	SearchFields []string

	Filterable    bool
	FilterColumn  string
	FilterOptions []Option
	FilterLabel   string

	Sortable bool
	// SortOptions restricts which Sortable columns may be chosen; option values are column ids.
	SortOptions          []Option
	DefaultSort          string
	DefaultSortDirection SortDirection

	Selectable bool

	// Pagination is nil for a single page holding every match.
	Pagination *Pagination

	// Locale drives string collation. Zero value means English.
	Locale language.Tag

	OnRowClick        func(row T)
	OnAction          func(event ActionEvent, row T)
	OnSelectionChange func(keys []string)
	OnPageChange      func(pageIndex int)
}

// ViewState is the engine-owned control state of a mounted table.
type ViewState struct {
	SearchQuery   string        `json:"searchQuery"`
	ActiveFilter  *string       `json:"activeFilter"`
	SortColumnID  string        `json:"sortColumnId,omitempty"`
	SortDirection SortDirection `json:"sortDirection"`
	PageIndex     int           `json:"pageIndex"`
	PageSize      int           `json:"pageSize"`
	SelectedKeys  []string      `json:"selectedKeys"`
}

// DerivedView is the read-only result of the last recompute.
type DerivedView[T any] struct {
	VisibleRows     []T
	TotalMatchCount int
	PageCount       int
	PageIndex       int
	SelectedCount   int
	// Faults counts accessor faults contained during the pass.
	Faults int
}

// ActionEvent is emitted once per action invocation. Presentation of the
// outcome is left to the caller.
type ActionEvent struct {
	ActionID string  `json:"actionId"`
	Label    string  `json:"label"`
	Variant  Variant `json:"variant"`
	RowKey   string  `json:"rowKey"`
}
