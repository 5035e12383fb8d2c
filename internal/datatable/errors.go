package datatable

import "errors"

// Configuration errors. New joins every problem it finds, so errors.Is works
// for each of them on the returned error.
var (
	// ErrMissingKey is returned when no row key extractor is configured.
	ErrMissingKey = errors.New("table configuration: row key extractor is required")

	// ErrInvalidColumn is returned for a column without an id or accessor.
	ErrInvalidColumn = errors.New("table configuration: invalid column")

	// ErrDuplicateColumn is returned when two columns share an id.
	ErrDuplicateColumn = errors.New("table configuration: duplicate column id")

	// ErrUnknownSearchField is returned when a search field names no searchable column.
	ErrUnknownSearchField = errors.New("table configuration: unknown search field")

	// ErrInvalidFilterColumn is returned when filtering names no known column.
	ErrInvalidFilterColumn = errors.New("table configuration: invalid filter column")

	// ErrInvalidSortOption is returned when a sort option or default sort names
	// a column that cannot be sorted.
	ErrInvalidSortOption = errors.New("table configuration: invalid sort option")

	// ErrInvalidPagination is returned for non-positive page sizes.
	ErrInvalidPagination = errors.New("table configuration: invalid pagination")

	// ErrInvalidAction is returned for an action without id or label, or a duplicate id.
	ErrInvalidAction = errors.New("table configuration: invalid action")
)

// Errors returned while interacting with a mounted table.
var (
	// ErrDuplicateRowKey is returned by SetRows when two rows share a key.
	ErrDuplicateRowKey = errors.New("duplicate row key")

	// ErrInvalidRowKey is returned by SetRows when the key extractor panics.
	ErrInvalidRowKey = errors.New("invalid row key")

	// ErrSearchDisabled is returned when searching a table that is not searchable.
	ErrSearchDisabled = errors.New("search is disabled for this table")

	// ErrFilterDisabled is returned when filtering a table that is not filterable.
	ErrFilterDisabled = errors.New("filter is disabled for this table")

	// ErrUnknownFilterValue is returned for a filter value outside the filter options.
	ErrUnknownFilterValue = errors.New("unknown filter value")

	// ErrInvalidSortColumn is returned when sorting by a column that does not participate.
	ErrInvalidSortColumn = errors.New("invalid sort column")

	// ErrInvalidPageSize is returned for a page size outside the configured options.
	ErrInvalidPageSize = errors.New("invalid page size")

	// ErrInvalidPage is returned for a negative page index.
	ErrInvalidPage = errors.New("invalid page index")

	// ErrSelectionDisabled is returned when selecting on a table that is not selectable.
	ErrSelectionDisabled = errors.New("selection disabled for this table")

	// ErrRowNotFound is returned when a row key is not part of the data.
	ErrRowNotFound = errors.New("row not found")

	// ErrUnknownAction is returned when an action id is not configured.
	ErrUnknownAction = errors.New("unknown action")

	// ErrActionNotAvailable is returned when an action is hidden for the row.
	ErrActionNotAvailable = errors.New("action not available for this row")
)
