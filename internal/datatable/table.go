package datatable

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Table is one mounted table: its configuration, the current rows, the view
// state and the derived view of the last recompute.
type Table[T any] struct {
	cfg      Config[T]
	c        *compiled[T]
	folder   cases.Caser
	comparer *comparer

	rows  []T
	index map[string]int

	query     string // trimmed, as entered
	folded    string
	filter    *string
	sortCol   string
	sortDir   SortDirection
	pageIndex int
	pageSize  int
	selected  selection

	matches  []T
	view     DerivedView[T]
	lastPage int
}

// New validates cfg and returns a table with no rows. The view state starts
// from the defaults: no query, no filter, the configured default sort, page
// zero and the configured page size.
func New[T any](cfg Config[T]) (*Table[T], error) {
	c, err := validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	t := &Table[T]{
		cfg:      cfg,
		c:        c,
		folder:   cases.Fold(),
		comparer: newComparer(c.locale),
		index:    make(map[string]int),
		pageSize: c.pageSize,
		selected: newSelection(),
	}
	if cfg.DefaultSort != "" {
		t.sortCol = cfg.DefaultSort
		t.sortDir = cfg.DefaultSortDirection
		if t.sortDir == SortNone {
			t.sortDir = SortAscending
		}
	}
	t.recompute()
	return t, nil
}

// SetRows replaces the dataset wholesale. Selected keys that are no longer
// present are pruned. On a duplicate or unreadable key the previous rows
// are kept.
func (t *Table[T]) SetRows(rows []T) error {
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		key, ok := safeCall(t.cfg.Key, row)
		if !ok {
			return fmt.Errorf("%w: row %d", ErrInvalidRowKey, i)
		}
		if _, dup := index[key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateRowKey, key)
		}
		index[key] = i
	}

	t.rows = append([]T(nil), rows...)
	t.index = index

	pruned := t.selected.prune(func(key string) bool {
		_, ok := index[key]
		return ok
	})
	t.recompute()
	if pruned {
		t.selectionChanged()
	}
	return nil
}

// Len returns the number of rows in the dataset.
func (t *Table[T]) Len() int { return len(t.rows) }

// Row returns the row with the given key.
func (t *Table[T]) Row(key string) (T, bool) {
	i, ok := t.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	return t.rows[i], true
}

// SetSearch sets the free-text query. Clearing the query is always allowed.
func (t *Table[T]) SetSearch(query string) error {
	query = strings.TrimSpace(query)
	if !t.cfg.Searchable && query != "" {
		return ErrSearchDisabled
	}
	t.query = query
	t.folded = normalizeQuery(t.folder, query)
	t.recompute()
	return nil
}

// SetFilter activates a categorical filter value. When filter options are
// configured, value must be one of them.
func (t *Table[T]) SetFilter(value string) error {
	if !t.cfg.Filterable {
		return ErrFilterDisabled
	}
	if len(t.c.filterOK) > 0 {
		if _, ok := t.c.filterOK[value]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFilterValue, value)
		}
	}
	t.filter = &value
	t.recompute()
	return nil
}

// ClearFilter removes the active filter.
func (t *Table[T]) ClearFilter() {
	t.filter = nil
	t.recompute()
}

// SetSort orders the view by columnID in dir. An empty column id or SortNone
// clears the sort and rows keep their upstream order.
func (t *Table[T]) SetSort(columnID string, dir SortDirection) error {
	if columnID == "" || dir == SortNone {
		t.sortCol, t.sortDir = "", SortNone
		t.recompute()
		return nil
	}
	if !t.cfg.Sortable || !t.c.sortable(columnID) {
		return fmt.Errorf("%w: %q", ErrInvalidSortColumn, columnID)
	}
	if dir != SortAscending && dir != SortDescending {
		return fmt.Errorf("%w: direction %v", ErrInvalidSortColumn, dir)
	}
	t.sortCol, t.sortDir = columnID, dir
	t.recompute()
	return nil
}

// SetPage moves to page index. An index past the last page is clamped.
func (t *Table[T]) SetPage(index int) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, index)
	}
	t.pageIndex = index
	t.recompute()
	return nil
}

// SetPageSize changes the page size and returns to the first page. The size
// must be one of the configured options when options exist.
func (t *Table[T]) SetPageSize(size int) error {
	if t.cfg.Pagination == nil || size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	if len(t.c.sizes) > 0 && !slices.Contains(t.c.sizes, size) {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	t.pageSize = size
	t.pageIndex = 0
	t.recompute()
	return nil
}

// Select adds key to the selection. Unknown keys are ignored.
func (t *Table[T]) Select(key string) error {
	if !t.cfg.Selectable {
		return ErrSelectionDisabled
	}
	if _, ok := t.index[key]; !ok {
		return nil
	}
	t.updateSelection(t.selected.add(key))
	return nil
}

// Deselect removes key from the selection.
func (t *Table[T]) Deselect(key string) error {
	if !t.cfg.Selectable {
		return ErrSelectionDisabled
	}
	t.updateSelection(t.selected.remove(key))
	return nil
}

// ToggleSelection flips the selection state of key.
func (t *Table[T]) ToggleSelection(key string) error {
	if !t.cfg.Selectable {
		return ErrSelectionDisabled
	}
	if t.selected.has(key) {
		return t.Deselect(key)
	}
	return t.Select(key)
}

// SelectAllVisible adds every row of the current page to the selection.
// Rows on other pages are left alone.
func (t *Table[T]) SelectAllVisible() error {
	if !t.cfg.Selectable {
		return ErrSelectionDisabled
	}
	changed := false
	for _, row := range t.view.VisibleRows {
		if t.selected.add(t.cfg.Key(row)) {
			changed = true
		}
	}
	t.updateSelection(changed)
	return nil
}

// ClearSelection empties the selection.
func (t *Table[T]) ClearSelection() error {
	if !t.cfg.Selectable {
		return ErrSelectionDisabled
	}
	t.updateSelection(t.selected.clear())
	return nil
}

// IsSelected reports whether key is selected.
func (t *Table[T]) IsSelected(key string) bool { return t.selected.has(key) }

// ClickRow dispatches OnRowClick for the row with key.
func (t *Table[T]) ClickRow(key string) error {
	row, ok := t.Row(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrRowNotFound, key)
	}
	if t.cfg.OnRowClick != nil {
		t.cfg.OnRowClick(row)
	}
	return nil
}

// InvokeAction runs action actionID against the row with key. The handler and
// OnAction each run exactly once per call. The returned event describes the
// invocation for whoever presents the outcome.
func (t *Table[T]) InvokeAction(actionID, key string) (ActionEvent, error) {
	action, ok := t.c.actionBy[actionID]
	if !ok {
		return ActionEvent{}, fmt.Errorf("%w: %q", ErrUnknownAction, actionID)
	}
	row, ok := t.Row(key)
	if !ok {
		return ActionEvent{}, fmt.Errorf("%w: %q", ErrRowNotFound, key)
	}
	if !actionVisible(action, row) {
		return ActionEvent{}, fmt.Errorf("%w: %s on %q", ErrActionNotAvailable, actionID, key)
	}

	event := ActionEvent{
		ActionID: action.ID,
		Label:    action.Label,
		Variant:  variantOf(action),
		RowKey:   key,
	}
	if action.Handler != nil {
		action.Handler(row)
	}
	if t.cfg.OnAction != nil {
		t.cfg.OnAction(event, row)
	}
	return event, nil
}

// Recompute re-derives the view from the current rows and view state.
func (t *Table[T]) Recompute() { t.recompute() }

// View returns the derived view of the last recompute. VisibleRows is a copy.
func (t *Table[T]) View() DerivedView[T] {
	v := t.view
	v.VisibleRows = append([]T(nil), t.view.VisibleRows...)
	return v
}

// State returns a copy of the view state.
func (t *Table[T]) State() ViewState {
	s := ViewState{
		SearchQuery:   t.query,
		SortColumnID:  t.sortCol,
		SortDirection: t.sortDir,
		PageIndex:     t.pageIndex,
		PageSize:      t.pageSize,
		SelectedKeys:  t.selected.sorted(),
	}
	if t.filter != nil {
		v := *t.filter
		s.ActiveFilter = &v
	}
	return s
}

// recompute runs rows -> search -> filter -> sort -> paginate and clamps the
// page index. OnPageChange fires when the resulting page differs from the
// page of the previous pass.
func (t *Table[T]) recompute() {
	r := &resolver[T]{folder: t.folder}

	rows := searchRows(t.rows, t.folded, t.c.search, r)
	rows = filterRows(rows, t.filter, t.c.filter, r)
	rows = sortRows(rows, t.c.byID[t.sortCol], t.sortDir, t.comparer, r)

	pages := pageCountFor(len(rows), t.pageSize)
	t.pageIndex = clampPage(t.pageIndex, pages)

	t.matches = rows
	t.view = DerivedView[T]{
		VisibleRows:     paginate(rows, t.pageIndex, t.pageSize),
		TotalMatchCount: len(rows),
		PageCount:       pages,
		PageIndex:       t.pageIndex,
		SelectedCount:   t.selected.len(),
		Faults:          r.faults,
	}

	if t.pageIndex != t.lastPage {
		t.lastPage = t.pageIndex
		if t.cfg.OnPageChange != nil {
			t.cfg.OnPageChange(t.pageIndex)
		}
	}
}

func (t *Table[T]) updateSelection(changed bool) {
	if !changed {
		return
	}
	t.view.SelectedCount = t.selected.len()
	t.selectionChanged()
}

func (t *Table[T]) selectionChanged() {
	if t.cfg.OnSelectionChange != nil {
		t.cfg.OnSelectionChange(t.selected.sorted())
	}
}

func actionVisible[T any](a *Action[T], row T) bool {
	if a.Visible == nil {
		return true
	}
	visible, ok := safeCall(a.Visible, row)
	return ok && visible
}

func variantOf[T any](a *Action[T]) Variant {
	if a.Variant == "" {
		return VariantDefault
	}
	return a.Variant
}
