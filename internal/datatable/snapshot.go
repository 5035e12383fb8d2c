package datatable

// Controller is the row-type independent surface of a mounted table. The
// console holds tables of different row types behind it.
type Controller interface {
	SetSearch(query string) error
	SetFilter(value string) error
	ClearFilter()
	SetSort(columnID string, dir SortDirection) error
	SetPage(index int) error
	SetPageSize(size int) error

	Select(key string) error
	Deselect(key string) error
	ToggleSelection(key string) error
	SelectAllVisible() error
	ClearSelection() error

	ClickRow(key string) error
	InvokeAction(actionID, key string) (ActionEvent, error)

	State() ViewState
	Snapshot() Snapshot
	EachMatch(fn func(row RowView) error) error
}

var _ Controller = (*Table[struct{}])(nil)

// Snapshot is the rendered view model of a table: what a template or API
// response needs to draw the current page and its controls.
type Snapshot struct {
	Columns         []HeaderCell `json:"columns"`
	Rows            []RowView    `json:"rows"`
	State           ViewState    `json:"state"`
	TotalMatchCount int          `json:"totalMatchCount"`
	PageCount       int          `json:"pageCount"`
	SelectedCount   int          `json:"selectedCount"`
	Faults          int          `json:"faults"`
	Controls        Controls     `json:"controls"`
}

// HeaderCell describes one column header.
type HeaderCell struct {
	ID       string        `json:"id"`
	Header   string        `json:"header"`
	Sortable bool          `json:"sortable"`
	Sorted   SortDirection `json:"sorted"`
	Width    int           `json:"width,omitempty"`
}

// RowView is one rendered row.
type RowView struct {
	Key      string       `json:"key"`
	Cells    []string     `json:"cells"`
	Selected bool         `json:"selected"`
	Actions  []ActionView `json:"actions,omitempty"`
}

// ActionView is an action visible for a row.
type ActionView struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Variant Variant `json:"variant"`
}

// Controls carries the configuration needed to draw the toolbar and pager.
type Controls struct {
	Searchable        bool     `json:"searchable"`
	SearchPlaceholder string   `json:"searchPlaceholder,omitempty"`
	Filterable        bool     `json:"filterable"`
	FilterLabel       string   `json:"filterLabel,omitempty"`
	FilterOptions     []Option `json:"filterOptions,omitempty"`
	Sortable          bool     `json:"sortable"`
	SortOptions       []Option `json:"sortOptions,omitempty"`
	Selectable        bool     `json:"selectable"`
	Paginated         bool     `json:"paginated"`
	PageSizeOptions   []int    `json:"pageSizeOptions,omitempty"`
}

// Snapshot renders the current page.
func (t *Table[T]) Snapshot() Snapshot {
	rows := make([]RowView, 0, len(t.view.VisibleRows))
	for _, row := range t.view.VisibleRows {
		rows = append(rows, t.renderRow(row))
	}

	return Snapshot{
		Columns:         t.Headers(),
		Rows:            rows,
		State:           t.State(),
		TotalMatchCount: t.view.TotalMatchCount,
		PageCount:       t.view.PageCount,
		SelectedCount:   t.view.SelectedCount,
		Faults:          t.view.Faults,
		Controls:        t.controls(),
	}
}

// Headers returns the header cells in display order.
func (t *Table[T]) Headers() []HeaderCell {
	headers := make([]HeaderCell, len(t.c.columns))
	for i, col := range t.c.columns {
		h := HeaderCell{
			ID:       col.ID,
			Header:   col.Header,
			Sortable: t.cfg.Sortable && t.c.sortable(col.ID),
			Width:    col.Width,
		}
		if col.ID == t.sortCol {
			h.Sorted = t.sortDir
		}
		headers[i] = h
	}
	return headers
}

// EachMatch renders every row matching the current search and filter, in the
// current sort order and ignoring pagination. It stops at the first error
// returned by fn.
func (t *Table[T]) EachMatch(fn func(row RowView) error) error {
	for _, row := range t.matches {
		if err := fn(t.renderRow(row)); err != nil {
			return err
		}
	}
	return nil
}

// RenderRow renders the row with key whether or not it is on the current page.
func (t *Table[T]) RenderRow(key string) (RowView, bool) {
	row, ok := t.Row(key)
	if !ok {
		return RowView{}, false
	}
	return t.renderRow(row), true
}

func (t *Table[T]) renderRow(row T) RowView {
	key := t.cfg.Key(row)
	rv := RowView{
		Key:      key,
		Cells:    make([]string, len(t.c.columns)),
		Selected: t.selected.has(key),
	}

	r := &resolver[T]{folder: t.folder}
	for i := range t.c.columns {
		col := &t.c.columns[i]
		if col.Render != nil {
			if s, ok := safeCall(col.Render, row); ok {
				rv.Cells[i] = s
			}
			continue
		}
		rv.Cells[i], _ = r.text(col, row)
	}

	for i := range t.c.actions {
		a := &t.c.actions[i]
		if actionVisible(a, row) {
			rv.Actions = append(rv.Actions, ActionView{ID: a.ID, Label: a.Label, Variant: variantOf(a)})
		}
	}
	return rv
}

func (t *Table[T]) controls() Controls {
	c := Controls{
		Searchable:        t.cfg.Searchable,
		SearchPlaceholder: t.cfg.SearchPlaceholder,
		Filterable:        t.cfg.Filterable,
		FilterLabel:       t.cfg.FilterLabel,
		FilterOptions:     t.cfg.FilterOptions,
		Sortable:          t.cfg.Sortable,
		Selectable:        t.cfg.Selectable,
		Paginated:         t.cfg.Pagination != nil,
		PageSizeOptions:   t.c.sizes,
	}
	if t.cfg.Sortable {
		c.SortOptions = t.cfg.SortOptions
		if len(c.SortOptions) == 0 {
			for _, col := range t.c.columns {
				if t.c.sortable(col.ID) {
					c.SortOptions = append(c.SortOptions, Option{Label: col.Header, Value: col.ID})
				}
			}
		}
	}
	return c
}
