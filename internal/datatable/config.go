package datatable

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/language"
)

// compiled is the resolved form of a validated Config.
type compiled[T any] struct {
	columns  []Column[T]
	byID     map[string]*Column[T]
	search   []*Column[T]
	filter   *Column[T]
	filterOK map[string]struct{}
	sortOK   map[string]struct{}
	actions  []Action[T]
	actionBy map[string]*Action[T]
	pageSize int
	sizes    []int
	locale   language.Tag
}

// validateConfig checks cfg and resolves its lookups. Every problem found is
// reported in one joined error.
func validateConfig[T any](cfg Config[T]) (*compiled[T], error) {
	var errs []error
	c := &compiled[T]{
		columns:  slices.Clone(cfg.Columns),
		byID:     make(map[string]*Column[T], len(cfg.Columns)),
		filterOK: make(map[string]struct{}),
		sortOK:   make(map[string]struct{}),
		actions:  slices.Clone(cfg.Actions),
		actionBy: make(map[string]*Action[T], len(cfg.Actions)),
		locale:   cfg.Locale,
	}
	if c.locale.IsRoot() {
		c.locale = language.English
	}

	if cfg.Key == nil {
		errs = append(errs, ErrMissingKey)
	}

	for i := range c.columns {
		col := &c.columns[i]
		switch {
		case col.ID == "":
			errs = append(errs, fmt.Errorf("%w: column %d has no id", ErrInvalidColumn, i))
			continue
		case col.Accessor == nil && col.Text == nil:
			errs = append(errs, fmt.Errorf("%w: column %q has no accessor", ErrInvalidColumn, col.ID))
		}
		if _, dup := c.byID[col.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.ID))
			continue
		}
		c.byID[col.ID] = col
	}

	if cfg.Searchable {
		errs = append(errs, c.resolveSearch(cfg.SearchFields)...)
	}

	if cfg.Filterable {
		col, ok := c.byID[cfg.FilterColumn]
		switch {
		case cfg.FilterColumn == "":
			errs = append(errs, fmt.Errorf("%w: filterable table names no filter column", ErrInvalidFilterColumn))
		case !ok:
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidFilterColumn, cfg.FilterColumn))
		default:
			c.filter = col
		}
		for _, opt := range cfg.FilterOptions {
			c.filterOK[opt.Value] = struct{}{}
		}
	}

	if cfg.Sortable {
		errs = append(errs, c.resolveSort(cfg.SortOptions, cfg.DefaultSort)...)
	} else if cfg.DefaultSort != "" {
		errs = append(errs, fmt.Errorf("%w: default sort %q on a table that is not sortable", ErrInvalidSortOption, cfg.DefaultSort))
	}

	if p := cfg.Pagination; p != nil {
		errs = append(errs, c.resolvePagination(p)...)
	}

	for i := range c.actions {
		a := &c.actions[i]
		switch {
		case a.ID == "" || a.Label == "":
			errs = append(errs, fmt.Errorf("%w: action %d needs an id and a label", ErrInvalidAction, i))
		case c.actionBy[a.ID] != nil:
			errs = append(errs, fmt.Errorf("%w: duplicate action id %q", ErrInvalidAction, a.ID))
		default:
			c.actionBy[a.ID] = a
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func (c *compiled[T]) resolveSearch(fields []string) []error {
	var errs []error
	if len(fields) == 0 {
		for i := range c.columns {
			if c.columns[i].Searchable {
				c.search = append(c.search, &c.columns[i])
			}
		}
		if len(c.search) == 0 {
			errs = append(errs, fmt.Errorf("%w: searchable table has no searchable columns", ErrUnknownSearchField))
		}
		return errs
	}

	for _, id := range fields {
		col, ok := c.byID[id]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownSearchField, id))
		case !col.Searchable:
			errs = append(errs, fmt.Errorf("%w: column %q is not searchable", ErrUnknownSearchField, id))
		default:
			c.search = append(c.search, col)
		}
	}
	return errs
}

func (c *compiled[T]) resolveSort(options []Option, def string) []error {
	var errs []error
	if len(options) == 0 {
		for i := range c.columns {
			if c.columns[i].Sortable {
				c.sortOK[c.columns[i].ID] = struct{}{}
			}
		}
	}
	for _, opt := range options {
		col, ok := c.byID[opt.Value]
		if !ok || !col.Sortable {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidSortOption, opt.Value))
			continue
		}
		c.sortOK[opt.Value] = struct{}{}
	}
	if def != "" {
		if _, ok := c.sortOK[def]; !ok {
			errs = append(errs, fmt.Errorf("%w: default sort %q", ErrInvalidSortOption, def))
		}
	}
	return errs
}

func (c *compiled[T]) resolvePagination(p *Pagination) []error {
	var errs []error
	if p.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: page size %d must be positive", ErrInvalidPagination, p.PageSize))
	}
	for _, n := range p.PageSizeOptions {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("%w: page size option %d must be positive", ErrInvalidPagination, n))
			continue
		}
		if !slices.Contains(c.sizes, n) {
			c.sizes = append(c.sizes, n)
		}
	}
	if p.PageSize > 0 && len(c.sizes) > 0 && !slices.Contains(c.sizes, p.PageSize) {
		errs = append(errs, fmt.Errorf("%w: page size %d is not one of the options %v", ErrInvalidPagination, p.PageSize, c.sizes))
	}
	c.pageSize = p.PageSize
	return errs
}

func (c *compiled[T]) sortable(id string) bool {
	_, ok := c.sortOK[id]
	return ok
}
