package core

import (
	"fmt"

	"github.com/JonMunkholm/opsconsole/internal/datatable"
)

// ScreenSpec describes a screen over rows of type T.
type ScreenSpec[T any] struct {
	Info ScreenInfo

	// Rows selects the screen's records from a dataset.
	Rows func(ds *Dataset) []T

	// Table builds the table configuration. Callbacks set here still run;
	// the console's hooks are chained after them.
	Table func() datatable.Config[T]

	// Describe builds the detail view opened by a row click. Optional.
	Describe func(row T) (title string, fields []Field)
}

// NewScreen turns a typed screen spec into a registrable definition.
func NewScreen[T any](spec ScreenSpec[T]) ScreenDefinition {
	return ScreenDefinition{
		Info: spec.Info,
		Mount: func(ds *Dataset, preset Preset, hooks Hooks) (Grid, error) {
			return mountGrid(spec, ds, preset, hooks)
		},
	}
}

// grid binds a typed table to the Grid interface.
type grid[T any] struct {
	*datatable.Table[T]
	spec ScreenSpec[T]
}

func mountGrid[T any](spec ScreenSpec[T], ds *Dataset, preset Preset, hooks Hooks) (*grid[T], error) {
	cfg := spec.Table()
	applyPreset(&cfg, preset)
	chainHooks(&cfg, hooks)

	table, err := datatable.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("screen %s: %w", spec.Info.Key, err)
	}
	g := &grid[T]{Table: table, spec: spec}
	if err := g.Reload(ds); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *grid[T]) Reload(ds *Dataset) error {
	if ds == nil {
		return g.SetRows(nil)
	}
	if err := g.SetRows(g.spec.Rows(ds)); err != nil {
		return fmt.Errorf("screen %s: %w", g.spec.Info.Key, err)
	}
	return nil
}

func (g *grid[T]) Detail(key string) (RowDetail, error) {
	if err := g.ClickRow(key); err != nil {
		return RowDetail{}, err
	}
	row, _ := g.Row(key)

	detail := RowDetail{Key: key, Title: key}
	if g.spec.Describe != nil {
		detail.Title, detail.Fields = g.spec.Describe(row)
		return detail, nil
	}

	// Without a describer the detail lists the rendered cells.
	rv, _ := g.RenderRow(key)
	for i, h := range g.Headers() {
		detail.Fields = append(detail.Fields, Field{Label: h.Header, Value: rv.Cells[i]})
	}
	return detail, nil
}

func (g *grid[T]) Faults() int { return g.View().Faults }

func applyPreset[T any](cfg *datatable.Config[T], p Preset) {
	if cfg.Pagination != nil {
		pg := *cfg.Pagination
		if len(p.PageSizeOptions) > 0 {
			pg.PageSizeOptions = append([]int(nil), p.PageSizeOptions...)
		}
		if p.PageSize > 0 {
			pg.PageSize = p.PageSize
		}
		cfg.Pagination = &pg
	}
	if p.DefaultSort != "" {
		cfg.DefaultSort = p.DefaultSort
		cfg.DefaultSortDirection = p.DefaultSortDirection
	}
	if !p.Locale.IsRoot() {
		cfg.Locale = p.Locale
	}
}

func chainHooks[T any](cfg *datatable.Config[T], h Hooks) {
	key := cfg.Key

	if h.OnRowClick != nil && key != nil {
		prev := cfg.OnRowClick
		cfg.OnRowClick = func(row T) {
			if prev != nil {
				prev(row)
			}
			h.OnRowClick(key(row))
		}
	}
	if h.OnAction != nil {
		prev := cfg.OnAction
		cfg.OnAction = func(e datatable.ActionEvent, row T) {
			if prev != nil {
				prev(e, row)
			}
			h.OnAction(e)
		}
	}
	if h.OnSelectionChange != nil {
		prev := cfg.OnSelectionChange
		cfg.OnSelectionChange = func(keys []string) {
			if prev != nil {
				prev(keys)
			}
			h.OnSelectionChange(keys)
		}
	}
	if h.OnPageChange != nil {
		prev := cfg.OnPageChange
		cfg.OnPageChange = func(page int) {
			if prev != nil {
				prev(page)
			}
			h.OnPageChange(page)
		}
	}
}
