package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/opsconsole/internal/core"
	"github.com/JonMunkholm/opsconsole/internal/datatable"
)

// viewFlags are the view-state flags shared by query and export.
type viewFlags struct {
	search string
	filter string
	sort   string
	dir    string
	page   int
	size   int
	keys   []string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "Search query")
	cmd.Flags().StringVar(&f.filter, "filter", "", "Filter value")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort column id")
	cmd.Flags().StringVar(&f.dir, "dir", "", "Sort direction: asc or desc (default asc)")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&f.size, "size", 0, "Page size (one of the screen's page size options)")
	cmd.Flags().StringSliceVar(&f.keys, "select", nil, "Row keys to select")
}

// query turns the flags that were set into a core.Query.
func (f *viewFlags) query(cmd *cobra.Command) (core.Query, error) {
	var q core.Query
	flags := cmd.Flags()

	if flags.Changed("size") {
		q.PageSize = &f.size
	}
	if flags.Changed("search") {
		q.Search = &f.search
	}
	if flags.Changed("filter") {
		q.Filter = &f.filter
	}
	if flags.Changed("sort") {
		q.SortColumn = &f.sort
	}
	if flags.Changed("dir") {
		dir, ok := datatable.ParseSortDirection(f.dir)
		if !ok {
			return q, fmt.Errorf("invalid --dir %q: want asc, desc or none", f.dir)
		}
		q.SortDirection = &dir
	}
	if flags.Changed("page") {
		index := f.page - 1
		q.Page = &index
	}
	return q, nil
}

// mount opens a session for screen with the flags applied. The caller
// unmounts it.
func (a *App) mount(ctx context.Context, cmd *cobra.Command, screen string, f *viewFlags) (core.View, error) {
	q, err := f.query(cmd)
	if err != nil {
		return core.View{}, err
	}

	view, err := a.service.Mount(ctx, screen)
	if err != nil {
		return core.View{}, err
	}
	id := view.Session.ID

	if !q.Empty() {
		if view, err = a.service.Apply(ctx, id, q); err != nil {
			_ = a.service.Unmount(ctx, id)
			return core.View{}, err
		}
	}
	for _, key := range f.keys {
		if view, err = a.service.Select(ctx, id, core.SelectRow, key); err != nil {
			_ = a.service.Unmount(ctx, id)
			return core.View{}, fmt.Errorf("select %s: %w", key, err)
		}
	}
	return view, nil
}

func (a *App) queryCmd() *cobra.Command {
	var f viewFlags

	cmd := &cobra.Command{
		Use:   "query <screen>",
		Short: "Print one page of a screen",
		Long: `Mount a screen, apply search, filter, sort and paging, and print the
resulting page with its match counts.`,
		Example: `  consolectl query users
  consolectl query users --search esther
  consolectl query merchants --filter Active --sort volume --dir desc
  consolectl query users --size 20 --page 1 --select usr_02,usr_03`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			view, err := a.mount(ctx, cmd, args[0], &f)
			if err != nil {
				return fmt.Errorf("%s (%w)", core.FormatUserError(err), err)
			}
			defer a.service.Unmount(ctx, view.Session.ID)

			printSnapshot(a.out, view.Snapshot)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

// printSnapshot renders a page as a text table followed by its counts.
func printSnapshot(out io.Writer, snap datatable.Snapshot) {
	selectable := snap.Controls.Selectable

	header := []string{"Key"}
	if selectable {
		header = append([]string{"Sel"}, header...)
	}
	for _, c := range snap.Columns {
		h := c.Header
		switch c.Sorted {
		case datatable.SortAscending:
			h += " ^"
		case datatable.SortDescending:
			h += " v"
		}
		header = append(header, h)
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range snap.Rows {
		line := make([]string, 0, len(header))
		if selectable {
			mark := ""
			if row.Selected {
				mark = "x"
			}
			line = append(line, mark)
		}
		line = append(line, row.Key)
		line = append(line, row.Cells...)
		table.Append(line)
	}
	table.Render()

	pages := snap.PageCount
	if pages < 1 {
		pages = 1
	}
	fmt.Fprintf(out, "%s matches, page %d of %d", humanize.Comma(int64(snap.TotalMatchCount)), snap.State.PageIndex+1, pages)
	if selectable {
		fmt.Fprintf(out, ", %d selected", snap.SelectedCount)
	}
	fmt.Fprintln(out)
	if snap.Faults > 0 {
		fmt.Fprintln(out, "warning: "+strconv.Itoa(snap.Faults)+" cell values could not be read")
	}
}
