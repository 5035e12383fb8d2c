package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/opsconsole/internal/core"
)

func (a *App) actionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "actions <screen> <row> <action>",
		Short: "Invoke a row action, or list recent actions",
		Long: `With three arguments, invoke an action on one row of a screen and print
the resulting notice. Without arguments, print the most recent entries of
the action log.`,
		Example: `  consolectl actions users usr_02 deactivate
  consolectl actions --limit 5`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("accepts 0 or 3 args, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if len(args) == 0 {
				return a.printRecentActions(ctx, limit)
			}
			return a.invokeAction(ctx, args[0], args[1], args[2])
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of action-log entries to print")
	return cmd
}

func (a *App) invokeAction(ctx context.Context, screen, row, action string) error {
	view, err := a.service.Mount(ctx, screen)
	if err != nil {
		return fmt.Errorf("%s (%w)", core.FormatUserError(err), err)
	}
	defer a.service.Unmount(ctx, view.Session.ID)

	res, err := a.service.InvokeAction(ctx, view.Session.ID, action, row)
	if err != nil {
		return fmt.Errorf("%s (%w)", core.FormatUserError(err), err)
	}

	fmt.Fprintf(a.out, "[%s] %s\n", res.Notice.Level, res.Notice.Message)
	return nil
}

func (a *App) printRecentActions(ctx context.Context, limit int) error {
	entries, err := a.service.RecentActions(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No actions recorded.")
		return nil
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"When", "Screen", "Action", "Record", "Severity"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, e := range entries {
		record := e.RowTitle
		if record == "" {
			record = e.RowKey
		}
		table.Append([]string{humanize.Time(e.CreatedAt), e.Screen, e.Label, record, string(e.Severity)})
	}
	table.Render()
	return nil
}
