package cli

import (
	"context"
	"encoding/csv"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/opsconsole/internal/core"
)

func (a *App) exportCmd() *cobra.Command {
	var f viewFlags

	cmd := &cobra.Command{
		Use:   "export <screen>",
		Short: "Write every match of a screen as CSV",
		Long: `Mount a screen, apply search, filter and sort, and write every matching
row to stdout as CSV. Paging flags are accepted but ignored.`,
		Example: `  consolectl export users --filter Hybrid > hybrid.csv`,
		Args:    cobra.ExactArgs(1),
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

			w := csv.NewWriter(a.out)
			if err := a.service.Export(ctx, view.Session.ID, w.Write); err != nil {
				return fmt.Errorf("export %s: %w", args[0], err)
			}
			w.Flush()
			return w.Error()
		},
	}
	f.register(cmd)
	return cmd
}
