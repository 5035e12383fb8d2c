package cli

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func (a *App) screensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "screens",
		Short: "List the registered screens",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(a.out)
			table.SetHeader([]string{"Group", "Key", "Label", "Description"})
			table.SetAutoFormatHeaders(false)
			table.SetAutoWrapText(false)

			for _, info := range a.service.ListScreens() {
				table.Append([]string{info.Group, info.Key, info.Label, info.Description})
			}
			table.Render()
			return nil
		},
	}
}
