package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/e6data/sqlporter/pkg/dialect"
)

func newDialectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the registered SQL dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Dialect", "Identifier Quote", "Subscript Base"})

			for _, name := range dialect.List() {
				d, _ := dialect.Get(name)
				t.AppendRow(table.Row{name, d.Identifiers.Quote, d.IndexOffset()})
			}
			t.Render()
			return nil
		},
	}
}
