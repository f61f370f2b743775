package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/e6data/sqlporter/pkg/transpile"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		filePath string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [query]",
		Short: "Transpile a query and report compatibility and metadata",
		Long: `Analyze transpiles a query and reports which functions the target
dialect supports, which are probable UDFs, and the tables, joins and
CTEs the query touches. The query is executable when the transpiled
form uses nothing the target lacks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(cmd, args, filePath)
			if err != nil {
				return err
			}
			from, to, err := resolveDialects()
			if err != nil {
				return err
			}
			opts, err := pipelineOptions()
			if err != nil {
				return err
			}

			res, err := transpile.Analyze(query, from, to, opts)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printAnalysis(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Read the query from a file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full analysis as JSON")
	return cmd
}

func printAnalysis(cmd *cobra.Command, res *transpile.Analysis) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, res.TranspiledQuery)
	fmt.Fprintln(out)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Value"})
	t.AppendRow(table.Row{"Executable", res.Executable})
	t.AppendRow(table.Row{"Supported", strings.Join(res.Functions.Supported, ", ")})
	t.AppendRow(table.Row{"Unsupported", strings.Join(res.Functions.Unsupported, ", ")})
	t.AppendRow(table.Row{"UDFs", strings.Join(res.Metadata.UDFs, ", ")})
	t.AppendRow(table.Row{"Tables", strings.Join(res.Metadata.Tables, ", ")})
	t.AppendRow(table.Row{"Schemas", strings.Join(res.Metadata.Schemas, ", ")})
	t.AppendRow(table.Row{"CTEs", strings.Join(res.Metadata.CTEs, ", ")})
	t.AppendRow(table.Row{"Subqueries", strings.Join(res.Metadata.Subqueries, ", ")})
	t.AppendRow(table.Row{"Joins", formatJoins(res.Metadata.Joins)})
	t.AppendRow(table.Row{"Total time", res.Timing.Total.Round(time.Microsecond)})
	t.Render()
}

// formatJoins renders join groups as "base <- table (KIND SIDE), ...".
func formatJoins(groups [][][]string) string {
	var parts []string
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		var joins []string
		for _, entry := range group[1:] {
			joins = append(joins, entry[0]+" ("+strings.Join(entry[1:], " ")+")")
		}
		parts = append(parts, group[0][0]+" <- "+strings.Join(joins, ", "))
	}
	return strings.Join(parts, "; ")
}
