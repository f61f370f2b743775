package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/e6data/sqlporter/pkg/transpile"
)

func newTranspileCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "transpile [query]",
		Short: "Transpile a query from the source to the target dialect",
		Example: `  # Transpile a query string
  sqlporter transpile -s snowflake "SELECT NVL(a, b) FROM t"

  # Transpile a file
  sqlporter transpile -s databricks --file query.sql

  # Read from stdin
  cat query.sql | sqlporter transpile -s trino -`,
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

			queryID := uuid.NewString()
			logger.Info("transpiling", "query_id", queryID,
				"source", from.Name, "target", to.Name)

			out, err := transpile.Transpile(query, from, to, opts)
			if err != nil {
				return fmt.Errorf("transpile %s: %w", queryID, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Read the query from a file")
	return cmd
}
