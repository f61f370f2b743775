package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/transpile"
)

// batchResult is the outcome of one query in a batch run.
type batchResult struct {
	ID       string
	Source   string
	Output   string
	Err      error
	Duration time.Duration
}

func newBatchCmd() *cobra.Command {
	var (
		outputDir   string
		keepFailing bool
	)

	cmd := &cobra.Command{
		Use:   "batch <path>...",
		Short: "Transpile many queries concurrently",
		Long: `Batch transpiles every .sql file in the given paths (directories are
walked recursively). Results are written next to the inputs, or under
--output-dir preserving relative names. Failed queries are reported and
skipped; the command fails if any query failed.`,
		Example: `  # Transpile a directory of queries
  sqlporter batch -s snowflake --output-dir out/ queries/

  # Bound the number of workers
  sqlporter batch -s trino --concurrency 4 queries/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := resolveDialects()
			if err != nil {
				return err
			}
			opts, err := pipelineOptions()
			if err != nil {
				return err
			}

			files, err := collectSQLFiles(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no .sql files found under %s", strings.Join(args, ", "))
			}

			start := time.Now()
			results := make([]batchResult, len(files))
			var mu sync.Mutex

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(cfg.Concurrency)
			for i, path := range files {
				i, path := i, path
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					res := transpileFile(path, from, to, opts, outputDir)
					mu.Lock()
					results[i] = res
					mu.Unlock()
					if res.Err != nil && !keepFailing {
						return fmt.Errorf("%s: %w", path, res.Err)
					}
					return nil
				})
			}
			runErr := g.Wait()

			printBatchSummary(cmd, results, time.Since(start))
			return runErr
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for transpiled files")
	cmd.Flags().BoolVar(&keepFailing, "keep-going", false, "Continue past failing queries")
	return cmd
}

// transpileFile translates one file and writes the result.
func transpileFile(path string, from, to *dialect.Dialect, opts transpile.Options, outputDir string) batchResult {
	res := batchResult{ID: uuid.NewString(), Source: path}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}

	out, err := transpile.Transpile(string(data), from, to, opts)
	if err != nil {
		res.Err = err
		return res
	}

	target := strings.TrimSuffix(path, filepath.Ext(path)) + ".e6.sql"
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			res.Err = err
			return res
		}
		target = filepath.Join(outputDir, filepath.Base(target))
	}
	if err := os.WriteFile(target, []byte(out+"\n"), 0o644); err != nil {
		res.Err = err
		return res
	}
	res.Output = target
	return res
}

// collectSQLFiles expands the arguments into a list of .sql files.
func collectSQLFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".sql") && !strings.HasSuffix(path, ".e6.sql") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func printBatchSummary(cmd *cobra.Command, results []batchResult, elapsed time.Duration) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Query ID", "Source", "Status", "Time"})

	failed := 0
	for _, r := range results {
		if r.ID == "" {
			// worker never ran; the batch was cancelled first
			continue
		}
		status := "ok"
		if r.Err != nil {
			status = "FAILED: " + r.Err.Error()
			failed++
		}
		t.AppendRow(table.Row{r.ID[:8], r.Source, status, r.Duration.Round(time.Millisecond)})
	}
	t.AppendFooter(table.Row{"", "",
		fmt.Sprintf("%d ok / %d failed", len(results)-failed, failed),
		elapsed.Round(time.Millisecond)})
	t.Render()
}
