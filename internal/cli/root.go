// Package cli provides the sqlporter command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/e6data/sqlporter/internal/config"
	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/transpile"

	// Register the built-in dialects.
	_ "github.com/e6data/sqlporter/pkg/dialects/ansi"
	_ "github.com/e6data/sqlporter/pkg/dialects/e6"
	_ "github.com/e6data/sqlporter/pkg/dialects/postgres"
	_ "github.com/e6data/sqlporter/pkg/dialects/snowflake"
	_ "github.com/e6data/sqlporter/pkg/dialects/spark"
	_ "github.com/e6data/sqlporter/pkg/dialects/trino"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlporter",
		Short: "SQL dialect translation for the e6data engine",
		Long: `sqlporter translates SQL between dialects, targeting the e6data
engine. It parses with the source dialect's tables, rewrites function
spellings and name qualification through a canonical tree, and renders
with the target dialect's tables, reporting anything the target cannot
express.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ./sqlporter.yaml)")
	flags.StringP("source-dialect", "s", "", "Source SQL dialect (required)")
	flags.StringP("target-dialect", "t", "", "Target SQL dialect (default: e6)")
	flags.Bool("pretty", true, "Pretty-print the transpiled SQL")
	flags.Bool("identify", false, "Quote every identifier in the output")
	flags.String("error-level", "", "Reaction to problems: raise, warn, ignore")
	flags.String("comment-tag", "", "Routing comment tag preserved across transpilation")
	flags.Bool("two-phase-qualification", false, "Merge catalog.schema into catalog_schema")
	flags.Bool("skip-transpilation", false, "With two-phase: rewrite names only, skip transpilation")
	flags.Bool("table-alias-qualification", false, "Qualify columns with the table alias in single-table SELECTs")
	flags.String("functions-file", "", "Supported-functions JSON catalog")
	flags.Int("concurrency", config.DefaultConcurrency, "Parallel workers in batch mode")
	flags.BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		newTranspileCmd(),
		newAnalyzeCmd(),
		newBatchCmd(),
		newDialectsCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveDialects looks up the configured source and target dialects.
func resolveDialects() (from, to *dialect.Dialect, err error) {
	if cfg.SourceDialect == "" {
		return nil, nil, fmt.Errorf("source dialect is required (--source-dialect): %w",
			dialect.ErrDialectRequired)
	}
	if from, err = dialect.MustGet(cfg.SourceDialect); err != nil {
		return nil, nil, err
	}
	if to, err = dialect.MustGet(cfg.TargetDialect); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// pipelineOptions builds transpile options from the resolved config.
func pipelineOptions() (transpile.Options, error) {
	catalog, err := config.LoadFunctionCatalog(cfg.FunctionsFile, logger)
	if err != nil {
		return transpile.Options{}, err
	}
	return transpile.Options{
		Pretty:                  cfg.Pretty,
		Identify:                cfg.Identify,
		TwoPhaseScheme:          cfg.TwoPhaseScheme,
		SkipTranspilation:       cfg.SkipTranspilation,
		TableAliasQualification: cfg.TableAliasQualification,
		CommentTag:              cfg.CommentTag,
		ErrorLevel:              dialect.ParseErrorLevel(cfg.ErrorLevel),
		Catalog:                 catalog,
		Logger:                  logger,
	}, nil
}

// readQuery returns the query text: the argument when given, the file
// contents with --file, or stdin with "-".
func readQuery(cmd *cobra.Command, args []string, filePath string) (string, error) {
	switch {
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(data), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("expected a query argument, --file, or \"-\" for stdin")
	}
}
