package transpile

import (
	"strings"
	"time"

	"github.com/e6data/sqlporter/pkg/dialect"
	"github.com/e6data/sqlporter/pkg/generator"
	"github.com/e6data/sqlporter/pkg/parser"
	"github.com/e6data/sqlporter/pkg/transform"
)

// FunctionAnalysis reports the function compatibility of the transpiled
// query against the target dialect.
type FunctionAnalysis struct {
	Supported   []string `json:"supported"`
	Unsupported []string `json:"unsupported"`
}

// QueryMetadata describes the shape of the source query.
type QueryMetadata struct {
	Tables     []string     `json:"tables"`
	Joins      [][][]string `json:"joins"`
	CTEs       []string     `json:"ctes"`
	Subqueries []string     `json:"subqueries"`
	Values     []string     `json:"values"`
	UDFs       []string     `json:"udfs"`
	Schemas    []string     `json:"schemas"`
}

// Timing breaks the analysis wall time down by phase.
type Timing struct {
	Parse            time.Duration `json:"parsing"`
	FunctionAnalysis time.Duration `json:"function_analysis"`
	Metadata         time.Duration `json:"metadata_extraction"`
	Transpile        time.Duration `json:"transpilation"`
	PostAnalysis     time.Duration `json:"post_analysis"`
	Total            time.Duration `json:"total"`
}

// Analysis is the result of Analyze: the transpiled query plus function
// compatibility, metadata and timing. Executable is true when the
// transpiled query uses nothing the target dialect lacks.
type Analysis struct {
	TranspiledQuery string           `json:"transpiled_query"`
	Executable      bool             `json:"executable"`
	Functions       FunctionAnalysis `json:"functions"`
	Metadata        QueryMetadata    `json:"metadata"`
	Timing          Timing           `json:"timing"`
}

// Analyze transpiles query and reports what the translation did: which
// functions the target supports, which are probable UDFs, and the
// tables, joins and CTEs the query touches. Function verdicts are
// computed twice, before and after transpilation, so a function the
// rewrite rules eliminate does not count against executability.
func Analyze(query string, from, to *dialect.Dialect, opts Options) (*Analysis, error) {
	log := opts.logger()
	start := time.Now()
	var res Analysis

	query = transform.NormalizeUnicodeSpaces(query)
	var comment string
	if opts.CommentTag != "" {
		query, comment = transform.StripComment(query, opts.CommentTag)
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	targetFuncs := opts.Catalog.Functions(to.Name)
	sourceFuncs := opts.Catalog.Functions(from.Name)
	scanCfg := transform.DefaultScanConfig()

	phase := time.Now()
	stmts, err := parser.Parse(query, from)
	if err != nil {
		return nil, err
	}
	res.Timing.Parse = time.Since(phase)

	// Function analysis on the source text and tree.
	phase = time.Now()
	scanned := transform.ExtractFunctions(query, scanCfg)
	supported, unsupported := transform.CategorizeFunctions(scanned, targetFuncs, scanCfg.Keywords)
	udfs, unsupported := transform.ExtractUDFs(unsupported, sourceFuncs)
	_, unsupported = transform.IdentifyUnsupported(stmts, to, supported, unsupported)
	res.Timing.FunctionAnalysis = time.Since(phase)
	log.Debug("function analysis",
		"scanned", len(scanned), "unsupported", len(unsupported), "udfs", len(udfs))

	phase = time.Now()
	inventory := transform.ExtractCTEInventory(stmts)
	res.Metadata = QueryMetadata{
		Tables:     transform.ExtractTables(stmts),
		Joins:      transform.ExtractJoins(stmts),
		CTEs:       inventory.CTEs,
		Subqueries: inventory.Subqueries,
		Values:     inventory.Values,
		UDFs:       udfs,
	}
	res.Metadata.Schemas = transform.ExtractSchemas(res.Metadata.Tables)
	res.Timing.Metadata = time.Since(phase)

	// Transpilation. The tree passes run on a regenerated source-dialect
	// round trip so the rewrites see exactly what generation will see.
	phase = time.Now()
	if opts.TwoPhaseScheme {
		transform.TransformTableParts(stmts)
	}
	if opts.TableAliasQualification {
		transform.QualifyColumns(stmts)
	}
	transform.EnsureSelectFromValues(stmts)
	transform.SetCTENamesCaseSensitively(stmts)
	roundTripped, err := generator.Generate(stmts, from, generator.Options{Logger: log})
	if err != nil {
		return nil, err
	}
	stmts, err = parser.ParseWithOptions(roundTripped, from, parser.Options{
		ErrorLevel: dialect.ErrorLevelIgnore,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}

	transpiled, err := generator.Generate(stmts, to, generator.Options{
		Pretty:     opts.Pretty,
		Identify:   opts.Identify,
		ErrorLevel: opts.ErrorLevel,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}
	transpiled = transform.ReplaceStruct(transpiled)
	transpiled = transform.AddComment(transpiled, comment)
	res.TranspiledQuery = transpiled
	res.Timing.Transpile = time.Since(phase)

	// Post-transpilation analysis against the target dialect.
	phase = time.Now()
	targetStmts, err := parser.Parse(transpiled, to)
	if err != nil {
		return nil, err
	}
	rescanned := transform.ExtractFunctions(transpiled, scanCfg)
	okAfter, missingAfter := transform.CategorizeFunctions(rescanned, targetFuncs, scanCfg.Keywords)
	okAfter, missingAfter = transform.IdentifyUnsupported(targetStmts, to, okAfter, missingAfter)
	res.Functions = FunctionAnalysis{Supported: okAfter, Unsupported: missingAfter}
	res.Executable = len(missingAfter) == 0
	res.Timing.PostAnalysis = time.Since(phase)

	res.Timing.Total = time.Since(start)
	log.Info("analysis complete",
		"executable", res.Executable, "took", res.Timing.Total)
	return &res, nil
}
