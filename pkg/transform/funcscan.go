package transform

import (
	"regexp"
	"strings"
)

// The lexical scanner runs on query TEXT, independent of the parser, so
// that a query the parser rejects still yields a function report. The
// two views are intentionally not unified: the scanner over-reports
// (any identifier followed by an open paren) and the tree passes then
// refine its verdicts.

var (
	funcCallPattern = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	blockComment    = regexp.MustCompile(`(?s)/\*.*?\*/`)
	doublePipe      = regexp.MustCompile(`\|\|`)
)

// ScanConfig tunes the lexical function scan.
type ScanConfig struct {
	// Exclusions are keywords the call pattern false-positives on, e.g.
	// "WHERE (" or "AND (".
	Exclusions []string
	// Keywords are function-like constructs matched without a following
	// parenthesis, e.g. LIKE or AT TIME ZONE.
	Keywords []string
}

// DefaultScanConfig matches the scanner configuration used by the
// transpile service for every dialect pair.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Exclusions: []string{
			"AS", "AND", "THEN", "OR", "ELSE", "WHEN", "WHERE", "FROM",
			"JOIN", "OVER", "ON", "ALL", "NOT", "BETWEEN", "UNION",
			"SELECT", "BY", "GROUP", "EXCEPT", "SETS",
		},
		Keywords: []string{
			"LIKE", "ILIKE", "RLIKE", "AT TIME ZONE", "DISTINCT", "QUALIFY",
		},
	}
}

// StripComments removes block comments and "--" line comments. Lines
// that held nothing but a comment are dropped entirely.
func StripComments(query string) string {
	query = blockComment.ReplaceAllString(query, "")

	var lines []string
	for _, line := range strings.Split(query, "\n") {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = strings.TrimRight(line[:idx], " \t")
			if line == "" {
				continue
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// BlankLiterals replaces the content of single- and double-quoted
// string literals (and the quotes themselves) with spaces so the scan
// patterns cannot match inside them. A quote preceded by an odd number
// of backslashes does not terminate the literal.
func BlankLiterals(query string) string {
	out := []byte(query)
	insideSingle := false
	insideDouble := false

	escaped := func(i int) bool {
		count := 0
		for j := i - 1; j >= 0 && query[j] == '\\'; j-- {
			count++
		}
		return count%2 == 1
	}

	for i := 0; i < len(query); i++ {
		switch ch := query[i]; {
		case ch == '\'' && !insideDouble:
			if !escaped(i) {
				insideSingle = !insideSingle
				out[i] = ' '
			}
		case ch == '"' && !insideSingle:
			if !escaped(i) {
				insideDouble = !insideDouble
				out[i] = ' '
			}
		case insideSingle || insideDouble:
			out[i] = ' '
		}
	}
	return string(out)
}

// ExtractFunctions scans query text for function invocations: any
// identifier directly followed by an open parenthesis, minus the
// configured keyword exclusions and anything declared with "AS name",
// plus the function-like keywords and the "||" concatenation operator.
// Names come back uppercased, deduplicated, in first-seen order.
func ExtractFunctions(query string, cfg ScanConfig) []string {
	sanitized := BlankLiterals(StripComments(query))
	upper := strings.ToUpper(sanitized)

	excluded := make(map[string]bool, len(cfg.Exclusions))
	for _, e := range cfg.Exclusions {
		excluded[strings.ToUpper(e)] = true
	}

	var found []string
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			found = append(found, name)
		}
	}

	for _, m := range funcCallPattern.FindAllStringSubmatch(upper, -1) {
		name := m[1]
		if excluded[name] {
			continue
		}
		if aliased, err := regexp.MatchString(`\bAS\s+`+regexp.QuoteMeta(name), upper); err == nil && aliased {
			continue
		}
		add(name)
	}

	if len(cfg.Keywords) > 0 {
		quoted := make([]string, len(cfg.Keywords))
		for i, k := range cfg.Keywords {
			quoted[i] = regexp.QuoteMeta(strings.ToUpper(k))
		}
		keywordPattern, err := regexp.Compile(`\b(` + strings.Join(quoted, "|") + `)\b`)
		if err == nil {
			for _, m := range keywordPattern.FindAllString(upper, -1) {
				add(m)
			}
		}
	}

	if doublePipe.MatchString(sanitized) {
		add("||")
	}
	return found
}

// CategorizeFunctions splits scanned names into those the target
// dialect knows (directly or as a keyword construct) and the rest.
func CategorizeFunctions(extracted, supported, keywords []string) (ok, missing []string) {
	known := make(map[string]bool, len(supported)+len(keywords))
	for _, s := range supported {
		known[strings.ToUpper(s)] = true
	}
	for _, k := range keywords {
		known[strings.ToUpper(k)] = true
	}

	for _, f := range extracted {
		if known[strings.ToUpper(f)] {
			ok = append(ok, f)
		} else {
			missing = append(missing, f)
		}
	}
	return ok, missing
}

// ExtractUDFs partitions unsupported names into probable user-defined
// functions (names the SOURCE dialect does not know either) and names
// the source knows but the target lacks.
func ExtractUDFs(unsupported, sourceFunctions []string) (udfs, remaining []string) {
	known := make(map[string]bool, len(sourceFunctions))
	for _, s := range sourceFunctions {
		known[strings.ToUpper(s)] = true
	}

	for _, f := range unsupported {
		if known[strings.ToUpper(f)] {
			remaining = append(remaining, f)
		} else {
			udfs = append(udfs, f)
		}
	}
	return udfs, remaining
}
