// Package ansi provides the base dialect every concrete dialect builds
// on: standard aggregates, double-quoted identifiers, and no
// dialect-specific rewrites. It is also usable directly as a neutral
// source or target.
package ansi

import (
	"github.com/e6data/sqlporter/pkg/dialect"
)

func init() {
	dialect.Register(New())
}

// New builds the ANSI dialect. Other dialect packages call this to get a
// fresh base for table-merge composition.
func New() *dialect.Dialect {
	return dialect.NewDialect("ansi").
		Aggregates(
			"COUNT", "SUM", "AVG", "MIN", "MAX",
			"ARRAY_AGG", "GROUP_CONCAT", "ANY_VALUE",
			"STDDEV", "STDDEV_POP", "STDDEV_SAMP",
			"VAR_POP", "VAR_SAMP", "VARIANCE",
			"APPROX_DISTINCT", "APPROX_QUANTILE",
			"ARG_MAX", "ARG_MIN",
			"BOOL_AND", "BOOL_OR",
			"BIT_AND", "BIT_OR", "BIT_XOR",
		).
		Build()
}
