package transform

import (
	"regexp"
	"strings"
)

var firstSelect = regexp.MustCompile(`(?i)\bSELECT\b`)

// StripComment removes a routing comment of the form "/* tag::VALUE */"
// from the query and returns the query without it plus the comment text.
// When no such comment is present the query comes back unchanged and the
// comment is empty.
//
// Routing comments carry a request identity that the wire rewriting
// would otherwise mangle; callers strip before transpiling and re-insert
// with AddComment afterwards.
func StripComment(query, tag string) (stripped, comment string) {
	pattern, err := regexp.Compile(`/\*\s*` + regexp.QuoteMeta(tag) + `::[a-zA-Z0-9]+\s*\*/`)
	if err != nil {
		return query, ""
	}
	comment = pattern.FindString(query)
	if comment == "" {
		return query, ""
	}
	return strings.TrimSpace(strings.ReplaceAll(query, comment, "")), comment
}

// AddComment inserts comment immediately after the first SELECT keyword.
// Queries without a SELECT, or an empty comment, pass through unchanged.
func AddComment(query, comment string) string {
	if comment == "" {
		return query
	}
	loc := firstSelect.FindStringIndex(query)
	if loc == nil {
		return query
	}
	return query[:loc[1]] + " " + comment + " " + query[loc[1]:]
}
