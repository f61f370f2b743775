package transform

import "regexp"

var nestedStruct = regexp.MustCompile(`(?i)STRUCT\s*\(\s*STRUCT\s*\(\s*([^()]+)\s*\)\s*\)`)

// ReplaceStruct rewrites STRUCT(STRUCT(x)) in rendered SQL to {{x}}.
//
// Upstream templating engines smuggle their placeholders through the
// translator as doubly nested STRUCT calls; this restores them after
// generation, on the output text.
func ReplaceStruct(query string) string {
	return nestedStruct.ReplaceAllString(query, "{{${1}}}")
}
