package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceStruct(t *testing.T) {
	assert.Equal(t,
		"SELECT {{placeholder}} FROM t",
		ReplaceStruct("SELECT STRUCT(STRUCT(placeholder)) FROM t"))
}

func TestReplaceStructCaseAndSpacing(t *testing.T) {
	assert.Equal(t,
		"SELECT {{x }} FROM t",
		ReplaceStruct("SELECT Struct ( Struct( x ) ) FROM t"))
}

func TestReplaceStructLeavesSingleLevel(t *testing.T) {
	in := "SELECT STRUCT(a, b) FROM t"
	assert.Equal(t, in, ReplaceStruct(in))
}
