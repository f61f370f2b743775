package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComment(t *testing.T) {
	stripped, comment := StripComment("SELECT 1 /* condenast::a1b2c3 */ FROM t", "condenast")
	assert.Equal(t, "/* condenast::a1b2c3 */", comment)
	assert.Equal(t, "SELECT 1  FROM t", stripped)
}

func TestStripCommentAbsent(t *testing.T) {
	stripped, comment := StripComment("SELECT 1", "condenast")
	assert.Equal(t, "SELECT 1", stripped)
	assert.Empty(t, comment)
}

func TestStripCommentIgnoresOtherTags(t *testing.T) {
	query := "SELECT 1 /* other::a1b2 */"
	stripped, comment := StripComment(query, "condenast")
	assert.Equal(t, query, stripped)
	assert.Empty(t, comment)
}

func TestAddComment(t *testing.T) {
	assert.Equal(t,
		"SELECT /* condenast::a1b2 */ 1 FROM (select 2)",
		AddComment("SELECT 1 FROM (select 2)", "/* condenast::a1b2 */"))
}

func TestAddCommentCaseInsensitive(t *testing.T) {
	assert.Equal(t,
		"with x as (select 1) select /* t::1 */ * from x",
		AddComment("with x as (select 1) select * from x", "/* t::1 */"))
}

func TestAddCommentEmpty(t *testing.T) {
	assert.Equal(t, "SELECT 1", AddComment("SELECT 1", ""))
}

func TestStripThenAddRoundTrip(t *testing.T) {
	query := "SELECT a FROM t /* req::deadbeef */"
	stripped, comment := StripComment(query, "req")
	assert.Equal(t, "SELECT a FROM t", stripped)
	assert.Equal(t, "SELECT /* req::deadbeef */ a FROM t", AddComment(stripped, comment))
}
