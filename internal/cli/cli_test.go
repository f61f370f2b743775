package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCmd executes the root command with args and returns stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTranspileCommand(t *testing.T) {
	out, err := runCmd(t, "transpile", "-s", "snowflake", "--pretty=false",
		"SELECT NVL(a, b) FROM t")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COALESCE(a, b) FROM t\n", out)
}

func TestTranspileCommandRequiresSourceDialect(t *testing.T) {
	_, err := runCmd(t, "transpile", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source dialect")
}

func TestTranspileCommandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT IFF(a, b, c) FROM t"), 0o644))

	out, err := runCmd(t, "transpile", "-s", "snowflake", "--pretty=false", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT IF(a, b, c) FROM t\n", out)
}

func TestAnalyzeCommandJSON(t *testing.T) {
	out, err := runCmd(t, "analyze", "--json", "-s", "snowflake",
		"SELECT a FROM sales.orders")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Contains(t, res, "transpiled_query")
	assert.Contains(t, res, "executable")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.sql"),
		[]byte("SELECT NVL(a, b) FROM t"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.sql"),
		[]byte("SELECT 1"), 0o644))

	out, err := runCmd(t, "batch", "-s", "snowflake", "--pretty=false", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 ok / 0 failed")

	translated, err := os.ReadFile(filepath.Join(dir, "a.e6.sql"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT COALESCE(a, b) FROM t\n", string(translated))
}

func TestDialectsCommand(t *testing.T) {
	out, err := runCmd(t, "dialects")
	require.NoError(t, err)
	for _, name := range []string{"e6", "snowflake", "postgres", "spark", "trino", "presto"} {
		assert.True(t, strings.Contains(out, name), "missing dialect %s", name)
	}
}
