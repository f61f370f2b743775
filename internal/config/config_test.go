package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "e6", cfg.TargetDialect)
	assert.Equal(t, "raise", cfg.ErrorLevel)
	assert.True(t, cfg.Pretty)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlporter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"source_dialect: snowflake\npretty: false\nconcurrency: 2\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "snowflake", cfg.SourceDialect)
	assert.False(t, cfg.Pretty)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "e6", cfg.TargetDialect) // default survives
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sqlporter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source_dialect: snowflake\n"), 0o644))
	t.Setenv("SQLPORTER_SOURCE_DIALECT", "databricks")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "databricks", cfg.SourceDialect)
}

func TestLoadFlagsWinOverEnv(t *testing.T) {
	t.Setenv("SQLPORTER_ERROR_LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("error-level", "raise", "")
	require.NoError(t, flags.Parse([]string{"--error-level=ignore"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "ignore", cfg.ErrorLevel)
}

func TestLoadUnchangedFlagsIgnored(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("target-dialect", "trino", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	// Flag default differs from config default, but the user never set
	// it, so the config default wins.
	assert.Equal(t, "e6", cfg.TargetDialect)
}

func TestLoadFunctionCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "functions.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"e6": ["SUM", "AVG"], "snowflake": ["NVL"]}`), 0o644))

	catalog, err := LoadFunctionCatalog(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"SUM", "AVG"}, catalog.Functions("e6"))
	assert.Equal(t, []string{"NVL"}, catalog.Functions("snowflake"))
	assert.Empty(t, catalog.Functions("unknown"))
}

func TestLoadFunctionCatalogMissingFile(t *testing.T) {
	catalog, err := LoadFunctionCatalog("/nonexistent/functions.json", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Empty(t, catalog)
}
