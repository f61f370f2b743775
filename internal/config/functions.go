package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/e6data/sqlporter/pkg/transpile"
)

// LoadFunctionCatalog reads the supported-functions catalog: a JSON
// object mapping dialect names to arrays of function names. A missing
// file is not an error; analysis then treats every function as
// unsupported, which the per-dialect builders usually compensate for.
func LoadFunctionCatalog(path string, log *slog.Logger) (transpile.FunctionCatalog, error) {
	if path == "" {
		return transpile.FunctionCatalog{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		log.Warn("supported-functions file not found, analysis will report everything unsupported",
			"path", path)
		return transpile.FunctionCatalog{}, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("error reading functions file %s: %w", path, err)
	}

	catalog := transpile.FunctionCatalog{}
	for _, dialectName := range k.MapKeys("") {
		catalog[dialectName] = k.Strings(dialectName)
	}
	return catalog, nil
}
