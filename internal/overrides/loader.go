// Package overrides loads the YAML table that maps declared symbols to the
// display names they should be rendered under. It backs the name-resolution
// policy used when a platform's internal ABI symbol differs from the
// documented API name.
package overrides

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Map maps a declared symbol name to its display name.
type Map map[string]string

// File is the YAML document layout.
type File struct {
	Overrides []Entry `yaml:"overrides"`
}

// Entry renames one symbol.
type Entry struct {
	Symbol string `yaml:"symbol"` // symbol name as declared in the header
	Name   string `yaml:"name"`   // display name to emit instead
}

// LoadFile loads and parses a YAML overrides file from the given path.
func LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into an override map.
func Parse(data []byte) (Map, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse overrides YAML: %w", err)
	}

	m := make(Map, len(f.Overrides))
	for i, e := range f.Overrides {
		if e.Symbol == "" {
			return nil, fmt.Errorf("override %d: symbol is required", i)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("override %d (%s): name is required", i, e.Symbol)
		}
		if _, dup := m[e.Symbol]; dup {
			return nil, fmt.Errorf("duplicate override for symbol %s", e.Symbol)
		}

		m[e.Symbol] = e.Name
	}

	return m, nil
}
