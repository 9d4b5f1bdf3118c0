package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML shape for a custom catalog.
type catalogFile struct {
	Habits             []Habit             `yaml:"habits"`
	CompoundAliases    map[string][]string `yaml:"compound_aliases"`
	ExcludedFromTarget string              `yaml:"excluded_from_target"`
}

// LoadFile reads a catalog from a YAML file and validates the same
// invariants as the built-in table.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	if len(f.Habits) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no habits", path)
	}

	c := &Catalog{
		Habits:             f.Habits,
		CompoundAliases:    f.CompoundAliases,
		ExcludedFromTarget: f.ExcludedFromTarget,
	}
	if c.CompoundAliases == nil {
		c.CompoundAliases = map[string][]string{}
	}
	if err := c.init(); err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}
	return c, nil
}

// Load returns the catalog from path, or the built-in default when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
