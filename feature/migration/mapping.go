package migration

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadSectionMap reads the section-name → site-name mapping table from a
// YAML file. An empty path returns nil, which means identity mapping: the
// source section name is used verbatim as the site name.
func LoadSectionMap(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading section map: %w", err)
	}

	mapping := make(map[string]string)
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("parsing section map: %w", err)
	}
	return mapping, nil
}
