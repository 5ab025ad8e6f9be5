package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML document shape for externally supplied scenarios.
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads scenario definitions from a YAML file and validates each one.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates scenario definitions from YAML bytes.
func Parse(data []byte) ([]Scenario, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file defines no scenarios")
	}

	seen := make(map[string]bool, len(file.Scenarios))
	for i := range file.Scenarios {
		sc := &file.Scenarios[i]
		if err := sc.Validate(); err != nil {
			return nil, err
		}
		if seen[sc.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true
	}
	return file.Scenarios, nil
}
