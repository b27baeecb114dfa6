package styles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// profileYAML is the YAML structure for profile definitions.
type profileYAML struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Triggers        []string `yaml:"triggers"`
	Instructions    string   `yaml:"instructions"`
	PreferredBrands []string `yaml:"preferred_brands"`
}

// LoadDir loads all profile definitions from a directory.
func LoadDir(dir string) (*Registry, error) {
	registry := NewRegistry()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read styles directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		profile, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to load style profile %s: %w", name, err)
		}
		registry.Register(profile)
	}

	return registry, nil
}

// LoadFile loads a single profile definition.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML profile definition.
func Parse(data []byte) (*Profile, error) {
	var raw profileYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid profile YAML: %w", err)
	}

	if raw.ID == "" {
		return nil, fmt.Errorf("profile is missing an id")
	}
	if raw.Name == "" {
		raw.Name = raw.ID
	}

	return &Profile{
		ID:              raw.ID,
		Name:            raw.Name,
		Triggers:        raw.Triggers,
		Instructions:    raw.Instructions,
		PreferredBrands: raw.PreferredBrands,
	}, nil
}
