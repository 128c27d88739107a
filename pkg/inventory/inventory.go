// Package inventory loads the model-zoo inventory file: the detector
// variants a deployment ships, with their modality and box layout.
package inventory

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Entry describes one model-zoo variant.
type Entry struct {
	ID              string `yaml:"id"`
	Sensor          string `yaml:"sensor"`
	BoxWithVelocity bool   `yaml:"box_with_velocity"`
	Description     string `yaml:"description"`
}

type inventoryFile struct {
	Models []Entry `yaml:"models"`
}

// Load reads and parses an inventory YAML file.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read inventory")
	}

	var f inventoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse inventory")
	}

	seen := map[string]bool{}
	for _, e := range f.Models {
		if e.ID == "" {
			return nil, errors.New("inventory entry is missing an id")
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("inventory entry %q appears twice", e.ID)
		}
		seen[e.ID] = true
	}

	return f.Models, nil
}

// Validate checks that every inventory entry is buildable, i.e. its ID is
// present in registered.
func Validate(entries []Entry, registered []string) error {
	known := make(map[string]bool, len(registered))
	for _, id := range registered {
		known[id] = true
	}

	for _, e := range entries {
		if !known[e.ID] {
			return fmt.Errorf("inventory entry %q has no registered detector", e.ID)
		}
	}
	return nil
}
