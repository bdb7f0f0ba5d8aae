// Package config loads the driver's exception lists: the identifiers to
// exclude entirely and the identifiers that only pass in relaxed engine mode.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/streamich/schemasafe/internal/schema"
)

// Exceptions holds the two identifier lists consumed by the skip tables.
type Exceptions struct {
	Unsupported []string `yaml:"unsupported"`
	Relaxed     []string `yaml:"relaxed"`
}

// Load reads and parses an exceptions file.
func Load(path string) (*Exceptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exceptions file: %w", err)
	}

	var exc Exceptions
	if err := yaml.Unmarshal(data, &exc); err != nil {
		return nil, fmt.Errorf("failed to parse exceptions file: %w", err)
	}

	return &exc, nil
}

// LoadAndValidate reads an exceptions file, validates its structure against
// the embedded schema and checks its entries.
func LoadAndValidate(path string) (*Exceptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exceptions file: %w", err)
	}
	if err := schema.ValidateExceptions(data); err != nil {
		return nil, err
	}

	var exc Exceptions
	if err := yaml.Unmarshal(data, &exc); err != nil {
		return nil, fmt.Errorf("failed to parse exceptions file: %w", err)
	}
	if err := Validate(&exc); err != nil {
		return nil, err
	}
	return &exc, nil
}

// Validate rejects malformed identifier entries: empty strings, leading or
// trailing slashes, and duplicates within a list.
func Validate(exc *Exceptions) error {
	if err := validateList("unsupported", exc.Unsupported); err != nil {
		return err
	}
	return validateList("relaxed", exc.Relaxed)
}

func validateList(name string, ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%s: empty identifier entry", name)
		}
		if strings.HasPrefix(id, "/") || strings.HasSuffix(id, "/") {
			return fmt.Errorf("%s: identifier %q must not begin or end with a slash", name, id)
		}
		if seen[id] {
			return fmt.Errorf("%s: duplicate identifier %q", name, id)
		}
		seen[id] = true
	}
	return nil
}
