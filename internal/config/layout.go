package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"treewarden/internal/domain"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadSchema reads a layout catalog from a YAML (.yml, .yaml) or TOML
// (.toml) file. An empty path returns the reference catalog. Root and
// quarantine fall back to the reference values when the file leaves them
// out. The result is validated.
func LoadSchema(path string) (domain.Schema, error) {
	if path == "" {
		return domain.DefaultSchema(), nil
	}

	var schema domain.Schema
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Schema{}, fmt.Errorf("read layout: %w", err)
		}
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return domain.Schema{}, fmt.Errorf("parse layout %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, &schema); err != nil {
			return domain.Schema{}, fmt.Errorf("load layout %s: %w", path, err)
		}
	default:
		return domain.Schema{}, fmt.Errorf("layout %s: unsupported format %q: %w", path, ext, domain.ErrInvalidInput)
	}

	defaults := domain.DefaultSchema()
	if schema.Root == "" {
		schema.Root = defaults.Root
	}
	if schema.Quarantine == (domain.QuarantineSpec{}) {
		schema.Quarantine = defaults.Quarantine
	}

	if err := schema.Validate(); err != nil {
		return domain.Schema{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return schema, nil
}
