// Package config loads YAML or TOML configuration files with environment
// variable expansion.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Validator is an interface for configuration validation.
type Validator interface {
	Validate() error
}

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the syntax from the file extension. Anything other than
// .toml is read as YAML.
func FormatOf(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load loads configuration from filename into target. ${VAR} references are
// expanded before parsing, and target is validated when it implements
// Validator. Fields absent from the file keep their current values.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := Parse(FormatOf(filename), []byte(os.ExpandEnv(string(data))), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

// Parse decodes data in the given format into target without validation.
func Parse[T any](format Format, data []byte, target *T) error {
	switch format {
	case FormatTOML:
		return toml.Unmarshal(data, target)
	case FormatYAML:
		return yaml.Unmarshal(data, target)
	}
	return fmt.Errorf("unsupported config format %q", format)
}

// LoadOptional is Load for an optional file: an empty filename or a file
// that does not exist leaves target untouched, but target is still
// validated.
func LoadOptional[T any](filename string, target *T) error {
	if filename != "" {
		if _, err := os.Stat(filename); err == nil {
			return Load(filename, target)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat config file %s: %w", filename, err)
		}
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}
	return nil
}
