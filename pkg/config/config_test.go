package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string `yaml:"name" toml:"name"`
	Workers int    `yaml:"workers" toml:"workers"`
	Nested  struct {
		Dir string `yaml:"dir" toml:"dir"`
	} `yaml:"nested" toml:"nested"`
}

type validated struct {
	Workers int `yaml:"workers"`
}

func (v *validated) Validate() error {
	if v.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
	}{
		{"config.yaml", FormatYAML},
		{"config.yml", FormatYAML},
		{"config.toml", FormatTOML},
		{"CONFIG.TOML", FormatTOML},
		{"config", FormatYAML},
	}

	for _, tt := range tests {
		if result := FormatOf(tt.filename); result != tt.expected {
			t.Errorf("FormatOf(%q) = %q, expected %q", tt.filename, result, tt.expected)
		}
	}
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("PPTCHART_TEST_DIR", "/srv/decks")
	p := writeFile(t, "config.yaml", "name: annual\nnested:\n  dir: ${PPTCHART_TEST_DIR}/2025\n")

	cfg := sample{Workers: 4}
	require.NoError(t, Load(p, &cfg))
	assert.Equal(t, "annual", cfg.Name)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "/srv/decks/2025", cfg.Nested.Dir)
}

func TestLoadTOML(t *testing.T) {
	p := writeFile(t, "config.toml", "name = \"annual\"\nworkers = 2\n\n[nested]\ndir = \"out\"\n")

	var cfg sample
	require.NoError(t, Load(p, &cfg))
	assert.Equal(t, "annual", cfg.Name)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "out", cfg.Nested.Dir)
}

func TestLoadErrors(t *testing.T) {
	var cfg sample
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = Load(writeFile(t, "bad.toml", "name = "), &cfg)
	assert.ErrorContains(t, err, "failed to parse config file")

	var v validated
	err = Load(writeFile(t, "neg.yaml", "workers: -1\n"), &v)
	assert.ErrorContains(t, err, "workers must not be negative")
}

func TestLoadOptional(t *testing.T) {
	cfg := sample{Name: "default"}
	require.NoError(t, LoadOptional("", &cfg))
	require.NoError(t, LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &cfg))
	assert.Equal(t, "default", cfg.Name)

	require.NoError(t, LoadOptional(writeFile(t, "c.yaml", "name: set\n"), &cfg))
	assert.Equal(t, "set", cfg.Name)

	v := validated{Workers: -2}
	assert.Error(t, LoadOptional("", &v))
}

func TestParseUnsupportedFormat(t *testing.T) {
	var cfg sample
	assert.Error(t, Parse(Format("ini"), []byte("name=x"), &cfg))
}
