package main

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/ukaji3/pptchart-go/pkg/pptchart"
)

// Log levels accepted by --log-level and log_level.
var logLevels = []any{"debug", "info", "warn", "error"}

// Config is the optional configuration file of the CLI.
// Command-line flags override it when set.
type Config struct {
	LogLevel string        `yaml:"log_level" toml:"log_level"`
	Extract  ExtractConfig `yaml:"extract" toml:"extract"`
	Patch    PatchConfig   `yaml:"patch" toml:"patch"`
	Watch    WatchConfig   `yaml:"watch" toml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.Required, validation.In(logLevels...)),
	); err != nil {
		return err
	}
	if err := c.Extract.Validate(); err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	if err := c.Watch.Validate(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

// ExtractConfig configures the extract and watch commands.
type ExtractConfig struct {
	Deck    string `yaml:"deck" toml:"deck"`
	Report  string `yaml:"report" toml:"report"`
	JSONDir string `yaml:"json_dir" toml:"json_dir"`
	HTML    string `yaml:"html" toml:"html"`
	Heading string `yaml:"heading" toml:"heading"`
	Workers int    `yaml:"workers" toml:"workers"`
}

// Validate validates the extract configuration.
func (c *ExtractConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Workers, validation.Min(0), validation.Max(pptchart.MaxWorkers)),
	)
}

// Require checks the inputs a run needs.
func (c *ExtractConfig) Require() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Deck, validation.Required),
		validation.Field(&c.Report, validation.Required),
	)
}

// PatchConfig configures the patch command.
type PatchConfig struct {
	DocsDir string `yaml:"docs_dir" toml:"docs_dir"`
	Deck    string `yaml:"deck" toml:"deck"`
	Payload string `yaml:"payload" toml:"payload"`
	Chart   string `yaml:"chart" toml:"chart"`
	Combo   bool   `yaml:"combo" toml:"combo"`
}

// Require checks the inputs a run needs.
func (c *PatchConfig) Require() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Payload, validation.Required),
		validation.Field(&c.Chart, validation.Required),
	); err != nil {
		return err
	}
	if c.Deck == "" && c.DocsDir == "" {
		return errors.New("deck or docs_dir is required")
	}
	return nil
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// Debounce is a duration string such as "500ms".
	Debounce string `yaml:"debounce" toml:"debounce"`
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.By(nonNegativeDuration)),
	)
}

// DebounceDuration returns the parsed debounce, or zero when unset.
func (c *WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 0
	}
	return d
}

func nonNegativeDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return errors.New("must be a duration such as 500ms")
	}
	if d < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// NewDefaultConfig returns a new Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Patch: PatchConfig{
			DocsDir: "docs",
			Combo:   true,
		},
		Watch: WatchConfig{
			Debounce: pptchart.DefaultDebounce.String(),
		},
	}
}
