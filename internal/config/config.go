// Package config holds the formatting options and their TOML loading and
// validation rules. A Config is immutable for the duration of a formatting
// call.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the config file picked up from the working directory
// when no explicit path is given.
const DefaultFileName = "svfmt.toml"

// Config is the validated set of formatting options.
type Config struct {
	IndentWidth         int  `toml:"indent_width"`
	UseTabs             bool `toml:"use_tabs"`
	AlignPreprocessor   bool `toml:"align_preprocessor"`
	WrapMultilineBlocks bool `toml:"wrap_multiline_blocks"`
	InlineEndElse       bool `toml:"inline_end_else"`
	SpaceAfterComma     bool `toml:"space_after_comma"`
	RemoveCallSpace     bool `toml:"remove_call_space"`
	AlignCaseColon      bool `toml:"align_case_colon"`
	AutoWrapLongLines   bool `toml:"auto_wrap_long_lines"`
	MaxLineLength       int  `toml:"max_line_length"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		IndentWidth:         2,
		UseTabs:             false,
		AlignPreprocessor:   true,
		WrapMultilineBlocks: true,
		InlineEndElse:       true,
		SpaceAfterComma:     true,
		RemoveCallSpace:     true,
		AlignCaseColon:      true,
		AutoWrapLongLines:   false,
		MaxLineLength:       100,
	}
}

// Load reads and validates a config file. Keys absent from the file keep
// their default values; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown option %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the explicit path when given, otherwise the default
// file from the working directory if present, otherwise Default().
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFileName); err == nil {
		return Load(DefaultFileName)
	}
	return Default(), nil
}

func (c *Config) validate() error {
	if c.IndentWidth < 0 {
		return errors.New("indent_width must not be negative")
	}
	if c.MaxLineLength < 0 {
		return errors.New("max_line_length must not be negative")
	}
	// Zero is not an error: correct it so the engine never emits zero-width
	// indentation.
	if c.IndentWidth == 0 {
		c.IndentWidth = 2
	}
	return nil
}

// Normalized returns a copy with the zero-width indent correction applied.
// Callers constructing a Config by hand go through this before formatting.
func (c Config) Normalized() Config {
	if c.IndentWidth <= 0 {
		c.IndentWidth = 2
	}
	return c
}
