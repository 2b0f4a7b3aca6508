// Package config loads the stdlinks configuration.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. built-in defaults
//  2. an optional YAML file (--config)
//  3. the [preprocessor.stdlinks] table of book.toml, as handed over by mdbook
//  4. the environment (.env files, then SPEC_RELATIVE)
//
// The resulting Config is built once at startup and passed down explicitly;
// nothing below the CLI reads the environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
	"git.home.luguber.info/inful/stdlinks/internal/stdlinks"
)

// Config represents the application configuration
type Config struct {
	// Relative rewrites documentation URLs relative to each chapter.
	Relative bool `yaml:"relative"`
	// Rustdoc is the rustdoc executable used to resolve references.
	Rustdoc string `yaml:"rustdoc"`
	// Edition is the Rust edition rustdoc compiles the synthesized crate with.
	Edition string `yaml:"edition"`
	// DocURL is the root of the hosted standard library documentation.
	DocURL string `yaml:"doc_url"`
	// Renderers limits the renderers the preprocessor supports. Empty means all.
	Renderers []string `yaml:"renderers,omitempty"`
	// ScratchDir is where per-chapter rustdoc workspaces are created.
	ScratchDir string `yaml:"scratch_dir,omitempty"`
	// KeepScratch leaves rustdoc workspaces on disk for inspection.
	KeepScratch bool `yaml:"keep_scratch,omitempty"`
	// MetricsFile, when set, receives run metrics in Prometheus text format.
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Relative: true,
		Rustdoc:  "rustdoc",
		Edition:  "2021",
		DocURL:   stdlinks.DefaultDocURL,
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				Fatal().
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return cfg, nil
}

// Supports reports whether the preprocessor should run for renderer.
func (c *Config) Supports(renderer string) bool {
	if len(c.Renderers) == 0 {
		return true
	}
	for _, r := range c.Renderers {
		if r == renderer {
			return true
		}
	}
	return false
}

// String renders the effective configuration as YAML, for debug logging.
func (c *Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", *c)
	}
	return string(out)
}
