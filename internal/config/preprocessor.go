package config

import (
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
)

// ApplyPreprocessorTable overlays the [preprocessor.<name>] table from
// book.toml. Keys may use kebab-case (doc-url) or snake_case (doc_url).
// Keys mdbook itself interprets, such as command or before, are ignored.
func (c *Config) ApplyPreprocessorTable(table map[string]any) error {
	if len(table) == 0 {
		return nil
	}

	normalized := make(map[string]any, len(table))
	for k, v := range table {
		normalized[strings.ReplaceAll(k, "-", "_")] = v
	}

	// Round-trip through YAML so the table is decoded with the same field
	// names and type rules as the config file.
	data, err := yaml.Marshal(normalized)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to encode preprocessor table").Fatal().Build()
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid preprocessor table in book.toml").Fatal().Build()
	}
	return nil
}
