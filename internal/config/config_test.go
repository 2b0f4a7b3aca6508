package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Relative)
	assert.Equal(t, "rustdoc", cfg.Rustdoc)
	assert.Equal(t, "2021", cfg.Edition)
	assert.Equal(t, "https://doc.rust-lang.org/", cfg.DocURL)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults and keeps the rest", func(t *testing.T) {
		t.Setenv("STDLINKS_TEST_RUSTDOC", "/opt/rust/bin/rustdoc")
		path := filepath.Join(t.TempDir(), "stdlinks.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
relative: false
rustdoc: ${STDLINKS_TEST_RUSTDOC}
renderers: [html, linkcheck]
`), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.False(t, cfg.Relative)
		assert.Equal(t, "/opt/rust/bin/rustdoc", cfg.Rustdoc)
		assert.Equal(t, "2021", cfg.Edition)
		assert.Equal(t, []string{"html", "linkcheck"}, cfg.Renderers)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("relative: [unterminated"), 0o600))
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	})
}

func TestApplyPreprocessorTable(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyPreprocessorTable(map[string]any{
		"command":      "stdlinks",
		"before":       []any{"links"},
		"relative":     false,
		"doc-url":      "https://docs.example.org/",
		"keep-scratch": true,
		"edition":      "2024",
	})
	require.NoError(t, err)

	assert.False(t, cfg.Relative)
	assert.Equal(t, "https://docs.example.org/", cfg.DocURL)
	assert.True(t, cfg.KeepScratch)
	assert.Equal(t, "2024", cfg.Edition)
	assert.Equal(t, "rustdoc", cfg.Rustdoc)

	require.NoError(t, cfg.ApplyPreprocessorTable(nil))
	assert.Equal(t, "2024", cfg.Edition)
}

func TestApplyPreprocessorTable_BadType(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyPreprocessorTable(map[string]any{"relative": []any{"yes"}})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestApplyEnv(t *testing.T) {
	env := func(vals map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := vals[k]
			return v, ok
		}
	}

	tests := []struct {
		name     string
		initial  bool
		vars     map[string]string
		expected bool
	}{
		{"unset keeps enabled", true, map[string]string{}, true},
		{"unset keeps disabled", false, map[string]string{}, false},
		{"zero disables", true, map[string]string{EnvRelative: "0"}, false},
		{"one enables", false, map[string]string{EnvRelative: "1"}, true},
		{"anything else enables", true, map[string]string{EnvRelative: "false"}, true},
		{"empty enables", false, map[string]string{EnvRelative: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Relative = tt.initial
			cfg.ApplyEnv(env(tt.vars))
			assert.Equal(t, tt.expected, cfg.Relative)
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SPEC_RELATIVE=0\nSTDLINKS_TEST_KEEP=from-file\n"), 0o600))
	t.Setenv("STDLINKS_TEST_KEEP", "from-process")
	t.Setenv(EnvRelative, "")
	os.Unsetenv(EnvRelative)

	require.NoError(t, LoadEnvFiles(dir))
	t.Cleanup(func() { os.Unsetenv(EnvRelative) })

	assert.Equal(t, "0", os.Getenv(EnvRelative))
	assert.Equal(t, "from-process", os.Getenv("STDLINKS_TEST_KEEP"))

	cfg := Default()
	cfg.ApplyEnv(nil)
	assert.False(t, cfg.Relative)
}

func TestLoadEnvFiles_NoFiles(t *testing.T) {
	require.NoError(t, LoadEnvFiles(t.TempDir()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty rustdoc", func(c *Config) { c.Rustdoc = "" }},
		{"empty edition", func(c *Config) { c.Edition = "" }},
		{"non numeric edition", func(c *Config) { c.Edition = "latest" }},
		{"relative doc url", func(c *Config) { c.DocURL = "/std/" }},
		{"ftp doc url", func(c *Config) { c.DocURL = "ftp://doc.rust-lang.org/" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestSupports(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Supports("html"))
	assert.True(t, cfg.Supports("markdown"))

	cfg.Renderers = []string{"html"}
	assert.True(t, cfg.Supports("html"))
	assert.False(t, cfg.Supports("epub"))
}
