package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/stdlinks/internal/logfields"
)

// EnvRelative toggles URL relativization. "0" disables it.
const EnvRelative = "SPEC_RELATIVE"

// envFiles are loaded in order when present. Variables already set in the
// process environment are never overridden.
var envFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads variables from .env files in dir into the process
// environment. Missing files are skipped.
func LoadEnvFiles(dir string) error {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
		slog.Debug("Loaded environment file", logfields.Path(path))
	}
	return nil
}

// ApplyEnv overlays environment settings read through lookup.
//
// SPEC_RELATIVE=0 disables relativization and any other value enables it.
// When the variable is unset the configured value is kept.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvRelative); ok {
		c.Relative = v != "0"
	}
}
