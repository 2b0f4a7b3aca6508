package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/stdlinks/internal/logfields"
)

// DefaultPrefix names scratch directories created by stdlinks.
const DefaultPrefix = "stdlinks"

// Manager handles one scratch directory.
type Manager struct {
	baseDir string
	prefix  string
	tempDir string
	keep    bool // If true, Cleanup leaves the directory on disk
}

// NewManager creates a workspace manager for an ephemeral scratch directory
// under baseDir (os.TempDir() when empty).
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{
		baseDir: baseDir,
		prefix:  DefaultPrefix,
	}
}

// NewKeepingManager creates a workspace manager whose directory survives Cleanup.
func NewKeepingManager(baseDir string) *Manager {
	m := NewManager(baseDir)
	m.keep = true
	return m
}

// Create creates a uniquely named scratch directory.
func (m *Manager) Create() error {
	tempDir := filepath.Join(m.baseDir, fmt.Sprintf("%s-%s", m.prefix, uuid.NewString()))

	if err := os.MkdirAll(tempDir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	m.tempDir = tempDir
	slog.Debug("Created workspace", logfields.Path(tempDir))
	return nil
}

// GetPath returns the path to the workspace directory
func (m *Manager) GetPath() string {
	return m.tempDir
}

// Cleanup removes the workspace directory unless the manager keeps it.
func (m *Manager) Cleanup() error {
	if m.tempDir == "" {
		return nil
	}

	if m.keep {
		slog.Info("Keeping workspace", logfields.Path(m.tempDir))
		return nil
	}

	if err := os.RemoveAll(m.tempDir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}

	slog.Debug("Cleaned up workspace", logfields.Path(m.tempDir))
	m.tempDir = ""
	return nil
}

// Scoped creates a workspace, runs fn inside it and always cleans up.
// A cleanup failure is only logged so it never masks fn's error.
func Scoped(m *Manager, fn func(dir string) error) error {
	if err := m.Create(); err != nil {
		return err
	}
	defer func() {
		if err := m.Cleanup(); err != nil {
			slog.Warn("Failed to cleanup workspace", logfields.Error(err))
		}
	}()
	return fn(m.GetPath())
}
