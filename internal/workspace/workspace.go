package workspace

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/journalsite/internal/foundation/errors"
	"git.home.luguber.info/inful/journalsite/internal/logfields"
)

const tempPattern = "journalsite-preview-*"

// Manager owns one output directory.
type Manager struct {
	baseDir    string
	dir        string
	persistent bool
}

// NewManager creates a manager for an ephemeral directory below baseDir
// (the system temp dir when empty).
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// NewPersistentManager creates a manager for a fixed directory that survives Cleanup.
func NewPersistentManager(dir string) *Manager {
	return &Manager{dir: dir, persistent: true}
}

// Create makes the directory. Calling it again on a persistent manager is harmless.
func (m *Manager) Create() error {
	if m.persistent {
		if err := os.MkdirAll(m.dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
				WithContext("path", m.dir).Fatal().Build()
		}
		slog.Debug("Using output directory", logfields.Path(m.dir))
		return nil
	}

	dir, err := os.MkdirTemp(m.baseDir, tempPattern)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create temporary output directory").
			WithContext("base", m.baseDir).Fatal().Build()
	}
	m.dir = dir
	slog.Info("Created temporary output directory", logfields.Path(dir))
	return nil
}

// Path returns the directory, empty before Create in ephemeral mode.
func (m *Manager) Path() string {
	return m.dir
}

// Persistent reports whether Cleanup keeps the directory.
func (m *Manager) Persistent() bool {
	return m.persistent
}

// Cleanup removes an ephemeral directory.
func (m *Manager) Cleanup() error {
	if m.dir == "" || m.persistent {
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to remove temporary output directory").
			WithContext("path", m.dir).Build()
	}
	slog.Info("Removed temporary output directory", logfields.Path(m.dir))
	m.dir = ""
	return nil
}
