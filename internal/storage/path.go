package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath returns the database location under the XDG data directory,
// falling back to ~/.local/share, and creates the parent directory.
func DefaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "ganttd")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return filepath.Join(appDir, "ganttd.db"), nil
}
