package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// resolveDBPath returns the explicit path if given, otherwise
// ~/.rota/rota.db, creating the directory as needed.
func resolveDBPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	dir := filepath.Join(home, ".rota")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return filepath.Join(dir, "rota.db"), nil
}
