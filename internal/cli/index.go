package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/pinstash/internal/store"
)

// indexFileName is the SQLite index file inside the storage directory.
const indexFileName = "index.db"

// indexPath returns the local path of the index database, or "" when the
// storage location is a remote URL. SQLite needs a local file; remote
// vaults simply run without an index and rely on explicit flags.
func indexPath(dir string) string {
	if strings.Contains(dir, "://") {
		return ""
	}
	return filepath.Join(dir, indexFileName)
}

// openIndex opens the label index for a storage directory, creating the
// directory as needed. Returns (nil, nil) when the location has no local
// index.
func openIndex(dir string) (*store.Store, error) {
	path := indexPath(dir)
	if path == "" {
		slog.Debug("remote storage location, skipping index", "dir", dir)
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory %s: %w", dir, err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	return st, nil
}
