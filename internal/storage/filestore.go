// Package storage provides the data persistence layer for the expense tracker.
//
// Each collection lives in one pretty-printed JSON file. The file is read once when a
// store is created and rewritten wholesale on every persisting mutation.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Veraticus/expense-tracker/internal/common"
)

const (
	dirPerm  = 0750
	filePerm = 0600
)

// LoadOrInit reads the collection stored at path. When no file exists, seed is called
// to produce the initial collection, which is written to path (creating parent
// directories) and returned.
func LoadOrInit[T any](path string, seed func() T) (T, error) {
	var zero T

	if err := validateString(path, "path"); err != nil {
		return zero, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		initial := seed()
		if err := Save(path, initial); err != nil {
			return zero, err
		}
		common.LogDebug("seeded data file", common.Fields{"path": path})
		return initial, nil
	}
	if err != nil {
		return zero, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	common.LogDebug("loaded data file", common.Fields{"path": path, "bytes": len(data)})
	return out, nil
}

// Save writes data to path as indented JSON. The content goes to a temporary file in
// the same directory which is then renamed over path, so readers never observe a
// partially written file.
func Save[T any](path string, data T) error {
	if err := validateString(path, "path"); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename has succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(append(encoded, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	common.LogDebug("saved data file", common.Fields{"path": path, "bytes": len(encoded)})
	return nil
}
