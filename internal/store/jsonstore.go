package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/toto-draws/internal/draw"
	"github.com/pfrederiksen/toto-draws/internal/logger"
)

const snapshotFile = "draws.json"

// JSONStore persists the snapshot as a single pretty-printed JSON file in a
// data directory.
type JSONStore struct {
	dataDir string
}

// NewJSONStore creates a JSONStore rooted at dataDir, creating the directory
// if needed. A leading ~ expands to the user's home directory.
func NewJSONStore(dataDir string) (*JSONStore, error) {
	dataDir, err := ensureDataDir(dataDir)
	if err != nil {
		return nil, err
	}
	return &JSONStore{dataDir: dataDir}, nil
}

// ensureDataDir expands a leading ~ and creates the directory.
func ensureDataDir(dataDir string) (string, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return dataDir, nil
}

func (s *JSONStore) path() string {
	return filepath.Join(s.dataDir, snapshotFile)
}

// Load reads the snapshot from disk. A missing file yields an empty snapshot.
// A corrupt file is logged and treated as empty so a run can rebuild it.
func (s *JSONStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logger.Warn("Snapshot file unreadable, starting from empty", logger.Fields{
			"path":  s.path(),
			"error": err.Error(),
		})
		return NewSnapshot(), nil
	}
	if snapshot.Draws == nil {
		snapshot.Draws = make(map[int]*draw.Record)
	}
	return &snapshot, nil
}

// Save writes the snapshot to disk, stamping UpdatedAt.
func (s *JSONStore) Save(snapshot *Snapshot) error {
	snapshot.Touch()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Clear deletes the snapshot file. A missing file is not an error.
func (s *JSONStore) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing snapshot: %w", err)
	}
	return nil
}

// Close is a no-op for the file-backed store.
func (s *JSONStore) Close() error {
	return nil
}
