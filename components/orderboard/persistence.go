package orderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Snapshot is the durable representation of all per-user state. Timestamps
// serialize as ISO-8601 strings; loaders must not assume they stayed live
// time values in between.
type Snapshot struct {
	UserDashboards map[string][]Dashboard     `json:"userDashboards"`
	UserOrders     map[string][]CustomerOrder `json:"userOrders"`
	Sessions       map[string]Session         `json:"sessions,omitempty"`
}

// SnapshotStore persists and rehydrates snapshots.
type SnapshotStore interface {
	Load() (Snapshot, bool, error)
	Save(snapshot Snapshot) error
}

// FileSnapshotStore keeps the snapshot as a single JSON document on disk,
// written atomically via a temp file rename.
type FileSnapshotStore struct {
	mu   sync.Mutex
	path string
}

// NewFileSnapshotStore builds a store writing to the given path.
func NewFileSnapshotStore(path string) (*FileSnapshotStore, error) {
	if path == "" {
		return nil, errors.New("orderboard: snapshot path is required")
	}
	return &FileSnapshotStore{path: path}, nil
}

// Load reads the snapshot. A missing file is not an error; it reports
// found=false.
func (s *FileSnapshotStore) Load() (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("orderboard: read snapshot %s: %w", s.path, err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, false, fmt.Errorf("orderboard: decode snapshot %s: %w", s.path, err)
	}
	return snapshot, true, nil
}

// Save writes the snapshot atomically.
func (s *FileSnapshotStore) Save(snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("orderboard: encode snapshot: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("orderboard: create snapshot dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("orderboard: create snapshot temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("orderboard: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("orderboard: close snapshot temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("orderboard: replace snapshot %s: %w", s.path, err)
	}
	return nil
}

// MemorySnapshotStore holds the last saved snapshot in memory, handy for
// tests and ephemeral sessions.
type MemorySnapshotStore struct {
	mu       sync.Mutex
	snapshot Snapshot
	saved    bool
}

// NewMemorySnapshotStore creates an empty in-memory store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

// Load returns the last saved snapshot if any.
func (s *MemorySnapshotStore) Load() (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.saved, nil
}

// Save replaces the held snapshot.
func (s *MemorySnapshotStore) Save(snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.saved = true
	return nil
}
