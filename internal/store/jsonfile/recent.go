package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/colonyops/caseedit/internal/core/recent"
)

// RecentFile is the root JSON structure stored on disk.
type RecentFile struct {
	Entries []recent.Entry `json:"entries"`
}

// RecentStore implements recent.Store using a JSON file for persistence.
type RecentStore struct {
	path string
	now  func() time.Time
	mu   sync.RWMutex
}

// NewRecentStore creates a new JSON file recent store at the given path.
func NewRecentStore(path string) *RecentStore {
	return &RecentStore{path: path, now: time.Now}
}

// List returns all entries, newest first.
func (s *RecentStore) List(ctx context.Context) ([]recent.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return file.Entries, nil
}

// Add moves path to the front of the list, pruning old entries to stay
// within maxEntries.
func (s *RecentStore) Add(ctx context.Context, path string, maxEntries int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	file, err := s.load()
	if err != nil {
		return err
	}

	file.Entries = slices.DeleteFunc(file.Entries, func(e recent.Entry) bool {
		return e.Path == abs
	})
	file.Entries = append([]recent.Entry{{Path: abs, OpenedAt: s.now()}}, file.Entries...)

	if maxEntries <= 0 {
		maxEntries = recent.DefaultMaxEntries
	}
	if len(file.Entries) > maxEntries {
		file.Entries = file.Entries[:maxEntries]
	}

	return s.save(file)
}

// Remove drops path from the list. Missing paths are not an error.
func (s *RecentStore) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	file, err := s.load()
	if err != nil {
		return err
	}

	n := len(file.Entries)
	file.Entries = slices.DeleteFunc(file.Entries, func(e recent.Entry) bool {
		return e.Path == abs
	})
	if len(file.Entries) == n {
		return nil
	}

	return s.save(file)
}

// Clear removes all entries.
func (s *RecentStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(RecentFile{Entries: []recent.Entry{}})
}

// load reads the recent file from disk.
// Returns empty RecentFile if file doesn't exist.
func (s *RecentStore) load() (RecentFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return RecentFile{}, nil
		}
		return RecentFile{}, err
	}

	if len(data) == 0 {
		return RecentFile{}, nil
	}

	var file RecentFile
	if err := json.Unmarshal(data, &file); err != nil {
		return RecentFile{}, err
	}

	return file, nil
}

// save writes the recent file to disk atomically.
func (s *RecentStore) save(file RecentFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
