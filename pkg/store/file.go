package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/logsheet/pkg/workout"
)

// FileStore keeps one JSON document per workout in a directory. It suits a
// single CLI user; use sqlite or a server database for anything shared.
type FileStore struct {
	mu  sync.RWMutex
	dir string
	now func() time.Time
}

// NewFileStore creates dir if needed. An empty dir defaults to
// ~/.local/share/logsheet/workouts.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "logsheet", "workouts")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Path returns the store directory.
func (s *FileStore) Path() string { return s.dir }

func (s *FileStore) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

func (s *FileStore) Get(_ context.Context, owner string, id uuid.UUID) (*workout.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, err := s.read(s.path(id))
	if os.IsNotExist(err) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	if w.Owner != owner {
		return nil, notFound(id)
	}
	return w, nil
}

func (s *FileStore) List(_ context.Context, owner string) ([]workout.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}
	out := []workout.Summary{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		w, err := s.read(filepath.Join(s.dir, e.Name()))
		if err != nil {
			// Unreadable documents are skipped so one bad file does not
			// hide the rest.
			continue
		}
		if w.Owner == owner {
			out = append(out, w.Summarize())
		}
	}
	sortSummaries(out)
	return out, nil
}

func (s *FileStore) Put(_ context.Context, w *workout.Workout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := prepare(w, s.now())
	if err != nil {
		return err
	}
	path := s.path(w.ID)
	if prev, err := s.read(path); err == nil && prev.Owner != w.Owner {
		return taken(w.ID)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write workout file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, owner string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(id)
	w, err := s.read(path)
	if os.IsNotExist(err) {
		return notFound(id)
	}
	if err != nil {
		return err
	}
	if w.Owner != owner {
		return notFound(id)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove workout file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read(path string) (*workout.Workout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

var _ Store = (*FileStore)(nil)
