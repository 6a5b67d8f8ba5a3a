package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jobwatch/core/posting"

	"github.com/gofrs/flock"
)

// PersistenceError reports a failed load or save of the dataset.
// It is fatal for the run: no partial reconciliation may be committed.
type PersistenceError struct {
	// Op is the failing operation ("load", "save", "lock").
	Op string
	// Path is the dataset file involved.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("dataset %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// fileImage is the on-disk shape of the dataset.
type fileImage struct {
	SavedAt  time.Time                 `json:"saved_at"`
	Postings map[string]posting.Record `json:"postings"`
}

// Store reads and writes the persisted posting collection.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore creates a store for the configured dataset file.
func NewStore(cfg Config) *Store {
	return &Store{
		path: cfg.Path,
		lock: flock.New(cfg.Path + ".lock"),
	}
}

// Path returns the dataset file location.
func (s *Store) Path() string { return s.path }

// Lock takes the advisory run lock. A second concurrent run fails fast
// rather than waiting on an unknown-length scrape.
func (s *Store) Lock() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &PersistenceError{Op: "lock", Path: s.path, Err: err}
	}
	ok, err := s.lock.TryLock()
	if err != nil {
		return &PersistenceError{Op: "lock", Path: s.path, Err: err}
	}
	if !ok {
		return &PersistenceError{Op: "lock", Path: s.path, Err: errors.New("another run holds the dataset lock")}
	}
	return nil
}

// Unlock releases the run lock.
func (s *Store) Unlock() {
	_ = s.lock.Unlock()
}

// Load reads the persisted collection. A missing file yields an empty
// collection; anything else that goes wrong is a *PersistenceError.
func (s *Store) Load() (map[string]posting.Record, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]posting.Record{}, nil
		}
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	var img fileImage
	if err := json.Unmarshal(b, &img); err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	if img.Postings == nil {
		img.Postings = map[string]posting.Record{}
	}

	// Keys are authoritative; heal a hand-edited file where a record's
	// embedded key drifted from its map key.
	for key, rec := range img.Postings {
		if rec.IdentityKey != key {
			rec.IdentityKey = key
			img.Postings[key] = rec
		}
	}

	return img.Postings, nil
}

// Save atomically replaces the persisted collection. The temporary file is
// created in the dataset's directory so the rename stays on one filesystem.
func (s *Store) Save(records map[string]posting.Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".postings-*.json")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	defer func() {
		// No-ops once the rename has happened.
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	img := fileImage{SavedAt: time.Now().UTC(), Postings: records}
	if img.Postings == nil {
		img.Postings = map[string]posting.Record{}
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(img); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}
