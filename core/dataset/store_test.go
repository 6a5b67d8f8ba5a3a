package dataset

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"jobwatch/core/posting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(Config{Path: filepath.Join(t.TempDir(), "postings.json")})
}

func TestLoad_MissingFileIsEmptyCollection(t *testing.T) {
	s := testStore(t)

	records, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := testStore(t)

	deadline := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	in := map[string]posting.Record{}
	withDeadline := posting.Record{
		IdentityKey: posting.KeyFor("Acme", "SWE", "NYC"),
		Title:       "SWE",
		Company:     "Acme",
		Location:    "NYC",
		CategoryTag: "校招",
		Deadline:    &deadline,
		DeadlineRaw: "2025-06-01",
		DetailURL:   "https://acme.example/apply",
		FirstSeenAt: first,
		LastSeenAt:  first,
	}
	noDeadline := posting.Record{
		IdentityKey: posting.KeyFor("Globex", "Data Engineer", "SF"),
		Title:       "Data Engineer",
		Company:     "Globex",
		Location:    "SF",
		DeadlineRaw: "长期有效",
		FirstSeenAt: first,
		LastSeenAt:  first,
	}
	in[withDeadline.IdentityKey] = withDeadline
	in[noDeadline.IdentityKey] = noDeadline

	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Nil deadline survives as explicit JSON null, not a zero date.
	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var img map[string]any
	require.NoError(t, json.Unmarshal(b, &img))
	postings := img["postings"].(map[string]any)
	raw := postings[noDeadline.IdentityKey].(map[string]any)
	v, present := raw["deadline"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestSave_ReplacesPreviousContents(t *testing.T) {
	s := testStore(t)

	a := posting.Record{IdentityKey: "a", Title: "A", Company: "Acme"}
	b := posting.Record{IdentityKey: "b", Title: "B", Company: "Globex"}

	require.NoError(t, s.Save(map[string]posting.Record{"a": a, "b": b}))
	require.NoError(t, s.Save(map[string]posting.Record{"b": b}))

	out, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, out, 1)
	_, gone := out["a"]
	assert.False(t, gone)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(Config{Path: filepath.Join(dir, "postings.json")})

	require.NoError(t, s.Save(map[string]posting.Record{}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "postings.json", entries[0].Name())
}

func TestLoad_CorruptFileIsPersistenceError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "postings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(Config{Path: path})
	_, err := s.Load()
	require.Error(t, err)

	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "load", perr.Op)
}

func TestLoad_HealsDriftedIdentityKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "postings.json")
	body := `{"postings":{"the-key":{"identity_key":"stale","title":"SWE","company":"Acme","deadline":null}}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s := NewStore(Config{Path: path})
	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "the-key", out["the-key"].IdentityKey)
}

func TestLock_SecondHolderFailsFast(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "postings.json")

	first := NewStore(Config{Path: path})
	require.NoError(t, first.Lock())
	defer first.Unlock()

	second := NewStore(Config{Path: path})
	err := second.Lock()
	require.Error(t, err)

	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "lock", perr.Op)

	first.Unlock()
	require.NoError(t, second.Lock())
	second.Unlock()
}
