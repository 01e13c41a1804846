// Package recent persists the bounded list of recently issued searches.
//
// Entries live as one JSON envelope under a single key in a small SQLite
// key-value table. The envelope carries a schema version so the layout can
// change later behind a version bump; any row that fails to decode (missing,
// corrupt, unknown version) resets the list to empty rather than erroring.
// Persistence is best-effort: write failures are logged and dropped.
package recent

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/toole-brendan/hrx-sub003/pkg/log"
)

const (
	// Capacity is the maximum number of entries kept; older entries are
	// evicted from the tail.
	Capacity = 10

	storageKey    = "recent_searches"
	schemaVersion = 1
)

// Entry is one remembered search.
type Entry struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type envelope struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Store is a capacity-bounded, most-recent-first list of searches backed by
// a SQLite key-value table. All mutation happens under one mutex; callers
// are expected to use it from a single surface at a time.
type Store struct {
	db     *sql.DB
	logger *log.Logger

	mu      sync.Mutex
	entries []Entry
}

// Open opens (creating if needed) the store at dbPath and loads what is
// persisted there.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	s := &Store{
		db:     db,
		logger: log.ForComponent("recent"),
	}
	s.entries = s.load()
	return s, nil
}

// load reads the persisted envelope. Any decode problem yields an empty
// list, never an error.
func (s *Store) load() []Entry {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, storageKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		s.logger.Warnf("reading recent searches: %v", err)
		return nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		s.logger.Warnf("discarding malformed recent searches: %v", err)
		return nil
	}
	if env.Version != schemaVersion {
		s.logger.Warnf("discarding recent searches with unknown schema version %d", env.Version)
		return nil
	}

	entries := env.Entries
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	return entries
}

// persist writes the current list. Failures are logged and dropped.
func (s *Store) persist() {
	env := envelope{Version: schemaVersion, Entries: s.entries}
	raw, err := json.Marshal(env)
	if err != nil {
		s.logger.Warnf("encoding recent searches: %v", err)
		return
	}
	if _, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		storageKey, string(raw),
	); err != nil {
		s.logger.Warnf("persisting recent searches: %v", err)
	}
}

// Record remembers a search. An existing entry with the same query
// (case-insensitive) moves to the front instead of duplicating; the list is
// truncated to Capacity. Returns the stored entry.
func (s *Store) Record(query, subtitle string) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if strings.EqualFold(e.Query, query) {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Query:     query,
		Subtitle:  subtitle,
		Timestamp: time.Now().UTC(),
	}
	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > Capacity {
		s.entries = s.entries[:Capacity]
	}

	s.persist()
	return entry
}

// Remove deletes the entry with the given id. Unknown ids are a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.persist()
			return
		}
	}
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.persist()
}

// List returns the entries, most recent first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
