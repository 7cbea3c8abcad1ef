// Package store provides a SQLite-backed record store: named collections of
// JSON documents with create/read/update/delete/list/filter access.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       TEXT NOT NULL,
	created    INTEGER NOT NULL,
	updated    INTEGER NOT NULL,
	PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS idx_records_created ON records(collection, created);
`

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNoStore is returned by writes on a nil store.
	ErrNoStore = errors.New("record store is not open")

	fieldRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Record is one stored document.
type Record struct {
	Collection string
	ID         string
	Data       json.RawMessage
	Created    time.Time
	Updated    time.Time
}

// Decode unmarshals the record data into v.
func (r Record) Decode(v any) error {
	return json.Unmarshal(r.Data, v)
}

// Store is a SQLite-backed record store.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens a record database at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open record db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Create stores data (any JSON-marshalable value) under a new id in
// collection and returns the id.
func (s *Store) Create(collection string, data any) (string, error) {
	if s == nil {
		return "", ErrNoStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return create(s.db, collection, data)
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func create(db execer, collection string, data any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal %s record: %w", collection, err)
	}
	id := uuid.NewString()
	now := time.Now().Unix()
	if _, err := db.Exec(
		"INSERT INTO records (collection, id, data, created, updated) VALUES (?, ?, ?, ?, ?)",
		collection, id, string(raw), now, now,
	); err != nil {
		return "", fmt.Errorf("insert %s record: %w", collection, err)
	}
	return id, nil
}

// Get returns the record with id in collection. Safe to call on a nil
// receiver (returns ErrNotFound).
func (s *Store) Get(collection, id string) (Record, error) {
	if s == nil {
		return Record{}, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(
		"SELECT collection, id, data, created, updated FROM records WHERE collection = ? AND id = ?",
		collection, id,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// Update replaces the data of an existing record.
func (s *Store) Update(collection, id string, data any) error {
	if s == nil {
		return ErrNoStore
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", collection, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"UPDATE records SET data = ?, updated = ? WHERE collection = ? AND id = ?",
		string(raw), time.Now().Unix(), collection, id,
	)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record. Deleting a missing record returns ErrNotFound.
func (s *Store) Delete(collection, id string) error {
	if s == nil {
		return ErrNoStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM records WHERE collection = ? AND id = ?", collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every record in collection, oldest first. Safe to call on a
// nil receiver.
func (s *Store) List(collection string) ([]Record, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		"SELECT collection, id, data, created, updated FROM records WHERE collection = ? ORDER BY created, rowid",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return collect(rows)
}

// Filter returns the records in collection whose top-level JSON field
// equals value.
func (s *Store) Filter(collection, field string, value any) ([]Record, error) {
	if s == nil {
		return nil, nil
	}
	if !fieldRe.MatchString(field) {
		return nil, fmt.Errorf("invalid field name %q", field)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		"SELECT collection, id, data, created, updated FROM records "+
			"WHERE collection = ? AND json_extract(data, ?) = ? ORDER BY created, rowid",
		collection, "$."+field, value,
	)
	if err != nil {
		return nil, fmt.Errorf("filter %s by %s: %w", collection, field, err)
	}
	return collect(rows)
}

// --- Helpers ---

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec              Record
		data             string
		created, updated int64
	)
	if err := row.Scan(&rec.Collection, &rec.ID, &data, &created, &updated); err != nil {
		return Record{}, err
	}
	rec.Data = json.RawMessage(data)
	rec.Created = time.Unix(created, 0)
	rec.Updated = time.Unix(updated, 0)
	return rec, nil
}

func collect(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			log.Warn().Err(err).Msg("skipping unreadable record")
			continue
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
