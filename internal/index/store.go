// Package index builds and queries the icon search index: a SQLite file
// holding a normalized record table plus an FTS5 token table over icon
// names and flattened aliases.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrCorrupt indicates the index file is unusable: missing tables or a
// record/token row-count mismatch.
var ErrCorrupt = errors.New("search index corrupt")

// ErrInvalidQuery indicates a malformed search query (e.g. empty).
var ErrInvalidQuery = errors.New("invalid search query")

const (
	// createIconsTable is the normalized record store. One row per icon,
	// with the license title denormalized for fast attribution lookup.
	createIconsTable = `
		CREATE TABLE IF NOT EXISTS icons (
			oid     INTEGER PRIMARY KEY,
			prefix  TEXT NOT NULL,
			name    TEXT NOT NULL,
			full_id TEXT NOT NULL,
			aliases TEXT NOT NULL DEFAULT '',
			license TEXT NOT NULL DEFAULT ''
		)
	`

	createPrefixIndex = `CREATE INDEX IF NOT EXISTS idx_icons_prefix ON icons(prefix)`

	// createFTSTable is the inverted token index. tokens is the icon name
	// joined with its flattened alias set.
	createFTSTable = `
		CREATE VIRTUAL TABLE IF NOT EXISTS icons_fts
		USING fts5(prefix, name, full_id, tokens)
	`

	createMetaTable = `
		CREATE TABLE IF NOT EXISTS index_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
)

// Store wraps the SQLite index file.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (and if writable, initializes) the index at path.
func Open(ctx context.Context, path string, readOnly bool) (*Store, error) {
	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	if readOnly {
		dsn += "&mode=ro"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	// SQLite handles concurrency better with a single writer connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to index: %w", err)
	}

	s := &Store{db: db, path: path}
	if !readOnly {
		if err := s.initSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	for _, stmt := range []string{createIconsTable, createPrefixIndex, createFTSTable, createMetaTable} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index schema: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the index file path.
func (s *Store) Path() string {
	return s.path
}

// Counts returns the row counts of the record and token tables.
func (s *Store) Counts(ctx context.Context) (records, tokens int64, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM icons`).Scan(&records); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM icons_fts`).Scan(&tokens); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return records, tokens, nil
}

// Validate checks the record/token invariant: the two tables are rebuilt
// and committed together, so their row counts must match.
func (s *Store) Validate(ctx context.Context) error {
	records, tokens, err := s.Counts(ctx)
	if err != nil {
		return err
	}
	if records != tokens {
		return fmt.Errorf("%w: %d records vs %d token rows", ErrCorrupt, records, tokens)
	}
	return nil
}

// Record is one row of the normalized record store.
type Record struct {
	Prefix  string
	Name    string
	FullID  string
	Aliases string // space-joined flattened alias set
	License string
}

// LookupByID returns the record for a full "prefix:name" identifier.
func (s *Store) LookupByID(ctx context.Context, fullID string) (*Record, error) {
	var r Record
	err := s.db.QueryRowContext(ctx,
		`SELECT prefix, name, full_id, aliases, license FROM icons WHERE full_id = ?`,
		fullID,
	).Scan(&r.Prefix, &r.Name, &r.FullID, &r.Aliases, &r.License)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// Stats summarizes the index for the stats command.
type Stats struct {
	TotalIcons  int64
	Collections int64
	SizeBytes   int64
	BuiltAt     string
	BuildID     string
	Version     string
}

// ReadStats gathers index statistics and build metadata.
func (s *Store) ReadStats(ctx context.Context) (*Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM icons`).Scan(&st.TotalIcons); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT prefix) FROM icons`).Scan(&st.Collections); err != nil {
		return nil, err
	}
	if fi, err := os.Stat(s.path); err == nil {
		st.SizeBytes = fi.Size()
	}
	st.BuiltAt, _ = s.readMeta(ctx, "build_time")
	st.BuildID, _ = s.readMeta(ctx, "build_id")
	st.Version, _ = s.readMeta(ctx, "version")
	return &st, nil
}

func (s *Store) readMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM index_meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// Optimize compacts the FTS token index. Safe to run at any time; query
// results are unchanged.
func (s *Store) Optimize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `INSERT INTO icons_fts(icons_fts) VALUES('optimize')`); err != nil {
		return fmt.Errorf("failed to optimize index: %w", err)
	}
	return nil
}

// IsEmpty reports whether the index contains no records. Used both by
// the builder's force check and by source selection, where an empty
// bundle must not shadow a populated user index.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	records, _, err := s.Counts(ctx)
	if err != nil {
		return false, err
	}
	return records == 0, nil
}

// nowRFC3339 is the build timestamp source, swappable in tests.
var nowRFC3339 = func() string {
	return time.Now().Format(time.RFC3339)
}
