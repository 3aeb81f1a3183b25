// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a SQLite history of converted modules: which
// module produced which header, its size and checksum, and when.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/tracker-embed/pkg/types"
)

// defaultLimit caps List when no limit is given.
const defaultLimit = 100

// Store manages the catalog SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the catalog database at cfg.Path and creates
// the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("catalog path required")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: cfg.Path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			symbol TEXT NOT NULL,
			source_path TEXT NOT NULL,
			header_path TEXT NOT NULL,
			size INTEGER NOT NULL,
			sha256 TEXT NOT NULL,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_name ON conversions(name)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one conversion. It satisfies convert.Recorder.
func (s *Store) Record(ctx context.Context, c types.Conversion) error {
	ts := c.ConvertedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (name, symbol, source_path, header_path, size, sha256, converted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Symbol, c.SourcePath, c.HeaderPath, c.Size, c.SHA256,
		ts.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion %s: %w", c.Name, err)
	}
	return nil
}

// ListOptions filters catalog queries.
type ListOptions struct {
	// Name restricts results to one module base name.
	Name string

	// Latest keeps only the most recent conversion of each name.
	Latest bool

	// Limit caps the result count. Zero uses the default of 100.
	Limit int
}

// List returns recorded conversions, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.Conversion, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT c.name, c.symbol, c.source_path, c.header_path, c.size, c.sha256, c.converted_at
		FROM conversions c
		WHERE 1=1`)

	if opts.Name != "" {
		qb.WriteString(` AND c.name = ?`)
		args = append(args, opts.Name)
	}
	if opts.Latest {
		qb.WriteString(` AND c.id = (SELECT MAX(id) FROM conversions WHERE name = c.name)`)
	}

	qb.WriteString(` ORDER BY c.id DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var out []types.Conversion
	for rows.Next() {
		var (
			c  types.Conversion
			ts string
		)
		if err := rows.Scan(&c.Name, &c.Symbol, &c.SourcePath, &c.HeaderPath, &c.Size, &c.SHA256, &ts); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		c.ConvertedAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing converted_at %q: %w", ts, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
