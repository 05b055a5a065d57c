package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"catalog/internal/catalog"
	"catalog/internal/fileutil"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when schema.sql
// changes; older databases must be re-exported.
const schemaVersion = 1

// ErrSchemaMismatch indicates a database written by an incompatible version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// SQLiteStore persists collections in a SQLite database file.
type SQLiteStore struct {
	schema catalog.Schema
}

// NewSQLiteStore returns a store for schema's kind.
func NewSQLiteStore(schema catalog.Schema) *SQLiteStore {
	return &SQLiteStore{schema: schema}
}

// Format reports the store's format name.
func (s *SQLiteStore) Format() string { return "sqlite" }

// Read returns the kind's rows in stored order. A missing file reports
// fs.ErrNotExist and is never created.
func (s *SQLiteStore) Read(ctx context.Context, path string) (catalog.Snapshot, error) {
	exists, err := fileutil.RegularFileExists(path)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("inspect database: %w", err)
	}
	if !exists {
		return catalog.Snapshot{}, fmt.Errorf("open database %s: %w", path, fs.ErrNotExist)
	}

	db, err := openDB(path)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	defer db.Close()

	initialized, err := checkSchema(ctx, db)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	if !initialized {
		return catalog.Snapshot{}, nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT name, category, value FROM records WHERE kind = ? ORDER BY position`,
		s.schema.Kind,
	)
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var snap catalog.Snapshot
	for rows.Next() {
		var name, category string
		var value int
		if err := rows.Scan(&name, &category, &value); err != nil {
			return catalog.Snapshot{}, fmt.Errorf("%w: sqlite: scan record: %w", catalog.ErrMalformed, err)
		}
		record, err := catalog.NewRecord(name, category, value)
		if err != nil {
			snap.Skipped++
			continue
		}
		snap.Records = append(snap.Records, record)
	}
	if err := rows.Err(); err != nil {
		return catalog.Snapshot{}, fmt.Errorf("iterate records: %w", err)
	}
	return snap, nil
}

// Write replaces the kind's rows in a single transaction. Rows of other
// kinds in the same database are left alone.
func (s *SQLiteStore) Write(ctx context.Context, path string, records []catalog.Record) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}

	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	initialized, err := checkSchema(ctx, db)
	if err != nil {
		return err
	}
	if !initialized {
		if err := createSchema(ctx, db); err != nil {
			return err
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE kind = ?`, s.schema.Kind); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (kind, position, name, category, value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, s.schema.Kind, i, r.Name(), r.Category(), r.Value()); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit records: %w", err)
	}
	return nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: sqlite: %w", catalog.ErrMalformed, err)
	}
	return db, nil
}

// checkSchema reports whether the database has been initialized and, if so,
// whether its version matches.
func checkSchema(ctx context.Context, db *sql.DB) (bool, error) {
	var tableExists int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return false, fmt.Errorf("%w: sqlite: check schema_version table: %w", catalog.ErrMalformed, err)
	}
	if tableExists == 0 {
		return false, nil
	}

	var version int
	if err := db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return false, fmt.Errorf("%w: sqlite: read schema version: %w", catalog.ErrMalformed, err)
	}
	if version != schemaVersion {
		return false, fmt.Errorf("%w: database has version %d, expected %d", ErrSchemaMismatch, version, schemaVersion)
	}
	return true, nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
