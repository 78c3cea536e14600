package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps records in a local SQLite database, one row per record
// key, upserted in place. It is the durable default backend.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath, creating the directory and
// applying migrations as needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	slog.Info("SQLite record store ready", "path", dbPath)
	return &SQLiteStore{db: db}, nil
}

// SaveRecord upserts the payload stored under key.
func (s *SQLiteStore) SaveRecord(ctx context.Context, key string, payload []byte) error {
	query := `
		INSERT INTO trip_records (key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`

	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, query, key, payload, updatedAt); err != nil {
		return fmt.Errorf("save record %q: %w", key, err)
	}

	slog.DebugContext(ctx, "Record saved", "key", key, "bytes", len(payload))
	return nil
}

// LoadRecord returns the payload stored under key; found is false when the
// key has never been written.
func (s *SQLiteStore) LoadRecord(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM trip_records WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load record %q: %w", key, err)
	}
	return payload, true, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
