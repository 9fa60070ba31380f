// Package storage persists the transaction collection in a SQLite-backed
// key-value store. The entire collection lives as one JSON blob under a
// fixed key; every save overwrites the whole blob. Single-writer assumption:
// no cross-process coordination is provided.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ymykhal/pocket/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// transactionsKey is the fixed key the collection is stored under. The value
// is carried over from the original browser build so existing exports of
// that store remain recognizable.
const transactionsKey = "expense-tracker:transactions"

const schemaVersion = 1

// SQLiteStore implements the ledger's Persistence interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("dbPath cannot be empty")
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db, dbPath: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if version < schemaVersion {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
	}
	return nil
}

// Load reads the stored collection. A missing key or an unparseable blob both
// yield an empty collection: corruption is "no data", never a fatal error.
func (s *SQLiteStore) Load(ctx context.Context) []model.Transaction {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, transactionsKey).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		slog.Warn("failed to read persisted transactions, starting empty",
			"db_path", s.dbPath,
			"error", err)
		return nil
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(raw, &transactions); err != nil {
		slog.Warn("persisted transactions are corrupt, starting empty",
			"db_path", s.dbPath,
			"error", err)
		return nil
	}
	return transactions
}

// Save serializes the full collection and overwrites the stored blob. There
// are no partial or append writes.
func (s *SQLiteStore) Save(ctx context.Context, transactions []model.Transaction) error {
	if transactions == nil {
		// Persist an empty array rather than JSON null so old readers
		// of the blob keep parsing it as a collection.
		transactions = []model.Transaction{}
	}
	raw, err := json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("failed to serialize transactions: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, transactionsKey, raw); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
