// Package metaindex maintains a local documentation index for compiler
// metadata tags and compile-time defines. The compiler's help dumps are
// parsed once per compiler version and cached in a SQLite database, so
// hover requests can attach documentation without shelling out.
package metaindex

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"
)

// docStore is a namespaced key/value store backed by SQLite with
// msgpack-encoded values.
type docStore[T any] struct {
	db *sql.DB
	mu sync.RWMutex
}

func openDocStore[T any](dbPath string) (*docStore[T], error) {
	// Ensure parent directory exists for the DB file
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	// Using _txlock=immediate to acquire locks early and avoid SQLITE_BUSY
	db, err := sql.Open("sqlite", dbPath+"?_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS docs (
			namespace TEXT NOT NULL,
			name TEXT NOT NULL,
			value BLOB NOT NULL,
			PRIMARY KEY (namespace, name)
		);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return &docStore[T]{db: db}, nil
}

// replaceNamespace swaps out all entries of one namespace in a single
// transaction.
func (s *docStore[T]) replaceNamespace(namespace string, items map[string]T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM docs WHERE namespace = ?", namespace); err != nil {
		return fmt.Errorf("failed to clear namespace: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO docs (namespace, name, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for name, item := range items {
		data, err := msgpack.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal item: %w", err)
		}
		if _, err := stmt.Exec(namespace, name, data); err != nil {
			return fmt.Errorf("failed to save item: %w", err)
		}
	}

	return tx.Commit()
}

// get returns the entry stored under namespace/name.
func (s *docStore[T]) get(namespace, name string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	var data []byte
	err := s.db.QueryRow("SELECT value FROM docs WHERE namespace = ? AND name = ?", namespace, name).Scan(&data)
	if err == sql.ErrNoRows {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("failed to query doc: %w", err)
	}

	var item T
	if err := msgpack.Unmarshal(data, &item); err != nil {
		return zero, false, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return item, true, nil
}

// count returns the number of entries in a namespace.
func (s *docStore[T]) count(namespace string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM docs WHERE namespace = ?", namespace).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count docs: %w", err)
	}
	return n, nil
}

// close releases the database handle.
func (s *docStore[T]) close() error {
	return s.db.Close()
}
