package metastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/leapstack-labs/leapmodel/pkg/core"
)

// SQLiteStore is a DocumentStore backed by a SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ core.DocumentStore = (*SQLiteStore)(nil)

// NewSQLiteStore creates a store. Open must be called before use.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// NewSQLiteStoreWithDB wraps an open database connection. The schema is
// expected to be migrated.
func NewSQLiteStoreWithDB(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	s := NewSQLiteStore(logger)
	s.db = db
	return s
}

// Open opens the database at path and migrates it.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(ctx context.Context, path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open metastore: %w", err)
	}
	if path == ":memory:" {
		// :memory: databases are per connection
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping metastore: %w", err)
	}

	s.db = db
	s.path = path
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		s.db = nil
		return err
	}
	s.logger.Debug("opened metastore", "path", path)
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database path given to Open.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Put creates or replaces a document.
func (s *SQLiteStore) Put(ctx context.Context, ns core.Namespace, name string, doc []byte) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if name == "" {
		return fmt.Errorf("%w: document name is required", core.ErrValidation)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (namespace, name, body, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (namespace, name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		string(ns), name, doc, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to put document %s/%s: %w", ns, name, err)
	}
	return nil
}

// Get returns a document or an error wrapping core.ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, ns core.Namespace, name string) ([]byte, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE namespace = ? AND name = ?`,
		string(ns), name,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", core.ErrNotFound, ns, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", ns, name, err)
	}
	return body, nil
}

// List returns the document names in a namespace, sorted.
func (s *SQLiteStore) List(ctx context.Context, ns core.Namespace) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM documents WHERE namespace = ? ORDER BY name`,
		string(ns),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in %s: %w", ns, err)
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan document name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, ns core.Namespace, name string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE namespace = ? AND name = ?`,
		string(ns), name,
	); err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", ns, name, err)
	}
	return nil
}
