package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	q    querier
	path string
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// schema holds every collection in one table keyed by (collection, id).
// The implicit rowid keeps insertion order across upserts.
const schema = `
CREATE TABLE IF NOT EXISTS records (
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    data TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (collection, id)
);

CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT
);
`

// schemaVersion is recorded in metadata for future migrations.
const schemaVersion = 1

// NewSQLiteStore opens (creating if needed) the database at cfg.Path.
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	dbPath := cfg.Path
	if dbPath == "" {
		var err error
		dbPath, err = GetDBPath()
		if err != nil {
			return nil, fmt.Errorf("get db path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logrus.Debugf("opened record store at %s", dbPath)
	return &SQLiteStore{db: db, q: db, path: dbPath}, nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	var current string
	err := db.QueryRow(`SELECT value FROM metadata WHERE key = 'schema_version'`).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		logrus.Debugf("initializing record store schema version %d", schemaVersion)
		_, err = db.Exec(`INSERT INTO metadata (key, value) VALUES ('schema_version', ?)`, strconv.Itoa(schemaVersion))
		return err
	case err != nil:
		return err
	}

	version, err := strconv.Atoi(current)
	if err != nil {
		return fmt.Errorf("invalid schema version %q: %w", current, err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	rows, err := s.q.QueryContext(ctx,
		`SELECT data FROM records WHERE collection = ? ORDER BY rowid`, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		out = append(out, json.RawMessage(data))
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	var data string
	err := s.q.QueryRowContext(ctx,
		`SELECT data FROM records WHERE collection = ? AND id = ?`, collection, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", collection, id, err)
	}
	return json.RawMessage(data), nil
}

func (s *SQLiteStore) Put(ctx context.Context, collection, id string, value any) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	data, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", collection, id, err)
	}
	_, err = s.q.ExecContext(ctx, `
		INSERT INTO records (collection, id, data) VALUES (?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		collection, id, string(data))
	if err != nil {
		return fmt.Errorf("put %s %s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLiteStore) Add(ctx context.Context, collection, id string, value any) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	data, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", collection, id, err)
	}
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO records (collection, id, data) VALUES (?, ?, ?)
		ON CONFLICT(collection, id) DO NOTHING`,
		collection, id, string(data))
	if err != nil {
		return fmt.Errorf("add %s %s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("add %s %s: %w", collection, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", collection, id, ErrExists)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	if _, err := s.q.ExecContext(ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`, collection, id); err != nil {
		return fmt.Errorf("delete %s %s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, collection string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	if _, err := s.q.ExecContext(ctx, `DELETE FROM records WHERE collection = ?`, collection); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}
	return nil
}

// InTx runs fn against a store bound to one transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
func (s *SQLiteStore) InTx(ctx context.Context, fn func(Store) error) error {
	if _, nested := s.q.(*sql.Tx); nested {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(&SQLiteStore{db: s.db, q: tx, path: s.path}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logrus.Warnf("rollback failed: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close closes the database. It is a no-op on a store handed out by InTx.
func (s *SQLiteStore) Close() error {
	if _, inTx := s.q.(*sql.Tx); inTx {
		return nil
	}
	return s.db.Close()
}
