// Package sqlite implements ports.Backend on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"focusboard/internal/ports"
)

const schemaVersion = "2"

// DefaultBusyTimeout is how long a connection waits on a locked database
const DefaultBusyTimeout = 5 * time.Second

// Options configures a Store
type Options struct {
	// BackupDir receives one sub-directory per backup. Defaults to
	// "database_backups" next to the database directory.
	BackupDir   string
	BusyTimeout time.Duration
	Logger      logrus.FieldLogger
}

// Store implements ports.Backend using SQLite
type Store struct {
	db        *sql.DB
	path      string
	backupDir string
	log       logrus.FieldLogger
	now       func() time.Time
}

// Ensure Store implements Backend
var _ ports.Backend = (*Store)(nil)

// Open opens (creating when missing) the database at path and brings its
// schema up to date
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = DefaultBusyTimeout
	}
	if opts.BackupDir == "" {
		opts.BackupDir = filepath.Join(filepath.Dir(filepath.Dir(path)), "database_backups")
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=%d",
		path, opts.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{
		db:        db,
		path:      path,
		backupDir: opts.BackupDir,
		log:       opts.Logger.WithField("component", "sqlite"),
		now:       func() time.Time { return time.Now().UTC() },
	}

	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	s.log.WithField("path", path).Info("Database ready")
	return s, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Close flushes the WAL and closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		s.log.WithError(err).Warn("Failed to flush WAL")
	}
	return s.db.Close()
}

// migrate creates the schema. Databases written before tabs were ordered
// and notes nested lack some columns; those are added in place.
func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		PRAGMA auto_vacuum = INCREMENTAL;

		CREATE TABLE IF NOT EXISTS tabs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			order_id INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT,
			tab_id INTEGER REFERENCES tabs(id) ON DELETE CASCADE,
			parent_id INTEGER REFERENCES notes(id) ON DELETE CASCADE,
			order_id INTEGER,
			note_type TEXT NOT NULL DEFAULT 'basic',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	added := []struct{ table, column, decl string }{
		{"tabs", "order_id", "INTEGER"},
		{"notes", "parent_id", "INTEGER REFERENCES notes(id) ON DELETE CASCADE"},
		{"notes", "order_id", "INTEGER"},
		{"notes", "note_type", "TEXT NOT NULL DEFAULT 'basic'"},
	}
	for _, c := range added {
		ok, err := s.hasColumn(ctx, c.table, c.column)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		s.log.WithFields(logrus.Fields{"table": c.table, "column": c.column}).Info("Adding column")
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, c.table, c.column, c.decl)); err != nil {
			return fmt.Errorf("add %s.%s: %w", c.table, c.column, err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_notes_tab ON notes(tab_id, parent_id, order_id);
		CREATE INDEX IF NOT EXISTS idx_notes_parent ON notes(parent_id);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
	`, schemaVersion)
	return err
}

func (s *Store) hasColumn(ctx context.Context, table, column string) (bool, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// SchemaVersion returns the schema version recorded in the database
func (s *Store) SchemaVersion(ctx context.Context) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&v)
	return v, err
}
