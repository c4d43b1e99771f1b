// Package store persists check templates in sqlite so a registry survives
// between ct invocations.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"github.com/tormodhaugland/ct/internal/log"
	"github.com/tormodhaugland/ct/internal/protocol"
	"github.com/tormodhaugland/ct/internal/template"
)

// DB wraps the sqlite connection holding the templates table.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the template database at the given path.
func Open(dbPath string) (*DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// a single connection keeps :memory: databases coherent
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	db := &DB{conn: conn, path: dbPath}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Debug(log.CatStore, "database opened", "path", dbPath)
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var currentVersion int
	row := db.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting schema version: %w", err)
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := db.conn.Exec(m.sql); err != nil {
			return fmt.Errorf("migration v%d: %w", m.version, err)
		}
		if _, err := db.conn.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("recording migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// seq orders rows by insertion; id carries the uniqueness invariant.
const migrationV1 = `
CREATE TABLE templates (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	protocol    TEXT NOT NULL
);
`

// Templates returns every stored template in insertion order.
func (db *DB) Templates() ([]template.Template, error) {
	rows, err := db.conn.Query("SELECT id, title, description, protocol FROM templates ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var out []template.Template
	for rows.Next() {
		var t template.Template
		var proto string
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &proto); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		t.Protocol = protocol.Protocol(proto)
		out = append(out, t)
	}
	return out, rows.Err()
}

// Put appends t. A taken id yields *template.DuplicateIDError.
func (db *DB) Put(t template.Template) error {
	_, err := db.conn.Exec(
		"INSERT INTO templates (id, title, description, protocol) VALUES (?, ?, ?, ?)",
		t.ID, t.Title, t.Description, string(t.Protocol),
	)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return &template.DuplicateIDError{ID: t.ID}
		}
		return fmt.Errorf("inserting template %s: %w", t.ID, err)
	}
	return nil
}

// Count returns the number of stored templates.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM templates").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting templates: %w", err)
	}
	return n, nil
}
