// Package sqlitestore persists preferences to a SQLite database through
// modernc.org/sqlite. Entries are JSON-encoded rows in a single key/value
// table; the namespace column lets several applications share one file.
package sqlitestore

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_meta (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS preferences (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	kind       TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (namespace, key)
);

CREATE INDEX IF NOT EXISTS idx_preferences_namespace ON preferences(namespace);
`

const (
	kindScalar = "scalar"
	kindList   = "list"
)

// Adapter stores one namespace's entries in a SQLite database. Safe to
// share across goroutines; the database serialises access.
type Adapter struct {
	db        *sql.DB
	namespace string
}

// New opens (or creates) the database at path and ensures the schema is at
// the current version.
func New(path, namespace string) (*Adapter, error) {
	if namespace == "" {
		return nil, fmt.Errorf("sqlitestore: namespace is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // sqlite

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Adapter{db: db, namespace: namespace}, nil
}

// Close releases the database handle.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) SaveValue(key string, value any) error {
	return a.put(key, kindScalar, value)
}

func (a *Adapter) LoadValue(key string, def any) (any, error) {
	raw, ok, err := a.get(key, kindScalar)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	var out any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("sqlitestore: decode %q: %w", key, err)
	}
	return out, nil
}

func (a *Adapter) SaveList(key string, values []any) error {
	return a.put(key, kindList, values)
}

func (a *Adapter) LoadList(key string, def []any) ([]any, error) {
	raw, ok, err := a.get(key, kindList)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	var out []any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("sqlitestore: decode %q: %w", key, err)
	}
	return out, nil
}

// Clear removes every entry in this adapter's namespace. Other namespaces
// in the same file are untouched.
func (a *Adapter) Clear() error {
	if _, err := a.db.Exec("DELETE FROM preferences WHERE namespace = ?", a.namespace); err != nil {
		return fmt.Errorf("sqlitestore: clear %q: %w", a.namespace, err)
	}
	return nil
}

func (a *Adapter) put(key, kind string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("sqlitestore: encode %q: %w", key, err)
	}
	_, err = a.db.Exec(`
		INSERT INTO preferences (namespace, key, kind, value, updated_at)
		VALUES (?, ?, ?, ?, datetime('now'))
		ON CONFLICT(namespace, key) DO UPDATE SET
			kind = excluded.kind,
			value = excluded.value,
			updated_at = excluded.updated_at
	`, a.namespace, key, kind, string(encoded))
	if err != nil {
		return fmt.Errorf("sqlitestore: save %q: %w", key, err)
	}
	return nil
}

func (a *Adapter) get(key, kind string) (string, bool, error) {
	var storedKind, value string
	err := a.db.QueryRow(`
		SELECT kind, value FROM preferences
		WHERE namespace = ? AND key = ?
	`, a.namespace, key).Scan(&storedKind, &value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlitestore: load %q: %w", key, err)
	}
	if storedKind != kind {
		return "", false, fmt.Errorf("sqlitestore: %q holds a %s, not a %s", key, storedKind, kind)
	}
	return value, true, nil
}

func migrate(db *sql.DB) error {
	ver, err := currentSchemaVersion(db)
	if err != nil {
		return fmt.Errorf("sqlitestore: check schema version: %w", err)
	}
	if ver >= schemaVersion {
		return nil
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlitestore: create schema: %w", err)
	}
	if _, err := db.Exec("DELETE FROM schema_meta"); err != nil {
		return fmt.Errorf("sqlitestore: reset schema version: %w", err)
	}
	if _, err := db.Exec("INSERT INTO schema_meta (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("sqlitestore: record schema version: %w", err)
	}
	return nil
}

// currentSchemaVersion returns the version from schema_meta, or 0 when the
// table does not exist yet.
func currentSchemaVersion(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_meta'
	`).Scan(&count)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	var ver int
	err = db.QueryRow("SELECT version FROM schema_meta LIMIT 1").Scan(&ver)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return ver, err
}
