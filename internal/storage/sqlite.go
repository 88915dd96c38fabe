package storage

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLite is the durable KV, one row per key in a sqlite file.
type SQLite struct{ db *sqlx.DB }

// OpenSQLite opens (or creates) the store at dsn and ensures its schema.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS local_store(
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLite) Get(key string) (string, bool, error) {
	var v string
	err := s.db.Get(&v, `SELECT value FROM local_store WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *SQLite) Set(key, value string) error {
	_, err := s.db.Exec(`
	  INSERT INTO local_store(key, value, updated_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(key) DO UPDATE
	  SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

func (s *SQLite) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM local_store WHERE key = ?`, key)
	return err
}

func (s *SQLite) Close() error { return s.db.Close() }
