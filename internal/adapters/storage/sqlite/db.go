// Package sqlite es el record store single-binary (dev, demos, tests sin Postgres).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS pets (
	id                      TEXT PRIMARY KEY,
	user_id                 TEXT NOT NULL,
	name                    TEXT NOT NULL,
	species                 TEXT NOT NULL,
	breed                   TEXT,
	birth_date              TEXT,
	color                   TEXT,
	distinguishing_features TEXT,
	bio                     TEXT,
	profile_picture_url     TEXT,
	created_at              TEXT NOT NULL,
	updated_at              TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS pets_user_id_created_at_idx ON pets (user_id, created_at);
CREATE TABLE IF NOT EXISTS users (
	id                  TEXT PRIMARY KEY,
	username            TEXT NOT NULL UNIQUE,
	email               TEXT NOT NULL,
	full_name           TEXT,
	profile_picture_url TEXT,
	created_at          TEXT NOT NULL
);
`

// Open abre (y crea si hace falta) la base. ":memory:" o "" => base en memoria.
func Open(path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	inMemory := path == "" || path == ":memory:"
	if inMemory {
		path = ":memory:"
	} else if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Cada conexión a :memory: es una base distinta; y sqlite serializa escrituras igual.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// Migrate crea el schema (idempotente).
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("sqlite migrate: %w", err)
	}
	return nil
}
