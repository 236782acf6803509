// Package prefs persists per-user toolbar preferences in sqlite: theme and
// last style defaults. Drawing content and the reveal-once seen flags are
// deliberately not stored; a new toolbar instance always starts unseen.
package prefs

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is a sqlite-backed key/value preference store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path and applies pending migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("prefs migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// The preference keys match toolbar cell names so a snapshot can feed a state
// patch directly.
var snapshotKeys = []string{
	"theme", "stroke_width", "opacity", "dash_length", "dash_gap",
	"font_family", "font_size", "text_align",
}

// Set upserts one preference.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	return err
}

// Get returns the stored value and whether it exists.
func (s *Store) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// SetNumber stores a numeric preference.
func (s *Store) SetNumber(key string, v float64) error {
	return s.Set(key, strconv.FormatFloat(v, 'g', -1, 64))
}

// Snapshot returns the stored style preferences shaped as a toolbar state
// patch: numeric cells as float64, the rest as strings. Absent keys are
// omitted so toolbar defaults win.
func (s *Store) Snapshot() (map[string]any, error) {
	patch := make(map[string]any)
	for _, key := range snapshotKeys {
		v, ok, err := s.Get(key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil && numericKey(key) {
			patch[key] = f
			continue
		}
		patch[key] = v
	}
	return patch, nil
}

func numericKey(key string) bool {
	switch key {
	case "stroke_width", "opacity", "dash_length", "dash_gap":
		return true
	}
	return false
}
