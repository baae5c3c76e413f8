// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog maintains a SQLite registry of generated vaults so past
// runs can be listed and inspected without re-reading every vault on disk.
// See docs/ARCHITECTURE.md § Vault Catalog.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	catalogDir = "catalog"
	dbFile     = "vaults.db"
)

// Store manages the vault catalog SQLite database.
type Store struct {
	db *sql.DB
}

// VaultRecord is one cataloged generation run.
type VaultRecord struct {
	Name      string    `json:"name"`
	MainTopic string    `json:"main_topic"`
	Path      string    `json:"path"`
	NoteCount int       `json:"note_count"`
	Density   float64   `json:"density"`
	Seed      int64     `json:"seed"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteRecord is one cataloged note within a vault.
type NoteRecord struct {
	Topic    string `json:"topic"`
	NoteType string `json:"note_type"`
	Degree   int    `json:"degree"`
	Filename string `json:"filename"`
}

// Open opens or creates the catalog database at <baseDir>/catalog/vaults.db
// and creates the schema if it does not exist.
func Open(baseDir string) (*Store, error) {
	dir := filepath.Join(baseDir, catalogDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS vaults (
			name TEXT PRIMARY KEY,
			main_topic TEXT NOT NULL,
			path TEXT NOT NULL,
			note_count INTEGER NOT NULL,
			density REAL NOT NULL,
			seed INTEGER NOT NULL,
			model TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			vault_name TEXT NOT NULL REFERENCES vaults(name) ON DELETE CASCADE,
			topic TEXT NOT NULL,
			note_type TEXT NOT NULL,
			degree INTEGER NOT NULL,
			filename TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_vault_name ON notes(vault_name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts a vault and its notes. Re-generating a vault under the
// same name replaces its previous catalog entry.
func (s *Store) Record(ctx context.Context, vault VaultRecord, notes []NoteRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE vault_name = ?`, vault.Name); err != nil {
		return fmt.Errorf("clearing previous notes: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vaults (name, main_topic, path, note_count, density, seed, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			main_topic = excluded.main_topic,
			path = excluded.path,
			note_count = excluded.note_count,
			density = excluded.density,
			seed = excluded.seed,
			model = excluded.model,
			created_at = excluded.created_at`,
		vault.Name, vault.MainTopic, vault.Path, vault.NoteCount,
		vault.Density, vault.Seed, vault.Model, vault.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording vault %s: %w", vault.Name, err)
	}

	for _, n := range notes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO notes (vault_name, topic, note_type, degree, filename)
			VALUES (?, ?, ?, ?, ?)`,
			vault.Name, n.Topic, n.NoteType, n.Degree, n.Filename)
		if err != nil {
			return fmt.Errorf("recording note %s: %w", n.Topic, err)
		}
	}

	return tx.Commit()
}

// List returns all cataloged vaults, most recent first.
func (s *Store) List(ctx context.Context) ([]VaultRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, main_topic, path, note_count, density, seed, model, created_at
		FROM vaults ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying vaults: %w", err)
	}
	defer rows.Close()

	var vaults []VaultRecord
	for rows.Next() {
		v, err := scanVault(rows)
		if err != nil {
			return nil, err
		}
		vaults = append(vaults, v)
	}
	return vaults, rows.Err()
}

// Show returns one vault and its notes ordered by degree descending, then
// by topic for a stable listing.
func (s *Store) Show(ctx context.Context, name string) (VaultRecord, []NoteRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, main_topic, path, note_count, density, seed, model, created_at
		FROM vaults WHERE name = ?`, name)

	v, err := scanVault(row)
	if err == sql.ErrNoRows {
		return VaultRecord{}, nil, fmt.Errorf("vault %q not found in catalog", name)
	}
	if err != nil {
		return VaultRecord{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT topic, note_type, degree, filename
		FROM notes WHERE vault_name = ?
		ORDER BY degree DESC, topic ASC`, name)
	if err != nil {
		return VaultRecord{}, nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []NoteRecord
	for rows.Next() {
		var n NoteRecord
		if err := rows.Scan(&n.Topic, &n.NoteType, &n.Degree, &n.Filename); err != nil {
			return VaultRecord{}, nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, n)
	}
	return v, notes, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVault(sc scanner) (VaultRecord, error) {
	var v VaultRecord
	var createdAt string
	if err := sc.Scan(&v.Name, &v.MainTopic, &v.Path, &v.NoteCount,
		&v.Density, &v.Seed, &v.Model, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return VaultRecord{}, err
		}
		return VaultRecord{}, fmt.Errorf("scanning vault: %w", err)
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return VaultRecord{}, fmt.Errorf("parsing created_at for vault %s: %w", v.Name, err)
	}
	v.CreatedAt = t
	return v, nil
}
