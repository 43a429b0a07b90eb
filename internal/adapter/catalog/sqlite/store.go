// Package sqlitecatalog keeps the action and buff catalog in a local
// SQLite file so operators can patch definitions without a rebuild.
package sqlitecatalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"pillforge/internal/app/ports"
	"pillforge/internal/domain/craft"
)

// Store implements ports.CatalogProvider on top of a SQLite file.
// Definitions are stored as JSON documents keyed by id, so schema
// changes in the craft types do not require a table migration.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the catalog database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog db: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS actions (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		doc TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS buffs (
		name TEXT PRIMARY KEY,
		doc TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Action returns the stored definition. Unknown ids map onto
// ports.ErrNotFound so intake can report them by name instead of
// failing the whole dump.
func (s *Store) Action(ctx context.Context, id string) (craft.Action, error) {
	var doc string
	err := s.db.GetContext(ctx, &doc, "SELECT doc FROM actions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return craft.Action{}, ports.ErrNotFound
	}
	if err != nil {
		return craft.Action{}, err
	}
	var a craft.Action
	if err := json.Unmarshal([]byte(doc), &a); err != nil {
		return craft.Action{}, fmt.Errorf("decode action %s: %w", id, err)
	}
	return a, nil
}

func (s *Store) Buff(ctx context.Context, name string) (craft.Buff, error) {
	var doc string
	err := s.db.GetContext(ctx, &doc, "SELECT doc FROM buffs WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return craft.Buff{}, ports.ErrNotFound
	}
	if err != nil {
		return craft.Buff{}, err
	}
	var b craft.Buff
	if err := json.Unmarshal([]byte(doc), &b); err != nil {
		return craft.Buff{}, fmt.Errorf("decode buff %s: %w", name, err)
	}
	return b, nil
}

func (s *Store) ActionIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	if err := s.db.SelectContext(ctx, &ids, "SELECT id FROM actions ORDER BY id"); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) BuffNames(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := s.db.SelectContext(ctx, &names, "SELECT name FROM buffs ORDER BY name"); err != nil {
		return nil, err
	}
	return names, nil
}
