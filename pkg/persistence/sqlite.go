package persistence

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kevinmastascusa/symbolic-math-ai/pkg/datasets"
	"github.com/kevinmastascusa/symbolic-math-ai/pkg/errors"
)

// SQLiteStore persists tables in a single SQLite database, one row per
// problem, extras serialized as a JSON column.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.PersistenceFailed, "failed to open sqlite database"),
			errors.Fields{"path": path})
	}

	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, path: path}
	if err := store.initDB(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.PersistenceFailed, "failed to initialize database schema")
	}

	return store, nil
}

func (s *SQLiteStore) initDB() error {
	query := `
	CREATE TABLE IF NOT EXISTS problems (
		family TEXT NOT NULL,
		split TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		extras TEXT,
		PRIMARY KEY (family, split, position)
	);

	CREATE INDEX IF NOT EXISTS idx_problems_id ON problems(family, split, id);
	`

	_, err := s.db.Exec(query)
	return err
}

// SaveTable replaces any previously saved rows for the table's family and
// split inside one transaction.
func (s *SQLiteStore) SaveTable(ctx context.Context, t *datasets.Table) error {
	if t == nil {
		return errors.New(errors.InvalidInput, "nil table")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.PersistenceFailed, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM problems WHERE family = ? AND split = ?`,
		string(t.Family), string(t.Split)); err != nil {
		return errors.Wrap(err, errors.PersistenceFailed, "failed to clear previous rows")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO problems (family, split, position, id, question, answer, extras)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, errors.PersistenceFailed, "failed to prepare insert")
	}
	defer stmt.Close()

	for i, p := range t.Problems {
		var extras []byte
		if len(p.Extras) > 0 {
			extras, err = json.Marshal(p.Extras)
			if err != nil {
				return errors.WithFields(
					errors.Wrap(err, errors.PersistenceFailed, "failed to encode extras"),
					errors.Fields{"id": p.ID})
			}
		}
		if _, err := stmt.ExecContext(ctx,
			string(t.Family), string(t.Split), i, p.ID, p.Question, p.Answer, extras); err != nil {
			return errors.WithFields(
				errors.Wrap(err, errors.PersistenceFailed, "failed to insert record"),
				errors.Fields{"id": p.ID})
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.PersistenceFailed, "failed to commit table")
	}
	return nil
}

// LoadTable reads a previously saved table back, in its original order.
func (s *SQLiteStore) LoadTable(ctx context.Context, family datasets.Family, split datasets.Split) (*datasets.Table, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, extras FROM problems
		WHERE family = ? AND split = ?
		ORDER BY position`,
		string(family), string(split))
	if err != nil {
		return nil, errors.Wrap(err, errors.PersistenceFailed, "failed to query saved table")
	}
	defer rows.Close()

	table := &datasets.Table{Family: family, Split: split}
	for rows.Next() {
		var p datasets.Problem
		var extras []byte
		if err := rows.Scan(&p.ID, &p.Question, &p.Answer, &extras); err != nil {
			return nil, errors.Wrap(err, errors.PersistenceFailed, "failed to scan row")
		}
		p.Dataset = family
		p.Split = split
		if len(extras) > 0 {
			if err := json.Unmarshal(extras, &p.Extras); err != nil {
				return nil, errors.WithFields(
					errors.Wrap(err, errors.PersistenceFailed, "failed to decode extras"),
					errors.Fields{"id": p.ID})
			}
		}
		table.Problems = append(table.Problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.PersistenceFailed, "failed to read saved table")
	}

	if len(table.Problems) == 0 {
		return nil, errors.WithFields(
			errors.New(errors.DatasetNotFound, "no saved table"),
			errors.Fields{"family": string(family), "split": string(split), "path": s.path})
	}

	return table, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
