package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/tactus/baton/errors"
)

// Program is one saved compilation: the patch document that produced it, the
// generated source, and the content fingerprint that keys it.
type Program struct {
	ID        string    `json:"id"` // document fingerprint
	Name      string    `json:"name"`
	Document  []byte    `json:"document,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Save inserts the program or, when the fingerprint already exists, refreshes
// its name, document, source, and updated_at.
func (s *Store) Save(ctx context.Context, p *Program) error {
	if p.ID == "" {
		return errors.New("program has no id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO programs (id, name, document, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document = excluded.document,
			source = excluded.source,
			updated_at = CURRENT_TIMESTAMP`,
		p.ID, p.Name, p.Document, p.Source)
	if err != nil {
		return errors.Wrapf(err, "failed to save program %s", p.ID)
	}
	return nil
}

// Get loads one program by fingerprint.
func (s *Store) Get(ctx context.Context, id string) (*Program, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, document, source, created_at, updated_at
		FROM programs WHERE id = ?`, id)

	var p Program
	err := row.Scan(&p.ID, &p.Name, &p.Document, &p.Source, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("program %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load program %s", id)
	}
	return &p, nil
}

// List returns all programs, most recently updated first. Documents are not
// loaded; fetch a single program for its full content.
func (s *Store) List(ctx context.Context) ([]*Program, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source, created_at, updated_at
		FROM programs ORDER BY updated_at DESC, id ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list programs")
	}
	defer rows.Close()

	var out []*Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Source, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan program row")
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate programs")
	}
	return out, nil
}

// Delete removes a program, reporting ErrNotFound if it never existed.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM programs WHERE id = ?", id)
	if err != nil {
		return errors.Wrapf(err, "failed to delete program %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "failed to delete program %s", id)
	}
	if n == 0 {
		return errors.NewNotFoundError("program %s", id)
	}
	return nil
}

// Count returns the number of saved programs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM programs").Scan(&n); err != nil {
		return 0, errors.Wrap(err, "failed to count programs")
	}
	return n, nil
}
