package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the label has no index entry.
var ErrNotFound = errors.New("label not indexed")

const entryColumns = `id, label, mode, length, growth, word_mode, kdf, file, created_at, updated_at`

// Get returns the entry for a label, or ErrNotFound.
func (s *Store) Get(ctx context.Context, label string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE label = ?
	`, label)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("get entry %q: %w", label, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get entry %q: %w", label, err)
	}
	return e, nil
}

// List returns every entry ordered by creation time, oldest first. Labels
// break ties so the order is stable.
//
// Returns an empty slice (not nil) when the index is empty.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		ORDER BY created_at ASC, label COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list entries: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var e Entry
	var wordMode int
	err := sc.Scan(&e.ID, &e.Label, &e.Mode, &e.Length, &e.Growth, &wordMode, &e.KDF, &e.File, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return Entry{}, err
	}
	e.WordMode = wordMode != 0
	return e, nil
}
