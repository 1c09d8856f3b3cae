package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Put inserts or updates the entry for a label. A fresh label gets a UUID
// and a created_at stamp; re-making an existing label keeps both and
// rewrites the rest of the row.
func (s *Store) Put(ctx context.Context, e Entry) (Entry, error) {
	if e.Label == "" {
		return Entry{}, fmt.Errorf("put entry: label cannot be empty")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if e.CreatedAt == "" {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	wordMode := 0
	if e.WordMode {
		wordMode = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries
		(id, label, mode, length, growth, word_mode, kdf, file, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(label) DO UPDATE SET
			mode       = excluded.mode,
			length     = excluded.length,
			growth     = excluded.growth,
			word_mode  = excluded.word_mode,
			kdf        = excluded.kdf,
			file       = excluded.file,
			updated_at = excluded.updated_at
	`,
		e.ID, e.Label, e.Mode, e.Length, e.Growth, wordMode, e.KDF, e.File, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("put entry: %w", err)
	}

	// An update keeps the original id and created_at; read them back so the
	// caller always sees the stored row.
	stored, err := s.Get(ctx, e.Label)
	if err != nil {
		return Entry{}, fmt.Errorf("put entry: %w", err)
	}
	return stored, nil
}

// Delete removes the entry for a label. Deleting an absent label is a no-op.
func (s *Store) Delete(ctx context.Context, label string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE label = ?`, label); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}
