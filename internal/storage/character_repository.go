package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Kalaith/storyline/internal/story"
)

// ErrCharacterNotFound is returned when a character ID has no row.
var ErrCharacterNotFound = errors.New("character not found")

// CharacterRepository handles character persistence.
type CharacterRepository struct {
	store *Store
}

// Upsert inserts or updates a character. A missing ID is assigned; the
// stored character is returned.
func (r *CharacterRepository) Upsert(ctx context.Context, c story.Character) (story.Character, error) {
	if c.Name == "" {
		return story.Character{}, errors.New("character name is required")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO characters (id, name, level) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, level = excluded.level
	`, c.ID, c.Name, c.Level)
	if err != nil {
		return story.Character{}, fmt.Errorf("failed to upsert character: %w", err)
	}
	return c, nil
}

// Get retrieves a character by ID.
func (r *CharacterRepository) Get(ctx context.Context, id string) (story.Character, error) {
	var c story.Character
	err := r.store.db.QueryRowContext(ctx, `
		SELECT id, name, level FROM characters WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Level)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return story.Character{}, ErrCharacterNotFound
		}
		return story.Character{}, fmt.Errorf("failed to scan character: %w", err)
	}
	return c, nil
}

// List returns all characters ordered by name.
func (r *CharacterRepository) List(ctx context.Context) ([]story.Character, error) {
	rows, err := r.store.db.QueryContext(ctx, `SELECT id, name, level FROM characters ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	defer rows.Close()

	var chars []story.Character
	for rows.Next() {
		var c story.Character
		if err := rows.Scan(&c.ID, &c.Name, &c.Level); err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		chars = append(chars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating characters: %w", err)
	}
	return chars, nil
}

// Delete removes a character by ID.
func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrCharacterNotFound
	}
	return nil
}
