package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Kalaith/storyline/internal/story"
)

// Event repository errors.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event")
)

// EventRepository handles event persistence.
type EventRepository struct {
	store *Store
}

// Add inserts a new event. A missing ID is assigned; the stored event is
// returned. Returns ErrInvalidEvent when the title is empty.
func (r *EventRepository) Add(ctx context.Context, e story.Event) (story.Event, error) {
	if e.Title == "" {
		return story.Event{}, ErrInvalidEvent
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if !e.Importance.Valid() {
		e.Importance = story.ImportanceModerate
	}

	charsJSON, err := marshalCharacters(e.CharactersInvolved)
	if err != nil {
		return story.Event{}, err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = r.store.db.ExecContext(ctx, `
		INSERT INTO events (id, title, description, date, importance, characters_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Title, e.Description, e.Date, string(e.Importance), charsJSON, now, now)
	if err != nil {
		return story.Event{}, fmt.Errorf("failed to insert event: %w", err)
	}
	return e, nil
}

// Get retrieves an event by ID.
func (r *EventRepository) Get(ctx context.Context, id string) (story.Event, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, title, description, date, importance, characters_json
		FROM events WHERE id = ?
	`, id)
	return r.scanEvent(row.Scan)
}

// List returns all events in insertion order. Chronological ordering is the
// timeline's job, not the store's.
func (r *EventRepository) List(ctx context.Context) ([]story.Event, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, title, description, date, importance, characters_json
		FROM events ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []story.Event
	for rows.Next() {
		e, err := r.scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

// ApplyPatch loads an event, applies the partial update and writes it back.
// An empty patch is a no-op. Returns the updated event.
func (r *EventRepository) ApplyPatch(ctx context.Context, id string, patch story.EventPatch) (story.Event, error) {
	e, err := r.Get(ctx, id)
	if err != nil {
		return story.Event{}, err
	}
	if patch.Empty() {
		return e, nil
	}

	updated := patch.Apply(e)
	charsJSON, err := marshalCharacters(updated.CharactersInvolved)
	if err != nil {
		return story.Event{}, err
	}

	res, err := r.store.db.ExecContext(ctx, `
		UPDATE events
		SET title = ?, description = ?, date = ?, importance = ?, characters_json = ?, updated_at = ?
		WHERE id = ?
	`, updated.Title, updated.Description, updated.Date, string(updated.Importance),
		charsJSON, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return story.Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return story.Event{}, ErrEventNotFound
	}
	return updated, nil
}

// Delete removes an event by ID.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Count returns the total number of stored events.
func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func (r *EventRepository) scanEvent(scan func(...any) error) (story.Event, error) {
	var e story.Event
	var importance string
	var charsJSON sql.NullString

	err := scan(&e.ID, &e.Title, &e.Description, &e.Date, &importance, &charsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return story.Event{}, ErrEventNotFound
		}
		return story.Event{}, fmt.Errorf("failed to scan event: %w", err)
	}

	e.Importance = story.ParseImportance(importance)
	e.CharactersInvolved = []string{}
	if charsJSON.Valid && charsJSON.String != "" {
		if err := json.Unmarshal([]byte(charsJSON.String), &e.CharactersInvolved); err != nil {
			r.store.logger.Warn().Err(err).Str("event_id", e.ID).Msg("failed to parse event characters")
		}
	}
	return e, nil
}

func marshalCharacters(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to marshal characters: %w", err)
	}
	return string(data), nil
}
