package tui

import (
	"context"

	"github.com/Kalaith/storyline/internal/storage"
	"github.com/Kalaith/storyline/internal/story"
)

// StoreSource adapts the SQLite store to the TUI's Source interface.
type StoreSource struct {
	Store *storage.Store
}

func (s StoreSource) Events(ctx context.Context) ([]story.Event, error) {
	return s.Store.Events().List(ctx)
}

func (s StoreSource) Characters(ctx context.Context) ([]story.Character, error) {
	return s.Store.Characters().List(ctx)
}

func (s StoreSource) AddEvent(ctx context.Context, e story.Event) (story.Event, error) {
	return s.Store.Events().Add(ctx, e)
}

func (s StoreSource) PatchEvent(ctx context.Context, id string, patch story.EventPatch) (story.Event, error) {
	return s.Store.Events().ApplyPatch(ctx, id, patch)
}
