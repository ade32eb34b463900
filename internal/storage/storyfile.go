package storage

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Kalaith/storyline/internal/story"
)

// StoryFile is the portable YAML representation of a whole story: every
// character and every event, import/export in one document.
type StoryFile struct {
	Characters []story.Character `yaml:"characters"`
	Events     []story.Event     `yaml:"events"`
}

// LoadStoryFile reads and parses a story YAML file.
func LoadStoryFile(path string) (StoryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StoryFile{}, fmt.Errorf("failed to read story file: %w", err)
	}

	var sf StoryFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return StoryFile{}, fmt.Errorf("failed to parse story file: %w", err)
	}
	return sf, nil
}

// SaveStoryFile writes a story YAML file.
func SaveStoryFile(path string, sf StoryFile) error {
	data, err := yaml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("failed to marshal story file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write story file: %w", err)
	}
	return nil
}

// Import loads a story file's contents into the store. Characters are
// upserted, events inserted; events that already have IDs keep them.
func (s *Store) Import(ctx context.Context, sf StoryFile) error {
	chars := s.Characters()
	for _, c := range sf.Characters {
		if _, err := chars.Upsert(ctx, c); err != nil {
			return fmt.Errorf("failed to import character %q: %w", c.Name, err)
		}
	}
	events := s.Events()
	for _, e := range sf.Events {
		if _, err := events.Add(ctx, e); err != nil {
			return fmt.Errorf("failed to import event %q: %w", e.Title, err)
		}
	}
	return nil
}

// Export snapshots the store into a portable story file.
func (s *Store) Export(ctx context.Context) (StoryFile, error) {
	chars, err := s.Characters().List(ctx)
	if err != nil {
		return StoryFile{}, err
	}
	events, err := s.Events().List(ctx)
	if err != nil {
		return StoryFile{}, err
	}
	return StoryFile{Characters: chars, Events: events}, nil
}
