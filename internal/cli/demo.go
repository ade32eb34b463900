package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kalaith/storyline/internal/storage"
	"github.com/Kalaith/storyline/internal/story"
)

// demoStory is a small self-contained story used to try the timeline without
// importing anything.
var demoStory = storage.StoryFile{
	Characters: []story.Character{
		{ID: "kael", Name: "Kael", Level: 3},
		{ID: "mira", Name: "Mira", Level: 7},
		{ID: "thorne", Name: "Thorne", Level: 12},
	},
	Events: []story.Event{
		{
			Title:              "The Summons",
			Description:        "Kael receives the guild letter that starts everything.",
			Date:               "2026-01-04",
			Importance:         story.ImportanceMajor,
			CharactersInvolved: []string{"kael"},
		},
		{
			Title:              "Meeting Mira",
			Description:        "An uneasy alliance forms at the waypoint inn.",
			Date:               "2026-01-09",
			Importance:         story.ImportanceModerate,
			CharactersInvolved: []string{"kael", "mira"},
		},
		{
			Title:              "Ambush on the North Road",
			Description:        "Thorne's scouts spring the trap; Mira is wounded.",
			Date:               "2026-01-17T18:30:00Z",
			Importance:         story.ImportanceCritical,
			CharactersInvolved: []string{"kael", "mira", "thorne"},
		},
		{
			Title:              "A Quiet Morning",
			Description:        "Rest and repairs. Nothing happens, deliberately.",
			Date:               "2026-01-20",
			Importance:         story.ImportanceMinor,
			CharactersInvolved: []string{"kael", "mira"},
		},
		{
			Title:              "Thorne's Gambit",
			Description:        "The antagonist shows his real objective.",
			Date:               "2026-02-02",
			Importance:         story.ImportanceCritical,
			CharactersInvolved: []string{"thorne"},
		},
	},
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed the database with a small demo story",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := context.Background()
			count, err := store.Events().Count(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("database already has %d events; demo only seeds an empty story", count)
			}

			if err := store.Import(ctx, demoStory); err != nil {
				return err
			}
			fmt.Printf("seeded %d events and %d characters\n", len(demoStory.Events), len(demoStory.Characters))
			return nil
		},
	}
}
