package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kalaith/storyline/internal/render"
	"github.com/Kalaith/storyline/internal/storage"
	"github.com/Kalaith/storyline/internal/story"
	"github.com/Kalaith/storyline/internal/timeline"
	"github.com/Kalaith/storyline/internal/timeline/layout"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export story data",
	}
	cmd.AddCommand(newExportSVGCmd(), newExportYAMLCmd())
	return cmd
}

func newExportSVGCmd() *cobra.Command {
	var (
		output    string
		width     int
		height    int
		zoom      float64
		character string
		tier      string
	)
	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Render the timeline to an SVG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := context.Background()
			events, err := store.Events().List(ctx)
			if err != nil {
				return err
			}
			characters, err := store.Characters().List(ctx)
			if err != nil {
				return err
			}

			normalized := timeline.Normalize(events)
			for _, w := range normalized.Warnings {
				fmt.Fprintln(os.Stderr, "warning:", w.String())
			}

			filter, err := buildFilter(character, tier)
			if err != nil {
				return err
			}
			view := filter.Apply(normalized)

			plan := layout.Compute(view, story.CharacterIndex(characters), layout.Options{
				Width:  width,
				Height: height,
				Zoom:   zoom,
			})
			doc := render.SVG(plan, render.SVGOptions{})
			if doc == "" {
				return fmt.Errorf("nothing to export: no events match")
			}
			if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("failed to write SVG: %w", err)
			}
			fmt.Printf("wrote %s (%d events)\n", output, len(view))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "timeline.svg", "output file")
	cmd.Flags().IntVar(&width, "width", 120, "layout width in cells")
	cmd.Flags().IntVar(&height, "height", 24, "layout height in cells")
	cmd.Flags().Float64Var(&zoom, "zoom", 1.0, "zoom level, 0.5 to 3.0")
	cmd.Flags().StringVar(&character, "character", "", "only events involving this character ID")
	cmd.Flags().StringVar(&tier, "importance", "", "only events of this importance tier")
	return cmd
}

func newExportYAMLCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "yaml",
		Short: "Export the full story to a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sf, err := store.Export(context.Background())
			if err != nil {
				return err
			}
			if err := storage.SaveStoryFile(output, sf); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d events, %d characters)\n", output, len(sf.Events), len(sf.Characters))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "story.yaml", "output file")
	return cmd
}

func buildFilter(character, tier string) (timeline.Filter, error) {
	filter := timeline.Filter{CharacterID: character}
	if tier != "" {
		importance := story.Importance(tier)
		if !importance.Valid() {
			return timeline.Filter{}, fmt.Errorf("unknown importance tier %q", tier)
		}
		filter.Importance = importance
	}
	return filter, nil
}
