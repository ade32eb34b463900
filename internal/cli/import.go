package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kalaith/storyline/internal/storage"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <story.yaml>",
		Short: "Import a story YAML file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := storage.LoadStoryFile(args[0])
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Import(context.Background(), sf); err != nil {
				return err
			}
			fmt.Printf("imported %d events and %d characters\n", len(sf.Events), len(sf.Characters))
			return nil
		},
	}
	return cmd
}
