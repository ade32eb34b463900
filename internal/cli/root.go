// Package cli wires the storyline commands together.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kalaith/storyline/internal/config"
	"github.com/Kalaith/storyline/internal/logging"
	"github.com/Kalaith/storyline/internal/storage"
	"github.com/Kalaith/storyline/internal/story"
	"github.com/Kalaith/storyline/internal/tui"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Execute runs the root command.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "storyline",
		Short:         "Story event timeline",
		Long:          "Interactive timeline for story events: plot, filter and edit narrative beats from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadFromFile(cfgFile)
			} else {
				cfg, err = config.LoadDefault()
			}
			if err != nil {
				return err
			}
			logging.Init(logging.Config{
				Level:        cfg.Logging.Level,
				Format:       cfg.Logging.Format,
				EnableCaller: cfg.Logging.EnableCaller,
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cmd.AddCommand(newExportCmd(), newImportCmd(), newDemoCmd())
	return cmd
}

func runTUI() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	logger := logging.Component("tui")
	return tui.Run(tui.Config{
		Source:         tui.StoreSource{Store: store},
		Theme:          cfg.Timeline.Theme,
		DefaultZoom:    cfg.Timeline.DefaultZoom,
		TooltipTimeout: time.Duration(cfg.Timeline.TooltipSeconds) * time.Second,
		Logger:         logger,
		Callbacks: tui.Callbacks{
			OnEventClick: func(e story.Event) {
				logger.Debug().Str("event_id", e.ID).Msg("event opened")
			},
			OnEventUpdate: func(id string, patch story.EventPatch) {
				logger.Debug().Str("event_id", id).Msg("event updated")
			},
			OnAddEvent: func(template story.Event) {
				logger.Debug().Str("title", template.Title).Msg("event added")
			},
		},
	})
}

func openStore() (*storage.Store, error) {
	if err := os.MkdirAll(cfg.Global.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return storage.Open(cfg.DatabasePath(), logging.Component("storage"))
}
