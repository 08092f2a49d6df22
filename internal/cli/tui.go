package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/payflow/internal/infra/fsworkspace"
	"github.com/aalvaropc/payflow/internal/infra/logger"
	"github.com/aalvaropc/payflow/internal/infra/workspacefinder"
	"github.com/aalvaropc/payflow/internal/ui/tui"
)

func tuiCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Pick and run scenarios interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags.workspace)
			if err != nil {
				return err
			}
			return tui.Run(tui.Deps{
				Root:                 ws.root,
				Config:               ws.cfg,
				WorkspaceLocator:     workspacefinder.NewFinder(),
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Scenarios:            ws.scenarios,
				Logger:               logger.L(),
				Debug:                flags.debug,
			})
		},
	}
}
