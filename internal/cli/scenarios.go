package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func scenariosCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "scenarios",
		Short: "Manage scenarios",
	}

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List scenarios in the workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags.workspace)
			if err != nil {
				return err
			}
			if err := ws.requireRoot(); err != nil {
				return err
			}

			refs, err := ws.scenarios.ListScenarios(ws.root)
			if err != nil {
				return err
			}
			if len(refs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
				return nil
			}

			for _, r := range refs {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s (%s)\n", r.Name, r.Path)
			}
			return nil
		},
	})

	return c
}
