package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/payflow/internal/usecase/validate"
)

func validateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario]",
		Short: "Validate config and scenarios without charging anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(flags.workspace)
			if err != nil {
				return err
			}

			var paths []string
			if len(args) == 1 {
				p, err := resolveScenarioPath(ws, args[0])
				if err != nil {
					return err
				}
				paths = append(paths, p)
			} else if ws.root != "" {
				refs, err := ws.scenarios.ListScenarios(ws.root)
				if err != nil {
					return err
				}
				for _, r := range refs {
					paths = append(paths, r.Path)
				}
			}

			chain := validate.ForChannel(ws.cfg.Notifications.Channel)
			out := cmd.OutOrStdout()
			var errs []error

			for _, p := range paths {
				sc, err := ws.scenarios.LoadScenario(p)
				if err != nil {
					fmt.Fprintf(out, "- [FAIL] %s\n  %v\n", p, err)
					errs = append(errs, err)
					continue
				}

				bad := 0
				for _, tx := range sc.Transactions {
					if err := chain.Handle(tx.Customer); err != nil {
						fmt.Fprintf(out, "- [FAIL] %s / %s\n  %v\n", sc.Name, tx.Name, err)
						errs = append(errs, err)
						bad++
					}
				}
				if bad == 0 {
					fmt.Fprintf(out, "- [OK] %s (%d transaction(s))\n", sc.Name, len(sc.Transactions))
				}
			}

			if err := errors.Join(errs...); err != nil {
				return fmt.Errorf("%d problem(s) found: %w", len(errs), err)
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}
}
