package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/infra/logger"
	"github.com/aalvaropc/payflow/internal/usecase"
)

func runCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run every transaction in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(flags.format); err != nil {
				return err
			}

			ws, err := loadWorkspace(flags.workspace)
			if err != nil {
				return err
			}
			path, err := resolveScenarioPath(ws, args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rt, err := ws.wire(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			run, err := usecase.NewRunScenario(ws.scenarios, rt.Service).Execute(ctx, path)
			if err != nil {
				return err
			}
			return finishRun(cmd, run, flags.format)
		},
	}
}

func demoCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Process the built-in 100 USD card payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, flags)
		},
	}
}

func runDemo(cmd *cobra.Command, flags *rootFlags) error {
	if err := checkFormat(flags.format); err != nil {
		return err
	}

	ws, err := loadWorkspace(flags.workspace)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, err := ws.wire(ctx, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer rt.Close()

	run, err := usecase.NewRunScenario(ws.scenarios, rt.Service).ExecuteScenario(ctx, "", usecase.DemoScenario())
	if err != nil {
		return err
	}
	return finishRun(cmd, run, flags.format)
}

// finishRun prints the run and turns any failed transaction into a non-zero exit.
func finishRun(cmd *cobra.Command, run domain.ScenarioRun, format string) error {
	if err := printRun(cmd.OutOrStdout(), run, format); err != nil {
		return err
	}

	n := run.Failures()
	if n == 0 {
		return nil
	}
	logger.L().Info("scenario.failed", "scenario", run.ScenarioName, "failures", n)

	// Wrap the first hard error so the exit hint can name its cause.
	for _, o := range run.Outcomes {
		if o.Err != nil {
			return fmt.Errorf("%d of %d transaction(s) failed: %w", n, len(run.Outcomes), o.Err)
		}
	}
	return fmt.Errorf("%d of %d transaction(s) failed", n, len(run.Outcomes))
}
