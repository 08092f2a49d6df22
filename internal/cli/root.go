package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/payflow/internal/infra/logger"
	"github.com/aalvaropc/payflow/internal/ui/tui"
)

type rootFlags struct {
	workspace string
	format    string
	debug     bool
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if msg := tui.UserMessage(err); msg != "" {
			fmt.Fprintln(os.Stderr, "hint:", msg)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "payflow",
		Short:        "payflow: a small, pluggable payment pipeline",
		Long:         "Without a subcommand payflow runs the demo: a 100 USD card payment.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			root, err := logRoot(flags.workspace)
			if err != nil {
				return err
			}
			// A log file that cannot be opened is not fatal; logging falls back to discard.
			cleanup, _ = logger.Setup(logger.Config{Root: root, Debug: flags.debug})
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	pf.StringVar(&flags.format, "format", "pretty", "Output format: pretty|json")
	pf.BoolVar(&flags.debug, "debug", false, "enable verbose logging to .payflow/logs/payflow.log")

	cmd.AddCommand(
		demoCmd(flags),
		payCmd(flags),
		refundCmd(flags),
		subscribeCmd(flags),
		runCmd(flags),
		scenariosCmd(flags),
		validateCmd(flags),
		initCmd(),
		tuiCmd(flags),
		historyCmd(flags),
		versionCmd(),
	)
	return cmd
}
