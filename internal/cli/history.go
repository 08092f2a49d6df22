package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/infra/txlog"
)

func historyCmd(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the latest transactions from the sql trace log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(flags.format); err != nil {
				return err
			}
			if limit <= 0 {
				return invalidFlag("limit", "must be positive")
			}

			ws, err := loadWorkspace(flags.workspace)
			if err != nil {
				return err
			}
			logCfg := ws.cfg.Log
			if logCfg.Sink != domain.SinkSQL {
				return &domain.OpError{
					Op:   "cli.history",
					Kind: domain.KindInvalidConfig,
					Path: "log.sink",
					Err:  fmt.Errorf("history needs log.sink: sql, got %q: %w", logCfg.Sink, domain.ErrInvalidConfig),
				}
			}

			store, err := txlog.OpenSQL(cmd.Context(), logCfg.Driver, logCfg.DSN, logCfg.Masking)
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), recs, flags.format)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of transactions to show")
	return cmd
}

func printHistory(w io.Writer, recs []domain.TransactionRecord, format string) error {
	if format == "json" {
		if recs == nil {
			recs = []domain.TransactionRecord{}
		}
		return writeJSON(w, recs)
	}

	if len(recs) == 0 {
		fmt.Fprintln(w, "No transactions recorded.")
		return nil
	}
	for _, r := range recs {
		status := "ok"
		if !r.Success {
			status = "failed"
		}
		fmt.Fprintf(w, "%s %-9s %-7s %s %s customer=%s status=%s tx=%s\n",
			r.At.Format(time.RFC3339), r.Operation, r.Processor, r.Amount, r.Currency, r.CustomerID, status, r.TransactionID)
	}
	return nil
}
