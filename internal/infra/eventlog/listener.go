// Package eventlog writes one structured log line per payment event.
package eventlog

import (
	"context"
	"log/slog"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

type Listener struct {
	log *slog.Logger
}

func New(l *slog.Logger) *Listener {
	if l == nil {
		l = slog.Default()
	}
	return &Listener{log: l}
}

func (l *Listener) OnEvent(ctx context.Context, evt domain.Event) error {
	level := slog.LevelInfo
	if evt.Type == domain.EventPaymentFailed {
		level = slog.LevelWarn
	}

	l.log.LogAttrs(ctx, level, string(evt.Type),
		slog.String("customer_id", evt.Customer.ID),
		slog.String("amount", evt.Payment.Amount.StringFixed(2)),
		slog.String("currency", evt.Payment.Currency),
		slog.String("payment_type", string(evt.Payment.Type)),
		slog.Bool("success", evt.Response.Success),
		slog.String("transaction_id", evt.Response.TransactionID),
		slog.Time("occurred_at", evt.OccurredAt),
	)
	return nil
}

var _ ports.Listener = (*Listener)(nil)
