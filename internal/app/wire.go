package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/infra/eventlog"
	"github.com/aalvaropc/payflow/internal/infra/httpclient"
	"github.com/aalvaropc/payflow/internal/infra/notify"
	"github.com/aalvaropc/payflow/internal/infra/processorfactory"
	"github.com/aalvaropc/payflow/internal/infra/processors"
	"github.com/aalvaropc/payflow/internal/infra/redisbus"
	"github.com/aalvaropc/payflow/internal/infra/stripeapi"
	"github.com/aalvaropc/payflow/internal/infra/txlog"
	"github.com/aalvaropc/payflow/internal/ports"
	"github.com/aalvaropc/payflow/internal/usecase"
	"github.com/aalvaropc/payflow/internal/usecase/events"
	"github.com/aalvaropc/payflow/internal/usecase/validate"
)

type WireOptions struct {
	// Root anchors relative trace log paths; empty means the working directory.
	Root string
	// Out receives simulated notifications; nil discards them.
	Out    io.Writer
	Logger *slog.Logger
	// OfflineNode is the snowflake node id for offline transaction ids.
	OfflineNode int64
}

// Runtime is a wired service plus the resources it holds.
type Runtime struct {
	Service *usecase.PaymentService
	Events  *events.Manager

	closers []func() error
}

// Close releases trace sinks and connections.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// Wire builds the service described by cfg.
func Wire(ctx context.Context, cfg domain.Config, opts WireOptions) (*Runtime, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	rt := &Runtime{}

	factory, err := buildFactory(cfg, opts, log)
	if err != nil {
		return nil, err
	}

	rt.Events = events.NewManager(events.WithLogger(log))
	rt.Events.Subscribe("eventlog", eventlog.New(log.With("component", "events")))

	if cfg.Events.RedisAddr != "" {
		rdb, err := redisbus.NewClient(ctx, cfg.Events.RedisAddr)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, rdb.Close)
		rt.Events.Subscribe("redis", redisbus.New(rdb, cfg.Events.RedisChannel))
	}

	sink, closeSink, err := buildTxLog(ctx, cfg.Log, opts.Root)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.closers = append(rt.closers, closeSink)

	svc, err := NewBuilder().
		WithProcessorFactory(factory).
		WithValidator(validate.ForChannel(cfg.Notifications.Channel)).
		WithNotifier(buildNotifier(cfg.Notifications, opts.Out)).
		WithListenerManager(rt.Events).
		WithTransactionLogger(sink).
		WithLogger(log).
		Build()
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Service = svc

	log.Info("app.wired",
		"log_sink", string(cfg.Log.Sink),
		"channel", string(cfg.Notifications.Channel),
		"listeners", rt.Events.Len(),
	)
	return rt, nil
}

func buildFactory(cfg domain.Config, opts WireOptions, log *slog.Logger) (*processorfactory.Factory, error) {
	st := cfg.Processors.Stripe
	httpCfg := httpclient.DefaultConfig().WithRequestTimeout(st.Timeout)
	api := stripeapi.New(st.BaseURL, st.APIKey,
		stripeapi.WithExecutor(httpclient.NewExecutor(
			httpclient.WithClient(httpclient.New(httpCfg)),
			httpclient.WithTimeout(httpCfg.Timeout),
		)),
		stripeapi.WithLogger(log.With("component", "stripeapi")),
	)

	node := opts.OfflineNode
	if node == 0 {
		node = 1
	}
	offline, err := processors.NewOffline(node)
	if err != nil {
		return nil, err
	}

	return processorfactory.New(processorfactory.Processors{
		Stripe:  processors.NewStripe(api, st.RecurringPriceID),
		Local:   processors.NewLocal(),
		Offline: offline,
	}, cfg.Processors), nil
}

func buildNotifier(cfg domain.NotificationsConfig, out io.Writer) ports.Notifier {
	sender := notify.NewWriterSender(out)
	if cfg.Channel == domain.ChannelSMS {
		return notify.NewSMS(cfg.SMSFrom, sender)
	}
	return notify.NewEmail(cfg.EmailFrom, sender)
}

func buildTxLog(ctx context.Context, cfg domain.LogConfig, root string) (ports.TransactionLogger, func() error, error) {
	path := cfg.Path
	if root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	switch cfg.Sink {
	case domain.SinkJSONL:
		s, err := txlog.NewJSONL(path, cfg.Masking)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case domain.SinkSQL:
		s, err := txlog.OpenSQL(ctx, cfg.Driver, cfg.DSN, cfg.Masking)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		s, err := txlog.NewText(path, cfg.Masking)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
}
