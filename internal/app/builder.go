// Package app assembles the payment service from its roles.
package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
	"github.com/aalvaropc/payflow/internal/usecase"
)

// Builder collects the service roles. Every role except the logger is required.
type Builder struct {
	processors ports.ProcessorFactory
	validator  ports.CustomerHandler
	notifier   ports.Notifier
	listeners  ports.Broadcaster
	txlog      ports.TransactionLogger
	log        *slog.Logger
}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) WithProcessorFactory(f ports.ProcessorFactory) *Builder {
	b.processors = f
	return b
}

func (b *Builder) WithValidator(v ports.CustomerHandler) *Builder {
	b.validator = v
	return b
}

func (b *Builder) WithNotifier(n ports.Notifier) *Builder {
	b.notifier = n
	return b
}

func (b *Builder) WithListenerManager(m ports.Broadcaster) *Builder {
	b.listeners = m
	return b
}

func (b *Builder) WithTransactionLogger(l ports.TransactionLogger) *Builder {
	b.txlog = l
	return b
}

func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.log = l
	return b
}

// Build fails with an invalid_config error naming every unset role.
func (b *Builder) Build() (*usecase.PaymentService, error) {
	var missing []string
	if b.processors == nil {
		missing = append(missing, "processor factory")
	}
	if b.validator == nil {
		missing = append(missing, "validator")
	}
	if b.notifier == nil {
		missing = append(missing, "notifier")
	}
	if b.listeners == nil {
		missing = append(missing, "listener manager")
	}
	if b.txlog == nil {
		missing = append(missing, "transaction logger")
	}
	if len(missing) > 0 {
		return nil, &domain.OpError{
			Op:   "app.build",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: %s", domain.ErrMissingDependency, strings.Join(missing, ", ")),
		}
	}

	var opts []usecase.ServiceOption
	if b.log != nil {
		opts = append(opts, usecase.WithLogger(b.log))
	}
	return usecase.NewPaymentService(b.processors, b.validator, b.notifier, b.listeners, b.txlog, opts...), nil
}
