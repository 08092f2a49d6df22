package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

// PaymentService runs a transaction through validation, processing, events,
// notification and the trace log, in that order.
type PaymentService struct {
	processors ports.ProcessorFactory
	validator  ports.CustomerHandler
	notifier   ports.Notifier
	listeners  ports.Broadcaster
	txlog      ports.TransactionLogger

	log *slog.Logger
	now func() time.Time
}

type ServiceOption func(*PaymentService)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *PaymentService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *PaymentService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewPaymentService(
	pf ports.ProcessorFactory,
	v ports.CustomerHandler,
	n ports.Notifier,
	b ports.Broadcaster,
	tl ports.TransactionLogger,
	opts ...ServiceOption,
) *PaymentService {
	s := &PaymentService{
		processors: pf,
		validator:  v,
		notifier:   n,
		listeners:  b,
		txlog:      tl,
		log:        slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessTransaction charges a payment. Errors from validation, processor selection,
// the processor, notification and trace recording are returned to the caller; event
// broadcast failures are only logged. Once the processor has answered, the response
// is returned with any later error and the trace record is always attempted.
func (s *PaymentService) ProcessTransaction(ctx context.Context, customer domain.CustomerData, payment domain.PaymentData) (domain.PaymentResponse, error) {
	req := domain.NewRequest(customer, payment)

	if err := s.validator.Handle(req.Customer()); err != nil {
		s.log.Info("payment.validation.failed", "customer_id", customer.ID, "err", err)
		return domain.PaymentResponse{}, err
	}

	processor, err := s.processors.Select(req.Payment())
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	resp, err := processor.Process(ctx, req)
	if err != nil {
		s.log.Error("payment.process.failed",
			"processor", processorName(processor),
			"customer_id", customer.ID,
			"err", err,
		)
		return domain.PaymentResponse{}, err
	}

	if err := s.complete(ctx, domain.OpCharge, domain.OutcomeEvent(resp), req, processor, resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// Refund reverses transactionID on the processor selected for payment.
func (s *PaymentService) Refund(ctx context.Context, customer domain.CustomerData, payment domain.PaymentData, transactionID string) (domain.PaymentResponse, error) {
	req := domain.NewRequest(customer, payment)

	if err := s.validator.Handle(req.Customer()); err != nil {
		return domain.PaymentResponse{}, err
	}

	processor, err := s.processors.Select(req.Payment())
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	refunder, ok := processor.(ports.Refunder)
	if !ok {
		return domain.PaymentResponse{}, unsupported("usecase.refund", processor, "refunds")
	}

	resp, err := refunder.Refund(ctx, transactionID)
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	evt := domain.EventPaymentRefunded
	if !resp.Success {
		evt = domain.EventPaymentFailed
	}
	if err := s.complete(ctx, domain.OpRefund, evt, req, processor, resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// StartRecurring sets up a recurring charge for the customer.
func (s *PaymentService) StartRecurring(ctx context.Context, customer domain.CustomerData, payment domain.PaymentData) (domain.PaymentResponse, error) {
	req := domain.NewRequest(customer, payment)

	if err := s.validator.Handle(req.Customer()); err != nil {
		return domain.PaymentResponse{}, err
	}

	processor, err := s.processors.Select(req.Payment())
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	charger, ok := processor.(ports.RecurringCharger)
	if !ok {
		return domain.PaymentResponse{}, unsupported("usecase.recurring", processor, "recurring charges")
	}

	resp, err := charger.ChargeRecurring(ctx, req)
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	evt := domain.EventRecurringStarted
	if !resp.Success {
		evt = domain.EventPaymentFailed
	}
	if err := s.complete(ctx, domain.OpRecurring, evt, req, processor, resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// complete runs the post-processing steps shared by every operation.
func (s *PaymentService) complete(
	ctx context.Context,
	op domain.Operation,
	evtType domain.EventType,
	req domain.Request,
	processor ports.PaymentProcessor,
	resp domain.PaymentResponse,
) error {
	at := s.now()
	name := processorName(processor)

	evt := domain.Event{
		Type:       evtType,
		Customer:   req.Customer(),
		Payment:    req.Payment(),
		Response:   resp,
		OccurredAt: at,
	}
	if err := s.listeners.Broadcast(ctx, evt); err != nil {
		s.log.Warn("payment.broadcast.failed", "event", string(evtType), "err", err)
	}

	notifyErr := s.notifier.Notify(ctx, req.Customer(), resp)
	if notifyErr != nil {
		s.log.Warn("payment.notify.failed", "transaction_id", resp.TransactionID, "err", notifyErr)
	}

	// The processor has already acted, so the trace is written even when the
	// notifier failed or the caller's context was cancelled meanwhile.
	recordErr := s.txlog.Record(context.WithoutCancel(ctx), domain.NewTransactionRecord(at, op, req, name, resp))
	if err := errors.Join(notifyErr, recordErr); err != nil {
		return err
	}

	s.log.Info("payment.processed",
		"operation", string(op),
		"processor", name,
		"customer_id", req.Customer().ID,
		"success", resp.Success,
		"transaction_id", resp.TransactionID,
	)
	return nil
}

func processorName(p ports.PaymentProcessor) string {
	if n, ok := p.(ports.Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}

func unsupported(op string, p ports.PaymentProcessor, what string) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindUnsupported,
		Err:  fmt.Errorf("processor %s does not support %s: %w", processorName(p), what, domain.ErrUnsupported),
	}
}
