package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

type fakeProcessor struct {
	name  string
	resp  domain.PaymentResponse
	err   error
	calls int
	last  domain.Request
}

func (p *fakeProcessor) Process(_ context.Context, req domain.Request) (domain.PaymentResponse, error) {
	p.calls++
	p.last = req
	return p.resp, p.err
}

func (p *fakeProcessor) Name() string { return p.name }

type fakeRefundingProcessor struct {
	fakeProcessor
	refunded []string
}

func (p *fakeRefundingProcessor) Refund(_ context.Context, id string) (domain.PaymentResponse, error) {
	p.refunded = append(p.refunded, id)
	return domain.PaymentResponse{Success: true, TransactionID: id, Message: "refunded"}, nil
}

func (p *fakeRefundingProcessor) ChargeRecurring(_ context.Context, _ domain.Request) (domain.PaymentResponse, error) {
	return domain.PaymentResponse{Success: true, TransactionID: "sub_1", Message: "active"}, nil
}

type fakeFactory struct {
	p   ports.PaymentProcessor
	err error
}

func (f fakeFactory) Select(_ domain.PaymentData) (ports.PaymentProcessor, error) {
	return f.p, f.err
}

type fakeValidator struct {
	err   error
	calls int
}

func (v *fakeValidator) Handle(_ domain.CustomerData) error {
	v.calls++
	return v.err
}

func (v *fakeValidator) SetNext(next ports.CustomerHandler) ports.CustomerHandler { return next }

type fakeNotifier struct {
	err      error
	sent     []domain.PaymentResponse
	onNotify func()
}

func (n *fakeNotifier) Notify(_ context.Context, _ domain.CustomerData, resp domain.PaymentResponse) error {
	n.sent = append(n.sent, resp)
	if n.onNotify != nil {
		n.onNotify()
	}
	return n.err
}

type fakeBroadcaster struct {
	err    error
	events []domain.Event
}

func (b *fakeBroadcaster) Broadcast(_ context.Context, evt domain.Event) error {
	b.events = append(b.events, evt)
	return b.err
}

type fakeTxLog struct {
	mu      sync.Mutex
	err     error
	records []domain.TransactionRecord
	ctxErrs []error
}

func (l *fakeTxLog) Record(ctx context.Context, rec domain.TransactionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	l.ctxErrs = append(l.ctxErrs, ctx.Err())
	return l.err
}

type fakeScenarioLoader struct {
	sc  domain.Scenario
	err error
}

func (l fakeScenarioLoader) LoadScenario(_ string) (domain.Scenario, error) {
	if l.err != nil {
		return domain.Scenario{}, l.err
	}
	return l.sc, nil
}

func (l fakeScenarioLoader) ListScenarios(_ string) ([]domain.ScenarioRef, error) {
	return nil, errors.New("not implemented")
}

var (
	_ ports.PaymentProcessor  = (*fakeProcessor)(nil)
	_ ports.Named             = (*fakeProcessor)(nil)
	_ ports.Refunder          = (*fakeRefundingProcessor)(nil)
	_ ports.RecurringCharger  = (*fakeRefundingProcessor)(nil)
	_ ports.ProcessorFactory  = fakeFactory{}
	_ ports.CustomerHandler   = (*fakeValidator)(nil)
	_ ports.Notifier          = (*fakeNotifier)(nil)
	_ ports.Broadcaster       = (*fakeBroadcaster)(nil)
	_ ports.TransactionLogger = (*fakeTxLog)(nil)
	_ ports.ScenarioLoader    = fakeScenarioLoader{}
)
