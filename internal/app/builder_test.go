package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/infra/httpclient"
	"github.com/aalvaropc/payflow/internal/infra/notify"
	"github.com/aalvaropc/payflow/internal/infra/processorfactory"
	"github.com/aalvaropc/payflow/internal/infra/processors"
	"github.com/aalvaropc/payflow/internal/infra/stripeapi"
	"github.com/aalvaropc/payflow/internal/ports"
	"github.com/aalvaropc/payflow/internal/usecase/events"
	"github.com/aalvaropc/payflow/internal/usecase/validate"
)

type memoryTxLog struct {
	mu      sync.Mutex
	records []domain.TransactionRecord
}

func (m *memoryTxLog) Record(_ context.Context, rec domain.TransactionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

var _ ports.TransactionLogger = (*memoryTxLog)(nil)

func TestBuild_FailsWhenAnyRoleMissing(t *testing.T) {
	full := func() *Builder {
		return NewBuilder().
			WithProcessorFactory(processorfactory.New(processorfactory.Processors{}, domain.ProcessorsConfig{})).
			WithValidator(validate.Default()).
			WithNotifier(notify.NewEmail("x@y.z", notify.NewWriterSender(nil))).
			WithListenerManager(events.NewManager()).
			WithTransactionLogger(&memoryTxLog{})
	}

	if _, err := full().Build(); err != nil {
		t.Fatalf("complete builder must succeed: %v", err)
	}

	tests := []struct {
		role  string
		unset func(*Builder)
	}{
		{"processor factory", func(b *Builder) { b.WithProcessorFactory(nil) }},
		{"validator", func(b *Builder) { b.WithValidator(nil) }},
		{"notifier", func(b *Builder) { b.WithNotifier(nil) }},
		{"listener manager", func(b *Builder) { b.WithListenerManager(nil) }},
		{"transaction logger", func(b *Builder) { b.WithTransactionLogger(nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			b := full()
			tt.unset(b)
			svc, err := b.Build()
			if svc != nil {
				t.Fatalf("expected no service")
			}
			if !domain.IsKind(err, domain.KindInvalidConfig) || !errors.Is(err, domain.ErrMissingDependency) {
				t.Fatalf("expected missing dependency, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.role) {
				t.Fatalf("expected %q named in %v", tt.role, err)
			}
		})
	}
}

func TestBuild_EmptyNamesEveryRole(t *testing.T) {
	_, err := NewBuilder().Build()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, role := range []string{"processor factory", "validator", "notifier", "listener manager", "transaction logger"} {
		if !strings.Contains(err.Error(), role) {
			t.Fatalf("expected %q in %v", role, err)
		}
	}
}

func TestBuiltService_CardPaymentEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.URL.Path != "/v1/charges" || r.PostForm.Get("amount") != "10000" || r.PostForm.Get("currency") != "usd" {
			t.Errorf("unexpected charge request %s %v", r.URL.Path, r.PostForm)
		}
		_, _ = w.Write([]byte(`{"id":"ch_e2e","status":"succeeded"}`))
	}))
	defer server.Close()

	api := stripeapi.New(server.URL, "sk_test",
		stripeapi.WithExecutor(httpclient.NewExecutor(httpclient.WithClient(server.Client()))))
	offline, err := processors.NewOffline(1)
	if err != nil {
		t.Fatalf("NewOffline: %v", err)
	}
	factory := processorfactory.New(processorfactory.Processors{
		Stripe:  processors.NewStripe(api, ""),
		Local:   processors.NewLocal(),
		Offline: offline,
	}, domain.DefaultConfig().Processors)

	var broadcasts int
	mgr := events.NewManager()
	mgr.Subscribe("counter", ports.ListenerFunc(func(context.Context, domain.Event) error {
		broadcasts++
		return nil
	}))

	sent := &strings.Builder{}
	records := &memoryTxLog{}

	svc, err := NewBuilder().
		WithProcessorFactory(factory).
		WithValidator(validate.Default()).
		WithNotifier(notify.NewEmail("payments@payflow.local", notify.NewWriterSender(sent))).
		WithListenerManager(mgr).
		WithTransactionLogger(records).
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	customer, err := domain.NewCustomerData("John Doe", "cus_1", domain.ContactInfo{Email: "john@example.com"})
	if err != nil {
		t.Fatalf("NewCustomerData: %v", err)
	}
	payment, err := domain.NewPaymentData(decimal.NewFromInt(100), "USD", domain.PaymentCard, "tok_visa")
	if err != nil {
		t.Fatalf("NewPaymentData: %v", err)
	}

	resp, err := svc.ProcessTransaction(context.Background(), customer, payment)
	if err != nil {
		t.Fatalf("ProcessTransaction error: %v", err)
	}
	if !resp.Success || resp.TransactionID == "" {
		t.Fatalf("expected success with id, got %+v", resp)
	}
	if len(records.records) != 1 {
		t.Fatalf("expected exactly one trace record, got %d", len(records.records))
	}
	if broadcasts != 1 {
		t.Fatalf("expected exactly one broadcast, got %d", broadcasts)
	}
	if !strings.Contains(sent.String(), "john@example.com") {
		t.Fatalf("expected email notification, got %q", sent.String())
	}
}
