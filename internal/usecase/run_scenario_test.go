package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/aalvaropc/payflow/internal/domain"
)

type countingPayments struct {
	calls int
	fail  map[string]error
}

func (p *countingPayments) ProcessTransaction(_ context.Context, c domain.CustomerData, _ domain.PaymentData) (domain.PaymentResponse, error) {
	p.calls++
	if err := p.fail[c.ID]; err != nil {
		return domain.PaymentResponse{}, err
	}
	return domain.PaymentResponse{Success: true, TransactionID: "tx-" + c.ID}, nil
}

func twoTxScenario() domain.Scenario {
	return domain.Scenario{
		Name: "mixed",
		Transactions: []domain.ScenarioTransaction{
			{Name: "first", Customer: domain.CustomerData{ID: "a"}, Payment: samplePayment()},
			{Name: "second", Customer: domain.CustomerData{ID: "b"}, Payment: samplePayment()},
		},
	}
}

func TestRunScenario_ContinuesAfterFailure(t *testing.T) {
	p := &countingPayments{fail: map[string]error{"a": errors.New("declined")}}
	uc := NewRunScenario(fakeScenarioLoader{sc: twoTxScenario()}, p)

	run, err := uc.Execute(context.Background(), "scenarios/mixed.yaml")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if p.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", p.calls)
	}
	if run.ScenarioName != "mixed" || run.ScenarioPath != "scenarios/mixed.yaml" {
		t.Fatalf("unexpected run header: %+v", run)
	}
	if len(run.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(run.Outcomes))
	}
	if run.Outcomes[0].Err == nil || run.Outcomes[1].Response.TransactionID != "tx-b" {
		t.Fatalf("unexpected outcomes: %+v", run.Outcomes)
	}
	if run.Failures() != 1 {
		t.Fatalf("expected 1 failure, got %d", run.Failures())
	}
}

func TestRunScenario_StopsOnContextCancel(t *testing.T) {
	p := &countingPayments{}
	uc := NewRunScenario(fakeScenarioLoader{sc: twoTxScenario()}, p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, err := uc.Execute(ctx, "x.yaml")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if p.calls != 0 || len(run.Outcomes) != 0 {
		t.Fatalf("expected nothing processed, calls=%d outcomes=%d", p.calls, len(run.Outcomes))
	}
}

func TestRunScenario_LoaderError(t *testing.T) {
	uc := NewRunScenario(fakeScenarioLoader{err: domain.ErrNotFound}, &countingPayments{})

	if _, err := uc.Execute(context.Background(), "missing.yaml"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDemoScenario(t *testing.T) {
	sc := DemoScenario()
	if len(sc.Transactions) != 1 {
		t.Fatalf("expected one demo transaction")
	}
	tx := sc.Transactions[0]
	if tx.Payment.Type != domain.PaymentCard || tx.Payment.Currency != "USD" || tx.Payment.MinorUnits() != 10000 {
		t.Fatalf("unexpected demo payment: %+v", tx.Payment)
	}
}
