package usecase

import (
	"context"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

// TransactionProcessor is the part of PaymentService a scenario run needs.
type TransactionProcessor interface {
	ProcessTransaction(ctx context.Context, customer domain.CustomerData, payment domain.PaymentData) (domain.PaymentResponse, error)
}

type RunScenario struct {
	scenarios ports.ScenarioLoader
	payments  TransactionProcessor
}

func NewRunScenario(sl ports.ScenarioLoader, tp TransactionProcessor) *RunScenario {
	return &RunScenario{
		scenarios: sl,
		payments:  tp,
	}
}

// Execute processes every transaction of the scenario in order. A failing transaction
// is recorded and the run continues; cancellation stops before the next transaction.
func (uc *RunScenario) Execute(ctx context.Context, scenarioPath string) (domain.ScenarioRun, error) {
	sc, err := uc.scenarios.LoadScenario(scenarioPath)
	if err != nil {
		return domain.ScenarioRun{}, err
	}
	return uc.ExecuteScenario(ctx, scenarioPath, sc)
}

// ExecuteScenario runs an already loaded scenario.
func (uc *RunScenario) ExecuteScenario(ctx context.Context, scenarioPath string, sc domain.Scenario) (domain.ScenarioRun, error) {
	run := domain.ScenarioRun{
		ScenarioName: sc.Name,
		ScenarioPath: scenarioPath,
		Outcomes:     make([]domain.ScenarioOutcome, 0, len(sc.Transactions)),
	}

	for _, tx := range sc.Transactions {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		resp, err := uc.payments.ProcessTransaction(ctx, tx.Customer, tx.Payment)
		run.Outcomes = append(run.Outcomes, domain.ScenarioOutcome{
			Name:     tx.Name,
			Response: resp,
			Err:      err,
		})
	}

	return run, nil
}
