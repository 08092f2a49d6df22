package domain

// Scenario is a named, ordered list of transactions loaded from a file.
type Scenario struct {
	Name         string
	Transactions []ScenarioTransaction
}

// ScenarioTransaction is one customer/payment pair inside a scenario.
type ScenarioTransaction struct {
	Name     string
	Customer CustomerData
	Payment  PaymentData
}

// ScenarioRef points at a scenario file without loading it.
type ScenarioRef struct {
	Name string
	Path string
}

// ScenarioOutcome is the result of running one scenario transaction.
type ScenarioOutcome struct {
	Name     string
	Response PaymentResponse
	Err      error
}

// ScenarioRun collects outcomes in execution order.
type ScenarioRun struct {
	ScenarioName string
	ScenarioPath string
	Outcomes     []ScenarioOutcome
}

// Failures counts outcomes that errored or were declined.
func (r ScenarioRun) Failures() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil || !o.Response.Success {
			n++
		}
	}
	return n
}
