package ports

import "github.com/aalvaropc/payflow/internal/domain"

// ScenarioLoader loads transaction scenarios from a source (e.g., filesystem).
type ScenarioLoader interface {
	LoadScenario(path string) (domain.Scenario, error)
	ListScenarios(root string) ([]domain.ScenarioRef, error)
}
