package tui

import (
	"log/slog"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/ports"
)

type Deps struct {
	// Root is empty when started outside a workspace.
	Root   string
	Config domain.Config

	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer
	Scenarios            ports.ScenarioLoader

	Logger *slog.Logger
	Debug  bool
}
