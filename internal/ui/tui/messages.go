package tui

import "github.com/aalvaropc/payflow/internal/domain"

type initWorkspaceDoneMsg struct {
	root string
	cfg  domain.Config
	err  error
}

type scenariosLoadedMsg struct {
	root string
	refs []domain.ScenarioRef
	err  error
}

type runnerDoneMsg struct {
	run     domain.ScenarioRun
	notices string
	err     error
}
