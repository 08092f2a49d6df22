package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/payflow/internal/app"
	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/infra/workspacefinder"
	"github.com/aalvaropc/payflow/internal/usecase"
)

func cmdInitWorkspaceHere(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{err: errors.New("WorkspaceInitializer is nil")}
		}
		wd, err := os.Getwd()
		if err != nil {
			return initWorkspaceDoneMsg{err: fmt.Errorf("getwd: %w", err)}
		}

		if err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: wd}, false); err != nil {
			return initWorkspaceDoneMsg{root: wd, err: err}
		}
		cfg, err := workspacefinder.LoadConfig(wd)
		return initWorkspaceDoneMsg{root: wd, cfg: cfg, err: err}
	}
}

func cmdLoadScenarios(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if root == "" || deps.Scenarios == nil {
			return scenariosLoadedMsg{root: root}
		}
		refs, err := deps.Scenarios.ListScenarios(root)
		return scenariosLoadedMsg{root: root, refs: refs, err: err}
	}
}

func listenRunner(ch <-chan runnerDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return runnerDoneMsg{err: errors.New("runner channel closed")}
		}
		return msg
	}
}

// startRunAsync runs a scenario off the UI goroutine. A nil scenario means load
// it from path. Notifications are captured so they don't scribble over the screen.
func startRunAsync(deps Deps, root string, cfg domain.Config, path string, sc *domain.Scenario) (chan runnerDoneMsg, tea.Cmd) {
	ch := make(chan runnerDoneMsg, 1)

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("run.start", "workspace", root, "scenario_path", path, "debug", deps.Debug)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		var notices bytes.Buffer
		wireRoot := root
		if wireRoot == "" {
			wireRoot, _ = os.Getwd()
		}
		rt, err := app.Wire(ctx, cfg, app.WireOptions{Root: wireRoot, Out: &notices, Logger: log})
		if err != nil {
			log.Error("run.wire.failed", "err", err)
			ch <- runnerDoneMsg{err: err}
			return
		}
		defer rt.Close()

		uc := usecase.NewRunScenario(deps.Scenarios, rt.Service)

		var run domain.ScenarioRun
		if sc != nil {
			run, err = uc.ExecuteScenario(ctx, path, *sc)
		} else {
			run, err = uc.Execute(ctx, path)
		}

		if err != nil {
			log.Error("run.failed", "err", err)
		} else {
			log.Info("run.ok", "scenario", run.ScenarioName, "failures", run.Failures())
		}
		for _, o := range run.Outcomes {
			if o.Err != nil {
				log.Warn("transaction.error", "name", o.Name, "err", o.Err)
			} else if deps.Debug {
				log.Debug("transaction.ok",
					"name", o.Name,
					"success", o.Response.Success,
					"transaction_id", o.Response.TransactionID,
				)
			}
		}

		ch <- runnerDoneMsg{run: run, notices: notices.String(), err: err}
	}()

	return ch, listenRunner(ch)
}
