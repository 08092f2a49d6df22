package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/payflow/internal/app"
	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/infra/logger"
	"github.com/aalvaropc/payflow/internal/infra/workspacefinder"
	"github.com/aalvaropc/payflow/internal/infra/yamlscenario"
	"github.com/aalvaropc/payflow/internal/ports"
)

// workspaceCtx is what every command needs: where we are and how we are configured.
// root is empty when running outside a workspace.
type workspaceCtx struct {
	root      string
	cfg       domain.Config
	scenarios ports.ScenarioLoader
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	var (
		root string
		cfg  domain.Config
		err  error
	)

	if w := strings.TrimSpace(workspaceFlag); w != "" {
		root, err = filepath.Abs(w)
		if err != nil {
			return nil, fmt.Errorf("invalid workspace path: %w", err)
		}
		cfg, err = workspacefinder.LoadConfig(root)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, fmt.Errorf("get working directory: %w", wdErr)
		}
		root, cfg, err = workspacefinder.Resolve(workspacefinder.NewFinder(), wd)
	}
	if err != nil {
		return nil, err
	}

	return &workspaceCtx{
		root:      root,
		cfg:       cfg,
		scenarios: yamlscenario.NewLoader(yamlscenario.WithScenariosDir(cfg.Paths.ScenariosDir)),
	}, nil
}

// requireRoot is for commands that only make sense inside a workspace.
func (ws *workspaceCtx) requireRoot() error {
	if ws.root == "" {
		return &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("no %s found (tip: run `payflow init`): %w", "payflow.yaml", domain.ErrNotFound),
		}
	}
	return nil
}

func (ws *workspaceCtx) wire(ctx context.Context, out io.Writer) (*app.Runtime, error) {
	root := ws.root
	if root == "" {
		root, _ = os.Getwd()
	}
	return app.Wire(ctx, ws.cfg, app.WireOptions{
		Root:   root,
		Out:    out,
		Logger: logger.L(),
	})
}

func logRoot(workspaceFlag string) (string, error) {
	if w := strings.TrimSpace(workspaceFlag); w != "" {
		return filepath.Abs(w)
	}
	wd, err := os.Getwd()
	if err != nil {
		return ".", nil
	}
	if root, ferr := workspacefinder.NewFinder().FindRoot(wd); ferr == nil {
		return root, nil
	}
	return wd, nil
}

func resolveScenarioPath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("scenario is required")
	}

	base := ws.root
	if base == "" {
		base, _ = os.Getwd()
	}

	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		return filepath.Clean(p), nil
	}

	dir := filepath.Join(base, ws.cfg.Paths.ScenariosDir)

	if hasYAMLExt(in) {
		if p := filepath.Join(dir, in); fileExists(p) {
			return p, nil
		}
	}
	for _, ext := range []string{".yaml", ".yml"} {
		if p := filepath.Join(dir, in+ext); fileExists(p) {
			return p, nil
		}
	}

	// Last resort: match the scenario's name field.
	if refs, err := ws.scenarios.ListScenarios(base); err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", &domain.OpError{
		Op:   "cli.scenario",
		Kind: domain.KindNotFound,
		Path: dir,
		Err:  fmt.Errorf("scenario %q: %w", in, domain.ErrNotFound),
	}
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
