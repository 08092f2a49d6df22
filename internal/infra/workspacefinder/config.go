package workspacefinder

import (
	"path/filepath"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/infra/config"
	"github.com/aalvaropc/payflow/internal/ports"
)

// LoadConfig loads payflow.yaml (or payflow.yml) from the workspace root over the defaults.
func LoadConfig(root string) (domain.Config, error) {
	path := filepath.Join(root, config.FileName)
	if p, ok := NewFinder().match(root); ok {
		path = p
	}
	return config.Load(path)
}

// Resolve finds the workspace above startDir and loads its config. Outside a
// workspace it returns the defaults (plus environment overrides) and an empty root.
func Resolve(locator ports.WorkspaceLocator, startDir string) (string, domain.Config, error) {
	root, err := locator.FindRoot(startDir)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			cfg, loadErr := config.Load("")
			return "", cfg, loadErr
		}
		return "", domain.DefaultConfig(), err
	}

	cfg, err := LoadConfig(root)
	return root, cfg, err
}
