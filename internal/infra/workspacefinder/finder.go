package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/payflow/internal/domain"
	"github.com/aalvaropc/payflow/internal/infra/config"
	"github.com/aalvaropc/payflow/internal/ports"
)

const opFindRoot = "workspacefinder.findroot"

// Finder walks up from a start directory until a directory holds one of
// ConfigFiles. The first name wins when several are present.
type Finder struct {
	ConfigFiles []string
}

func NewFinder() *Finder {
	return &Finder{ConfigFiles: []string{config.FileName, config.AltFileName}}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	dir, _, err := f.find(startDir)
	return dir, err
}

// ConfigPath returns the config file used by the workspace above startDir.
func (f *Finder) ConfigPath(startDir string) (string, error) {
	_, path, err := f.find(startDir)
	return path, err
}

func (f *Finder) find(startDir string) (string, string, error) {
	if startDir == "" {
		return "", "", &domain.OpError{Op: opFindRoot, Kind: domain.KindInvalidConfig, Err: errors.New("start directory is empty")}
	}

	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", "", &domain.OpError{Op: opFindRoot, Kind: domain.KindExecution, Err: err}
	}
	if info, statErr := os.Stat(start); statErr == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}

	dir := filepath.Clean(start)
	for {
		if path, ok := f.match(dir); ok {
			return dir, path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", &domain.OpError{Op: opFindRoot, Kind: domain.KindNotFound, Path: start, Err: domain.ErrNotFound}
		}
		dir = parent
	}
}

func (f *Finder) match(dir string) (string, bool) {
	for _, name := range f.ConfigFiles {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}
