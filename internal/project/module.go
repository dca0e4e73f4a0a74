package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/mod/modfile"
)

// ManifestFile is the module manifest looked for at the project root.
const ManifestFile = "go.mod"

// ErrNoModule is returned when the project root has no go.mod.
var ErrNoModule = errors.New("go.mod not found")

// ModuleInfo contains information from go.mod
type ModuleInfo struct {
	Path      string // Module path (e.g., "github.com/user/repo")
	GoVersion string // Go version requirement (e.g., "1.21")
}

// DetectModule reads go.mod under rootPath and returns module information.
// Returns ErrNoModule if go.mod doesn't exist.
func DetectModule(fsys afero.Fs, rootPath string) (*ModuleInfo, error) {
	modPath := filepath.Join(rootPath, ManifestFile)
	data, err := afero.ReadFile(fsys, modPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoModule, rootPath)
		}
		return nil, fmt.Errorf("failed to read go.mod: %w", err)
	}

	modFile, err := modfile.Parse(modPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod: %w", err)
	}

	info := &ModuleInfo{}
	if modFile.Module != nil {
		info.Path = modFile.Module.Mod.Path
	}
	if modFile.Go != nil {
		info.GoVersion = modFile.Go.Version
	}

	return info, nil
}
