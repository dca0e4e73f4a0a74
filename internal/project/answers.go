package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// AnswersFile is where the scaffolding tool records the answers used to
// render the template.
const AnswersFile = ".copier-answers.yml"

// Answers holds the template answers postgen cares about.
type Answers struct {
	ProjectName string `yaml:"project_name"`
	ModulePath  string `yaml:"module_path"`
}

// ModulePathOr returns the recorded module path, or fallback when none was
// recorded.
func (a *Answers) ModulePathOr(fallback string) string {
	if a == nil || strings.TrimSpace(a.ModulePath) == "" {
		return fallback
	}
	return strings.TrimSpace(a.ModulePath)
}

// LoadAnswers parses the answers file under rootPath. A missing file is not
// an error and yields empty Answers.
func LoadAnswers(fsys afero.Fs, rootPath string) (*Answers, error) {
	path := filepath.Join(rootPath, AnswersFile)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Answers{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", AnswersFile, err)
	}

	var answers Answers
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", AnswersFile, err)
	}

	return &answers, nil
}
