// Package project reads metadata from a freshly generated Go project.
//
// # Overview
//
// Two sources are consulted, both read-only:
//   - go.mod, parsed with golang.org/x/mod/modfile
//   - the template answers file (.copier-answers.yml) the scaffolding
//     tool leaves behind, which carries the requested module path
//
// # Usage
//
//	info, err := project.DetectModule(fs, root)
//	if errors.Is(err, project.ErrNoModule) {
//	    answers, _ := project.LoadAnswers(fs, root)
//	    fmt.Println("go mod init", answers.ModulePathOr("<module_path>"))
//	}
package project
