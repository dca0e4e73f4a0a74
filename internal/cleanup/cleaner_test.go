package cleanup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRoot = "/project"
	testSelf = "/project/postgen"
	goMod    = "module github.com/acme/widget\n\ngo 1.22\n"
	workflow = "name: release\non:\n  push:\n    tags: ['v*']\n"
)

// newTree writes files into an in-memory filesystem and always adds the
// cleaner's own executable.
func newTree(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	files[testSelf] = "\x7fELF"
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
	}
	return fsys
}

func run(t *testing.T, fsys afero.Fs, mutate func(*Options)) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	opts := Options{
		Fs:   fsys,
		Root: testRoot,
		Self: testSelf,
		Out:  &buf,
	}
	if mutate != nil {
		mutate(&opts)
	}
	err := New(opts).Run(context.Background())
	return buf.String(), err
}

func exists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fsys, path)
	require.NoError(t, err)
	return ok
}

func outputLines(out string) []string {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestRun_BlankConfigRemovesConfigAndWorkflow(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/.goreleaser.yml":               "  \n\t\n",
		"/project/.github/workflows/release.yml": workflow,
		"/project/go.mod":                        goMod,
	})

	out, err := run(t, fsys, nil)
	require.NoError(t, err)

	assert.False(t, exists(t, fsys, "/project/.goreleaser.yml"))
	assert.False(t, exists(t, fsys, "/project/.github/workflows/release.yml"))

	lines := outputLines(out)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Removed empty .goreleaser.yml")
	assert.Contains(t, lines[1], "Removed release.yml (no goreleaser)")
}

func TestRun_EmptyConfigWithoutWorkflow(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/.goreleaser.yml": "",
		"/project/go.mod":          goMod,
	})

	out, err := run(t, fsys, nil)
	require.NoError(t, err)

	assert.False(t, exists(t, fsys, "/project/.goreleaser.yml"))
	lines := outputLines(out)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Removed empty .goreleaser.yml")
}

func TestRun_NonEmptyConfigKeepsBoth(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/.goreleaser.yml":               "version: 2\nbuilds:\n  - main: ./cmd/widget\n",
		"/project/.github/workflows/release.yml": workflow,
		"/project/go.mod":                        goMod,
	})

	out, err := run(t, fsys, nil)
	require.NoError(t, err)

	assert.True(t, exists(t, fsys, "/project/.goreleaser.yml"))
	assert.True(t, exists(t, fsys, "/project/.github/workflows/release.yml"))
	assert.Empty(t, outputLines(out))
}

func TestRun_MissingConfigKeepsWorkflow(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/.github/workflows/release.yml": workflow,
		"/project/go.mod":                        goMod,
	})

	out, err := run(t, fsys, nil)
	require.NoError(t, err)

	assert.True(t, exists(t, fsys, "/project/.github/workflows/release.yml"))
	assert.Empty(t, outputLines(out))
}

func TestRun_NothingToDo(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/go.mod":     goMod,
		"/project/README.md":  "# widget\n",
		"/project/widget.go":  "package widget\n",
		"/project/.gitignore": "bin/\n",
	})

	out, err := run(t, fsys, nil)
	require.NoError(t, err)

	assert.Empty(t, outputLines(out))
	assert.True(t, exists(t, fsys, "/project/README.md"))
	assert.True(t, exists(t, fsys, "/project/widget.go"))
	assert.False(t, exists(t, fsys, testSelf))
}

func TestRun_BlankEntryPointRemovesCmdDir(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/cmd/sub/main.go": " \n\n",
		"/project/cmd/sub/doc.txt": "notes",
		"/project/go.mod":          goMod,
	})

	out, err := run(t, fsys, func(o *Options) { o.RemoveEmptyCmd = true })
	require.NoError(t, err)

	assert.False(t, exists(t, fsys, "/project/cmd"))
	assert.Contains(t, out, "Removed cmd/")
}

func TestRun_NonEmptyEntryPointKeepsCmdDir(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/cmd/widget/main.go": "package main\n\nfunc main() {}\n",
		"/project/go.mod":             goMod,
	})

	out, err := run(t, fsys, func(o *Options) { o.RemoveEmptyCmd = true })
	require.NoError(t, err)

	assert.True(t, exists(t, fsys, "/project/cmd/widget/main.go"))
	assert.Empty(t, outputLines(out))
}

func TestRun_NoEntryPointKeepsCmdDir(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/cmd/README.md": "",
		"/project/go.mod":        goMod,
	})

	out, err := run(t, fsys, func(o *Options) { o.RemoveEmptyCmd = true })
	require.NoError(t, err)

	assert.True(t, exists(t, fsys, "/project/cmd/README.md"))
	assert.Empty(t, outputLines(out))
}

func TestRun_MissingCmdDirIsNoop(t *testing.T) {
	fsys := newTree(t, map[string]string{"/project/go.mod": goMod})

	out, err := run(t, fsys, func(o *Options) { o.RemoveEmptyCmd = true })
	require.NoError(t, err)
	assert.Empty(t, outputLines(out))
}

func TestRun_CmdStepDisabledByDefault(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/cmd/sub/main.go": "",
		"/project/go.mod":          goMod,
	})

	_, err := run(t, fsys, nil)
	require.NoError(t, err)
	assert.True(t, exists(t, fsys, "/project/cmd/sub/main.go"))
}

func TestRun_MissingGoModPrintsReminderOnly(t *testing.T) {
	fsys := newTree(t, map[string]string{"/project/widget.go": "package widget\n"})

	out, err := run(t, fsys, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "Note: Run 'go mod init <module_path>' to initialize the module")
	assert.False(t, exists(t, fsys, "/project/go.mod"))
	assert.True(t, exists(t, fsys, "/project/widget.go"))
}

func TestRun_ReminderUsesAnswersModulePath(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/.copier-answers.yml": "project_name: widget\nmodule_path: github.com/acme/widget\n",
	})

	out, err := run(t, fsys, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "go mod init github.com/acme/widget")
	assert.True(t, exists(t, fsys, "/project/.copier-answers.yml"))
}

func TestRun_PresentGoModPrintsNothing(t *testing.T) {
	fsys := newTree(t, map[string]string{"/project/go.mod": goMod})

	out, err := run(t, fsys, nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "go mod init")
	content, err := afero.ReadFile(fsys, "/project/go.mod")
	require.NoError(t, err)
	assert.Equal(t, goMod, string(content))
}

func TestRun_UnparsableGoModIsLeftAlone(t *testing.T) {
	fsys := newTree(t, map[string]string{"/project/go.mod": "{{ module_path }}\n"})

	out, err := run(t, fsys, nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "go mod init")
	assert.True(t, exists(t, fsys, "/project/go.mod"))
}

func TestRun_RemovesSelf(t *testing.T) {
	fsys := newTree(t, map[string]string{"/project/go.mod": goMod})

	_, err := run(t, fsys, nil)
	require.NoError(t, err)
	assert.False(t, exists(t, fsys, testSelf))
}

func TestRun_MissingSelfIsAnError(t *testing.T) {
	fsys := newTree(t, map[string]string{"/project/go.mod": goMod})

	_, err := run(t, fsys, func(o *Options) { o.Self = "/project/gone" })
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_DryRunChangesNothing(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/.goreleaser.yml":               "\n",
		"/project/.github/workflows/release.yml": workflow,
		"/project/cmd/widget/main.go":            "",
		"/project/go.mod":                        goMod,
	})

	out, err := run(t, fsys, func(o *Options) {
		o.DryRun = true
		o.RemoveEmptyCmd = true
	})
	require.NoError(t, err)

	assert.True(t, exists(t, fsys, "/project/.goreleaser.yml"))
	assert.True(t, exists(t, fsys, "/project/.github/workflows/release.yml"))
	assert.True(t, exists(t, fsys, "/project/cmd/widget/main.go"))
	assert.True(t, exists(t, fsys, testSelf))

	lines := outputLines(out)
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "[DRY RUN] Removed empty .goreleaser.yml")
	assert.Contains(t, lines[1], "[DRY RUN] Removed release.yml (no goreleaser)")
	assert.Contains(t, lines[2], "[DRY RUN] Removed cmd/")
	assert.Contains(t, lines[3], "[DRY RUN] Removed "+testSelf)
}

func TestRun_FailureStopsBeforeSelfRemoval(t *testing.T) {
	base := newTree(t, map[string]string{
		"/project/.goreleaser.yml": "",
		"/project/go.mod":          goMod,
	})
	fsys := afero.NewReadOnlyFs(base)

	_, err := run(t, fsys, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release config")

	assert.True(t, exists(t, base, "/project/.goreleaser.yml"))
	assert.True(t, exists(t, base, testSelf))
}

func TestRun_IdempotentSecondPass(t *testing.T) {
	fsys := newTree(t, map[string]string{
		"/project/.goreleaser.yml":               "",
		"/project/.github/workflows/release.yml": workflow,
		"/project/go.mod":                        goMod,
	})

	_, err := run(t, fsys, nil)
	require.NoError(t, err)

	// Put a fresh executable back and run again over the cleaned tree.
	require.NoError(t, afero.WriteFile(fsys, testSelf, []byte("\x7fELF"), 0755))
	out, err := run(t, fsys, nil)
	require.NoError(t, err)
	assert.Empty(t, outputLines(out))
}

func TestRun_CancelledContext(t *testing.T) {
	fsys := newTree(t, map[string]string{"/project/.goreleaser.yml": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(Options{Fs: fsys, Root: testRoot, Self: testSelf, Out: &bytes.Buffer{}}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, exists(t, fsys, "/project/.goreleaser.yml"))
}

func TestRun_OnDisk(t *testing.T) {
	root := t.TempDir()
	hooks := t.TempDir()
	self := filepath.Join(hooks, "postgen")

	files := map[string]string{
		".goreleaser.yml":               " ",
		".github/workflows/release.yml": workflow,
		"cmd/sub/main.go":               "\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	require.NoError(t, os.WriteFile(self, []byte("#!/bin/sh\n"), 0755))

	var buf bytes.Buffer
	err := New(Options{
		Root:           root,
		Self:           self,
		RemoveEmptyCmd: true,
		Out:            &buf,
	}).Run(context.Background())
	require.NoError(t, err)

	for _, rel := range []string{".goreleaser.yml", ".github/workflows/release.yml", "cmd"} {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		assert.True(t, os.IsNotExist(err), "%s should be removed", rel)
	}
	_, err = os.Stat(self)
	assert.True(t, os.IsNotExist(err), "self should be removed")

	// The .github tree itself is not ours to remove.
	_, err = os.Stat(filepath.Join(root, ".github", "workflows"))
	assert.NoError(t, err)

	assert.Contains(t, buf.String(), "go mod init <module_path>")
}
