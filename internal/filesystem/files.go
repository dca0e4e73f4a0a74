package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// errFound stops GlobWalk once the first match has been recorded.
var errFound = errors.New("match found")

// Exists reports whether path is present on fsys.
func Exists(fsys afero.Fs, path string) (bool, error) {
	ok, err := afero.Exists(fsys, path)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return ok, nil
}

// IsBlank reports whether the file at path is empty once leading and
// trailing whitespace is stripped.
func IsBlank(fsys afero.Fs, path string) (bool, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return len(bytes.TrimSpace(data)) == 0, nil
}

// FindFirst walks dir for regular files matching the doublestar pattern
// and returns the first one, joined back onto dir. The walk stops as soon
// as a match is seen. A missing dir, or one with no match, returns
// ok == false and no error.
func FindFirst(fsys afero.Fs, dir, pattern string) (match string, ok bool, err error) {
	isDir, err := afero.DirExists(fsys, dir)
	if err != nil {
		return "", false, fmt.Errorf("checking %s: %w", dir, err)
	}
	if !isDir {
		return "", false, nil
	}

	iofs := afero.NewIOFS(afero.NewBasePathFs(fsys, dir))
	err = doublestar.GlobWalk(iofs, pattern, func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		match = filepath.Join(dir, filepath.FromSlash(path))
		return errFound
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", false, fmt.Errorf("searching %s for %s: %w", dir, pattern, err)
	}

	return match, match != "", nil
}
