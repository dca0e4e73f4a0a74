// Package filesystem holds the small file checks postgen makes against a
// generated project tree.
//
// # Overview
//
// Every helper takes an afero.Fs so the same code runs against the real
// disk in production and an in-memory tree in tests:
//   - Exists reports whether a path is present
//   - IsBlank reports whether a file holds only whitespace
//   - FindFirst lazily globs a directory and stops at the first match
//
// # Usage
//
// Look for an entry point anywhere below cmd/:
//
//	path, ok, err := filesystem.FindFirst(fs, "/work/app/cmd", "**/main.go")
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    // nothing under cmd/, leave it alone
//	}
package filesystem
