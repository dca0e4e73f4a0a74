// Package postgen tidies a freshly generated Go project after the
// scaffolding tool has rendered its template.
package postgen

// Version is the current postgen release.
const Version = "0.1.0"
