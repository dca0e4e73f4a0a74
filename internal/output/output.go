// Package output prints styled status lines for postgen.
//
// User-facing lines go through a Printer (stdout by default). Diagnostics
// go through a charmbracelet/log logger on stderr, which only shows debug
// records once verbose mode is on.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
)

// Printer writes styled lines to a single writer.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a Printer writing to w. A nil w means os.Stdout.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Success prints a completion line with 🔥 emoji and green color.
//
// Example:
//
//	p.Success("Dry-run complete")
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, successStyle.Render("🔥 "+msg))
}

// Error prints an error message with ❌ emoji and red color.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, errorStyle.Render("❌ "+msg))
}

// Info prints an informational line in cyan.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, infoStyle.Render(msg))
}

var (
	std    = NewPrinter(os.Stdout)
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "postgen",
		Level:  log.InfoLevel,
	})
)

// SetVerbose switches the diagnostics logger between info and debug level.
// The CLI calls this when --verbose is set.
func SetVerbose(v bool) {
	if v {
		logger.SetLevel(log.DebugLevel)
		return
	}
	logger.SetLevel(log.InfoLevel)
}

// SetLogOutput redirects diagnostics, mostly for tests.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Error prints to stdout. See Printer.Error.
func Error(msg string) { std.Error(msg) }

// Verbose logs msg at debug level with optional key/value pairs.
//
// Example:
//
//	output.Verbose("resolved root", "path", root)
func Verbose(msg string, keyvals ...any) {
	logger.Debug(msg, keyvals...)
}

// Warn logs msg at warn level with optional key/value pairs.
func Warn(msg string, keyvals ...any) {
	logger.Warn(msg, keyvals...)
}
