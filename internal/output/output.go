// Package output prints styled status lines for the paramgen CLI.
//
// Everything goes to stderr by default: stdout is reserved for generated
// source, so `paramgen > shared.py` never captures a status line.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var (
	mu          sync.Mutex
	out         io.Writer = os.Stderr
	verboseMode bool
)

// SetWriter redirects all output; nil restores stderr.
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// Writer returns the current destination.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// SetVerbose enables or disables verbose output.
// The CLI calls this when --verbose is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verboseMode
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// Success prints a completed operation in green.
//
// Example:
//
//	output.Success("Generated pyspark/ml/param/shared.py")
func Success(msg string) {
	emit(successStyle.Render("✓ " + msg))
}

// Error prints a failure in red.
func Error(msg string) {
	emit(errorStyle.Render("✗ " + msg))
}

// Warn prints something the user should look at but that did not fail.
func Warn(msg string) {
	emit(warnStyle.Render("⚠ " + msg))
}

// Info prints a status update in cyan.
func Info(msg string) {
	emit(infoStyle.Render("ℹ " + msg))
}

// Step prints an indented sub-item in gray.
//
// Example:
//
//	output.Info("Lint issues:")
//	output.Step("params[3] (labelCol): doc is empty")
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if IsVerbose() {
		emit(stepStyle.Render("… " + msg))
	}
}
