// Package verify checks that generated Python modules compile.
//
// It shells out to `python3 -m py_compile`, so it needs an interpreter on
// PATH but nothing from PySpark itself: Param and Params are only referenced
// by name in the generated code, and compiling never resolves imports.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DefaultPython is the interpreter used when none is configured.
const DefaultPython = "python3"

// Checker compiles Python files with an external interpreter
type Checker struct {
	python  string
	stderr  io.Writer
	spinner bool

	// For mocking in tests
	commandFunc func(name string, args ...string) *exec.Cmd
}

// Options configures a Checker
type Options struct {
	Python  string    // Interpreter to run (default python3)
	Stderr  io.Writer // Where the spinner is drawn (default os.Stderr)
	Spinner bool      // Show a spinner while compiling; only drawn on a terminal
}

// New creates a checker with sensible defaults
func New(opts *Options) *Checker {
	if opts == nil {
		opts = &Options{Spinner: true}
	}

	c := &Checker{
		python:      opts.Python,
		stderr:      opts.Stderr,
		spinner:     opts.Spinner,
		commandFunc: exec.Command,
	}
	if c.python == "" {
		c.python = DefaultPython
	}
	if c.stderr == nil {
		c.stderr = os.Stderr
	}
	return c
}

// CompileError reports a file the interpreter rejected.
type CompileError struct {
	Path   string
	Output string // what the interpreter printed, usually a SyntaxError trace
	Err    error
}

func (e *CompileError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s does not compile: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s does not compile: %v\n%s", e.Path, e.Err, e.Output)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile byte-compiles a single file.
func (c *Checker) Compile(ctx context.Context, path string) error {
	var out bytes.Buffer
	err := c.run(ctx, &out, c.python, "-m", "py_compile", path)
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CompileError{Path: path, Output: strings.TrimSpace(out.String()), Err: err}
	}
	return err
}

// CompileSource writes src to a temporary file and compiles it, for output
// that never touches the disk (e.g. generation to stdout).
func (c *Checker) CompileSource(ctx context.Context, name string, src []byte) error {
	dir, err := os.MkdirTemp("", "paramgen-verify-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, src, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := c.Compile(ctx, path); err != nil {
		var compileErr *CompileError
		if errors.As(err, &compileErr) {
			compileErr.Path = name
		}
		return err
	}
	return nil
}

// CompileAll compiles each path in order and stops at the first failure.
// On a terminal it shows a spinner while it works.
func (c *Checker) CompileAll(ctx context.Context, paths []string) error {
	compile := func() error {
		for _, path := range paths {
			if err := c.Compile(ctx, path); err != nil {
				return err
			}
		}
		return nil
	}

	if !c.spinner || !isTerminal(c.stderr) {
		return compile()
	}
	return c.withSpinner(fmt.Sprintf("Compiling %d file(s) with %s", len(paths), c.python), compile)
}

// run executes a command, collecting its stdout and stderr into out
func (c *Checker) run(ctx context.Context, out io.Writer, name string, args ...string) error {
	cmd := c.commandFunc(name, args...)
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return enhanceError(err, name)
		}
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		<-errCh
		return fmt.Errorf("%s cancelled: %w", name, ctx.Err())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s failed: %w", name, err)
		}
		return nil
	}
}

// withSpinner runs fn while a spinner is drawn on stderr
func (c *Checker) withSpinner(message string, fn func() error) error {
	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(c.stderr), tea.WithInput(nil))

	finished := make(chan struct{})
	go func() {
		_, _ = p.Run()
		close(finished)
	}()

	err := fn()
	p.Send(spinnerDoneMsg{err: err})

	select {
	case <-finished:
	case <-time.After(time.Second):
		p.Quit()
	}
	return err
}

// spinnerModel is the bubbletea model for the spinner
type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{spinner: s, message: message}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("✗ %s\n", m.message)
		}
		return fmt.Sprintf("✓ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}

// isTerminal reports whether w is a terminal file
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// enhanceError adds a hint for a missing interpreter
func enhanceError(err error, cmd string) error {
	return fmt.Errorf("%w\nCommand '%s' not found. Install Python 3 or set the interpreter with --python", err, cmd)
}
