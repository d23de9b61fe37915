package generator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ConflictResolution represents what to do with an existing file
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel
	// Pending leaves a conflict undecided; dry runs only report it.
	Pending
)

// ErrCancelled is returned when the user cancels at a conflict prompt.
var ErrCancelled = errors.New("generation cancelled")

// ConflictStrategy decides what happens to a file whose content would change.
type ConflictStrategy interface {
	Resolve(path string, existing, newer []byte) (ConflictResolution, error)
}

// Resolver handles file conflict resolution
type Resolver struct {
	strategy ConflictStrategy
	out      io.Writer // where diffs are printed
}

// Lipgloss styles for terminal output
var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
)

// NewResolver creates a conflict resolver with the specified flags.
// Returns error if --force is combined with --skip or --diff.
func NewResolver(force, skip, diff bool) (*Resolver, error) {
	if force && (skip || diff) {
		return nil, fmt.Errorf("--force cannot be combined with --skip or --diff")
	}

	return &Resolver{
		strategy: selectStrategy(force, skip, diff),
		out:      os.Stderr,
	}, nil
}

// NewResolverWithStrategy creates a resolver around a custom strategy.
func NewResolverWithStrategy(strategy ConflictStrategy, out io.Writer) *Resolver {
	if out == nil {
		out = os.Stderr
	}
	return &Resolver{strategy: strategy, out: out}
}

// ResolveConflict determines what to do with a file that already exists.
// A ShowDiff answer prints the diff and asks again.
func (r *Resolver) ResolveConflict(path string, existing, newer []byte) (ConflictResolution, error) {
	for {
		resolution, err := r.strategy.Resolve(path, existing, newer)
		if err != nil || resolution != ShowDiff {
			return resolution, err
		}
		if err := showDiff(r.out, path, existing, newer); err != nil {
			return Cancel, err
		}
	}
}

// selectStrategy chooses the appropriate strategy based on flags
func selectStrategy(force, skip, diff bool) ConflictStrategy {
	switch {
	case force:
		return &ForceStrategy{}
	case skip:
		return &SkipStrategy{}
	case diff:
		return &DiffStrategy{}
	default:
		return &InteractiveStrategy{}
	}
}

// pendingStrategy never decides; Execute uses it for dry runs so that
// nothing prompts before the report is printed.
type pendingStrategy struct{}

func (pendingStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Pending, nil
}

// ForceStrategy always returns Overwrite (no prompts)
type ForceStrategy struct{}

// Resolve always returns Overwrite for force mode
func (s *ForceStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

// SkipStrategy always returns Skip (no prompts)
type SkipStrategy struct{}

// Resolve always returns Skip for skip mode
func (s *SkipStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Skip, nil
}

// DiffStrategy shows the diff first, then asks like InteractiveStrategy.
type DiffStrategy struct {
	shown map[string]bool
}

// Resolve returns ShowDiff on the first call for a path so the resolver
// prints its diff
func (s *DiffStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	if !s.shown[path] {
		if s.shown == nil {
			s.shown = make(map[string]bool)
		}
		s.shown[path] = true
		return ShowDiff, nil
	}
	return (&InteractiveStrategy{}).Resolve(path, existing, newer)
}

// InteractiveStrategy shows a menu with keyboard navigation.
// It needs a terminal on stdin; without one the conflict cannot be decided.
type InteractiveStrategy struct{}

// Resolve shows the interactive menu and returns the user's choice.
func (s *InteractiveStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return Cancel, fmt.Errorf("%s has changed and stdin is not a terminal; use --force, --skip or --diff", path)
	}

	added, removed := DiffStat(existing, newer)
	model := newConflictMenuModel(path, len(existing), added, removed)
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return Cancel, fmt.Errorf("failed to show menu: %w", err)
	}

	result := finalModel.(conflictMenuModel)
	if result.selected == nil {
		return Cancel, nil
	}
	return *result.selected, nil
}

// showDiff prints the diff inline, or in a full-screen viewer when it is long
// and stderr is a terminal.
func showDiff(out io.Writer, path string, existing, newer []byte) error {
	diff := GenerateDiffDefault(path+" (existing)", path+" (generated)", existing, newer)

	if strings.Count(diff, "\n") <= 20 || !term.IsTerminal(int(os.Stderr.Fd())) {
		_, err := fmt.Fprint(out, diff)
		return err
	}

	p := tea.NewProgram(newDiffViewerModel(path, diff), tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to show diff: %w", err)
	}
	return nil
}

// conflictMenuModel is the BubbleTea model for the conflict menu
type conflictMenuModel struct {
	path     string
	size     int
	added    int
	removed  int
	choices  []string
	cursor   int
	selected *ConflictResolution
}

func newConflictMenuModel(path string, size, added, removed int) conflictMenuModel {
	return conflictMenuModel{
		path:    path,
		size:    size,
		added:   added,
		removed: removed,
		choices: []string{
			"Show diff and decide",
			"Skip (keep existing file)",
			"Overwrite (replace with generated code)",
			"Cancel operation",
		},
	}
}

// Init initializes the menu model
func (m conflictMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input
func (m conflictMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			resolution := mapChoiceToResolution(m.cursor)
			m.selected = &resolution
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu
func (m conflictMenuModel) View() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("⚠️  Generated output differs from: ") + titleStyle.Render(m.path) + "\n")
	b.WriteString(mutedStyle.Render("    Size: ") + formatFileSize(int64(m.size)) + "\n")
	b.WriteString(mutedStyle.Render("    Changes: ") + fmt.Sprintf("+%d -%d lines", m.added, m.removed) + "\n\n")
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [q] Cancel") + "\n\n")

	for i, choice := range m.choices {
		if m.cursor == i {
			b.WriteString("    " + selectedStyle.Render("> "+choice) + "\n")
		} else {
			b.WriteString("      " + choice + "\n")
		}
	}

	return b.String()
}

// mapChoiceToResolution maps cursor position to resolution
func mapChoiceToResolution(cursor int) ConflictResolution {
	switch cursor {
	case 0:
		return ShowDiff
	case 1:
		return Skip
	case 2:
		return Overwrite
	default:
		return Cancel
	}
}

// diffViewerModel is the BubbleTea model for showing long diffs
type diffViewerModel struct {
	path     string
	diff     string
	viewport viewport.Model
	ready    bool
}

func newDiffViewerModel(path, diff string) diffViewerModel {
	return diffViewerModel{path: path, diff: diff}
}

// Init initializes the diff viewer
func (m diffViewerModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input and window sizing
func (m diffViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "pgup", "b":
			m.viewport.PageUp()
		case "pgdown", "f", " ":
			m.viewport.PageDown()
		}

	case tea.WindowSizeMsg:
		const verticalMargin = 4 // header + footer
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, msg.Height-verticalMargin)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = msg.Height - verticalMargin
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the diff viewer
func (m diffViewerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	rule := borderStyle.Render(strings.Repeat("─", max(m.viewport.Width, 0)))
	return titleStyle.Render("Diff: "+m.path) + "\n" + rule + "\n" +
		m.viewport.View() + "\n" + rule + "\n" +
		mutedStyle.Render(" [↑/↓] Scroll    [q] Return to menu")
}

// formatFileSize formats file size in human-readable format
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
