package generator

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DiffOptions configures how diffs are generated and displayed.
// All fields are optional with sensible defaults.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines to show around changes.
	// Default: 3
	ContextLines int

	// MaxWidth truncates long lines (generated docstrings can be very long).
	// Default: terminal width, or 120 when not attached to a terminal.
	MaxWidth int

	// ShowLineNums displays old-file line numbers in the left margin.
	ShowLineNums bool
}

type lineOp int

const (
	opUnchanged lineOp = iota
	opAdded
	opRemoved
)

// diffLine is one line of the edit script
type diffLine struct {
	oldNum  int // 0 when added
	newNum  int // 0 when removed
	content string
	op      lineOp
}

// hunk is a contiguous block of changes with surrounding context
type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []diffLine
}

// Lipgloss styles for terminal output
var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("22"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("52"))
	lineNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true)
)

// maxDiffLines bounds the O(ND) search; regenerated modules are far smaller.
const maxDiffLines = 20000

// GenerateDiffDefault renders a unified diff with default options.
func GenerateDiffDefault(oldPath, newPath string, old, newer []byte) string {
	return GenerateDiff(oldPath, newPath, old, newer, nil)
}

// GenerateDiff renders a styled unified diff between old and newer.
// It returns "" when the contents are identical.
func GenerateDiff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	o := DiffOptions{}
	if opts != nil {
		o = *opts
	}
	if o.ContextLines <= 0 {
		o.ContextLines = 3
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = terminalWidth()
	}

	oldLines := splitLines(string(old))
	newLines := splitLines(string(newer))

	if equalLines(oldLines, newLines) {
		return ""
	}
	if len(oldLines) > maxDiffLines || len(newLines) > maxDiffLines {
		return fmt.Sprintf("Files too large for diff (%d and %d lines)\n", len(oldLines), len(newLines))
	}

	hunks := buildHunks(editScript(oldLines, newLines), o.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(headerStyle.Render("--- "+oldPath) + "\n")
	buf.WriteString(headerStyle.Render("+++ "+newPath) + "\n")
	for _, h := range hunks {
		buf.WriteString(formatHunk(h, o))
	}
	return buf.String()
}

// DiffStat counts added and removed lines between old and newer.
func DiffStat(old, newer []byte) (added, removed int) {
	for _, l := range editScript(splitLines(string(old)), splitLines(string(newer))) {
		switch l.op {
		case opAdded:
			added++
		case opRemoved:
			removed++
		}
	}
	return added, removed
}

// editScript computes the shortest edit script with the Myers algorithm
// ("An O(ND) Difference Algorithm and Its Variations", 1986).
func editScript(old, newer []string) []diffLine {
	n, m := len(old), len(newer)
	maxD := n + m
	offset := maxD + 1

	v := make([]int, 2*maxD+3)
	var trace [][]int

	for d := 0; d <= maxD; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		done := false
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1] // down: insertion
			} else {
				x = v[offset+k-1] + 1 // right: deletion
			}
			y := x - k
			for x < n && y < m && old[x] == newer[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				done = true
				break
			}
		}
		if done {
			break
		}
	}

	// Backtrack from (n, m), collecting lines in reverse.
	var rev []diffLine
	x, y := n, m
	for d := len(trace) - 1; d >= 0; d-- {
		vd := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && vd[offset+k-1] < vd[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := vd[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			rev = append(rev, diffLine{oldNum: x + 1, newNum: y + 1, content: old[x], op: opUnchanged})
		}
		if d == 0 {
			break
		}
		if x == prevX {
			y--
			rev = append(rev, diffLine{newNum: y + 1, content: newer[y], op: opAdded})
		} else {
			x--
			rev = append(rev, diffLine{oldNum: x + 1, content: old[x], op: opRemoved})
		}
	}

	script := make([]diffLine, len(rev))
	for i, l := range rev {
		script[len(rev)-1-i] = l
	}
	return script
}

// buildHunks groups the edit script into hunks with surrounding context
func buildHunks(lines []diffLine, contextLines int) []hunk {
	var hunks []hunk

	i := 0
	for i < len(lines) {
		// Find the next change
		for i < len(lines) && lines[i].op == opUnchanged {
			i++
		}
		if i == len(lines) {
			break
		}

		start := max(i-contextLines, 0)
		end := i
		for end < len(lines) {
			if lines[end].op != opUnchanged {
				end++
				continue
			}
			// Run of unchanged lines: extend the hunk only if another
			// change follows within 2*context lines.
			run := end
			for run < len(lines) && lines[run].op == opUnchanged {
				run++
			}
			if run < len(lines) && run-end <= 2*contextLines {
				end = run
				continue
			}
			end = min(end+contextLines, len(lines))
			break
		}

		hunks = append(hunks, newHunk(lines[start:end]))
		i = end
	}

	return hunks
}

// newHunk computes start lines and counts for a slice of the edit script
func newHunk(lines []diffLine) hunk {
	h := hunk{lines: lines}
	for _, l := range lines {
		if l.oldNum > 0 && h.oldStart == 0 {
			h.oldStart = l.oldNum
		}
		if l.newNum > 0 && h.newStart == 0 {
			h.newStart = l.newNum
		}
		if l.op != opAdded {
			h.oldCount++
		}
		if l.op != opRemoved {
			h.newCount++
		}
	}
	return h
}

// formatHunk formats a hunk as a styled unified diff chunk
func formatHunk(h hunk, opts DiffOptions) string {
	var buf strings.Builder

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart, h.oldCount, h.newStart, h.newCount)
	buf.WriteString(hunkStyle.Render(header) + "\n")

	for _, l := range h.lines {
		content := truncateLine(l.content, opts.MaxWidth-10) // Leave room for prefix and line numbers

		var formatted string
		switch l.op {
		case opAdded:
			formatted = addedStyle.Render("+" + content)
		case opRemoved:
			formatted = removedStyle.Render("-" + content)
		default:
			formatted = " " + content
		}

		if opts.ShowLineNums {
			num := "    "
			if l.oldNum > 0 {
				num = fmt.Sprintf("%4d", l.oldNum)
			}
			formatted = lineNumStyle.Render(num) + " " + formatted
		}

		buf.WriteString(formatted + "\n")
	}

	return buf.String()
}

// splitLines splits content into lines, dropping the empty line after a final newline
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// truncateLine truncates a line if it's too long, adding "..." indicator
func truncateLine(s string, maxWidth int) string {
	if maxWidth <= 3 {
		maxWidth = 80
	}
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxWidth-3]) + "..."
}

// terminalWidth returns the width of the terminal diffs are printed to
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
