package params

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Severity classifies a lint issue.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Issue is a problem found in a table.
type Issue struct {
	Location string // e.g. params[3], group.params[1]
	Name     string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s (%s): %s", i.Severity, i.Location, i.Name, i.Message)
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Python reserved words; a param named after one produces a syntax error.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// Lint inspects a table for problems that rendering passes through unchecked.
// Issues are returned in table order.
func Lint(t Table) []Issue {
	var issues []Issue

	seen := make(map[string]string)       // name -> location
	seenFolded := make(map[string]string) // lower(name) -> name

	check := func(location, name, doc string) {
		add := func(sev Severity, format string, args ...any) {
			issues = append(issues, Issue{
				Location: location,
				Name:     name,
				Severity: sev,
				Message:  fmt.Sprintf(format, args...),
			})
		}

		switch {
		case name == "":
			add(SeverityError, "name is empty")
		case !identifierRe.MatchString(name):
			add(SeverityError, "name is not a valid identifier")
		case pythonKeywords[name]:
			add(SeverityError, "name is a Python keyword")
		default:
			if r, _ := utf8.DecodeRuneInString(name); !unicode.IsLower(r) {
				add(SeverityWarning, "name should start with a lower-case letter")
			}
		}

		if name != "" {
			if prev, ok := seen[name]; ok {
				add(SeverityError, "duplicate name, first declared at %s", prev)
			} else {
				seen[name] = location
				folded := strings.ToLower(name)
				if other, ok := seenFolded[folded]; ok {
					add(SeverityWarning, "name differs only in case from %q", other)
				} else {
					seenFolded[folded] = name
				}
			}
		}

		if strings.TrimSpace(doc) == "" {
			add(SeverityWarning, "doc is empty")
		}
		if strings.ContainsAny(doc, "\"\n") {
			add(SeverityError, "doc contains a double quote or newline and would break the generated string literal")
		}
	}

	for i, p := range t.Params {
		check(fmt.Sprintf("params[%d]", i), p.Name, p.Doc)
	}
	if t.Group != nil {
		if !identifierRe.MatchString(t.Group.Class) {
			issues = append(issues, Issue{
				Location: "group",
				Name:     t.Group.Class,
				Severity: SeverityError,
				Message:  "class is not a valid identifier",
			})
		}
		for i, p := range t.Group.Params {
			check(fmt.Sprintf("group.params[%d]", i), p.Name, p.Doc)
		}
	}

	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
