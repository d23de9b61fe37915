package params

import (
	"unicode"
	"unicode/utf8"
)

// Spec is a standalone shared parameter.
type Spec struct {
	Name string `yaml:"name" validate:"required"`
	Doc  string `yaml:"doc"`

	// Default is a Python expression inserted verbatim as the param's
	// default value. Empty means the param has no default.
	Default string `yaml:"default,omitempty"`
}

// HasDefault reports whether the spec carries a default value expression.
func (s Spec) HasDefault() bool {
	return s.Default != ""
}

// ClassName returns the mixin class name, e.g. maxIter → HasMaxIter.
func (s Spec) ClassName() string {
	return "Has" + Capitalize(s.Name)
}

// GroupSpec is a parameter rendered as a field of its group's class.
type GroupSpec struct {
	Name string `yaml:"name" validate:"required"`
	Doc  string `yaml:"doc"`
}

// Group is a named collection of parameters that share one class.
type Group struct {
	Class  string      `yaml:"class" validate:"required"`
	Title  string      `yaml:"title"`
	Params []GroupSpec `yaml:"params" validate:"dive"`
}

// Table is the complete input of one generation pass.
type Table struct {
	Params []Spec `yaml:"params" validate:"dive"`
	Group  *Group `yaml:"group,omitempty"`
}

// Capitalize upper-cases the first rune of name and leaves the rest unchanged.
// A name that does not start with valid UTF-8 is returned as is.
// Examples: maxIter → MaxIter, seed → Seed
func Capitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	if r == utf8.RuneError && size == 1 {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
