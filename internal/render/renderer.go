package render

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"text/template"

	"github.com/simonhull/paramgen/internal/params"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const templatesGlob = "templates/*.tmpl"

// Template names, as parsed from the embedded files.
const (
	paramTemplate  = "param.py.tmpl"
	groupTemplate  = "group.py.tmpl"
	moduleTemplate = "module.py.tmpl"
)

// Defaults for the warning and import lines of the generated module.
const (
	DefaultGenerator    = "paramgen"
	DefaultImportModule = "pyspark.ml.param"
)

// Renderer turns a parameter table into Python source.
//
// The template set is parsed on first use and cached, so one Renderer can be
// reused (and shared between goroutines) for any number of tables.
type Renderer struct {
	fsys         fs.FS
	generator    string
	importModule string

	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithGenerator sets the tool name written into the "do not modify" warning.
func WithGenerator(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.generator = name
		}
	}
}

// WithImportModule sets the module Param and Params are imported from.
func WithImportModule(module string) Option {
	return func(r *Renderer) {
		if module != "" {
			r.importModule = module
		}
	}
}

// WithTemplateDir replaces the embedded templates with the *.tmpl files of a
// directory laid out like the embedded one (dir/templates/*.tmpl).
func WithTemplateDir(dir string) Option {
	return func(r *Renderer) {
		if dir != "" {
			r.fsys = os.DirFS(dir)
		}
	}
}

// New creates a renderer using the embedded templates
func New(opts ...Option) *Renderer {
	r := &Renderer{
		fsys:         templatesFS,
		generator:    DefaultGenerator,
		importModule: DefaultImportModule,
		funcMap:      defaultFuncMap(),
		cache:        make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Header returns the license banner placed at the top of every module.
func (r *Renderer) Header() string {
	return License
}

// ParamClass renders the Has<Name> mixin class for a standalone param,
// without a trailing newline.
func (r *Renderer) ParamClass(spec params.Spec) (string, error) {
	out, err := r.execute(paramTemplate, spec)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// GroupClass renders a single class holding every param of the group,
// without a trailing newline.
func (r *Renderer) GroupClass(group params.Group) (string, error) {
	out, err := r.execute(groupTemplate, &group)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// moduleData feeds module.py.tmpl
type moduleData struct {
	License      string
	Generator    string
	ImportModule string
	Blocks       []string
}

// Module renders the complete generated file: header, warning, import line,
// then one class per param in table order followed by the group class.
// Adjacent classes are separated by two blank lines.
func (r *Renderer) Module(table params.Table) ([]byte, error) {
	blocks := make([]string, 0, len(table.Params)+1)

	for _, spec := range table.Params {
		block, err := r.ParamClass(spec)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	if table.Group != nil {
		block, err := r.GroupClass(*table.Group)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return r.execute(moduleTemplate, moduleData{
		License:      r.Header(),
		Generator:    r.generator,
		ImportModule: r.importModule,
		Blocks:       blocks,
	})
}

// ClearCache clears the template cache (useful for testing)
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

// execute runs one named template of the set with the given data
func (r *Renderer) execute(name string, data any) ([]byte, error) {
	set, err := r.templates()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", name, err)
	}
	return buf.Bytes(), nil
}

// templates returns the parsed template set, parsing it on first use
func (r *Renderer) templates() (*template.Template, error) {
	// Check cache with read lock
	r.mu.RLock()
	if set, ok := r.cache[templatesGlob]; ok {
		r.mu.RUnlock()
		return set, nil
	}
	r.mu.RUnlock()

	set, err := template.New("paramgen").Funcs(r.funcMap).ParseFS(r.fsys, templatesGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates '%s': %w", templatesGlob, err)
	}

	// Cache with write lock
	r.mu.Lock()
	r.cache[templatesGlob] = set
	r.mu.Unlock()

	return set, nil
}

// defaultFuncMap returns the template function map
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"capitalize": params.Capitalize, // maxIter → MaxIter
		"join":       strings.Join,
	}
}
