package render

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/paramgen/internal/params"
)

// preamble is everything Module emits before the first class.
func preamble(generator, importModule string) string {
	return License + "\n\n# DO NOT MODIFY THIS FILE! It was generated by " + generator + ".\n\n" +
		"from " + importModule + " import Param, Params"
}

// countLines counts the lines of s starting with prefix.
func countLines(s, prefix string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func TestNew(t *testing.T) {
	r := New()
	assert.NotNil(t, r.funcMap)
	assert.Empty(t, r.cache)
	assert.Equal(t, DefaultGenerator, r.generator)
	assert.Equal(t, DefaultImportModule, r.importModule)
}

func TestHeader(t *testing.T) {
	h := New().Header()
	assert.Equal(t, License, h)
	assert.True(t, strings.HasPrefix(h, "#\n# Licensed to the Apache Software Foundation"))
	assert.True(t, strings.HasSuffix(h, "limitations under the License.\n#"))
}

func TestModule_Golden(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "shared.py.golden"))
	require.NoError(t, err)

	got, err := New().Module(params.Shared())
	require.NoError(t, err)

	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("generated module mismatch (-want +got):\n%s", diff)
	}
}

func TestModule_NoTrailingWhitespace(t *testing.T) {
	got, err := New().Module(params.Shared())
	require.NoError(t, err)

	for i, line := range strings.Split(string(got), "\n") {
		assert.Equal(t, strings.TrimRight(line, " \t"), line, "line %d has trailing whitespace", i+1)
	}
}

func TestParamClass_MaxIter(t *testing.T) {
	out, err := New().ParamClass(params.Spec{Name: "maxIter", Doc: "max number of iterations (>= 0)"})
	require.NoError(t, err)

	want := `class HasMaxIter(Params):
    """
    Mixin for param maxIter: max number of iterations (>= 0).
    """

    # a placeholder to make it appear in the generated doc
    maxIter = Param(Params._dummy(), "maxIter", "max number of iterations (>= 0)")

    def __init__(self):
        super(HasMaxIter, self).__init__()
        #: param for max number of iterations (>= 0)
        self.maxIter = Param(self, "maxIter", "max number of iterations (>= 0)")

    def setMaxIter(self, value):
        """
        Sets the value of :py:attr:` + "`maxIter`" + `.
        """
        self._paramMap[self.maxIter] = value
        return self

    def getMaxIter(self):
        """
        Gets the value of maxIter or its default value.
        """
        return self.getOrDefault(self.maxIter)`

	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("ParamClass mismatch (-want +got):\n%s", diff)
	}
	assert.NotContains(t, out, "_setDefault")
}

func TestParamClass_DefaultInsertedVerbatim(t *testing.T) {
	r := New()

	tests := []struct {
		spec     params.Spec
		expected string
	}{
		{
			spec:     params.Spec{Name: "featuresCol", Doc: "features column name", Default: "'features'"},
			expected: "        self._setDefault(featuresCol='features')\n",
		},
		{
			spec:     params.Spec{Name: "seed", Doc: "random seed", Default: "hash(type(self).__name__)"},
			expected: "        self._setDefault(seed=hash(type(self).__name__))\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.spec.Name, func(t *testing.T) {
			out, err := r.ParamClass(tt.spec)
			require.NoError(t, err)
			assert.Contains(t, out, tt.expected)
			assert.Equal(t, 1, strings.Count(out, "_setDefault("))
		})
	}
}

func TestParamClass_DefaultOnlyAddsOneLine(t *testing.T) {
	r := New()
	without, err := r.ParamClass(params.Spec{Name: "labelCol", Doc: "label column name"})
	require.NoError(t, err)
	with, err := r.ParamClass(params.Spec{Name: "labelCol", Doc: "label column name", Default: "'label'"})
	require.NoError(t, err)

	withLines := strings.Split(with, "\n")
	withoutLines := strings.Split(without, "\n")
	require.Len(t, withLines, len(withoutLines)+1)

	// Removing the default line must give back the other rendering exactly.
	var stripped []string
	for _, line := range withLines {
		if line != "        self._setDefault(labelCol='label')" {
			stripped = append(stripped, line)
		}
	}
	assert.Equal(t, withoutLines, stripped)
}

func TestParamClass_Structure(t *testing.T) {
	r := New()

	for _, spec := range params.Shared().Params {
		t.Run(spec.Name, func(t *testing.T) {
			out, err := r.ParamClass(spec)
			require.NoError(t, err)

			name := params.Capitalize(spec.Name)
			assert.Equal(t, 1, countLines(out, "class "))
			assert.True(t, strings.HasPrefix(out, "class Has"+name+"(Params):\n"))
			assert.Equal(t, 1, strings.Count(out, "Params._dummy()"))
			assert.Equal(t, 1, strings.Count(out, "def __init__(self):"))
			assert.Equal(t, 1, strings.Count(out, "def set"+name+"(self, value):"))
			assert.Equal(t, 1, strings.Count(out, "def get"+name+"(self):"))
			assert.Equal(t, spec.HasDefault(), strings.Contains(out, "_setDefault"))
			assert.False(t, strings.HasSuffix(out, "\n"))
		})
	}
}

func TestParamClass_NoEscaping(t *testing.T) {
	out, err := New().ParamClass(params.Spec{Name: "odd", Doc: `a <b> & "c"`})
	require.NoError(t, err)
	assert.Contains(t, out, `odd = Param(Params._dummy(), "odd", "a <b> & "c"")`)
}

func TestParamClass_Idempotent(t *testing.T) {
	spec := params.Spec{Name: "predictionCol", Doc: "prediction column name", Default: "'prediction'"}

	first, err := New().ParamClass(spec)
	require.NoError(t, err)

	r := New()
	second, err := r.ParamClass(spec)
	require.NoError(t, err)
	third, err := r.ParamClass(spec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, second, third)
}

func TestGroupClass(t *testing.T) {
	group := params.Group{
		Class: "TreeParams",
		Title: "Tree",
		Params: []params.GroupSpec{
			{Name: "maxDepth", Doc: "Maximum depth of the tree."},
			{Name: "maxBins", Doc: "Max number of bins."},
		},
	}

	out, err := New().GroupClass(group)
	require.NoError(t, err)

	want := `class TreeParams(Params):
    """
    Mixin for Tree parameters.
    """

    # a placeholder to make it appear in the generated doc
    maxDepth = Param(Params._dummy(), "maxDepth", "Maximum depth of the tree.")
    maxBins = Param(Params._dummy(), "maxBins", "Max number of bins.")

    def __init__(self):
        super(TreeParams, self).__init__()
        #: param for Maximum depth of the tree.
        self.maxDepth = Param(self, "maxDepth", "Maximum depth of the tree.")
        #: param for Max number of bins.
        self.maxBins = Param(self, "maxBins", "Max number of bins.")

    def setMaxDepth(self, value):
        """
        Sets the value of :py:attr:` + "`maxDepth`" + `.
        """
        self._paramMap[self.maxDepth] = value
        return self

    def getMaxDepth(self):
        """
        Gets the value of maxDepth or its default value.
        """
        return self.getOrDefault(self.maxDepth)

    def setMaxBins(self, value):
        """
        Sets the value of :py:attr:` + "`maxBins`" + `.
        """
        self._paramMap[self.maxBins] = value
        return self

    def getMaxBins(self):
        """
        Gets the value of maxBins or its default value.
        """
        return self.getOrDefault(self.maxBins)`

	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("GroupClass mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupClass_Structure(t *testing.T) {
	group := *params.Shared().Group

	out, err := New().GroupClass(group)
	require.NoError(t, err)

	assert.Equal(t, 1, countLines(out, "class "))
	assert.Equal(t, 1, strings.Count(out, "def __init__(self):"))
	assert.Equal(t, len(group.Params), strings.Count(out, "Params._dummy()"))
	assert.Equal(t, len(group.Params), strings.Count(out, "#: param for "))

	// Placeholders, assignments and accessors all follow input order.
	last := map[string]int{"placeholder": -1, "assignment": -1, "setter": -1}
	for _, p := range group.Params {
		name := params.Capitalize(p.Name)
		positions := map[string]int{
			"placeholder": strings.Index(out, "    "+p.Name+" = Param(Params._dummy()"),
			"assignment":  strings.Index(out, "        self."+p.Name+" = Param(self"),
			"setter":      strings.Index(out, "def set"+name+"(self, value):"),
		}
		for kind, pos := range positions {
			require.GreaterOrEqual(t, pos, 0, "%s for %s not found", kind, p.Name)
			assert.Greater(t, pos, last[kind], "%s for %s out of order", kind, p.Name)
			last[kind] = pos
		}
		assert.Equal(t, 1, strings.Count(out, "def get"+name+"(self):"))
	}
}

func TestGroupClass_TitleFallsBackToClass(t *testing.T) {
	out, err := New().GroupClass(params.Group{Class: "ForestParams"})
	require.NoError(t, err)
	assert.Contains(t, out, "Mixin for ForestParams parameters.")
	assert.NotContains(t, out, "_dummy()")
}

func TestModule_OrderAndSeparators(t *testing.T) {
	r := New()
	table := params.Table{Params: []params.Spec{
		{Name: "tol", Doc: "the convergence tolerance"},
		{Name: "inputCol", Doc: "input column name"},
		{Name: "seed", Doc: "random seed", Default: "42"},
	}}

	out, err := r.Module(table)
	require.NoError(t, err)

	body := strings.TrimPrefix(string(out), preamble(DefaultGenerator, DefaultImportModule)+"\n\n\n")
	require.NotEqual(t, string(out), body, "module must start with the preamble")
	body = strings.TrimSuffix(body, "\n")

	blocks := strings.Split(body, "\n\n\n")
	require.Len(t, blocks, len(table.Params))
	for i, spec := range table.Params {
		want, err := r.ParamClass(spec)
		require.NoError(t, err)
		assert.Equal(t, want, blocks[i])
	}
}

func TestModule_Empty(t *testing.T) {
	r := New()

	t.Run("no params no group", func(t *testing.T) {
		out, err := r.Module(params.Table{})
		require.NoError(t, err)
		assert.Equal(t, preamble(DefaultGenerator, DefaultImportModule)+"\n", string(out))
	})

	t.Run("group only", func(t *testing.T) {
		group := params.Group{Class: "TreeParams", Title: "Tree", Params: []params.GroupSpec{{Name: "maxDepth", Doc: "depth"}}}
		out, err := r.Module(params.Table{Group: &group})
		require.NoError(t, err)

		block, err := r.GroupClass(group)
		require.NoError(t, err)
		assert.Equal(t, preamble(DefaultGenerator, DefaultImportModule)+"\n\n\n"+block+"\n", string(out))
		assert.Equal(t, 1, countLines(string(out), "class "))
	})
}

func TestModule_Idempotent(t *testing.T) {
	first, err := New().Module(params.Shared())
	require.NoError(t, err)
	second, err := New().Module(params.Shared())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestModule_DuplicatesPassThrough(t *testing.T) {
	table := params.Table{Params: []params.Spec{
		{Name: "seed", Doc: "random seed"},
		{Name: "seed", Doc: "random seed"},
	}}

	out, err := New().Module(table)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(out), "class HasSeed(Params):"))
}

func TestOptions(t *testing.T) {
	r := New(WithGenerator("_shared_params_code_gen.py"), WithImportModule("mylib.param"))

	out, err := r.Module(params.Table{})
	require.NoError(t, err)
	assert.Equal(t, preamble("_shared_params_code_gen.py", "mylib.param")+"\n", string(out))

	// Empty values keep the defaults.
	r = New(WithGenerator(""), WithImportModule(""), WithTemplateDir(""))
	assert.Equal(t, DefaultGenerator, r.generator)
	assert.Equal(t, DefaultImportModule, r.importModule)
}

func writeTemplates(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", name), []byte(content), 0644))
	}
	return dir
}

func TestWithTemplateDir(t *testing.T) {
	dir := writeTemplates(t, map[string]string{
		"param.py.tmpl":  "param {{ capitalize .Name }}",
		"group.py.tmpl":  "group {{ .Class }}",
		"module.py.tmpl": "{{ .Generator }}|{{ join .Blocks \",\" }}",
	})

	r := New(WithTemplateDir(dir))
	out, err := r.Module(params.Table{
		Params: []params.Spec{{Name: "maxIter"}, {Name: "tol"}},
		Group:  &params.Group{Class: "TreeParams"},
	})
	require.NoError(t, err)
	assert.Equal(t, "paramgen|param MaxIter,param Tol,group TreeParams", string(out))
}

func TestTemplateErrors(t *testing.T) {
	t.Run("no templates", func(t *testing.T) {
		r := New(WithTemplateDir(t.TempDir()))
		_, err := r.ParamClass(params.Spec{Name: "maxIter"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse templates")
	})

	t.Run("execution error", func(t *testing.T) {
		dir := writeTemplates(t, map[string]string{"param.py.tmpl": "{{ .Missing }}"})
		r := New(WithTemplateDir(dir))

		_, err := r.ParamClass(params.Spec{Name: "maxIter"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to render template 'param.py.tmpl'")

		_, err = r.Module(params.Table{Params: []params.Spec{{Name: "maxIter"}}})
		require.Error(t, err)
	})
}

func TestClearCache(t *testing.T) {
	r := New()
	_, err := r.ParamClass(params.Spec{Name: "tol"})
	require.NoError(t, err)
	assert.Len(t, r.cache, 1)

	r.ClearCache()
	assert.Empty(t, r.cache)
}

func TestRenderer_ConcurrentUse(t *testing.T) {
	r := New()
	want, err := New().Module(params.Shared())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.Module(params.Shared())
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}
