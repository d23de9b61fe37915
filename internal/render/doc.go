// Package render produces the Python shared-params module from a params.Table.
//
// # Output
//
// A rendered module is, in order:
//
//   - the Apache license banner (Header)
//   - a "DO NOT MODIFY THIS FILE!" warning naming the generator
//   - "from pyspark.ml.param import Param, Params"
//   - one Has<Name> mixin per standalone param (ParamClass)
//   - one class for the param group, if any (GroupClass)
//
// Classes keep the table order and are separated by two blank lines.
//
// # Verbatim substitution
//
// Names, docs and default expressions are inserted exactly as given, with
// no escaping or checking. A default of 'features' is emitted as
// self._setDefault(featuresCol='features'). Use params.Lint to catch input
// that would produce invalid Python.
//
// # Templates
//
// The class shapes live in embedded text/template files under templates/.
// WithTemplateDir points a Renderer at a replacement set with the same
// template names.
//
//	r := render.New(render.WithGenerator("paramgen"))
//	src, err := r.Module(params.Shared())
package render
