// Package params describes the shared parameter table that paramgen renders.
//
// A Table holds an ordered list of standalone parameters, each rendered as its
// own Has<Name> mixin class, and an optional Group whose parameters are
// rendered together as fields of a single class.
//
// # Sources
//
// The table comes either from the built-in PySpark shared params
// (Shared) or from a YAML schema file (LoadSchema):
//
//	apiVersion: v1
//	kind: SharedParams
//	name: shared
//	spec:
//	  params:
//	    - name: featuresCol
//	      doc: features column name
//	      default: "'features'"
//
// # Linting
//
// Rendering never checks the table. Lint reports duplicate names, names that
// are not identifiers and docs that would break a string literal, so callers
// can catch those before generating.
package params
