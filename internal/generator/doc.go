// Package generator writes rendered files to disk safely.
//
// # Features
//
//   - WriteFileOp: create, overwrite or leave a file untouched depending on
//     what is already there
//   - Conflict resolution (interactive, --force, --skip, --diff)
//   - Myers diff for showing how a regenerated file would change
//   - Transactions: all files of one run are written or none are
//
// # Usage
//
//	resolver, err := generator.NewResolver(force, skip, diff)
//	ops := []generator.Operation{
//	    &generator.WriteFileOp{Path: "pyspark/ml/param/shared.py", Content: src, Mode: 0644},
//	}
//	err = generator.Execute(ctx, ops, generator.ExecuteOptions{Resolver: resolver})
//
// If any write fails, files written earlier in the same run are restored to
// their previous content, so a failed regeneration never leaves a mix of old
// and new modules on disk.
package generator
