// Package paramgen generates the Python shared-parameter mixin module
// (HasMaxIter, HasFeaturesCol, ..., DecisionTreeParams) from a parameter table.
package paramgen

// Version is the paramgen release
const Version = "0.1.0"
