// Package internalcheck holds static checks over the engine's source. It
// only contains tests; nothing here is meant to be imported.
//
// The checks load the arithmetic packages with golang.org/x/tools/go/packages
// and reject patterns that tend to leak secrets: variable-time byte slice
// comparison, hex formatting of values, and data-dependent branches in the
// constant-time lookup table.
package internalcheck
