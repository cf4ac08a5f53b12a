// Package ast holds the declarations extracted by the validator.
//
// A Decl is created once its opener/closer pair passed validation and is
// never mutated afterwards. Decls keep byte ranges only; a downstream parser
// re-lexes Span to build statement trees.
package ast
