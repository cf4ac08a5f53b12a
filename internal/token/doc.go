// Package token defines the fixed lexical vocabulary of .lc sources and the
// kinds of inert spans produced by the span scanner.
// Invariants:
//   - Keywords are matched as literal byte strings, not as identifiers:
//     "endfunc" contains "func" and "endclass" contains "class".
//   - Inert spans never overlap and are ordered by Span.Start.
//   - A StringLit span includes both quotes; comment spans include their
//     opener, a LineComment excludes the terminating '\n'.
package token
