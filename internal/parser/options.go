package parser

import (
	"fmt"
	"strings"

	"lcc/internal/ast"
	"lcc/internal/diag"
)

// ClassMode selects how class/endclass structure is checked.
type ClassMode uint8

const (
	// ClassModePair pairs class with endclass the way func is paired with endfunc.
	ClassModePair ClassMode = iota
	// ClassModeParity only requires an even number of live "class" substrings.
	ClassModeParity
)

func (m ClassMode) String() string {
	switch m {
	case ClassModePair:
		return "pair"
	case ClassModeParity:
		return "parity"
	}
	return "unknown"
}

// ParseClassMode accepts "pair" (also the empty string) and "parity".
func ParseClassMode(s string) (ClassMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pair":
		return ClassModePair, nil
	case "parity":
		return ClassModeParity, nil
	}
	return ClassModePair, fmt.Errorf("unknown class mode %q (want pair or parity)", s)
}

type Options struct {
	// Reporter получает восстановимые диагностики по мере обнаружения; может быть nil.
	Reporter  diag.Reporter
	ClassMode ClassMode
}

// Result is Ok(Decls) or Fatal: when Fatal is set, Decls is nil.
type Result struct {
	Decls []ast.Decl
	Fatal *diag.Diagnostic
}

func (r Result) Ok() bool {
	return r.Fatal == nil
}

// Funcs returns the accepted functions and methods.
func (r Result) Funcs() []ast.Decl {
	return r.filter(ast.DeclFunc)
}

// Classes returns the accepted classes.
func (r Result) Classes() []ast.Decl {
	return r.filter(ast.DeclClass)
}

func (r Result) filter(kind ast.DeclKind) []ast.Decl {
	var out []ast.Decl
	for _, d := range r.Decls {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
