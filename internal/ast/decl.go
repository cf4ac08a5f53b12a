package ast

import (
	"strings"

	"lcc/internal/source"
)

type DeclKind uint8

const (
	DeclFunc DeclKind = iota + 1
	DeclClass
)

func (k DeclKind) String() string {
	switch k {
	case DeclFunc:
		return "func"
	case DeclClass:
		return "class"
	}
	return "invalid"
}

// Param is one `type name [= default]` entry of a parameter list.
type Param struct {
	Type    string
	Name    string
	Default string // пусто, если значения по умолчанию нет
	Span    source.Span
}

// HasDefault reports whether the parameter declares a default value.
func (p Param) HasDefault() bool {
	return p.Default != ""
}

type Decl struct {
	Kind     DeclKind
	Name     string
	NameSpan source.Span
	// Span covers the opener keyword through the end of the closer keyword.
	Span source.Span
	// Header is the opener line up to (excluding) its newline.
	Header    source.Span
	Returns   string // только для func
	ParamsRaw string
	Params    []Param
	Supers    []string // только для class
	Owner     string   // имя класса для методов
}

func (d *Decl) IsMethod() bool {
	return d.Kind == DeclFunc && d.Owner != ""
}

// QualifiedName is Owner.Name for methods and Name otherwise.
func (d *Decl) QualifiedName() string {
	if d.Owner == "" {
		return d.Name
	}
	return d.Owner + "." + d.Name
}

// Signature renders the header in canonical form, e.g. "func add(int a, int b = 1): int".
func (d *Decl) Signature() string {
	var b strings.Builder
	b.WriteString(d.Kind.String())
	b.WriteByte(' ')
	b.WriteString(d.Name)
	if d.Kind == DeclFunc || len(d.Params) > 0 {
		b.WriteByte('(')
		for i, p := range d.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Type)
			b.WriteByte(' ')
			b.WriteString(p.Name)
			if p.HasDefault() {
				b.WriteString(" = ")
				b.WriteString(p.Default)
			}
		}
		b.WriteByte(')')
	}
	if d.Kind == DeclFunc {
		b.WriteString(": ")
		b.WriteString(d.Returns)
	}
	if len(d.Supers) > 0 {
		b.WriteString(" inherits ")
		b.WriteString(strings.Join(d.Supers, ", "))
	}
	return b.String()
}
