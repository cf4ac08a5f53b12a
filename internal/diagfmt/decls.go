package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"lcc/internal/ast"
	"lcc/internal/source"
)

// ParamOutput mirrors ast.Param for serialization.
type ParamOutput struct {
	Type    string `json:"type" yaml:"type" msgpack:"type"`
	Name    string `json:"name" yaml:"name" msgpack:"name"`
	Default string `json:"default,omitempty" yaml:"default,omitempty" msgpack:"default,omitempty"`
}

// DeclOutput is one accepted declaration in `lcc decls` output. The same
// shape is the msgpack hand-off consumed by the downstream parser.
type DeclOutput struct {
	Kind      string        `json:"kind" yaml:"kind" msgpack:"kind"`
	Name      string        `json:"name" yaml:"name" msgpack:"name"`
	Owner     string        `json:"owner,omitempty" yaml:"owner,omitempty" msgpack:"owner,omitempty"`
	Signature string        `json:"signature" yaml:"signature" msgpack:"signature"`
	Returns   string        `json:"returns,omitempty" yaml:"returns,omitempty" msgpack:"returns,omitempty"`
	Params    []ParamOutput `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
	Supers    []string      `json:"supers,omitempty" yaml:"supers,omitempty" msgpack:"supers,omitempty"`
	Start     uint32        `json:"start" yaml:"start" msgpack:"start"`
	End       uint32        `json:"end" yaml:"end" msgpack:"end"`
	Line      uint32        `json:"line" yaml:"line" msgpack:"line"`
	Col       uint32        `json:"col" yaml:"col" msgpack:"col"`
}

// DeclsOutput is the document root.
type DeclsOutput struct {
	File  string       `json:"file" yaml:"file" msgpack:"file"`
	Decls []DeclOutput `json:"decls" yaml:"decls" msgpack:"decls"`
}

// BuildDeclsOutput converts decls for serialization.
func BuildDeclsOutput(decls []ast.Decl, f *source.File) DeclsOutput {
	out := DeclsOutput{File: f.Path, Decls: make([]DeclOutput, 0, len(decls))}
	for i := range decls {
		d := &decls[i]
		pos := f.Position(d.Span.Start)
		o := DeclOutput{
			Kind:      d.Kind.String(),
			Name:      d.Name,
			Owner:     d.Owner,
			Signature: d.Signature(),
			Returns:   d.Returns,
			Start:     d.Span.Start,
			End:       d.Span.End,
			Line:      pos.Line,
			Col:       pos.Col,
		}
		if len(d.Supers) > 0 {
			o.Supers = append([]string(nil), d.Supers...)
		}
		for _, p := range d.Params {
			o.Params = append(o.Params, ParamOutput{Type: p.Type, Name: p.Name, Default: p.Default})
		}
		out.Decls = append(out.Decls, o)
	}
	return out
}

// FormatDeclsPretty печатает по объявлению на строку, методы с отступом.
func FormatDeclsPretty(w io.Writer, decls []ast.Decl, f *source.File) error {
	for _, o := range BuildDeclsOutput(decls, f).Decls {
		indent := ""
		if o.Owner != "" {
			indent = "  "
		}
		if _, err := fmt.Fprintf(w, "%s%d:%d %s\n", indent, o.Line, o.Col, o.Signature); err != nil {
			return err
		}
	}
	return nil
}

func FormatDeclsJSON(w io.Writer, decls []ast.Decl, f *source.File) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDeclsOutput(decls, f))
}

func FormatDeclsYAML(w io.Writer, decls []ast.Decl, f *source.File) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(BuildDeclsOutput(decls, f)); err != nil {
		return err
	}
	return encoder.Close()
}

// FormatDeclsMsgpack writes the binary hand-off.
func FormatDeclsMsgpack(w io.Writer, decls []ast.Decl, f *source.File) error {
	return msgpack.NewEncoder(w).Encode(BuildDeclsOutput(decls, f))
}

// ReadDeclsMsgpack decodes what FormatDeclsMsgpack wrote.
func ReadDeclsMsgpack(r io.Reader) (DeclsOutput, error) {
	var out DeclsOutput
	if err := msgpack.NewDecoder(r).Decode(&out); err != nil {
		return DeclsOutput{}, fmt.Errorf("decode decls: %w", err)
	}
	return out, nil
}
