package format

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/ember/lang/ast"
)

type ASTYAMLEncoder struct {
	w    io.Writer
	opts Options
}

func NewASTYAMLEncoder(w io.Writer, opts Options) *ASTYAMLEncoder {
	return &ASTYAMLEncoder{w: w, opts: opts}
}

func (e *ASTYAMLEncoder) Encode(node ast.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTYAMLEncoder) MarshalText(node ast.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	b := treeBuilder{positions: e.opts.Positions}
	if err := enc.Encode(b.build(node)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
