package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/ember/lang/ast"
)

type ASTJSONEncoder struct {
	w    io.Writer
	opts Options
}

func NewASTJSONEncoder(w io.Writer, opts Options) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w, opts: opts}
}

func (e *ASTJSONEncoder) Encode(node ast.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node ast.Node) ([]byte, error) {
	b := treeBuilder{positions: e.opts.Positions}
	return json.MarshalIndent(b.build(node), "", "  ")
}
