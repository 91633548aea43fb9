package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/ember/lang/ast"
)

// Encoder writes a syntax tree in one output format.
type Encoder interface {
	Encode(node ast.Node) error
}

type Options struct {
	// Positions includes node spans in structured output.
	Positions bool
}

// Names lists the formats accepted by NewEncoder.
var Names = []string{"tree", "json", "yaml", "source"}

func NewEncoder(name string, w io.Writer, opts Options) (Encoder, error) {
	switch name {
	case "", "tree":
		return NewTreeEncoder(w), nil
	case "json":
		return NewASTJSONEncoder(w, opts), nil
	case "yaml":
		return NewASTYAMLEncoder(w, opts), nil
	case "source":
		return NewSourcePrinter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}

// TreeEncoder writes the S-expression form of a tree, one per line.
type TreeEncoder struct {
	w io.Writer
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(node ast.Node) error {
	_, err := io.WriteString(e.w, ast.Sprint(node)+"\n")
	return err
}
