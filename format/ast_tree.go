package format

import (
	"github.com/dhamidi/ember/lang/ast"
	"github.com/dhamidi/ember/lang/token"
)

// astNode is the uniform shape shared by the JSON and YAML encoders.
// Role names the slot a child fills in its parent.
type astNode struct {
	Kind     string     `json:"kind" yaml:"kind"`
	Role     string     `json:"role,omitempty" yaml:"role,omitempty"`
	Span     *astSpan   `json:"span,omitempty" yaml:"span,omitempty"`
	Token    string     `json:"token,omitempty" yaml:"token,omitempty"`
	Params   []string   `json:"params,omitempty" yaml:"params,omitempty"`
	Block    bool       `json:"block,omitempty" yaml:"block,omitempty"`
	Children []*astNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type astSpan struct {
	Start astPosition `json:"start" yaml:"start"`
	End   astPosition `json:"end" yaml:"end"`
}

type astPosition struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

type treeBuilder struct {
	positions bool
}

func (b treeBuilder) span(s token.Span) *astSpan {
	if !b.positions || (s.Start.Line == 0 && s.End.Line == 0) {
		return nil
	}
	return &astSpan{
		Start: astPosition{Line: s.Start.Line, Column: s.Start.Column},
		End:   astPosition{Line: s.End.Line, Column: s.End.Column},
	}
}

func (b treeBuilder) child(role string, n ast.Node) *astNode {
	c := b.build(n)
	c.Role = role
	return c
}

// group is a synthetic node for parts that have no ast.Node of their own,
// such as if cases and object fields.
func (b treeBuilder) group(kind, tok string, block bool, children ...*astNode) *astNode {
	return &astNode{Kind: kind, Token: tok, Block: block, Children: children}
}

func (b treeBuilder) build(n ast.Node) *astNode {
	out := &astNode{Kind: n.Kind().String(), Span: b.span(n.Span())}

	switch n := n.(type) {
	case *ast.Statements:
		for _, s := range n.Body {
			out.Children = append(out.Children, b.build(s))
		}
	case *ast.Number:
		out.Token = n.Token.Value
	case *ast.String:
		out.Token = n.Value()
	case *ast.VarAccess:
		out.Token = n.Name.Value
	case *ast.VarAssign:
		out.Token = n.Name.Value
		out.Children = []*astNode{b.child("value", n.Value)}
	case *ast.FieldAssign:
		out.Token = n.Object.Value + "." + n.Field.Value
		out.Children = []*astNode{b.child("value", n.Value)}
	case *ast.FieldAccess:
		out.Token = n.Field.Value
		out.Children = []*astNode{b.child("object", n.Object)}
	case *ast.BinOp:
		out.Token = ast.OpString(n.Op)
		out.Children = []*astNode{b.child("left", n.Left), b.child("right", n.Right)}
	case *ast.UnaryOp:
		out.Token = ast.OpString(n.Op)
		out.Children = []*astNode{b.child("operand", n.Operand)}
	case *ast.If:
		for _, c := range n.Cases {
			out.Children = append(out.Children,
				b.group("Case", "", c.Block, b.child("cond", c.Cond), b.child("body", c.Body)))
		}
		if n.Else != nil {
			out.Children = append(out.Children, b.group("Else", "", n.Else.Block, b.child("body", n.Else.Body)))
		}
	case *ast.For:
		out.Token = n.Var.Value
		out.Block = n.Block
		out.Children = []*astNode{b.child("start", n.Start), b.child("end", n.End)}
		if n.Step != nil {
			out.Children = append(out.Children, b.child("step", n.Step))
		}
		out.Children = append(out.Children, b.child("body", n.Body))
	case *ast.While:
		out.Block = n.Block
		out.Children = []*astNode{b.child("cond", n.Cond), b.child("body", n.Body)}
	case *ast.FuncDef:
		if n.Name != nil {
			out.Token = n.Name.Value
		}
		for _, p := range n.Params {
			out.Params = append(out.Params, p.Value)
		}
		out.Block = !n.SingleExpr
		out.Children = []*astNode{b.child("body", n.Body)}
	case *ast.Call:
		out.Children = []*astNode{b.child("callee", n.Callee)}
		for _, a := range n.Args {
			out.Children = append(out.Children, b.child("arg", a))
		}
	case *ast.Return:
		if n.Value != nil {
			out.Children = []*astNode{b.child("value", n.Value)}
		}
	case *ast.List:
		for _, e := range n.Elements {
			out.Children = append(out.Children, b.child("element", e))
		}
	case *ast.Object:
		for _, f := range n.Fields {
			field := b.group("Field", f.Name.Value, false, b.child("value", f.Value))
			field.Span = b.span(f.Name.Span.Join(f.Value.Span()))
			out.Children = append(out.Children, field)
		}
	}
	return out
}
