package format

import (
	"bytes"
	"io"
	"strings"

	"github.com/dhamidi/ember/lang/ast"
	"github.com/dhamidi/ember/lang/token"
)

// Binding strength of each expression level, loosest first. A child
// printed below the minimum its slot requires gets parentheses.
const (
	precLet = iota
	precLogical
	precNot
	precComparison
	precAdditive
	precMultiplicative
	precSign
	precPower
	precCall
	precAtom
)

// SourcePrinter writes a tree back as ember source in canonical layout:
// one statement per line, two-space indentation, parentheses only where
// the grammar needs them.
type SourcePrinter struct {
	w         io.Writer
	buf       bytes.Buffer
	indent    int
	indentStr string
}

func NewSourcePrinter(w io.Writer) *SourcePrinter {
	return &SourcePrinter{w: w, indentStr: "  "}
}

// Source returns the canonical source text of node.
func Source(node ast.Node) string {
	var sb strings.Builder
	NewSourcePrinter(&sb).Encode(node)
	return sb.String()
}

func (p *SourcePrinter) Encode(node ast.Node) error {
	p.buf.Reset()
	p.indent = 0

	if stmts, ok := node.(*ast.Statements); ok {
		for _, s := range stmts.Body {
			p.printStatement(s)
			p.write("\n")
		}
	} else {
		p.printStatement(node)
		p.write("\n")
	}

	_, err := p.w.Write(p.buf.Bytes())
	return err
}

func (p *SourcePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *SourcePrinter) writeIndent() {
	p.write(strings.Repeat(p.indentStr, p.indent))
}

func (p *SourcePrinter) printStatement(n ast.Node) {
	switch n := n.(type) {
	case *ast.Return:
		p.write("return")
		if n.Value != nil {
			p.write(" ")
			p.printExpr(n.Value, precLet)
		}
	case *ast.Break:
		p.write("stop")
	case *ast.Continue:
		p.write("skip")
	default:
		p.printExpr(n, precLet)
	}
}

func (p *SourcePrinter) printExpr(n ast.Node, min int) {
	if nodePrec(n) < min || (min > precLet && isConstruct(n)) {
		p.write("(")
		p.printExpr(n, precLet)
		p.write(")")
		return
	}

	switch n := n.(type) {
	case *ast.Number:
		p.write(n.Token.Value)
	case *ast.String:
		p.write(quote(n.Value()))
	case *ast.VarAccess:
		p.write(n.Name.Value)
	case *ast.VarAssign:
		p.write("let " + n.Name.Value + " = ")
		p.printExpr(n.Value, precLet)
	case *ast.FieldAssign:
		p.write("let " + n.Object.Value + "." + n.Field.Value + " = ")
		p.printExpr(n.Value, precLet)
	case *ast.FieldAccess:
		p.printExpr(n.Object, precAtom)
		p.write("." + n.Field.Value)
	case *ast.Call:
		if _, ok := n.Callee.(*ast.FieldAccess); ok {
			p.printExpr(n.Callee, precCall)
		} else {
			p.printExpr(n.Callee, precAtom)
		}
		p.write("(")
		p.printList(n.Args)
		p.write(")")
	case *ast.BinOp:
		p.printBinOp(n)
	case *ast.UnaryOp:
		switch {
		case n.Op.Kind == token.Plus || n.Op.Kind == token.Minus:
			p.write(n.Op.Kind.String())
			p.printExpr(n.Operand, precSign)
		case n.Op.Kind == token.Keyword:
			p.write(n.Op.Value + " ")
			p.printExpr(n.Operand, precNot)
		default:
			p.write(n.Op.Kind.String())
			p.printExpr(n.Operand, precNot)
		}
	case *ast.List:
		p.write("[")
		p.printList(n.Elements)
		p.write("]")
	case *ast.Object:
		p.printObject(n)
	case *ast.If:
		for i, c := range n.Cases {
			if i == 0 {
				p.write("if ")
			} else {
				p.write(" elif ")
			}
			p.printExpr(c.Cond, precLet)
			followed := i < len(n.Cases)-1 || n.Else != nil
			p.printBody(c.Body, c.Block, followed)
		}
		if n.Else != nil {
			p.write(" else")
			p.printBody(n.Else.Body, n.Else.Block, false)
		}
	case *ast.For:
		p.write("for " + n.Var.Value + " = ")
		p.printExpr(n.Start, precLet)
		p.write(" to ")
		p.printExpr(n.End, precLet)
		if n.Step != nil {
			p.write(" step ")
			p.printExpr(n.Step, precLet)
		}
		p.printBody(n.Body, n.Block, false)
	case *ast.While:
		p.write("while ")
		p.printExpr(n.Cond, precLet)
		p.printBody(n.Body, n.Block, false)
	case *ast.FuncDef:
		p.write("fun ")
		if n.Name != nil {
			p.write(n.Name.Value)
		}
		p.write("(")
		for i, param := range n.Params {
			if i > 0 {
				p.write(", ")
			}
			p.write(param.Value)
		}
		p.write(")")
		if n.SingleExpr {
			p.write(" => ")
			p.printExpr(n.Body, precLet)
		} else {
			p.printBody(n.Body, true, false)
		}
	case *ast.Statements:
		p.printBody(n, true, false)
	default:
		p.printStatement(n)
	}
}

func (p *SourcePrinter) printBinOp(n *ast.BinOp) {
	prec := binaryPrec(n.Op)
	left, right := prec, prec+1
	if prec == precPower {
		left, right = precCall, precSign
	}

	p.printExpr(n.Left, left)
	p.write(" " + ast.OpString(n.Op) + " ")
	p.printExpr(n.Right, right)
}

func (p *SourcePrinter) printList(items []ast.Node) {
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(item, precLet)
	}
}

func (p *SourcePrinter) printObject(n *ast.Object) {
	if len(n.Fields) == 0 {
		p.write("{}")
		return
	}
	p.write("{\n")
	p.indent++
	for _, f := range n.Fields {
		p.writeIndent()
		p.write(f.Name.Value + " = ")
		p.printExpr(f.Value, precLet)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

// printBody writes an arrow or brace body. An arrow body that is followed
// by more if cases is parenthesized when it would otherwise take them.
func (p *SourcePrinter) printBody(body ast.Node, block, followed bool) {
	if !block {
		p.write(" => ")
		if !followed || !endsOpen(body) {
			p.printStatement(body)
			return
		}
		if ret, ok := body.(*ast.Return); ok {
			p.write("return (")
			p.printExpr(ret.Value, precLet)
			p.write(")")
			return
		}
		p.write("(")
		p.printExpr(body, precLet)
		p.write(")")
		return
	}

	p.write(" {\n")
	p.indent++
	stmts := []ast.Node{body}
	if s, ok := body.(*ast.Statements); ok {
		stmts = s.Body
	}
	for _, s := range stmts {
		p.writeIndent()
		p.printStatement(s)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func binaryPrec(op token.Token) int {
	switch op.Kind {
	case token.And, token.Or, token.Keyword:
		return precLogical
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return precComparison
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash:
		return precMultiplicative
	case token.Pow:
		return precPower
	}
	return precAtom
}

func nodePrec(n ast.Node) int {
	switch n := n.(type) {
	case *ast.VarAssign, *ast.FieldAssign:
		return precLet
	case *ast.BinOp:
		return binaryPrec(n.Op)
	case *ast.UnaryOp:
		if n.Op.Kind == token.Plus || n.Op.Kind == token.Minus {
			return precSign
		}
		return precNot
	case *ast.Call, *ast.FieldAccess:
		return precCall
	}
	return precAtom
}

func isConstruct(n ast.Node) bool {
	switch n.(type) {
	case *ast.If, *ast.For, *ast.While, *ast.FuncDef:
		return true
	}
	return false
}

// endsOpen reports whether n ends in an arrow body or an if without else,
// either of which would absorb an `elif` or `else` printed after it.
func endsOpen(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.If:
		if n.Else == nil {
			return true
		}
		return !n.Else.Block && endsOpen(n.Else.Body)
	case *ast.For:
		return !n.Block && endsOpen(n.Body)
	case *ast.While:
		return !n.Block && endsOpen(n.Body)
	case *ast.FuncDef:
		return n.SingleExpr && endsOpen(n.Body)
	case *ast.VarAssign:
		return endsOpen(n.Value)
	case *ast.FieldAssign:
		return endsOpen(n.Value)
	case *ast.Return:
		return n.Value != nil && endsOpen(n.Value)
	}
	return false
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
