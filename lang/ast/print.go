package ast

import (
	"strconv"
	"strings"

	"github.com/dhamidi/ember/lang/token"
)

// Sprint renders n as a compact S-expression:
//
//	1 + 2 * 3          (+ 1 (* 2 3))
//	if x => 1          (if (x => 1))
//	fun f(a) { a }     (fun f (a) {a})
//
// Statement sequences print as {s1; s2}, lists as [a b] and objects as
// (object a=1 b=2).
func Sprint(n Node) string {
	var sb strings.Builder
	sprint(&sb, n)
	return sb.String()
}

func sprint(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Statements:
		sb.WriteByte('{')
		for i, s := range n.Body {
			if i > 0 {
				sb.WriteString("; ")
			}
			sprint(sb, s)
		}
		sb.WriteByte('}')
	case *Number:
		sb.WriteString(n.Token.Value)
	case *String:
		sb.WriteString(strconv.Quote(n.Token.Value))
	case *VarAccess:
		sb.WriteString(n.Name.Value)
	case *VarAssign:
		sb.WriteString("(let " + n.Name.Value + " ")
		sprint(sb, n.Value)
		sb.WriteByte(')')
	case *FieldAssign:
		sb.WriteString("(let " + n.Object.Value + "." + n.Field.Value + " ")
		sprint(sb, n.Value)
		sb.WriteByte(')')
	case *FieldAccess:
		sb.WriteString("(. ")
		sprint(sb, n.Object)
		sb.WriteString(" " + n.Field.Value + ")")
	case *BinOp:
		sb.WriteString("(" + OpString(n.Op) + " ")
		sprint(sb, n.Left)
		sb.WriteByte(' ')
		sprint(sb, n.Right)
		sb.WriteByte(')')
	case *UnaryOp:
		sb.WriteString("(" + OpString(n.Op) + " ")
		sprint(sb, n.Operand)
		sb.WriteByte(')')
	case *If:
		sb.WriteString("(if")
		for _, c := range n.Cases {
			sb.WriteString(" (")
			sprint(sb, c.Cond)
			sprintBody(sb, c.Body, c.Block)
			sb.WriteByte(')')
		}
		if n.Else != nil {
			sb.WriteString(" (else")
			sprintBody(sb, n.Else.Body, n.Else.Block)
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case *For:
		sb.WriteString("(for " + n.Var.Value + " ")
		sprint(sb, n.Start)
		sb.WriteByte(' ')
		sprint(sb, n.End)
		if n.Step != nil {
			sb.WriteString(" step ")
			sprint(sb, n.Step)
		}
		sprintBody(sb, n.Body, n.Block)
		sb.WriteByte(')')
	case *While:
		sb.WriteString("(while ")
		sprint(sb, n.Cond)
		sprintBody(sb, n.Body, n.Block)
		sb.WriteByte(')')
	case *FuncDef:
		sb.WriteString("(fun ")
		if n.Name != nil {
			sb.WriteString(n.Name.Value + " ")
		}
		sb.WriteByte('(')
		for i, p := range n.Params {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.Value)
		}
		sb.WriteByte(')')
		sprintBody(sb, n.Body, !n.SingleExpr)
		sb.WriteByte(')')
	case *Call:
		sb.WriteString("(call ")
		sprint(sb, n.Callee)
		for _, a := range n.Args {
			sb.WriteByte(' ')
			sprint(sb, a)
		}
		sb.WriteByte(')')
	case *Return:
		sb.WriteString("(return")
		if n.Value != nil {
			sb.WriteByte(' ')
			sprint(sb, n.Value)
		}
		sb.WriteByte(')')
	case *Break:
		sb.WriteString("(stop)")
	case *Continue:
		sb.WriteString("(skip)")
	case *List:
		sb.WriteByte('[')
		for i, e := range n.Elements {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sprint(sb, e)
		}
		sb.WriteByte(']')
	case *Object:
		sb.WriteString("(object")
		for _, f := range n.Fields {
			sb.WriteString(" " + f.Name.Value + "=")
			sprint(sb, f.Value)
		}
		sb.WriteByte(')')
	}
}

func sprintBody(sb *strings.Builder, body Node, block bool) {
	if block {
		sb.WriteByte(' ')
	} else {
		sb.WriteString(" => ")
	}
	sprint(sb, body)
}

// OpString returns the source spelling of an operator token.
func OpString(op token.Token) string {
	if op.Kind == token.Keyword {
		return op.Value
	}
	return op.Kind.String()
}
