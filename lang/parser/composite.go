package parser

import (
	"github.com/dhamidi/ember/lang/ast"
	"github.com/dhamidi/ember/lang/token"
)

// atom: INT | FLOAT | STRING | IDENT | '(' expr ')' | list | object
//
//	| if | for | while | fun
func (p *Parser) atom() *Result[ast.Node] {
	res := newResult[ast.Node]()
	tok := p.cur.Current()

	switch {
	case tok.Kind == token.Int || tok.Kind == token.Float:
		p.advance(&res.Outcome)
		return res.Success(ast.NewNumber(tok))
	case tok.Kind == token.String:
		p.advance(&res.Outcome)
		return res.Success(ast.NewString(tok))
	case tok.Kind == token.Ident:
		p.advance(&res.Outcome)
		return res.Success(ast.NewVarAccess(tok))
	case tok.Kind == token.LParen:
		p.advance(&res.Outcome)
		inner := Register(&res.Outcome, p.expr())
		if res.Err != nil {
			return res
		}
		if !p.cur.check(token.RParen) {
			return res.Failure(p.fail(msgRParen))
		}
		p.advance(&res.Outcome)
		return res.Success(inner)
	}

	var sub *Result[ast.Node]
	switch {
	case tok.Kind == token.LBracket:
		sub = p.listExpr()
	case tok.Kind == token.LBrace:
		sub = p.objectExpr()
	case tok.Is("if"):
		sub = p.ifExpr()
	case tok.Is("for"):
		sub = p.forExpr()
	case tok.Is("while"):
		sub = p.whileExpr()
	case tok.Is("fun"):
		sub = p.funcDef()
	default:
		return res.Failure(p.fail(msgAtom))
	}

	node := Register(&res.Outcome, sub)
	if res.Err != nil {
		return res
	}
	return res.Success(node)
}

// listExpr: '[' (expr (',' expr)*)? ']'
func (p *Parser) listExpr() *Result[ast.Node] {
	res := newResult[ast.Node]()
	start := p.cur.Current().Span.Start

	elements := Register(&res.Outcome, p.delimited(token.LBracket, token.RBracket, msgLBracket, msgListElement, msgCommaRBrack))
	if res.Err != nil {
		return res
	}
	return res.Success(ast.NewList(elements, p.spanFrom(start)))
}

// objectExpr: '{' NEWLINE* (field (NEWLINE+ field)* NEWLINE*)? '}'
//
// A field name that repeats keeps its first position and takes the last
// value.
func (p *Parser) objectExpr() *Result[ast.Node] {
	res := newResult[ast.Node]()
	start := p.cur.Current().Span.Start

	if !p.cur.check(token.LBrace) {
		return res.Failure(p.fail(msgLBrace))
	}
	p.advance(&res.Outcome)
	p.skipNewlines(&res.Outcome)

	var fields []ast.ObjectField
	index := map[string]int{}
	add := func(f ast.ObjectField) {
		if i, ok := index[f.Name.Value]; ok {
			fields[i] = f
			return
		}
		index[f.Name.Value] = len(fields)
		fields = append(fields, f)
	}

	if !p.cur.check(token.RBrace) {
		f := Register(&res.Outcome, p.objectField())
		if res.Err != nil {
			return res
		}
		add(f)

		for p.skipNewlines(&res.Outcome) > 0 {
			if p.cur.check(token.RBrace) {
				break
			}
			f := Register(&res.Outcome, p.objectField())
			if res.Err != nil {
				return res
			}
			add(f)
		}

		if !p.cur.check(token.RBrace) {
			return res.Failure(p.fail(msgRBrace))
		}
	}
	p.advance(&res.Outcome)
	return res.Success(ast.NewObject(fields, p.spanFrom(start)))
}

// objectField: IDENT '=' expr
func (p *Parser) objectField() *Result[ast.ObjectField] {
	res := newResult[ast.ObjectField]()

	if !p.cur.check(token.Ident) {
		return res.Failure(p.fail(msgIdent))
	}
	name := p.cur.Current()
	p.advance(&res.Outcome)

	if !p.cur.check(token.Assign) {
		return res.Failure(p.fail(msgAssign))
	}
	p.advance(&res.Outcome)

	value := Register(&res.Outcome, p.expr())
	if res.Err != nil {
		return res
	}
	return res.Success(ast.ObjectField{Name: name, Value: value})
}
