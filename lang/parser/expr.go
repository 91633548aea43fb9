package parser

import (
	"github.com/dhamidi/ember/lang/ast"
	"github.com/dhamidi/ember/lang/token"
)

// op matches a token by kind, and by value when value is set. Word
// operators such as `and` are keywords and need both.
type op struct {
	kind  token.Kind
	value string
}

type opSet []op

func (s opSet) matches(tok token.Token) bool {
	for _, o := range s {
		if tok.Matches(o.kind, o.value) {
			return true
		}
	}
	return false
}

var (
	logicalOps = opSet{
		{kind: token.And}, {kind: token.Or},
		{kind: token.Keyword, value: "and"}, {kind: token.Keyword, value: "or"},
	}
	comparisonOps = opSet{
		{kind: token.EQ}, {kind: token.NE},
		{kind: token.LT}, {kind: token.GT},
		{kind: token.LE}, {kind: token.GE},
	}
	additiveOps       = opSet{{kind: token.Plus}, {kind: token.Minus}}
	multiplicativeOps = opSet{{kind: token.Star}, {kind: token.Slash}}
	powerOps          = opSet{{kind: token.Pow}}
)

// binOp folds `left (op right)*` into a left-associative BinOp chain. A nil
// right reuses left.
func (p *Parser) binOp(left rule, ops opSet, right rule) *Result[ast.Node] {
	if right == nil {
		right = left
	}
	res := newResult[ast.Node]()
	node := Register(&res.Outcome, left())
	if res.Err != nil {
		return res
	}

	for ops.matches(p.cur.Current()) {
		opTok := p.cur.Current()
		p.advance(&res.Outcome)
		rhs := Register(&res.Outcome, right())
		if res.Err != nil {
			return res
		}
		node = ast.NewBinOp(node, opTok, rhs)
	}
	return res.Success(node)
}

// expr: 'let' IDENT ('.' IDENT)? '=' expr | logical
func (p *Parser) expr() *Result[ast.Node] {
	res := newResult[ast.Node]()
	start := p.cur.Current()

	if start.Is("let") {
		p.advance(&res.Outcome)
		if !p.cur.check(token.Ident) {
			return res.Failure(p.fail(msgIdent))
		}
		name := p.cur.Current()
		p.advance(&res.Outcome)

		var field *token.Token
		if p.cur.check(token.Dot) {
			p.advance(&res.Outcome)
			if !p.cur.check(token.Ident) {
				return res.Failure(p.fail(msgIdent))
			}
			f := p.cur.Current()
			field = &f
			p.advance(&res.Outcome)
		}

		if !p.cur.check(token.Assign) {
			return res.Failure(p.fail(msgAssign))
		}
		p.advance(&res.Outcome)

		value := Register(&res.Outcome, p.expr())
		if res.Err != nil {
			return res
		}
		span := p.spanFrom(start.Span.Start)
		if field != nil {
			return res.Success(ast.NewFieldAssign(name, *field, value, span))
		}
		return res.Success(ast.NewVarAssign(name, value, span))
	}

	node := Register(&res.Outcome, p.binOp(p.comparison, logicalOps, nil))
	if res.Err != nil {
		return res.Failure(p.fail(msgExpr))
	}
	return res.Success(node)
}

// comparison: ('not' | '!') comparison | additive (cmp additive)*
func (p *Parser) comparison() *Result[ast.Node] {
	res := newResult[ast.Node]()

	if tok := p.cur.Current(); tok.Kind == token.Not || tok.Is("not") {
		p.advance(&res.Outcome)
		operand := Register(&res.Outcome, p.comparison())
		if res.Err != nil {
			return res
		}
		return res.Success(ast.NewUnaryOp(tok, operand))
	}

	node := Register(&res.Outcome, p.binOp(p.additive, comparisonOps, nil))
	if res.Err != nil {
		return res.Failure(p.fail(msgComparison))
	}
	return res.Success(node)
}

func (p *Parser) additive() *Result[ast.Node] {
	return p.binOp(p.term, additiveOps, nil)
}

func (p *Parser) term() *Result[ast.Node] {
	return p.binOp(p.factor, multiplicativeOps, nil)
}

// factor: ('+' | '-') factor | power
func (p *Parser) factor() *Result[ast.Node] {
	res := newResult[ast.Node]()

	if tok := p.cur.Current(); tok.Kind == token.Plus || tok.Kind == token.Minus {
		p.advance(&res.Outcome)
		operand := Register(&res.Outcome, p.factor())
		if res.Err != nil {
			return res
		}
		return res.Success(ast.NewUnaryOp(tok, operand))
	}
	return p.power()
}

// power: call ('**' factor)*
//
// The right operand goes back through factor, which makes power right
// associative and lets it bind tighter than a leading sign.
func (p *Parser) power() *Result[ast.Node] {
	return p.binOp(p.call, powerOps, p.factor)
}

// call: atom ('.' IDENT)? ('(' (expr (',' expr)*)? ')')?
func (p *Parser) call() *Result[ast.Node] {
	res := newResult[ast.Node]()
	start := p.cur.Current().Span.Start

	node := Register(&res.Outcome, p.atom())
	if res.Err != nil {
		return res
	}

	for p.cur.check(token.Dot) {
		p.advance(&res.Outcome)
		if !p.cur.check(token.Ident) {
			return res.Failure(p.fail(msgIdent))
		}
		field := p.cur.Current()
		p.advance(&res.Outcome)
		node = ast.NewFieldAccess(node, field)
		if !p.chained {
			break
		}
	}

	if !p.cur.check(token.LParen) {
		return res.Success(node)
	}
	args := Register(&res.Outcome, p.delimited(token.LParen, token.RParen, msgLParen, msgCallArg, msgCommaRParen))
	if res.Err != nil {
		return res
	}
	return res.Success(ast.NewCall(node, args, p.spanFrom(start)))
}

// delimited parses `open (expr (',' expr)*)? close`, the shared shape of
// call arguments and list literals.
func (p *Parser) delimited(open, closing token.Kind, openMsg, firstMsg, sepMsg string) *Result[[]ast.Node] {
	res := newResult[[]ast.Node]()
	if !p.cur.check(open) {
		return res.Failure(p.fail(openMsg))
	}
	p.advance(&res.Outcome)

	var items []ast.Node
	if p.cur.check(closing) {
		p.advance(&res.Outcome)
		return res.Success(items)
	}

	item := Register(&res.Outcome, p.expr())
	if res.Err != nil {
		return res.Failure(p.fail(firstMsg))
	}
	items = append(items, item)

	for p.cur.check(token.Comma) {
		p.advance(&res.Outcome)
		item := Register(&res.Outcome, p.expr())
		if res.Err != nil {
			return res
		}
		items = append(items, item)
	}

	if !p.cur.check(closing) {
		return res.Failure(p.fail(sepMsg))
	}
	p.advance(&res.Outcome)
	return res.Success(items)
}
