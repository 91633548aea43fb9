package parser

import (
	"github.com/dhamidi/ember/lang/ast"
	"github.com/dhamidi/ember/lang/token"
)

// statements: NEWLINE* statement (NEWLINE+ statement)*
//
// A statement after a run of newlines is optional. When it fails the
// cursor goes back to where that statement began, so a block may end with
// blank lines before its closing brace.
func (p *Parser) statements() *Result[ast.Node] {
	res := newResult[ast.Node]()
	p.skipNewlines(&res.Outcome)

	first := Register(&res.Outcome, p.statement())
	if res.Err != nil {
		return res
	}
	body := []ast.Node{first}

	for p.skipNewlines(&res.Outcome) > 0 {
		stmt, ok := TryRegister(&res.Outcome, p.statement())
		if !ok {
			p.rewind(&res.Outcome)
			break
		}
		body = append(body, stmt)
	}

	span := token.Span{Start: first.Span().Start, End: body[len(body)-1].Span().End}
	return res.Success(ast.NewStatements(body, span))
}

// statement: 'return' expr? | 'skip' | 'stop' | 'pass' | expr
func (p *Parser) statement() *Result[ast.Node] {
	res := newResult[ast.Node]()
	tok := p.cur.Current()

	switch {
	case tok.Is("return"):
		p.advance(&res.Outcome)
		value, ok := TryRegister(&res.Outcome, p.expr())
		if !ok {
			p.rewind(&res.Outcome)
		}
		return res.Success(ast.NewReturn(value, p.spanFrom(tok.Span.Start)))
	case tok.Is("skip"):
		p.advance(&res.Outcome)
		return res.Success(ast.NewContinue(tok.Span))
	case tok.Is("stop"):
		p.advance(&res.Outcome)
		return res.Success(ast.NewBreak(tok.Span))
	case tok.Is("pass"):
		p.advance(&res.Outcome)
		return res.Success(ast.NewReturn(nil, tok.Span))
	}

	node := Register(&res.Outcome, p.expr())
	if res.Err != nil {
		return res.Failure(p.fail(msgStatement))
	}
	return res.Success(node)
}

// body is what follows a control construct's header.
type body struct {
	node  ast.Node
	block bool
}

// block parses `'=>' single` or `'{' statements '}'`.
func (p *Parser) block(single rule) *Result[body] {
	res := newResult[body]()

	if p.cur.check(token.Arrow) {
		p.advance(&res.Outcome)
		node := Register(&res.Outcome, single())
		if res.Err != nil {
			return res
		}
		return res.Success(body{node: node})
	}

	if !p.cur.check(token.LBrace) {
		return res.Failure(p.fail(msgBody))
	}
	p.advance(&res.Outcome)

	node := Register(&res.Outcome, p.statements())
	if res.Err != nil {
		return res
	}
	if !p.cur.check(token.RBrace) {
		return res.Failure(p.fail(msgRBrace))
	}
	p.advance(&res.Outcome)
	return res.Success(body{node: node, block: true})
}

type ifChain struct {
	cases    []ast.IfCase
	elseCase *ast.ElseCase
}

// ifExpr: 'if' expr body ('elif' expr body)* ('else' body)?
func (p *Parser) ifExpr() *Result[ast.Node] {
	res := newResult[ast.Node]()
	start := p.cur.Current().Span.Start

	chain := Register(&res.Outcome, p.ifCases("if"))
	if res.Err != nil {
		return res
	}
	return res.Success(ast.NewIf(chain.cases, chain.elseCase, p.spanFrom(start)))
}

// ifCases parses one `keyword cond body` case and whatever follows it on
// the same line.
func (p *Parser) ifCases(keyword string) *Result[ifChain] {
	res := newResult[ifChain]()
	if !p.cur.Current().Is(keyword) {
		return res.Failure(p.fail(msgKeyword(keyword)))
	}
	p.advance(&res.Outcome)

	cond := Register(&res.Outcome, p.expr())
	if res.Err != nil {
		return res
	}
	b := Register(&res.Outcome, p.block(p.statement))
	if res.Err != nil {
		return res
	}

	rest := Register(&res.Outcome, p.elifOrElse())
	if res.Err != nil {
		return res
	}
	chain := ifChain{
		cases:    append([]ast.IfCase{{Cond: cond, Body: b.node, Block: b.block}}, rest.cases...),
		elseCase: rest.elseCase,
	}
	return res.Success(chain)
}

func (p *Parser) elifOrElse() *Result[ifChain] {
	res := newResult[ifChain]()
	if p.cur.Current().Is("elif") {
		chain := Register(&res.Outcome, p.ifCases("elif"))
		if res.Err != nil {
			return res
		}
		return res.Success(chain)
	}

	elseCase := Register(&res.Outcome, p.elseCase())
	if res.Err != nil {
		return res
	}
	return res.Success(ifChain{elseCase: elseCase})
}

// elseCase yields nil when there is no `else`.
func (p *Parser) elseCase() *Result[*ast.ElseCase] {
	res := newResult[*ast.ElseCase]()
	if !p.cur.Current().Is("else") {
		return res.Success(nil)
	}
	p.advance(&res.Outcome)

	b := Register(&res.Outcome, p.block(p.statement))
	if res.Err != nil {
		return res
	}
	return res.Success(&ast.ElseCase{Body: b.node, Block: b.block})
}

// forExpr: 'for' IDENT '=' expr ('to' | ':') expr ('step' expr)? body
func (p *Parser) forExpr() *Result[ast.Node] {
	res := newResult[ast.Node]()
	start := p.cur.Current().Span.Start

	if !p.cur.Current().Is("for") {
		return res.Failure(p.fail(msgKeyword("for")))
	}
	p.advance(&res.Outcome)

	if !p.cur.check(token.Ident) {
		return res.Failure(p.fail(msgIdent))
	}
	v := p.cur.Current()
	p.advance(&res.Outcome)

	if !p.cur.check(token.Assign) {
		return res.Failure(p.fail(msgAssign))
	}
	p.advance(&res.Outcome)

	from := Register(&res.Outcome, p.expr())
	if res.Err != nil {
		return res
	}

	if !p.cur.Current().Is("to") && !p.cur.check(token.Colon) {
		return res.Failure(p.fail(msgTo))
	}
	p.advance(&res.Outcome)

	to := Register(&res.Outcome, p.expr())
	if res.Err != nil {
		return res
	}

	var step ast.Node
	if p.cur.Current().Is("step") {
		p.advance(&res.Outcome)
		step = Register(&res.Outcome, p.expr())
		if res.Err != nil {
			return res
		}
	}

	b := Register(&res.Outcome, p.block(p.statement))
	if res.Err != nil {
		return res
	}
	return res.Success(ast.NewFor(v, from, to, step, b.node, b.block, p.spanFrom(start)))
}

// whileExpr: 'while' expr body
func (p *Parser) whileExpr() *Result[ast.Node] {
	res := newResult[ast.Node]()
	start := p.cur.Current().Span.Start

	if !p.cur.Current().Is("while") {
		return res.Failure(p.fail(msgKeyword("while")))
	}
	p.advance(&res.Outcome)

	cond := Register(&res.Outcome, p.expr())
	if res.Err != nil {
		return res
	}
	b := Register(&res.Outcome, p.block(p.statement))
	if res.Err != nil {
		return res
	}
	return res.Success(ast.NewWhile(cond, b.node, b.block, p.spanFrom(start)))
}

// funcDef: 'fun' IDENT? '(' (IDENT (',' IDENT)*)? ')' ('=>' expr | '{' statements '}')
func (p *Parser) funcDef() *Result[ast.Node] {
	res := newResult[ast.Node]()
	start := p.cur.Current().Span.Start

	if !p.cur.Current().Is("fun") {
		return res.Failure(p.fail(msgKeyword("fun")))
	}
	p.advance(&res.Outcome)

	var name *token.Token
	if p.cur.check(token.Ident) {
		n := p.cur.Current()
		name = &n
		p.advance(&res.Outcome)
		if !p.cur.check(token.LParen) {
			return res.Failure(p.fail(msgLParen))
		}
	} else if !p.cur.check(token.LParen) {
		return res.Failure(p.fail(msgFunName))
	}
	p.advance(&res.Outcome)

	var params []token.Token
	if p.cur.check(token.Ident) {
		params = append(params, p.cur.Current())
		p.advance(&res.Outcome)
		for p.cur.check(token.Comma) {
			p.advance(&res.Outcome)
			if !p.cur.check(token.Ident) {
				return res.Failure(p.fail(msgIdent))
			}
			params = append(params, p.cur.Current())
			p.advance(&res.Outcome)
		}
		if !p.cur.check(token.RParen) {
			return res.Failure(p.fail(msgCommaRParen))
		}
	} else if !p.cur.check(token.RParen) {
		return res.Failure(p.fail(msgParam))
	}
	p.advance(&res.Outcome)

	b := Register(&res.Outcome, p.block(p.expr))
	if res.Err != nil {
		return res
	}
	return res.Success(ast.NewFuncDef(name, params, b.node, !b.block, p.spanFrom(start)))
}
