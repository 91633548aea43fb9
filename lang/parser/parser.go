package parser

import (
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ember/lang/ast"
	"github.com/dhamidi/ember/lang/lexer"
	"github.com/dhamidi/ember/lang/token"
)

// Mode selects the start symbol.
type Mode int

const (
	// ModeStatements parses a statement sequence.
	ModeStatements Mode = iota
	// ModeObject parses a single top-level object literal.
	ModeObject
)

func (m Mode) String() string {
	switch m {
	case ModeStatements:
		return "statements"
	case ModeObject:
		return "object"
	}
	return "unknown"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "statements":
		return ModeStatements, nil
	case "object":
		return ModeObject, nil
	}
	return ModeStatements, fmt.Errorf("unknown parse mode %q (expected statements or object)", s)
}

type Option func(*Parser)

// WithFile names the source for positions produced by ParseSource.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithMode(mode Mode) Option {
	return func(p *Parser) {
		p.mode = mode
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// WithChainedAccess lets a call suffix take any number of `.name`
// segments, so a.b.c parses without parentheses.
func WithChainedAccess() Option {
	return func(p *Parser) {
		p.chained = true
	}
}

type rule func() *Result[ast.Node]

// Parser owns one token sequence and its cursor for a single parse.
type Parser struct {
	file    string
	mode    Mode
	chained bool
	log     commonlog.Logger
	tokens  []token.Token
	cur     *Cursor
}

func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{tokens: tokens}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = commonlog.GetLogger("ember.parser")
	}
	return p
}

// ParseTokens parses tokens, which must end with an EOF token.
func ParseTokens(tokens []token.Token, opts ...Option) (ast.Node, error) {
	return New(tokens, opts...).Parse()
}

// ParseSource reads and lexes r, then parses the tokens.
func ParseSource(r io.Reader, opts ...Option) (ast.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	p := New(nil, opts...)
	tokens, err := lexer.Tokenize(data, p.file)
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	return p.Parse()
}

// Parse runs the start symbol selected by the mode. On success the whole
// token sequence up to EOF has been consumed.
func (p *Parser) Parse() (ast.Node, error) {
	if err := checkEOF(p.tokens); err != nil {
		return nil, err
	}
	p.cur = NewCursor(p.tokens)
	p.log.Debugf("parsing %d tokens as %s", len(p.tokens), p.mode)

	var res *Result[ast.Node]
	switch p.mode {
	case ModeObject:
		res = p.objectFile()
	default:
		res = p.statements()
	}

	if res.Err == nil && !p.cur.check(token.EOF) {
		res.Failure(newError(p.cur.Current(), msgTrailing))
	}
	if res.Err != nil {
		p.log.Debugf("parse failed after %d tokens: %s", res.AdvanceCount, res.Err)
		return nil, res.Err
	}
	p.log.Debugf("parsed %s spanning %s", res.Value.Kind(), res.Value.Span())
	return res.Value, nil
}

func checkEOF(tokens []token.Token) error {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		return ErrMissingEOF
	}
	for _, tok := range tokens[:len(tokens)-1] {
		if tok.Kind == token.EOF {
			return ErrMissingEOF
		}
	}
	return nil
}

// objectFile parses a file holding one object literal. Blank lines around
// it are skipped and a file with no object yields an empty one.
func (p *Parser) objectFile() *Result[ast.Node] {
	res := newResult[ast.Node]()
	p.skipNewlines(&res.Outcome)

	sub := p.objectExpr()
	obj, ok := TryRegister(&res.Outcome, sub)
	if !ok {
		p.rewind(&res.Outcome)
		if !p.cur.check(token.EOF) {
			return res.Failure(sub.Err)
		}
		at := p.cur.Current().Span.Start
		return res.Success(ast.NewObject(nil, token.Span{Start: at, End: at}))
	}

	p.skipNewlines(&res.Outcome)
	return res.Success(obj)
}

func (p *Parser) advance(o *Outcome) {
	o.RegisterAdvance()
	p.cur.Advance()
}

func (p *Parser) skipNewlines(o *Outcome) int {
	n := 0
	for p.cur.check(token.Newline) {
		p.advance(o)
		n++
	}
	return n
}

// rewind undoes a failed speculative step recorded by TryRegister.
func (p *Parser) rewind(o *Outcome) {
	if o.ReverseCount > 0 {
		p.log.Debugf("rewinding %d tokens from index %d", o.ReverseCount, p.cur.Index())
	}
	p.cur.Retreat(o.ReverseCount)
	o.ReverseCount = 0
}

func (p *Parser) fail(msg string) *Error {
	return newError(p.cur.Current(), msg)
}

// spanFrom ends at the last consumed token.
func (p *Parser) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: p.cur.Previous().Span.End}
}
