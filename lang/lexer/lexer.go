package lexer

import (
	"fmt"
	"strings"

	"github.com/dhamidi/ember/lang/token"
)

// Error is a lexical error at a single position.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type Lexer struct {
	input []byte
	pos   token.Position
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input: input,
		pos:   token.Start(file),
	}
}

func (l *Lexer) peek() byte {
	if l.pos.Offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos.Offset]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos.Offset+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos.Offset+n]
}

func (l *Lexer) advance() byte {
	if l.pos.Offset >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos.Offset]
	l.pos = l.pos.Advance(ch)
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// NextToken scans one token. At end of input it returns an EOF token whose
// span is empty; it keeps returning EOF when called again.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipBlanks()
	start := l.pos

	if l.pos.Offset >= len(l.input) {
		return token.Token{Kind: token.EOF, Span: token.Span{Start: start, End: start}}, nil
	}

	ch := l.peek()

	if ch == '\n' || ch == ';' {
		l.advance()
		return l.token(token.Newline, start), nil
	}

	if isLetter(ch) {
		return l.scanIdentOrKeyword(start), nil
	}

	if isDigit(ch) {
		return l.scanNumber(start), nil
	}

	if ch == '"' {
		return l.scanString(start)
	}

	return l.scanOperator(start)
}

func (l *Lexer) skipBlanks() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		case '#':
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanIdentOrKeyword(start token.Position) token.Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	literal := string(l.input[start.Offset:l.pos.Offset])
	return token.Token{
		Kind:  token.LookupKeyword(literal),
		Value: literal,
		Span:  token.Span{Start: start, End: l.pos},
	}
}

func (l *Lexer) scanNumber(start token.Position) token.Token {
	kind := token.Int
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		kind = token.Float
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	return token.Token{
		Kind:  kind,
		Value: string(l.input[start.Offset:l.pos.Offset]),
		Span:  token.Span{Start: start, End: l.pos},
	}
}

var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'\\': '\\',
	'"':  '"',
}

func (l *Lexer) scanString(start token.Position) (token.Token, error) {
	l.advance()
	var sb strings.Builder
	for {
		ch := l.peek()
		if ch == 0 && l.pos.Offset >= len(l.input) {
			return token.Token{}, &Error{Pos: start, Message: "unterminated string, expected '\"'"}
		}
		l.advance()
		if ch == '"' {
			break
		}
		if ch == '\\' {
			esc := l.advance()
			if repl, ok := escapes[esc]; ok {
				sb.WriteByte(repl)
			} else {
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(ch)
	}
	return token.Token{
		Kind:  token.String,
		Value: sb.String(),
		Span:  token.Span{Start: start, End: l.pos},
	}, nil
}

func (l *Lexer) scanOperator(start token.Position) (token.Token, error) {
	ch := l.peek()
	switch ch {
	case '(':
		l.advance()
		return l.token(token.LParen, start), nil
	case ')':
		l.advance()
		return l.token(token.RParen, start), nil
	case '{':
		l.advance()
		return l.token(token.LBrace, start), nil
	case '}':
		l.advance()
		return l.token(token.RBrace, start), nil
	case '[':
		l.advance()
		return l.token(token.LBracket, start), nil
	case ']':
		l.advance()
		return l.token(token.RBracket, start), nil
	case ',':
		l.advance()
		return l.token(token.Comma, start), nil
	case ':':
		l.advance()
		return l.token(token.Colon, start), nil
	case '.':
		l.advance()
		return l.token(token.Dot, start), nil
	case '+':
		l.advance()
		return l.token(token.Plus, start), nil
	case '-':
		l.advance()
		return l.token(token.Minus, start), nil
	case '/':
		l.advance()
		return l.token(token.Slash, start), nil
	case '^':
		l.advance()
		return l.token(token.Pow, start), nil
	case '*':
		if l.peekN(1) == '*' {
			l.advanceN(2)
			return l.token(token.Pow, start), nil
		}
		l.advance()
		return l.token(token.Star, start), nil
	case '=':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.EQ, start), nil
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.token(token.Arrow, start), nil
		}
		l.advance()
		return l.token(token.Assign, start), nil
	case '!':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.NE, start), nil
		}
		l.advance()
		return l.token(token.Not, start), nil
	case '<':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.LE, start), nil
		}
		l.advance()
		return l.token(token.LT, start), nil
	case '>':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(token.GE, start), nil
		}
		l.advance()
		return l.token(token.GT, start), nil
	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(token.And, start), nil
		}
		return token.Token{}, &Error{Pos: start.Advance(ch), Message: "expected '&' after '&'"}
	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(token.Or, start), nil
		}
		return token.Token{}, &Error{Pos: start.Advance(ch), Message: "expected '|' after '|'"}
	}

	return token.Token{}, &Error{Pos: start, Message: fmt.Sprintf("illegal character %q", ch)}
}

func (l *Lexer) token(kind token.Kind, start token.Position) token.Token {
	return token.Token{
		Kind: kind,
		Span: token.Span{Start: start, End: l.pos},
	}
}

// Tokenize scans the whole input. The result always ends with exactly one
// EOF token.
func Tokenize(input []byte, file string) ([]token.Token, error) {
	l := NewLexer(input, file)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
