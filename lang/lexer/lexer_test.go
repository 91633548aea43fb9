package lexer

import (
	"errors"
	"testing"

	"github.com/dhamidi/ember/lang/token"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Kind
	}{
		{"", []token.Kind{token.EOF}},
		{"let", []token.Kind{token.Keyword, token.EOF}},
		{"let x = 1", []token.Kind{token.Keyword, token.Ident, token.Assign, token.Int, token.EOF}},
		{"3.14", []token.Kind{token.Float, token.EOF}},
		{"3.", []token.Kind{token.Int, token.Dot, token.EOF}},
		{`"hello"`, []token.Kind{token.String, token.EOF}},
		{"# comment\nx", []token.Kind{token.Newline, token.Ident, token.EOF}},
		{"a; b", []token.Kind{token.Ident, token.Newline, token.Ident, token.EOF}},
		{"+ - * / ** ^", []token.Kind{token.Plus, token.Minus, token.Star, token.Slash, token.Pow, token.Pow, token.EOF}},
		{"== != < <= > >=", []token.Kind{token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE, token.EOF}},
		{"&& || !", []token.Kind{token.And, token.Or, token.Not, token.EOF}},
		{"= =>", []token.Kind{token.Assign, token.Arrow, token.EOF}},
		{"( ) { } [ ] , : .", []token.Kind{
			token.LParen, token.RParen, token.LBrace, token.RBrace,
			token.LBracket, token.RBracket, token.Comma, token.Colon, token.Dot, token.EOF,
		}},
		{"a.b", []token.Kind{token.Ident, token.Dot, token.Ident, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize([]byte(tt.input), "test.em")
			if err != nil {
				t.Fatalf("Tokenize: %v", err)
			}
			if len(tokens) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(tt.expected))
			}
			for i := range tokens {
				if tokens[i].Kind != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, tokens[i].Kind, tt.expected[i])
				}
			}
		})
	}
}

func TestLexerValues(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		value string
	}{
		{"while", token.Keyword, "while"},
		{"counter_1", token.Ident, "counter_1"},
		{"42", token.Int, "42"},
		{"0.5", token.Float, "0.5"},
		{`"a\nb"`, token.String, "a\nb"},
		{`"say \"hi\""`, token.String, `say "hi"`},
		{`"back\\slash"`, token.String, `back\slash`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize([]byte(tt.input), "test.em")
			if err != nil {
				t.Fatalf("Tokenize: %v", err)
			}
			tok := tokens[0]
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Value != tt.value {
				t.Errorf("Value = %q, want %q", tok.Value, tt.value)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	tokens, err := Tokenize([]byte("let x\n  y => 1"), "pos.em")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	tests := []struct {
		index     int
		line, col int
		endCol    int
		offset    int
		kind      token.Kind
	}{
		{0, 1, 1, 4, 0, token.Keyword},
		{1, 1, 5, 6, 4, token.Ident},
		{2, 1, 6, 1, 5, token.Newline},
		{3, 2, 3, 4, 8, token.Ident},
		{4, 2, 5, 7, 10, token.Arrow},
		{5, 2, 8, 9, 13, token.Int},
		{6, 2, 9, 9, 14, token.EOF},
	}

	for _, tt := range tests {
		tok := tokens[tt.index]
		if tok.Kind != tt.kind {
			t.Errorf("token %d: Kind = %v, want %v", tt.index, tok.Kind, tt.kind)
		}
		if tok.Span.Start.Line != tt.line || tok.Span.Start.Column != tt.col {
			t.Errorf("token %d: start = %v, want %d:%d", tt.index, tok.Span.Start, tt.line, tt.col)
		}
		if tok.Span.End.Column != tt.endCol {
			t.Errorf("token %d: end column = %d, want %d", tt.index, tok.Span.End.Column, tt.endCol)
		}
		if tok.Span.Start.Offset != tt.offset {
			t.Errorf("token %d: offset = %d, want %d", tt.index, tok.Span.Start.Offset, tt.offset)
		}
		if tok.Span.Start.File != "pos.em" {
			t.Errorf("token %d: file = %q", tt.index, tok.Span.Start.File)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input  string
		line   int
		column int
	}{
		{"a @ b", 1, 3},
		{"x & y", 1, 4},
		{"x | y", 1, 4},
		{"\"open", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize([]byte(tt.input), "")
			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("got %v, want *Error", err)
			}
			if lexErr.Pos.Line != tt.line || lexErr.Pos.Column != tt.column {
				t.Errorf("Pos = %v, want %d:%d", lexErr.Pos, tt.line, tt.column)
			}
		})
	}
}

func TestNextTokenRepeatsEOF(t *testing.T) {
	l := NewLexer([]byte("x"), "")
	for i := 0; i < 3; i++ {
		if _, err := l.NextToken(); err != nil {
			t.Fatalf("NextToken: %v", err)
		}
	}
	tok, err := l.NextToken()
	if err != nil || tok.Kind != token.EOF {
		t.Errorf("got %v, %v, want EOF", tok, err)
	}
}
