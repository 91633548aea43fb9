package parser

import (
	"testing"

	"github.com/dhamidi/ember/lang/lexer"
	"github.com/dhamidi/ember/lang/token"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	tokens, err := lexer.Tokenize([]byte(src), "test.em")
	if err != nil {
		t.Fatalf("tokenize %q: %v", src, err)
	}
	return tokens
}

func TestCursor(t *testing.T) {
	c := NewCursor(lex(t, "a + b"))

	if c.Index() != 0 || c.Current().Kind != token.Ident {
		t.Fatalf("got %v at %d, want Identifier at 0", c.Current(), c.Index())
	}
	if got := c.Advance().Kind; got != token.Plus {
		t.Errorf("got %v, want +", got)
	}
	c.Advance()
	if got := c.Advance().Kind; got != token.EOF {
		t.Errorf("got %v, want EOF", got)
	}
	if got := c.Previous().Value; got != "b" {
		t.Errorf("Previous() = %q, want b", got)
	}

	if got := c.Retreat(3).Value; got != "a" {
		t.Errorf("Retreat(3) = %q, want a", got)
	}
	if c.Index() != 0 {
		t.Errorf("got index %d, want 0", c.Index())
	}
}

func TestCursorOutOfRange(t *testing.T) {
	c := NewCursor(lex(t, "a"))
	c.Advance()
	c.Advance()
	c.Advance()
	if got := c.Current().Kind; got != token.EOF {
		t.Errorf("past the end: got %v, want EOF", got)
	}

	c.Retreat(c.Index() + 5)
	if got := c.Current().Kind; got != token.EOF {
		t.Errorf("before the start: got %v, want current token kept", got)
	}
}
