package parser

import "github.com/dhamidi/ember/lang/token"

// Cursor is a read position over a token sequence that ends with an EOF
// token. It starts on the first token.
type Cursor struct {
	tokens  []token.Token
	index   int
	current token.Token
}

func NewCursor(tokens []token.Token) *Cursor {
	c := &Cursor{tokens: tokens, index: -1}
	c.Advance()
	return c
}

// Advance moves forward one token and returns the new current token.
func (c *Cursor) Advance() token.Token {
	c.index++
	c.update()
	return c.current
}

// Retreat moves back n tokens and returns the new current token.
func (c *Cursor) Retreat(n int) token.Token {
	c.index -= n
	c.update()
	return c.current
}

// An out of range index keeps the last in-range token current.
func (c *Cursor) update() {
	if c.index >= 0 && c.index < len(c.tokens) {
		c.current = c.tokens[c.index]
	}
}

func (c *Cursor) Current() token.Token {
	return c.current
}

// Previous returns the last consumed token, or the current token when
// nothing has been consumed yet.
func (c *Cursor) Previous() token.Token {
	if c.index > 0 && c.index-1 < len(c.tokens) {
		return c.tokens[c.index-1]
	}
	return c.current
}

func (c *Cursor) Index() int {
	return c.index
}

func (c *Cursor) check(kind token.Kind) bool {
	return c.current.Kind == kind
}
