package parser

import (
	"errors"
	"fmt"

	"github.com/dhamidi/ember/lang/token"
)

var (
	// ErrInvalidSyntax matches every *Error with errors.Is.
	ErrInvalidSyntax = errors.New("invalid syntax")
	// ErrMissingEOF is returned for token sequences that are empty or do
	// not end with exactly one EOF token.
	ErrMissingEOF = errors.New("token sequence must end with a single EOF token")
)

// Error is an invalid-syntax diagnostic. Message lists the tokens that
// were acceptable at Start.
type Error struct {
	Start   token.Position
	End     token.Position
	Message string
}

func newError(tok token.Token, msg string) *Error {
	return &Error{Start: tok.Span.Start, End: tok.Span.End, Message: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: invalid syntax: %s", e.Start, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalidSyntax
}

// Expected-token messages, one per grammar position.
const (
	msgTrailing    = "Expected '+', '-', '*', '/' or end of input"
	msgStatement   = "Expected 'return', 'skip', 'stop', 'pass', 'let', 'if', 'for', 'while', 'fun', int, float, string, identifier, '+', '-', '(', '[', '{' or 'not'"
	msgExpr        = "Expected 'let', 'if', 'for', 'while', 'fun', int, float, string, identifier, '+', '-', '(', '[', '{' or 'not'"
	msgComparison  = "Expected int, float, string, identifier, '+', '-', '(', '[', '{' or 'not'"
	msgAtom        = "Expected int, float, string, identifier, '+', '-', '(', '[', '{', 'if', 'for', 'while', 'fun' or 'not'"
	msgCallArg     = "Expected ')', 'let', int, float, string, identifier, '+', '-', '(', '[' or 'not'"
	msgListElement = "Expected ']', 'let', int, float, string, identifier, '+', '-', '(', '[' or 'not'"
	msgIdent       = "Expected identifier"
	msgAssign      = "Expected '='"
	msgRParen      = "Expected ')'"
	msgRBrace      = "Expected '}'"
	msgLBrace      = "Expected '{'"
	msgLBracket    = "Expected '['"
	msgBody        = "Expected '{' or '=>'"
	msgTo          = "Expected 'to' or ':'"
	msgCommaRParen = "Expected ',' or ')'"
	msgCommaRBrack = "Expected ',' or ']'"
	msgFunName     = "Expected identifier or '('"
	msgLParen      = "Expected '('"
	msgParam       = "Expected identifier or ')'"
)

func msgKeyword(word string) string {
	return "Expected '" + word + "'"
}
