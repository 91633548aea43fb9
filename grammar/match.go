package grammar

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/ember/lang/token"
)

// tokenClasses maps lexical productions to the token kind they stand for
// inside syntactic productions.
var tokenClasses = map[string]token.Kind{
	"newline":    token.Newline,
	"identifier": token.Ident,
	"int":        token.Int,
	"float":      token.Float,
	"string":     token.String,
}

type memoKey struct {
	name  string
	index int
}

// Recognizer matches a token sequence against the syntactic productions
// of a grammar. Alternatives take the longest match, repetitions are
// greedy and a failed repetition step gives back what it consumed.
type Recognizer struct {
	grammar  ebnf.Grammar
	tokens   []token.Token
	memo     map[memoKey]int
	visiting map[memoKey]bool
	furthest int
}

func NewRecognizer(g ebnf.Grammar, tokens []token.Token) *Recognizer {
	return &Recognizer{
		grammar:  g,
		tokens:   tokens,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// Accepts reports whether tokens, which end with EOF, form a sentence of
// start.
func (r *Recognizer) Accepts(start string) error {
	if len(r.tokens) == 0 || r.tokens[len(r.tokens)-1].Kind != token.EOF {
		return fmt.Errorf("token sequence must end with EOF")
	}
	if prod := r.grammar[start]; prod == nil || prod.Expr == nil {
		return fmt.Errorf("production %q not found in grammar", start)
	}

	end := r.matchName(start, 0)
	last := len(r.tokens) - 1
	if end == last {
		return nil
	}
	at := r.furthest
	if end > at {
		at = end
	}
	if at > last {
		at = last
	}
	tok := r.tokens[at]
	return fmt.Errorf("%s: %s does not match %s", tok.Span.Start, describe(tok), start)
}

// Accepts is a shorthand for NewRecognizer(g, tokens).Accepts(start).
func Accepts(g ebnf.Grammar, start string, tokens []token.Token) error {
	return NewRecognizer(g, tokens).Accepts(start)
}

// match returns the index after the match, or -1.
func (r *Recognizer) match(expr ebnf.Expression, index int) int {
	switch e := expr.(type) {
	case nil:
		return index

	case *ebnf.Token:
		return r.matchToken(e.String, index)

	case *ebnf.Range:
		return -1

	case ebnf.Sequence:
		pos := index
		for _, item := range e {
			pos = r.match(item, pos)
			if pos < 0 {
				return -1
			}
		}
		return pos

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := r.match(alt, index); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		pos := index
		for {
			n := r.match(e.Body, pos)
			if n <= pos {
				return pos
			}
			pos = n
		}

	case *ebnf.Option:
		if n := r.match(e.Body, index); n >= 0 {
			return n
		}
		return index

	case *ebnf.Group:
		return r.match(e.Body, index)

	case *ebnf.Name:
		return r.matchName(e.String, index)
	}
	return -1
}

func (r *Recognizer) matchName(name string, index int) int {
	if isLexical(name) {
		kind, ok := tokenClasses[name]
		if !ok || index >= len(r.tokens) || r.tokens[index].Kind != kind {
			r.fail(index)
			return -1
		}
		return index + 1
	}

	key := memoKey{name: name, index: index}
	if end, ok := r.memo[key]; ok {
		return end
	}
	// Left recursion.
	if r.visiting[key] {
		return -1
	}
	prod, ok := r.grammar[name]
	if !ok || prod.Expr == nil {
		r.memo[key] = -1
		return -1
	}

	r.visiting[key] = true
	end := r.match(prod.Expr, index)
	delete(r.visiting, key)

	r.memo[key] = end
	return end
}

// matchToken matches a literal against a keyword or operator token.
func (r *Recognizer) matchToken(lit string, index int) int {
	if index >= len(r.tokens) {
		return -1
	}
	tok := r.tokens[index]
	switch tok.Kind {
	case token.Keyword:
		if tok.Value == lit {
			return index + 1
		}
	case token.EOF, token.Illegal, token.Newline, token.Int, token.Float, token.String, token.Ident:
	default:
		if tok.Kind.String() == lit {
			return index + 1
		}
	}
	r.fail(index)
	return -1
}

func (r *Recognizer) fail(index int) {
	if index > r.furthest {
		r.furthest = index
	}
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Keyword, token.Ident, token.Int, token.Float:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Value)
	}
	return tok.Kind.String()
}
