package token

type Kind int

const (
	EOF Kind = iota
	Illegal
	Newline

	// Literals
	Int
	Float
	String
	Ident
	Keyword

	// Operators
	Plus
	Minus
	Star
	Slash
	Pow
	Assign
	EQ
	NE
	LT
	GT
	LE
	GE
	And
	Or
	Not
	Arrow

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Dot
)

var kindNames = map[Kind]string{
	EOF:      "EOF",
	Illegal:  "Illegal",
	Newline:  "Newline",
	Int:      "Int",
	Float:    "Float",
	String:   "String",
	Ident:    "Identifier",
	Keyword:  "Keyword",
	Plus:     "+",
	Minus:    "-",
	Star:     "*",
	Slash:    "/",
	Pow:      "**",
	Assign:   "=",
	EQ:       "==",
	NE:       "!=",
	LT:       "<",
	GT:       ">",
	LE:       "<=",
	GE:       ">=",
	And:      "&&",
	Or:       "||",
	Not:      "!",
	Arrow:    "=>",
	LParen:   "(",
	RParen:   ")",
	LBrace:   "{",
	RBrace:   "}",
	LBracket: "[",
	RBracket: "]",
	Comma:    ",",
	Colon:    ":",
	Dot:      ".",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a lexical unit. Value holds the identifier name, keyword word,
// decoded string contents or numeric literal text; it is empty for operators
// and punctuation.
type Token struct {
	Kind  Kind
	Value string
	Span  Span
}

// Matches reports whether t has the given kind and value.
func (t Token) Matches(kind Kind, value string) bool {
	return t.Kind == kind && t.Value == value
}

// Is reports whether t is the keyword word.
func (t Token) Is(word string) bool {
	return t.Matches(Keyword, word)
}

func (t Token) String() string {
	if t.Value != "" {
		return t.Kind.String() + ":" + t.Value
	}
	return t.Kind.String()
}

var keywords = map[string]bool{
	"let":    true,
	"if":     true,
	"elif":   true,
	"else":   true,
	"for":    true,
	"to":     true,
	"step":   true,
	"while":  true,
	"and":    true,
	"or":     true,
	"not":    true,
	"fun":    true,
	"return": true,
	"skip":   true,
	"stop":   true,
	"pass":   true,
}

// LookupKeyword returns Keyword if ident is reserved, Ident otherwise.
func LookupKeyword(ident string) Kind {
	if keywords[ident] {
		return Keyword
	}
	return Ident
}
