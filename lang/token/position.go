package token

import "fmt"

// Position is an immutable location in source text. Offset is a 0-based byte
// offset, Line and Column are 1-based.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

// Start returns the position of the first byte of file.
func Start(file string) Position {
	return Position{File: file, Line: 1, Column: 1}
}

// Advance returns the position one byte after p, assuming ch is the byte at p.
func (p Position) Advance(ch byte) Position {
	next := p
	next.Offset++
	if ch == '\n' {
		next.Line++
		next.Column = 1
	} else {
		next.Column++
	}
	return next
}

func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open range [Start, End) of source text.
type Span struct {
	Start Position
	End   Position
}

// Join returns the span starting at s and ending where other ends.
func (s Span) Join(other Span) Span {
	return Span{Start: s.Start, End: other.End}
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}
