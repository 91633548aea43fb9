// Package grammar holds the EBNF description of ember and checks token
// sequences against it.
//
// The description is documentation first. Tests use Accepts to keep it in
// step with the hand-written parser in lang/parser.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/ebnf"
)

//go:embed grammar.ebnf
var source []byte

const (
	// Start covers both parse modes.
	Start = "Source"
	// Program is the start symbol of statement mode.
	Program = "Program"
	// ObjectFile is the start symbol of object mode.
	ObjectFile = "ObjectFile"
)

const filename = "grammar.ebnf"

// Text returns the embedded grammar.
func Text() []byte {
	return source
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return Parse(filename, bytes.NewReader(source))
}

// LoadFile parses a grammar from disk, for checking edited copies.
func LoadFile(path string) (ebnf.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Parse(path, f)
}

func Parse(name string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks that every production is defined and reachable from start
// and that lexical productions only refer to lexical productions.
func Verify(g ebnf.Grammar, start string) error {
	return ebnf.Verify(g, start)
}
