package grammar

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/ember/lang/lexer"
	"github.com/dhamidi/ember/lang/parser"
)

func TestVerify(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Verify(g, Start); err != nil {
		t.Errorf("verify %s: %v", Start, err)
	}
	if err := Verify(g, Program); err == nil {
		t.Errorf("verify %s: expected unreachable productions", Program)
	}
}

func TestParseInvalidGrammar(t *testing.T) {
	if _, err := Parse("bad.ebnf", strings.NewReader("A = \"a\" | .\nB = ")); err == nil {
		t.Errorf("expected parse error")
	}

	g, err := Parse("undefined.ebnf", strings.NewReader("A = B ."))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := Verify(g, "A"); err == nil {
		t.Errorf("expected undefined production error")
	}
}

func TestAcceptsAgreesWithParser(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		input string
		valid bool
	}{
		{"1 + 2 * 3", true},
		{"2 ^ 3 ** -1", true},
		{"not 1 == 2 and 3 < 4 || !x", true},
		{"let p.x = f(1, [2, 3], {})", true},
		{"a.b(c)", true},
		{"if a => 1 elif b { 2 } else => 3", true},
		{"for i = 0 : n step 2 {\n  print(i)\n\n}", true},
		{"while x => skip", true},
		{"fun add(a, b) => a + b\nfun () {\n  return\n}", true},
		{"{\n  a = 1\n\n  b = \"s\"\n}", true},
		{"return\npass\nstop", true},
		{"\n\na;b\n\n", true},
		{"", false},
		{"a.b.c", false},
		{"x = 1", false},
		{"let = 1", false},
		{"if x =>", false},
		{"1 +", false},
		{"(1", false},
		{"f(1 2)", false},
		{"{ a = 1 b = 2 }", false},
		{"fun f(a b)", false},
		{"for i = 1 10 => i", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := lexer.Tokenize([]byte(tt.input), "")
			if err != nil {
				t.Fatalf("tokenize: %v", err)
			}
			_, perr := parser.ParseTokens(tokens)
			gerr := Accepts(g, Program, tokens)

			if (perr == nil) != tt.valid {
				t.Errorf("parser: got %v, want valid=%v", perr, tt.valid)
			}
			if (gerr == nil) != tt.valid {
				t.Errorf("grammar: got %v, want valid=%v", gerr, tt.valid)
			}
		})
	}
}

func TestAcceptsObjectFile(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		input string
		valid bool
	}{
		{"", true},
		{"\n\n", true},
		{"{ a = 1 }\n", true},
		{"\n{\n  a = [1]\n  b = { c = 2 }\n}\n", true},
		{"a = 1", false},
		{"{} {}", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := lexer.Tokenize([]byte(tt.input), "")
			if err != nil {
				t.Fatalf("tokenize: %v", err)
			}
			_, perr := parser.ParseTokens(tokens, parser.WithMode(parser.ModeObject))
			gerr := Accepts(g, ObjectFile, tokens)
			if (perr == nil) != tt.valid || (gerr == nil) != tt.valid {
				t.Errorf("parser %v, grammar %v, want valid=%v", perr, gerr, tt.valid)
			}
		})
	}
}

func TestAcceptsTestdata(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	files, err := filepath.Glob(filepath.Join("..", "format", "testdata", "*.em"))
	if err != nil || len(files) == 0 {
		t.Skipf("no testdata: %v", err)
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			src, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			tokens, err := lexer.Tokenize(src, file)
			if err != nil {
				t.Fatalf("tokenize: %v", err)
			}
			start := Program
			if strings.HasSuffix(file, ".object.em") {
				start = ObjectFile
			}
			if err := Accepts(g, start, tokens); err != nil {
				t.Errorf("grammar rejects %s: %v", file, err)
			}
		})
	}
}

func TestAcceptsReportsPosition(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tokens, _ := lexer.Tokenize([]byte("let x 1"), "a.em")
	err = Accepts(g, Program, tokens)
	if err == nil || !strings.HasPrefix(err.Error(), "a.em:1:7:") {
		t.Errorf("got %v, want error at a.em:1:7", err)
	}
}
