package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/ember/lang/ast"
	"github.com/dhamidi/ember/lang/lexer"
	"github.com/dhamidi/ember/lang/parser"
	"github.com/dhamidi/ember/lang/token"
)

func mustParse(t *testing.T, src string) ast.Node {
	t.Helper()
	node, err := parser.ParseSource(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return node
}

func TestSource(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1+2*3", "1 + 2 * 3\n"},
		{"(1+2)*3", "(1 + 2) * 3\n"},
		{"1-(2-3)", "1 - (2 - 3)\n"},
		{"(2**3)**2", "(2 ** 3) ** 2\n"},
		{"2^3^2", "2 ** 3 ** 2\n"},
		{"-2**2", "-2 ** 2\n"},
		{"(-2)**2", "(-2) ** 2\n"},
		{"(not a)==b", "(not a) == b\n"},
		{"not a==b && !c", "not a == b && !c\n"},
		{"let x=f(1,[2,3])", "let x = f(1, [2, 3])\n"},
		{"(a.b).c", "(a.b).c\n"},
		{"a.b(1)", "a.b(1)\n"},
		{"pass", "return\n"},
		{"a;b", "a\nb\n"},
		{`"a\"b"`, `"a\"b"` + "\n"},
		{"{}", "{}\n"},
		{"{a=1\nb=2}", "{\n  a = 1\n  b = 2\n}\n"},
		{"if x=>1 else=>2", "if x => 1 else => 2\n"},
		{"if x {1} elif y {stop}", "if x {\n  1\n} elif y {\n  stop\n}\n"},
		{"if a => (if b => 1) else => 2", "if a => (if b => 1) else => 2\n"},
		{"if a => return (if b => 1) else => 2", "if a => return (if b => 1) else => 2\n"},
		{"1 + (if a => 2) + 3", "1 + (if a => 2) + 3\n"},
		{"for i=0:9 step 3=>i", "for i = 0 to 9 step 3 => i\n"},
		{"while x {skip}", "while x {\n  skip\n}\n"},
		{"fun(a,b)=>a", "fun (a, b) => a\n"},
		{"fun f() {\nreturn 1\n}", "fun f() {\n  return 1\n}\n"},
		{"(fun () => 1)()", "(fun () => 1)()\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Source(mustParse(t, tt.input)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestASTJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf, Options{}).Encode(mustParse(t, "1 + x")); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var root astNode
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if root.Kind != "Statements" || len(root.Children) != 1 {
		t.Fatalf("got %+v, want Statements with one child", root)
	}
	bin := root.Children[0]
	if bin.Kind != "BinOp" || bin.Token != "+" {
		t.Errorf("got %s %q, want BinOp +", bin.Kind, bin.Token)
	}
	if len(bin.Children) != 2 || bin.Children[0].Role != "left" || bin.Children[1].Token != "x" {
		t.Errorf("got children %+v", bin.Children)
	}
	if root.Span != nil {
		t.Errorf("got span %+v without positions", root.Span)
	}
}

func TestASTJSONEncoderPositions(t *testing.T) {
	enc := NewASTJSONEncoder(nil, Options{Positions: true})
	text, err := enc.MarshalText(mustParse(t, "\nlet a = 1"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var root astNode
	if err := json.Unmarshal(text, &root); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	let := root.Children[0]
	if let.Span == nil || let.Span.Start.Line != 2 || let.Span.Start.Column != 1 || let.Span.End.Column != 10 {
		t.Errorf("got span %+v, want 2:1-2:10", let.Span)
	}
}

func TestASTYAMLEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewASTYAMLEncoder(&buf, Options{}).Encode(mustParse(t, "if x { f(1) }")); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"kind: Statements", "kind: If", "kind: Case", "block: true", "role: callee", "role: arg"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range Names {
		if _, err := NewEncoder(name, &bytes.Buffer{}, Options{}); err != nil {
			t.Errorf("NewEncoder(%q): %v", name, err)
		}
	}
	if _, err := NewEncoder("xml", &bytes.Buffer{}, Options{}); err == nil {
		t.Errorf("NewEncoder(xml): expected error")
	}

	var buf bytes.Buffer
	enc, _ := NewEncoder("tree", &buf, Options{})
	enc.Encode(mustParse(t, "1 + 2"))
	if got := buf.String(); got != "{(+ 1 2)}\n" {
		t.Errorf("got %q", got)
	}
}

func TestLineEncoder(t *testing.T) {
	tokens, err := lexer.Tokenize([]byte(`let s = "hi"`), "")
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	text, err := NewLineEncoder(nil).MarshalText(tokens)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "1:1\tKeyword\tlet\n" +
		"1:5\tIdentifier\ts\n" +
		"1:7\t=\t\n" +
		"1:9\tString\t\"hi\"\n" +
		"1:13\tEOF\t\n"
	if got := string(text); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSnippet(t *testing.T) {
	src := []byte("# config\nlet x 1\nx")
	got := Snippet(src, token.Position{File: "main.em", Line: 2, Column: 7}, "Expected '='")
	want := "error in main.em at 2:7: Expected '='\n\n" +
		"   1 | # config\n" +
		"   2 | let x 1\n" +
		"     |       ^\n" +
		"   3 | x\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	got = Snippet([]byte("x"), token.Position{Line: 9, Column: 0}, "m")
	if !strings.HasPrefix(got, "error at 1:1: m") {
		t.Errorf("out of range position not clamped: %q", got)
	}
}
