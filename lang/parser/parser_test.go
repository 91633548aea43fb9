package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/ember/lang/ast"
	"github.com/dhamidi/ember/lang/token"
)

func parse(t *testing.T, src string, opts ...Option) ast.Node {
	t.Helper()
	node, err := ParseTokens(lex(t, src), opts...)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return node
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "{(+ 1 (* 2 3))}"},
		{"1 - 2 - 3", "{(- (- 1 2) 3)}"},
		{"2 ** 3 ** 2", "{(** 2 (** 3 2))}"},
		{"2 ^ 3", "{(** 2 3)}"},
		{"-2 ** 2", "{(- (** 2 2))}"},
		{"- -x", "{(- (- x))}"},
		{"not 1 == 2 and 3 < 4", "{(and (not (== 1 2)) (< 3 4))}"},
		{"!a || b && c", "{(&& (|| (! a) b) c)}"},
		{"a <= b != c", "{(!= (<= a b) c)}"},
		{"(1 + 2) * 3", "{(* (+ 1 2) 3)}"},
		{"let x = 1", "{(let x 1)}"},
		{"let x = let y = 2", "{(let x (let y 2))}"},
		{"let p.x = 2", "{(let p.x 2)}"},
		{"a.b", "{(. a b)}"},
		{"a.b(1, 2)", "{(call (. a b) 1 2)}"},
		{"f()", "{(call f)}"},
		{"(a.b).c", "{(. (. a b) c)}"},
		{`[1, "s", []]`, `{[1 "s" []]}`},
		{"{}", "{(object)}"},
		{"{ a = 1\na = 2 }", "{(object a=2)}"},
		{"{\n  a = 1\n\n  b = [2]\n}", "{(object a=1 b=[2])}"},
		{"if x => 1", "{(if (x => 1))}"},
		{"if x { 1 }", "{(if (x {1}))}"},
		{"if a => 1 elif b => 2 else => 3", "{(if (a => 1) (b => 2) (else => 3))}"},
		{"if a { 1 } else { 2 }", "{(if (a {1}) (else {2}))}"},
		{"if a { 1 } elif b => 2", "{(if (a {1}) (b => 2))}"},
		{"let y = if x => 1 else => 2", "{(let y (if (x => 1) (else => 2)))}"},
		{"for i = 0 to 10 step 2 => i", "{(for i 0 10 step 2 => i)}"},
		{"for i = 0 : n { print(i) }", "{(for i 0 n {(call print i)})}"},
		{"while x { stop\nskip }", "{(while x {(stop); (skip)})}"},
		{"fun add(a, b) => a + b", "{(fun add (a b) => (+ a b))}"},
		{"fun () { return }", "{(fun () {(return)})}"},
		{"fun f() {\n  return\n}", "{(fun f () {(return)})}"},
		{"fun (x) => x(1)", "{(fun (x) => (call x 1))}"},
		{"return 1", "{(return 1)}"},
		{"return", "{(return)}"},
		{"pass", "{(return)}"},
		{"\n\na\n\nb\n", "{a; b}"},
		{"a; b", "{a; b}"},
		{"# comment\nx # trailing\n", "{x}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ast.Sprint(parse(t, tt.input)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseBlockFlags(t *testing.T) {
	arrow := parse(t, "if x => 1").(*ast.Statements).Body[0].(*ast.If)
	if arrow.Cases[0].Block {
		t.Errorf("arrow form: got block flag true, want false")
	}

	block := parse(t, "if x { 1 }").(*ast.Statements).Body[0].(*ast.If)
	if !block.Cases[0].Block {
		t.Errorf("brace form: got block flag false, want true")
	}

	fn := parse(t, "fun f() => 1").(*ast.Statements).Body[0].(*ast.FuncDef)
	if !fn.SingleExpr {
		t.Errorf("arrow fun: got SingleExpr false, want true")
	}

	loop := parse(t, "for i = 1 to 2 => i").(*ast.Statements).Body[0].(*ast.For)
	if loop.Step != nil {
		t.Errorf("got step %s, want nil", ast.Sprint(loop.Step))
	}
}

func TestStatementsRewindsToTerminator(t *testing.T) {
	tokens := lex(t, "a\n\n}")
	p := New(tokens)
	p.cur = NewCursor(tokens)

	res := p.statements()
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if got := ast.Sprint(res.Value); got != "{a}" {
		t.Errorf("got %s, want {a}", got)
	}
	if got := p.cur.Current().Kind; got != token.RBrace {
		t.Errorf("cursor on %v, want }", got)
	}
	if p.cur.Index() != 3 {
		t.Errorf("cursor at %d, want 3", p.cur.Index())
	}

	if got := ast.Sprint(parse(t, "while x { a\n\n }")); got != "{(while x {a})}" {
		t.Errorf("got %s, want {(while x {a})}", got)
	}
}

func TestParseConsumesAllTokens(t *testing.T) {
	for _, src := range []string{"1", "a.b(c)\n", "fun f() {\n  1\n}\n\n"} {
		tokens := lex(t, src)
		p := New(tokens)
		if _, err := p.Parse(); err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		if p.cur.Current().Kind != token.EOF || p.cur.Index() != len(tokens)-1 {
			t.Errorf("%q: cursor at %d (%v), want EOF at %d", src, p.cur.Index(), p.cur.Current(), len(tokens)-1)
		}
	}
}

func TestObjectOverwrite(t *testing.T) {
	obj := parse(t, "{ a = 1\na = 2 }").(*ast.Statements).Body[0].(*ast.Object)
	if len(obj.Fields) != 1 {
		t.Fatalf("got %d fields, want 1", len(obj.Fields))
	}
	v, ok := obj.Field("a")
	if !ok || ast.Sprint(v) != "2" {
		t.Errorf("got a=%v, want 2", v)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		line  int
		col   int
		msg   string
	}{
		{"if x =>", 1, 8, msgStatement},
		{"1 +", 1, 4, msgAtom},
		{"(1", 1, 3, msgRParen},
		{"x = 1", 1, 3, msgTrailing},
		{"let = 1", 1, 5, msgIdent},
		{"let x 1", 1, 7, msgAssign},
		{"f(1 2)", 1, 5, msgCommaRParen},
		{"[1,]", 1, 4, msgExpr},
		{"[1 2]", 1, 4, msgCommaRBrack},
		{"a.1", 1, 3, msgIdent},
		{"for i = 1 10 => i", 1, 11, msgTo},
		{"for 1", 1, 5, msgIdent},
		{"while x 1", 1, 9, msgBody},
		{"fun 1", 1, 5, msgFunName},
		{"fun f x", 1, 7, msgLParen},
		{"fun f(1)", 1, 7, msgParam},
		{"fun f(a b)", 1, 9, msgCommaRParen},
		{"fun f(a,) => 1", 1, 9, msgIdent},
		{"if x { 1", 1, 9, msgRBrace},
		{"{ a = 1 b = 2 }", 1, 9, msgRBrace},
		{"{ 1 }", 1, 3, msgIdent},
		{"a\n)", 2, 1, msgTrailing},
		{")", 1, 1, msgStatement},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseTokens(lex(t, tt.input))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrInvalidSyntax) {
				t.Errorf("got %v, want ErrInvalidSyntax", err)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("got %T, want *Error", err)
			}
			if perr.Start.Line != tt.line || perr.Start.Column != tt.col {
				t.Errorf("got position %d:%d, want %d:%d", perr.Start.Line, perr.Start.Column, tt.line, tt.col)
			}
			if perr.Message != tt.msg {
				t.Errorf("got message %q, want %q", perr.Message, tt.msg)
			}
		})
	}
}

func TestMissingEOF(t *testing.T) {
	tokens := lex(t, "a")
	tests := []struct {
		name   string
		tokens []token.Token
	}{
		{"empty", nil},
		{"no eof", tokens[:len(tokens)-1]},
		{"two eofs", append([]token.Token{tokens[len(tokens)-1]}, tokens...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTokens(tt.tokens); !errors.Is(err, ErrMissingEOF) {
				t.Errorf("got %v, want ErrMissingEOF", err)
			}
		})
	}
}

func TestObjectMode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "(object)"},
		{"\n\n", "(object)"},
		{"{}", "(object)"},
		{"\n{ a = 1\n  b = \"x\" }\n\n", `(object a=1 b="x")`},
		{"{\n  nested = { c = [1, 2] }\n}", "(object nested=(object c=[1 2]))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ast.Sprint(parse(t, tt.input, WithMode(ModeObject))); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestObjectModeErrors(t *testing.T) {
	tests := []struct {
		input string
		col   int
		msg   string
	}{
		{"a = 1", 1, msgLBrace},
		{"{ a = 1 } 2", 11, msgTrailing},
		{"{ a = }", 7, msgExpr},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseTokens(lex(t, tt.input), WithMode(ModeObject))
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("got %v, want *Error", err)
			}
			if perr.Start.Column != tt.col || perr.Message != tt.msg {
				t.Errorf("got %d %q, want %d %q", perr.Start.Column, perr.Message, tt.col, tt.msg)
			}
		})
	}
}

func TestChainedAccess(t *testing.T) {
	if _, err := ParseTokens(lex(t, "a.b.c")); err == nil {
		t.Errorf("a.b.c without chained access: expected error")
	}

	got := ast.Sprint(parse(t, "a.b.c(1)", WithChainedAccess()))
	if want := "{(call (. (. a b) c) 1)}"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestNodeSpans(t *testing.T) {
	stmt := parse(t, "let x = 1 + 2").(*ast.Statements).Body[0]
	span := stmt.Span()
	if span.Start.Column != 1 || span.End.Column != 14 {
		t.Errorf("got span %v, want 1:1-1:14", span)
	}

	call := parse(t, "f(a, b)").(*ast.Statements).Body[0]
	if call.Span().End.Column != 8 {
		t.Errorf("got call end %v, want column 8", call.Span().End)
	}
}

func TestParseSource(t *testing.T) {
	node, err := ParseSource(strings.NewReader("let a = [1, 2]\n"), WithFile("list.em"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ast.Sprint(node); got != "{(let a [1 2])}" {
		t.Errorf("got %s", got)
	}

	_, err = ParseSource(strings.NewReader("let a ="), WithFile("bad.em"))
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *Error", err)
	}
	if perr.Start.File != "bad.em" {
		t.Errorf("got file %q, want bad.em", perr.Start.File)
	}
	if want := "bad.em:1:8: invalid syntax: "; !strings.HasPrefix(err.Error(), want) {
		t.Errorf("got %q, want prefix %q", err.Error(), want)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"", "statements", "object"} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q): %v", s, err)
		}
	}
	if _, err := ParseMode("json"); err == nil {
		t.Errorf("ParseMode(json): expected error")
	}
}
