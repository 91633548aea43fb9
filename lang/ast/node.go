package ast

import "github.com/dhamidi/ember/lang/token"

type Kind int

const (
	KindStatements Kind = iota
	KindNumber
	KindString
	KindVarAccess
	KindVarAssign
	KindFieldAssign
	KindFieldAccess
	KindBinOp
	KindUnaryOp
	KindIf
	KindFor
	KindWhile
	KindFuncDef
	KindCall
	KindReturn
	KindBreak
	KindContinue
	KindList
	KindObject
)

var kindNames = map[Kind]string{
	KindStatements:  "Statements",
	KindNumber:      "Number",
	KindString:      "String",
	KindVarAccess:   "VarAccess",
	KindVarAssign:   "VarAssign",
	KindFieldAssign: "FieldAssign",
	KindFieldAccess: "FieldAccess",
	KindBinOp:       "BinOp",
	KindUnaryOp:     "UnaryOp",
	KindIf:          "If",
	KindFor:         "For",
	KindWhile:       "While",
	KindFuncDef:     "FuncDef",
	KindCall:        "Call",
	KindReturn:      "Return",
	KindBreak:       "Break",
	KindContinue:    "Continue",
	KindList:        "List",
	KindObject:      "Object",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is implemented only by the types in this package, so a type switch
// over them is exhaustive.
type Node interface {
	Kind() Kind
	Span() token.Span
	node()
}

type base struct {
	span token.Span
}

func (b base) Span() token.Span { return b.span }
func (base) node()              {}

type Statements struct {
	base
	Body []Node
}

func NewStatements(body []Node, span token.Span) *Statements {
	return &Statements{base{span}, body}
}

func (*Statements) Kind() Kind { return KindStatements }

// Number holds an Int or Float token.
type Number struct {
	base
	Token token.Token
}

func NewNumber(tok token.Token) *Number {
	return &Number{base{tok.Span}, tok}
}

func (*Number) Kind() Kind { return KindNumber }

func (n *Number) IsFloat() bool { return n.Token.Kind == token.Float }

type String struct {
	base
	Token token.Token
}

func NewString(tok token.Token) *String {
	return &String{base{tok.Span}, tok}
}

func (*String) Kind() Kind { return KindString }

func (s *String) Value() string { return s.Token.Value }

type VarAccess struct {
	base
	Name token.Token
}

func NewVarAccess(name token.Token) *VarAccess {
	return &VarAccess{base{name.Span}, name}
}

func (*VarAccess) Kind() Kind { return KindVarAccess }

// VarAssign is `let name = value`.
type VarAssign struct {
	base
	Name  token.Token
	Value Node
}

func NewVarAssign(name token.Token, value Node, span token.Span) *VarAssign {
	return &VarAssign{base{span}, name, value}
}

func (*VarAssign) Kind() Kind { return KindVarAssign }

// FieldAssign is `let object.field = value`.
type FieldAssign struct {
	base
	Object token.Token
	Field  token.Token
	Value  Node
}

func NewFieldAssign(object, field token.Token, value Node, span token.Span) *FieldAssign {
	return &FieldAssign{base{span}, object, field, value}
}

func (*FieldAssign) Kind() Kind { return KindFieldAssign }

type FieldAccess struct {
	base
	Object Node
	Field  token.Token
}

func NewFieldAccess(object Node, field token.Token) *FieldAccess {
	return &FieldAccess{base{object.Span().Join(field.Span)}, object, field}
}

func (*FieldAccess) Kind() Kind { return KindFieldAccess }

type BinOp struct {
	base
	Left  Node
	Op    token.Token
	Right Node
}

func NewBinOp(left Node, op token.Token, right Node) *BinOp {
	return &BinOp{base{left.Span().Join(right.Span())}, left, op, right}
}

func (*BinOp) Kind() Kind { return KindBinOp }

type UnaryOp struct {
	base
	Op      token.Token
	Operand Node
}

func NewUnaryOp(op token.Token, operand Node) *UnaryOp {
	return &UnaryOp{base{op.Span.Join(operand.Span())}, op, operand}
}

func (*UnaryOp) Kind() Kind { return KindUnaryOp }

// IfCase is one `if`/`elif` branch. Block is true for the brace form.
type IfCase struct {
	Cond  Node
	Body  Node
	Block bool
}

type ElseCase struct {
	Body  Node
	Block bool
}

type If struct {
	base
	Cases []IfCase
	Else  *ElseCase
}

func NewIf(cases []IfCase, elseCase *ElseCase, span token.Span) *If {
	return &If{base{span}, cases, elseCase}
}

func (*If) Kind() Kind { return KindIf }

// For is a counted loop; Step is nil when omitted.
type For struct {
	base
	Var   token.Token
	Start Node
	End   Node
	Step  Node
	Body  Node
	Block bool
}

func NewFor(v token.Token, start, end, step, body Node, block bool, span token.Span) *For {
	return &For{base{span}, v, start, end, step, body, block}
}

func (*For) Kind() Kind { return KindFor }

type While struct {
	base
	Cond  Node
	Body  Node
	Block bool
}

func NewWhile(cond, body Node, block bool, span token.Span) *While {
	return &While{base{span}, cond, body, block}
}

func (*While) Kind() Kind { return KindWhile }

// FuncDef is a function literal. Name is nil for anonymous functions.
// SingleExpr is true for the arrow form, whose body is one expression
// whose value is returned.
type FuncDef struct {
	base
	Name       *token.Token
	Params     []token.Token
	Body       Node
	SingleExpr bool
}

func NewFuncDef(name *token.Token, params []token.Token, body Node, singleExpr bool, span token.Span) *FuncDef {
	return &FuncDef{base{span}, name, params, body, singleExpr}
}

func (*FuncDef) Kind() Kind { return KindFuncDef }

type Call struct {
	base
	Callee Node
	Args   []Node
}

func NewCall(callee Node, args []Node, span token.Span) *Call {
	return &Call{base{span}, callee, args}
}

func (*Call) Kind() Kind { return KindCall }

// Return has a nil Value for a bare `return` or `pass`.
type Return struct {
	base
	Value Node
}

func NewReturn(value Node, span token.Span) *Return {
	return &Return{base{span}, value}
}

func (*Return) Kind() Kind { return KindReturn }

type Break struct {
	base
}

func NewBreak(span token.Span) *Break {
	return &Break{base{span}}
}

func (*Break) Kind() Kind { return KindBreak }

type Continue struct {
	base
}

func NewContinue(span token.Span) *Continue {
	return &Continue{base{span}}
}

func (*Continue) Kind() Kind { return KindContinue }

type List struct {
	base
	Elements []Node
}

func NewList(elements []Node, span token.Span) *List {
	return &List{base{span}, elements}
}

func (*List) Kind() Kind { return KindList }

type ObjectField struct {
	Name  token.Token
	Value Node
}

// Object keeps fields in order of first appearance. A name appears once.
type Object struct {
	base
	Fields []ObjectField
}

func NewObject(fields []ObjectField, span token.Span) *Object {
	return &Object{base{span}, fields}
}

func (*Object) Kind() Kind { return KindObject }

// Field returns the value bound to name.
func (o *Object) Field(name string) (Node, bool) {
	for _, f := range o.Fields {
		if f.Name.Value == name {
			return f.Value, true
		}
	}
	return nil, false
}
