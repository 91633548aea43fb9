package ast

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, c := range children {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Statements:
		add(n.Body...)
	case *VarAssign:
		add(n.Value)
	case *FieldAssign:
		add(n.Value)
	case *FieldAccess:
		add(n.Object)
	case *BinOp:
		add(n.Left, n.Right)
	case *UnaryOp:
		add(n.Operand)
	case *If:
		for _, c := range n.Cases {
			add(c.Cond, c.Body)
		}
		if n.Else != nil {
			add(n.Else.Body)
		}
	case *For:
		add(n.Start, n.End, n.Step, n.Body)
	case *While:
		add(n.Cond, n.Body)
	case *FuncDef:
		add(n.Body)
	case *Call:
		add(n.Callee)
		add(n.Args...)
	case *Return:
		add(n.Value)
	case *List:
		add(n.Elements...)
	case *Object:
		for _, f := range n.Fields {
			add(f.Value)
		}
	case *Number, *String, *VarAccess, *Break, *Continue:
	}
	return out
}

// Walk calls fn for n and, while fn returns true, for its descendants in
// depth-first order.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}
