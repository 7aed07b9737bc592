package eval

import "github.com/cwbudde/cscheme/internal/lexer"

// NilLit returns the Nil sentinel directly: singletons are never
// tracked, so there is nothing to preallocate or release. It is
// produced only for the empty list `()`, quoted or bare; #t/#f/nil as bare
// identifiers resolve through VarRef against the global bindings
// installBuiltins seeds them with.
type NilLit struct{ baseNode }

func NewNilLit(pos lexer.Position) *NilLit { return &NilLit{baseNode{pos}} }

func (n *NilLit) Execute(ip *Interpreter, env *Environment) (Value, error) { return Nil, nil }

// ListBuilder compiles a quoted or quasiquoted list datum. It produces
// a fresh chain of pairs on every execution: unlike the atomic
// literals, a quoted list is itself mutable data (set-car!/set-cdr! can
// be applied to it), so two evaluations of the same `quote` must not
// alias the same cells (§4.2, quote).
type ListBuilder struct {
	baseNode
	Elems []Node // element closures, evaluated left to right
	Tail  Node   // closure for the dotted tail, or nil for a proper list
}

func NewListBuilder(pos lexer.Position, elems []Node, tail Node) *ListBuilder {
	return &ListBuilder{baseNode: baseNode{pos}, Elems: elems, Tail: tail}
}

func (n *ListBuilder) Execute(ip *Interpreter, env *Environment) (Value, error) {
	values := make([]Value, len(n.Elems))
	for i, elem := range n.Elems {
		v, err := elem.Execute(ip, env)
		if err != nil {
			for j := 0; j < i; j++ {
				values[j].Release()
			}
			return nil, err
		}
		values[i] = v
	}
	var tail Value = Nil
	if n.Tail != nil {
		v, err := n.Tail.Execute(ip, env)
		if err != nil {
			for _, v := range values {
				v.Release()
			}
			return nil, err
		}
		tail = v
	}
	result := tail
	for i := len(values) - 1; i >= 0; i-- {
		result = NewPair(ip.Tracker, values[i], result)
	}
	return result, nil
}

// Unquote is a marker Node produced only inside quasiquote
// compilation to mark a `,expr` hole: it evaluates expr in the caller's
// environment rather than treating it as literal datum (§4.2,
// quasiquote).
type Unquote struct {
	baseNode
	Expr Node
}

func NewUnquote(pos lexer.Position, expr Node) *Unquote {
	return &Unquote{baseNode: baseNode{pos}, Expr: expr}
}

func (n *Unquote) Execute(ip *Interpreter, env *Environment) (Value, error) {
	return n.Expr.Execute(ip, env)
}
