package eval

import "github.com/cwbudde/cscheme/internal/lexer"

// Sequence compiles `begin`, a lambda body, or a `let` body: every
// expression but the last is evaluated for effect and its value
// discarded; the last is compiled in whatever tail position the
// Sequence itself occupies, so Sequence.Execute simply returns its
// result (possibly a tailSignal) unexamined.
type Sequence struct {
	baseNode
	Exprs []Node
}

func NewSequence(pos lexer.Position, exprs []Node) *Sequence {
	return &Sequence{baseNode: baseNode{pos}, Exprs: exprs}
}

func (n *Sequence) Execute(ip *Interpreter, env *Environment) (Value, error) {
	for i := 0; i < len(n.Exprs)-1; i++ {
		v, err := n.Exprs[i].Execute(ip, env)
		if err != nil {
			return nil, err
		}
		v.Release()
	}
	return n.Exprs[len(n.Exprs)-1].Execute(ip, env)
}

// If compiles `if`. Like Sequence, it performs no TCO bookkeeping of
// its own: the branch taken was compiled with the tail-ness If itself
// was given, so returning its result unexamined is sufficient.
type If struct {
	baseNode
	Test, Then, Else Node // Else is nil for the one-armed form
}

func NewIf(pos lexer.Position, test, then, els Node) *If {
	return &If{baseNode: baseNode{pos}, Test: test, Then: then, Else: els}
}

func (n *If) Execute(ip *Interpreter, env *Environment) (Value, error) {
	t, err := n.Test.Execute(ip, env)
	if err != nil {
		return nil, err
	}
	truthy := IsTruthy(t)
	t.Release()
	if truthy {
		return n.Then.Execute(ip, env)
	}
	if n.Else == nil {
		return Unassigned, nil
	}
	return n.Else.Execute(ip, env)
}

// And compiles `and`: evaluates operands left to right, returning False
// as soon as one is false, otherwise the value of the last operand.
type And struct {
	baseNode
	Exprs []Node
}

func NewAnd(pos lexer.Position, exprs []Node) *And {
	return &And{baseNode: baseNode{pos}, Exprs: exprs}
}

func (n *And) Execute(ip *Interpreter, env *Environment) (Value, error) {
	if len(n.Exprs) == 0 {
		return True, nil
	}
	for i := 0; i < len(n.Exprs)-1; i++ {
		v, err := n.Exprs[i].Execute(ip, env)
		if err != nil {
			return nil, err
		}
		truthy := IsTruthy(v)
		v.Release()
		if !truthy {
			return False, nil
		}
	}
	return n.Exprs[len(n.Exprs)-1].Execute(ip, env)
}

// Or compiles `or`: evaluates operands left to right, returning the
// first truthy value without evaluating the rest, otherwise False.
type Or struct {
	baseNode
	Exprs []Node
}

func NewOr(pos lexer.Position, exprs []Node) *Or {
	return &Or{baseNode: baseNode{pos}, Exprs: exprs}
}

func (n *Or) Execute(ip *Interpreter, env *Environment) (Value, error) {
	if len(n.Exprs) == 0 {
		return False, nil
	}
	for i := 0; i < len(n.Exprs)-1; i++ {
		v, err := n.Exprs[i].Execute(ip, env)
		if err != nil {
			return nil, err
		}
		if IsTruthy(v) {
			return v, nil
		}
		v.Release()
	}
	return n.Exprs[len(n.Exprs)-1].Execute(ip, env)
}

// Assignment compiles `set!`. The initializer is never in tail
// position: set! itself always yields immediately (§4.2).
type Assignment struct {
	baseNode
	Name string
	Init Node
}

func NewAssignment(pos lexer.Position, name string, init Node) *Assignment {
	return &Assignment{baseNode: baseNode{pos}, Name: name, Init: init}
}

func (n *Assignment) Execute(ip *Interpreter, env *Environment) (Value, error) {
	v, err := n.Init.Execute(ip, env)
	if err != nil {
		return nil, err
	}
	if !env.SetExisting(n.Name, v) {
		v.Release()
		return nil, unboundVariable(ip, n.Pos(), n.Name)
	}
	return Unassigned, nil
}

// Definition compiles `(define name expr)`. The two-argument-list form
// `(define (name . params) body...)` is desugared at analyze time into
// this plus a Lambda initializer (§4.2, define).
type Definition struct {
	baseNode
	Name string
	Init Node
}

func NewDefinition(pos lexer.Position, name string, init Node) *Definition {
	return &Definition{baseNode: baseNode{pos}, Name: name, Init: init}
}

func (n *Definition) Execute(ip *Interpreter, env *Environment) (Value, error) {
	v, err := n.Init.Execute(ip, env)
	if err != nil {
		return nil, err
	}
	if c, ok := v.(*CompoundValue); ok && c.Name == "" {
		c.Name = n.Name
	}
	env.Define(n.Name, v)
	return Unassigned, nil
}

// Lambda compiles `(lambda params body...)` into a closure-creating
// node: every execution allocates a fresh CompoundValue capturing env,
// the environment live at the point the lambda form is reached (§4.3).
type Lambda struct {
	baseNode
	Params   []string
	Variadic bool
	Body     Node
}

func NewLambda(pos lexer.Position, params []string, variadic bool, body Node) *Lambda {
	return &Lambda{baseNode: baseNode{pos}, Params: params, Variadic: variadic, Body: body}
}

func (n *Lambda) Execute(ip *Interpreter, env *Environment) (Value, error) {
	return NewCompound(ip.Tracker, n.Params, n.Variadic, n.Body, env).Retain(), nil
}
