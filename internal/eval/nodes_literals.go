package eval

import "github.com/cwbudde/cscheme/internal/lexer"

// IntLit / FloatLit / StringLit hold a value preallocated at analyze
// time. Execute does not allocate: it hands the caller another owned
// reference to the same value (Retain bumps the refcount), so a literal
// evaluated a million times inside a loop body still allocates exactly
// once. The preallocated value's own permanent reference is released
// when the closure tree itself is released (§4.4).
type IntLit struct {
	baseNode
	val *IntegerValue
}

// NewIntLit preallocates an IntegerValue owned by the node itself.
func NewIntLit(tr *Tracker, pos lexer.Position, v int64) *IntLit {
	lit := &IntLit{baseNode: baseNode{pos}, val: NewInteger(tr, v)}
	lit.val.Retain()
	return lit
}

func (n *IntLit) Execute(ip *Interpreter, env *Environment) (Value, error) {
	return n.val.Retain(), nil
}

// Release drops the node's own permanent reference to its literal,
// called when the enclosing closure tree is torn down.
func (n *IntLit) Release() { n.val.Release() }

type FloatLit struct {
	baseNode
	val *FloatValue
}

func NewFloatLit(tr *Tracker, pos lexer.Position, v float64) *FloatLit {
	lit := &FloatLit{baseNode: baseNode{pos}, val: NewFloat(tr, v)}
	lit.val.Retain()
	return lit
}

func (n *FloatLit) Execute(ip *Interpreter, env *Environment) (Value, error) {
	return n.val.Retain(), nil
}

func (n *FloatLit) Release() { n.val.Release() }

// StringLit backs both a directly-written string literal and each
// string atom inside quoted data.
type StringLit struct {
	baseNode
	val *StringValue
}

func NewStringLit(tr *Tracker, pos lexer.Position, v string) *StringLit {
	lit := &StringLit{baseNode: baseNode{pos}, val: NewString(tr, v)}
	lit.val.Retain()
	return lit
}

func (n *StringLit) Execute(ip *Interpreter, env *Environment) (Value, error) {
	return n.val.Retain(), nil
}

func (n *StringLit) Release() { n.val.Release() }

// SymbolLit produces a fresh SymbolValue on every execution: symbols
// are not interned (§9), so unlike the other literals there is no
// single preallocated instance to share.
type SymbolLit struct {
	baseNode
	Name string
}

func NewSymbolLit(pos lexer.Position, name string) *SymbolLit {
	return &SymbolLit{baseNode: baseNode{pos}, Name: name}
}

func (n *SymbolLit) Execute(ip *Interpreter, env *Environment) (Value, error) {
	return NewSymbol(ip.Tracker, n.Name).Retain(), nil
}

// VarRef looks up a variable reference by name at execution time. It is
// the only way a binding established by `define`, `lambda`, or `let`
// is ever read back.
type VarRef struct {
	baseNode
	Name string
}

func NewVarRef(pos lexer.Position, name string) *VarRef {
	return &VarRef{baseNode: baseNode{pos}, Name: name}
}

func (n *VarRef) Execute(ip *Interpreter, env *Environment) (Value, error) {
	v, ok := env.Lookup(n.Name)
	if !ok {
		return nil, unboundVariable(ip, n.Pos(), n.Name)
	}
	if _, unassigned := v.(*UnassignedValue); unassigned {
		return nil, unassignedReference(ip, n.Pos(), n.Name)
	}
	return v.Retain(), nil
}
