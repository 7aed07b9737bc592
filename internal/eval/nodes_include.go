package eval

import "github.com/cwbudde/cscheme/internal/lexer"

// Include compiles `(include "name")`. Resolving name to a closure
// tree and running it against the current global environment is
// delegated to the Interpreter's ModuleLoader (§1, §6.3): the evaluator
// core only knows it must execute whatever Node the loader hands back.
type Include struct {
	baseNode
	Name string
}

func NewInclude(pos lexer.Position, name string) *Include {
	return &Include{baseNode: baseNode{pos}, Name: name}
}

func (n *Include) Execute(ip *Interpreter, env *Environment) (Value, error) {
	if ip.Loader == nil {
		return nil, ioFailure(ip, n.Pos(), "no module loader configured, cannot include %q", n.Name)
	}
	body, err := ip.Loader.Load(ip, n.Name)
	if err != nil {
		return nil, err
	}
	return body.Execute(ip, ip.Global)
}
