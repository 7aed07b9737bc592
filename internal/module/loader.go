// Package module implements the default eval.ModuleLoader: the bootstrap
// table `(include "name")` resolves against (§6.3). It is kept outside
// package eval deliberately, the way the evaluator core is only ever
// handed a Node to run — the core does not know or care that module
// source lives in this package as Go string constants rather than on a
// filesystem (§1, module loader as an external collaborator referenced
// only through its interface).
package module

import (
	"github.com/cwbudde/cscheme/internal/eval"
	"github.com/cwbudde/cscheme/internal/lexer"
	"github.com/cwbudde/cscheme/internal/parser"
	"github.com/cwbudde/cscheme/pkg/ident"
)

// Loader is the built-in ModuleLoader. It serves two modules out of a
// small bootstrap table: "seq", a library of list procedures written in
// the language itself, and "symbol", which installs two Go primitives
// that need host support (constructing a symbol from text).
type Loader struct {
	compiled *ident.Map[eval.Node]
	native   *ident.Map[func(ip *eval.Interpreter)]
}

// New creates a Loader with the standard bootstrap table registered.
func New() *Loader {
	l := &Loader{
		compiled: ident.NewMap[eval.Node](),
		native:   ident.NewMap[func(ip *eval.Interpreter)](),
	}
	l.native.Set("symbol", installSymbolModule)
	return l
}

// Load resolves name to a Node to execute against the interpreter's
// global environment. Module names are matched case-insensitively, like
// every other name the runtime resolves by spelling (pkg/ident). It
// caches modules: including a bootstrap module twice re-runs its cached
// closure tree (re-defining its procedures) without re-parsing it, and
// including a native module twice returns a no-op.
func (l *Loader) Load(ip *eval.Interpreter, name string) (eval.Node, error) {
	if n, ok := l.compiled.Get(name); ok {
		return n, nil
	}
	if install, ok := l.native.Get(name); ok {
		install(ip)
		n := noOp{}
		l.compiled.Set(name, n)
		return n, nil
	}
	key := ident.Normalize(name)
	source, ok := bootstrapSources[key]
	if !ok {
		return nil, eval.IOError(ip, "include: no such module %q", name)
	}
	program, errs := parser.ParseProgram(source, "<module:"+key+">")
	if len(errs) > 0 {
		return nil, eval.IOError(ip, "include %q: %s", name, errs[0])
	}
	node, err := eval.Analyze(ip.Tracker, program, "<module:"+key+">")
	if err != nil {
		return nil, err
	}
	l.compiled.Set(name, node)
	return node, nil
}

// noOp is returned for a module whose effect (installing native
// primitives) already happened the first time it was loaded.
type noOp struct{}

func (noOp) Execute(ip *eval.Interpreter, env *eval.Environment) (eval.Value, error) {
	return eval.Unassigned, nil
}
func (noOp) Pos() *lexer.Position { return nil }
