package eval

import (
	"io"

	"github.com/cwbudde/cscheme/internal/errors"
	"github.com/cwbudde/cscheme/internal/lexer"
)

// Node is a compiled closure-tree node (§3.3, §4.4). Analyze turns an
// AST into a tree of Nodes once; Execute walks that tree as many times
// as the program re-enters it (e.g. a lambda body executed on every
// call), without re-inspecting syntax.
type Node interface {
	// Execute runs the node against env and returns an owned Value, or
	// an error. ip carries the value tracker, backtrace, and output
	// writer; an Application node compiled in tail position returns a
	// tailSignal instead of recursing into apply (§4.5).
	Execute(ip *Interpreter, env *Environment) (Value, error)
	Pos() *lexer.Position
}

// baseNode embeds the source position every Node needs for error
// reporting and backtraces.
type baseNode struct {
	pos lexer.Position
}

func (n baseNode) Pos() *lexer.Position { return &n.pos }

// ModuleLoader resolves the name given to `include` to a compiled
// closure tree to run against the interpreter's global environment. It
// is an external collaborator referenced only through this interface:
// the evaluator core does not know how module source is found, parsed,
// or cached, only that Load returns a Node it can Execute (§1, §6.3).
type ModuleLoader interface {
	Load(ip *Interpreter, name string) (Node, error)
}

// Interpreter threads the mutable state a run of the evaluator needs
// through every call, instead of reaching for package-level globals —
// deliberately, so independent Interpreter values never share a
// backtrace, TCO slot, or refcount tracker (§9, "Design Notes": carry
// this as fields of an explicit context rather than process-wide
// state).
type Interpreter struct {
	Global  *Environment
	Tracker *Tracker
	Out     io.Writer
	Loader  ModuleLoader

	backtrace []errors.StackFrame

	// File is the source file name attributed to backtrace frames and
	// errors raised while running top-level code (not inside a module).
	File string
}

// NewInterpreter creates an Interpreter with a fresh Tracker and the
// global frame wired up. Builtins are installed by the caller (see
// NewStandardInterpreter in interpreter.go) so this constructor stays
// usable for interpreters that want a bare environment, e.g. tests.
func NewInterpreter(out io.Writer) *Interpreter {
	tr := NewTracker()
	global := NewEnvironment(NewFrame())
	return &Interpreter{Global: global, Tracker: tr, Out: out}
}

// pushFrame records that expr is now being evaluated, for backtraces.
// A tail call goes through replaceTailFrame instead, reusing the same
// slot rather than growing the stack on every tail call (§4.6).
func (ip *Interpreter) pushFrame(name string, pos *lexer.Position) {
	ip.backtrace = append(ip.backtrace, errors.NewStackFrame(name, ip.File, pos))
}

func (ip *Interpreter) popFrame() {
	ip.backtrace = ip.backtrace[:len(ip.backtrace)-1]
}

// replaceTailFrame substitutes the top backtrace frame in place, the
// bookkeeping counterpart of a tail call reusing its caller's stack
// slot instead of pushing a new one.
func (ip *Interpreter) replaceTailFrame(name string, pos *lexer.Position) {
	if len(ip.backtrace) == 0 {
		ip.pushFrame(name, pos)
		return
	}
	ip.backtrace[len(ip.backtrace)-1] = errors.NewStackFrame(name, ip.File, pos)
}

// Backtrace snapshots the current call stack, oldest frame first.
func (ip *Interpreter) Backtrace() errors.StackTrace {
	return append(errors.NewStackTrace(), ip.backtrace...)
}
