package eval

import (
	e "github.com/cwbudde/cscheme/internal/errors"
	"github.com/cwbudde/cscheme/internal/lexer"
)

// raise builds a *RuntimeError of kind and attaches the interpreter's
// current backtrace immediately. Backtraces must be captured at the
// raise site, not re-derived once the error has propagated back up to
// the toplevel: by then every enclosing call's popFrame has already
// unwound ip's call stack to empty.
func raise(ip *Interpreter, kind e.Kind, pos *lexer.Position, format string, args ...any) error {
	err := e.NewRuntimeError(kind, pos, format, args...)
	err.Backtrace = ip.Backtrace()
	return err
}

func unboundVariable(ip *Interpreter, pos *lexer.Position, name string) error {
	return raise(ip, e.UnboundVariable, pos, "unbound variable: %s", name)
}

func unassignedReference(ip *Interpreter, pos *lexer.Position, name string) error {
	return raise(ip, e.UnassignedReference, pos, "reference to unassigned variable: %s", name)
}

func typeMismatch(ip *Interpreter, pos *lexer.Position, format string, args ...any) error {
	return raise(ip, e.TypeMismatch, pos, format, args...)
}

func arityMismatch(ip *Interpreter, pos *lexer.Position, format string, args ...any) error {
	return raise(ip, e.ArityMismatch, pos, format, args...)
}

func badIndex(ip *Interpreter, pos *lexer.Position, format string, args ...any) error {
	return raise(ip, e.BadIndex, pos, format, args...)
}

func badRange(ip *Interpreter, pos *lexer.Position, format string, args ...any) error {
	return raise(ip, e.BadRange, pos, format, args...)
}

func notASequence(ip *Interpreter, pos *lexer.Position, format string, args ...any) error {
	return raise(ip, e.NotASequence, pos, format, args...)
}

func ioFailure(ip *Interpreter, pos *lexer.Position, format string, args ...any) error {
	return raise(ip, e.IoFailure, pos, format, args...)
}

func userError(ip *Interpreter, pos *lexer.Position, format string, args ...any) error {
	return raise(ip, e.UserError, pos, format, args...)
}
