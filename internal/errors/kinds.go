package errors

import (
	"fmt"

	"github.com/cwbudde/cscheme/internal/lexer"
)

// Kind identifies the category of a runtime error (§7). Kinds, not Go
// types: every runtime error is a *RuntimeError carrying one of these.
type Kind int

const (
	// Syntax is reserved for parse-time errors, reported as
	// *CompilerError rather than *RuntimeError; listed here so callers
	// can switch on a single Kind space.
	Syntax Kind = iota
	UnboundVariable
	UnassignedReference
	TypeMismatch
	ArityMismatch
	BadIndex
	BadRange
	NotASequence
	IoFailure
	UserError // raised by the `error` primitive
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "Syntax"
	case UnboundVariable:
		return "UnboundVariable"
	case UnassignedReference:
		return "UnassignedReference"
	case TypeMismatch:
		return "TypeMismatch"
	case ArityMismatch:
		return "ArityMismatch"
	case BadIndex:
		return "BadIndex"
	case BadRange:
		return "BadRange"
	case NotASequence:
		return "NotASequence"
	case IoFailure:
		return "IoFailure"
	case UserError:
		return "UserError"
	default:
		return "Unknown"
	}
}

// RuntimeError is a fatal error raised while executing a closure tree. It
// carries the position of the expression that raised it (if known) and,
// once unwound past the evaluator, the backtrace of in-flight
// expressions captured at the moment it was raised.
type RuntimeError struct {
	Kind     Kind
	Message  string
	Pos      *lexer.Position
	Backtrace StackTrace
}

// Error implements the error interface with a one-line message; the
// backtrace is printed separately by the caller after the "BACKTRACE"
// banner (§6.1), not included in Error() itself.
func (e *RuntimeError) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s: %s (at %d:%d)", e.Kind, e.Message, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewRuntimeError creates a *RuntimeError of the given kind with a
// formatted message. pos may be nil when no expression position applies.
func NewRuntimeError(kind Kind, pos *lexer.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}
