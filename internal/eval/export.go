package eval

// This file exports a small surface for external ModuleLoader
// implementations (internal/module) that need to define native
// primitives the way installBuiltins does, without reaching into
// package-private helpers.

// ArityError builds the same ArityMismatch error checkArity raises,
// for a native module primitive to report its own arity violations.
func ArityError(ip *Interpreter, name string, min, max, got int) error {
	return arityMismatch(ip, nil, "%s expects between %d and %d argument(s), got %d", name, min, max, got)
}

// IOError builds the same IoFailure-kinded *errors.RuntimeError the
// evaluator's own stream primitives raise, for a ModuleLoader to report
// module-resolution and module-source failures with a kind diag.go's
// RuntimeErrorJSON can recognize (§7).
func IOError(ip *Interpreter, format string, args ...any) error {
	return ioFailure(ip, nil, format, args...)
}

// TextOf returns the textual content of a string or symbol value,
// which is what `symbol` and `symbol-append` accept to build a new
// symbol from.
func TextOf(v Value) string {
	switch s := v.(type) {
	case *StringValue:
		return s.Val
	case *SymbolValue:
		return s.Name
	default:
		return v.String()
	}
}
