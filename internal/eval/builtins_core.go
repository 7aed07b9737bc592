package eval

import (
	"fmt"

	"github.com/cwbudde/cscheme/internal/parser"
)

func def(ip *Interpreter, name string, fn PrimitiveFunc) {
	ip.Global.Define(name, NewPrimitive(ip.Tracker, name, fn).Retain())
}

// installBuiltins binds every procedure of §6.2, plus the #t/#f/nil
// data bindings, into ip's global frame. #t, #f, and nil are ordinary
// variables resolved by lookup like any other name, not literal syntax
// recognized at analyze time — matching the original's builtin-data
// table, which lists them alongside the primitive procedures.
func installBuiltins(ip *Interpreter) {
	ip.Global.Define("#t", True.Retain())
	ip.Global.Define("#f", False.Retain())
	ip.Global.Define("nil", Nil.Retain())
	installIO(ip)
	installPairs(ip)
	installArithmetic(ip)
	installPredicatesAndControl(ip)
}

// ---------------------------------------------------------------------
// I/O (§6.2)
// ---------------------------------------------------------------------

func installIO(ip *Interpreter) {
	def(ip, "print", func(ip *Interpreter, args []Value) (Value, error) {
		for _, a := range args {
			fmt.Fprint(ip.Out, a.String())
		}
		return Unassigned, nil
	})
	def(ip, "printn", func(ip *Interpreter, args []Value) (Value, error) {
		for _, a := range args {
			fmt.Fprint(ip.Out, a.String())
		}
		fmt.Fprintln(ip.Out)
		return Unassigned, nil
	})
	def(ip, "display", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "display", args, 1, 1); err != nil {
			return nil, err
		}
		fmt.Fprint(ip.Out, displayString(args[0]))
		return Unassigned, nil
	})
	def(ip, "newline", func(ip *Interpreter, args []Value) (Value, error) {
		fmt.Fprintln(ip.Out)
		return Unassigned, nil
	})
	def(ip, "read", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "read", args, 1, 1); err != nil {
			return nil, err
		}
		s, ok := args[0].(*StringValue)
		if !ok {
			return nil, typeMismatch(ip, nil, "read expects a string, got %s", args[0].Kind())
		}
		p := parser.NewReader(s.Val, "")
		node, ok, errs := parser.ReadOne(p)
		if len(errs) > 0 {
			return nil, typeMismatch(ip, nil, "read: %s", errs[0])
		}
		if !ok {
			return Nil, nil
		}
		compiled, err := Analyze(ip.Tracker, node, "")
		if err != nil {
			return nil, err
		}
		return compiled.Execute(ip, NewEnvironment(NewFrame()))
	})
}

// displayString renders a value the way `display` does: strings appear
// without their surrounding quotes, unlike the default String() used by
// print/printn and the REPL's value echo.
func displayString(v Value) string {
	if s, ok := v.(*StringValue); ok {
		return s.Val
	}
	return v.String()
}

// ---------------------------------------------------------------------
// Pairs and lists (§6.2)
// ---------------------------------------------------------------------

func installPairs(ip *Interpreter) {
	def(ip, "cons", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "cons", args, 2, 2); err != nil {
			return nil, err
		}
		return NewPair(ip.Tracker, args[0].Retain(), args[1].Retain()), nil
	})
	def(ip, "car", builtinCar)
	def(ip, "cdr", builtinCdr)
	for _, combo := range []string{"caar", "cadr", "cdar", "cddr", "caaar", "caadr", "cadar", "caddr", "cdaar", "cdadr", "cddar", "cdddr"} {
		combo := combo
		def(ip, combo, func(ip *Interpreter, args []Value) (Value, error) {
			if err := checkArity(ip, combo, args, 1, 1); err != nil {
				return nil, err
			}
			return applyComboAccessor(ip, combo, args[0])
		})
	}
	def(ip, "set-car!", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "set-car!", args, 2, 2); err != nil {
			return nil, err
		}
		p, ok := args[0].(*PairValue)
		if !ok {
			return nil, typeMismatch(ip, nil, "set-car! expects a pair, got %s", args[0].Kind())
		}
		p.Car.Release()
		p.Car = args[1].Retain()
		return Unassigned, nil
	})
	def(ip, "set-cdr!", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "set-cdr!", args, 2, 2); err != nil {
			return nil, err
		}
		p, ok := args[0].(*PairValue)
		if !ok {
			return nil, typeMismatch(ip, nil, "set-cdr! expects a pair, got %s", args[0].Kind())
		}
		p.Cdr.Release()
		p.Cdr = args[1].Retain()
		return Unassigned, nil
	})
	def(ip, "list", func(ip *Interpreter, args []Value) (Value, error) {
		var result Value = Nil
		for i := len(args) - 1; i >= 0; i-- {
			result = NewPair(ip.Tracker, args[i].Retain(), result)
		}
		return result, nil
	})
}

func builtinCar(ip *Interpreter, args []Value) (Value, error) {
	if err := checkArity(ip, "car", args, 1, 1); err != nil {
		return nil, err
	}
	p, ok := args[0].(*PairValue)
	if !ok {
		return nil, typeMismatch(ip, nil, "car expects a pair, got %s", args[0].Kind())
	}
	return p.Car.Retain(), nil
}

func builtinCdr(ip *Interpreter, args []Value) (Value, error) {
	if err := checkArity(ip, "cdr", args, 1, 1); err != nil {
		return nil, err
	}
	p, ok := args[0].(*PairValue)
	if !ok {
		return nil, typeMismatch(ip, nil, "cdr expects a pair, got %s", args[0].Kind())
	}
	return p.Cdr.Retain(), nil
}

// applyComboAccessor implements caar..cdddr by applying the combo's
// letters (excluding the leading 'c' and trailing 'r') right to left,
// e.g. "cadr" applies 'd' then 'a': (car (cdr x)).
func applyComboAccessor(ip *Interpreter, combo string, v Value) (Value, error) {
	ops := combo[1 : len(combo)-1]
	cur := v.Retain()
	for i := len(ops) - 1; i >= 0; i-- {
		p, ok := cur.(*PairValue)
		if !ok {
			cur.Release()
			return nil, typeMismatch(ip, nil, "%s expects a pair at each step, got %s", combo, cur.Kind())
		}
		var next Value
		if ops[i] == 'a' {
			next = p.Car.Retain()
		} else {
			next = p.Cdr.Retain()
		}
		cur.Release()
		cur = next
	}
	return cur, nil
}

func checkArity(ip *Interpreter, name string, args []Value, min, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		return arityMismatch(ip, nil, "%s expects between %d and %d argument(s), got %d", name, min, max, len(args))
	}
	return nil
}
