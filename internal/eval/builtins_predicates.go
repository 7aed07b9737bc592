package eval

func installPredicatesAndControl(ip *Interpreter) {
	def(ip, "not", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "not", args, 1, 1); err != nil {
			return nil, err
		}
		return BoolFor(!IsTruthy(args[0])), nil
	})
	def(ip, "eq?", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "eq?", args, 2, 2); err != nil {
			return nil, err
		}
		return BoolFor(isEq(args[0], args[1])), nil
	})
	def(ip, "equal?", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "equal?", args, 2, 2); err != nil {
			return nil, err
		}
		return BoolFor(isEqual(args[0], args[1])), nil
	})
	def(ip, "string?", typePredicate(func(v Value) bool { _, ok := v.(*StringValue); return ok }))
	def(ip, "symbol?", typePredicate(func(v Value) bool { _, ok := v.(*SymbolValue); return ok }))
	def(ip, "number?", typePredicate(func(v Value) bool {
		switch v.(type) {
		case *IntegerValue, *FloatValue:
			return true
		}
		return false
	}))
	def(ip, "pair?", typePredicate(func(v Value) bool { _, ok := v.(*PairValue); return ok }))
	def(ip, "null?", typePredicate(func(v Value) bool { _, ok := v.(*NilValue); return ok }))

	def(ip, "apply", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "apply", args, 2, -1); err != nil {
			return nil, err
		}
		proc := args[0].Retain()
		flat := make([]Value, 0, len(args))
		for _, a := range args[1 : len(args)-1] {
			flat = append(flat, a.Retain())
		}
		tail := args[len(args)-1]
		items, err := listToSlice(ip, "apply", tail)
		if err != nil {
			proc.Release()
			releaseAll(flat)
			return nil, err
		}
		flat = append(flat, items...)
		return Apply(ip, proc, flat)
	})

	def(ip, "error", func(ip *Interpreter, args []Value) (Value, error) {
		msg := ""
		if len(args) > 0 {
			msg = displayString(args[0])
		}
		for _, a := range args[1:] {
			msg += " " + a.String()
		}
		return nil, userError(ip, nil, "%s", msg)
	})
}

func typePredicate(pred func(Value) bool) PrimitiveFunc {
	return func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "predicate", args, 1, 1); err != nil {
			return nil, err
		}
		return BoolFor(pred(args[0])), nil
	}
}

func isEq(a, b Value) bool {
	switch av := a.(type) {
	case *IntegerValue:
		bv, ok := b.(*IntegerValue)
		return ok && av.Val == bv.Val
	case *FloatValue:
		bv, ok := b.(*FloatValue)
		return ok && av.Val == bv.Val
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Val == bv.Val
	case *SymbolValue:
		bv, ok := b.(*SymbolValue)
		return ok && av.Name == bv.Name
	default:
		return a == b
	}
}

func isEqual(a, b Value) bool {
	ap, aok := a.(*PairValue)
	bp, bok := b.(*PairValue)
	if aok || bok {
		if !aok || !bok {
			return false
		}
		return isEqual(ap.Car, bp.Car) && isEqual(ap.Cdr, bp.Cdr)
	}
	return isEq(a, b)
}

// listToSlice walks a proper list and returns its elements without
// consuming the list itself: each returned element carries a fresh
// retained reference, as if it had been `car`ed off one at a time.
func listToSlice(ip *Interpreter, who string, v Value) ([]Value, error) {
	var out []Value
	cur := v
	for {
		switch c := cur.(type) {
		case *NilValue:
			return out, nil
		case *PairValue:
			out = append(out, c.Car.Retain())
			cur = c.Cdr
		default:
			releaseAll(out)
			return nil, notASequence(ip, nil, "%s expects a proper list, got improper tail %s", who, cur.Kind())
		}
	}
}
