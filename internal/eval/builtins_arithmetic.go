package eval

// numOf extracts a value as a float64 together with whether the
// original was exact (an IntegerValue). Mixed-type arithmetic promotes
// to float as soon as one operand is inexact (§6.2, numeric towers of
// exactly two levels: integer and float).
func numOf(ip *Interpreter, who string, v Value) (f float64, isInt bool, err error) {
	switch n := v.(type) {
	case *IntegerValue:
		return float64(n.Val), true, nil
	case *FloatValue:
		return n.Val, false, nil
	default:
		return 0, false, typeMismatch(ip, nil, "%s expects a number, got %s", who, v.Kind())
	}
}

func installArithmetic(ip *Interpreter) {
	def(ip, "+", func(ip *Interpreter, args []Value) (Value, error) {
		return foldArith(ip, "+", args, 0, func(a, b float64) float64 { return a + b })
	})
	def(ip, "-", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "-", args, 1, -1); err != nil {
			return nil, err
		}
		if len(args) == 1 {
			return negate(ip, args[0])
		}
		return foldArithFirst(ip, "-", args, func(a, b float64) float64 { return a - b })
	})
	def(ip, "*", func(ip *Interpreter, args []Value) (Value, error) {
		return foldArith(ip, "*", args, 1, func(a, b float64) float64 { return a * b })
	})
	def(ip, "/", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "/", args, 1, -1); err != nil {
			return nil, err
		}
		if len(args) == 1 {
			one := NewFloat(ip.Tracker, 1).Retain()
			return divide(ip, one, args[0])
		}
		acc := args[0].Retain()
		for _, b := range args[1:] {
			next, err := divide(ip, acc, b)
			if err != nil {
				acc.Release()
				return nil, err
			}
			acc.Release()
			acc = next
		}
		return acc, nil
	})
	def(ip, "remainder", func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, "remainder", args, 2, 2); err != nil {
			return nil, err
		}
		a, ok1 := args[0].(*IntegerValue)
		b, ok2 := args[1].(*IntegerValue)
		if !ok1 || !ok2 {
			return nil, typeMismatch(ip, nil, "remainder expects two integers")
		}
		if b.Val == 0 {
			return nil, badRange(ip, nil, "remainder: division by zero")
		}
		return NewInteger(ip.Tracker, a.Val%b.Val).Retain(), nil
	})
	def(ip, "max", func(ip *Interpreter, args []Value) (Value, error) {
		return extremum(ip, "max", args, func(a, b float64) bool { return a > b })
	})
	def(ip, "min", func(ip *Interpreter, args []Value) (Value, error) {
		return extremum(ip, "min", args, func(a, b float64) bool { return a < b })
	})

	def(ip, "=", numericCompare(ip, "=", func(a, b float64) bool { return a == b }))
	def(ip, ">", numericCompare(ip, ">", func(a, b float64) bool { return a > b }))
	def(ip, ">=", numericCompare(ip, ">=", func(a, b float64) bool { return a >= b }))
	def(ip, "<", numericCompare(ip, "<", func(a, b float64) bool { return a < b }))
	def(ip, "<=", numericCompare(ip, "<=", func(a, b float64) bool { return a <= b }))
}

func foldArith(ip *Interpreter, who string, args []Value, identity int64, op func(a, b float64) float64) (Value, error) {
	if len(args) == 0 {
		return NewInteger(ip.Tracker, identity).Retain(), nil
	}
	return foldArithFirst(ip, who, args, op)
}

func foldArithFirst(ip *Interpreter, who string, args []Value, op func(a, b float64) float64) (Value, error) {
	accF, accIsInt, err := numOf(ip, who, args[0])
	if err != nil {
		return nil, err
	}
	for _, v := range args[1:] {
		f, isInt, err := numOf(ip, who, v)
		if err != nil {
			return nil, err
		}
		accF = op(accF, f)
		accIsInt = accIsInt && isInt
	}
	if accIsInt {
		return NewInteger(ip.Tracker, int64(accF)).Retain(), nil
	}
	return NewFloat(ip.Tracker, accF).Retain(), nil
}

func negate(ip *Interpreter, v Value) (Value, error) {
	switch n := v.(type) {
	case *IntegerValue:
		return NewInteger(ip.Tracker, -n.Val).Retain(), nil
	case *FloatValue:
		return NewFloat(ip.Tracker, -n.Val).Retain(), nil
	default:
		return nil, typeMismatch(ip, nil, "- expects a number, got %s", v.Kind())
	}
}

// divide performs exact integer division when both operands are exact
// and divide evenly, otherwise promotes to float (§6.2).
func divide(ip *Interpreter, a, b Value) (Value, error) {
	ai, aIsInt := a.(*IntegerValue)
	bi, bIsInt := b.(*IntegerValue)
	if aIsInt && bIsInt {
		if bi.Val == 0 {
			return nil, badRange(ip, nil, "/: division by zero")
		}
		if ai.Val%bi.Val == 0 {
			return NewInteger(ip.Tracker, ai.Val/bi.Val).Retain(), nil
		}
		return NewFloat(ip.Tracker, float64(ai.Val)/float64(bi.Val)).Retain(), nil
	}
	af, _, err := numOf(ip, "/", a)
	if err != nil {
		return nil, err
	}
	bf, _, err := numOf(ip, "/", b)
	if err != nil {
		return nil, err
	}
	if bf == 0 {
		return nil, badRange(ip, nil, "/: division by zero")
	}
	return NewFloat(ip.Tracker, af/bf).Retain(), nil
}

func extremum(ip *Interpreter, who string, args []Value, better func(a, b float64) bool) (Value, error) {
	if err := checkArity(ip, who, args, 1, -1); err != nil {
		return nil, err
	}
	best := args[0]
	bestF, bestIsInt, err := numOf(ip, who, best)
	if err != nil {
		return nil, err
	}
	anyFloat := !bestIsInt
	for _, v := range args[1:] {
		f, isInt, err := numOf(ip, who, v)
		if err != nil {
			return nil, err
		}
		if !isInt {
			anyFloat = true
		}
		if better(f, bestF) {
			best, bestF = v, f
		}
	}
	if anyFloat {
		return NewFloat(ip.Tracker, bestF).Retain(), nil
	}
	return NewInteger(ip.Tracker, int64(bestF)).Retain(), nil
}

func numericCompare(ip *Interpreter, who string, ok func(a, b float64) bool) PrimitiveFunc {
	return func(ip *Interpreter, args []Value) (Value, error) {
		if err := checkArity(ip, who, args, 1, -1); err != nil {
			return nil, err
		}
		prev, _, err := numOf(ip, who, args[0])
		if err != nil {
			return nil, err
		}
		result := true
		for _, v := range args[1:] {
			f, _, err := numOf(ip, who, v)
			if err != nil {
				return nil, err
			}
			if !ok(prev, f) {
				result = false
			}
			prev = f
		}
		return BoolFor(result), nil
	}
}
