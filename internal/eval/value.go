// Package eval implements the analyzer (AST → closure tree) and the
// evaluator that executes a closure tree against an environment. It also
// owns the runtime value model and the built-in procedures bound into the
// global environment.
package eval

import (
	"strconv"
	"strings"

	"github.com/cwbudde/cscheme/pkg/ident"
)

// Value is a runtime value (§3.1). Every kind except the four sentinel
// singletons participates in reference counting: Retain records a new
// owner, Release drops one, and the value is returned to its Tracker
// exactly once, when the count would go to zero.
type Value interface {
	Kind() string
	String() string
	Retain() Value
	Release()
}

// Tracker counts live, reference-counted values. It exists so the
// "refcount returns to the four singletons" invariant (§8) can be
// checked per-Interpreter rather than through a package-global counter,
// which would make independent interpreter instances interfere with one
// another's bookkeeping.
type Tracker struct {
	live int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker { return &Tracker{} }

func (t *Tracker) track()   { t.live++ }
func (t *Tracker) untrack() { t.live-- }

// Live returns the number of reference-counted values currently alive.
// A freshly-created Tracker, and one belonging to an Interpreter that has
// finished a run and released its result, both report 0: the four
// sentinel singletons are never tracked in the first place.
func (t *Tracker) Live() int { return t.live }

// counted is embedded by every reference-counted value kind. It is not a
// Value itself; each concrete kind implements Retain/Release in terms of
// it so the bookkeeping logic lives in one place.
type counted struct {
	rc int
	tr *Tracker
}

func newCounted(tr *Tracker) counted {
	tr.track()
	return counted{tr: tr}
}

func (c *counted) retain() {
	c.rc++
}

// release decrements the count and reports whether it reached zero (the
// caller is then responsible for releasing whatever that value itself
// owns, e.g. a pair's car and cdr, before it is reclaimed).
func (c *counted) release() bool {
	c.rc--
	if c.rc <= 0 {
		c.tr.untrack()
		return true
	}
	return false
}

// ---------------------------------------------------------------------
// IntegerValue / FloatValue
// ---------------------------------------------------------------------

// IntegerValue is a 64-bit signed integer.
type IntegerValue struct {
	counted
	Val int64
}

// NewInteger creates a tracked IntegerValue with refcount 0.
func NewInteger(tr *Tracker, v int64) *IntegerValue {
	return &IntegerValue{counted: newCounted(tr), Val: v}
}

func (v *IntegerValue) Kind() string   { return "INTEGER" }
func (v *IntegerValue) String() string { return strconv.FormatInt(v.Val, 10) }
func (v *IntegerValue) Retain() Value  { v.retain(); return v }
func (v *IntegerValue) Release()       { v.release() }

// FloatValue is an IEEE-754 double.
type FloatValue struct {
	counted
	Val float64
}

// NewFloat creates a tracked FloatValue with refcount 0.
func NewFloat(tr *Tracker, v float64) *FloatValue {
	return &FloatValue{counted: newCounted(tr), Val: v}
}

func (v *FloatValue) Kind() string   { return "FLOAT" }
func (v *FloatValue) String() string { return formatFloat(v.Val) }
func (v *FloatValue) Retain() Value  { v.retain(); return v }
func (v *FloatValue) Release()       { v.release() }

// formatFloat always keeps a decimal point, so `3.0` prints as `3.0` and
// not `3` — the property that lets a reader tell a float result from an
// integer one (§8, numeric promotion).
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ---------------------------------------------------------------------
// StringValue / SymbolValue
// ---------------------------------------------------------------------

// StringValue is arbitrary text, already escape-decoded by the lexer.
type StringValue struct {
	counted
	Val string
}

// NewString creates a tracked StringValue with refcount 0.
func NewString(tr *Tracker, v string) *StringValue {
	return &StringValue{counted: newCounted(tr), Val: v}
}

func (v *StringValue) Kind() string   { return "STRING" }
func (v *StringValue) String() string { return "\"" + v.Val + "\"" }
func (v *StringValue) Retain() Value  { v.retain(); return v }
func (v *StringValue) Release()       { v.release() }

// SymbolValue is an identifier produced as data (by quotation or the
// `symbol` builtin). Symbols are not interned (§9): every evaluation that
// produces one allocates a fresh value, and two symbols are `eq?` iff
// their text matches.
type SymbolValue struct {
	counted
	Name string
}

// NewSymbol creates a tracked SymbolValue with refcount 0. name is
// lowercase-normalized (§3.1): two spellings differing only in case
// produce the same symbol text, the same rule the evaluator applies to
// variable, keyword, and module names.
func NewSymbol(tr *Tracker, name string) *SymbolValue {
	return &SymbolValue{counted: newCounted(tr), Name: ident.Normalize(name)}
}

func (v *SymbolValue) Kind() string   { return "SYMBOL" }
func (v *SymbolValue) String() string { return v.Name }
func (v *SymbolValue) Retain() Value  { v.retain(); return v }
func (v *SymbolValue) Release()       { v.release() }

// ---------------------------------------------------------------------
// PairValue
// ---------------------------------------------------------------------

// PairValue is a cons cell. It owns both Car and Cdr: releasing a pair
// releases each of them exactly once.
type PairValue struct {
	counted
	Car Value
	Cdr Value
}

// NewPair creates a pair owning car and cdr. The caller transfers its
// reference to each into the new pair; it must not release them itself
// afterward.
func NewPair(tr *Tracker, car, cdr Value) *PairValue {
	return &PairValue{counted: newCounted(tr), Car: car, Cdr: cdr}
}

func (v *PairValue) Kind() string  { return "PAIR" }
func (v *PairValue) Retain() Value { v.retain(); return v }

// Release drops one reference to the pair. When that was the last
// reference, the pair in turn releases its car and cdr — list release is
// an iterative walk down Cdr rather than a recursive one, so releasing a
// very long proper list doesn't consume host stack.
func (v *PairValue) Release() {
	if !v.release() {
		return
	}
	v.Car.Release()
	cur := v.Cdr
	for {
		p, ok := cur.(*PairValue)
		if !ok {
			cur.Release()
			return
		}
		if !p.release() {
			return
		}
		p.Car.Release()
		cur = p.Cdr
	}
}

func (v *PairValue) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	cur := Value(v)
	first := true
	for {
		p, ok := cur.(*PairValue)
		if !ok {
			if _, isNil := cur.(*NilValue); !isNil {
				sb.WriteString(" . ")
				sb.WriteString(cur.String())
			}
			break
		}
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(p.Car.String())
		cur = p.Cdr
	}
	sb.WriteByte(')')
	return sb.String()
}

// ---------------------------------------------------------------------
// Sentinel singletons
// ---------------------------------------------------------------------

// NilValue is the empty list, a process-wide singleton.
type NilValue struct{}

func (v *NilValue) Kind() string   { return "NIL" }
func (v *NilValue) String() string { return "()" }
func (v *NilValue) Retain() Value  { return v }
func (v *NilValue) Release()       {}

// BoolValue is the singleton #t / #f.
type BoolValue struct {
	Val bool
}

func (v *BoolValue) Kind() string  { return "BOOL" }
func (v *BoolValue) Retain() Value { return v }
func (v *BoolValue) Release()      {}
func (v *BoolValue) String() string {
	if v.Val {
		return "#t"
	}
	return "#f"
}

// UnassignedValue is the placeholder returned for a variable looked up
// before its initializer has produced a value.
type UnassignedValue struct{}

func (v *UnassignedValue) Kind() string   { return "UNASSIGNED" }
func (v *UnassignedValue) String() string { return "**unassigned**" }
func (v *UnassignedValue) Retain() Value  { return v }
func (v *UnassignedValue) Release()       {}

// Singletons, shared by pointer identity across every Interpreter.
var (
	Nil        = &NilValue{}
	True       = &BoolValue{Val: true}
	False      = &BoolValue{Val: false}
	Unassigned = &UnassignedValue{}
)

// IsTruthy implements §3.1's truthiness rule: only False is false.
func IsTruthy(v Value) bool {
	b, ok := v.(*BoolValue)
	return !ok || b.Val
}

// BoolFor returns the singleton True or False for a Go bool.
func BoolFor(b bool) *BoolValue {
	if b {
		return True
	}
	return False
}

// ---------------------------------------------------------------------
// Procedures
// ---------------------------------------------------------------------

// PrimitiveFunc is a host-language function wrapped as a PrimitiveValue.
// It receives the already-evaluated argument values (ownership of each
// transfers to the primitive for the duration of the call; apply()
// releases them afterward unless the primitive retained one to keep).
type PrimitiveFunc func(ip *Interpreter, args []Value) (Value, error)

// PrimitiveValue wraps a host-language procedure.
type PrimitiveValue struct {
	counted
	Name string
	Fn   PrimitiveFunc
}

// NewPrimitive creates a tracked PrimitiveValue.
func NewPrimitive(tr *Tracker, name string, fn PrimitiveFunc) *PrimitiveValue {
	return &PrimitiveValue{counted: newCounted(tr), Name: name, Fn: fn}
}

func (v *PrimitiveValue) Kind() string   { return "PRIMITIVE" }
func (v *PrimitiveValue) String() string { return "#<primitive:" + v.Name + ">" }
func (v *PrimitiveValue) Retain() Value  { v.retain(); return v }
func (v *PrimitiveValue) Release()       { v.release() }

// CompoundValue is a user-defined procedure: parameters, a variadic
// flag, a compiled body, and the environment captured at the point the
// lambda was evaluated (§3.1, §4.3).
type CompoundValue struct {
	counted
	Params   []string
	Variadic bool
	Body     Node
	Env      *Environment
	Name     string // set by `define`, for backtraces and error messages; "" for anonymous lambdas
}

// NewCompound creates a tracked CompoundValue.
func NewCompound(tr *Tracker, params []string, variadic bool, body Node, env *Environment) *CompoundValue {
	return &CompoundValue{counted: newCounted(tr), Params: params, Variadic: variadic, Body: body, Env: env}
}

func (v *CompoundValue) Kind() string { return "COMPOUND" }
func (v *CompoundValue) String() string {
	if v.Name != "" {
		return "#<procedure:" + v.Name + ">"
	}
	return "#<procedure>"
}
func (v *CompoundValue) Retain() Value { v.retain(); return v }
func (v *CompoundValue) Release()      { v.release() }
