package eval

import "github.com/cwbudde/cscheme/internal/lexer"

// tailCall is the trampoline's saved state for one deferred call:
// apply's own loop is the only thing that ever unwraps it (§4.5).
type tailCall struct {
	proc Value
	args []Value
	pos  *lexer.Position
}

// tailSignal wraps a pending tailCall so it can travel back up through
// the ordinary Node.Execute return channel. It is never stored in an
// environment or handed to user code; every node compiled in tail
// position either produces one (an Application) or passes one through
// unexamined (If, Sequence, And, Or) until it reaches the apply loop
// that owns the trampoline.
type tailSignal struct {
	call *tailCall
}

func (t *tailSignal) Kind() string  { return "TAIL-SIGNAL" }
func (t *tailSignal) String() string { return "#<tail-call>" }
func (t *tailSignal) Retain() Value { return t }
func (t *tailSignal) Release()      {}

// Application compiles a procedure call `(op arg...)`. Tail marks
// whether this call sits in tail position in its enclosing body: when
// true, Execute defers the call instead of invoking it immediately,
// letting the nearest apply loop reuse its own stack frame (§4.5).
type Application struct {
	baseNode
	Proc Node
	Args []Node
	Tail bool
}

func NewApplication(pos lexer.Position, proc Node, args []Node, tail bool) *Application {
	return &Application{baseNode: baseNode{pos}, Proc: proc, Args: args, Tail: tail}
}

func (n *Application) Execute(ip *Interpreter, env *Environment) (Value, error) {
	procVal, err := n.Proc.Execute(ip, env)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := a.Execute(ip, env)
		if err != nil {
			procVal.Release()
			for j := 0; j < i; j++ {
				args[j].Release()
			}
			return nil, err
		}
		args[i] = v
	}
	if n.Tail {
		return &tailSignal{call: &tailCall{proc: procVal, args: args, pos: n.Pos()}}, nil
	}
	return applyValue(ip, procVal, args, n.Pos())
}

// bindParams binds args into a fresh Frame according to proc's
// parameter list, raising ArityMismatch when the counts don't line up
// (§4.3). Ownership of each arg transfers into the frame; bindParams
// does not retain them, and releases them only when it reports an
// arity mismatch.
func bindParams(ip *Interpreter, proc *CompoundValue, args []Value, pos *lexer.Position) (*Frame, error) {
	frame := NewFrame()
	fixed := proc.Params
	if proc.Variadic {
		fixed = proc.Params[:len(proc.Params)-1]
	}
	if len(args) < len(fixed) || (!proc.Variadic && len(args) > len(fixed)) {
		releaseAll(args)
		return nil, arityMismatch(ip, pos, "procedure %s expects %d argument(s), got %d", procLabel(proc), len(fixed), len(args))
	}
	for i, name := range fixed {
		frame.Define(name, args[i])
	}
	if proc.Variadic {
		restName := proc.Params[len(proc.Params)-1]
		var rest Value = Nil
		for i := len(args) - 1; i >= len(fixed); i-- {
			rest = NewPair(ip.Tracker, args[i], rest)
		}
		frame.Define(restName, rest)
	}
	return frame, nil
}

func procLabel(proc *CompoundValue) string {
	if proc.Name != "" {
		return proc.Name
	}
	return "#<lambda>"
}

// applyValue invokes proc with args and runs the tail-call trampoline:
// each time executing a compound procedure's body yields a tailSignal
// instead of a real value, the loop rebinds proc/args to the deferred
// call and continues, rather than recursing back into applyValue. This
// is what gives self- and mutual-tail-recursion constant host stack
// (§4.5, §8 "Tail call does not grow the stack").
func applyValue(ip *Interpreter, proc Value, args []Value, pos *lexer.Position) (Value, error) {
	pushed := false
	for {
		switch p := proc.(type) {
		case *PrimitiveValue:
			ip.pushFrame(p.Name, pos)
			result, err := p.Fn(ip, args)
			ip.popFrame()
			if pushed {
				ip.popFrame()
			}
			releaseAll(args)
			p.Release()
			return result, err

		case *CompoundValue:
			frame, err := bindParams(ip, p, args, pos)
			if err != nil {
				p.Release()
				if pushed {
					ip.popFrame()
				}
				return nil, err
			}
			callEnv := p.Env.Extend(frame)
			if pushed {
				ip.replaceTailFrame(procLabel(p), pos)
			} else {
				ip.pushFrame(procLabel(p), pos)
				pushed = true
			}
			result, err := p.Body.Execute(ip, callEnv)
			if err != nil {
				ip.popFrame()
				p.Release()
				return nil, err
			}
			if sig, ok := result.(*tailSignal); ok {
				p.Release()
				proc = sig.call.proc
				args = sig.call.args
				pos = sig.call.pos
				continue
			}
			ip.popFrame()
			p.Release()
			return result, nil

		default:
			releaseAll(args)
			if pushed {
				ip.popFrame()
			}
			return nil, typeMismatch(ip, pos, "cannot apply non-procedure value %s", proc.String())
		}
	}
}

// Apply is applyValue's exported entry point, used by the `apply`
// builtin and by module primitives (map, for-each, filter, ...) that
// need to invoke a Scheme procedure value from host code.
func Apply(ip *Interpreter, proc Value, args []Value) (Value, error) {
	return applyValue(ip, proc, args, nil)
}

func releaseAll(vals []Value) {
	for _, v := range vals {
		v.Release()
	}
}
