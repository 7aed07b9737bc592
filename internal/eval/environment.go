package eval

import "github.com/cwbudde/cscheme/pkg/ident"

// Frame is a single ordered sequence of (name, value) bindings with a
// fixed capacity (§3.4). It backs one lexical contour: the parameter
// list of a procedure call, a `let`'s bindings, or the toplevel. Frames
// are looked up linearly rather than through a hash map: frames are
// small (a handful of parameters, rarely more) and linear scan over a
// slice beats map overhead at that size.
const frameCapacity = 64

// Frame is not itself a Value: nothing in the builtin surface exposes a
// frame or environment to Scheme code, so it is plain Go-GC-managed
// bookkeeping rather than a member of the refcounted Value universe
// (see DESIGN.md, "Frame/Environment refcounting scope").
type Frame struct {
	names  []string
	values []Value
}

// NewFrame creates an empty frame sized for a handful of bindings; it
// grows like any slice but panics past frameCapacity, since a frame
// that large indicates a runaway `define` loop rather than legitimate
// parameter or `let` binding counts.
func NewFrame() *Frame {
	return &Frame{names: make([]string, 0, 4), values: make([]Value, 0, 4)}
}

// Define adds a new binding, or updates the value of an existing one
// with the same name. Overwriting a binding releases the value it held
// (the frame no longer owns a reference to it); val's ownership
// transfers to the frame.
func (f *Frame) Define(name string, val Value) {
	for i, n := range f.names {
		if ident.Equal(n, name) {
			f.values[i].Release()
			f.values[i] = val
			return
		}
	}
	if len(f.names) >= frameCapacity {
		panic("eval: frame capacity exceeded")
	}
	f.names = append(f.names, name)
	f.values = append(f.values, val)
}

// Lookup finds the value bound to name in this frame only. Names are
// matched case-insensitively (§3.1, symbol text is lowercase-normalized),
// the same rule pkg/ident applies to keywords and builtin names.
func (f *Frame) Lookup(name string) (Value, bool) {
	for i, n := range f.names {
		if ident.Equal(n, name) {
			return f.values[i], true
		}
	}
	return nil, false
}

// Names returns the bound names in this frame, in definition order.
func (f *Frame) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// SetExisting updates the value of an existing binding and reports
// whether the name was found. It does not create a new binding; it
// releases the value the binding held before storing val.
func (f *Frame) SetExisting(name string, val Value) bool {
	for i, n := range f.names {
		if ident.Equal(n, name) {
			f.values[i].Release()
			f.values[i] = val
			return true
		}
	}
	return false
}

// Environment is an ordered list of frames, innermost first (§3.4).
// Extending an environment never mutates the frame list in place: it
// shallow-copies the slice and prepends the new frame, so a closure
// that captured the old Environment value keeps seeing the old chain
// even after the call that extended it returns.
type Environment struct {
	frames []*Frame
}

// NewEnvironment creates an environment consisting of a single frame,
// typically used for the toplevel.
func NewEnvironment(global *Frame) *Environment {
	return &Environment{frames: []*Frame{global}}
}

// Extend returns a new Environment with frame prepended ahead of e's
// existing frames. e itself is unmodified.
func (e *Environment) Extend(frame *Frame) *Environment {
	frames := make([]*Frame, 0, len(e.frames)+1)
	frames = append(frames, frame)
	frames = append(frames, e.frames...)
	return &Environment{frames: frames}
}

// Lookup searches frames from innermost to outermost.
func (e *Environment) Lookup(name string) (Value, bool) {
	for _, f := range e.frames {
		if v, ok := f.Lookup(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds name in the innermost frame, per `define`'s scoping
// rule: it always adds to (or updates within) the current contour, it
// never reaches into an enclosing one.
func (e *Environment) Define(name string, val Value) {
	e.frames[0].Define(name, val)
}

// SetExisting walks outward from the innermost frame and updates the
// first binding of name it finds. It reports whether any frame held
// that name, which `set!` uses to raise UnboundVariable when none did.
func (e *Environment) SetExisting(name string, val Value) bool {
	for _, f := range e.frames {
		if f.SetExisting(name, val) {
			return true
		}
	}
	return false
}
