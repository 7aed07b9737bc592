package eval

import (
	"fmt"
	"io"
	"sort"

	cerrors "github.com/cwbudde/cscheme/internal/errors"
	"github.com/cwbudde/cscheme/internal/parser"
)

// NewStandardInterpreter creates an Interpreter with every builtin
// procedure bound into its global environment (§6.2) and loader wired
// up to resolve `include`.
func NewStandardInterpreter(out io.Writer, loader ModuleLoader) *Interpreter {
	ip := NewInterpreter(out)
	ip.Loader = loader
	installBuiltins(ip)
	return ip
}

// RunSource parses, analyzes, and executes a whole source file as one
// implicit `(begin ...)` (§4.1). The returned Value, if non-nil, is an
// owned reference the caller must Release when done with it (RunSource
// itself does not release the final result, since the caller usually
// wants to print or inspect it first).
func (ip *Interpreter) RunSource(source, file string) (Value, error) {
	ip.File = file
	program, perrs := parser.ParseProgram(source, file)
	if len(perrs) > 0 {
		cerrs := cerrors.FromStringErrors(perrs, source, file)
		return nil, fmt.Errorf("%s", cerrors.FormatErrors(cerrs, false))
	}
	node, err := Analyze(ip.Tracker, program, file)
	if err != nil {
		return nil, err
	}
	return node.Execute(ip, ip.Global)
}

// BuiltinNames returns every name bound in the global environment's
// outermost frame, sorted, for the CLI's --docs listing.
func (ip *Interpreter) BuiltinNames() []string {
	names := ip.Global.frames[len(ip.Global.frames)-1].Names()
	sort.Strings(names)
	return names
}

// BindArgv installs the `argc`/`argv` globals the CLI front-end exposes
// to a running script (§6.1). Each argument is classified the same way
// an atom is classified at analyze time (internal/eval/classify.go):
// integer, float, or else symbol — argv has no string element kind.
func (ip *Interpreter) BindArgv(args []string) {
	var list Value = Nil
	for i := len(args) - 1; i >= 0; i-- {
		list = NewPair(ip.Tracker, classifyArgvElement(ip.Tracker, args[i]).Retain(), list)
	}
	ip.Global.Define("argv", list)
	ip.Global.Define("argc", NewInteger(ip.Tracker, int64(len(args))).Retain())
}

func classifyArgvElement(tr *Tracker, s string) Value {
	switch {
	case isIntegerText(s):
		v, err := parseIntegerText(s)
		if err == nil {
			return NewInteger(tr, v)
		}
	case isFloatText(s):
		v, err := parseFloatText(s)
		if err == nil {
			return NewFloat(tr, v)
		}
	}
	return NewSymbol(tr, s)
}
