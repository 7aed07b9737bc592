package eval

import (
	"fmt"

	"github.com/cwbudde/cscheme/internal/ast"
	cerrors "github.com/cwbudde/cscheme/internal/errors"
	"github.com/cwbudde/cscheme/internal/lexer"
	"github.com/cwbudde/cscheme/pkg/ident"
)

// Analyze compiles a parsed expression into a closure tree (§3.3, §4.2).
// It runs once per expression, regardless of how many times the
// resulting Node is later executed. file is attributed to any syntax
// error produced.
func Analyze(tr *Tracker, node ast.Node, file string) (Node, error) {
	return analyze(tr, node, file, false)
}

// analyze is the ordered-predicate dispatch table of §4.2. tail records
// whether node occupies tail position in its enclosing body; it is
// threaded into exactly the sub-positions that are themselves tail
// (both arms of `if`, the last expression of a body, a `cond` clause's
// last expression) so Application is the only node that ever needs to
// know it.
func analyze(tr *Tracker, node ast.Node, file string, tail bool) (Node, error) {
	switch n := node.(type) {
	case *ast.Symbol:
		return analyzeAtom(tr, n)
	case *ast.Expression:
		return analyzeExpression(tr, n, file, tail)
	default:
		return nil, syntaxErr(node.Pos(), file, "unrecognized syntax")
	}
}

func analyzeAtom(tr *Tracker, sym *ast.Symbol) (Node, error) {
	text := sym.Text
	switch {
	case isIntegerText(text):
		v, err := parseIntegerText(text)
		if err != nil {
			return nil, syntaxErr(sym.Pos(), sym.File(), "malformed integer literal %q", text)
		}
		return NewIntLit(tr, sym.Pos(), v), nil
	case isFloatText(text):
		v, err := parseFloatText(text)
		if err != nil {
			return nil, syntaxErr(sym.Pos(), sym.File(), "malformed float literal %q", text)
		}
		return NewFloatLit(tr, sym.Pos(), v), nil
	case isStringText(text):
		return NewStringLit(tr, sym.Pos(), unquoteStringText(text)), nil
	default:
		// #t, #f, and nil are ordinary global bindings (installBuiltins),
		// not literal syntax, so they resolve through the same VarRef
		// lookup as any other name.
		return NewVarRef(sym.Pos(), text), nil
	}
}

// keyword special forms, checked in this order ahead of application.
const (
	kwQuote      = "quote"
	kwQuasiquote = "quasiquote"
	kwUnquote    = "unquote"
	kwSetBang    = "set!"
	kwDefine     = "define"
	kwLambda     = "lambda"
	kwIf         = "if"
	kwCond       = "cond"
	kwElse       = "else"
	kwBegin      = "begin"
	kwLet        = "let"
	kwAnd        = "and"
	kwOr         = "or"
	kwInclude    = "include"
)

func analyzeExpression(tr *Tracker, expr *ast.Expression, file string, tail bool) (Node, error) {
	if expr.Len() == 0 {
		return NewNilLit(expr.Pos()), nil
	}
	if head, ok := expr.First().(*ast.Symbol); ok {
		switch ident.Normalize(head.Text) {
		case kwQuote:
			return analyzeQuote(tr, expr, file)
		case kwQuasiquote:
			return analyzeQuasiquote(tr, expr, file)
		case kwSetBang:
			return analyzeSet(tr, expr, file)
		case kwDefine:
			return analyzeDefine(tr, expr, file)
		case kwLambda:
			return analyzeLambda(tr, expr, file)
		case kwIf:
			return analyzeIf(tr, expr, file, tail)
		case kwCond:
			return analyzeCond(tr, expr, file, tail)
		case kwBegin:
			return analyzeBody(tr, expr.DropFirst(), file, tail)
		case kwLet:
			return analyzeLet(tr, expr, file, tail)
		case kwAnd:
			return analyzeAnd(tr, expr, file, tail)
		case kwOr:
			return analyzeOr(tr, expr, file, tail)
		case kwInclude:
			return analyzeInclude(expr, file)
		}
	}
	return analyzeApplication(tr, expr, file, tail)
}

func analyzeQuote(tr *Tracker, expr *ast.Expression, file string) (Node, error) {
	if expr.Len() != 2 {
		return nil, syntaxErr(expr.Pos(), file, "quote expects exactly one operand")
	}
	return quoteDatum(tr, expr.At(1))
}

func analyzeQuasiquote(tr *Tracker, expr *ast.Expression, file string) (Node, error) {
	if expr.Len() != 2 {
		return nil, syntaxErr(expr.Pos(), file, "quasiquote expects exactly one operand")
	}
	return quasiquoteDatum(tr, expr.At(1), file)
}

func analyzeSet(tr *Tracker, expr *ast.Expression, file string) (Node, error) {
	if expr.Len() != 3 {
		return nil, syntaxErr(expr.Pos(), file, "set! expects a variable and a value")
	}
	name, ok := expr.At(1).(*ast.Symbol)
	if !ok {
		return nil, syntaxErr(expr.Pos(), file, "set! target must be a symbol")
	}
	init, err := analyze(tr, expr.At(2), file, false)
	if err != nil {
		return nil, err
	}
	return NewAssignment(expr.Pos(), name.Text, init), nil
}

// analyzeDefine handles both `(define name expr)` and
// `(define (name . params) body...)`, desugaring the second form into
// the first with a Lambda initializer (§4.2, define).
func analyzeDefine(tr *Tracker, expr *ast.Expression, file string) (Node, error) {
	if expr.Len() < 3 {
		return nil, syntaxErr(expr.Pos(), file, "define expects a target and at least one body form")
	}
	switch target := expr.At(1).(type) {
	case *ast.Symbol:
		if expr.Len() != 3 {
			return nil, syntaxErr(expr.Pos(), file, "define of a variable expects exactly one value expression")
		}
		init, err := analyze(tr, expr.At(2), file, false)
		if err != nil {
			return nil, err
		}
		return NewDefinition(expr.Pos(), target.Text, init), nil

	case *ast.Expression:
		if target.Len() == 0 {
			return nil, syntaxErr(expr.Pos(), file, "define: missing procedure name")
		}
		nameSym, ok := target.First().(*ast.Symbol)
		if !ok {
			return nil, syntaxErr(expr.Pos(), file, "define: procedure name must be a symbol")
		}
		params, variadic, err := paramList(target.DropFirst(), file)
		if err != nil {
			return nil, err
		}
		body, err := analyzeBody(tr, expr.DropFirst().DropFirst(), file, true)
		if err != nil {
			return nil, err
		}
		lambda := NewLambda(expr.Pos(), params, variadic, body)
		return NewDefinition(expr.Pos(), nameSym.Text, lambda), nil

	default:
		return nil, syntaxErr(expr.Pos(), file, "define: malformed target")
	}
}

func analyzeLambda(tr *Tracker, expr *ast.Expression, file string) (Node, error) {
	if expr.Len() < 3 {
		return nil, syntaxErr(expr.Pos(), file, "lambda expects a parameter list and at least one body form")
	}
	params, variadic, err := paramListNode(expr.At(1), file)
	if err != nil {
		return nil, err
	}
	body, err := analyzeBody(tr, expr.DropFirst().DropFirst(), file, true)
	if err != nil {
		return nil, err
	}
	return NewLambda(expr.Pos(), params, variadic, body), nil
}

// paramListNode accepts either a parenthesized (possibly dotted)
// parameter list or a single bare symbol naming a rest parameter that
// collects every argument (§4.3).
func paramListNode(node ast.Node, file string) ([]string, bool, error) {
	switch n := node.(type) {
	case *ast.Symbol:
		return []string{n.Text}, true, nil
	case *ast.Expression:
		return paramList(n, file)
	default:
		return nil, false, syntaxErr(node.Pos(), file, "malformed parameter list")
	}
}

func paramList(expr *ast.Expression, file string) ([]string, bool, error) {
	elems, tailSym := splitDotted(expr.Children)
	params := make([]string, 0, len(elems)+1)
	for _, e := range elems {
		s, ok := e.(*ast.Symbol)
		if !ok {
			return nil, false, syntaxErr(e.Pos(), file, "parameter must be a symbol")
		}
		params = append(params, s.Text)
	}
	if tailSym == nil {
		return params, false, nil
	}
	rest, ok := tailSym.(*ast.Symbol)
	if !ok {
		return nil, false, syntaxErr(tailSym.Pos(), file, "rest parameter must be a symbol")
	}
	params = append(params, rest.Text)
	return params, true, nil
}

// splitDotted detects the parser's representation of a dotted list: the
// literal symbol "." appearing as the second-to-last child. It returns
// the elements before the dot and the single node after it, or a nil
// tail node if children contains no dot.
func splitDotted(children []ast.Node) (elems []ast.Node, tail ast.Node) {
	for i, c := range children {
		if s, ok := c.(*ast.Symbol); ok && s.Text == "." && i == len(children)-2 {
			return children[:i], children[i+1]
		}
	}
	return children, nil
}

func analyzeIf(tr *Tracker, expr *ast.Expression, file string, tail bool) (Node, error) {
	if expr.Len() != 3 && expr.Len() != 4 {
		return nil, syntaxErr(expr.Pos(), file, "if expects a test, a consequent, and an optional alternative")
	}
	test, err := analyze(tr, expr.At(1), file, false)
	if err != nil {
		return nil, err
	}
	then, err := analyze(tr, expr.At(2), file, tail)
	if err != nil {
		return nil, err
	}
	var els Node
	if expr.Len() == 4 {
		els, err = analyze(tr, expr.At(3), file, tail)
		if err != nil {
			return nil, err
		}
	}
	return NewIf(expr.Pos(), test, then, els), nil
}

// analyzeCond desugars `cond` into nested `if` nodes (§4.2, cond). Each
// clause's body becomes a body node (a Sequence when it holds more than
// one expression), compiled tail-sensitively the same
// way the surrounding cond is, since the last clause to match yields
// cond's own result.
func analyzeCond(tr *Tracker, expr *ast.Expression, file string, tail bool) (Node, error) {
	clauses := expr.DropFirst().Children
	return buildCondChain(tr, clauses, file, tail)
}

func buildCondChain(tr *Tracker, clauses []ast.Node, file string, tail bool) (Node, error) {
	if len(clauses) == 0 {
		return &unassignedNode{}, nil
	}
	clause, ok := clauses[0].(*ast.Expression)
	if !ok || clause.Len() == 0 {
		return nil, syntaxErr(clauses[0].Pos(), file, "malformed cond clause")
	}
	body, err := analyzeBody(tr, clause.DropFirst(), file, tail)
	if err != nil {
		return nil, err
	}
	if sym, ok := clause.First().(*ast.Symbol); ok && ident.Equal(sym.Text, kwElse) {
		return body, nil
	}
	test, err := analyze(tr, clause.First(), file, false)
	if err != nil {
		return nil, err
	}
	rest, err := buildCondChain(tr, clauses[1:], file, tail)
	if err != nil {
		return nil, err
	}
	return NewIf(clause.Pos(), test, body, rest), nil
}

// unassignedNode is returned for an exhausted cond with no matching
// clause and no else: it yields **unassigned**, same as a one-armed if
// whose test was false.
type unassignedNode struct{ baseNode }

func (n *unassignedNode) Execute(ip *Interpreter, env *Environment) (Value, error) {
	return Unassigned, nil
}

func analyzeBody(tr *Tracker, exprs *ast.Expression, file string, tail bool) (Node, error) {
	if exprs.Len() == 0 {
		return &unassignedNode{}, nil
	}
	nodes := make([]Node, exprs.Len())
	for i := 0; i < exprs.Len(); i++ {
		isLast := i == exprs.Len()-1
		n, err := analyze(tr, exprs.At(i), file, isLast && tail)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return NewSequence(exprs.Pos(), nodes), nil
}

// analyzeLet desugars `(let ((n v)...) body...)` into the immediate
// application `((lambda (n...) body...) v...)` (§4.2, let).
func analyzeLet(tr *Tracker, expr *ast.Expression, file string, tail bool) (Node, error) {
	if expr.Len() < 3 {
		return nil, syntaxErr(expr.Pos(), file, "let expects a binding list and at least one body form")
	}
	bindingsExpr, ok := expr.At(1).(*ast.Expression)
	if !ok {
		return nil, syntaxErr(expr.Pos(), file, "let bindings must be a list")
	}
	names := make([]string, bindingsExpr.Len())
	inits := make([]Node, bindingsExpr.Len())
	for i := 0; i < bindingsExpr.Len(); i++ {
		pair, ok := bindingsExpr.At(i).(*ast.Expression)
		if !ok || pair.Len() != 2 {
			return nil, syntaxErr(bindingsExpr.Pos(), file, "malformed let binding")
		}
		nameSym, ok := pair.At(0).(*ast.Symbol)
		if !ok {
			return nil, syntaxErr(pair.Pos(), file, "let binding name must be a symbol")
		}
		names[i] = nameSym.Text
		init, err := analyze(tr, pair.At(1), file, false)
		if err != nil {
			return nil, err
		}
		inits[i] = init
	}
	body, err := analyzeBody(tr, expr.DropFirst().DropFirst(), file, true)
	if err != nil {
		return nil, err
	}
	lambda := NewLambda(expr.Pos(), names, false, body)
	return NewApplication(expr.Pos(), lambda, inits, tail), nil
}

func analyzeAnd(tr *Tracker, expr *ast.Expression, file string, tail bool) (Node, error) {
	body := expr.DropFirst()
	nodes := make([]Node, body.Len())
	for i := 0; i < body.Len(); i++ {
		isLast := i == body.Len()-1
		n, err := analyze(tr, body.At(i), file, isLast && tail)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return NewAnd(expr.Pos(), nodes), nil
}

func analyzeOr(tr *Tracker, expr *ast.Expression, file string, tail bool) (Node, error) {
	body := expr.DropFirst()
	nodes := make([]Node, body.Len())
	for i := 0; i < body.Len(); i++ {
		isLast := i == body.Len()-1
		n, err := analyze(tr, body.At(i), file, isLast && tail)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return NewOr(expr.Pos(), nodes), nil
}

// analyzeInclude compiles `(include "modulename")` into an Include
// node; module resolution itself happens through the Interpreter's
// ModuleLoader at execution time, not here (§1, §6.3).
func analyzeInclude(expr *ast.Expression, file string) (Node, error) {
	if expr.Len() != 2 {
		return nil, syntaxErr(expr.Pos(), file, "include expects exactly one module name")
	}
	nameSym, ok := expr.At(1).(*ast.Symbol)
	if !ok || !isStringText(nameSym.Text) {
		return nil, syntaxErr(expr.Pos(), file, "include expects a string naming the module")
	}
	return NewInclude(expr.Pos(), unquoteStringText(nameSym.Text)), nil
}

func analyzeApplication(tr *Tracker, expr *ast.Expression, file string, tail bool) (Node, error) {
	proc, err := analyze(tr, expr.First(), file, false)
	if err != nil {
		return nil, err
	}
	rest := expr.DropFirst()
	args := make([]Node, rest.Len())
	for i := 0; i < rest.Len(); i++ {
		n, err := analyze(tr, rest.At(i), file, false)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	return NewApplication(expr.Pos(), proc, args, tail), nil
}

// ---------------------------------------------------------------------
// Quoted / quasiquoted datum compilation
// ---------------------------------------------------------------------

func quoteDatum(tr *Tracker, node ast.Node) (Node, error) {
	switch n := node.(type) {
	case *ast.Symbol:
		return quoteAtom(tr, n), nil
	case *ast.Expression:
		return quoteList(tr, n)
	default:
		return nil, syntaxErr(node.Pos(), "", "unrecognized quoted datum")
	}
}

func quoteAtom(tr *Tracker, sym *ast.Symbol) Node {
	text := sym.Text
	switch {
	case isIntegerText(text):
		v, _ := parseIntegerText(text)
		return NewIntLit(tr, sym.Pos(), v)
	case isFloatText(text):
		v, _ := parseFloatText(text)
		return NewFloatLit(tr, sym.Pos(), v)
	case isStringText(text):
		return NewStringLit(tr, sym.Pos(), unquoteStringText(text))
	default:
		// Quoting #t/#f/nil yields the symbol itself, not the global
		// binding's value, matching the original quote-to-slist pass:
		// a squoted atom that isn't numeric/string is a plain symbol.
		return NewSymbolLit(sym.Pos(), text)
	}
}

func quoteList(tr *Tracker, expr *ast.Expression) (Node, error) {
	if expr.Len() == 0 {
		return NewNilLit(expr.Pos()), nil
	}
	elemsNodes, tailNode := splitDotted(expr.Children)
	elems := make([]Node, len(elemsNodes))
	for i, e := range elemsNodes {
		n, err := quoteDatum(tr, e)
		if err != nil {
			return nil, err
		}
		elems[i] = n
	}
	var tail Node
	if tailNode != nil {
		t, err := quoteDatum(tr, tailNode)
		if err != nil {
			return nil, err
		}
		tail = t
	}
	return NewListBuilder(expr.Pos(), elems, tail), nil
}

// quasiquoteDatum compiles a quasiquoted datum, splicing in a live
// expression wherever an `(unquote x)` sub-form appears (§4.2,
// quasiquote). Nesting quasiquote inside quasiquote is not supported:
// an inner quasiquote is treated as ordinary quoted data, matching the
// common "one level deep" subset most small Schemes implement.
func quasiquoteDatum(tr *Tracker, node ast.Node, file string) (Node, error) {
	expr, ok := node.(*ast.Expression)
	if !ok {
		return quoteDatum(tr, node)
	}
	if expr.Len() == 2 {
		if head, ok := expr.First().(*ast.Symbol); ok && ident.Equal(head.Text, kwUnquote) {
			inner, err := analyze(tr, expr.At(1), file, false)
			if err != nil {
				return nil, err
			}
			return NewUnquote(expr.Pos(), inner), nil
		}
	}
	if expr.Len() == 0 {
		return NewNilLit(expr.Pos()), nil
	}
	elemsNodes, tailNode := splitDotted(expr.Children)
	elems := make([]Node, len(elemsNodes))
	for i, e := range elemsNodes {
		n, err := quasiquoteDatum(tr, e, file)
		if err != nil {
			return nil, err
		}
		elems[i] = n
	}
	var tail Node
	if tailNode != nil {
		t, err := quasiquoteDatum(tr, tailNode, file)
		if err != nil {
			return nil, err
		}
		tail = t
	}
	return NewListBuilder(expr.Pos(), elems, tail), nil
}

// syntaxErr builds a *errors.CompilerError for a malformed special
// form. The analyzer does not have the original source text handy (only
// positions), so the formatted error omits the source-context line that
// FromStringErrors attaches for parser-stage errors.
func syntaxErr(pos lexer.Position, file, format string, args ...any) error {
	return cerrors.NewCompilerError(pos, fmt.Sprintf(format, args...), "", file)
}
