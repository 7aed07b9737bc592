// Package parser turns a token stream from internal/lexer into an
// internal/ast tree. The grammar is the S-expression reader described in
// spec §4.1: atoms, parenthesized lists, and the three reader shorthands
// `'x`, `` `x ``, `,x` which expand to `(quote x)`, `(quasiquote x)`,
// `(unquote x)`.
package parser

import (
	"fmt"

	"github.com/cwbudde/cscheme/internal/ast"
	"github.com/cwbudde/cscheme/internal/lexer"
)

// Parser reads tokens from a Lexer and builds AST nodes one expression at
// a time. It keeps its own one-token lookahead; callers needing a whole
// file should use ParseProgram, and callers needing exactly one
// expression (the `read` primitive) should use ReadOne.
type Parser struct {
	l    *lexer.Lexer
	file string

	curToken  lexer.Token
	peekToken lexer.Token

	errors []string
}

// New creates a Parser reading from l. file is attached to every node
// produced, for error messages and backtraces.
func New(l *lexer.Lexer, file string) *Parser {
	p := &Parser{l: l, file: file}
	p.next()
	p.next()
	return p
}

// Errors returns every syntax error accumulated while parsing.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("%s at %d:%d", msg, pos.Line, pos.Column))
}

func (p *Parser) hasLexErrors() bool {
	for _, le := range p.l.Errors() {
		p.errors = append(p.errors, fmt.Sprintf("%s at %d:%d", le.Message, le.Pos.Line, le.Pos.Column))
	}
	return len(p.l.Errors()) > 0
}

// AtEOF reports whether the parser has reached the end of input, with no
// further expression to read.
func (p *Parser) AtEOF() bool {
	return p.curToken.Type == lexer.EOF
}

// ParseProgram consumes every top-level expression in the input,
// accumulates them as children of a synthetic expression, and prepends
// the symbol `begin` so the whole file evaluates as one implicit
// sequence (§4.1, whole-file parse). The returned node's own position is
// that of the first top-level form, or line 1 if the input is empty.
func ParseProgram(input, file string) (*ast.Expression, []string) {
	l := lexer.New(input)
	p := New(l, file)

	startPos := p.curToken.Pos
	program := ast.NewExpression(startPos, file)
	program.Append(ast.NewSymbol("begin", startPos, file))

	for p.curToken.Type != lexer.EOF {
		node := p.parseExpr()
		if node != nil {
			program.Append(node)
		}
		if len(p.errors) > 100 {
			break
		}
	}
	p.hasLexErrors()
	return program, p.errors
}

// ReadOne consumes exactly one complete expression from p and returns it.
// It is the entry point for the `read` primitive, which must stop after
// one form rather than consuming the rest of the stream. ok is false at
// end of input.
func ReadOne(p *Parser) (node ast.Node, ok bool, errs []string) {
	if p.curToken.Type == lexer.EOF {
		return nil, false, p.errors
	}
	node = p.parseExpr()
	p.hasLexErrors()
	return node, true, p.errors
}

// NewReader creates a Parser suitable for repeated ReadOne calls over a
// single input string, used to implement the `read` primitive.
func NewReader(input, file string) *Parser {
	return New(lexer.New(input), file)
}

// parseExpr parses exactly one expression (atom, list, or shorthand) and
// advances past it.
func (p *Parser) parseExpr() ast.Node {
	switch p.curToken.Type {
	case lexer.LPAREN:
		return p.parseList()
	case lexer.QUOTE:
		return p.parseShorthand("quote")
	case lexer.QUASIQUOTE:
		return p.parseShorthand("quasiquote")
	case lexer.UNQUOTE:
		return p.parseShorthand("unquote")
	case lexer.IDENT, lexer.STRING:
		sym := ast.NewSymbol(p.curToken.Literal, p.curToken.Pos, p.file)
		p.next()
		return sym
	case lexer.RPAREN:
		p.errorf(p.curToken.Pos, "unexpected ')'")
		p.next()
		return nil
	case lexer.ILLEGAL:
		p.errorf(p.curToken.Pos, "unexpected character %q", p.curToken.Literal)
		p.next()
		return nil
	default:
		p.errorf(p.curToken.Pos, "unexpected token %s", p.curToken.Type)
		p.next()
		return nil
	}
}

// parseList parses a parenthesized expression: `(` child* `)`. Reaching
// EOF before the matching `)` is a syntax error.
func (p *Parser) parseList() ast.Node {
	pos := p.curToken.Pos
	p.next() // consume '('

	expr := ast.NewExpression(pos, p.file)
	for p.curToken.Type != lexer.RPAREN {
		if p.curToken.Type == lexer.EOF {
			p.errorf(pos, "unterminated expression: missing ')'")
			return expr
		}
		child := p.parseExpr()
		if child != nil {
			expr.Append(child)
		}
	}
	p.next() // consume ')'
	return expr
}

// parseShorthand expands a reader shorthand (`'`, `` ` ``, `,`) into
// `(keyword x)` where x is the next complete expression.
func (p *Parser) parseShorthand(keyword string) ast.Node {
	pos := p.curToken.Pos
	p.next() // consume the shorthand character

	expr := ast.NewExpression(pos, p.file)
	expr.Append(ast.NewSymbol(keyword, pos, p.file))

	if p.curToken.Type == lexer.EOF {
		p.errorf(pos, "expected expression after '%s'", keyword)
		return expr
	}
	inner := p.parseExpr()
	if inner != nil {
		expr.Append(inner)
	}
	return expr
}
