// Package ast defines the two AST node kinds the parser produces: a bare
// symbol and an ordered expression of child nodes. Every other syntactic
// distinction (literals, special forms, applications) is made later by the
// analyzer, not encoded into the AST's shape.
package ast

import (
	"strings"

	"github.com/cwbudde/cscheme/internal/lexer"
)

// Node is the common interface for both AST node kinds.
type Node interface {
	// Pos returns the node's source location.
	Pos() lexer.Position
	// File returns the source file name the parser was given ("" when
	// none was, e.g. for the `read` primitive).
	File() string
	// String renders the node back to source text. Re-parsing the result
	// of String on any AST produced by the parser yields a structurally
	// equal AST (§8, idempotent parse-print).
	String() string
}

// Symbol is a leaf node: an identifier, string literal, or number token as
// read by the lexer. Its Text is never empty once the parser has finalized
// the node.
type Symbol struct {
	Text string
	pos  lexer.Position
	file string
}

// NewSymbol constructs a Symbol node.
func NewSymbol(text string, pos lexer.Position, file string) *Symbol {
	return &Symbol{Text: text, pos: pos, file: file}
}

func (s *Symbol) Pos() lexer.Position { return s.pos }
func (s *Symbol) File() string        { return s.file }
func (s *Symbol) String() string      { return s.Text }

// Expression is an ordered sequence of child nodes: the AST's
// representation of a parenthesized form. An Expression's own position is
// that of its opening parenthesis.
type Expression struct {
	Children []Node
	pos      lexer.Position
	file     string
}

// NewExpression constructs an empty Expression node at pos.
func NewExpression(pos lexer.Position, file string) *Expression {
	return &Expression{pos: pos, file: file}
}

func (e *Expression) Pos() lexer.Position { return e.pos }
func (e *Expression) File() string        { return e.file }

// Append adds child to the end of the expression's children.
func (e *Expression) Append(child Node) {
	e.Children = append(e.Children, child)
}

// InsertFront prepends child to the expression's children.
func (e *Expression) InsertFront(child Node) {
	e.Children = append([]Node{child}, e.Children...)
}

// DropFirst returns a new Expression containing every child but the
// first. It shares the same position and file as e.
func (e *Expression) DropFirst() *Expression {
	rest := &Expression{pos: e.pos, file: e.file}
	if len(e.Children) > 1 {
		rest.Children = append([]Node(nil), e.Children[1:]...)
	}
	return rest
}

// At returns the child at index i, or nil if i is out of range.
func (e *Expression) At(i int) Node {
	if i < 0 || i >= len(e.Children) {
		return nil
	}
	return e.Children[i]
}

// Len returns the number of children.
func (e *Expression) Len() int {
	return len(e.Children)
}

// First returns the first child, or nil if the expression is empty.
// By parser convention (§4.2) this is the operator position: a special
// form keyword or the operator of an application.
func (e *Expression) First() Node {
	return e.At(0)
}

func (e *Expression) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, c := range e.Children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
