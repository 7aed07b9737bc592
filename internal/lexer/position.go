// Package lexer tokenizes Scheme source text into a flat stream of tokens
// for the parser to consume.
package lexer

import "fmt"

// Position identifies a location in source text. Column and Offset are
// tracked for richer diagnostics than the spec's minimal (filename, line)
// requirement; every AST node still exposes at least file and line through
// Position.Line.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
