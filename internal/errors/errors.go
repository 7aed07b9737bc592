// Package errors formats interpreter diagnostics — syntax errors from the
// parser and runtime errors from the evaluator — with source context,
// line/column information, and a backtrace of in-flight expressions.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/cscheme/internal/lexer"
)

// CompilerError represents a single syntax error with position and
// source context, formatted the way the parser reports malformed input.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewCompilerError creates a new CompilerError.
func NewCompilerError(pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format formats the error with a single line of source context and a
// caret pointing at the offending column. If color is true, ANSI escapes
// highlight the caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors formats a batch of syntax errors, one after another,
// numbered when there is more than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Parsing failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FromStringErrors converts the parser's plain "message at LINE:COLUMN"
// error strings into CompilerErrors with source context attached.
func FromStringErrors(stringErrors []string, source, file string) []*CompilerError {
	out := make([]*CompilerError, 0, len(stringErrors))
	for _, errStr := range stringErrors {
		pos, message := parseErrorString(errStr)
		out = append(out, NewCompilerError(pos, message, source, file))
	}
	return out
}

func parseErrorString(errStr string) (lexer.Position, string) {
	atIndex := strings.LastIndex(errStr, " at ")
	if atIndex == -1 {
		return lexer.Position{}, errStr
	}
	posStr := errStr[atIndex+4:]
	message := strings.TrimSpace(errStr[:atIndex])

	var line, column int
	if _, err := fmt.Sscanf(posStr, "%d:%d", &line, &column); err != nil {
		return lexer.Position{}, errStr
	}
	return lexer.Position{Line: line, Column: column}, message
}
