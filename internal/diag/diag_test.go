package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	cerrors "github.com/cwbudde/cscheme/internal/errors"
	"github.com/cwbudde/cscheme/internal/diag"
	"github.com/cwbudde/cscheme/internal/lexer"
)

func TestRuntimeErrorJSONWithBacktrace(t *testing.T) {
	err := &cerrors.RuntimeError{
		Kind:    cerrors.TypeMismatch,
		Message: "car expects a pair, got INTEGER",
		Pos:     &lexer.Position{Line: 3, Column: 7},
		Backtrace: cerrors.StackTrace{
			cerrors.NewStackFrame("fact", "<test>", &lexer.Position{Line: 1, Column: 1}),
			cerrors.NewStackFrame("car", "<test>", &lexer.Position{Line: 3, Column: 7}),
		},
	}

	doc, jsonErr := diag.RuntimeErrorJSON(err)
	require.NoError(t, jsonErr)

	assert.Equal(t, "TypeMismatch", gjson.Get(doc, "kind").String())
	assert.Equal(t, "car expects a pair, got INTEGER", gjson.Get(doc, "message").String())
	assert.Equal(t, int64(3), gjson.Get(doc, "position.line").Int())
	assert.Equal(t, int64(7), gjson.Get(doc, "position.column").Int())
	assert.Equal(t, 2, diag.BacktraceDepth(doc))
	assert.Equal(t, "fact", gjson.Get(doc, "backtrace.0.function").String())
	assert.Equal(t, "car", gjson.Get(doc, "backtrace.1.function").String())

	// innermost is where the error was actually raised (the newest
	// frame); outermost is where the call chain began (the oldest).
	assert.Equal(t, "car", gjson.Get(doc, "innermost.function").String())
	assert.Equal(t, int64(3), gjson.Get(doc, "innermost.line").Int())
	assert.Equal(t, "fact", gjson.Get(doc, "outermost.function").String())
	assert.Equal(t, int64(1), gjson.Get(doc, "outermost.line").Int())
}

func TestRuntimeErrorJSONWithoutPositionOrBacktrace(t *testing.T) {
	err := &cerrors.RuntimeError{Kind: cerrors.UnboundVariable, Message: "unbound variable: x"}

	doc, jsonErr := diag.RuntimeErrorJSON(err)
	require.NoError(t, jsonErr)

	assert.Equal(t, "UnboundVariable", gjson.Get(doc, "kind").String())
	assert.False(t, gjson.Get(doc, "position").Exists())
	assert.Equal(t, 0, diag.BacktraceDepth(doc))
	assert.False(t, gjson.Get(doc, "innermost").Exists())
	assert.False(t, gjson.Get(doc, "outermost").Exists())
}

func TestCompilerErrorJSON(t *testing.T) {
	err := cerrors.NewCompilerError(lexer.Position{Line: 2, Column: 5}, "unexpected ')'", "(foo))", "<test>")

	doc, jsonErr := diag.CompilerErrorJSON(err)
	require.NoError(t, jsonErr)

	assert.Equal(t, "Syntax", gjson.Get(doc, "kind").String())
	assert.Equal(t, "unexpected ')'", gjson.Get(doc, "message").String())
	assert.Equal(t, int64(2), gjson.Get(doc, "position.line").Int())
	assert.Equal(t, int64(5), gjson.Get(doc, "position.column").Int())
}
