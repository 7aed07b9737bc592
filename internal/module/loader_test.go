package module_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/cwbudde/cscheme/internal/errors"
	"github.com/cwbudde/cscheme/internal/eval"
	"github.com/cwbudde/cscheme/internal/module"
)

func newInterp() (*eval.Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	return eval.NewStandardInterpreter(&out, module.New()), &out
}

// None of these assert a return to zero live values: include permanently
// binds its procedures into the global frame, and calling any of them
// (map, length, ...) binds a compound-procedure call frame that is never
// explicitly released (it could be captured by an escaping closure). Both
// are permanent, by-design departures from the sentinel-only baseline.

func TestIncludeSeqBindsListProcedures(t *testing.T) {
	ip, _ := newInterp()
	result, err := ip.RunSource(`(begin (include "seq") (map (lambda (x) (* x 2)) (range 0 5)))`, "<test>")
	require.NoError(t, err)
	assert.Equal(t, "(0 2 4 6 8)", result.String())
	result.Release()
}

func TestIncludeSymbolBindsNativeProcedures(t *testing.T) {
	ip, _ := newInterp()
	result, err := ip.RunSource(`(begin (include "symbol") (symbol-append (symbol "foo") "-bar"))`, "<test>")
	require.NoError(t, err)
	assert.Equal(t, "foo-bar", result.String())
	result.Release()
}

func TestIncludeIsCaseInsensitiveAndCached(t *testing.T) {
	ip, _ := newInterp()
	_, err := ip.RunSource(`(include "SEQ")`, "<test>")
	require.NoError(t, err)
	result, err := ip.RunSource(`(begin (include "seq") (length (list 1 2 3 4 5)))`, "<test>")
	require.NoError(t, err)
	assert.Equal(t, "5", result.String())
	result.Release()
}

func TestIncludeUnknownModuleIsAnError(t *testing.T) {
	ip, _ := newInterp()
	_, err := ip.RunSource(`(include "no-such-module")`, "<test>")
	require.Error(t, err)
	rerr, ok := err.(*cerrors.RuntimeError)
	require.True(t, ok, "expected *errors.RuntimeError, got %T", err)
	assert.Equal(t, cerrors.IoFailure, rerr.Kind)
}
