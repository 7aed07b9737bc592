package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/cscheme/internal/eval"
)

// lookupOwned mirrors VarRef.Execute's own protocol: Lookup returns the
// binding's value without transferring ownership, so a caller that wants
// to hold (and later Release) a reference must Retain it first.
func lookupOwned(t *testing.T, get func(string) (eval.Value, bool), name string) eval.Value {
	t.Helper()
	v, ok := get(name)
	if !ok {
		t.Fatalf("lookup of %q failed", name)
	}
	return v.Retain()
}

func TestFrameDefineAndLookup(t *testing.T) {
	tr := eval.NewTracker()
	f := eval.NewFrame()
	f.Define("x", eval.NewInteger(tr, 1).Retain())

	v := lookupOwned(t, f.Lookup, "x")
	assert.Equal(t, "1", v.String())
	v.Release()
}

func TestFrameLookupIsCaseInsensitive(t *testing.T) {
	tr := eval.NewTracker()
	f := eval.NewFrame()
	f.Define("MyVar", eval.NewInteger(tr, 42).Retain())

	v := lookupOwned(t, f.Lookup, "MYVAR")
	assert.Equal(t, "42", v.String())
	v.Release()
}

func TestFrameLookupMissReportsFalse(t *testing.T) {
	f := eval.NewFrame()
	_, ok := f.Lookup("nope")
	assert.False(t, ok)
}

func TestFrameDefineOverwritesAndReleasesOldValue(t *testing.T) {
	tr := eval.NewTracker()
	f := eval.NewFrame()
	f.Define("x", eval.NewInteger(tr, 1).Retain())
	f.Define("x", eval.NewInteger(tr, 2).Retain()) // same name: replaces, releasing the old binding

	assert.Equal(t, 1, tr.Live(), "overwriting a binding must release the value it replaced")

	v := lookupOwned(t, f.Lookup, "x")
	assert.Equal(t, "2", v.String())
	v.Release()
}

func TestFrameSetExistingReportsMiss(t *testing.T) {
	tr := eval.NewTracker()
	f := eval.NewFrame()
	val := eval.NewInteger(tr, 1).Retain()
	ok := f.SetExisting("nope", val)
	assert.False(t, ok)
	val.Release()
}

func TestEnvironmentExtendDoesNotLeakIntoParent(t *testing.T) {
	tr := eval.NewTracker()
	outer := eval.NewEnvironment(eval.NewFrame())
	outer.Define("x", eval.NewInteger(tr, 1).Retain())

	inner := outer.Extend(eval.NewFrame())
	inner.Define("y", eval.NewInteger(tr, 2).Retain())

	_, ok := outer.Lookup("y")
	assert.False(t, ok, "extending must not leak the new frame's bindings into the parent")

	v := lookupOwned(t, inner.Lookup, "x")
	assert.Equal(t, "1", v.String(), "the extended environment must still see the parent's bindings")
	v.Release()
}

func TestEnvironmentSetExistingWalksOutward(t *testing.T) {
	tr := eval.NewTracker()
	outer := eval.NewEnvironment(eval.NewFrame())
	outer.Define("x", eval.NewInteger(tr, 1).Retain())
	inner := outer.Extend(eval.NewFrame())

	ok := inner.SetExisting("x", eval.NewInteger(tr, 99).Retain())
	assert.True(t, ok)

	v := lookupOwned(t, outer.Lookup, "x")
	assert.Equal(t, "99", v.String())
	v.Release()
}

func TestEnvironmentSetExistingUnboundReportsFalse(t *testing.T) {
	tr := eval.NewTracker()
	outer := eval.NewEnvironment(eval.NewFrame())
	val := eval.NewInteger(tr, 1).Retain()
	ok := outer.SetExisting("nope", val)
	assert.False(t, ok)
	val.Release()
}
