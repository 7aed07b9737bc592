package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/cscheme/internal/eval"
)

func TestSentinelsAreNeverTracked(t *testing.T) {
	tr := eval.NewTracker()
	assert.Equal(t, 0, tr.Live())

	eval.Nil.Retain()
	eval.True.Retain()
	eval.False.Retain()
	eval.Unassigned.Retain()
	eval.Nil.Release()
	eval.True.Release()
	eval.False.Release()
	eval.Unassigned.Release()

	assert.Equal(t, 0, tr.Live(), "sentinel singletons never touch any Tracker")
}

func TestIntegerRetainRelease(t *testing.T) {
	tr := eval.NewTracker()
	v := eval.NewInteger(tr, 7).Retain()
	assert.Equal(t, 1, tr.Live())
	v.Retain()
	v.Release()
	assert.Equal(t, 1, tr.Live(), "still one live reference")
	v.Release()
	assert.Equal(t, 0, tr.Live())
}

func TestPairReleaseWalksListIteratively(t *testing.T) {
	tr := eval.NewTracker()
	var list eval.Value = eval.Nil
	const length = 100000
	for i := 0; i < length; i++ {
		list = eval.NewPair(tr, eval.NewInteger(tr, int64(i)).Retain(), list)
	}
	assert.Greater(t, tr.Live(), 0)
	list.Release()
	assert.Equal(t, 0, tr.Live(), "releasing a long proper list must not leak, even without recursing per element")
}

func TestBoolForReturnsSingletons(t *testing.T) {
	assert.Same(t, eval.True, eval.BoolFor(true))
	assert.Same(t, eval.False, eval.BoolFor(false))
}

func TestIsTruthyOnlyFalseIsFalse(t *testing.T) {
	tr := eval.NewTracker()
	assert.True(t, eval.IsTruthy(eval.True))
	assert.False(t, eval.IsTruthy(eval.False))
	assert.True(t, eval.IsTruthy(eval.Nil))
	n := eval.NewInteger(tr, 0).Retain()
	assert.True(t, eval.IsTruthy(n), "only #f is false; 0 is truthy")
	n.Release()
}

func TestFloatStringKeepsDecimalPoint(t *testing.T) {
	tr := eval.NewTracker()
	v := eval.NewFloat(tr, 3).Retain()
	assert.Equal(t, "3.0", v.String())
	v.Release()
}

func TestSymbolNameIsLowercaseNormalized(t *testing.T) {
	tr := eval.NewTracker()
	v := eval.NewSymbol(tr, "Hello-World").Retain()
	assert.Equal(t, "hello-world", v.String())
	v.Release()
}
