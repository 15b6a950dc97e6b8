package grounded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func atoms(names ...string) value.Value {
	items := make([]value.Value, len(names))
	for i, n := range names {
		items[i] = value.Atom(n)
	}
	return value.SExpr(items...)
}

func TestUniqueAtomPreservesFirstOccurrenceOrder(t *testing.T) {
	r := NewRegistry()
	op, ok := r.Eager("unique-atom")
	require.True(t, ok)
	env := environment.New(false, false, nil)

	results, err := op.ExecuteRaw([]value.Value{atoms("a", "b", "a", "c", "b")}, env, 0, identityEval)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, atoms("a", "b", "c"), results[0])
}

func TestUnionAtomConcatenatesWithoutDedup(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("union-atom")
	env := environment.New(false, false, nil)

	results, err := op.ExecuteRaw([]value.Value{atoms("a", "b"), atoms("b", "c")}, env, 0, identityEval)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, atoms("a", "b", "b", "c"), results[0])
}

func TestIntersectionAtomMultisetSemantics(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("intersection-atom")
	env := environment.New(false, false, nil)

	left := atoms("a", "b", "c", "c")
	right := atoms("b", "c", "c", "c", "d")
	results, err := op.ExecuteRaw([]value.Value{left, right}, env, 0, identityEval)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, atoms("b", "c", "c"), results[0])
}

func TestSubtractionAtomMultisetSemantics(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("subtraction-atom")
	env := environment.New(false, false, nil)

	left := atoms("a", "b", "b", "c")
	right := atoms("b", "c", "c", "d")
	results, err := op.ExecuteRaw([]value.Value{left, right}, env, 0, identityEval)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, atoms("a", "b"), results[0])
}
