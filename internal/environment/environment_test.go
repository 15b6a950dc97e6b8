package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func TestAddRuleOrFactIndexesEquations(t *testing.T) {
	e := New(false, false, nil)
	rule := value.SExpr(value.Atom("="), value.SExpr(value.Atom("f"), value.Atom("$x")), value.Atom("$x"))
	e.AddRuleOrFact(rule)

	assert.Equal(t, 1, e.Rules().Len())
	assert.True(t, e.Self().Exists(rule))
}

func TestSpaceRoundTrip(t *testing.T) {
	e := New(false, false, nil)
	s := e.NewSpace()

	fact := value.SExpr(value.Atom("p"), value.Long(1))
	require.True(t, e.AddAtom(s, fact))

	atoms, ok := e.GetAtoms(s)
	require.True(t, ok)
	assert.Len(t, atoms, 1)

	require.True(t, e.RemoveAtom(s, fact))
	atoms, _ = e.GetAtoms(s)
	assert.Empty(t, atoms)
}

func TestMatchAppliesBindingsToTemplate(t *testing.T) {
	e := New(false, false, nil)
	s := e.NewSpace()
	e.AddAtom(s, value.SExpr(value.Atom("likes"), value.Atom("alice"), value.Atom("bob")))

	results, ok := e.Match(
		s,
		value.SExpr(value.Atom("likes"), value.Atom("alice"), value.Atom("$who")),
		value.Atom("$who"),
		bindings.ApplyBindings,
	)
	require.True(t, ok)
	assert.Equal(t, []value.Value{value.Atom("bob")}, results)
}

func TestStateCellMutatesInPlace(t *testing.T) {
	e := New(false, false, nil)
	s := e.NewState(value.Long(0))

	v, ok := e.GetState(s)
	require.True(t, ok)
	assert.Equal(t, value.Long(0), v)

	require.True(t, e.ChangeState(s, value.Long(1)))
	v, _ = e.GetState(s)
	assert.Equal(t, value.Long(1), v)
}

func TestMemoHitIncrementsHitCounterOnce(t *testing.T) {
	e := New(false, false, nil)
	e.NewMemo("t", 0)

	_, ok := e.MemoLookup("t", "key")
	assert.False(t, ok)

	e.MemoStore("t", "key", []value.Value{value.Long(42)})
	results, ok := e.MemoLookup("t", "key")
	require.True(t, ok)
	assert.Equal(t, []value.Value{value.Long(42)}, results)

	hits, misses, ok := e.MemoStats("t")
	require.True(t, ok)
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestMemoLRUEviction(t *testing.T) {
	e := New(false, false, nil)
	e.NewMemo("t", 1)

	e.MemoStore("t", "a", []value.Value{value.Long(1)})
	e.MemoStore("t", "b", []value.Value{value.Long(2)})

	_, ok := e.MemoLookup("t", "a")
	assert.False(t, ok, "a should have been evicted once b pushed the table past its bound")

	v, ok := e.MemoLookup("t", "b")
	require.True(t, ok)
	assert.Equal(t, []value.Value{value.Long(2)}, v)
}

func TestBindAndResolveToken(t *testing.T) {
	e := New(false, false, nil)
	e.Bind("&self-alias", value.Long(7))

	v, ok := e.ResolveToken("&self-alias")
	require.True(t, ok)
	assert.Equal(t, value.Long(7), v)
}

func TestCloneSharesState(t *testing.T) {
	e := New(false, false, nil)
	clone := e.Clone()

	s := e.NewState(value.Long(0))
	require.True(t, clone.ChangeState(s, value.Long(99)))

	v, ok := e.GetState(s)
	require.True(t, ok)
	assert.Equal(t, value.Long(99), v)
}
