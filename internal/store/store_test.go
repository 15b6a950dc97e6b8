package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func fact(head string, items ...value.Value) value.Value {
	return value.SExpr(append([]value.Value{value.Atom(head)}, items...)...)
}

func TestAddAndExists(t *testing.T) {
	s := New(false)
	s.Add(fact("likes", value.Atom("alice"), value.Atom("bob")))

	assert.True(t, s.Exists(fact("likes", value.Atom("alice"), value.Atom("bob"))))
	assert.False(t, s.Exists(fact("likes", value.Atom("bob"), value.Atom("alice"))))
}

func TestQueryWithVariableBinding(t *testing.T) {
	s := New(false)
	s.Add(fact("likes", value.Atom("alice"), value.Atom("bob")))
	s.Add(fact("likes", value.Atom("alice"), value.Atom("carol")))

	var got []value.Value
	s.Query(fact("likes", value.Atom("alice"), value.Atom("$who")), func(b bindings.Bindings) bool {
		got = append(got, b["who"])
		return true
	})
	assert.Len(t, got, 2)
}

func TestQueryEarlyStop(t *testing.T) {
	s := New(false)
	s.Add(fact("likes", value.Atom("alice"), value.Atom("bob")))
	s.Add(fact("likes", value.Atom("alice"), value.Atom("carol")))

	count := 0
	s.Query(fact("likes", value.Atom("alice"), value.Atom("$who")), func(b bindings.Bindings) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestMultiplicitySemantics(t *testing.T) {
	s := New(false)
	f := fact("p", value.Long(1))
	s.Add(f)
	s.Add(f)
	assert.Equal(t, 2, s.Len())

	s.Remove(f)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Exists(f))

	s.Remove(f)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Exists(f))
}

func TestRemoveNonexistentIsNoop(t *testing.T) {
	s := New(false)
	s.Remove(fact("p", value.Long(1)))
	assert.Equal(t, 0, s.Len())
}

func TestHeadIndexPrefiltersDistinctHeads(t *testing.T) {
	s := New(false)
	s.Add(fact("p", value.Long(1)))
	s.Add(fact("q", value.Long(1)))

	var heads []string
	s.Query(fact("p", value.Atom("$x")), func(b bindings.Bindings) bool {
		heads = append(heads, "p")
		return true
	})
	assert.Equal(t, []string{"p"}, heads)
}

func TestQueryFullScanWhenHeadIsVariable(t *testing.T) {
	s := New(false)
	s.Add(fact("p", value.Long(1)))
	s.Add(fact("q", value.Long(2)))

	var count int
	s.Query(value.SExpr(value.Atom("$f"), value.Atom("$x")), func(b bindings.Bindings) bool {
		count++
		return true
	})
	assert.Equal(t, 2, count)
}

func TestHeadInfoOnStore(t *testing.T) {
	s := New(false)
	head, arity, ok := s.HeadInfo(fact("p", value.Long(1), value.Long(2)))
	assert.True(t, ok)
	assert.Equal(t, 2, arity)
	assert.NotEmpty(t, head)
}

func TestOverflowFallbackForWideExpressions(t *testing.T) {
	s := New(false)
	items := make([]value.Value, 0, 70)
	items = append(items, value.Atom("wide"))
	for i := 0; i < 70; i++ {
		items = append(items, value.Long(int64(i)))
	}
	wide := value.SExpr(items...)

	s.Add(wide)
	assert.True(t, s.Exists(wide))
	assert.Equal(t, 1, s.Len())

	s.Remove(wide)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Exists(wide))
}

func TestIterVisitsEveryStoredCopy(t *testing.T) {
	s := New(false)
	s.Add(fact("p", value.Long(1)))
	s.Add(fact("p", value.Long(1)))
	s.Add(fact("q", value.Long(2)))

	count := 0
	s.Iter(func(value.Value) bool {
		count++
		return true
	})
	assert.Equal(t, 3, count)
}

func TestInternedSymbolsRoundTripThroughStore(t *testing.T) {
	s := New(true)
	longSymbol := ""
	for i := 0; i < 80; i++ {
		longSymbol += "x"
	}
	f := fact(longSymbol, value.Long(1))
	s.Add(f)
	assert.True(t, s.Exists(f))
}
