package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func newEnv() *environment.Environment {
	return environment.New(false, false, nil)
}

// query runs a single `!(e)` form against a fresh State and returns its
// result list.
func query(env *environment.Environment, e value.Value) []value.Value {
	st := NewState(env)
	Run([]value.Value{value.SExpr(value.Atom("!"), e)}, st)
	return st.Output[0]
}

// property 1: a literal evaluates to itself.
func TestLiteralIdempotence(t *testing.T) {
	env := newEnv()
	assert.Equal(t, []value.Value{value.Long(7)}, query(env, value.Long(7)))
	assert.Equal(t, []value.Value{value.Atom("foo")}, query(env, value.Atom("foo")))
}

// property 2: matching the same rule registered twice yields the result
// twice, in rule-registration order.
func TestRuleMultiplicity(t *testing.T) {
	rule := value.SExpr(value.Atom("="), value.SExpr(value.Atom("f"), value.Atom("$x")), value.Atom("$x"))
	call := value.SExpr(value.Atom("f"), value.Long(7))

	env1 := newEnv()
	st1 := NewState(env1)
	Run([]value.Value{rule, value.SExpr(value.Atom("!"), call)}, st1)
	assert.Equal(t, []value.Value{value.Long(7)}, st1.Output[0])

	env2 := newEnv()
	st2 := NewState(env2)
	Run([]value.Value{rule, rule, value.SExpr(value.Atom("!"), call)}, st2)
	assert.Equal(t, []value.Value{value.Long(7), value.Long(7)}, st2.Output[0])
}

// property 3: a non-deterministic sub-expression fans out through a
// grounded op, in order.
func TestNonDeterministicFanOutThroughGroundedOp(t *testing.T) {
	env := newEnv()
	g := value.SExpr(value.Atom("="), value.SExpr(value.Atom("g")), value.Long(1))
	g2 := value.SExpr(value.Atom("="), value.SExpr(value.Atom("g")), value.Long(2))
	st := NewState(env)
	Run([]value.Value{g, g2}, st)

	expr := value.SExpr(value.Atom("+"), value.SExpr(value.Atom("g")), value.Long(10))
	got := query(env, expr)
	assert.Equal(t, []value.Value{value.Long(11), value.Long(12)}, got)
}

// property 4: a pattern that fails to match produces no results, not an
// error.
func TestPatternMismatchIsEmpty(t *testing.T) {
	env := newEnv()
	letExpr := value.SExpr(value.Atom("let"),
		value.SExpr(value.Atom("pair"), value.Atom("$a"), value.Atom("$b")),
		value.SExpr(value.Atom("pair"), value.Long(1)),
		value.Atom("$a"),
	)
	got := query(env, letExpr)
	assert.Empty(t, got)
}

// property 5: Cartesian product enumeration is lexicographic in
// argument-index order.
func TestCartesianProductOrdering(t *testing.T) {
	env := newEnv()
	st := NewState(env)
	Run([]value.Value{
		value.SExpr(value.Atom("="), value.SExpr(value.Atom("a")), value.Long(1)),
		value.SExpr(value.Atom("="), value.SExpr(value.Atom("a")), value.Long(2)),
		value.SExpr(value.Atom("="), value.SExpr(value.Atom("b")), value.Long(10)),
		value.SExpr(value.Atom("="), value.SExpr(value.Atom("b")), value.Long(20)),
	}, st)

	expr := value.SExpr(value.Atom("pair"), value.SExpr(value.Atom("a")), value.SExpr(value.Atom("b")))
	got := query(env, expr)
	want := []value.Value{
		value.SExpr(value.Atom("pair"), value.Long(1), value.Long(10)),
		value.SExpr(value.Atom("pair"), value.Long(1), value.Long(20)),
		value.SExpr(value.Atom("pair"), value.Long(2), value.Long(10)),
		value.SExpr(value.Atom("pair"), value.Long(2), value.Long(20)),
	}
	assert.Equal(t, want, got)
}

// property 6: a tail-recursive rule runs to a large iteration count
// without exceeding MaxEvalDepth, since the trampoline reuses the same
// Go-stack frame across iterations.
func TestTailCallIterationBound(t *testing.T) {
	env := newEnv()
	// (= (loop $n) (if (< $n 0) done (loop (- $n 1))))
	rule := value.SExpr(value.Atom("="),
		value.SExpr(value.Atom("loop"), value.Atom("$n")),
		value.SExpr(value.Atom("if"),
			value.SExpr(value.Atom("<"), value.Atom("$n"), value.Long(0)),
			value.Atom("done"),
			value.SExpr(value.Atom("loop"), value.SExpr(value.Atom("-"), value.Atom("$n"), value.Long(1))),
		),
	)
	st := NewState(env)
	Run([]value.Value{rule}, st)

	got := query(env, value.SExpr(value.Atom("loop"), value.Long(100000)))
	assert.Equal(t, []value.Value{value.Atom("done")}, got)
}

// property 7: collapse wraps every non-deterministic result of its
// argument into a single list value.
func TestCollapse(t *testing.T) {
	env := newEnv()
	st := NewState(env)
	Run([]value.Value{
		value.SExpr(value.Atom("="), value.SExpr(value.Atom("g")), value.Long(1)),
		value.SExpr(value.Atom("="), value.SExpr(value.Atom("g")), value.Long(2)),
	}, st)

	got := query(env, value.SExpr(value.Atom("collapse"), value.SExpr(value.Atom("g"))))
	require.Len(t, got, 1)
	assert.Equal(t, value.SExpr(value.Long(1), value.Long(2)), got[0])
}

// property 8: superpose is collapse's inverse in both directions.
func TestSuperposeIsCollapseInverse(t *testing.T) {
	env := newEnv()

	collapsed := query(env, value.SExpr(value.Atom("collapse"),
		value.SExpr(value.Atom("superpose"), value.SExpr(value.Long(1), value.Long(2), value.Long(3)))))
	require.Len(t, collapsed, 1)
	assert.Equal(t, value.SExpr(value.Long(1), value.Long(2), value.Long(3)), collapsed[0])

	st := NewState(env)
	Run([]value.Value{
		value.SExpr(value.Atom("="), value.SExpr(value.Atom("h")), value.Long(1)),
		value.SExpr(value.Atom("="), value.SExpr(value.Atom("h")), value.Long(2)),
	}, st)
	superposed := query(env, value.SExpr(value.Atom("superpose"),
		value.SExpr(value.Atom("collapse"), value.SExpr(value.Atom("h")))))
	assert.Equal(t, []value.Value{value.Long(1), value.Long(2)}, superposed)
}

// property 9: a memo table caches by raw expression text, recording one
// hit and one miss for two identical lookups.
func TestMemoHit(t *testing.T) {
	env := newEnv()
	expr := value.SExpr(value.Atom("double"), value.Long(21))
	rule := value.SExpr(value.Atom("="),
		value.SExpr(value.Atom("double"), value.Atom("$n")),
		value.SExpr(value.Atom("+"), value.Atom("$n"), value.Atom("$n")),
	)
	st := NewState(env)
	Run([]value.Value{
		rule,
		value.SExpr(value.Atom("new-memo"), value.Atom("m")),
		value.SExpr(value.Atom("!"), value.SExpr(value.Atom("memo"), value.Atom("m"), expr)),
		value.SExpr(value.Atom("!"), value.SExpr(value.Atom("memo"), value.Atom("m"), expr)),
	}, st)

	assert.Equal(t, []value.Value{value.Long(42)}, st.Output[0])
	assert.Equal(t, []value.Value{value.Long(42)}, st.Output[1])

	hits, misses, ok := env.MemoStats("m")
	require.True(t, ok)
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

// property 10: arithmetic edge cases surface as Error values, not Go
// errors or panics.
func TestArithmeticEdgeCasesSurfaceAsErrorValues(t *testing.T) {
	env := newEnv()

	divByZero := query(env, value.SExpr(value.Atom("/"), value.Long(1), value.Long(0)))
	require.Len(t, divByZero, 1)
	assert.True(t, divByZero[0].IsError())

	modOverflow := query(env, value.SExpr(value.Atom("%"), value.Long(-9223372036854775808), value.Long(-1)))
	require.Len(t, modOverflow, 1)
	assert.True(t, modOverflow[0].IsError())

	addOverflow := query(env, value.SExpr(value.Atom("+"), value.Long(9223372036854775807), value.Long(1)))
	require.Len(t, addOverflow, 1)
	assert.True(t, addOverflow[0].IsError())

	sqrtDomain := query(env, value.SExpr(value.Atom("sqrt-math"), value.Float(-1)))
	require.Len(t, sqrtDomain, 1)
	assert.True(t, sqrtDomain[0].IsError())
}

// `or` short-circuits without evaluating, let alone type-checking, its
// second argument.
func TestOrShortCircuitsAtEvalLevel(t *testing.T) {
	env := newEnv()
	expr := value.SExpr(value.Atom("or"), value.Bool(true), value.SExpr(value.Atom("/"), value.Long(1), value.Long(0)))
	got := query(env, expr)
	assert.Equal(t, []value.Value{value.Bool(true)}, got)
}

// property 11: sealed variables are renamed freshly on every evaluation.
func TestSealedFreshness(t *testing.T) {
	env := newEnv()
	expr := value.SExpr(value.Atom("sealed"),
		value.SExpr(value.Atom("$x")),
		value.SExpr(value.Atom("foo"), value.Atom("$x"), value.Atom("$y")))
	a := query(env, expr)
	b := query(env, expr)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.NotEqual(t, a[0], b[0])
}

// property 12: add-atom/get-atoms round-trips a space's multiset.
func TestSpaceRoundTrip(t *testing.T) {
	env := newEnv()
	self := value.Space(environment.SelfSpaceID)
	st := NewState(env)
	Run([]value.Value{
		value.SExpr(value.Atom("add-atom"), self, value.SExpr(value.Atom("fact"), value.Long(1))),
		value.SExpr(value.Atom("add-atom"), self, value.SExpr(value.Atom("fact"), value.Long(2))),
	}, st)

	got := query(env, value.SExpr(value.Atom("get-atoms"), self))
	assert.ElementsMatch(t, []value.Value{
		value.SExpr(value.Atom("fact"), value.Long(1)),
		value.SExpr(value.Atom("fact"), value.Long(2)),
	}, got)
}

func TestIfBranchesOnTruthiness(t *testing.T) {
	env := newEnv()
	expr := value.SExpr(value.Atom("if"), value.Bool(false), value.Long(1), value.Long(2))
	assert.Equal(t, []value.Value{value.Long(2)}, query(env, expr))
}

func TestLetBindsMatchedPattern(t *testing.T) {
	env := newEnv()
	expr := value.SExpr(value.Atom("let"), value.Atom("$x"), value.Long(5),
		value.SExpr(value.Atom("+"), value.Atom("$x"), value.Long(1)))
	assert.Equal(t, []value.Value{value.Long(6)}, query(env, expr))
}

func TestChainBindsEachNonDeterministicResult(t *testing.T) {
	env := newEnv()
	st := NewState(env)
	Run([]value.Value{
		value.SExpr(value.Atom("="), value.SExpr(value.Atom("g")), value.Long(1)),
		value.SExpr(value.Atom("="), value.SExpr(value.Atom("g")), value.Long(2)),
	}, st)
	expr := value.SExpr(value.Atom("chain"), value.SExpr(value.Atom("g")), value.Atom("$r"),
		value.SExpr(value.Atom("+"), value.Atom("$r"), value.Long(100)))
	got := query(env, expr)
	assert.Equal(t, []value.Value{value.Long(101), value.Long(102)}, got)
}

func TestNewStateGetStateChangeState(t *testing.T) {
	env := newEnv()
	st := NewState(env)
	Run([]value.Value{
		value.SExpr(value.Atom("bind!"), value.Atom("&s"), value.SExpr(value.Atom("new-state"), value.Long(0))),
	}, st)

	got := query(env, value.SExpr(value.Atom("get-state"), value.Atom("&s")))
	require.Len(t, got, 1)
	assert.Equal(t, value.Long(0), got[0])

	changed := query(env, value.SExpr(value.Atom("change-state!"), value.Atom("&s"), value.Long(9)))
	require.Len(t, changed, 1)

	got2 := query(env, value.SExpr(value.Atom("get-state"), value.Atom("&s")))
	require.Len(t, got2, 1)
	assert.Equal(t, value.Long(9), got2[0])
}
