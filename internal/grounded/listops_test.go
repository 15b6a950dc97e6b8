package grounded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func identityEval(v value.Value, e *environment.Environment, depth int) ([]value.Value, *ExecError) {
	return []value.Value{v}, nil
}

func TestCarAtomEvaluatesArgumentFirst(t *testing.T) {
	r := NewRegistry()
	op, ok := r.Eager("car-atom")
	require.True(t, ok)

	env := environment.New(false, false, nil)
	list := value.SExpr(value.Long(1), value.Long(2), value.Long(3))
	evalToList := func(v value.Value, e *environment.Environment, depth int) ([]value.Value, *ExecError) {
		return []value.Value{list}, nil
	}
	results, err := op.ExecuteRaw([]value.Value{value.Atom("lst")}, env, 0, evalToList)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, value.Long(1), results[0])
}

func TestCarAtomOnEmptyIsError(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("car-atom")
	env := environment.New(false, false, nil)
	results, err := op.ExecuteRaw([]value.Value{value.Nil()}, env, 0, identityEval)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].IsError())
}

func TestCdrAtom(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("cdr-atom")
	env := environment.New(false, false, nil)
	list := value.SExpr(value.Long(1), value.Long(2), value.Long(3))
	results, err := op.ExecuteRaw([]value.Value{list}, env, 0, identityEval)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, value.SExpr(value.Long(2), value.Long(3)), results[0])
}

func TestConsAtomFansOutOverBothArgs(t *testing.T) {
	op := &consAtomOp{}
	env := environment.New(false, false, nil)
	multiHeads := func(v value.Value, e *environment.Environment, depth int) ([]value.Value, *ExecError) {
		return []value.Value{value.Long(1), value.Long(2)}, nil
	}
	multiTails := func(v value.Value, e *environment.Environment, depth int) ([]value.Value, *ExecError) {
		return []value.Value{value.SExpr(value.Long(9)), value.Nil()}, nil
	}
	callCount := 0
	eval := func(v value.Value, e *environment.Environment, depth int) ([]value.Value, *ExecError) {
		callCount++
		if callCount == 1 {
			return multiHeads(v, e, depth)
		}
		return multiTails(v, e, depth)
	}
	results, err := op.ExecuteRaw([]value.Value{value.Atom("h"), value.Atom("t")}, env, 0, eval)
	require.Nil(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, value.SExpr(value.Long(1), value.Long(9)), results[0])
	assert.Equal(t, value.SExpr(value.Long(1)), results[1])
	assert.Equal(t, value.SExpr(value.Long(2), value.Long(9)), results[2])
	assert.Equal(t, value.SExpr(value.Long(2)), results[3])
}

func TestDeconsAtomOnEmptyIsSilentFailure(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("decons-atom")
	env := environment.New(false, false, nil)
	results, err := op.ExecuteRaw([]value.Value{value.Nil()}, env, 0, identityEval)
	require.Nil(t, err)
	assert.Empty(t, results)
}

func TestDeconsAtomSplitsHeadTail(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("decons-atom")
	env := environment.New(false, false, nil)
	list := value.SExpr(value.Long(1), value.Long(2))
	results, err := op.ExecuteRaw([]value.Value{list}, env, 0, identityEval)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, value.SExpr(value.Long(1), value.SExpr(value.Long(2))), results[0])
}

func TestSizeAtom(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("size-atom")
	env := environment.New(false, false, nil)
	list := value.SExpr(value.Long(1), value.Long(2), value.Long(3))
	results, err := op.ExecuteRaw([]value.Value{list}, env, 0, identityEval)
	require.Nil(t, err)
	assert.Equal(t, value.Long(3), results[0])
}

func TestMaxAtom(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("max-atom")
	env := environment.New(false, false, nil)
	list := value.SExpr(value.Long(3), value.Long(7), value.Long(2))
	results, err := op.ExecuteRaw([]value.Value{list}, env, 0, identityEval)
	require.Nil(t, err)
	assert.Equal(t, value.Long(7), results[0])
}

func TestMaxAtomRejectsNonLong(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("max-atom")
	env := environment.New(false, false, nil)
	list := value.SExpr(value.Long(1), value.Str("x"))
	results, err := op.ExecuteRaw([]value.Value{list}, env, 0, identityEval)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].IsError())
}

func TestMapAtomInstantiatesTemplatePerElement(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("map-atom")
	env := environment.New(false, false, nil)
	list := value.SExpr(value.Long(1), value.Long(2), value.Long(3))
	template := value.SExpr(value.Atom("double"), value.Atom("$x"))
	echo := func(v value.Value, e *environment.Environment, depth int) ([]value.Value, *ExecError) {
		return []value.Value{v}, nil
	}
	results, err := op.ExecuteRaw([]value.Value{list, value.Atom("$x"), template}, env, 0, echo)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, value.SExpr(
		value.SExpr(value.Atom("double"), value.Long(1)),
		value.SExpr(value.Atom("double"), value.Long(2)),
		value.SExpr(value.Atom("double"), value.Long(3)),
	), results[0])
}

func TestMapAtomOnEmptyListReturnsNil(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("map-atom")
	env := environment.New(false, false, nil)
	results, err := op.ExecuteRaw([]value.Value{value.Nil(), value.Atom("$x"), value.Atom("$x")}, env, 0, identityEval)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, value.Nil(), results[0])
}

func TestFilterAtomKeepsTruthyElements(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("filter-atom")
	env := environment.New(false, false, nil)
	list := value.SExpr(value.Long(1), value.Long(2), value.Long(3))
	isEven := func(v value.Value, e *environment.Environment, depth int) ([]value.Value, *ExecError) {
		n := v.Items[1]
		return []value.Value{value.Bool(n.Long%2 == 0)}, nil
	}
	predicate := value.SExpr(value.Atom("even"), value.Atom("$x"))
	results, err := op.ExecuteRaw([]value.Value{list, value.Atom("$x"), predicate}, env, 0, isEven)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, value.SExpr(value.Long(2)), results[0])
}

func TestFoldlAtomAccumulates(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("foldl-atom")
	env := environment.New(false, false, nil)
	list := value.SExpr(value.Long(1), value.Long(2), value.Long(3))
	sum := func(v value.Value, e *environment.Environment, depth int) ([]value.Value, *ExecError) {
		acc, item := v.Items[1], v.Items[2]
		return []value.Value{value.Long(acc.Long + item.Long)}, nil
	}
	op2 := value.SExpr(value.Atom("+"), value.Atom("$acc"), value.Atom("$item"))
	results, err := op.ExecuteRaw([]value.Value{list, value.Long(0), value.Atom("$acc"), value.Atom("$item"), op2}, env, 0, sum)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, value.Long(6), results[0])
}
