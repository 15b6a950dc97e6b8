package grounded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// driveStep runs a StepOp to completion using a trivial evaluator that
// treats every value as self-evaluating (adequate for exercising the
// arithmetic/comparison/logical ops, which only ever tail-call into
// literal arguments in these tests).
func driveStep(t *testing.T, op StepOp, args []value.Value) ([]value.Value, *ExecError) {
	t.Helper()
	state := op.NewState(args)
	for {
		work := op.Step(state)
		switch work.Kind {
		case WorkDone:
			return work.Results, nil
		case WorkError:
			return nil, work.Err
		case WorkEvalArg:
			state.Results[work.ArgIdx] = args[work.ArgIdx]
			state.Evaluated[work.ArgIdx] = true
		}
	}
}

func TestAdditionOverflow(t *testing.T) {
	r := NewRegistry()
	op, ok := r.Step("+")
	require.True(t, ok)

	_, err := driveStep(t, op, []value.Value{value.Long(9223372036854775807), value.Long(1)})
	require.NotNil(t, err)
	assert.Equal(t, KindArithmetic, err.Kind)
}

func TestDivisionByZero(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Step("/")
	_, err := driveStep(t, op, []value.Value{value.Long(1), value.Long(0)})
	require.NotNil(t, err)
	got := ToErrorValue(err)
	assert.Equal(t, "Division by zero", got.ErrMessage)
}

func TestModOverflowAtMinInt64(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Step("%")
	_, err := driveStep(t, op, []value.Value{value.Long(-9223372036854775808), value.Long(-1)})
	require.NotNil(t, err)
	assert.Equal(t, KindArithmetic, err.Kind)
}

func TestNumericPromotionInArithmetic(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Step("+")
	results, err := driveStep(t, op, []value.Value{value.Long(1), value.Float(2.5)})
	require.Nil(t, err)
	assert.Equal(t, value.Float(3.5), results[0])
}

func TestStrictEqualityAcrossTags(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Step("==")
	_, err := driveStep(t, op, []value.Value{value.Long(1), value.Float(1.0)})
	require.NotNil(t, err, "Long and Float must not compare equal via auto-promotion")
}

func TestOrShortCircuitsWithoutTypeCheckingSecondArg(t *testing.T) {
	op := orStep{}
	state := op.NewState([]value.Value{value.Bool(true), value.Str("x")})
	work := op.Step(state)
	assert.Equal(t, WorkEvalArg, work.Kind)
	assert.Equal(t, 0, work.ArgIdx)

	state.Results[0] = value.Bool(true)
	state.Evaluated[0] = true
	work = op.Step(state)
	require.Equal(t, WorkDone, work.Kind)
	assert.Equal(t, value.Bool(true), work.Results[0])
}

func TestOrRejectsNonBoolFirstArg(t *testing.T) {
	op := orStep{}
	state := op.NewState([]value.Value{value.Str("x"), value.Bool(true)})
	state.Results[0] = value.Str("x")
	state.Evaluated[0] = true
	work := op.Step(state)
	assert.Equal(t, WorkError, work.Kind)
}

func TestSqrtDomainError(t *testing.T) {
	r := NewRegistry()
	op, ok := r.Eager("sqrt-math")
	require.True(t, ok)

	env := environment.New(false, false, nil)
	identity := func(v value.Value, e *environment.Environment, depth int) ([]value.Value, *ExecError) {
		return []value.Value{v}, nil
	}
	results, err := op.ExecuteRaw([]value.Value{value.Float(-1)}, env, 0, identity)
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].IsError())
}

func TestIsErrorDetectsFirstResult(t *testing.T) {
	r := NewRegistry()
	op, _ := r.Eager("is-error")
	env := environment.New(false, false, nil)
	evalErrFn := func(v value.Value, e *environment.Environment, depth int) ([]value.Value, *ExecError) {
		return []value.Value{value.ErrBare("boom")}, nil
	}
	results, err := op.ExecuteRaw([]value.Value{value.Atom("x")}, env, 0, evalErrFn)
	require.Nil(t, err)
	assert.Equal(t, value.Bool(true), results[0])
}
