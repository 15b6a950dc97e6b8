package grounded

import "github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"

func registerLogical(r *Registry) {
	r.RegisterStep(andStep{})
	r.RegisterStep(orStep{})
	r.RegisterStep(notStep{})
}

func newUnaryOrBinaryState(name string, args []value.Value) *StepState {
	return &StepState{
		Op:        name,
		Args:      args,
		Results:   make([]value.Value, len(args)),
		Evaluated: make([]bool, len(args)),
	}
}

// andStep implements `and` with short-circuit semantics: a false first
// argument skips evaluating (and type-checking) the second entirely.
type andStep struct{}

func (andStep) Name() string { return "and" }
func (andStep) NewState(args []value.Value) *StepState { return newUnaryOrBinaryState("and", args) }

func (andStep) Step(s *StepState) GroundedWork {
	if len(s.Args) != 2 {
		return Fail(IncorrectArgument("and: expected 2 arguments"))
	}
	if !s.Evaluated[0] {
		return EvalArg(0)
	}
	if s.Results[0].Kind != value.KindBool {
		return Fail(Runtime("and: first argument must be Bool"))
	}
	if !s.Results[0].Bool {
		return Done(value.Bool(false))
	}
	if !s.Evaluated[1] {
		return EvalArg(1)
	}
	if s.Results[1].Kind != value.KindBool {
		return Fail(Runtime("and: second argument must be Bool"))
	}
	return Done(value.Bool(s.Results[1].Bool))
}

// orStep implements `or` with short-circuit semantics: a true first
// argument short-circuits to true without evaluating (or type-checking)
// the second — `(or True "x")` is well-typed, `(or "x" True)` is not,
// per spec.md §4.5.
type orStep struct{}

func (orStep) Name() string { return "or" }
func (orStep) NewState(args []value.Value) *StepState { return newUnaryOrBinaryState("or", args) }

func (orStep) Step(s *StepState) GroundedWork {
	if len(s.Args) != 2 {
		return Fail(IncorrectArgument("or: expected 2 arguments"))
	}
	if !s.Evaluated[0] {
		return EvalArg(0)
	}
	if s.Results[0].Kind != value.KindBool {
		return Fail(Runtime("or: first argument must be Bool"))
	}
	if s.Results[0].Bool {
		return Done(value.Bool(true))
	}
	if !s.Evaluated[1] {
		return EvalArg(1)
	}
	if s.Results[1].Kind != value.KindBool {
		return Fail(Runtime("or: second argument must be Bool"))
	}
	return Done(value.Bool(s.Results[1].Bool))
}

type notStep struct{}

func (notStep) Name() string { return "not" }
func (notStep) NewState(args []value.Value) *StepState { return newUnaryOrBinaryState("not", args) }

func (notStep) Step(s *StepState) GroundedWork {
	if len(s.Args) != 1 {
		return Fail(IncorrectArgument("not: expected 1 argument"))
	}
	if !s.Evaluated[0] {
		return EvalArg(0)
	}
	if s.Results[0].Kind != value.KindBool {
		return Fail(Runtime("not: expected Bool"))
	}
	return Done(value.Bool(!s.Results[0].Bool))
}
