package grounded

import (
	"fmt"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func registerMisc(r *Registry) {
	r.RegisterEager(&traceOp{})
	r.RegisterEager(&printlnOp{})
	r.RegisterEager(&isErrorOp{})
	r.RegisterEager(&getTypeOp{})
	r.RegisterEager(&addReductOp{})
}

// resolveSpace maps the `&self` token convention (spec.md §4.3.4 step 1:
// "merge & self -> &self") to the reserved top-level space handle, so
// grounded ops that take a space argument work whether it evaluated to
// an explicit Space value or the bare &self atom.
func resolveSpace(v value.Value) value.Value {
	if v.Kind == value.KindAtom && v.Atom == "&self" {
		return value.Space(environment.SelfSpaceID)
	}
	return v
}

// traceOp implements `(trace! label expr)` (SPEC_FULL.md §4
// supplemented features): pass-through tracing via the structured
// logger, mirroring METTA_DEBUG_EVAL without requiring the environment
// variable to be set.
type traceOp struct{}

func (traceOp) Name() string { return "trace!" }

func (traceOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 2 {
		return nil, IncorrectArgument(fmt.Sprintf("trace!: expected 2 arguments, got %d", len(args)))
	}
	results, err := eval(args[1], env, depth)
	if err != nil {
		return nil, err
	}
	env.Logger().Debug("trace!", "label", args[0].String(), "results", fmt.Sprint(results))
	return results, nil
}

// printlnOp implements `(println! expr)`.
type printlnOp struct{}

func (printlnOp) Name() string { return "println!" }

func (printlnOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 1 {
		return nil, IncorrectArgument(fmt.Sprintf("println!: expected 1 argument, got %d", len(args)))
	}
	results, err := eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	for _, v := range results {
		fmt.Println(v.String())
	}
	return []value.Value{value.Unit()}, nil
}

// isErrorOp implements `(is-error expr)` per spec.md §7: true iff the
// first evaluated result of expr is an Error.
type isErrorOp struct{}

func (isErrorOp) Name() string { return "is-error" }

func (isErrorOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 1 {
		return nil, IncorrectArgument(fmt.Sprintf("is-error: expected 1 argument, got %d", len(args)))
	}
	results, err := eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []value.Value{value.Bool(false)}, nil
	}
	return []value.Value{value.Bool(results[0].IsError())}, nil
}

// getTypeOp implements `(get-type expr)` (SPEC_FULL.md §4 supplemented
// features): queries &self for `(: expr $t)` type-assertion facts and
// returns the bound $t values, Empty if none declared.
type getTypeOp struct{}

func (getTypeOp) Name() string { return "get-type" }

func (getTypeOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 1 {
		return nil, IncorrectArgument(fmt.Sprintf("get-type: expected 1 argument, got %d", len(args)))
	}
	pattern := value.SExpr(value.Atom(":"), args[0], value.Atom("$t"))
	var out []value.Value
	env.Self().Query(pattern, func(b bindings.Bindings) bool {
		out = append(out, b["t"])
		return true
	})
	return out, nil
}

// addReductOp implements `(add-reduct space expr)`: the non-deterministic
// analogue of add-atom, adding every evaluated result of expr to space
// rather than the raw unevaluated expression.
type addReductOp struct{}

func (addReductOp) Name() string { return "add-reduct" }

func (addReductOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 2 {
		return nil, IncorrectArgument(fmt.Sprintf("add-reduct: expected 2 arguments, got %d", len(args)))
	}
	spaces, err := eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	if len(spaces) == 0 {
		return nil, Runtime("add-reduct: space argument produced no results")
	}
	handle := resolveSpace(spaces[0])
	results, err := eval(args[1], env, depth)
	if err != nil {
		return nil, err
	}
	for _, v := range results {
		if !env.AddAtom(handle, v) {
			return nil, Runtime("add-reduct: unknown space handle")
		}
	}
	return []value.Value{value.Unit()}, nil
}
