package grounded

import (
	"fmt"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func registerListOps(r *Registry) {
	r.RegisterEager(&carAtomOp{})
	r.RegisterEager(&cdrAtomOp{})
	r.RegisterEager(&consAtomOp{})
	r.RegisterEager(&deconsAtomOp{})
	r.RegisterEager(&sizeAtomOp{})
	r.RegisterEager(&maxAtomOp{})
	r.RegisterEager(&mapAtomOp{})
	r.RegisterEager(&filterAtomOp{})
	r.RegisterEager(&foldlAtomOp{})
}

func listElements(v value.Value) ([]value.Value, bool) {
	switch v.Kind {
	case value.KindSExpr:
		return v.Items, true
	case value.KindNil:
		return nil, true
	default:
		return nil, false
	}
}

// carAtomOp implements `(car-atom expr)`: the head of expr, evaluated
// first so `(car-atom (g))` works on g's result rather than its literal
// form.
type carAtomOp struct{}

func (carAtomOp) Name() string { return "car-atom" }

func (carAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 1 {
		return nil, IncorrectArgument(fmt.Sprintf("car-atom: expected 1 argument, got %d", len(args)))
	}
	results, err := eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(results))
	for _, r := range results {
		elems, ok := listElements(r)
		if !ok {
			out = append(out, evalerr.TypeMismatch("car-atom", "Expression", r))
			continue
		}
		if len(elems) == 0 {
			out = append(out, evalerr.New(evalerr.ClassTypeError, "car-atom expects a non-empty expression as argument").Build())
			continue
		}
		out = append(out, elems[0])
	}
	return out, nil
}

// cdrAtomOp implements `(cdr-atom expr)`: every element but the head.
type cdrAtomOp struct{}

func (cdrAtomOp) Name() string { return "cdr-atom" }

func (cdrAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 1 {
		return nil, IncorrectArgument(fmt.Sprintf("cdr-atom: expected 1 argument, got %d", len(args)))
	}
	results, err := eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(results))
	for _, r := range results {
		elems, ok := listElements(r)
		if !ok {
			out = append(out, evalerr.TypeMismatch("cdr-atom", "Expression", r))
			continue
		}
		if len(elems) == 0 {
			out = append(out, evalerr.New(evalerr.ClassTypeError, "cdr-atom expects a non-empty expression as argument").Build())
			continue
		}
		out = append(out, value.SExpr(elems[1:]...))
	}
	return out, nil
}

// consAtomOp implements `(cons-atom head tail)`: prepend head onto tail,
// fanning out over both arguments' non-deterministic results.
type consAtomOp struct{}

func (consAtomOp) Name() string { return "cons-atom" }

func (consAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 2 {
		return nil, IncorrectArgument(fmt.Sprintf("cons-atom: expected 2 arguments, got %d", len(args)))
	}
	heads, err := eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	tails, err := eval(args[1], env, depth)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(heads)*len(tails))
	for _, h := range heads {
		for _, t := range tails {
			switch t.Kind {
			case value.KindSExpr:
				items := append([]value.Value{h}, t.Items...)
				out = append(out, value.SExpr(items...))
			case value.KindNil:
				out = append(out, value.SExpr(h))
			default:
				out = append(out, evalerr.TypeMismatch("cons-atom", "Expression", t))
			}
		}
	}
	return out, nil
}

// deconsAtomOp implements `(decons-atom expr)`: split expr into a
// `(head tail)` pair. An empty expression is a non-deterministic failure
// (contributes no result), not an Error, matching the original
// evaluator's HE-compatible silent-failure behavior for this case.
type deconsAtomOp struct{}

func (deconsAtomOp) Name() string { return "decons-atom" }

func (deconsAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 1 {
		return nil, IncorrectArgument(fmt.Sprintf("decons-atom: expected 1 argument, got %d", len(args)))
	}
	results, err := eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	var out []value.Value
	for _, r := range results {
		switch r.Kind {
		case value.KindSExpr:
			if len(r.Items) == 0 {
				continue
			}
			out = append(out, value.SExpr(r.Items[0], value.SExpr(r.Items[1:]...)))
		case value.KindNil, value.KindUnit:
			continue
		default:
			out = append(out, evalerr.TypeMismatch("decons-atom", "Expression", r))
		}
	}
	return out, nil
}

// sizeAtomOp implements `(size-atom expr)`: element count.
type sizeAtomOp struct{}

func (sizeAtomOp) Name() string { return "size-atom" }

func (sizeAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 1 {
		return nil, IncorrectArgument(fmt.Sprintf("size-atom: expected 1 argument, got %d", len(args)))
	}
	results, err := eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(results))
	for _, r := range results {
		switch r.Kind {
		case value.KindSExpr:
			out = append(out, value.Long(int64(len(r.Items))))
		case value.KindNil:
			out = append(out, value.Long(0))
		default:
			out = append(out, evalerr.TypeMismatch("size-atom", "Expression", r))
		}
	}
	return out, nil
}

// maxAtomOp implements `(max-atom expr)`: the largest Long among expr's
// elements.
type maxAtomOp struct{}

func (maxAtomOp) Name() string { return "max-atom" }

func (maxAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 1 {
		return nil, IncorrectArgument(fmt.Sprintf("max-atom: expected 1 argument, got %d", len(args)))
	}
	results, err := eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(results))
	for _, r := range results {
		elems, ok := listElements(r)
		if !ok || len(elems) == 0 {
			out = append(out, evalerr.New(evalerr.ClassTypeError, "max-atom expects a non-empty expression of numbers").Build())
			continue
		}
		max := elems[0]
		bad := false
		for _, e := range elems {
			if e.Kind != value.KindLong {
				out = append(out, evalerr.TypeMismatch("max-atom", "Long", e))
				bad = true
				break
			}
			if e.Long > max.Long {
				max = e
			}
		}
		if !bad {
			out = append(out, max)
		}
	}
	return out, nil
}

func requireVariable(op string, v value.Value) (string, *ExecError) {
	if !v.IsVariable() {
		return "", WithValue(evalerr.TypeMismatch(op, "Variable", v))
	}
	return v.VariableName(), nil
}

// mapAtomOp implements `(map-atom list $var template)`: instantiate
// template with $var bound to each element of list (left unevaluated, a
// literal data list) and evaluate it, collecting one mapped element per
// input element.
type mapAtomOp struct{}

func (mapAtomOp) Name() string { return "map-atom" }

func (mapAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 3 {
		return nil, IncorrectArgument(fmt.Sprintf("map-atom: expected 3 arguments, got %d", len(args)))
	}
	name, verr := requireVariable("map-atom", args[1])
	if verr != nil {
		return nil, verr
	}
	elems, ok := listElements(args[0])
	if !ok {
		return nil, WithValue(evalerr.TypeMismatch("map-atom", "Expression", args[0]))
	}
	template := args[2]
	mapped := make([]value.Value, 0, len(elems))
	for _, elem := range elems {
		instantiated := bindings.ApplyBindings(template, bindings.Bindings{name: elem})
		results, err := eval(instantiated, env, depth)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			mapped = append(mapped, value.Nil())
			continue
		}
		if results[0].IsError() {
			return []value.Value{results[0]}, nil
		}
		mapped = append(mapped, results[0])
	}
	if len(mapped) == 0 {
		return []value.Value{value.Nil()}, nil
	}
	return []value.Value{value.SExpr(mapped...)}, nil
}

// filterAtomOp implements `(filter-atom list $var predicate)`: keep
// elements for which the instantiated predicate evaluates truthy
// (value.IsTruthy: anything but Bool(false) and Nil).
type filterAtomOp struct{}

func (filterAtomOp) Name() string { return "filter-atom" }

func (filterAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 3 {
		return nil, IncorrectArgument(fmt.Sprintf("filter-atom: expected 3 arguments, got %d", len(args)))
	}
	name, verr := requireVariable("filter-atom", args[1])
	if verr != nil {
		return nil, verr
	}
	elems, ok := listElements(args[0])
	if !ok {
		return nil, WithValue(evalerr.TypeMismatch("filter-atom", "Expression", args[0]))
	}
	predicate := args[2]
	filtered := make([]value.Value, 0, len(elems))
	for _, elem := range elems {
		instantiated := bindings.ApplyBindings(predicate, bindings.Bindings{name: elem})
		results, err := eval(instantiated, env, depth)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			continue
		}
		if results[0].IsError() {
			return []value.Value{results[0]}, nil
		}
		if results[0].IsTruthy() {
			filtered = append(filtered, elem)
		}
	}
	if len(filtered) == 0 {
		return []value.Value{value.Nil()}, nil
	}
	return []value.Value{value.SExpr(filtered...)}, nil
}

// foldlAtomOp implements `(foldl-atom list init $acc $item op)`:
// left-fold list through op, threading the running accumulator.
type foldlAtomOp struct{}

func (foldlAtomOp) Name() string { return "foldl-atom" }

func (foldlAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 5 {
		return nil, IncorrectArgument(fmt.Sprintf("foldl-atom: expected 5 arguments, got %d", len(args)))
	}
	accName, verr := requireVariable("foldl-atom", args[2])
	if verr != nil {
		return nil, verr
	}
	itemName, verr := requireVariable("foldl-atom", args[3])
	if verr != nil {
		return nil, verr
	}
	elems, ok := listElements(args[0])
	if !ok {
		return nil, WithValue(evalerr.TypeMismatch("foldl-atom", "Expression", args[0]))
	}
	operation := args[4]
	accumulator := args[1]
	for _, elem := range elems {
		instantiated := bindings.ApplyBindings(operation, bindings.Bindings{accName: accumulator, itemName: elem})
		results, err := eval(instantiated, env, depth)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			continue
		}
		if results[0].IsError() {
			return []value.Value{results[0]}, nil
		}
		accumulator = results[0]
	}
	return []value.Value{accumulator}, nil
}
