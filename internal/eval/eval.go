// Package eval implements the trampolined, non-deterministic evaluator
// of spec.md §4.3: the SExpr reduction contract, tail-call handling for
// rule-match/if/let chains, the lazy-argument grounded-op dispatch, and
// the data-constructor fallback. It is the package that ties together
// internal/value, internal/bindings, internal/rules, internal/environment
// and internal/grounded, using grounded's EvalFunc injection point to
// avoid a circular import.
package eval

import (
	"os"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/grounded"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// MaxEvalDepth bounds non-tail recursion only, per spec.md §4.3: "There
// is no bound on nested reduction depth beyond heap; a sentinel
// MAX_EVAL_DEPTH (suggested 1000) bounds non-tail recursion only."
const MaxEvalDepth = 1000

var registry = grounded.NewRegistry()

var debugEval = os.Getenv("METTA_DEBUG_EVAL") != ""

// Eval reduces v to its (possibly empty, possibly multi-valued) result
// list. depth counts non-tail recursion only: the outer `for` loop below
// is the trampoline spec.md §4.3.5 requires for tail positions (the RHS
// after a single matching rule, an `if` branch, a `let` body), so a
// tail-recursive rule set runs in O(1) Go-stack frames regardless of how
// many times it recurses. Sub-expression collection and non-deterministic
// fan-out recurse through the host stack, guarded by MaxEvalDepth, instead
// of spec.md §4.3.1-§4.3.3's explicit WorkItem/Continuation vector — a
// simplification justified in DESIGN.md's internal/eval entry, since only
// the tail-call chain needs to be unbounded-depth safe (spec.md §8
// property 6) and MaxEvalDepth is exactly the sentinel spec.md §4.3
// already prescribes for every other case.
//
// Eval's second return exists solely so it satisfies grounded.EvalFunc;
// every failure this evaluator detects is surfaced as an Error value
// inside the result list (spec.md §7: "errors are values, not
// exceptions"), not as a propagated Go error.
func Eval(v value.Value, env *environment.Environment, depth int) ([]value.Value, *grounded.ExecError) {
	for {
		if depth > MaxEvalDepth {
			return []value.Value{evalerr.Generic("exceeded maximum evaluation depth", v)}, nil
		}
		v = preprocess(v, env)

		if debugEval {
			env.Logger().Debug("eval_step", "depth", depth, "expr", v.String())
		}

		if v.Kind != value.KindSExpr && v.Kind != value.KindConjunction {
			return []value.Value{v}, nil
		}
		if len(v.Items) == 0 {
			return []value.Value{v}, nil
		}

		head := v.Items[0]
		if head.Kind == value.KindAtom {
			if sf, ok := specialForms[head.Atom]; ok {
				res := sf(v, env, depth)
				if res.Tail {
					v = res.Next
					continue
				}
				return res.Results, nil
			}
			if results, handled := tryGroundedOp(head.Atom, v.Args(), env, depth); handled {
				return results, nil
			}
		}

		reduced := hybridReduce(v, env, depth)
		if matches := env.Rules().Matches(reduced); len(matches) > 0 {
			if len(matches) == 1 {
				v = bindings.ApplyBindings(matches[0].Rule.RHS, matches[0].Bindings)
				continue
			}
			var out []value.Value
			for _, m := range matches {
				sub := bindings.ApplyBindings(m.Rule.RHS, m.Bindings)
				results, _ := Eval(sub, env, depth+1)
				out = append(out, results...)
			}
			return out, nil
		}

		return evalDataConstructor(v, env, depth)
	}
}

// preprocess implements spec.md §4.3.4 step 1: resolve token bindings
// shallowly (covering both a bare `&x` token used as a whole expression,
// and one appearing as a direct child of an s-expression).
func preprocess(v value.Value, env *environment.Environment) value.Value {
	if v.Kind == value.KindAtom {
		if bound, ok := env.ResolveToken(v.Atom); ok {
			return bound
		}
		return v
	}
	if (v.Kind != value.KindSExpr && v.Kind != value.KindConjunction) || len(v.Items) == 0 {
		return v
	}
	var items []value.Value
	changed := false
	for i, it := range v.Items {
		if it.Kind == value.KindAtom {
			if bound, ok := env.ResolveToken(it.Atom); ok {
				if items == nil {
					items = append([]value.Value(nil), v.Items...)
				}
				items[i] = bound
				changed = true
				continue
			}
		}
	}
	if !changed {
		return v
	}
	out := v
	out.Items = items
	return out
}

// isGroundedHead reports whether v is an s-expression headed by a name
// registered in either grounded registry.
func isGroundedHead(v value.Value) bool {
	h := v.Head()
	if h == "" {
		return false
	}
	if _, ok := registry.Step(h); ok {
		return true
	}
	_, ok := registry.Eager(h)
	return ok
}

// hybridReduce implements spec.md §4.3.4 step 4: eagerly evaluate every
// non-head sub-expression headed by a grounded op (so e.g. `(- $n 1)`
// becomes a Long before pattern matching binds `$n` to it), leaving
// user-defined sub-expressions untouched for step 5's rule match. A
// grounded sub-expression with a non-deterministic (non-singleton) result
// is left wrapped; the data-constructor fallback's own Cartesian product
// (step 6) still reduces it correctly, just one step later.
func hybridReduce(v value.Value, env *environment.Environment, depth int) value.Value {
	if len(v.Items) < 2 {
		return v
	}
	var items []value.Value
	changed := false
	for i := 1; i < len(v.Items); i++ {
		it := v.Items[i]
		if !isGroundedHead(it) {
			continue
		}
		results, _ := Eval(it, env, depth+1)
		if len(results) != 1 {
			continue
		}
		if items == nil {
			items = append([]value.Value(nil), v.Items...)
		}
		items[i] = results[0]
		changed = true
	}
	if !changed {
		return v
	}
	out := v
	out.Items = items
	return out
}

// evalDataConstructor implements spec.md §4.3.4 step 6: evaluate every
// sub-expression (including the head), take the lazy Cartesian product
// of their result lists, retry rule matching on each evaluated tuple,
// and otherwise treat the tuple as a plain data constructor.
func evalDataConstructor(v value.Value, env *environment.Environment, depth int) ([]value.Value, *grounded.ExecError) {
	argLists := make([][]value.Value, len(v.Items))
	for i, it := range v.Items {
		results, _ := Eval(it, env, depth+1)
		argLists[i] = results
	}
	tuples := cartesianProduct(argLists)

	var out []value.Value
	for _, tuple := range tuples {
		var candidate value.Value
		if v.Kind == value.KindConjunction {
			candidate = value.Conjunction(tuple...)
		} else {
			candidate = value.SExpr(tuple...)
		}
		if matches := env.Rules().Matches(candidate); len(matches) > 0 {
			for _, m := range matches {
				sub := bindings.ApplyBindings(m.Rule.RHS, m.Bindings)
				results, _ := Eval(sub, env, depth+1)
				out = append(out, results...)
			}
			continue
		}
		out = append(out, candidate)
	}
	return out, nil
}

// tryGroundedOp implements spec.md §4.3.4 step 3 / §9's dispatch order
// "TCO registry -> eager registry": the TCO step interface is preferred
// when registered, falling through to the eager interface, and finally
// reporting unhandled (NoReduce) so the caller proceeds to rule matching.
func tryGroundedOp(name string, args []value.Value, env *environment.Environment, depth int) ([]value.Value, bool) {
	if op, ok := registry.Step(name); ok {
		if results, handled := driveStepOp(op, args, env, depth); handled {
			return results, true
		}
	}
	if op, ok := registry.Eager(name); ok {
		results, execErr := op.ExecuteRaw(args, env, depth, Eval)
		if execErr != nil {
			if execErr.Kind == grounded.KindNoReduce {
				return nil, false
			}
			return []value.Value{grounded.ToErrorValue(execErr)}, true
		}
		return results, true
	}
	return nil, false
}

// driveStepOp drives a StepOp to completion, honoring its EvalArg
// protocol lazily: an argument is evaluated (once, then cached) only
// the first time the op's Step logic actually asks for it, so `and`/`or`
// short-circuiting skips evaluating — and any side effect of evaluating
// — an argument the op never inspects (spec.md §4.5's `or` example).
// When an evaluated argument carries more than one non-deterministic
// result, the driver forks: one recursive continuation per result value,
// enumerated in index order (spec.md §5's lexicographic ordering
// guarantee), which is how `(+ (g) 10)`'s fan-out (spec.md §8 property
// 3) reaches a binary arithmetic op without the caller needing to
// pre-compute a Cartesian product up front.
func driveStepOp(op grounded.StepOp, args []value.Value, env *environment.Environment, depth int) (results []value.Value, handled bool) {
	argLists := make(map[int][]value.Value)
	state := op.NewState(args)
	out, noReduce := driveStepRec(op, state, argLists, args, env, depth)
	if noReduce {
		return nil, false
	}
	return out, true
}

func driveStepRec(op grounded.StepOp, state *grounded.StepState, argLists map[int][]value.Value, args []value.Value, env *environment.Environment, depth int) (results []value.Value, noReduce bool) {
	work := op.Step(state)
	switch work.Kind {
	case grounded.WorkDone:
		return work.Results, false
	case grounded.WorkError:
		if work.Err.Kind == grounded.KindNoReduce {
			return nil, true
		}
		return []value.Value{grounded.ToErrorValue(work.Err)}, false
	case grounded.WorkEvalArg:
		idx := work.ArgIdx
		list, ok := argLists[idx]
		if !ok {
			list, _ = Eval(args[idx], env, depth+1)
			argLists[idx] = list
		}
		if len(list) == 0 {
			return nil, false
		}
		var out []value.Value
		for _, val := range list {
			next := cloneStepState(state)
			next.Results[idx] = val
			next.Evaluated[idx] = true
			sub, nr := driveStepRec(op, next, argLists, args, env, depth)
			if nr {
				return nil, true
			}
			out = append(out, sub...)
		}
		return out, false
	default:
		return nil, false
	}
}

func cloneStepState(s *grounded.StepState) *grounded.StepState {
	results := append([]value.Value(nil), s.Results...)
	evaluated := append([]bool(nil), s.Evaluated...)
	return &grounded.StepState{Op: s.Op, Args: s.Args, Results: results, Evaluated: evaluated, Step: s.Step}
}
