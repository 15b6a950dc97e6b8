package eval

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func init() {
	specialForms["unify"] = evalUnify
}

// evalUnify implements both `(unify p1 p2 s f)` (structural) and
// `(unify space pat s f)` (space-query), per spec.md §4.6. The two
// shapes are disambiguated by speculatively evaluating the first
// argument: if it evaluates to exactly one Space value, this is the
// space-query variant; otherwise the raw, unevaluated first/second
// arguments are unified structurally. Evaluating speculatively rather
// than inspecting p1's syntax means a variable bound to a Space also
// triggers the space-query path, which a purely syntactic check would
// miss — recorded in DESIGN.md as the resolution to this form's
// overloaded-arity ambiguity.
func evalUnify(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 4 {
		return arityError("unify", 4, v.Arity())
	}
	first, second, succ, fail := v.Items[1], v.Items[2], v.Items[3], v.Items[4]

	firstVals := evalChild(first, env, depth)
	if len(firstVals) == 1 && firstVals[0].Kind == value.KindSpace {
		handle := firstVals[0]
		results, ok := env.Match(handle, second, succ, bindings.ApplyBindings)
		if !ok {
			return done(evalerr.Generic("unify: unknown space handle", handle))
		}
		if len(results) == 0 {
			return tailTo(fail)
		}
		return tailOrFanout(results, env, depth)
	}

	b, ok := bindings.Unify(first, second)
	if !ok {
		return tailTo(fail)
	}
	return tailTo(bindings.ApplyBindings(succ, b))
}
