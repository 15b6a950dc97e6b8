package eval

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func init() {
	specialForms["chain"] = evalChain
	specialForms["collapse"] = evalCollapse
	specialForms["superpose"] = evalSuperpose
}

// evalChain implements `(chain expr $var body)` (spec.md §4.6): evaluate
// expr, bind each result to $var, evaluate body — a tail call when expr
// produced exactly one result.
func evalChain(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 3 {
		return arityError("chain", 3, v.Arity())
	}
	exprV, variable, body := v.Items[1], v.Items[2], v.Items[3]
	if !variable.IsVariable() {
		return done(evalerr.TypeMismatch("chain", "Variable", variable))
	}
	name := variable.VariableName()
	checkBodyScope(env, "chain", []string{name}, body)
	results := evalChild(exprV, env, depth)
	bodies := make([]value.Value, len(results))
	for i, r := range results {
		bodies[i] = bindings.ApplyBindings(body, bindings.Bindings{name: r})
	}
	return tailOrFanout(bodies, env, depth)
}

// evalCollapse implements `(collapse expr)`: evaluate expr and wrap the
// entire result list into a single SExpr, per spec.md §8 property 7.
func evalCollapse(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("collapse", 1, v.Arity())
	}
	results := evalChild(v.Items[1], env, depth)
	return done(value.SExpr(results...))
}

// evalSuperpose implements `(superpose xs)`: evaluate xs and, for each
// result that is itself an SExpr/Conjunction, unpack its elements into
// separate non-deterministic results (the inverse of collapse, per
// spec.md §8 property 8); a non-compound result passes through as a
// singleton.
func evalSuperpose(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("superpose", 1, v.Arity())
	}
	results := evalChild(v.Items[1], env, depth)
	var out []value.Value
	for _, r := range results {
		if r.Kind == value.KindSExpr || r.Kind == value.KindConjunction {
			out = append(out, r.Items...)
			continue
		}
		out = append(out, r)
	}
	return done(out...)
}
