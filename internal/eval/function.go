package eval

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// maxFunctionIterations bounds `function`'s reduction loop (spec.md
// §4.6: "Bound iteration count (e.g. 1000)").
const maxFunctionIterations = 1000

func init() {
	specialForms["function"] = evalFunctionForm
	specialForms["return"] = evalReturn
}

// evalFunctionForm implements `(function body)`: reduce body repeatedly
// until every result is `(return x)`-shaped, then unwrap to x. Because
// Eval always reduces its argument to normal form in one call, there is
// no separate one-step primitive to iterate over; instead each iteration
// treats a not-yet-`return`-shaped result as the next body to reduce,
// which converges for ordinary recursive-rule-driven function bodies
// without requiring a global function-nesting token or panic/recover —
// a simplification recorded in DESIGN.md.
func evalFunctionForm(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("function", 1, v.Arity())
	}
	return runFunctionBody(v.Items[1], env, depth, maxFunctionIterations, v)
}

func runFunctionBody(body value.Value, env *environment.Environment, depth, budget int, orig value.Value) specialFormResult {
	if budget <= 0 {
		return done(evalerr.IterationBound(orig, maxFunctionIterations))
	}
	results := evalChild(body, env, depth)
	if len(results) == 0 {
		return done()
	}
	if len(results) == 1 {
		r := results[0]
		if isReturnSignal(r) {
			return done(r.Items[1])
		}
		return runFunctionBody(r, env, depth+1, budget-1, orig)
	}
	var out []value.Value
	for _, r := range results {
		if isReturnSignal(r) {
			out = append(out, r.Items[1])
			continue
		}
		sub := runFunctionBody(r, env, depth+1, budget-1, orig)
		out = append(out, sub.Results...)
	}
	return done(out...)
}

func isReturnSignal(v value.Value) bool {
	return v.Head() == "return" && v.Arity() == 1
}

// evalReturn implements `(return x)`: evaluate x, then re-wrap each
// result as a `(return r)` signal for evalFunctionForm to unwrap.
func evalReturn(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("return", 1, v.Arity())
	}
	results := evalChild(v.Items[1], env, depth)
	out := make([]value.Value, len(results))
	for i, r := range results {
		out[i] = value.SExpr(value.Atom("return"), r)
	}
	return done(out...)
}
