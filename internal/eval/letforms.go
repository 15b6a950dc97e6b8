package eval

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func init() {
	specialForms["let"] = evalLet
	specialForms["let*"] = evalLetStar
}

// evalLet implements `(let pat expr body)` (spec.md §4.6): evaluate
// expr; for each result, match pat and evaluate body with the resulting
// bindings substituted in, as a tail call when there is exactly one
// match. A mismatch drops that result silently, or with a strict-mode
// warning (spec.md §7's "Pattern mismatch" row).
func evalLet(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 3 {
		return arityError("let", 3, v.Arity())
	}
	pat, exprV, body := v.Items[1], v.Items[2], v.Items[3]
	checkBodyScope(env, "let", bindings.Vars(pat), body)
	results := evalChild(exprV, env, depth)

	var bodies []value.Value
	for _, r := range results {
		b, ok := bindings.Match(pat, r)
		if !ok {
			if env.Strict() {
				env.Logger().Warn("let: pattern mismatch", "pattern", pat.String(), "value", r.String())
			}
			continue
		}
		bodies = append(bodies, bindings.ApplyBindings(body, b))
	}
	return tailOrFanout(bodies, env, depth)
}

// evalLetStar implements `(let* ((pat val)*) body)` as sugar that
// desugars into a chain of nested `let`s and tail-calls into it,
// matching spec.md §4.6's "nests into sequential lets" exactly.
func evalLetStar(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("let*", 2, v.Arity())
	}
	bindingList := v.Items[1]
	body := v.Items[2]
	return tailTo(letStarStep(bindingList.Items, body))
}

func letStarStep(pairs []value.Value, body value.Value) value.Value {
	if len(pairs) == 0 {
		return body
	}
	pair := pairs[0]
	if (pair.Kind != value.KindSExpr && pair.Kind != value.KindConjunction) || len(pair.Items) != 2 {
		return value.Err("let*: malformed binding, expected (pat val)", pair)
	}
	pat, val := pair.Items[0], pair.Items[1]
	return value.SExpr(value.Atom("let"), pat, val, letStarStep(pairs[1:], body))
}
