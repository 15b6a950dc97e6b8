package eval

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/grounded"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// specialFormResult is what a special-form handler returns to Eval's
// trampoline. Tail results reassign the loop variable and continue
// (spec.md §4.3.5); non-tail results are returned directly.
type specialFormResult struct {
	Tail    bool
	Next    value.Value
	Results []value.Value
}

func done(results ...value.Value) specialFormResult {
	return specialFormResult{Results: results}
}

func tailTo(next value.Value) specialFormResult {
	return specialFormResult{Tail: true, Next: next}
}

func arityError(op string, want, got int) specialFormResult {
	return done(evalerr.Arity(op, want, got))
}

type specialFormFunc func(v value.Value, env *environment.Environment, depth int) specialFormResult

// specialForms dispatches spec.md §4.6's special-form table by head
// symbol. Populated by init() across this package's files so each form
// family can live in its own file.
var specialForms = map[string]specialFormFunc{}

func init() {
	specialForms["="] = evalDefineRule
	specialForms["!"] = evalForce
	specialForms["quote"] = evalQuote
	specialForms["eval"] = evalEval
	specialForms["if"] = evalIf
	specialForms["case"] = evalCase
	specialForms["switch"] = evalSwitch
	specialForms["atom-subst"] = evalAtomSubst
	specialForms["sealed"] = evalSealed
	specialForms["bind!"] = evalBind
	specialForms["error"] = evalError
	specialForms["catch"] = evalCatch
}

// evalChild evaluates a sub-expression for a special form that needs its
// value immediately (rather than as a tail call), folding Eval's second
// return (always nil in this evaluator's design, see eval.go) into the
// result list on the rare path where a grounded op still reports one.
func evalChild(v value.Value, env *environment.Environment, depth int) []value.Value {
	results, err := Eval(v, env, depth+1)
	if err != nil {
		return []value.Value{grounded.ToErrorValue(err)}
	}
	return results
}

// tailOrFanout is the common "substitute then continue" shape shared by
// let, unify and chain: a single candidate becomes a tail
// call (preserving O(1) stack growth for the common single-match case,
// spec.md §4.3.5); more than one fans out through ordinary recursion.
func tailOrFanout(candidates []value.Value, env *environment.Environment, depth int) specialFormResult {
	if len(candidates) == 0 {
		return done()
	}
	if len(candidates) == 1 {
		return tailTo(candidates[0])
	}
	var out []value.Value
	for _, c := range candidates {
		out = append(out, evalChild(c, env, depth+1)...)
	}
	return done(out...)
}

// evalDefineRule implements `(= lhs rhs)`: indexes the rule and mirrors
// it into &self, producing no results (spec.md §4.6).
func evalDefineRule(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("=", 2, v.Arity())
	}
	env.AddRuleOrFact(v)
	return done()
}

// evalForce implements `(! expr)`: forcing is plain evaluation in a tail
// position. Top-level `!` forms are additionally recognized by eval.Run
// to route their results into the output accumulator.
func evalForce(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("!", 1, v.Arity())
	}
	return tailTo(v.Items[1])
}

// evalQuote implements `(quote x)`: return x unevaluated.
func evalQuote(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("quote", 1, v.Arity())
	}
	return done(v.Items[1])
}

// evalEval implements `(eval x)`: evaluate the result of evaluating x.
func evalEval(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("eval", 1, v.Arity())
	}
	first := evalChild(v.Items[1], env, depth)
	if len(first) == 1 {
		return tailTo(first[0])
	}
	var out []value.Value
	for _, r := range first {
		out = append(out, evalChild(r, env, depth+1)...)
	}
	return done(out...)
}

// evalIf implements `(if c t e)`: evaluate c; truthy takes t as a tail
// call, otherwise e.
func evalIf(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 3 {
		return arityError("if", 3, v.Arity())
	}
	cond, then, alt := v.Items[1], v.Items[2], v.Items[3]
	conds := evalChild(cond, env, depth)
	if len(conds) == 0 {
		return done()
	}
	if len(conds) == 1 {
		if conds[0].IsTruthy() {
			return tailTo(then)
		}
		return tailTo(alt)
	}
	var out []value.Value
	for _, c := range conds {
		branch := alt
		if c.IsTruthy() {
			branch = then
		}
		out = append(out, evalChild(branch, env, depth+1)...)
	}
	return done(out...)
}

// matchClauses finds the first (pat tmpl) clause whose pattern matches
// val, per spec.md §4.6's "pick first matching pattern; bind".
func matchClauses(val value.Value, clauses []value.Value) (tmpl value.Value, b bindings.Bindings, ok bool) {
	for _, c := range clauses {
		if (c.Kind != value.KindSExpr && c.Kind != value.KindConjunction) || len(c.Items) != 2 {
			continue
		}
		if bi, matched := bindings.Match(c.Items[0], val); matched {
			return c.Items[1], bi, true
		}
	}
	return value.Value{}, nil, false
}

// evalCaseLike backs both `case` and `switch`. switch distinguishes
// Empty explicitly: when x produces no results, it is matched against
// the sentinel atom Empty so a clause can catch it; case simply produces
// no results in that situation, per spec.md §4.6's table.
func evalCaseLike(name string, v value.Value, env *environment.Environment, depth int, switchLike bool) specialFormResult {
	if v.Arity() < 1 {
		return arityError(name, 2, v.Arity())
	}
	x := v.Items[1]
	clauses := v.Items[2:]
	xVals := evalChild(x, env, depth)
	if len(xVals) == 0 {
		if !switchLike {
			return done()
		}
		xVals = []value.Value{value.Atom("Empty")}
	}
	if len(xVals) == 1 {
		tmpl, b, ok := matchClauses(xVals[0], clauses)
		if !ok {
			return done()
		}
		return tailTo(bindings.ApplyBindings(tmpl, b))
	}
	var out []value.Value
	for _, val := range xVals {
		tmpl, b, ok := matchClauses(val, clauses)
		if !ok {
			continue
		}
		out = append(out, evalChild(bindings.ApplyBindings(tmpl, b), env, depth+1)...)
	}
	return done(out...)
}

func evalCase(v value.Value, env *environment.Environment, depth int) specialFormResult {
	return evalCaseLike("case", v, env, depth, false)
}

func evalSwitch(v value.Value, env *environment.Environment, depth int) specialFormResult {
	return evalCaseLike("switch", v, env, depth, true)
}

// evalAtomSubst implements `(atom-subst value $var template)`: return
// template literally (not re-evaluated) with $var replaced by value.
func evalAtomSubst(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 3 {
		return arityError("atom-subst", 3, v.Arity())
	}
	valExpr, variable, template := v.Items[1], v.Items[2], v.Items[3]
	if !variable.IsVariable() {
		return done(evalerr.TypeMismatch("atom-subst", "Variable", variable))
	}
	name := variable.VariableName()
	checkBodyScope(env, "atom-subst", []string{name}, template)
	vals := evalChild(valExpr, env, depth)
	var out []value.Value
	for _, val := range vals {
		out = append(out, bindings.ApplyBindings(template, bindings.Bindings{name: val}))
	}
	return done(out...)
}

// evalSealed implements `(sealed ignore expr)`: α-rename free variables
// not present in ignore, returning the renamed expression unevaluated.
func evalSealed(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("sealed", 2, v.Arity())
	}
	ignoreExpr, expr := v.Items[1], v.Items[2]
	var ignore []value.Value
	if ignoreExpr.Kind == value.KindSExpr || ignoreExpr.Kind == value.KindConjunction {
		ignore = ignoreExpr.Items
	} else {
		ignore = []value.Value{ignoreExpr}
	}
	return done(bindings.Sealed(ignore, expr))
}

// evalBind implements `(bind! tok val)`: register a token alias keyed by
// tok's raw atom text (including its sigil), matched shallowly against
// the same text by internal/eval's preprocess step.
func evalBind(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("bind!", 2, v.Arity())
	}
	tok := v.Items[1]
	if tok.Kind != value.KindAtom {
		return done(evalerr.TypeMismatch("bind!", "Atom", tok))
	}
	vals := evalChild(v.Items[2], env, depth)
	if len(vals) == 0 {
		return done()
	}
	env.Bind(tok.Atom, vals[0])
	return done(value.Unit())
}

// evalError implements `(error msg inner)`: errors are values (spec.md
// §7), constructed directly rather than raised.
func evalError(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("error", 2, v.Arity())
	}
	msgs := evalChild(v.Items[1], env, depth)
	inners := evalChild(v.Items[2], env, depth)
	if len(msgs) == 0 || len(inners) == 0 {
		return done()
	}
	var out []value.Value
	for _, m := range msgs {
		msg := m.String()
		if m.Kind == value.KindString {
			msg = m.Str
		}
		for _, inner := range inners {
			out = append(out, value.Err(msg, inner))
		}
	}
	return done(out...)
}

// evalCatch implements `(catch expr default)`: replace any Error result
// of expr with default.
func evalCatch(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("catch", 2, v.Arity())
	}
	results := evalChild(v.Items[1], env, depth)
	var out []value.Value
	for _, r := range results {
		if r.IsError() {
			out = append(out, evalChild(v.Items[2], env, depth+1)...)
			continue
		}
		out = append(out, r)
	}
	return done(out...)
}
