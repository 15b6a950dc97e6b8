package eval

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func init() {
	specialForms["lookup"] = evalLookup
	specialForms["rulify"] = evalRulify
}

// evalLookup implements `(lookup pattern success-goals failure-goals)`:
// conditional dispatch on whether pattern is already known. The source
// material never wires this to an actual space query; it uses a
// heuristic placeholder ("if pattern is a variable, assume not found")
// which this port preserves verbatim rather than completing into a real
// lookup the original never specified.
func evalLookup(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() < 3 {
		return done(evalerr.New(evalerr.ClassArityError, "lookup requires 3 arguments: pattern, success-goals, and failure-goals").Build())
	}
	pattern, successGoals, failureGoals := v.Items[1], v.Items[2], v.Items[3]

	if successGoals.Kind != value.KindConjunction {
		return done(evalerr.New(evalerr.ClassTypeError, "lookup success branch must be a conjunction (,)").Build())
	}
	if failureGoals.Kind != value.KindConjunction {
		return done(evalerr.New(evalerr.ClassTypeError, "lookup failure branch must be a conjunction (,)").Build())
	}

	patternFound := !pattern.IsVariable()

	if patternFound {
		return tailTo(successGoals)
	}
	return tailTo(failureGoals)
}

// evalRulify implements the `(rulify name (, p0) (, t0 ...) antecedent
// consequent)` meta-program. Like the source it is grounded on, it stops
// short of registering a real exec rule: it builds and returns a
// descriptive `meta-rule` structure, leaving actual rule generation from
// a coalgebra's arity to a future implementation.
func evalRulify(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() < 5 {
		return done(evalerr.New(evalerr.ClassArityError, "rulify requires 5 arguments: name, pattern, templates, antecedent, consequent").Build())
	}
	name, patternConj, templatesConj, antecedent, consequent := v.Items[1], v.Items[2], v.Items[3], v.Items[4], v.Items[5]

	if patternConj.Kind != value.KindConjunction || len(patternConj.Items) != 1 {
		return done(evalerr.New(evalerr.ClassTypeError, "rulify pattern must be a unary conjunction (, $p0)").Build())
	}
	pattern := patternConj.Items[0]

	if templatesConj.Kind != value.KindConjunction {
		return done(evalerr.New(evalerr.ClassTypeError, "rulify templates must be a conjunction (, $t0 ...)").Build())
	}

	metaRule := value.SExpr(
		value.Atom("meta-rule"),
		name,
		pattern,
		templatesConj,
		antecedent,
		consequent,
	)
	return done(metaRule)
}
