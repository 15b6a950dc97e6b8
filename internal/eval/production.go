package eval

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func init() {
	specialForms["exec"] = evalExec
	specialForms["coalg"] = evalCoalg
}

// evalExec implements `(exec prio ante conseq)`: evaluate the antecedent
// conjunction, and on success (at least one of its results is not an
// Error) evaluate the consequent. prio is deliberately left unevaluated: it has no effect on
// single-evaluator semantics, since nothing here schedules multiple
// competing productions by priority.
func evalExec(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 3 {
		return arityError("exec", 3, v.Arity())
	}
	ante, conseq := v.Items[2], v.Items[3]
	anteResults := evalChild(ante, env, depth)
	success := false
	for _, r := range anteResults {
		if !r.IsError() {
			success = true
			break
		}
	}
	if !success {
		return done()
	}
	conseqResults := evalChild(conseq, env, depth)
	out := make([]value.Value, len(conseqResults))
	for i, c := range conseqResults {
		applyProduction(c, env)
		out[i] = c
	}
	return done(out...)
}

// applyProduction interprets a consequent of the form
// `(O (+ fact) (- fact) ...)` as a set of &self mutations, per spec.md
// §4.6's description of `exec`'s consequent.
func applyProduction(c value.Value, env *environment.Environment) {
	if c.Head() != "O" {
		return
	}
	self := value.Space(environment.SelfSpaceID)
	for _, op := range c.Args() {
		switch {
		case op.Head() == "+" && op.Arity() == 1:
			env.AddAtom(self, op.Items[1])
		case op.Head() == "-" && op.Arity() == 1:
			env.RemoveAtom(self, op.Items[1])
		}
	}
}

// evalCoalg implements `(coalg pat (, t1 ... tn))`. The source material
// leaves the tree-transform semantics of coalg underspecified beyond
// "pattern + n result templates"; this is a deliberately minimal stub
// that unwraps the conjunction of templates and evaluates each
// independently, ignoring pat. A fuller implementation would need a
// concrete subject to match pat against, which spec.md never names.
func evalCoalg(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("coalg", 2, v.Arity())
	}
	tmplList := v.Items[2]

	var templates []value.Value
	switch {
	case tmplList.Kind == value.KindConjunction:
		templates = tmplList.Items
	case tmplList.Head() == ",":
		templates = tmplList.Args()
	default:
		templates = []value.Value{tmplList}
	}

	var out []value.Value
	for _, t := range templates {
		out = append(out, evalChild(t, env, depth+1)...)
	}
	return done(out...)
}
