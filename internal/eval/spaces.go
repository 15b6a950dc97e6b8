package eval

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func init() {
	specialForms["new-space"] = evalNewSpace
	specialForms["add-atom"] = evalAddAtom
	specialForms["remove-atom"] = evalRemoveAtom
	specialForms["get-atoms"] = evalGetAtoms
	specialForms["match"] = evalMatchSpace
}

// resolveSpaceArg maps the `&self` token convention to the reserved
// top-level space handle, mirroring internal/grounded/misc.go's
// resolveSpace for the special forms that take a space argument.
func resolveSpaceArg(v value.Value) value.Value {
	if v.Kind == value.KindAtom && v.Atom == "&self" {
		return value.Space(environment.SelfSpaceID)
	}
	return v
}

func evalNewSpace(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 0 {
		return arityError("new-space", 0, v.Arity())
	}
	return done(env.NewSpace())
}

// evalAddAtom implements `(add-atom s x)`: s is evaluated to a space
// handle, x is added as the raw, unevaluated expression — distinct from
// `add-reduct`, which adds x's evaluated result.
func evalAddAtom(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("add-atom", 2, v.Arity())
	}
	handles := evalChild(v.Items[1], env, depth)
	var out []value.Value
	for _, h := range handles {
		handle := resolveSpaceArg(h)
		if !env.AddAtom(handle, v.Items[2]) {
			out = append(out, evalerr.Generic("add-atom: unknown space handle", handle))
			continue
		}
		out = append(out, value.Unit())
	}
	return done(out...)
}

func evalRemoveAtom(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("remove-atom", 2, v.Arity())
	}
	handles := evalChild(v.Items[1], env, depth)
	var out []value.Value
	for _, h := range handles {
		handle := resolveSpaceArg(h)
		if !env.RemoveAtom(handle, v.Items[2]) {
			out = append(out, evalerr.Generic("remove-atom: unknown space handle", handle))
			continue
		}
		out = append(out, value.Unit())
	}
	return done(out...)
}

func evalGetAtoms(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("get-atoms", 1, v.Arity())
	}
	handles := evalChild(v.Items[1], env, depth)
	var out []value.Value
	for _, h := range handles {
		handle := resolveSpaceArg(h)
		atoms, ok := env.GetAtoms(handle)
		if !ok {
			out = append(out, evalerr.Generic("get-atoms: unknown space handle", handle))
			continue
		}
		out = append(out, atoms...)
	}
	return done(out...)
}

func evalMatchSpace(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 3 {
		return arityError("match", 3, v.Arity())
	}
	handles := evalChild(v.Items[1], env, depth)
	var out []value.Value
	for _, h := range handles {
		handle := resolveSpaceArg(h)
		results, ok := env.Match(handle, v.Items[2], v.Items[3], bindings.ApplyBindings)
		if !ok {
			out = append(out, evalerr.Generic("match: unknown space handle", handle))
			continue
		}
		out = append(out, results...)
	}
	return done(out...)
}
