package eval

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func init() {
	specialForms["new-state"] = evalNewState
	specialForms["get-state"] = evalGetState
	specialForms["change-state!"] = evalChangeState
}

func evalNewState(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("new-state", 1, v.Arity())
	}
	vals := evalChild(v.Items[1], env, depth)
	out := make([]value.Value, len(vals))
	for i, val := range vals {
		out[i] = env.NewState(val)
	}
	return done(out...)
}

func evalGetState(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("get-state", 1, v.Arity())
	}
	handles := evalChild(v.Items[1], env, depth)
	var out []value.Value
	for _, h := range handles {
		val, ok := env.GetState(h)
		if !ok {
			out = append(out, evalerr.Generic("get-state: unknown state handle", h))
			continue
		}
		out = append(out, val)
	}
	return done(out...)
}

// evalChangeState implements `(change-state! s x)`, mutating the cell in
// place and returning the state handle so callers can chain further
// get-state calls on it.
func evalChangeState(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("change-state!", 2, v.Arity())
	}
	handles := evalChild(v.Items[1], env, depth)
	newVals := evalChild(v.Items[2], env, depth)
	var out []value.Value
	for _, h := range handles {
		for _, nv := range newVals {
			if !env.ChangeState(h, nv) {
				out = append(out, evalerr.Generic("change-state!: unknown state handle", h))
				continue
			}
			out = append(out, h)
		}
	}
	return done(out...)
}
