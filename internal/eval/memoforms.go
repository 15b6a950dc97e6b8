package eval

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func init() {
	specialForms["new-memo"] = evalNewMemo
	specialForms["memo"] = evalMemo
	specialForms["memo-first"] = evalMemoFirst
	specialForms["clear-memo!"] = evalClearMemo
	specialForms["memo-stats"] = evalMemoStats
}

func memoTableName(v value.Value) string {
	if v.Kind == value.KindAtom {
		return v.Atom
	}
	return v.String()
}

// evalNewMemo implements `(new-memo name [max])`.
func evalNewMemo(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 && v.Arity() != 2 {
		return arityError("new-memo", 1, v.Arity())
	}
	name := memoTableName(v.Items[1])
	max := 0
	if v.Arity() == 2 {
		maxVals := evalChild(v.Items[2], env, depth)
		if len(maxVals) > 0 && maxVals[0].Kind == value.KindLong {
			max = int(maxVals[0].Long)
		}
	}
	env.NewMemo(name, max)
	return done(value.Unit())
}

// evalMemo implements `(memo t expr)`: a cache hit bypasses evaluation
// entirely, per spec.md §4.6 and §8 property 9.
func evalMemo(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("memo", 2, v.Arity())
	}
	name := memoTableName(v.Items[1])
	expr := v.Items[2]
	key := expr.String()
	if cached, ok := env.MemoLookup(name, key); ok {
		return done(cached...)
	}
	results := evalChild(expr, env, depth)
	env.MemoStore(name, key, results)
	return done(results...)
}

// evalMemoFirst implements `(memo-first t expr)`: like memo but caches
// and returns only the first non-deterministic result.
func evalMemoFirst(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 2 {
		return arityError("memo-first", 2, v.Arity())
	}
	name := memoTableName(v.Items[1])
	expr := v.Items[2]
	key := expr.String()
	if cached, ok := env.MemoLookup(name, key); ok {
		if len(cached) > 0 {
			return done(cached[0])
		}
		return done()
	}
	results := evalChild(expr, env, depth)
	if len(results) == 0 {
		env.MemoStore(name, key, nil)
		return done()
	}
	first := results[0]
	env.MemoStore(name, key, []value.Value{first})
	return done(first)
}

func evalClearMemo(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("clear-memo!", 1, v.Arity())
	}
	name := memoTableName(v.Items[1])
	if !env.ClearMemo(name) {
		return done(evalerr.Generic("clear-memo!: unknown table", v.Items[1]))
	}
	return done(value.Unit())
}

func evalMemoStats(v value.Value, env *environment.Environment, depth int) specialFormResult {
	if v.Arity() != 1 {
		return arityError("memo-stats", 1, v.Arity())
	}
	name := memoTableName(v.Items[1])
	hits, misses, ok := env.MemoStats(name)
	if !ok {
		return done(evalerr.Generic("memo-stats: unknown table", v.Items[1]))
	}
	return done(value.SExpr(value.Long(hits), value.Long(misses)))
}
