package bindings

import (
	"fmt"
	"sync/atomic"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// sealedCounter is the process-wide, monotonically growing freshness
// counter spec.md §9 requires for sealed-variable renaming ("the sealed
// counter ... must be concurrency-safe").
var sealedCounter int64

// Sealed implements the `sealed` special form (spec.md §4.2, §4.6): every
// free variable in expr whose canonical name is not in ignore is
// α-renamed by appending a fresh suffix drawn from a global counter, so
// that two evaluations of the same sealed expression never collide.
func Sealed(ignore []value.Value, expr value.Value) value.Value {
	ignoreSet := make(map[string]bool, len(ignore))
	for _, v := range ignore {
		if v.IsVariable() {
			ignoreSet[v.VariableName()] = true
		}
	}
	rename := make(map[string]string)
	return sealRename(expr, ignoreSet, rename)
}

func sealRename(v value.Value, ignore map[string]bool, rename map[string]string) value.Value {
	switch v.Kind {
	case value.KindAtom:
		if !v.IsVariable() {
			return v
		}
		name := v.VariableName()
		if ignore[name] {
			return v
		}
		if newAtom, ok := rename[name]; ok {
			return value.Atom(newAtom)
		}
		n := atomic.AddInt64(&sealedCounter, 1)
		newAtom := fmt.Sprintf("%s%s_%d", v.Atom[:1], name, n)
		rename[name] = newAtom
		return value.Atom(newAtom)

	case value.KindSExpr, value.KindConjunction:
		items := make([]value.Value, len(v.Items))
		for i, it := range v.Items {
			items[i] = sealRename(it, ignore, rename)
		}
		out := v
		out.Items = items
		return out

	case value.KindError:
		out := v
		if v.ErrInner != nil {
			inner := sealRename(*v.ErrInner, ignore, rename)
			out.ErrInner = &inner
		}
		return out

	case value.KindType:
		out := v
		if v.TypeExpr != nil {
			t := sealRename(*v.TypeExpr, ignore, rename)
			out.TypeExpr = &t
		}
		return out

	default:
		return v
	}
}

// Vars collects the distinct canonical variable names free in v, in
// first-occurrence order. Used to satisfy the trie store's query
// contract: "query returns bindings whose keys are the variables
// appearing in pattern."
func Vars(v value.Value) []string {
	seen := make(map[string]bool)
	var out []string
	collectVars(v, seen, &out)
	return out
}

func collectVars(v value.Value, seen map[string]bool, out *[]string) {
	switch v.Kind {
	case value.KindAtom:
		if v.IsVariable() {
			name := v.VariableName()
			if !seen[name] {
				seen[name] = true
				*out = append(*out, name)
			}
		}
	case value.KindSExpr, value.KindConjunction:
		for _, it := range v.Items {
			collectVars(it, seen, out)
		}
	case value.KindError:
		if v.ErrInner != nil {
			collectVars(*v.ErrInner, seen, out)
		}
	case value.KindType:
		if v.TypeExpr != nil {
			collectVars(*v.TypeExpr, seen, out)
		}
	}
}
