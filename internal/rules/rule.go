// Package rules implements the head-symbol + arity rule index of
// spec.md §3.3/§4.4: specificity-ordered candidate selection with
// multiplicity expansion, backed by a trie-encoded fact store for the
// query_multi fast path.
package rules

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// Rule is the (lhs, rhs) pair of spec.md §3.3. RHS is an ordinary
// value.Value; Go's value semantics and the evaluator's immutable-tree
// convention give it the reference-counted-handle cheap-clone property
// the spec calls for without an explicit Rc wrapper.
type Rule struct {
	LHS value.Value
	RHS value.Value
}

// entry is the index's internal bookkeeping record for one distinct
// (by canonical text) rule.
type entry struct {
	rule        Rule
	key         string
	specificity int
	size        int
	order       int
}

// Match is one candidate rule application: the matched rule's RHS
// together with the bindings produced by matching its LHS against the
// queried expression. Callers apply bindings.ApplyBindings(RHS, Bindings)
// to obtain the tail-call target.
type Match struct {
	Rule     Rule
	Bindings bindings.Bindings
}

func concreteHead(v value.Value) (head string, arity int, ok bool) {
	if (v.Kind != value.KindSExpr && v.Kind != value.KindConjunction) || len(v.Items) == 0 {
		return "", 0, false
	}
	h := v.Items[0]
	if h.Kind != value.KindAtom || h.IsVariable() || h.IsWildcard() {
		return "", 0, false
	}
	return h.Atom, len(v.Items) - 1, true
}

// specificity counts variables and wildcards anywhere in lhs: spec.md
// §4.4's "count of variables and wildcards in lhs" — a rule with fewer
// of these is more specific (scores lower).
func specificity(v value.Value) int {
	n := 0
	var walk func(value.Value)
	walk = func(v value.Value) {
		if v.IsVariable() || v.IsWildcard() {
			n++
			return
		}
		switch v.Kind {
		case value.KindSExpr, value.KindConjunction:
			for _, it := range v.Items {
				walk(it)
			}
		case value.KindError:
			if v.ErrInner != nil {
				walk(*v.ErrInner)
			}
		case value.KindType:
			if v.TypeExpr != nil {
				walk(*v.TypeExpr)
			}
		}
	}
	walk(v)
	return n
}

// structuralSize counts the total number of nodes in v's tree, the
// tiebreaker spec.md §4.4 names after specificity. Smaller trees are
// treated as more specific, symmetric with "fewer variables is more
// specific".
func structuralSize(v value.Value) int {
	n := 1
	switch v.Kind {
	case value.KindSExpr, value.KindConjunction:
		for _, it := range v.Items {
			n += structuralSize(it)
		}
	case value.KindError:
		if v.ErrInner != nil {
			n += structuralSize(*v.ErrInner)
		}
	case value.KindType:
		if v.TypeExpr != nil {
			n += structuralSize(*v.TypeExpr)
		}
	}
	return n
}

func canonicalKey(lhs, rhs value.Value) string {
	return lhs.String() + " => " + rhs.String()
}
