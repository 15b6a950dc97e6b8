package rules

import (
	"sort"
	"sync"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/store"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

type headKey struct {
	head  string
	arity int
}

// Index is the rule-head index of spec.md §3.5/§4.4: a
// (head_symbol, arity) → []Rule map plus a wildcard bucket, with rule
// multiplicities tracked by canonical text key. It also mirrors every
// rule into a trie-backed Store of `(= lhs rhs)` facts. Matches does not
// query that store: it always selects candidates from the (head, arity)
// map and the wildcard bucket and tests each one with bindings.Match.
type Index struct {
	mu       sync.RWMutex
	facts    *store.Store
	byHead   map[headKey][]*entry
	wildcard []*entry
	counts   map[string]int
	order    int
}

// New creates an empty rule index.
func New(intern bool) *Index {
	return &Index{
		facts:  store.New(intern),
		byHead: make(map[headKey][]*entry),
		counts: make(map[string]int),
	}
}

// Add implements add_rule(rule) (spec.md §4.4): canonicalize to a text
// key and bump its multiplicity; on first insertion, index by
// (head, arity) or the wildcard bucket, and mirror `(= lhs rhs)` into
// the trie-backed fact store.
func (idx *Index) Add(lhs, rhs value.Value) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	key := canonicalKey(lhs, rhs)
	idx.counts[key]++
	idx.facts.Add(value.SExpr(value.Atom("="), lhs, rhs))

	if idx.counts[key] > 1 {
		return
	}
	e := &entry{
		rule:        Rule{LHS: lhs, RHS: rhs},
		key:         key,
		specificity: specificity(lhs),
		size:        structuralSize(lhs),
		order:       idx.order,
	}
	idx.order++
	if h, a, ok := concreteHead(lhs); ok {
		hk := headKey{h, a}
		idx.byHead[hk] = append(idx.byHead[hk], e)
	} else {
		idx.wildcard = append(idx.wildcard, e)
	}
}

// Remove undoes one Add of the same (lhs, rhs) pair, decrementing its
// multiplicity and evicting it from every index once it reaches zero.
func (idx *Index) Remove(lhs, rhs value.Value) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	key := canonicalKey(lhs, rhs)
	if idx.counts[key] == 0 {
		return
	}
	idx.counts[key]--
	idx.facts.Remove(value.SExpr(value.Atom("="), lhs, rhs))
	if idx.counts[key] > 0 {
		return
	}
	delete(idx.counts, key)

	if h, a, ok := concreteHead(lhs); ok {
		hk := headKey{h, a}
		idx.byHead[hk] = removeEntry(idx.byHead[hk], key)
		if len(idx.byHead[hk]) == 0 {
			delete(idx.byHead, hk)
		}
	} else {
		idx.wildcard = removeEntry(idx.wildcard, key)
	}
}

func removeEntry(xs []*entry, key string) []*entry {
	for i, e := range xs {
		if e.key == key {
			return append(xs[:i:i], xs[i+1:]...)
		}
	}
	return xs
}

// Matches implements the match-for-candidate algorithm of spec.md §4.4:
// O(1) lookup by (head_symbol(expr), arity(expr)) plus the wildcard
// bucket, specificity-ascending sort with structural-size tiebreak,
// keeping only the best (lowest) specificity band, then expanding each
// surviving rule by its multiplicity.
func (idx *Index) Matches(expr value.Value) []Match {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var candidates []*entry
	if h, a, ok := concreteHead(expr); ok {
		candidates = append(candidates, idx.byHead[headKey{h, a}]...)
	}
	candidates = append(candidates, idx.wildcard...)
	if len(candidates) == 0 {
		return nil
	}

	type scored struct {
		e *entry
		b bindings.Bindings
	}
	matched := make([]scored, 0, len(candidates))
	for _, e := range candidates {
		if b, ok := bindings.Match(e.rule.LHS, expr); ok {
			matched = append(matched, scored{e, b})
		}
	}
	if len(matched) == 0 {
		return nil
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].e.specificity != matched[j].e.specificity {
			return matched[i].e.specificity < matched[j].e.specificity
		}
		if matched[i].e.size != matched[j].e.size {
			return matched[i].e.size < matched[j].e.size
		}
		return matched[i].e.order < matched[j].e.order
	})

	best := matched[0].e.specificity
	var out []Match
	for _, m := range matched {
		if m.e.specificity != best {
			break
		}
		count := idx.counts[m.e.key]
		for i := 0; i < count; i++ {
			out = append(out, Match{Rule: m.e.rule, Bindings: m.b})
		}
	}
	return out
}

// Len returns the number of distinct rule entries currently indexed
// (not counting multiplicity).
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	n := len(idx.wildcard)
	for _, es := range idx.byHead {
		n += len(es)
	}
	return n
}
