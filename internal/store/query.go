package store

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/wire"
)

// Query enumerates every stored expression that matches pattern, invoking
// visit(bindings) once per match (once per multiplicity copy, so a fact
// stored twice yields two visits). It returns early, without visiting the
// rest, if visit returns false. When pattern has no free variables this
// degenerates into an existence check, per spec.md §4.1's contract.
func (s *Store) Query(pattern value.Value, visit func(bindings.Bindings) bool) {
	s.mu.RLock()
	candidates, fullScan := s.candidateKeysLocked(pattern)
	// Decode outside the lock window is unsafe if Remove runs
	// concurrently and prunes nodes; snapshot the bytes we need first.
	type cand struct {
		data  []byte
		count int
	}
	var snap []cand
	if fullScan {
		s.root.walk(nil, func(key []byte, count int) bool {
			cp := append([]byte(nil), key...)
			snap = append(snap, cand{cp, count})
			return true
		})
	} else {
		for _, k := range candidates {
			cp := []byte(k)
			snap = append(snap, cand{cp, s.root.contains(cp)})
		}
	}
	overflow := append([]overflowEntry(nil), s.overflow...)
	s.mu.RUnlock()

	for _, c := range snap {
		v, err := wire.Decode(c.data, s.intern)
		if err != nil {
			continue // malformed entries are skipped, never panic (spec.md §9)
		}
		if !visitMatches(pattern, v, c.count, visit) {
			return
		}
	}
	for _, e := range overflow {
		if !visitMatches(pattern, e.val, e.count, visit) {
			return
		}
	}
}

func visitMatches(pattern, v value.Value, count int, visit func(bindings.Bindings) bool) bool {
	for i := 0; i < count; i++ {
		b, ok := bindings.Match(pattern, v)
		if !ok {
			break // multiplicity copies are structurally identical; one failed match means all fail
		}
		if !visit(b) {
			return false
		}
	}
	return true
}

// Exists is Query that stops at the first match.
func (s *Store) Exists(pattern value.Value) bool {
	found := false
	s.Query(pattern, func(bindings.Bindings) bool {
		found = true
		return false
	})
	return found
}

// candidateKeysLocked returns the set of encoded keys worth trying
// against pattern, or fullScan=true if no head/arity pre-filter applies
// (pattern's head position is itself a variable, wildcard, or pattern is
// not a compound at all). Caller must hold at least a read lock.
func (s *Store) candidateKeysLocked(pattern value.Value) (keys []string, fullScan bool) {
	if pattern.Kind != value.KindSExpr && pattern.Kind != value.KindConjunction {
		return nil, true
	}
	if len(pattern.Items) == 0 {
		return nil, true
	}
	head := pattern.Items[0]
	if head.IsVariable() || head.IsWildcard() {
		return nil, true
	}
	data, err := wire.Encode(pattern, s.intern)
	if err != nil {
		return nil, true
	}
	h, arity, ok := wire.HeadInfo(data)
	if !ok {
		return nil, true
	}
	return s.headIndex[headKey{string(h), arity}], false
}

// Iter lazily traverses every stored expression, once per multiplicity
// copy. visit returning false stops the traversal early.
func (s *Store) Iter(visit func(value.Value) bool) {
	s.mu.RLock()
	type cand struct {
		data  []byte
		count int
	}
	var snap []cand
	s.root.walk(nil, func(key []byte, count int) bool {
		cp := append([]byte(nil), key...)
		snap = append(snap, cand{cp, count})
		return true
	})
	overflow := append([]overflowEntry(nil), s.overflow...)
	s.mu.RUnlock()

	for _, c := range snap {
		v, err := wire.Decode(c.data, s.intern)
		if err != nil {
			continue
		}
		for i := 0; i < c.count; i++ {
			if !visit(v) {
				return
			}
		}
	}
	for _, e := range overflow {
		for i := 0; i < e.count; i++ {
			if !visit(e.val) {
				return
			}
		}
	}
}
