package environment

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/bindings"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/store"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// NewSpace registers a fresh, empty fact store and returns a first-class
// Space handle referencing it by registry index, per spec.md §9's
// "represent these as indices into a registry owned by Environment, not
// back-pointers".
func (e *Environment) NewSpace() value.Value {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextSpaceID
	e.nextSpaceID++
	e.spaces[id] = store.New(e.intern)
	return value.Space(id)
}

// spaceFor resolves a Space value to its backing store, or false if the
// handle is stale/unknown.
func (e *Environment) spaceFor(handle value.Value) (*store.Store, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.spaces[handle.SpaceID]
	return s, ok
}

// AddAtom implements `(add-atom s x)`.
func (e *Environment) AddAtom(handle value.Value, expr value.Value) bool {
	s, ok := e.spaceFor(handle)
	if !ok {
		return false
	}
	s.Add(expr)
	return true
}

// RemoveAtom implements `(remove-atom s x)`.
func (e *Environment) RemoveAtom(handle value.Value, expr value.Value) bool {
	s, ok := e.spaceFor(handle)
	if !ok {
		return false
	}
	s.Remove(expr)
	return true
}

// GetAtoms implements `(get-atoms s)`: a snapshot of every expression
// currently in the space, one entry per multiplicity copy (spec.md §8
// property 12's "permutation of S with the same multiset semantics").
func (e *Environment) GetAtoms(handle value.Value) ([]value.Value, bool) {
	s, ok := e.spaceFor(handle)
	if !ok {
		return nil, false
	}
	var out []value.Value
	s.Iter(func(v value.Value) bool {
		out = append(out, v)
		return true
	})
	return out, true
}

// Match implements `(match s pat tmpl)`: query the space for pat,
// substituting the resulting bindings into tmpl for each match. apply is
// supplied by internal/eval (normally bindings.ApplyBindings) so this
// package needn't depend on the evaluator.
func (e *Environment) Match(handle value.Value, pat, tmpl value.Value, apply func(value.Value, bindings.Bindings) value.Value) ([]value.Value, bool) {
	s, ok := e.spaceFor(handle)
	if !ok {
		return nil, false
	}
	var out []value.Value
	s.Query(pat, func(b bindings.Bindings) bool {
		out = append(out, apply(tmpl, b))
		return true
	})
	return out, true
}
