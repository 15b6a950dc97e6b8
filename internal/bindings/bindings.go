// Package bindings implements the variable-aware structural matcher,
// substitution, unification, and sealed-variable renaming of spec.md
// §4.2. Matching and substitution are pure functions over immutable
// value.Value trees and need no locking.
package bindings

import "github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"

// Bindings is an unordered variable-name → Value map, keys unique, per
// spec.md §3.2. Keys are canonical names (the sigil-stripped form
// returned by value.Value.VariableName): "$x", "&x" and "'x" bind to the
// same key "x".
type Bindings map[string]value.Value

// Merge combines a and b, succeeding only if they agree (by value.Equal)
// on every key they share, for reconciling two independently produced
// binding sets.
func Merge(a, b Bindings) (Bindings, bool) {
	out := make(Bindings, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if existing, ok := out[k]; ok {
			if !value.Equal(existing, v) {
				return nil, false
			}
			continue
		}
		out[k] = v
	}
	return out, true
}

// Clone returns an independent copy of b.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
