package environment

import "github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"

// Bind implements `(bind! tok val)`: register a token alias resolved by
// shallow lookup at evaluation time, per spec.md §4.6.
func (e *Environment) Bind(token string, val value.Value) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tokens[token] = val
}

// ResolveToken looks up a previously bound token, used by internal/eval
// to shallowly resolve atoms before dispatch (spec.md §4.3.4 step 1).
func (e *Environment) ResolveToken(token string) (value.Value, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.tokens[token]
	return v, ok
}
