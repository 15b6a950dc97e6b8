package environment

import "github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"

// NewState implements `(new-state x)`: allocate a fresh addressable
// state cell initialized to x, returning its handle.
func (e *Environment) NewState(initial value.Value) value.Value {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextStateID
	e.nextStateID++
	e.states[id] = initial
	return value.State(id)
}

// GetState implements `(get-state s)`.
func (e *Environment) GetState(handle value.Value) (value.Value, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.states[handle.StateID]
	return v, ok
}

// ChangeState implements `(change-state! s x)`: mutate the cell in
// place, per spec.md §3.5's "cells are mutated in place".
func (e *Environment) ChangeState(handle value.Value, next value.Value) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.states[handle.StateID]; !ok {
		return false
	}
	e.states[handle.StateID] = next
	return true
}
