// Package environment implements the shared, cloneable handle of
// spec.md §3.5: the top-level fact store, the rule index, the space
// registry backing first-class Space values, state cells, memo tables,
// token bindings, and the strict-mode flag, all behind one lock as
// spec.md §5's shared-resource policy requires.
package environment

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/rules"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/store"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// SelfSpaceID is the reserved identity of the top-level `&self` space,
// always registered first so `(match &self pat tmpl)` resolves without
// a lookup.
const SelfSpaceID int64 = 0

// Environment bundles every piece of mutable state an evaluation
// touches. A zero Environment is not usable; construct with New.
//
// Cloning: spec.md §3.5 calls for clones that "share state" and whose
// union is monotonic. Go reference semantics give this for free — Clone
// returns the same *Environment pointer, so a clone aliases every field,
// plain values such as the strict flag and id counters included. There
// is deliberately no deep-copy Clone; see Clone's doc comment.
type Environment struct {
	mu sync.RWMutex

	intern bool
	rules  *rules.Index

	spaces      map[int64]*store.Store
	nextSpaceID int64

	states      map[int64]value.Value
	nextStateID int64

	memos map[string]*memoTable

	tokens map[string]value.Value

	strict bool
	logger hclog.Logger
}

// New creates an Environment with a fresh &self space and rule index.
// intern controls whether every space (including &self) wire-encodes
// symbols through the process-wide interning table. logger defaults to
// a null logger (matching hclog's own convention) if nil, so structured
// tracing stays silent unless explicitly wired.
func New(strict, intern bool, logger hclog.Logger) *Environment {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	e := &Environment{
		intern:      intern,
		rules:       rules.New(intern),
		spaces:      make(map[int64]*store.Store),
		nextSpaceID: SelfSpaceID + 1,
		states:      make(map[int64]value.Value),
		memos:       make(map[string]*memoTable),
		tokens:      make(map[string]value.Value),
		strict:      strict,
		logger:      logger,
	}
	e.spaces[SelfSpaceID] = store.New(intern)
	return e
}

// Clone returns e itself: every piece of state it guards is already
// shared by reference, so a "clone" in this Go port is simply another
// handle to the same Environment, matching spec.md §3.5's "clones
// alias" contract without introducing a second lock to keep in sync.
func (e *Environment) Clone() *Environment { return e }

// Logger returns the structured logger this Environment traces through,
// used by grounded ops like `trace!` and by internal/eval's
// METTA_DEBUG_EVAL tracing.
func (e *Environment) Logger() hclog.Logger { return e.logger }

// Strict reports whether strict mode (warnings on pattern mismatch) is
// enabled.
func (e *Environment) Strict() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.strict
}

// SetStrict toggles strict mode.
func (e *Environment) SetStrict(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strict = v
}

// Rules returns the shared rule index.
func (e *Environment) Rules() *rules.Index { return e.rules }

// Self returns the top-level `&self` fact store.
func (e *Environment) Self() *store.Store {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.spaces[SelfSpaceID]
}

// AddRuleOrFact routes a top-level form into the rule index (if it is a
// `(= lhs rhs)` equation) and always mirrors it into &self, per spec.md
// §4.1's "update rule index if expr = (= lhs rhs)".
func (e *Environment) AddRuleOrFact(expr value.Value) {
	e.Self().Add(expr)
	if expr.Head() == "=" && expr.Arity() == 2 {
		e.rules.Add(expr.Items[1], expr.Items[2])
	}
}

