package environment

import (
	"container/list"
	"sync"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// memoTable is a per-table cache keyed on the canonical text of the raw
// (unevaluated) expression, with an optional LRU bound, per spec.md
// §4.6's `(new-memo name [max])` / `(memo t expr)` table.
type memoTable struct {
	mu      sync.Mutex
	max     int // 0 means unbounded
	order   *list.List // front = most recently used; elements are string keys
	entries map[string]*memoEntry
	hits    int64
	misses  int64
}

type memoEntry struct {
	results []value.Value
	elem    *list.Element
}

// NewMemo implements `(new-memo name [max])`.
func (e *Environment) NewMemo(name string, max int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.memos[name] = &memoTable{
		max:     max,
		order:   list.New(),
		entries: make(map[string]*memoEntry),
	}
}

func (e *Environment) memoTableFor(name string) (*memoTable, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.memos[name]
	return t, ok
}

// MemoLookup implements the cache-hit path of `(memo t expr)`: a hit
// bypasses evaluation entirely and moves the entry to the front of the
// LRU order.
func (e *Environment) MemoLookup(table string, key string) ([]value.Value, bool) {
	t, ok := e.memoTableFor(table)
	if !ok {
		return nil, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.entries[key]
	if !ok {
		t.misses++
		return nil, false
	}
	t.hits++
	if t.max > 0 {
		t.order.MoveToFront(entry.elem)
	}
	return entry.results, true
}

// MemoStore records expr's evaluated results under key, evicting the
// least-recently-used entry if the table has a bound and is full.
func (e *Environment) MemoStore(table string, key string, results []value.Value) bool {
	t, ok := e.memoTableFor(table)
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.entries[key]; ok {
		existing.results = results
		if t.max > 0 {
			t.order.MoveToFront(existing.elem)
		}
		return true
	}
	entry := &memoEntry{results: results}
	if t.max > 0 {
		entry.elem = t.order.PushFront(key)
	}
	t.entries[key] = entry
	if t.max > 0 && t.order.Len() > t.max {
		oldest := t.order.Back()
		if oldest != nil {
			t.order.Remove(oldest)
			delete(t.entries, oldest.Value.(string))
		}
	}
	return true
}

// ClearMemo implements `(clear-memo! t)`.
func (e *Environment) ClearMemo(table string) bool {
	t, ok := e.memoTableFor(table)
	if !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]*memoEntry)
	t.order = list.New()
	t.hits = 0
	t.misses = 0
	return true
}

// MemoStats implements `(memo-stats t)`, returning (hits, misses).
func (e *Environment) MemoStats(table string) (hits, misses int64, ok bool) {
	t, exists := e.memoTableFor(table)
	if !exists {
		return 0, 0, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hits, t.misses, true
}
