package eval

import "github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"

// cartesianProduct implements spec.md §4.3.6: the lazy Cartesian product
// of lists, enumerated in lexicographic order of sub-expression result
// indices (spec.md §5's ordering guarantee). Any empty list collapses
// the whole product to empty, matching "Empty semantics" (§4.6): a
// sub-expression that produced no results contributes no tuples.
func cartesianProduct(lists [][]value.Value) [][]value.Value {
	if len(lists) == 0 {
		return [][]value.Value{{}}
	}
	for _, l := range lists {
		if len(l) == 0 {
			return nil
		}
	}
	out := [][]value.Value{{}}
	for _, l := range lists {
		var next [][]value.Value
		for _, prefix := range out {
			for _, v := range l {
				tuple := make([]value.Value, len(prefix)+1)
				copy(tuple, prefix)
				tuple[len(prefix)] = v
				next = append(next, tuple)
			}
		}
		out = next
	}
	return out
}
