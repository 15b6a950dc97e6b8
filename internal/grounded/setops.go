package grounded

import (
	"fmt"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func registerSetOps(r *Registry) {
	r.RegisterEager(&uniqueAtomOp{})
	r.RegisterEager(&unionAtomOp{})
	r.RegisterEager(&intersectionAtomOp{})
	r.RegisterEager(&subtractionAtomOp{})
}

// setArgElements reads the elements of the idx-th argument raw, as
// literal data, without evaluating it; an argument that is neither an
// expression nor Nil is a type error.
func setArgElements(op string, args []value.Value, idx int) ([]value.Value, *ExecError) {
	elems, ok := listElements(args[idx])
	if !ok {
		return nil, WithValue(evalerr.TypeMismatch(op, "Expression", args[idx]))
	}
	return elems, nil
}

// uniqueAtomOp implements `(unique-atom list)`: remove duplicate elements,
// keeping the first occurrence of each.
type uniqueAtomOp struct{}

func (uniqueAtomOp) Name() string { return "unique-atom" }

func (uniqueAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 1 {
		return nil, IncorrectArgument(fmt.Sprintf("unique-atom: expected 1 argument, got %d", len(args)))
	}
	elems, err := setArgElements("unique-atom", args, 0)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(elems))
	for _, e := range elems {
		dup := false
		for _, seen := range out {
			if value.Equal(seen, e) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return []value.Value{value.SExpr(out...)}, nil
}

// unionAtomOp implements `(union-atom list1 list2)`: multiset union, i.e.
// concatenation without deduplication.
type unionAtomOp struct{}

func (unionAtomOp) Name() string { return "union-atom" }

func (unionAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 2 {
		return nil, IncorrectArgument(fmt.Sprintf("union-atom: expected 2 arguments, got %d", len(args)))
	}
	left, err := setArgElements("union-atom", args, 0)
	if err != nil {
		return nil, err
	}
	right, err := setArgElements("union-atom", args, 1)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(left)+len(right))
	out = append(out, left...)
	out = append(out, right...)
	return []value.Value{value.SExpr(out...)}, nil
}

// intersectionAtomOp implements `(intersection-atom list1 list2)`:
// multiset intersection. Each element of list1 is kept once per matching,
// not-yet-consumed element of list2, scanning list1 in order and
// consuming list2 matches left to right — e.g.
// (intersection-atom (a b c c) (b c c c d)) -> (b c c).
type intersectionAtomOp struct{}

func (intersectionAtomOp) Name() string { return "intersection-atom" }

func (intersectionAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 2 {
		return nil, IncorrectArgument(fmt.Sprintf("intersection-atom: expected 2 arguments, got %d", len(args)))
	}
	left, err := setArgElements("intersection-atom", args, 0)
	if err != nil {
		return nil, err
	}
	right, err := setArgElements("intersection-atom", args, 1)
	if err != nil {
		return nil, err
	}
	consumed := make([]bool, len(right))
	out := make([]value.Value, 0, len(left))
	for _, l := range left {
		for i, r := range right {
			if consumed[i] {
				continue
			}
			if value.Equal(l, r) {
				consumed[i] = true
				out = append(out, l)
				break
			}
		}
	}
	return []value.Value{value.SExpr(out...)}, nil
}

// subtractionAtomOp implements `(subtraction-atom list1 list2)`: multiset
// difference. Each element of list1 is dropped at most once per matching,
// not-yet-consumed element of list2; elements with no remaining match are
// kept — e.g.
// (subtraction-atom (a b b c) (b c c d)) -> (a b).
type subtractionAtomOp struct{}

func (subtractionAtomOp) Name() string { return "subtraction-atom" }

func (subtractionAtomOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 2 {
		return nil, IncorrectArgument(fmt.Sprintf("subtraction-atom: expected 2 arguments, got %d", len(args)))
	}
	left, err := setArgElements("subtraction-atom", args, 0)
	if err != nil {
		return nil, err
	}
	right, err := setArgElements("subtraction-atom", args, 1)
	if err != nil {
		return nil, err
	}
	consumed := make([]bool, len(right))
	out := make([]value.Value, 0, len(left))
	for _, l := range left {
		matched := false
		for i, r := range right {
			if consumed[i] {
				continue
			}
			if value.Equal(l, r) {
				consumed[i] = true
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, l)
		}
	}
	return []value.Value{value.SExpr(out...)}, nil
}
