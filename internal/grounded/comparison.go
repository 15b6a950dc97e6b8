package grounded

import (
	"fmt"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func registerComparison(r *Registry) {
	for _, op := range []string{"<", "<=", ">", ">=", "==", "!="} {
		op := op
		r.RegisterStep(&binaryStep{name: op, compute: computeCompare(op)})
	}
}

// computeCompare implements spec.md §4.5's "strict type matching
// (Long<->Long, String supports lex-order, mixed types are a type
// error)". == and != additionally accept any matching-Kind pair,
// compared with value.Equal's strict (no numeric promotion) rule — a
// reading of "strict type matching" extended to equality.
func computeCompare(op string) func(a, b value.Value) (value.Value, *ExecError) {
	return func(a, b value.Value) (value.Value, *ExecError) {
		switch op {
		case "==", "!=":
			if a.Kind != b.Kind {
				return value.Value{}, Runtime(fmt.Sprintf("%s: mixed types %s / %s", op, a.String(), b.String()))
			}
			eq := value.Equal(a, b)
			if op == "!=" {
				eq = !eq
			}
			return value.Bool(eq), nil
		default:
			if a.Kind == value.KindLong && b.Kind == value.KindLong {
				return value.Bool(compareOrdered(op, a.Long, b.Long)), nil
			}
			if a.Kind == value.KindString && b.Kind == value.KindString {
				return value.Bool(compareOrdered(op, a.Str, b.Str)), nil
			}
			return value.Value{}, Runtime(fmt.Sprintf("%s: expected two Long or two String operands, got %s / %s", op, a.String(), b.String()))
		}
	}
}

type ordered interface {
	~int64 | ~string
}

func compareOrdered[T ordered](op string, a, b T) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	default:
		return false
	}
}
