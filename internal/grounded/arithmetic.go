package grounded

import (
	"fmt"
	"math"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// binaryStep drives any two-argument TCO op: evaluate arg 0, then arg 1,
// then compute. Every standard arithmetic and comparison operator shares
// this shape; only compute differs.
type binaryStep struct {
	name    string
	compute func(a, b value.Value) (value.Value, *ExecError)
}

func (b *binaryStep) Name() string { return b.name }

func (b *binaryStep) NewState(args []value.Value) *StepState {
	return &StepState{
		Op:        b.name,
		Args:      args,
		Results:   make([]value.Value, len(args)),
		Evaluated: make([]bool, len(args)),
	}
}

func (b *binaryStep) Step(s *StepState) GroundedWork {
	if len(s.Args) != 2 {
		return Fail(IncorrectArgument(fmt.Sprintf("%s: expected 2 arguments, got %d", b.name, len(s.Args))))
	}
	if !s.Evaluated[0] {
		return EvalArg(0)
	}
	if !s.Evaluated[1] {
		return EvalArg(1)
	}
	v, err := b.compute(s.Results[0], s.Results[1])
	if err != nil {
		return Fail(err)
	}
	return Done(v)
}

func registerArithmetic(r *Registry) {
	r.RegisterStep(&binaryStep{name: "+", compute: computeAdd})
	r.RegisterStep(&binaryStep{name: "-", compute: computeSub})
	r.RegisterStep(&binaryStep{name: "*", compute: computeMul})
	r.RegisterStep(&binaryStep{name: "/", compute: computeDiv})
	r.RegisterStep(&binaryStep{name: "%", compute: computeMod})
}

func asNumeric(v value.Value) (isFloat bool, l int64, f float64, ok bool) {
	switch v.Kind {
	case value.KindLong:
		return false, v.Long, 0, true
	case value.KindFloat:
		return true, 0, v.Float, true
	default:
		return false, 0, 0, false
	}
}

func promote(af bool, al int64, afv float64, bf bool, bl int64, bfv float64) (lv, rv float64) {
	lv = afv
	if !af {
		lv = float64(al)
	}
	rv = bfv
	if !bf {
		rv = float64(bl)
	}
	return lv, rv
}

func addOverflows(a, b int64) bool {
	if b > 0 {
		return a > math.MaxInt64-b
	}
	if b < 0 {
		return a < math.MinInt64-b
	}
	return false
}

func subOverflows(a, b int64) bool {
	if b == math.MinInt64 {
		return true
	}
	return addOverflows(a, -b)
}

func mulOverflows(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	if a == -1 && b == math.MinInt64 {
		return true
	}
	if b == -1 && a == math.MinInt64 {
		return true
	}
	return a*b/b != a
}

func computeAdd(a, b value.Value) (value.Value, *ExecError) {
	af, al, afv, aok := asNumeric(a)
	bf, bl, bfv, bok := asNumeric(b)
	if !aok || !bok {
		return value.Value{}, Runtime(fmt.Sprintf("+: expected Number, got %s / %s", a.String(), b.String()))
	}
	if af || bf {
		lv, rv := promote(af, al, afv, bf, bl, bfv)
		return value.Float(lv + rv), nil
	}
	if addOverflows(al, bl) {
		return value.Value{}, WithValue(evalerr.Overflow("+"))
	}
	return value.Long(al + bl), nil
}

func computeSub(a, b value.Value) (value.Value, *ExecError) {
	af, al, afv, aok := asNumeric(a)
	bf, bl, bfv, bok := asNumeric(b)
	if !aok || !bok {
		return value.Value{}, Runtime(fmt.Sprintf("-: expected Number, got %s / %s", a.String(), b.String()))
	}
	if af || bf {
		lv, rv := promote(af, al, afv, bf, bl, bfv)
		return value.Float(lv - rv), nil
	}
	if subOverflows(al, bl) {
		return value.Value{}, WithValue(evalerr.Overflow("-"))
	}
	return value.Long(al - bl), nil
}

func computeMul(a, b value.Value) (value.Value, *ExecError) {
	af, al, afv, aok := asNumeric(a)
	bf, bl, bfv, bok := asNumeric(b)
	if !aok || !bok {
		return value.Value{}, Runtime(fmt.Sprintf("*: expected Number, got %s / %s", a.String(), b.String()))
	}
	if af || bf {
		lv, rv := promote(af, al, afv, bf, bl, bfv)
		return value.Float(lv * rv), nil
	}
	if mulOverflows(al, bl) {
		return value.Value{}, WithValue(evalerr.Overflow("*"))
	}
	return value.Long(al * bl), nil
}

func computeDiv(a, b value.Value) (value.Value, *ExecError) {
	af, al, afv, aok := asNumeric(a)
	bf, bl, bfv, bok := asNumeric(b)
	if !aok || !bok {
		return value.Value{}, Runtime(fmt.Sprintf("/: expected Number, got %s / %s", a.String(), b.String()))
	}
	if af || bf {
		lv, rv := promote(af, al, afv, bf, bl, bfv)
		if rv == 0 {
			return value.Value{}, WithValue(evalerr.DivisionByZero())
		}
		return value.Float(lv / rv), nil
	}
	if bl == 0 {
		return value.Value{}, WithValue(evalerr.DivisionByZero())
	}
	if al == math.MinInt64 && bl == -1 {
		return value.Value{}, WithValue(evalerr.Overflow("/"))
	}
	return value.Long(al / bl), nil
}

func computeMod(a, b value.Value) (value.Value, *ExecError) {
	if a.Kind != value.KindLong || b.Kind != value.KindLong {
		return value.Value{}, Runtime(fmt.Sprintf("%%: expected Long operands, got %s / %s", a.String(), b.String()))
	}
	if b.Long == 0 {
		return value.Value{}, WithValue(evalerr.DivisionByZero())
	}
	if a.Long == math.MinInt64 && b.Long == -1 {
		return value.Value{}, WithValue(evalerr.Overflow("%"))
	}
	return value.Long(a.Long % b.Long), nil
}
