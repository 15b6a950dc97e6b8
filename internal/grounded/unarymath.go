package grounded

import (
	"fmt"
	"math"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/environment"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// unaryMathOp implements the non-TCO unary math leaves of spec.md §4.5:
// they are not tail-call positions, so the legacy eager interface (which
// evaluates its own argument up front) is a faithful fit rather than a
// compromise.
type unaryMathOp struct {
	name string
	fn   func(x float64) value.Value
}

func (u *unaryMathOp) Name() string { return u.name }

func (u *unaryMathOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 1 {
		return nil, IncorrectArgument(fmt.Sprintf("%s: expected 1 argument, got %d", u.name, len(args)))
	}
	results, err := eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(results))
	for _, v := range results {
		x, ok := asFloatValue(v)
		if !ok {
			out = append(out, evalerr.TypeMismatch(u.name, "Number", v))
			continue
		}
		out = append(out, u.fn(x))
	}
	return out, nil
}

func asFloatValue(v value.Value) (float64, bool) {
	switch v.Kind {
	case value.KindLong:
		return float64(v.Long), true
	case value.KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

func registerUnaryMath(r *Registry) {
	ops := []unaryMathOp{
		{"sqrt-math", func(x float64) value.Value {
			if x < 0 {
				return evalerr.DomainError("sqrt-math", value.Float(x))
			}
			return value.Float(math.Sqrt(x))
		}},
		{"abs-math", func(x float64) value.Value { return value.Float(math.Abs(x)) }},
		{"log-math", func(x float64) value.Value {
			if x <= 0 {
				return evalerr.DomainError("log-math", value.Float(x))
			}
			return value.Float(math.Log(x))
		}},
		{"trunc-math", func(x float64) value.Value { return value.Float(math.Trunc(x)) }},
		{"ceil-math", func(x float64) value.Value { return value.Float(math.Ceil(x)) }},
		{"floor-math", func(x float64) value.Value { return value.Float(math.Floor(x)) }},
		{"round-math", func(x float64) value.Value { return value.Float(math.Round(x)) }},
		{"sin-math", func(x float64) value.Value { return value.Float(math.Sin(x)) }},
		{"cos-math", func(x float64) value.Value { return value.Float(math.Cos(x)) }},
		{"tan-math", func(x float64) value.Value { return value.Float(math.Tan(x)) }},
		{"asin-math", func(x float64) value.Value {
			if x < -1 || x > 1 {
				return evalerr.DomainError("asin-math", value.Float(x))
			}
			return value.Float(math.Asin(x))
		}},
		{"acos-math", func(x float64) value.Value {
			if x < -1 || x > 1 {
				return evalerr.DomainError("acos-math", value.Float(x))
			}
			return value.Float(math.Acos(x))
		}},
		{"atan-math", func(x float64) value.Value { return value.Float(math.Atan(x)) }},
		{"isnan-math", func(x float64) value.Value { return value.Bool(math.IsNaN(x)) }},
		{"isinf-math", func(x float64) value.Value { return value.Bool(math.IsInf(x, 0)) }},
	}
	for i := range ops {
		op := ops[i]
		r.RegisterEager(&op)
	}
	r.RegisterEager(&powMathOp{})
}

// powMathOp is the binary power leaf, evaluated eagerly rather than via
// the TCO protocol since it, like its unary siblings, is not itself a
// tail position.
type powMathOp struct{}

func (powMathOp) Name() string { return "pow-math" }

func (powMathOp) ExecuteRaw(args []value.Value, env *environment.Environment, depth int, eval EvalFunc) ([]value.Value, *ExecError) {
	if len(args) != 2 {
		return nil, IncorrectArgument(fmt.Sprintf("pow-math: expected 2 arguments, got %d", len(args)))
	}
	bases, err := eval(args[0], env, depth)
	if err != nil {
		return nil, err
	}
	exps, err := eval(args[1], env, depth)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(bases)*len(exps))
	for _, b := range bases {
		bx, ok := asFloatValue(b)
		if !ok {
			out = append(out, evalerr.TypeMismatch("pow-math", "Number", b))
			continue
		}
		for _, e := range exps {
			ex, ok := asFloatValue(e)
			if !ok {
				out = append(out, evalerr.TypeMismatch("pow-math", "Number", e))
				continue
			}
			out = append(out, value.Float(math.Pow(bx, ex)))
		}
	}
	return out, nil
}
