package grounded

import (
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/evalerr"
	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// WithValue wraps an already-built Error value (typically produced by
// internal/evalerr's precise constructors, e.g. DivisionByZero or
// Overflow) so ToErrorValue can surface it verbatim instead of
// re-deriving a generic message from Kind.
func WithValue(v value.Value) *ExecError {
	return &ExecError{Kind: KindArithmetic, Value: &v}
}

// ToErrorValue converts an ExecError into the user-visible Error value
// spec.md §7 describes: NoReduce has no Value conversion (callers must
// check for it separately and fall through to rule matching instead).
func ToErrorValue(e *ExecError) value.Value {
	if e.Value != nil {
		return *e.Value
	}
	switch e.Kind {
	case KindArithmetic:
		return evalerr.New(evalerr.ClassArithmeticError, e.Message).Build()
	case KindIncorrectArgument:
		return evalerr.New(evalerr.ClassArityError, e.Message).Build()
	default:
		return evalerr.New(evalerr.ClassTypeError, e.Message).Build()
	}
}
