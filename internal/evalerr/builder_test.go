package evalerr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

func TestDivisionByZeroMessage(t *testing.T) {
	v := DivisionByZero()
	assert.True(t, v.IsError())
	assert.Equal(t, "Division by zero", v.ErrMessage)
	assert.Equal(t, ClassArithmeticError, v.ErrInner.Atom)
}

func TestArityMessage(t *testing.T) {
	v := Arity("+", 2, 3)
	assert.Contains(t, v.ErrMessage, "expected 2")
	assert.Equal(t, ClassArityError, v.ErrInner.Atom)
}

func TestTypeMismatchMessage(t *testing.T) {
	v := TypeMismatch("+", "Number", value.Bool(true))
	assert.Equal(t, ClassTypeError, v.ErrInner.Atom)
	assert.Contains(t, v.ErrMessage, "Number")
}

func TestIterationBoundCarriesExpr(t *testing.T) {
	expr := value.SExpr(value.Atom("loop"), value.Long(5))
	v := IterationBound(expr, 1000)
	assert.True(t, v.IsError())
	assert.Equal(t, "IterationError", v.ErrInner.Items[0].Atom)
}
