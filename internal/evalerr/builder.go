package evalerr

import (
	"fmt"

	"github.com/F1R3FLY-io/MeTTa-Compiler-sub001/internal/value"
)

// Builder provides a fluent constructor for Error values, mirroring the
// teacher's SemanticErrorBuilder chain but collapsed to the Value-based,
// position-less Error model of spec.md §3.1: a message plus one optional
// inner Value.
type Builder struct {
	message string
	class   string
	payload *value.Value
}

// New starts a builder for an error message tagged with class.
func New(class, message string) *Builder {
	return &Builder{message: message, class: class}
}

// WithPayload attaches a structured inner Value alongside the class atom.
// Rare: most callers let Build wrap the bare class atom.
func (b *Builder) WithPayload(v value.Value) *Builder {
	b.payload = &v
	return b
}

// Build returns the completed Error value.
func (b *Builder) Build() value.Value {
	inner := value.Atom(b.class)
	if b.payload != nil {
		inner = value.SExpr(value.Atom(b.class), *b.payload)
	}
	return value.Err(b.message, inner)
}

// TypeMismatch builds a TypeError for a grounded op that received a
// variant other than what it expected.
func TypeMismatch(op string, expected string, got value.Value) value.Value {
	return New(ClassTypeError, fmt.Sprintf("%s: expected %s, got %s", op, expected, got.String())).Build()
}

// DivisionByZero builds the ArithmeticError spec.md §8 property 10 names
// verbatim.
func DivisionByZero() value.Value {
	return New(ClassArithmeticError, "Division by zero").Build()
}

// Overflow builds an ArithmeticError for integer overflow in op.
func Overflow(op string) value.Value {
	return New(ClassArithmeticError, fmt.Sprintf("%s: integer overflow", op)).Build()
}

// DomainError builds an ArithmeticError for a math op given an argument
// outside its domain (e.g. sqrt of a negative number).
func DomainError(op string, arg value.Value) value.Value {
	return New(ClassArithmeticError, fmt.Sprintf("%s: argument %s outside domain", op, arg.String())).Build()
}

// Arity builds an ArityError for a grounded op called with the wrong
// number of arguments.
func Arity(op string, want, got int) value.Value {
	return New(ClassArityError, fmt.Sprintf("%s: expected %d argument(s), got %d", op, want, got)).Build()
}

// IterationBound builds the Error spec.md §7 names for a `function` loop
// that exceeded its iteration cap.
func IterationBound(expr value.Value, max int) value.Value {
	return New("IterationError", fmt.Sprintf("exceeded maximum iterations (%d)", max)).WithPayload(expr).Build()
}

// Generic builds an Error with an arbitrary inner payload, for call sites
// that don't fit the standard taxonomy (e.g. `(error msg inner)`).
func Generic(message string, inner value.Value) value.Value {
	return value.Err(message, inner)
}
