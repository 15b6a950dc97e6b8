package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVariable(t *testing.T) {
	assert.True(t, Atom("$x").IsVariable())
	assert.True(t, Atom("&self").IsVariable())
	assert.True(t, Atom("'y").IsVariable())
	assert.False(t, Atom("_").IsVariable())
	assert.False(t, Atom("foo").IsVariable())
	assert.True(t, Atom("_").IsWildcard())
	assert.False(t, Atom("$x").IsWildcard())
}

func TestVariableName(t *testing.T) {
	assert.Equal(t, "x", Atom("$x").VariableName())
	assert.Equal(t, "x", Atom("&x").VariableName())
	assert.Equal(t, "x", Atom("'x").VariableName())
	assert.Equal(t, "", Atom("x").VariableName())
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, Bool(false).IsTruthy())
	assert.False(t, Nil().IsTruthy())
	assert.True(t, Bool(true).IsTruthy())
	assert.True(t, Long(0).IsTruthy())
	assert.True(t, Str("").IsTruthy())
}

func TestHeadArity(t *testing.T) {
	e := SExpr(Atom("f"), Long(1), Long(2))
	assert.Equal(t, "f", e.Head())
	assert.Equal(t, 2, e.Arity())
	assert.Equal(t, []Value{Long(1), Long(2)}, e.Args())

	assert.Equal(t, "", Long(1).Head())
	assert.Equal(t, -1, Long(1).Arity())
}

func TestEqualStrictTagging(t *testing.T) {
	assert.True(t, Equal(Long(1), Long(1)))
	assert.False(t, Equal(Long(1), Float(1.0)))
	assert.True(t, Equal(SExpr(Atom("f"), Long(1)), SExpr(Atom("f"), Long(1))))
	assert.False(t, Equal(SExpr(Atom("f"), Long(1)), SExpr(Atom("f"), Long(2))))
}

func TestErrorEqualityComparesInner(t *testing.T) {
	a := Err("boom", Atom("TypeError"))
	b := Err("boom", Atom("TypeError"))
	c := Err("boom", Atom("ArityError"))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Atom("foo"), "foo"},
		{Long(42), "42"},
		{Bool(true), "True"},
		{Bool(false), "False"},
		{Nil(), "Empty"},
		{Unit(), "()"},
		{Str("hi"), `"hi"`},
		{SExpr(Atom("f"), Long(1), Long(2)), "(f 1 2)"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.v.String())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := SExpr(Atom("f"), Long(1))
	clone := orig.Clone()
	clone.Items[1] = Long(2)
	assert.True(t, Equal(orig, SExpr(Atom("f"), Long(1))))
	assert.True(t, Equal(clone, SExpr(Atom("f"), Long(2))))
}
