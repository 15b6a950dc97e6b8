package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindAndContainsAcrossParent(t *testing.T) {
	root := Root()
	root.Bind("x")

	child := root.Push()
	assert.True(t, child.Contains("x"))
	assert.False(t, child.Contains("y"))
}

func TestShadowsDetectsOuterBinding(t *testing.T) {
	root := Root()
	root.Bind("x")
	child := root.Push()

	assert.True(t, child.Shadows("x"))
	assert.False(t, child.Shadows("z"))
}

func TestDepthCountsNesting(t *testing.T) {
	root := Root()
	a := root.Push()
	b := a.Push()
	assert.Equal(t, 1, root.Depth())
	assert.Equal(t, 3, b.Depth())
}
