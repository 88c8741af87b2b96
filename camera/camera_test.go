package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})

	assert.Equal(t, float32(1), c.Aspect)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up)

	// the target sits 5 units in front of the eye
	p := c.View.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -5, p.Z(), 1e-5)
	assert.InDelta(t, 0, p.X(), 1e-5)
}

func TestSetAspectRatio(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	before := c.Projection

	c.SetAspectRatio(16.0 / 9.0)
	c.UpdateProjectionMatrix()
	assert.InDelta(t, 16.0/9.0, c.Aspect, 1e-6)
	assert.NotEqual(t, before, c.Projection)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 0.1, 1000), c.Projection)

	c.SetAspectRatio(0)
	c.SetAspectRatio(-2)
	assert.InDelta(t, 16.0/9.0, c.Aspect, 1e-6)
}

func TestUpdate(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	c.Eye = mgl32.Vec3{0, 0, 10}
	c.Update()

	p := c.View.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -10, p.Z(), 1e-5)
	assert.Equal(t, c.Projection.Mul4(c.View), c.ViewProjection())
}
