package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera tracks a look-at pose and a perspective projection.
//
// The raymarch fragment program builds its own rays, so the matrices are not
// currently uploaded; they are kept up to date for a u_View consumer.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	FOV    float32 // vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32

	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// New returns a camera at eye looking at target with +Y up.
func New(eye, target mgl32.Vec3) *Camera {
	c := &Camera{
		Eye:    eye,
		Target: target,
		Up:     mgl32.Vec3{0, 1, 0},
		FOV:    45,
		Aspect: 1,
		Near:   0.1,
		Far:    1000,
	}
	c.Update()
	c.UpdateProjectionMatrix()
	return c
}

// SetAspectRatio sets width/height. Call UpdateProjectionMatrix afterwards.
func (c *Camera) SetAspectRatio(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
}

// UpdateProjectionMatrix recomputes the projection from FOV, aspect and clip planes.
func (c *Camera) UpdateProjectionMatrix() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Update recomputes the view matrix from the pose.
func (c *Camera) Update() {
	c.View = mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.View)
}
