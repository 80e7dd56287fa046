package component

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective camera. The projection is recomputed by every setter so
// it can never go stale.
type Camera struct {
	fov    float32
	aspect float32
	near   float32
	far    float32
	proj   mgl32.Mat4
}

// NewCamera builds a camera from a vertical fov in radians.
func NewCamera(fov, aspect, near, far float32) Camera {
	c := Camera{fov: fov, aspect: aspect, near: near, far: far}
	c.updateProjection()
	return c
}

func (c *Camera) Fov() float32    { return c.fov }
func (c *Camera) Aspect() float32 { return c.aspect }
func (c *Camera) Near() float32   { return c.near }
func (c *Camera) Far() float32    { return c.far }

func (c *Camera) SetFov(fov float32) {
	c.fov = fov
	c.updateProjection()
}

func (c *Camera) SetAspect(aspect float32) {
	c.aspect = aspect
	c.updateProjection()
}

func (c *Camera) SetNear(near float32) {
	c.near = near
	c.updateProjection()
}

func (c *Camera) SetFar(far float32) {
	c.far = far
	c.updateProjection()
}

// SetPerspective replaces all four parameters with a single recompute.
func (c *Camera) SetPerspective(fov, aspect, near, far float32) {
	c.fov, c.aspect, c.near, c.far = fov, aspect, near, far
	c.updateProjection()
}

// Projection returns the cached projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return c.proj
}

func (c *Camera) updateProjection() {
	if c.aspect <= 0 || c.near <= 0 || c.far <= c.near {
		c.proj = mgl32.Ident4()
		return
	}
	c.proj = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
}

var CameraComponent = NewComponent[Camera]()
