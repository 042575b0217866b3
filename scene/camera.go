package scene

import (
	"github.com/chewxy/math32"

	"glsafe/math"
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position    math.Vec3
	Target      math.Vec3
	Up          math.Vec3
	FOV         float32 // vertical, radians
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Target:      math.Vec3{Z: -1},
		Up:          math.Vec3Up,
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
	}
}

// SetViewport updates the aspect ratio for a drawable of the given size.
func (c *Camera) SetViewport(width, height int) {
	if height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}

func (c *Camera) LookAt(target math.Vec3) { c.Target = target }

func (c *Camera) Forward() math.Vec3 { return c.Target.Sub(c.Position).Normalize() }

func (c *Camera) Right() math.Vec3 { return c.Forward().Cross(c.Up).Normalize() }

func (c *Camera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Position, c.Target, c.Up)
}

func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Mat4Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
}

// ViewProjection maps world space to clip space.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ViewMatrix().Mul(c.ProjectionMatrix())
}

// Move translates the camera and its target together.
func (c *Camera) Move(delta math.Vec3) {
	c.Position = c.Position.Add(delta)
	c.Target = c.Target.Add(delta)
}

// OrbitCamera circles Target at Distance. Yaw turns around the up axis and
// Pitch tilts above or below the horizon.
type OrbitCamera struct {
	Camera
	Distance float32
	Yaw      float32
	Pitch    float32
}

func NewOrbitCamera(target math.Vec3, distance, fov, aspectRatio float32) *OrbitCamera {
	c := &OrbitCamera{
		Camera:   *NewCamera(fov, aspectRatio, 0.1, 1000),
		Distance: distance,
		Pitch:    0.3,
	}
	c.Target = target
	c.update()
	return c
}

func (c *OrbitCamera) update() {
	const limit = 1.5
	c.Pitch = min(max(c.Pitch, -limit), limit)
	cosPitch := math32.Cos(c.Pitch)
	c.Position = c.Target.Add(math.Vec3{
		X: c.Distance * cosPitch * math32.Sin(c.Yaw),
		Y: c.Distance * math32.Sin(c.Pitch),
		Z: c.Distance * cosPitch * math32.Cos(c.Yaw),
	})
}

func (c *OrbitCamera) Orbit(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	c.update()
}

// Zoom moves the camera towards the target, stopping short of it.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance = max(c.Distance+delta, 0.1)
	c.update()
}
