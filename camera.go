package main

import "math"

const (
	CameraPitchLimit = 89.0 // degrees, prevents view flip
	MouseSensitivity = 0.2

	CameraFOV  = 70.0 // degrees, vertical
	CameraNear = 0.1
	CameraFar  = 1000.0
)

// Camera is the first-person view. Yaw/pitch are in degrees; the
// derived basis vectors are recomputed on every change, never cached
// across an update.
type Camera struct {
	Position Vec3
	Yaw      float64
	Pitch    float64

	Front   Vec3
	Up      Vec3
	Right   Vec3
	worldUp Vec3
}

// NewCamera creates a camera at pos looking down -Z
func NewCamera(pos Vec3) *Camera {
	c := &Camera{
		Position: pos,
		Yaw:      -90.0,
		worldUp:  Vec3{0, 1, 0},
	}
	c.updateVectors()
	return c
}

// updateVectors recomputes front/right/up from yaw and pitch
func (c *Camera) updateVectors() {
	yaw := c.Yaw * math.Pi / 180.0
	pitch := c.Pitch * math.Pi / 180.0

	c.Front = Vec3{
		X: math.Cos(yaw) * math.Cos(pitch),
		Y: math.Sin(pitch),
		Z: math.Sin(yaw) * math.Cos(pitch),
	}.Normalize()

	c.Right = c.Front.Cross(c.worldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// ProcessMouse applies a mouse-look delta. Pitch is clamped to the
// flip limit on every update.
func (c *Camera) ProcessMouse(dx, dy float64) {
	c.Yaw += dx
	c.Pitch += dy
	c.Pitch = Clamp(c.Pitch, -CameraPitchLimit, CameraPitchLimit)
	c.updateVectors()
}

// MoveForward moves along the view direction
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Front.Scale(distance))
}

// MoveBackward moves against the view direction
func (c *Camera) MoveBackward(distance float64) {
	c.Position = c.Position.Sub(c.Front.Scale(distance))
}

// MoveRight strafes right
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right.Scale(distance))
}

// MoveLeft strafes left
func (c *Camera) MoveLeft(distance float64) {
	c.Position = c.Position.Sub(c.Right.Scale(distance))
}

// ForwardVector returns the direction for shooting
func (c *Camera) ForwardVector() Vec3 {
	return c.Front
}

// ViewMatrix returns the look-at view matrix for the current pose
func (c *Camera) ViewMatrix() Mat4 {
	return LookAt(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProjectionMatrix returns the perspective projection for the given
// viewport aspect ratio
func (c *Camera) ProjectionMatrix(aspect float64) Mat4 {
	return Perspective(CameraFOV, aspect, CameraNear, CameraFar)
}
