// Package camera provides the free-flying scene camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/fogcubes/pkg/math"
)

// Default camera parameters.
const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSpeed       = 0.5
	DefaultSensitivity = 0.3
	DefaultFOV         = 45.0

	MinFOV   = 1.0
	MaxFOV   = 45.0
	MaxPitch = 89.0

	NearClip = 0.1
	FarClip  = 1000.0
)

// Movement is a discrete translation command.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
	Up
	Down
)

// ZoomDirection narrows or widens the field of view.
type ZoomDirection int

const (
	Closer ZoomDirection = iota
	Away
)

// FlyCamera is an Euler-angle camera that moves freely through the scene.
// Angles are in degrees.
type FlyCamera struct {
	Position math.Vec3
	Front    math.Vec3
	Right    math.Vec3
	Up       math.Vec3
	WorldUp  math.Vec3

	Yaw   float32
	Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32
	FOV              float32

	Width  int
	Height int

	// Snapshot restored by Reset.
	originPosition    math.Vec3
	originUp          math.Vec3
	originSpeed       float32
	originSensitivity float32
	originFOV         float32
}

// NewFlyCamera creates a camera at position looking along yaw/pitch.
func NewFlyCamera(width, height int, position, worldUp math.Vec3, yaw, pitch float32) *FlyCamera {
	c := &FlyCamera{
		Position:       position,
		WorldUp:        worldUp,
		Yaw:            yaw,
		Pitch:          pitch,
		Width:          width,
		Height:         height,
		originPosition: position,
		originUp:       worldUp,
	}
	c.Configure(DefaultSpeed, DefaultSensitivity, DefaultFOV)
	c.updateVectors()
	return c
}

// Configure sets the movement speed, mouse sensitivity and FOV, and makes
// them the values Reset restores.
func (c *FlyCamera) Configure(speed, sensitivity, fov float32) {
	c.MovementSpeed, c.originSpeed = speed, speed
	c.MouseSensitivity, c.originSensitivity = sensitivity, sensitivity
	c.FOV, c.originFOV = fov, fov
}

// Move translates the camera by MovementSpeed*dt along the given direction.
func (c *FlyCamera) Move(dir Movement, dt float32) {
	velocity := c.MovementSpeed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Scale(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Scale(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Scale(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Scale(velocity))
	case Up:
		c.Position = c.Position.Add(c.WorldUp.Scale(velocity))
	case Down:
		c.Position = c.Position.Sub(c.WorldUp.Scale(velocity))
	}
}

// Look turns the camera by a pointer delta in pixels.
func (c *FlyCamera) Look(dx, dy float32, constrainPitch bool) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch += dy * c.MouseSensitivity

	if constrainPitch {
		if c.Pitch > MaxPitch {
			c.Pitch = MaxPitch
		}
		if c.Pitch < -MaxPitch {
			c.Pitch = -MaxPitch
		}
	}
	c.updateVectors()
}

// Zoom changes the field of view by one degree.
func (c *FlyCamera) Zoom(dir ZoomDirection) {
	switch dir {
	case Closer:
		c.FOV--
	case Away:
		c.FOV++
	}
	if c.FOV < MinFOV {
		c.FOV = MinFOV
	}
	if c.FOV > MaxFOV {
		c.FOV = MaxFOV
	}
}

// Reset returns the camera to where it was created, facing down -Z, with
// the configured speed, sensitivity and FOV.
func (c *FlyCamera) Reset() {
	c.Position = c.originPosition
	c.WorldUp = c.originUp
	c.Yaw = DefaultYaw
	c.Pitch = DefaultPitch
	c.FOV = c.originFOV
	c.MovementSpeed = c.originSpeed
	c.MouseSensitivity = c.originSensitivity
	c.updateVectors()
}

// SetViewport updates the aspect ratio after a resize.
func (c *FlyCamera) SetViewport(width, height int) {
	c.Width = width
	c.Height = height
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProjectionMatrix returns the perspective projection for the current FOV.
func (c *FlyCamera) ProjectionMatrix() math.Mat4 {
	aspect := float32(1)
	if c.Height > 0 {
		aspect = float32(c.Width) / float32(c.Height)
	}
	return math.Perspective(math.Radians(c.FOV), aspect, NearClip, FarClip)
}

func (c *FlyCamera) updateVectors() {
	yaw := float64(math.Radians(c.Yaw))
	pitch := float64(math.Radians(c.Pitch))

	front := math.Vec3{
		X: float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
