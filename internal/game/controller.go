package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/fogcubes/internal/engine/camera"
	"github.com/Faultbox/fogcubes/internal/engine/input"
	"github.com/Faultbox/fogcubes/internal/game/fog"
	"github.com/Faultbox/fogcubes/internal/logger"
)

// KeyStep converts the previous frame's duration into the distance
// multiplier handed to the camera for one key press.
func KeyStep(frame time.Duration) float32 {
	return float32(frame.Nanoseconds()) / 1e7 * 0.5
}

// RotationDegrees is the spin angle after elapsed time: one degree every
// 10ms, wrapping at 360.
func RotationDegrees(elapsed time.Duration) float32 {
	return float32((elapsed.Milliseconds() / 10) % 360)
}

var movementKeys = map[input.Key]camera.Movement{
	input.KeyW: camera.Forward,
	input.KeyS: camera.Backward,
	input.KeyA: camera.Left,
	input.KeyD: camera.Right,
	input.KeyR: camera.Up,
	input.KeyF: camera.Down,
}

// controller applies input to the camera and fog. It is the input.Sink of
// the frame loop.
type controller struct {
	camera *camera.FlyCamera
	fog    *fog.State

	step float32

	quit       bool
	screenshot bool

	resized       bool
	width, height int
}

func newController(cam *camera.FlyCamera, f *fog.State) *controller {
	return &controller{camera: cam, fog: f}
}

// OnKeyDown implements input.Sink.
func (c *controller) OnKeyDown(key input.Key) {
	if dir, ok := movementKeys[key]; ok {
		c.camera.Move(dir, c.step)
		return
	}

	switch key {
	case input.KeySpace:
		c.fog.Toggle()
		logger.Debug("fog toggled", zap.Bool("enabled", c.fog.Enabled))
	case input.KeyZ:
		c.camera.Reset()
	case input.KeyUp:
		c.camera.Zoom(camera.Closer)
	case input.KeyDown:
		c.camera.Zoom(camera.Away)
	case input.KeyRight:
		c.fog.Shift(1)
		logger.Debug("fog shifted", zap.Float32("min", c.fog.Min), zap.Float32("max", c.fog.Max))
	case input.KeyLeft:
		c.fog.Shift(-1)
		logger.Debug("fog shifted", zap.Float32("min", c.fog.Min), zap.Float32("max", c.fog.Max))
	case input.KeyEscape:
		c.quit = true
	case input.KeyF12:
		c.screenshot = true
	}
}

// OnPointerMove implements input.Sink.
func (c *controller) OnPointerMove(dx, dy float32) {
	c.camera.Look(dx, dy, true)
}

// OnCloseRequested implements input.Sink.
func (c *controller) OnCloseRequested() {
	c.quit = true
}

// OnResize implements input.ResizeSink.
func (c *controller) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.camera.SetViewport(width, height)
	c.resized = true
	c.width, c.height = width, height
}

// takeResize reports a pending resize once.
func (c *controller) takeResize() (width, height int, ok bool) {
	if !c.resized {
		return 0, 0, false
	}
	c.resized = false
	return c.width, c.height, true
}

// takeScreenshot reports a pending screenshot request once.
func (c *controller) takeScreenshot() bool {
	ok := c.screenshot
	c.screenshot = false
	return ok
}
