// Package window creates the OpenGL 4.1 core window and feeds its events
// into an input.Queue. SDL2 is the default backend; GLFW is the alternative.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/fogcubes/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Backend names accepted in Config.Backend.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config holds window configuration.
type Config struct {
	Backend    string
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window is an OpenGL-capable window owned by the render thread.
type Window interface {
	// PollEvents moves pending window-system events into q without blocking.
	PollEvents(q *input.Queue)
	// Present swaps the front and back buffers.
	Present()
	// DrawableSize returns the framebuffer size in pixels.
	DrawableSize() (int, int)
	SetTitle(title string)
	Close()
}

// New creates a window using the configured backend.
func New(cfg Config) (Window, error) {
	switch cfg.Backend {
	case "", BackendSDL:
		return newSDL(cfg)
	case BackendGLFW:
		return newGLFW(cfg)
	}
	return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
}
