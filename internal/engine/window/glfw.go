package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/fogcubes/internal/engine/input"
	"github.com/Faultbox/fogcubes/internal/logger"
)

var glfwKeys = map[glfw.Key]input.Key{
	glfw.KeySpace:  input.KeySpace,
	glfw.KeyEscape: input.KeyEscape,
	glfw.KeyW:      input.KeyW,
	glfw.KeyA:      input.KeyA,
	glfw.KeyS:      input.KeyS,
	glfw.KeyD:      input.KeyD,
	glfw.KeyR:      input.KeyR,
	glfw.KeyF:      input.KeyF,
	glfw.KeyZ:      input.KeyZ,
	glfw.KeyUp:     input.KeyUp,
	glfw.KeyDown:   input.KeyDown,
	glfw.KeyLeft:   input.KeyLeft,
	glfw.KeyRight:  input.KeyRight,
	glfw.KeyF12:    input.KeyF12,
}

// glfwWindow delivers GLFW callbacks into the queue passed to PollEvents.
type glfwWindow struct {
	handle *glfw.Window
	queue  *input.Queue

	// Last cursor position; GLFW reports absolute coordinates.
	lastX, lastY float64
	seenCursor   bool
}

func newGLFW(cfg Config) (*glfwWindow, error) {
	logger.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		handle.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}

	w := &glfwWindow{handle: handle}
	handle.SetKeyCallback(w.onKey)
	handle.SetCursorPosCallback(w.onCursor)
	handle.SetFramebufferSizeCallback(w.onFramebufferSize)
	handle.SetCloseCallback(w.onClose)

	logger.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

func (w *glfwWindow) push(e input.Event) {
	if w.queue != nil {
		w.queue.Push(e)
	}
}

func (w *glfwWindow) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	if k, ok := glfwKeys[key]; ok {
		w.push(input.Event{Type: input.EventKeyDown, Key: k})
	}
}

func (w *glfwWindow) onCursor(_ *glfw.Window, x, y float64) {
	if !w.seenCursor {
		w.lastX, w.lastY = x, y
		w.seenCursor = true
		return
	}
	dx, dy := x-w.lastX, w.lastY-y
	w.lastX, w.lastY = x, y
	w.push(input.Event{Type: input.EventPointerMove, DX: float32(dx), DY: float32(dy)})
}

func (w *glfwWindow) onFramebufferSize(_ *glfw.Window, width, height int) {
	w.push(input.Event{Type: input.EventWindowResize, Width: width, Height: height})
}

func (w *glfwWindow) onClose(_ *glfw.Window) {
	w.push(input.Event{Type: input.EventQuit})
}

// PollEvents runs the GLFW callbacks synchronously against q.
func (w *glfwWindow) PollEvents(q *input.Queue) {
	w.queue = q
	glfw.PollEvents()
	w.queue = nil
}

func (w *glfwWindow) Present() {
	w.handle.SwapBuffers()
}

func (w *glfwWindow) DrawableSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

func (w *glfwWindow) SetTitle(title string) {
	w.handle.SetTitle(title)
}

func (w *glfwWindow) Close() {
	logger.Info("closing window")
	w.handle.Destroy()
	glfw.Terminate()
}
