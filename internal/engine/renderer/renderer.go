// Package renderer owns global OpenGL state for the scene.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/fogcubes/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
	// CheckErrors enables Checkpoint. End checks regardless.
	CheckErrors bool
}

// Renderer handles frame setup and error reporting.
type Renderer struct {
	config Config
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
		zap.Int32("max_uniform_block_size", MaxUniformBlockSize()),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	r := &Renderer{config: cfg}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the frame. GL errors raised while drawing are always
// drained and logged.
func (r *Renderer) End() {
	CheckError("frame")
}

// Checkpoint drains GL errors after op when per-stage checks are enabled,
// so an error can be attributed to the stage that raised it.
func (r *Renderer) Checkpoint(op string) {
	if r.config.CheckErrors {
		CheckError(op)
	}
}

// ReadPixels returns the framebuffer as tightly packed RGBA rows,
// bottom row first.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}

// MaxUniformBlockSize returns GL_MAX_UNIFORM_BLOCK_SIZE in bytes.
func MaxUniformBlockSize() int32 {
	var size int32
	gl.GetIntegerv(gl.MAX_UNIFORM_BLOCK_SIZE, &size)
	return size
}

var errorNames = map[uint32]string{
	gl.INVALID_ENUM:                  "GL_INVALID_ENUM",
	gl.INVALID_VALUE:                 "GL_INVALID_VALUE",
	gl.INVALID_OPERATION:             "GL_INVALID_OPERATION",
	gl.INVALID_FRAMEBUFFER_OPERATION: "GL_INVALID_FRAMEBUFFER_OPERATION",
	gl.OUT_OF_MEMORY:                 "GL_OUT_OF_MEMORY",
}

// ErrorName returns the symbolic name of a glGetError code.
func ErrorName(code uint32) string {
	if name, ok := errorNames[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", code)
}

// getError is swapped out in tests, which run without a GL context.
var getError = gl.GetError

// maxDrain bounds one drain; a lost context can report errors forever.
const maxDrain = 64

// CheckError drains the GL error queue and logs every error as a warning.
// It reports whether any error was pending.
func CheckError(op string) bool {
	found := false
	for i := 0; i < maxDrain; i++ {
		code := getError()
		if code == gl.NO_ERROR {
			break
		}
		found = true
		logger.Warn("OpenGL error", zap.String("op", op), zap.String("error", ErrorName(code)))
	}
	return found
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}
