package renderer

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/fogcubes/internal/logger"
)

// fakeErrors replaces the GL error source with a fixed queue.
func fakeErrors(t *testing.T, codes ...uint32) {
	t.Helper()
	orig := getError
	t.Cleanup(func() { getError = orig })
	getError = func() uint32 {
		if len(codes) == 0 {
			return gl.NO_ERROR
		}
		c := codes[0]
		codes = codes[1:]
		return c
	}
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	orig := logger.Log
	t.Cleanup(func() { logger.Log = orig })
	logger.Log = zap.New(core)
	return logs
}

func TestEndAlwaysDrainsErrors(t *testing.T) {
	logs := observeLogs(t)
	fakeErrors(t, gl.INVALID_OPERATION, gl.OUT_OF_MEMORY)

	// Per-stage checks off, as in a default config.
	r := &Renderer{config: Config{CheckErrors: false}}
	r.End()

	entries := logs.FilterMessage("OpenGL error").All()
	if len(entries) != 2 {
		t.Fatalf("logged %d GL errors, want 2", len(entries))
	}
	if got := entries[0].ContextMap()["error"]; got != "GL_INVALID_OPERATION" {
		t.Errorf("first error = %v", got)
	}
	if got := entries[1].ContextMap()["op"]; got != "frame" {
		t.Errorf("op = %v, want frame", got)
	}
}

func TestCheckpointFollowsConfig(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		want    int
	}{
		{"disabled", false, 0},
		{"enabled", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observeLogs(t)
			fakeErrors(t, gl.INVALID_ENUM)

			r := &Renderer{config: Config{CheckErrors: tt.enabled}}
			r.Checkpoint("cloud")
			if got := logs.Len(); got != tt.want {
				t.Errorf("logged %d entries, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckErrorBoundedDrain(t *testing.T) {
	logger.Nop()
	orig := getError
	t.Cleanup(func() { getError = orig })
	calls := 0
	getError = func() uint32 {
		calls++
		return gl.INVALID_OPERATION
	}

	if !CheckError("lost context") {
		t.Error("expected pending errors to be reported")
	}
	if calls != maxDrain {
		t.Errorf("polled %d times, want %d", calls, maxDrain)
	}
}

func TestCheckErrorClean(t *testing.T) {
	logger.Nop()
	fakeErrors(t)
	if CheckError("idle") {
		t.Error("expected no errors")
	}
}

func TestErrorName(t *testing.T) {
	tests := []struct {
		code uint32
		want string
	}{
		{gl.INVALID_ENUM, "GL_INVALID_ENUM"},
		{gl.OUT_OF_MEMORY, "GL_OUT_OF_MEMORY"},
		{0x1234, "0x1234"},
	}
	for _, tt := range tests {
		if got := ErrorName(tt.code); got != tt.want {
			t.Errorf("ErrorName(%#x) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
