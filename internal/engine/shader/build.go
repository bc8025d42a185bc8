package shader

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/fogcubes/internal/logger"
)

// Build returns a linked program for the given sources. When cache is not
// nil a stored binary is tried first; if it is missing, stale or rejected
// by the driver the sources are compiled and the fresh binary is stored.
// Only a failed fresh compile or link is an error.
func Build(vertexSrc, fragmentSrc string, cache *BinaryCache, name string) (*Program, error) {
	sum := Checksum(vertexSrc, fragmentSrc)

	if cache != nil {
		id, err := loadBinary(cache, name, sum)
		if err == nil {
			logger.Info("shader binary loaded", zap.String("program", name))
			return NewProgram(id), nil
		}
		if errors.Is(err, ErrCacheMiss) {
			logger.Debug("shader cache miss", zap.String("program", name), zap.Error(err))
		} else {
			logger.Warn("shader binary rejected", zap.String("program", name), zap.Error(err))
		}
	}

	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	logger.Info("shader program compiled", zap.String("program", name), zap.Uint32("id", id))

	if cache != nil {
		if err := saveBinary(cache, name, sum, id); err != nil {
			logger.Warn("failed to cache shader binary", zap.String("program", name), zap.Error(err))
		}
	}
	return NewProgram(id), nil
}

func loadBinary(cache *BinaryCache, name, checksum string) (uint32, error) {
	meta, blob, err := cache.Load(name, checksum)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.ProgramBinary(program, meta.Format, unsafe.Pointer(&blob[0]), int32(len(blob)))
	if err := linkStatus(program); err != nil {
		gl.DeleteProgram(program)
		return 0, err
	}
	return program, nil
}

func saveBinary(cache *BinaryCache, name, checksum string, program uint32) error {
	var length int32
	gl.GetProgramiv(program, gl.PROGRAM_BINARY_LENGTH, &length)
	if length <= 0 {
		return errors.New("driver returned an empty program binary")
	}

	blob := make([]byte, length)
	var format uint32
	gl.GetProgramBinary(program, length, &length, &format, unsafe.Pointer(&blob[0]))
	return cache.Store(name, format, blob[:length], checksum)
}
