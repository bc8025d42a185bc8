package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// UniformInfo describes one active uniform of a linked program.
type UniformInfo struct {
	Name     string
	Location int32
	Size     int32
	Type     uint32
}

func (u UniformInfo) String() string {
	return fmt.Sprintf("%s (location %d, %s[%d])", u.Name, u.Location, TypeName(u.Type), u.Size)
}

// ActiveUniforms lists the uniforms the driver kept after linking.
func ActiveUniforms(program uint32) []UniformInfo {
	var count, maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if count == 0 || maxLen == 0 {
		return nil
	}

	buf := make([]uint8, maxLen)
	out := make([]UniformInfo, 0, count)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, i, maxLen, &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		out = append(out, UniformInfo{
			Name:     name,
			Location: GetUniform(program, name),
			Size:     size,
			Type:     xtype,
		})
	}
	return out
}

var typeNames = map[uint32]string{
	gl.FLOAT:            "float",
	gl.FLOAT_VEC2:       "vec2",
	gl.FLOAT_VEC3:       "vec3",
	gl.FLOAT_VEC4:       "vec4",
	gl.INT:              "int",
	gl.INT_VEC2:         "ivec2",
	gl.INT_VEC3:         "ivec3",
	gl.INT_VEC4:         "ivec4",
	gl.UNSIGNED_INT:     "uint",
	gl.BOOL:             "bool",
	gl.FLOAT_MAT2:       "mat2",
	gl.FLOAT_MAT3:       "mat3",
	gl.FLOAT_MAT4:       "mat4",
	gl.SAMPLER_2D:       "sampler2D",
	gl.SAMPLER_2D_ARRAY: "sampler2DArray",
	gl.SAMPLER_CUBE:     "samplerCube",
}

// TypeName returns the GLSL spelling of a uniform type enum.
func TypeName(t uint32) string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", t)
}
