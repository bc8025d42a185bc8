package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/fogcubes/pkg/math"
)

// Program is a linked shader program with cached uniform locations.
// Setting a uniform the program does not use is a no-op.
type Program struct {
	ID        uint32
	locations map[string]int32
}

// NewProgram wraps an already linked program.
func NewProgram(id uint32) *Program {
	return &Program{ID: id, locations: make(map[string]int32)}
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Location returns the cached location of a uniform, or -1.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := GetUniform(p.ID, name)
	p.locations[name] = loc
	return loc
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.Location(name), i)
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Location(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Location(name), v)
}

func (p *Program) SetVec3(name string, v math.Vec3) {
	gl.Uniform3f(p.Location(name), v.X, v.Y, v.Z)
}

func (p *Program) SetVec4(name string, v [4]float32) {
	gl.Uniform4f(p.Location(name), v[0], v[1], v[2], v[3])
}

func (p *Program) SetMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(p.Location(name), 1, false, m.Ptr())
}

// BindUniformBlock attaches the named uniform block to a binding point.
// It returns false if the program has no such block.
func (p *Program) BindUniformBlock(name string, binding uint32) bool {
	index := gl.GetUniformBlockIndex(p.ID, gl.Str(name+"\x00"))
	if index == gl.INVALID_INDEX {
		return false
	}
	gl.UniformBlockBinding(p.ID, index, binding)
	return true
}

// UniformBlockSize returns the size in bytes the driver reserves for a block.
func (p *Program) UniformBlockSize(name string) int32 {
	index := gl.GetUniformBlockIndex(p.ID, gl.Str(name+"\x00"))
	if index == gl.INVALID_INDEX {
		return 0
	}
	var size int32
	gl.GetActiveUniformBlockiv(p.ID, index, gl.UNIFORM_BLOCK_DATA_SIZE, &size)
	return size
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
