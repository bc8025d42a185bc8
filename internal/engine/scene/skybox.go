package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/fogcubes/internal/engine/mesh"
	"github.com/Faultbox/fogcubes/internal/engine/shader"
	"github.com/Faultbox/fogcubes/pkg/math"
)

// Skybox draws a cube map behind everything else.
type Skybox struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	texture uint32
}

// NewSkybox uploads the unit cube used to sample the cube map.
func NewSkybox(program *shader.Program, cube *mesh.Cube, cubeMap uint32) *Skybox {
	s := &Skybox{program: program, texture: cubeMap}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	uploadAttrib(s.vbo, 0, 3, cube.Vertices[:])
	gl.BindVertexArray(0)

	program.Use()
	program.SetInt("skybox", 0)
	return s
}

// SkyViewProjection drops the translation from view so the sky stays
// centered on the camera.
func SkyViewProjection(view, projection math.Mat4) math.Mat4 {
	view[12], view[13], view[14] = 0, 0, 0
	return projection.Mul(view)
}

// Draw renders the sky. Call it before the cloud: it writes no depth and
// the cube is seen from inside, so front faces are culled.
func (s *Skybox) Draw(view, projection math.Mat4) {
	s.program.Use()
	s.program.SetMat4("skyVP", SkyViewProjection(view, projection))

	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)
	gl.CullFace(gl.FRONT)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.texture)
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, mesh.VertexCount)
	gl.BindVertexArray(0)

	gl.CullFace(gl.BACK)
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

func (s *Skybox) Destroy() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		gl.DeleteBuffers(1, &s.vbo)
		gl.DeleteTextures(1, &s.texture)
		s.vao = 0
	}
	s.program.Delete()
}
