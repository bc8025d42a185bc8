// Package scene draws the cube cloud and its optional sky backdrop.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/fogcubes/internal/engine/lighting"
	"github.com/Faultbox/fogcubes/internal/engine/mesh"
	"github.com/Faultbox/fogcubes/internal/engine/shader"
	"github.com/Faultbox/fogcubes/internal/logger"
	"github.com/Faultbox/fogcubes/pkg/math"
)

const (
	// BlockName is the std140 uniform block holding per-instance data.
	BlockName = "itemData"
	// BlockBinding is the binding point shared by the program and the buffer.
	BlockBinding = 0

	// bytesPerInstance is three vec4 arrays plus one mat4 array.
	bytesPerInstance = 3*16 + 64
)

// ErrBlockTooLarge is returned when the instance block does not fit the
// driver's uniform block limit.
var ErrBlockTooLarge = errors.New("instance block exceeds GL_MAX_UNIFORM_BLOCK_SIZE")

// InstanceBlock is per-frame instance data packed in std140 order.
type InstanceBlock interface {
	Len() int
	Std140(dst []float32) []float32
}

// Fog is the fog state as the cloud shader sees it.
type Fog struct {
	Enabled bool
	Min     float32
	Max     float32
	Color   [4]float32
}

// View holds the per-frame camera state.
type View struct {
	Projection math.Mat4
	View       math.Mat4
	Position   math.Vec3
}

// CloudConfig describes the textures and instance layout of the cloud.
type CloudConfig struct {
	ImageCount        int
	InstancesPerImage int
	CrateTexture      uint32 // unit 0
	ImageArray        uint32 // unit 1
}

// DrawCall is one instanced draw of a single cube face.
type DrawCall struct {
	Repetition int32
	Side       int32
	First      int32
	Count      int32
}

// DrawCalls lists the draws for one frame: every face of every image group,
// image-major. Each call draws instancesPerImage instances.
func DrawCalls(imageCount int) []DrawCall {
	calls := make([]DrawCall, 0, imageCount*mesh.FaceCount)
	for img := 0; img < imageCount; img++ {
		for face := 0; face < mesh.FaceCount; face++ {
			first, count := mesh.FaceVertexRange(face)
			calls = append(calls, DrawCall{
				Repetition: int32(img),
				Side:       int32(face),
				First:      first,
				Count:      count,
			})
		}
	}
	return calls
}

// CheckBlockFits reports ErrBlockTooLarge when instances would not fit in a
// uniform block of maxBytes.
func CheckBlockFits(instances int, maxBytes int32) error {
	need := instances * bytesPerInstance
	if need > int(maxBytes) {
		return fmt.Errorf("%w: need %d bytes for %d instances, limit %d",
			ErrBlockTooLarge, need, instances, maxBytes)
	}
	return nil
}

// CloudRenderer draws every cube instance with one uniform block upload per
// frame and imageCount*6 instanced draws.
type CloudRenderer struct {
	program *shader.Program

	vao  uint32
	vbos [3]uint32
	ubo  uint32

	crateTex uint32
	arrayTex uint32

	perImage int32
	calls    []DrawCall
	block    []float32
}

// NewCloudRenderer uploads the cube mesh and allocates the instance block.
// maxBlockBytes is the driver's GL_MAX_UNIFORM_BLOCK_SIZE.
func NewCloudRenderer(program *shader.Program, cube *mesh.Cube, cfg CloudConfig, maxBlockBytes int32) (*CloudRenderer, error) {
	if cfg.ImageCount <= 0 || cfg.InstancesPerImage <= 0 {
		return nil, fmt.Errorf("invalid cloud layout: %d images x %d instances", cfg.ImageCount, cfg.InstancesPerImage)
	}
	instances := cfg.ImageCount * cfg.InstancesPerImage
	if err := CheckBlockFits(instances, maxBlockBytes); err != nil {
		return nil, err
	}
	if !program.BindUniformBlock(BlockName, BlockBinding) {
		return nil, fmt.Errorf("cloud program has no %q uniform block", BlockName)
	}

	blockBytes := instances * bytesPerInstance
	if got := program.UniformBlockSize(BlockName); int(got) != blockBytes {
		logger.Warn("uniform block size differs from std140 layout",
			zap.Int32("driver", got),
			zap.Int("expected", blockBytes),
		)
	}

	r := &CloudRenderer{
		program:  program,
		crateTex: cfg.CrateTexture,
		arrayTex: cfg.ImageArray,
		perImage: int32(cfg.InstancesPerImage),
		calls:    DrawCalls(cfg.ImageCount),
		block:    make([]float32, 0, blockBytes/4),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(3, &r.vbos[0])
	uploadAttrib(r.vbos[0], 0, 3, cube.Vertices[:])
	uploadAttrib(r.vbos[1], 1, 3, cube.Normals[:])
	uploadAttrib(r.vbos[2], 2, 2, cube.UVs[:])
	gl.BindVertexArray(0)

	gl.GenBuffers(1, &r.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, blockBytes, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, BlockBinding, r.ubo)

	program.Use()
	program.SetInt("cratetex", 0)
	program.SetInt("tex", 1)

	logger.Info("cloud renderer ready",
		zap.Int("instances", instances),
		zap.Int("images", cfg.ImageCount),
		zap.Int("block_bytes", blockBytes),
		zap.Int("draws_per_frame", len(r.calls)),
	)
	return r, nil
}

func uploadAttrib(vbo, index uint32, size int32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, size*4, 0)
	gl.EnableVertexAttribArray(index)
}

// SetLights uploads the point lights. They persist until the next call.
func (r *CloudRenderer) SetLights(lights *lighting.PointLightBuffer) {
	r.program.Use()
	lights.Upload(r.program)
	logger.Debug("point lights uploaded", zap.Int("count", lights.Count()))
}

// Draw uploads the instance block and issues the instanced draws.
func (r *CloudRenderer) Draw(frame InstanceBlock, v View, f Fog) {
	p := r.program
	p.Use()

	p.SetMat4("projection", v.Projection)
	p.SetMat4("view", v.View)
	p.SetVec3("viewPos", v.Position)
	p.SetBool("foggy", f.Enabled)
	p.SetFloat("fogMinDist", f.Min)
	p.SetFloat("fogMaxDist", f.Max)
	p.SetVec4("fogColor", f.Color)

	r.block = frame.Std140(r.block[:0])
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(r.block)*4, gl.Ptr(r.block))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, BlockBinding, r.ubo)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.crateTex)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, r.arrayTex)

	gl.BindVertexArray(r.vao)
	for _, c := range r.calls {
		p.SetInt("repetition", c.Repetition)
		p.SetInt("side", c.Side)
		gl.DrawArraysInstanced(gl.TRIANGLES, c.First, c.Count, r.perImage)
	}
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// Destroy releases GPU resources, including the program and textures.
func (r *CloudRenderer) Destroy() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		gl.DeleteBuffers(3, &r.vbos[0])
		gl.DeleteBuffers(1, &r.ubo)
		r.vao = 0
	}
	textures := []uint32{r.crateTex, r.arrayTex}
	gl.DeleteTextures(int32(len(textures)), &textures[0])
	r.program.Delete()
}
