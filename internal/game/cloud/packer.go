package cloud

import (
	"sort"

	"github.com/Faultbox/fogcubes/pkg/math"
)

// Sizes of the std140 instance block, in floats.
const (
	vec4Floats = 4
	mat4Floats = 16
	// instanceFloats is the block footprint of one instance:
	// instIndex1, instIndex2, distance (each a vec4 slot) and instModel.
	instanceFloats = 3*vec4Floats + mat4Floats
)

// BlockSize returns the size in bytes of the uniform block for n instances.
func BlockSize(n int) int {
	return n * instanceFloats * 4
}

// FrameData holds one frame of packed instance data in draw order.
type FrameData struct {
	Models    []math.Mat4
	IndexA    [][4]float32
	IndexB    [][2]float32
	Distances []float32
}

// Len returns the number of packed instances.
func (f *FrameData) Len() int { return len(f.Models) }

// Std140 lays the frame out as
//
//	vec4 instIndex1[N]; vec4 instIndex2[N]; vec4 distance[N]; mat4 instModel[N];
//
// Every array element occupies a 16-byte stride; unused components are zero.
// dst is reused when it is large enough.
func (f *FrameData) Std140(dst []float32) []float32 {
	n := f.Len()
	size := n * instanceFloats
	if cap(dst) < size {
		dst = make([]float32, size)
	}
	dst = dst[:size]

	idx1 := dst[0 : n*vec4Floats]
	idx2 := dst[n*vec4Floats : 2*n*vec4Floats]
	dist := dst[2*n*vec4Floats : 3*n*vec4Floats]
	models := dst[3*n*vec4Floats:]

	for i := 0; i < n; i++ {
		copy(idx1[i*4:], f.IndexA[i][:])
		idx2[i*4+0] = f.IndexB[i][0]
		idx2[i*4+1] = f.IndexB[i][1]
		idx2[i*4+2] = 0
		idx2[i*4+3] = 0
		dist[i*4+0] = f.Distances[i]
		dist[i*4+1] = 0
		dist[i*4+2] = 0
		dist[i*4+3] = 0
		copy(models[i*mat4Floats:], f.Models[i][:])
	}
	return dst
}

// Packer sorts the cloud back to front and builds each frame's data.
type Packer struct {
	instances []Instance
	frame     FrameData
}

// NewPacker takes ownership of instances; their order changes every Update.
func NewPacker(instances []Instance) *Packer {
	n := len(instances)
	return &Packer{
		instances: instances,
		frame: FrameData{
			Models:    make([]math.Mat4, n),
			IndexA:    make([][4]float32, n),
			IndexB:    make([][2]float32, n),
			Distances: make([]float32, n),
		},
	}
}

// Instances returns the instances in their current (last sorted) order.
func (p *Packer) Instances() []Instance { return p.instances }

// Update recomputes camera distances, sorts farthest first and packs the
// model matrices for the given rotation angle in degrees. The returned
// FrameData is owned by the packer and overwritten on the next call.
func (p *Packer) Update(camera math.Vec3, degrees float32) *FrameData {
	for i := range p.instances {
		p.instances[i].Distance = p.instances[i].Position.Distance(camera)
	}
	sort.SliceStable(p.instances, func(i, j int) bool {
		return p.instances[i].Distance > p.instances[j].Distance
	})

	for i := range p.instances {
		inst := &p.instances[i]
		p.frame.Models[i] = ModelMatrix(inst, degrees)
		t := inst.Textures
		p.frame.IndexA[i] = [4]float32{float32(t[0]), float32(t[1]), float32(t[2]), float32(t[3])}
		p.frame.IndexB[i] = [2]float32{float32(t[4]), float32(t[5])}
		p.frame.Distances[i] = inst.Distance
	}
	return &p.frame
}

// ModelMatrix is T(position) * R(deg*rate*2, axisA) * R(deg*rate, axisB).
// The primary axis spins at twice the secondary rate.
func ModelMatrix(inst *Instance, degrees float32) math.Mat4 {
	angle := degrees * inst.SpinRate
	return math.Translate(inst.Position).
		Mul(math.Rotate(inst.SpinAxisA, angle*2)).
		Mul(math.Rotate(inst.SpinAxisB, angle))
}
