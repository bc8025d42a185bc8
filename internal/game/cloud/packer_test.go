package cloud

import (
	"testing"

	"github.com/Faultbox/fogcubes/pkg/math"
)

func testCloud(t *testing.T) []Instance {
	t.Helper()
	instances, _, err := Generate(480, 16, NewRNG(11), DefaultPlacementOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return instances
}

func TestUpdateSortsFarthestFirst(t *testing.T) {
	p := NewPacker(testCloud(t))
	cameras := []math.Vec3{{X: 0, Y: 0, Z: 20}, {X: -30, Y: 5, Z: -10}, {X: 12, Y: -40, Z: 3}}

	for frame, cam := range cameras {
		data := p.Update(cam, float32(frame*37))
		for i := 1; i < data.Len(); i++ {
			if data.Distances[i] > data.Distances[i-1] {
				t.Fatalf("frame %d: distance[%d]=%v > distance[%d]=%v",
					frame, i, data.Distances[i], i-1, data.Distances[i-1])
			}
		}
	}
}

func TestUpdateArraysAligned(t *testing.T) {
	p := NewPacker(testCloud(t))
	cam := math.Vec3{X: 3, Y: 1, Z: 20}
	data := p.Update(cam, 90)
	instances := p.Instances()

	for i := range instances {
		inst := instances[i]
		if got := data.Models[i].Translation(); !got.ApproxEqual(inst.Position, 1e-5) {
			t.Errorf("model %d translation %v, want %v", i, got, inst.Position)
		}
		if got := data.Models[i].Translation().Distance(cam); got-data.Distances[i] > 1e-4 || data.Distances[i]-got > 1e-4 {
			t.Errorf("distance %d = %v, want %v", i, data.Distances[i], got)
		}
		tex := inst.Textures
		wantA := [4]float32{float32(tex[0]), float32(tex[1]), float32(tex[2]), float32(tex[3])}
		wantB := [2]float32{float32(tex[4]), float32(tex[5])}
		if data.IndexA[i] != wantA || data.IndexB[i] != wantB {
			t.Errorf("texture indices %d = %v %v, want %v %v", i, data.IndexA[i], data.IndexB[i], wantA, wantB)
		}
	}
}

func TestUpdateStable(t *testing.T) {
	// Two cubes at the same distance keep their relative order.
	instances := []Instance{
		{Position: math.Vec3{X: 1}, Textures: [6]int{1}},
		{Position: math.Vec3{X: -1}, Textures: [6]int{2}},
		{Position: math.Vec3{X: 5}, Textures: [6]int{3}},
	}
	p := NewPacker(instances)
	p.Update(math.Vec3{}, 0)

	got := p.Instances()
	if got[0].Textures[0] != 3 || got[1].Textures[0] != 1 || got[2].Textures[0] != 2 {
		t.Errorf("unexpected order: %d %d %d", got[0].Textures[0], got[1].Textures[0], got[2].Textures[0])
	}
}

func TestModelMatrixDoubledRate(t *testing.T) {
	z := math.Vec3{Z: 1}
	inst := Instance{
		Position:  math.Vec3{X: 2, Y: -1, Z: 4},
		SpinAxisA: z,
		SpinAxisB: z,
		SpinRate:  math.Radians(2),
	}

	// Both rotations share an axis, so the angles add: 2r + r = 3r per degree.
	got := ModelMatrix(&inst, 10)
	want := math.Translate(inst.Position).Mul(math.Rotate(z, 3*10*math.Radians(2)))
	for i := range got {
		if d := got[i] - want[i]; d > 1e-5 || d < -1e-5 {
			t.Fatalf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStd140Layout(t *testing.T) {
	data := &FrameData{
		Models:    []math.Mat4{math.Translate(math.Vec3{X: 1}), math.Translate(math.Vec3{Y: 2})},
		IndexA:    [][4]float32{{1, 2, 3, 4}, {5, 6, 7, 8}},
		IndexB:    [][2]float32{{9, 10}, {11, 12}},
		Distances: []float32{30, 20},
	}

	buf := data.Std140(nil)
	if len(buf)*4 != BlockSize(2) {
		t.Fatalf("packed %d bytes, BlockSize says %d", len(buf)*4, BlockSize(2))
	}

	checks := []struct {
		name   string
		offset int
		want   []float32
	}{
		{"instIndex1[1]", 4, []float32{5, 6, 7, 8}},
		{"instIndex2[0]", 8, []float32{9, 10, 0, 0}},
		{"instIndex2[1]", 12, []float32{11, 12, 0, 0}},
		{"distance[0]", 16, []float32{30, 0, 0, 0}},
		{"distance[1]", 20, []float32{20, 0, 0, 0}},
		{"instModel[1] translation", 24 + 16 + 12, []float32{0, 2, 0, 1}},
	}
	for _, c := range checks {
		for k, w := range c.want {
			if buf[c.offset+k] != w {
				t.Errorf("%s[%d] = %v, want %v", c.name, k, buf[c.offset+k], w)
			}
		}
	}

	again := data.Std140(buf)
	if &again[0] != &buf[0] {
		t.Error("Std140 should reuse a large enough buffer")
	}
}

func TestBlockSize(t *testing.T) {
	if got := BlockSize(480); got != 53760 {
		t.Errorf("BlockSize(480) = %d, want 53760", got)
	}
}
