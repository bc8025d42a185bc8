package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v", got)
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.TransformVec3(Vec3{1, 2, 3})
	if got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformVec3: got %v, want (11, 22, 33)", got)
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	m := Rotate(Vec3{0, 1, 0}, float32(math.Pi/2))
	got := m.TransformVec3(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if !got.ApproxEqual(Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Rotate Y 90: got %v, want (0, 0, -1)", got)
	}
}

func TestRotateZeroAxis(t *testing.T) {
	if Rotate(Vec3{}, 1.2) != Identity() {
		t.Error("Rotate around zero axis should be identity")
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1.0, 0.1, 100.0)

	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

// The remaining tests check the hand-written matrices against mathgl.

func TestPerspectiveMatchesMathgl(t *testing.T) {
	fov := Radians(45)
	got := Perspective(fov, 1280.0/1024.0, 0.1, 1000)
	want := mgl32.Perspective(fov, 1280.0/1024.0, 0.1, 1000)
	assertMatClose(t, got, want, 1e-4)
}

func TestLookAtMatchesMathgl(t *testing.T) {
	eye := Vec3{0, 0, 20}
	center := Vec3{0, 0, 19}
	up := Vec3{0, 1, 0}

	got := LookAt(eye, center, up)
	want := mgl32.LookAtV(mgl32.Vec3{0, 0, 20}, mgl32.Vec3{0, 0, 19}, mgl32.Vec3{0, 1, 0})
	assertMatClose(t, got, want, 1e-5)
}

func TestRotateMatchesMathgl(t *testing.T) {
	tests := []struct {
		axis  Vec3
		angle float32
	}{
		{Vec3{1, 0, 0}, 0.3},
		{Vec3{0.2, -0.7, 0.4}, 1.7},
		{Vec3{-3, 4, 12}, -2.5},
	}

	for _, tt := range tests {
		got := Rotate(tt.axis, tt.angle)
		n := tt.axis.Normalize()
		want := mgl32.HomogRotate3D(tt.angle, mgl32.Vec3{n.X, n.Y, n.Z})
		assertMatClose(t, got, want, 1e-5)
	}
}

func TestModelCompositionMatchesMathgl(t *testing.T) {
	pos := Vec3{3, -4, -12}
	a := Vec3{0.6, 0.8, 0}
	b := Vec3{0, 0.6, 0.8}

	got := Translate(pos).Mul(Rotate(a, 0.9)).Mul(Rotate(b, 0.45))
	want := mgl32.Translate3D(3, -4, -12).
		Mul4(mgl32.HomogRotate3D(0.9, mgl32.Vec3{0.6, 0.8, 0})).
		Mul4(mgl32.HomogRotate3D(0.45, mgl32.Vec3{0, 0.6, 0.8}))
	assertMatClose(t, got, want, 1e-5)
}

func assertMatClose(t *testing.T, got Mat4, want mgl32.Mat4, eps float32) {
	t.Helper()
	for i := 0; i < 16; i++ {
		if abs32(got[i]-want[i]) > eps {
			t.Errorf("element %d: got %f, want %f", i, got[i], want[i])
		}
	}
}
