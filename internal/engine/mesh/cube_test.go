package mesh

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestGenerateCubeSizes(t *testing.T) {
	c := GenerateCube()
	if len(c.Vertices) != 108 {
		t.Errorf("expected 108 vertex floats, got %d", len(c.Vertices))
	}
	if len(c.Normals) != 108 {
		t.Errorf("expected 108 normal floats, got %d", len(c.Normals))
	}
	if len(c.UVs) != 72 {
		t.Errorf("expected 72 uv floats, got %d", len(c.UVs))
	}
}

func TestGenerateCubeDeterministic(t *testing.T) {
	a := GenerateCube()
	b := GenerateCube()
	if a != b {
		t.Error("GenerateCube should be deterministic")
	}
}

func TestNormalsAreCanonical(t *testing.T) {
	c := GenerateCube()
	for v := 0; v < VertexCount; v++ {
		n := [3]float32{c.Normals[v*3], c.Normals[v*3+1], c.Normals[v*3+2]}
		found := false
		for _, fn := range FaceNormals {
			if n == fn {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("vertex %d: normal %v is not a canonical axis", v, n)
		}
	}
}

// Every vertex of a triangle must lie on the plane its normal points out of.
func TestNormalsMatchFacePlane(t *testing.T) {
	c := GenerateCube()
	for v := 0; v < VertexCount; v++ {
		var along float32
		for axis := 0; axis < 3; axis++ {
			along += c.Vertices[v*3+axis] * c.Normals[v*3+axis]
		}
		if along != 0.5 {
			t.Errorf("vertex %d: projection on normal = %v, want 0.5", v, along)
		}
	}
}

func TestFacesAreContiguous(t *testing.T) {
	c := GenerateCube()
	for face := 0; face < FaceCount; face++ {
		first, count := FaceVertexRange(face)
		if count != 6 {
			t.Fatalf("face %d: expected 6 vertices, got %d", face, count)
		}
		want := [3]float32{c.Normals[first*3], c.Normals[first*3+1], c.Normals[first*3+2]}
		for v := first; v < first+count; v++ {
			got := [3]float32{c.Normals[v*3], c.Normals[v*3+1], c.Normals[v*3+2]}
			if got != want {
				t.Errorf("face %d vertex %d: normal %v, want %v", face, v, got, want)
			}
		}
	}
}

func TestFaceUV(t *testing.T) {
	tests := []struct {
		name   string
		normal [3]float32
		pos    [3]float32
		want   [2]float32
	}{
		{"x face uses y,z", [3]float32{1, 0, 0}, [3]float32{0.5, 0.5, -0.5}, [2]float32{1, 0}},
		{"y face uses x,z", [3]float32{0, -1, 0}, [3]float32{-0.5, -0.5, 0.5}, [2]float32{0, 1}},
		{"z face uses x,y", [3]float32{0, 0, 1}, [3]float32{0.5, 0.5, 0.5}, [2]float32{1, 1}},
		{"negative corner", [3]float32{0, 0, -1}, [3]float32{-0.5, -0.5, -0.5}, [2]float32{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := faceUV(tt.normal, tt.pos); got != tt.want {
				t.Errorf("faceUV() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDump(t *testing.T) {
	c := GenerateCube()
	var buf bytes.Buffer
	if err := c.Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()
	for _, section := range []string{"Vertices", "Normals", "Textures"} {
		if !strings.Contains(out, section) {
			t.Errorf("dump is missing %q section", section)
		}
	}
}

// failingWriter accepts n bytes, then fails every write.
type failingWriter struct {
	n int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		written := w.n
		w.n = 0
		return written, errors.New("disk full")
	}
	w.n -= len(p)
	return len(p), nil
}

func TestDumpReportsWriteError(t *testing.T) {
	c := GenerateCube()
	for _, limit := range []int{0, 64, 512} {
		if err := c.Dump(&failingWriter{n: limit}); err == nil {
			t.Errorf("limit %d: expected write error, got nil", limit)
		}
	}
}

func TestExportGLTF(t *testing.T) {
	c := GenerateCube()
	path := filepath.Join(t.TempDir(), "cube.glb")
	if err := ExportGLTF(&c, path); err != nil {
		t.Fatalf("ExportGLTF: %v", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("reopening export: %v", err)
	}
	if len(doc.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(doc.Meshes))
	}
	prim := doc.Meshes[0].Primitives[0]
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		t.Fatal("missing POSITION attribute")
	}
	if got := doc.Accessors[posIdx].Count; got != VertexCount {
		t.Errorf("expected %d positions, got %d", VertexCount, got)
	}
}
