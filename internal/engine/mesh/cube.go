// Package mesh builds the unit cube drawn for every instance in the cloud.
package mesh

import (
	"bufio"
	"fmt"
	"io"
)

const (
	// TriangleCount is the number of triangles in the cube.
	TriangleCount = 12
	// VertexCount is the number of emitted (non-indexed) vertices.
	VertexCount = TriangleCount * 3
	// FaceCount is the number of cube faces.
	FaceCount = 6
	// VerticesPerFace is the number of emitted vertices per face (two triangles).
	VerticesPerFace = 6
)

// corners are the eight vertices of a unit cube centered on the origin.
var corners = [8][3]float32{
	{0.5, 0.5, 0.5},    // 0
	{-0.5, 0.5, 0.5},   // 1
	{-0.5, -0.5, 0.5},  // 2
	{0.5, -0.5, 0.5},   // 3
	{0.5, -0.5, -0.5},  // 4
	{0.5, 0.5, -0.5},   // 5
	{-0.5, 0.5, -0.5},  // 6
	{-0.5, -0.5, -0.5}, // 7
}

// FaceNormals are the six canonical outward normals.
var FaceNormals = [FaceCount][3]float32{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{-1, 0, 0},
	{0, -1, 0},
	{0, 0, -1},
}

// indices lists the corners of each triangle, two triangles per face,
// counter-clockwise when seen from outside.
var indices = [VertexCount]int{
	0, 1, 2, 0, 2, 3,
	0, 3, 4, 0, 4, 5,
	0, 5, 6, 0, 6, 1,
	7, 1, 6, 7, 2, 1,
	7, 5, 4, 7, 6, 5,
	7, 3, 2, 7, 4, 3,
}

// triangleFace maps each triangle to its entry in FaceNormals.
var triangleFace = [TriangleCount]int{
	2, 2, // +Z
	0, 0, // +X
	1, 1, // +Y
	3, 3, // -X
	5, 5, // -Z
	4, 4, // -Y
}

// Cube holds the de-indexed cube attribute streams.
type Cube struct {
	Vertices [VertexCount * 3]float32
	Normals  [VertexCount * 3]float32
	UVs      [VertexCount * 2]float32
}

// GenerateCube expands the static tables into per-vertex positions,
// normals and texture coordinates.
func GenerateCube() Cube {
	var c Cube
	for tri := 0; tri < TriangleCount; tri++ {
		normal := FaceNormals[triangleFace[tri]]
		for k := 0; k < 3; k++ {
			v := tri*3 + k
			pos := corners[indices[v]]
			copy(c.Vertices[v*3:v*3+3], pos[:])
			copy(c.Normals[v*3:v*3+3], normal[:])
			uv := faceUV(normal, pos)
			copy(c.UVs[v*2:v*2+2], uv[:])
		}
	}
	return c
}

// faceUV projects a vertex onto the two axes orthogonal to the face normal
// and maps each coordinate to 0 or 1 by its sign.
func faceUV(normal, pos [3]float32) [2]float32 {
	var u, v float32
	switch {
	case normal[0] != 0:
		u, v = pos[1], pos[2]
	case normal[1] != 0:
		u, v = pos[0], pos[2]
	default:
		u, v = pos[0], pos[1]
	}
	return [2]float32{step(u), step(v)}
}

func step(x float32) float32 {
	if x > 0 {
		return 1
	}
	return 0
}

// FaceVertexRange returns the first emitted vertex and vertex count of a face.
// Faces are emitted in the order +Z, +X, +Y, -X, -Z, -Y.
func FaceVertexRange(face int) (first, count int32) {
	return int32(face * VerticesPerFace), VerticesPerFace
}

// Dump writes the generated tables grouped per triangle. Output is
// buffered; the first write error is returned.
func (c *Cube) Dump(w io.Writer) error {
	sections := []struct {
		title  string
		data   []float32
		stride int
	}{
		{"Vertices", c.Vertices[:], 3},
		{"Normals", c.Normals[:], 3},
		{"Textures", c.UVs[:], 2},
	}

	bw := bufio.NewWriter(w)
	for _, s := range sections {
		fmt.Fprintf(bw, "%s\n", s.title)
		for v := 0; v < VertexCount; v++ {
			if v > 0 && v%3 == 0 {
				bw.WriteByte('\n')
			}
			fmt.Fprintf(bw, "\t%v\n", s.data[v*s.stride:(v+1)*s.stride])
		}
		bw.WriteByte('\n')
	}
	// bufio.Writer keeps its first error and reports it on Flush.
	return bw.Flush()
}
