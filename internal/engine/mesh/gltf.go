package mesh

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ExportGLTF writes the cube as a single-mesh glTF document for inspection
// in external viewers. The file format follows the path extension (.gltf or .glb).
func ExportGLTF(c *Cube, path string) error {
	positions := make([][3]float32, VertexCount)
	normals := make([][3]float32, VertexCount)
	uvs := make([][2]float32, VertexCount)
	for v := 0; v < VertexCount; v++ {
		positions[v] = [3]float32{c.Vertices[v*3], c.Vertices[v*3+1], c.Vertices[v*3+2]}
		normals[v] = [3]float32{c.Normals[v*3], c.Normals[v*3+1], c.Normals[v*3+2]}
		uvs[v] = [2]float32{c.UVs[v*2], c.UVs[v*2+1]}
	}

	doc := gltf.NewDocument()
	attrs := map[string]int{
		"POSITION":   modeler.WritePosition(doc, positions),
		"NORMAL":     modeler.WriteNormal(doc, normals),
		"TEXCOORD_0": modeler.WriteTextureCoord(doc, uvs),
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "cube",
		Primitives: []*gltf.Primitive{{
			Attributes: attrs,
			Mode:       gltf.PrimitiveTriangles,
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "cube", Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	save := gltf.Save
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		save = gltf.SaveBinary
	}
	if err := save(doc, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
