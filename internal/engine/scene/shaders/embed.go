// Package shaders provides embedded GLSL shader sources.
package shaders

import "embed"

// FS holds the default shader sources. A shader directory from the config
// is layered on top of it so sources can be edited without rebuilding.
//
//go:embed *.vert *.frag
var FS embed.FS

// File names of the embedded shaders.
const (
	CloudVertex    = "cloud.vert"
	CloudFragment  = "cloud.frag"
	SkyboxVertex   = "skybox.vert"
	SkyboxFragment = "skybox.frag"
)
