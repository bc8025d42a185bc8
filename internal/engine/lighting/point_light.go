// Package lighting provides the point lights that surround the cube cloud.
package lighting

import (
	"fmt"

	"github.com/Faultbox/fogcubes/pkg/math"
)

// MaxPointLights is the size of the light array in the cloud shader.
const MaxPointLights = 8

// White is the default light color.
var White = [4]float32{1, 1, 1, 1}

// PointLight is one light as the shader sees it.
type PointLight struct {
	Position math.Vec3
	Color    [4]float32
}

// UniformSetter is the subset of a shader program the lights need.
type UniformSetter interface {
	SetVec3(name string, v math.Vec3)
	SetVec4(name string, v [4]float32)
	SetInt(name string, v int32)
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// CornerLights places one light of the given color on each corner of the
// cube spanning [-extent, extent] on every axis.
func CornerLights(extent float32, color [4]float32) []PointLight {
	lights := make([]PointLight, 0, 8)
	for _, x := range []float32{-extent, extent} {
		for _, y := range []float32{-extent, extent} {
			for _, z := range []float32{-extent, extent} {
				lights = append(lights, PointLight{
					Position: math.Vec3{X: x, Y: y, Z: z},
					Color:    color,
				})
			}
		}
	}
	return lights
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if len(b.Lights) >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	return true
}

// SetLights replaces all lights in the buffer, keeping at most
// MaxPointLights. It returns how many lights did not fit.
func (b *PointLightBuffer) SetLights(lights []PointLight) (dropped int) {
	b.Clear()
	for i, l := range lights {
		if !b.AddLight(l) {
			return len(lights) - i
		}
	}
	return 0
}

// Count returns the number of lights held.
func (b *PointLightBuffer) Count() int { return len(b.Lights) }

// UniformNames returns the shader names of light i's position and color.
func UniformNames(i int) (pos, color string) {
	return fmt.Sprintf("lighting[%d].lightPos", i), fmt.Sprintf("lighting[%d].lightColor", i)
}

// Upload writes every light and the active count to the program.
func (b *PointLightBuffer) Upload(p UniformSetter) {
	for i, l := range b.Lights {
		pos, color := UniformNames(i)
		p.SetVec3(pos, l.Position)
		p.SetVec4(color, l.Color)
	}
	p.SetInt("numLights", int32(len(b.Lights)))
}
