package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate rejects settings the renderer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	g := c.Graphics
	check(g.Width > 0 && g.Height > 0, "graphics size %dx%d must be positive", g.Width, g.Height)
	check(g.Backend == "sdl" || g.Backend == "glfw", "graphics.backend %q must be sdl or glfw", g.Backend)

	s := c.Scene
	check(s.InstancesPerImage > 0, "scene.instances_per_image %d must be positive", s.InstancesPerImage)
	check(s.MinSeparation > 0, "scene.min_separation %v must be positive", s.MinSeparation)
	check(s.MaxLocation >= 1, "scene.max_location %v must be at least 1", s.MaxLocation)
	check(s.MaxDrawAttempts > 0, "scene.max_draw_attempts %d must be positive", s.MaxDrawAttempts)
	check(s.MaxPlacementAttempts > 0, "scene.max_placement_attempts %d must be positive", s.MaxPlacementAttempts)
	check(s.PlacementFallback == "" || s.PlacementFallback == "relax" || s.PlacementFallback == "fail",
		"scene.placement_fallback %q must be relax or fail", s.PlacementFallback)

	cam := c.Camera
	check(cam.FOV >= 1 && cam.FOV <= 45, "camera.fov %v must be within [1, 45]", cam.FOV)
	check(cam.Speed > 0, "camera.speed %v must be positive", cam.Speed)

	f := c.Fog
	check(f.Min >= 0 && f.Min < f.Max, "fog range [%v, %v] must satisfy 0 <= min < max", f.Min, f.Max)

	a := c.Assets
	check(len(a.Images) > 0, "assets.images must not be empty")
	check(a.Background != "", "assets.background must be set")
	check(len(a.Skybox) == 0 || len(a.Skybox) == 6, "assets.skybox needs 0 or 6 faces, got %d", len(a.Skybox))
	check(a.DecodeWorkers > 0, "assets.decode_workers %d must be positive", a.DecodeWorkers)

	return errors.Join(errs...)
}
