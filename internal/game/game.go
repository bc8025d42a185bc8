// Package game runs the fog cube scene: startup, the frame loop and input.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/fogcubes/internal/assets"
	"github.com/Faultbox/fogcubes/internal/config"
	"github.com/Faultbox/fogcubes/internal/engine/camera"
	"github.com/Faultbox/fogcubes/internal/engine/debug"
	"github.com/Faultbox/fogcubes/internal/engine/input"
	"github.com/Faultbox/fogcubes/internal/engine/lighting"
	"github.com/Faultbox/fogcubes/internal/engine/renderer"
	"github.com/Faultbox/fogcubes/internal/engine/scene"
	"github.com/Faultbox/fogcubes/internal/engine/window"
	"github.com/Faultbox/fogcubes/internal/game/cloud"
	"github.com/Faultbox/fogcubes/internal/game/fog"
	"github.com/Faultbox/fogcubes/internal/logger"
	"github.com/Faultbox/fogcubes/pkg/math"
)

// Title is the window title.
const Title = "Fog Cubes"

// Game is the running scene.
type Game struct {
	cfg *config.Config

	window   window.Window
	renderer *renderer.Renderer
	queue    *input.Queue
	assets   *assets.Manager

	camera *camera.FlyCamera
	fog    fog.State
	ctrl   *controller

	packer *cloud.Packer
	cloud  *scene.CloudRenderer
	sky    *scene.Skybox

	screenshots *debug.ScreenshotCapture
}

// New opens the window and builds every GPU resource. Any error is fatal
// for the application; resources created so far are released.
func New(cfg *config.Config) (g *Game, err error) {
	logger.Info("initializing scene",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("backend", cfg.Graphics.Backend),
	)

	g = &Game{
		cfg:   cfg,
		queue: input.NewQueue(),
		fog: fog.State{
			Enabled: cfg.Fog.Enabled,
			Min:     cfg.Fog.Min,
			Max:     cfg.Fog.Max,
			Color:   cfg.Fog.Color,
		},
		screenshots: debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "fogcubes"),
	}
	defer func() {
		if err != nil {
			g.Close()
			g = nil
		}
	}()

	// Window first: it owns the OpenGL context
	g.window, err = window.New(window.Config{
		Backend:    cfg.Graphics.Backend,
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return g, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:       width,
		Height:      height,
		ClearColor:  cfg.Fog.Color,
		CheckErrors: cfg.Debug.GLErrors,
	})
	if err != nil {
		return g, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.assets, err = newAssetManager(cfg.Assets)
	if err != nil {
		return g, err
	}

	instances, err := placeInstances(cfg)
	if err != nil {
		return g, err
	}
	g.packer = cloud.NewPacker(instances)

	g.cloud, err = g.buildCloud()
	if err != nil {
		return g, err
	}
	lights := lighting.NewPointLightBuffer()
	if dropped := lights.SetLights(lighting.CornerLights(cfg.Scene.MaxLocation, lighting.White)); dropped > 0 {
		logger.Warn("point lights dropped", zap.Int("dropped", dropped))
	}
	g.cloud.SetLights(lights)

	if len(cfg.Assets.Skybox) > 0 {
		g.sky, err = g.buildSkybox()
		if err != nil {
			return g, err
		}
	}

	c := cfg.Camera
	g.camera = camera.NewFlyCamera(width, height,
		math.Vec3{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]},
		math.Vec3{Y: 1}, c.Yaw, c.Pitch)
	g.camera.Configure(c.Speed, c.Sensitivity, c.FOV)

	g.ctrl = newController(g.camera, &g.fog)

	hits, misses := g.assets.Cache().Stats()
	logger.Info("scene initialized",
		zap.Int("instances", len(instances)),
		zap.Int("images", cfg.ImageCount()),
		zap.Bool("skybox", g.sky != nil),
		zap.Int("asset_cache_hits", hits),
		zap.Int("asset_cache_misses", misses),
	)
	return g, nil
}

// Run drives frames until the user quits.
func (g *Game) Run() error {
	start := time.Now()
	last := start
	frameCount := 0
	fpsTimer := start

	logger.Info("starting frame loop")

	for !g.ctrl.quit {
		now := time.Now()
		frame := now.Sub(last)
		last = now

		g.ctrl.step = KeyStep(frame)
		degrees := RotationDegrees(now.Sub(start))

		// All pending input lands before this frame is drawn
		g.window.PollEvents(g.queue)
		g.queue.Drain(g.ctrl)
		if g.ctrl.quit {
			break
		}
		if w, h, ok := g.ctrl.takeResize(); ok {
			g.renderer.Resize(w, h)
		}

		g.render(degrees)

		if g.ctrl.takeScreenshot() {
			g.captureScreenshot()
		}

		g.window.Present()

		frameCount++
		if elapsed := now.Sub(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			logger.Debug("fps",
				zap.Float64("fps", fps),
				zap.Duration("frame", frame),
			)
			if g.cfg.Debug.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("%s - %.0f fps", Title, fps))
			}
			frameCount = 0
			fpsTimer = now
		}
	}

	logger.Info("frame loop finished")
	return nil
}

// render draws the sky, then the cloud sorted back to front.
func (g *Game) render(degrees float32) {
	g.renderer.Begin()

	view := g.camera.ViewMatrix()
	projection := g.camera.ProjectionMatrix()

	if g.sky != nil {
		g.sky.Draw(view, projection)
		g.renderer.Checkpoint("skybox")
	}

	frame := g.packer.Update(g.camera.Position, degrees)
	g.cloud.Draw(frame, scene.View{
		Projection: projection,
		View:       view,
		Position:   g.camera.Position,
	}, scene.Fog(g.fog))

	g.renderer.Checkpoint("cloud")

	g.renderer.End()
}

func (g *Game) captureScreenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases resources in reverse order of creation. It is safe on a
// partially built Game.
func (g *Game) Close() {
	logger.Info("closing scene")

	if g.sky != nil {
		g.sky.Destroy()
	}
	if g.cloud != nil {
		g.cloud.Destroy()
	}
	if g.assets != nil {
		g.assets.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
