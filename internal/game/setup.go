package game

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/fogcubes/internal/assets"
	"github.com/Faultbox/fogcubes/internal/config"
	"github.com/Faultbox/fogcubes/internal/engine/lighting"
	"github.com/Faultbox/fogcubes/internal/engine/mesh"
	"github.com/Faultbox/fogcubes/internal/engine/renderer"
	"github.com/Faultbox/fogcubes/internal/engine/scene"
	"github.com/Faultbox/fogcubes/internal/engine/scene/shaders"
	"github.com/Faultbox/fogcubes/internal/engine/shader"
	"github.com/Faultbox/fogcubes/internal/engine/texture"
	"github.com/Faultbox/fogcubes/internal/game/cloud"
	"github.com/Faultbox/fogcubes/internal/logger"
)

// newAssetManager layers, from lowest to highest priority: the embedded
// shaders, the image directory, and an optional shader override directory.
func newAssetManager(cfg config.AssetsConfig) (*assets.Manager, error) {
	m := assets.NewManager()
	m.AddFS("embedded shaders", shaders.FS)
	if err := m.AddDir(cfg.ImageDir); err != nil {
		return nil, fmt.Errorf("image directory: %w", err)
	}
	if cfg.ShaderDir != "" {
		if err := m.AddDir(cfg.ShaderDir); err != nil {
			return nil, fmt.Errorf("shader directory: %w", err)
		}
	}
	return m, nil
}

// placementOptions maps the scene config onto the placement generator.
func placementOptions(s config.SceneConfig) (cloud.PlacementOptions, error) {
	fallback, err := cloud.ParseFallback(s.PlacementFallback)
	if err != nil {
		return cloud.PlacementOptions{}, err
	}
	opts := cloud.DefaultPlacementOptions()
	opts.MinSeparation = s.MinSeparation
	opts.MaxLocation = s.MaxLocation
	opts.ZOffset = s.ZOffset
	opts.MaxDrawAttempts = s.MaxDrawAttempts
	opts.MaxPlacementAttempts = s.MaxPlacementAttempts
	opts.Fallback = fallback
	return opts, nil
}

func placeInstances(cfg *config.Config) ([]cloud.Instance, error) {
	opts, err := placementOptions(cfg.Scene)
	if err != nil {
		return nil, err
	}

	rng := cloud.NewRNG(cfg.Scene.Seed)
	instances, stats, err := cloud.Generate(cfg.InstanceCount(), cfg.ImageCount(), rng, opts)
	if err != nil {
		return nil, fmt.Errorf("placing %d cubes: %w", cfg.InstanceCount(), err)
	}

	fields := []zap.Field{
		zap.Int("count", len(instances)),
		zap.Uint64("seed", cfg.Scene.Seed),
		zap.Int("redraws", stats.Redraws),
	}
	if stats.Relaxations > 0 {
		logger.Warn("cube separation relaxed",
			append(fields,
				zap.Int("relaxations", stats.Relaxations),
				zap.Float32("min_separation_used", stats.MinSeparationUsed),
			)...)
	} else {
		logger.Info("cubes placed", fields...)
	}
	return instances, nil
}

// cloudDefines are the compile-time sizes injected into the cloud shaders.
func cloudDefines(cfg *config.Config) []shader.Define {
	return []shader.Define{
		{Name: "INSTANCE_COUNT", Value: strconv.Itoa(cfg.InstanceCount())},
		{Name: "INSTANCES_PER_IMAGE", Value: strconv.Itoa(cfg.Scene.InstancesPerImage)},
		{Name: "NUM_LIGHTS", Value: strconv.Itoa(lighting.MaxPointLights)},
	}
}

// loadProgram reads, preprocesses and builds a program, going through the
// binary cache when one is configured.
func (g *Game) loadProgram(name, vertex, fragment string, defines ...shader.Define) (*shader.Program, error) {
	vs, err := g.assets.LoadString(vertex)
	if err != nil {
		return nil, fmt.Errorf("%s vertex shader: %w", name, err)
	}
	fs, err := g.assets.LoadString(fragment)
	if err != nil {
		return nil, fmt.Errorf("%s fragment shader: %w", name, err)
	}

	var cache *shader.BinaryCache
	if dir := g.cfg.Assets.ShaderCacheDir; dir != "" {
		cache = shader.NewBinaryCache(dir)
	}

	program, err := shader.Build(
		shader.Preprocess(vs, defines...),
		shader.Preprocess(fs, defines...),
		cache, name+".bin")
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}

	if g.cfg.Debug.PrintUniforms {
		for _, u := range shader.ActiveUniforms(program.ID) {
			logger.Info("active uniform", zap.String("program", name), zap.Stringer("uniform", u))
		}
	}
	return program, nil
}

func (g *Game) buildCloud() (_ *scene.CloudRenderer, err error) {
	cfg := g.cfg
	cube := mesh.GenerateCube()
	if path := cfg.Debug.MeshDump; path != "" {
		if err := dumpMesh(&cube, path); err != nil {
			logger.Warn("mesh dump failed", zap.String("path", path), zap.Error(err))
		} else {
			logger.Info("mesh dumped", zap.String("path", path))
		}
	}

	var cleanup releaser
	defer func() {
		if err != nil {
			cleanup.release()
		}
	}()

	program, err := g.loadProgram("cloud", shaders.CloudVertex, shaders.CloudFragment, cloudDefines(cfg)...)
	if err != nil {
		return nil, err
	}
	cleanup.add(program.Delete)

	crate, err := g.loadImage(cfg.Assets.Background)
	if err != nil {
		return nil, err
	}
	layers, err := texture.LoadLayers(g.assets.Load, cfg.Assets.Images, cfg.Assets.DecodeWorkers)
	if err != nil {
		return nil, fmt.Errorf("face images: %w", err)
	}

	arrayTex, err := texture.Upload2DArray(layers)
	if err != nil {
		return nil, fmt.Errorf("face images: %w", err)
	}
	cleanup.add(func() { texture.Delete(arrayTex) })
	crateTex := texture.Upload2D(crate)
	cleanup.add(func() { texture.Delete(crateTex) })

	return scene.NewCloudRenderer(program, &cube, scene.CloudConfig{
		ImageCount:        cfg.ImageCount(),
		InstancesPerImage: cfg.Scene.InstancesPerImage,
		CrateTexture:      crateTex,
		ImageArray:        arrayTex,
	}, renderer.MaxUniformBlockSize())
}

// releaser collects GPU cleanups for a partially built resource. release
// runs them newest first and empties the list.
type releaser []func()

func (r *releaser) add(fn func()) {
	*r = append(*r, fn)
}

func (r *releaser) release() {
	for i := len(*r) - 1; i >= 0; i-- {
		(*r)[i]()
	}
	*r = nil
}

func (g *Game) loadImage(name string) (*image.RGBA, error) {
	data, err := g.assets.Load(name)
	if err != nil {
		return nil, fmt.Errorf("background image: %w", err)
	}
	return texture.Decode(name, data)
}

func (g *Game) buildSkybox() (*scene.Skybox, error) {
	faces, err := texture.LoadLayers(g.assets.Load, g.cfg.Assets.Skybox, g.cfg.Assets.DecodeWorkers)
	if err != nil {
		return nil, fmt.Errorf("skybox faces: %w", err)
	}
	var cubeFaces [6]*image.RGBA
	copy(cubeFaces[:], faces)

	program, err := g.loadProgram("skybox", shaders.SkyboxVertex, shaders.SkyboxFragment)
	if err != nil {
		return nil, err
	}

	cube := mesh.GenerateCube()
	return scene.NewSkybox(program, &cube, texture.UploadCubeMap(cubeFaces)), nil
}

// dumpMesh writes the cube as glTF for .gltf/.glb paths and as text tables
// otherwise.
func dumpMesh(cube *mesh.Cube, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return mesh.ExportGLTF(cube, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := cube.Dump(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
