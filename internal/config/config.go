// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	Fog      FogConfig      `yaml:"fog"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
	Debug    DebugConfig    `yaml:"debug"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"` // sdl or glfw
}

// SceneConfig controls how the cube cloud is generated.
type SceneConfig struct {
	InstancesPerImage    int     `yaml:"instances_per_image"`
	MinSeparation        float32 `yaml:"min_separation"`
	MaxLocation          float32 `yaml:"max_location"`
	ZOffset              float32 `yaml:"z_offset"`
	Seed                 uint64  `yaml:"seed"` // 0 seeds from the clock
	MaxDrawAttempts      int     `yaml:"max_draw_attempts"`
	MaxPlacementAttempts int     `yaml:"max_placement_attempts"`
	PlacementFallback    string  `yaml:"placement_fallback"` // relax or fail
}

// CameraConfig holds the initial camera pose and tuning.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	FOV         float32    `yaml:"fov"`
}

// FogConfig holds the initial fog state.
type FogConfig struct {
	Enabled bool       `yaml:"enabled"`
	Min     float32    `yaml:"min"`
	Max     float32    `yaml:"max"`
	Color   [4]float32 `yaml:"color"`
}

// AssetsConfig locates images and shaders.
type AssetsConfig struct {
	ImageDir       string   `yaml:"image_dir"`
	ShaderDir      string   `yaml:"shader_dir"`       // overrides the embedded shaders
	ShaderCacheDir string   `yaml:"shader_cache_dir"` // empty disables the binary cache
	Background     string   `yaml:"background"`
	Images         []string `yaml:"images"`
	Skybox         []string `yaml:"skybox"` // six faces: +X -X +Y -Y +Z -Z
	DecodeWorkers  int      `yaml:"decode_workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig enables diagnostic output.
type DebugConfig struct {
	MeshDump      string `yaml:"mesh_dump"` // path; .gltf/.glb export glTF, anything else the text tables
	PrintUniforms bool   `yaml:"print_uniforms"`
	GLErrors      bool   `yaml:"gl_errors"` // per-stage checks; every frame is checked regardless
	ScreenshotDir string `yaml:"screenshot_dir"`
	ShowFPS       bool   `yaml:"show_fps"`
}

// DefaultImages are the sixteen face images of the cloud.
var DefaultImages = []string{
	"awesomeface.png", "eucharist.png",
	"palette.png", "panda.png",
	"seahorse.png", "sparkle.png",
	"star.png", "sunflowers.png",
	"superman.png", "paris.png",
	"grapes.png", "lemon.png",
	"sun.png", "mexican.png",
	"abstract.png", "suites.png",
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     1024,
			Fullscreen: false,
			VSync:      true,
			Backend:    "sdl",
		},
		Scene: SceneConfig{
			InstancesPerImage:    30,
			MinSeparation:        1.5,
			MaxLocation:          25,
			ZOffset:              15,
			Seed:                 0,
			MaxDrawAttempts:      1000,
			MaxPlacementAttempts: 10000,
			PlacementFallback:    "relax",
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 20},
			Yaw:         -90,
			Pitch:       0,
			Speed:       0.5,
			Sensitivity: 0.3,
			FOV:         45,
		},
		Fog: FogConfig{
			Enabled: true,
			Min:     0.1,
			Max:     25,
			Color:   [4]float32{0.3, 0.3, 0.3, 1},
		},
		Assets: AssetsConfig{
			ImageDir:       "assets/images",
			ShaderCacheDir: "cache",
			Background:     "container.png",
			Images:         append([]string(nil), DefaultImages...),
			DecodeWorkers:  4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}

// ImageCount is the number of face images, which is also the number of
// instance groups in the cloud.
func (c *Config) ImageCount() int {
	return len(c.Assets.Images)
}

// InstanceCount is the total number of cubes.
func (c *Config) InstanceCount() int {
	return c.ImageCount() * c.Scene.InstancesPerImage
}
