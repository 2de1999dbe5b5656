// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Renderer RendererConfig `yaml:"renderer"`
	Lighting LightingConfig `yaml:"lighting"`
	Scene    SceneConfig    `yaml:"scene"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width             int  `yaml:"width"`
	Height            int  `yaml:"height"`
	Fullscreen        bool `yaml:"fullscreen"`
	VSync             bool `yaml:"vsync"`
	ForceLegacyOpenGL bool `yaml:"force_legacy_opengl"`
}

// RendererConfig holds the toggles the viewer exposes at runtime.
type RendererConfig struct {
	TransparencyMode string `yaml:"transparency_mode"` // "performance" or "quality"
	Lighting         bool   `yaml:"lighting"`
	WireFrame        bool   `yaml:"wireframe"`
	CoordinateSystem bool   `yaml:"coordinate_system"`
	Interface        bool   `yaml:"interface"`
	BackgroundColor  int    `yaml:"background_color"`
}

// LightingConfig holds the directional light. Colors are 0-255 RGB.
type LightingConfig struct {
	Ambient       [3]uint8   `yaml:"ambient"`
	Diffuse       [3]uint8   `yaml:"diffuse"`
	Specular      [3]uint8   `yaml:"specular"`
	LightPosition [3]float64 `yaml:"light_position"`
	LightModel    float32    `yaml:"light_model"`
}

// SceneConfig selects what is shown on start.
type SceneConfig struct {
	Files []string `yaml:"files"`
	Demo  bool     `yaml:"demo"`
}

// AudioConfig holds world sound settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"` // 0.0 to 1.0
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Transparency modes.
const (
	TransparencyPerformance = "performance"
	TransparencyQuality     = "quality"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      960,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		Renderer: RendererConfig{
			TransparencyMode: TransparencyQuality,
			Lighting:         true,
			Interface:        true,
			BackgroundColor:  0,
		},
		Lighting: LightingConfig{
			Ambient:       [3]uint8{160, 160, 160},
			Diffuse:       [3]uint8{160, 160, 160},
			Specular:      [3]uint8{255, 255, 255},
			LightPosition: [3]float64{0.223606797749979, 0.866025403784439, -0.447213595499958},
			LightModel:    1,
		},
		Scene: SceneConfig{
			Demo: true,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
