package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 960 {
		t.Errorf("expected width 960, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.ForceLegacyOpenGL {
		t.Error("expected legacy OpenGL to be off by default")
	}
	if cfg.Renderer.TransparencyMode != TransparencyQuality {
		t.Errorf("expected quality transparency, got %s", cfg.Renderer.TransparencyMode)
	}
	if !cfg.Renderer.Lighting || !cfg.Renderer.Interface {
		t.Error("expected lighting and interface to be on by default")
	}
	if cfg.Renderer.CoordinateSystem {
		t.Error("expected coordinate system to be off by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  force_legacy_opengl: true

renderer:
  transparency_mode: performance
  lighting: false
  wireframe: true
  coordinate_system: true
  background_color: 2

lighting:
  ambient: [10, 20, 30]
  light_position: [0, 1, 0]

scene:
  files: ["a.yaml", "b.yaml"]
  demo: false

audio:
  master_volume: 0.25

logging:
  level: "debug"
  log_file: "viewer.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.ForceLegacyOpenGL {
		t.Error("expected force_legacy_opengl to be true")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync default to survive a partial file")
	}
	if cfg.Renderer.TransparencyMode != TransparencyPerformance {
		t.Errorf("expected performance mode, got %s", cfg.Renderer.TransparencyMode)
	}
	if cfg.Renderer.Lighting || !cfg.Renderer.WireFrame || !cfg.Renderer.CoordinateSystem {
		t.Errorf("unexpected renderer toggles: %+v", cfg.Renderer)
	}
	if cfg.Renderer.BackgroundColor != 2 {
		t.Errorf("expected background 2, got %d", cfg.Renderer.BackgroundColor)
	}
	if cfg.Lighting.Ambient != [3]uint8{10, 20, 30} {
		t.Errorf("unexpected ambient %v", cfg.Lighting.Ambient)
	}
	if cfg.Lighting.LightPosition != [3]float64{0, 1, 0} {
		t.Errorf("unexpected light position %v", cfg.Lighting.LightPosition)
	}
	if len(cfg.Scene.Files) != 2 || cfg.Scene.Demo {
		t.Errorf("unexpected scene config %+v", cfg.Scene)
	}
	if !cfg.Audio.Enabled || cfg.Audio.MasterVolume != 0.25 {
		t.Errorf("unexpected audio config %+v", cfg.Audio)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Renderer.TransparencyMode = "fancy"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown transparency mode")
	}

	cfg = Default()
	cfg.Graphics.Width = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero width")
	}

	cfg = Default()
	cfg.Audio.MasterVolume = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for master volume above 1")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Renderer.BackgroundColor = 3
	cfg.Renderer.TransparencyMode = TransparencyPerformance
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if loaded.Renderer.BackgroundColor != 3 || loaded.Renderer.TransparencyMode != TransparencyPerformance {
		t.Errorf("saved settings not restored: %+v", loaded.Renderer)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "legacy flag",
			setup: func() { *flagLegacy = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.ForceLegacyOpenGL {
					t.Error("expected legacy OpenGL with legacy flag")
				}
			},
			teardown: func() { *flagLegacy = false },
		},
		{
			name:  "transparency flag",
			setup: func() { *flagTransparency = TransparencyPerformance },
			verify: func(cfg *Config) {
				if cfg.Renderer.TransparencyMode != TransparencyPerformance {
					t.Errorf("expected performance mode, got %s", cfg.Renderer.TransparencyMode)
				}
			},
			teardown: func() { *flagTransparency = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}
