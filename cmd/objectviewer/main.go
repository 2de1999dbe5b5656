// Package main is the object viewer: it opens scene files, draws them with
// the selected renderer backend and plays the world sounds they declare.
package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/bve-viewer/internal/config"
	"github.com/Faultbox/bve-viewer/internal/engine/audio"
	"github.com/Faultbox/bve-viewer/internal/engine/camera"
	"github.com/Faultbox/bve-viewer/internal/engine/input"
	"github.com/Faultbox/bve-viewer/internal/engine/renderer"
	"github.com/Faultbox/bve-viewer/internal/engine/sound"
	"github.com/Faultbox/bve-viewer/internal/engine/texture"
	"github.com/Faultbox/bve-viewer/internal/engine/window"
	"github.com/Faultbox/bve-viewer/internal/logger"
	"github.com/Faultbox/bve-viewer/internal/messages"
	"github.com/Faultbox/bve-viewer/internal/viewer"
	"github.com/Faultbox/bve-viewer/pkg/math"
)

const (
	version     = "1.4.0"
	windowTitle = "Object Viewer"
)

func main() {
	// Parse CLI flags
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Object Viewer ===", zap.String("version", version))

	if err := run(cfg); err != nil {
		logger.Error("viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return err
	}
	defer win.Close()

	log := logger.Named("renderer")
	glVersion, err := renderer.InitGL(log)
	if err != nil {
		return err
	}
	backend, err := renderer.SelectBackend(glVersion, cfg.Graphics.ForceLegacyOpenGL, log)
	if err != nil {
		return err
	}

	msgs := messages.NewLog(logger.Named("messages"))
	r := renderer.New(backend, msgs, log, renderer.Options{
		TransparencyMode: renderer.ParseTransparencyMode(cfg.Renderer.TransparencyMode),
		Lighting:         cfg.Renderer.Lighting,
		WireFrame:        cfg.Renderer.WireFrame,
		CoordinateSystem: cfg.Renderer.CoordinateSystem,
		Interface:        cfg.Renderer.Interface,
	})
	defer func() { r.Backend().Close() }()
	r.Version = version
	r.SetBackgroundColor(cfg.Renderer.BackgroundColor)
	day := dayLighting(cfg.Lighting)
	r.SetNight(day, false)
	r.Resize(win.GetSize())

	cam := camera.NewDefault()
	r.SetCamera(cam)

	host, closeAudio := startAudio(cfg.Audio)
	defer closeAudio()

	textures := &glTextures{}
	defer textures.Release()

	v := viewer.New(r.Manager(), msgs, logger.Named("viewer"), host, loadSound)
	v.SetTextures(textures)
	if cfg.Scene.Demo {
		v.OpenDemo()
	}
	v.Open(cfg.Scene.Files...)

	in := input.New()
	last := time.Now()
	for {
		now := time.Now()
		elapsed := now.Sub(last).Seconds()
		last = now

		if in.Update() {
			break
		}
		quit, capture := false, false
		for _, e := range in.Events() {
			switch e.Type {
			case input.EventWindowResize:
				r.Resize(win.GetSize())
			case input.EventDropFile:
				v.Open(e.File)
			case input.EventKeyDown:
				switch c := input.CommandFor(e.Key); c {
				case input.CommandQuit:
					quit = true
				case input.CommandScreenshot:
					capture = true
				default:
					command(c, r, v, cam, msgs, day)
				}
			}
		}
		if quit {
			break
		}

		in.ApplyCamera(cam)
		cam.Update(elapsed)
		v.Update(elapsed, cam.Position)

		r.RenderScene()
		if capture {
			if _, err := r.Screenshot(filepath.Join(config.ConfigDir(), "screenshots")); err != nil {
				logger.Warn("screenshot failed", zap.Error(err))
			}
		}
		win.SwapBuffers()
	}

	saveOptions(cfg, r)
	return nil
}

// command runs a keyboard command that only changes viewer state.
func command(c input.Command, r *renderer.Renderer, v *viewer.Viewer, cam *camera.Camera, msgs *messages.Log, day renderer.Lighting) {
	switch c {
	case input.CommandReload:
		v.Reload()
		r.ReleaseMeshes()
	case input.CommandClear:
		v.Clear()
		r.ReleaseMeshes()
	case input.CommandTransparency:
		if r.Options.TransparencyMode == renderer.TransparencyPerformance {
			r.Options.TransparencyMode = renderer.TransparencyQuality
		} else {
			r.Options.TransparencyMode = renderer.TransparencyPerformance
		}
	case input.CommandWireFrame:
		r.Options.WireFrame = !r.Options.WireFrame
	case input.CommandLighting:
		r.SetNight(day, !r.Options.LightingNight)
	case input.CommandGrid:
		r.Options.CoordinateSystem = !r.Options.CoordinateSystem
	case input.CommandBackground:
		r.CycleBackgroundColor()
	case input.CommandInterface:
		r.Options.Interface = !r.Options.Interface
	case input.CommandSwitchRenderer:
		switchBackend(r)
	case input.CommandMessages:
		dumpMessages(msgs)
	case input.CommandResetCamera:
		cam.Reset()
	}
}

// switchBackend replaces the active backend with the other kind.
func switchBackend(r *renderer.Renderer) {
	log := logger.Named("renderer")
	old := r.Backend()

	var next renderer.Backend
	var err error
	if _, retained := old.(*renderer.RetainedBackend); retained {
		next, err = renderer.NewImmediateBackend(log)
	} else {
		next, err = renderer.NewRetainedBackend(log)
	}
	if err != nil {
		log.Warn("backend switch failed", zap.Error(err))
		return
	}
	r.SetBackend(next)
	old.Close()
}

// dumpMessages writes the pending messages next to the config and clears them.
func dumpMessages(msgs *messages.Log) {
	if msgs.Count() == 0 {
		return
	}
	path := filepath.Join(config.ConfigDir(), "messages.log")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Warn("cannot write messages", zap.Error(err))
		return
	}
	f, err := os.Create(path)
	if err != nil {
		logger.Warn("cannot write messages", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := msgs.WriteTo(f); err != nil {
		logger.Warn("cannot write messages", zap.Error(err))
		return
	}
	logger.Info("messages written", zap.String("path", path), zap.Int("count", msgs.Count()))
	msgs.Clear()
}

// startAudio opens the speaker. Without audio the viewer runs silently.
func startAudio(cfg config.AudioConfig) (sound.Host, func()) {
	if !cfg.Enabled {
		return nil, func() {}
	}
	m := audio.New(logger.Named("audio"))
	if err := m.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return nil, func() {}
	}
	m.SetMasterVolume(cfg.MasterVolume)
	return m, m.Close
}

// glTextures uploads material textures to the current GL context.
type glTextures struct {
	names []uint32
}

func (t *glTextures) Load(path string, key *color.RGBA) (viewer.Texture, error) {
	img, err := texture.Load(path)
	if err != nil {
		return viewer.Texture{}, err
	}
	if key != nil {
		texture.ApplyColorKey(img, *key)
	}
	name := texture.Upload(img)
	t.names = append(t.names, name)
	return viewer.Texture{Name: name, Alpha: texture.Classify(img) == texture.Alpha}, nil
}

func (t *glTextures) Release() {
	texture.Delete(t.names...)
	t.names = nil
}

func loadSound(path string) (sound.Buffer, error) {
	b, err := audio.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func dayLighting(cfg config.LightingConfig) renderer.Lighting {
	color := func(c [3]uint8) renderer.Color24 {
		return renderer.Color24{R: c[0], G: c[1], B: c[2]}
	}
	return renderer.Lighting{
		LightPosition: math.Vector3{X: cfg.LightPosition[0], Y: cfg.LightPosition[1], Z: cfg.LightPosition[2]},
		Ambient:       color(cfg.Ambient),
		Diffuse:       color(cfg.Diffuse),
		Specular:      color(cfg.Specular),
		LightModel:    cfg.LightModel,
	}
}

// saveOptions keeps the runtime toggles for the next start.
func saveOptions(cfg *config.Config, r *renderer.Renderer) {
	cfg.Renderer.TransparencyMode = r.Options.TransparencyMode.String()
	cfg.Renderer.WireFrame = r.Options.WireFrame
	cfg.Renderer.CoordinateSystem = r.Options.CoordinateSystem
	cfg.Renderer.Interface = r.Options.Interface
	if bg := r.BackgroundColor(); bg >= 0 {
		cfg.Renderer.BackgroundColor = bg
	}
	if err := cfg.Save(); err != nil {
		logger.Warn("cannot save config", zap.Error(err))
	}
}
