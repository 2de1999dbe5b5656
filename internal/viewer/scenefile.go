// Package viewer loads scene description files into the renderer and keeps
// the world sounds they declare running.
package viewer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vec3 is a YAML triple: a position, a size, or yaw/pitch/roll in degrees.
type Vec3 [3]float64

// File is a parsed scene description.
type File struct {
	Objects []ObjectSpec `yaml:"objects"`
	Sounds  []SoundSpec  `yaml:"sounds"`

	// Path is where the file was read from, empty for built-in scenes.
	Path string `yaml:"-"`
}

// ObjectSpec places one object. An object with parts becomes a composite whose
// parts are turned relative to the object; otherwise Shape describes it.
type ObjectSpec struct {
	Name     string       `yaml:"name"`
	Shape    string       `yaml:"shape"`
	Size     Vec3         `yaml:"size"`
	Position Vec3         `yaml:"position"`
	Base     Vec3         `yaml:"base"`
	Aux      Vec3         `yaml:"aux"`
	Material MaterialSpec `yaml:"material"`
	Parts    []PartSpec   `yaml:"parts"`
}

// PartSpec is one piece of a composite object. A part without a color uses
// the object's material.
type PartSpec struct {
	Name     string       `yaml:"name"`
	Shape    string       `yaml:"shape"`
	Size     Vec3         `yaml:"size"`
	Position Vec3         `yaml:"position"`
	Rotation Vec3         `yaml:"rotation"`
	Material MaterialSpec `yaml:"material"`
}

// MaterialSpec is the YAML form of scene.Material. Texture paths are relative
// to the scene file.
type MaterialSpec struct {
	Color            []uint8   `yaml:"color"` // RGB or RGBA
	Blend            string    `yaml:"blend"` // normal or additive
	Glow             *GlowSpec `yaml:"glow"`
	Texture          string    `yaml:"texture"`
	TransparentColor []uint8   `yaml:"transparent_color"` // RGB
	TextureAlpha     bool      `yaml:"texture_alpha"`

	texture Texture
}

// GlowSpec selects the glow fade. Mode 1 fades with the square of the
// distance, mode 2 with its fourth power.
type GlowSpec struct {
	Mode         int     `yaml:"mode"`
	HalfDistance float64 `yaml:"half_distance"`
}

// SoundSpec declares a looping world sound. A missing radius uses
// sound.DefaultRadius.
type SoundSpec struct {
	File     string     `yaml:"file"`
	Position Vec3       `yaml:"position"`
	Radius   *float64   `yaml:"radius"`
	Volume   *float64   `yaml:"volume"`
	Pitch    *float64   `yaml:"pitch"`
	Track    *TrackSpec `yaml:"track"`
}

// TrackSpec moves a sound along a straight track, swinging Amplitude metres
// either side of Position with the given Period in seconds.
type TrackSpec struct {
	Origin    Vec3    `yaml:"origin"`
	Direction Vec3    `yaml:"direction"`
	Position  float64 `yaml:"position"`
	Amplitude float64 `yaml:"amplitude"`
	Period    float64 `yaml:"period"`
}

// Shapes understood by scene files.
const (
	ShapeBox  = "box"
	ShapeQuad = "quad"
)

// Maximum glow half distance that fits the packed attenuation data.
const maxGlowHalfDistance = 0x0fff

// Parse reads and validates a scene file. Unknown keys are rejected so that
// typos do not silently fall back to defaults.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads the scene file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Validate checks every object and sound. The first problem found is
// returned.
func (f *File) Validate() error {
	for i, o := range f.Objects {
		if len(o.Parts) == 0 {
			if err := validateShape(o.Shape); err != nil {
				return fmt.Errorf("object %d (%s): %w", i, o.Name, err)
			}
		}
		if err := o.Material.validate(); err != nil {
			return fmt.Errorf("object %d (%s): %w", i, o.Name, err)
		}
		for j, p := range o.Parts {
			if err := validateShape(p.Shape); err != nil {
				return fmt.Errorf("object %d (%s) part %d: %w", i, o.Name, j, err)
			}
			if err := p.Material.validate(); err != nil {
				return fmt.Errorf("object %d (%s) part %d: %w", i, o.Name, j, err)
			}
		}
	}
	for i, s := range f.Sounds {
		if s.File == "" {
			return fmt.Errorf("sound %d: missing file", i)
		}
		if s.Radius != nil && *s.Radius < 0 {
			return fmt.Errorf("sound %d: negative radius %g", i, *s.Radius)
		}
		if s.Track != nil && s.Track.Amplitude != 0 && s.Track.Period <= 0 {
			return fmt.Errorf("sound %d: track period must be positive", i)
		}
	}
	return nil
}

func validateShape(shape string) error {
	switch strings.ToLower(shape) {
	case ShapeBox, ShapeQuad:
		return nil
	case "":
		return errors.New("missing shape")
	default:
		return fmt.Errorf("unknown shape %q", shape)
	}
}

func (m MaterialSpec) validate() error {
	switch len(m.Color) {
	case 0, 3, 4:
	default:
		return fmt.Errorf("color needs 3 or 4 components, got %d", len(m.Color))
	}
	if len(m.TransparentColor) != 0 {
		if len(m.TransparentColor) != 3 {
			return fmt.Errorf("transparent_color needs 3 components, got %d", len(m.TransparentColor))
		}
		if m.Texture == "" {
			return errors.New("transparent_color without texture")
		}
	}
	switch strings.ToLower(m.Blend) {
	case "", "normal", "additive":
	default:
		return fmt.Errorf("unknown blend mode %q", m.Blend)
	}
	if g := m.Glow; g != nil {
		if g.Mode < 0 || g.Mode > 2 {
			return fmt.Errorf("unknown glow mode %d", g.Mode)
		}
		if g.HalfDistance < 0 || g.HalfDistance > maxGlowHalfDistance {
			return fmt.Errorf("glow half distance %g out of range 0-%d", g.HalfDistance, maxGlowHalfDistance)
		}
	}
	return nil
}
