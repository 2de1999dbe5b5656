package viewer

import (
	"fmt"
	"image/color"
	gomath "math"
	"strings"

	"github.com/Faultbox/bve-viewer/internal/engine/scene"
	"github.com/Faultbox/bve-viewer/internal/engine/sound"
	"github.com/Faultbox/bve-viewer/pkg/math"
)

var defaultColor = scene.Color32{R: 200, G: 200, B: 200, A: 255}

func (v Vec3) vector() math.Vector3 {
	return math.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// transformation reads v as yaw, pitch and roll in degrees.
func (v Vec3) transformation() math.Transformation {
	return math.NewTransformation(radians(v[0]), radians(v[1]), radians(v[2]))
}

func radians(deg float64) float64 {
	return deg * gomath.Pi / 180
}

// Material converts m, using fallback when m sets nothing.
func (m MaterialSpec) Material(fallback scene.Material) scene.Material {
	if len(m.Color) == 0 && m.Blend == "" && m.Glow == nil && m.Texture == "" && !m.TextureAlpha {
		return fallback
	}
	out := scene.Material{
		Color:        defaultColor,
		Texture:      m.texture.Name,
		TextureAlpha: m.TextureAlpha || m.texture.Alpha,
	}
	if m.Texture != "" {
		out.Color = scene.Color32{R: 255, G: 255, B: 255, A: 255}
	}
	switch len(m.Color) {
	case 3:
		out.Color = scene.Color32{R: m.Color[0], G: m.Color[1], B: m.Color[2], A: 255}
	case 4:
		out.Color = scene.Color32{R: m.Color[0], G: m.Color[1], B: m.Color[2], A: m.Color[3]}
	}
	if strings.EqualFold(m.Blend, "additive") {
		out.BlendMode = scene.BlendAdditive
	}
	if g := m.Glow; g != nil && g.Mode != 0 {
		out.GlowAttenuation = uint16(g.Mode)<<12 | uint16(gomath.Round(g.HalfDistance))&0x0fff
	}
	return out
}

// shape builds a primitive. Box sizes are full extents; a quad uses the first
// two components as width and height. Zero components default to 1.
func shape(name, kind string, size Vec3, m scene.Material) *scene.StaticObject {
	for i := range size {
		if size[i] == 0 {
			size[i] = 1
		}
	}
	if strings.EqualFold(kind, ShapeQuad) {
		return scene.NewQuad(name, size[0], size[1], m)
	}
	return scene.NewBox(name, size.vector().Scale(0.5), m)
}

// Prototype builds the described object.
func (o ObjectSpec) Prototype() scene.UnifiedObject {
	material := o.Material.Material(scene.Material{Color: defaultColor})
	if len(o.Parts) == 0 {
		return shape(o.Name, o.Shape, o.Size, material)
	}
	c := &scene.AnimatedObjectCollection{Name: o.Name}
	for i, p := range o.Parts {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("%s/%d", o.Name, i)
		}
		c.Objects = append(c.Objects, scene.Part{
			Prototype: shape(name, p.Shape, p.Size, p.Material.Material(material)),
			Position:  p.Position.vector(),
			Yaw:       radians(p.Rotation[0]),
			Pitch:     radians(p.Rotation[1]),
			Roll:      radians(p.Rotation[2]),
		})
	}
	return c
}

// configure applies the declared placement, levels and track motion to w.
func (s SoundSpec) configure(w *sound.WorldSound) {
	w.Position = s.Position.vector()
	if s.Radius != nil {
		w.Radius = *s.Radius
	}
	if s.Volume != nil {
		volume := *s.Volume
		w.VolumeFunction = func(sound.State) float64 { return volume }
	}
	if s.Pitch != nil {
		pitch := *s.Pitch
		w.PitchFunction = func(sound.State) float64 { return pitch }
	}
	if t := s.Track; t != nil {
		direction := t.Direction.vector()
		if direction.Norm() == 0 {
			direction = math.Forward
		}
		w.Follower = sound.LinearTrack{Origin: t.Origin.vector(), Direction: direction}
		w.PlaceOnTrack(t.Position)
		if t.Amplitude != 0 {
			amplitude, period := t.Amplitude, t.Period
			w.TrackFunction = func(st sound.State) float64 {
				return amplitude * gomath.Sin(2*gomath.Pi*st.Time/period)
			}
		}
	}
}

// transparentColor returns the color key of m, or nil.
func (m MaterialSpec) transparentColor() *color.RGBA {
	if len(m.TransparentColor) != 3 {
		return nil
	}
	return &color.RGBA{R: m.TransparentColor[0], G: m.TransparentColor[1], B: m.TransparentColor[2], A: 255}
}
