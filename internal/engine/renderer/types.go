package renderer

import (
	gomath "math"
	"strings"

	"github.com/Faultbox/bve-viewer/internal/messages"
	"github.com/Faultbox/bve-viewer/pkg/math"
)

// TransparencyMode selects how alpha faces are composited.
type TransparencyMode int

const (
	// TransparencyPerformance draws all alpha faces in one blended pass
	// without depth writes.
	TransparencyPerformance TransparencyMode = iota
	// TransparencyQuality first draws alpha faces that are opaque after the
	// alpha test with depth writes, then blends the rest.
	TransparencyQuality
)

// ParseTransparencyMode maps a config value to a mode. Anything other than
// "performance" selects quality.
func ParseTransparencyMode(s string) TransparencyMode {
	if strings.EqualFold(strings.TrimSpace(s), "performance") {
		return TransparencyPerformance
	}
	return TransparencyQuality
}

func (m TransparencyMode) String() string {
	if m == TransparencyPerformance {
		return "performance"
	}
	return "quality"
}

// AlphaFunction is the comparison used by the alpha test.
type AlphaFunction int

const (
	AlphaGreater AlphaFunction = iota
	AlphaEqual
	AlphaLess
)

func (f AlphaFunction) String() string {
	switch f {
	case AlphaGreater:
		return "greater"
	case AlphaEqual:
		return "equal"
	case AlphaLess:
		return "less"
	default:
		return "unknown"
	}
}

// Color is an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}

	// ColorNotice highlights pending warnings and errors.
	ColorNotice = Color{1, 0.5, 0.5, 1}

	colorKeyShadow    = Color{0.25, 0.25, 0.25, 0.5}
	colorKeyHighlight = Color{0.75, 0.75, 0.75, 0.5}
	colorKeyFace      = Color{0.5, 0.5, 0.5, 0.5}
)

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// TextAlignment anchors a string to its draw position.
type TextAlignment int

const (
	AlignTopLeft TextAlignment = iota
	AlignTopRight
)

// Options are the user toggles read every frame.
type Options struct {
	TransparencyMode TransparencyMode
	Lighting         bool
	WireFrame        bool
	CoordinateSystem bool
	Interface        bool
	LightingNight    bool
}

// DefaultOptions returns the options the viewer starts with.
func DefaultOptions() Options {
	return Options{
		TransparencyMode: TransparencyQuality,
		Lighting:         true,
		Interface:        true,
	}
}

// Color24 is an 8-bit RGB light color.
type Color24 struct {
	R, G, B uint8
}

// Vec3 returns the color scaled to 0..1.
func (c Color24) Vec3() [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// Lighting is a single directional light.
type Lighting struct {
	// LightPosition is the direction towards the light, in world space.
	LightPosition math.Vector3
	Ambient       Color24
	Diffuse       Color24
	Specular      Color24
	LightModel    float32
}

// DefaultLighting is the daylight setup.
func DefaultLighting() Lighting {
	return Lighting{
		LightPosition: math.Vector3{X: 0.223606797749979, Y: 0.866025403784439, Z: -0.447213595499958},
		Ambient:       Color24{160, 160, 160},
		Diffuse:       Color24{160, 160, 160},
		Specular:      Color24{255, 255, 255},
		LightModel:    1,
	}
}

// ResultingAmount is the overall light level derived from the ambient color,
// capped at 1.
func (l Lighting) ResultingAmount() float32 {
	amount := (float32(l.Ambient.R) + float32(l.Ambient.G) + float32(l.Ambient.B)) / 480.0
	if amount > 1 {
		amount = 1
	}
	return amount
}

// AtTime dims l towards night. relative is 1 for full daylight and 0 for
// night, where ambient and diffuse fall to 32.
func (l Lighting) AtTime(relative float64) Lighting {
	relative = gomath.Max(0, gomath.Min(1, relative))
	const night = 32.0
	fade := func(c Color24, f float64) Color24 {
		ch := func(v uint8) uint8 {
			if float64(v) <= night {
				return v
			}
			return uint8(gomath.Round(night + (float64(v)-night)*f))
		}
		return Color24{ch(c.R), ch(c.G), ch(c.B)}
	}
	out := l
	out.Ambient = fade(l.Ambient, relative*(2-relative))
	out.Diffuse = fade(l.Diffuse, relative)
	return out
}

// Camera supplies the viewpoint for a frame.
type Camera interface {
	AbsolutePosition() math.Vector3
	AbsoluteDirection() math.Vector3
	AbsoluteUp() math.Vector3
}

// MessageLog receives renderer problems and supplies the pending messages
// shown in the overlay.
type MessageLog interface {
	AddMessage(t messages.Type, fileNotFound bool, text string)
	Messages() []messages.Message
}

type fixedCamera struct{}

func (fixedCamera) AbsolutePosition() math.Vector3  { return math.Zero }
func (fixedCamera) AbsoluteDirection() math.Vector3 { return math.Forward }
func (fixedCamera) AbsoluteUp() math.Vector3        { return math.Up }
