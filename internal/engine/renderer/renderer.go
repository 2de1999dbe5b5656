// Package renderer draws the viewer's world: opaque faces, depth-sorted alpha
// faces and the 2D interface overlay.
package renderer

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/bve-viewer/internal/engine/scene"
	"github.com/Faultbox/bve-viewer/internal/messages"
	"github.com/Faultbox/bve-viewer/pkg/math"
)

// Background colors selectable with CycleBackgroundColor.
const (
	MaxBackgroundColor = 4
	BackgroundCustom   = -1
)

var backgrounds = [MaxBackgroundColor]struct {
	name  string
	clear Color
	text  Color
}{
	{"Light Gray", Color{0.67, 0.67, 0.67, 1}, ColorWhite},
	{"White", Color{1, 1, 1, 1}, ColorBlack},
	{"Black", Color{0, 0, 0, 1}, ColorWhite},
	{"Dark Gray", Color{0.33, 0.33, 0.33, 1}, ColorWhite},
}

// Scenery projection.
const (
	verticalViewingAngle = gomath.Pi / 4
	nearPlane            = 0.2
	farPlane             = 1000.0
)

var (
	axisX = math.Vector3{X: 100, Y: 0.01, Z: 0.01}
	axisY = math.Vector3{X: 0.01, Y: 100, Z: 0.01}
	axisZ = math.Vector3{X: 0.01, Y: 0.01, Z: 100}
)

// Renderer runs the frame cycle on top of a Backend.
type Renderer struct {
	backend  Backend
	log      *zap.Logger
	messages MessageLog

	Options  Options
	Lighting Lighting
	// Version is printed in the corner of the empty scene.
	Version string

	camera  Camera
	visible *scene.VisibleObjects
	manager *scene.Manager

	projection *MatrixStack
	modelview  *MatrixStack

	width  int
	height int

	backgroundColor int
	clearColor      Color
	textColor       Color

	alphaFunc    AlphaFunction
	alphaRef     float32
	alphaEnabled bool

	skippedFaces  int
	reportedFaces int
}

// New creates a renderer drawing through backend. Problems found while
// drawing are reported to msgs.
func New(backend Backend, msgs MessageLog, log *zap.Logger, opts Options) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		backend:    backend,
		log:        log,
		messages:   msgs,
		Options:    opts,
		Lighting:   DefaultLighting(),
		camera:     fixedCamera{},
		visible:    &scene.VisibleObjects{},
		projection: NewMatrixStack(),
		modelview:  NewMatrixStack(),
		width:      1,
		height:     1,
		alphaFunc:  AlphaGreater,
		textColor:  ColorWhite,
	}
	r.manager = scene.NewManager(r.visible, msgs, log.Named("scene"))
	r.ApplyBackgroundColor()
	return r
}

// Backend returns the active backend.
func (r *Renderer) Backend() Backend {
	return r.backend
}

// SetBackend switches to another backend. The caller owns the old one.
func (r *Renderer) SetBackend(b Backend) {
	r.backend = b
	r.backend.SetClearColor(r.clearColor)
	r.backend.SetViewport(0, 0, r.width, r.height)
	r.log.Info("renderer backend selected", zap.String("backend", b.Name()))
}

// SetCamera sets the viewpoint. A nil camera looks down +Z from the origin.
func (r *Renderer) SetCamera(c Camera) {
	if c == nil {
		c = fixedCamera{}
	}
	r.camera = c
}

// Objects returns the set of objects drawn each frame.
func (r *Renderer) Objects() *scene.VisibleObjects {
	return r.visible
}

// Manager returns the object manager feeding Objects.
func (r *Renderer) Manager() *scene.Manager {
	return r.manager
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.width = width
	r.height = height
	r.backend.SetViewport(0, 0, width, height)
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// PushMatrix saves the current matrix of the given stack.
func (r *Renderer) PushMatrix(mode MatrixMode) {
	r.stack(mode).Push()
}

// PopMatrix restores the last saved matrix of the given stack.
func (r *Renderer) PopMatrix(mode MatrixMode) {
	if !r.stack(mode).Pop() {
		r.log.Warn("matrix stack underflow", zap.Int("mode", int(mode)))
	}
}

// MatrixDepth returns the number of saved matrices on the given stack.
func (r *Renderer) MatrixDepth(mode MatrixMode) int {
	return r.stack(mode).Depth()
}

func (r *Renderer) stack(mode MatrixMode) *MatrixStack {
	if mode == MatrixProjection {
		return r.projection
	}
	return r.modelview
}

// RenderScene draws one frame.
func (r *Renderer) RenderScene() {
	b := r.backend

	// initialize
	r.resetState(false)
	b.Clear()
	r.changeToScenery()
	r.modelview.Set(lookAt(r.camera.AbsoluteDirection(), r.camera.AbsoluteUp()))
	b.SetMatrices(r.projection.Current(), r.modelview.Current(), r.camera.AbsolutePosition())

	if r.Options.CoordinateSystem {
		r.unsetAlphaFunc()
		b.DrawBox(ColorRed, math.Zero, axisX)
		b.DrawBox(ColorGreen, math.Zero, axisY)
		b.DrawBox(ColorBlue, math.Zero, axisZ)
	}

	// opaque faces
	var light *Lighting
	if r.Options.Lighting {
		l := r.Lighting
		light = &l
	}
	b.BeginScene(light)
	r.resetState(r.Options.WireFrame)
	r.skippedFaces = 0
	for _, face := range r.visible.OpaqueFaces {
		r.drawFace(face)
	}

	// alpha faces
	r.resetState(r.Options.WireFrame)
	r.visible.SortAlphaFaces(r.camera.AbsolutePosition())
	if r.Options.TransparencyMode == TransparencyPerformance {
		b.SetBlendFunc()
		r.setAlphaFunc(AlphaGreater, 0)
		b.SetDepthMask(false)
		for _, face := range r.visible.AlphaFaces {
			r.drawFace(face)
		}
	} else {
		b.UnsetBlendFunc()
		r.setAlphaFunc(AlphaEqual, 1)
		b.SetDepthMask(true)
		for _, face := range r.visible.AlphaFaces {
			if isAlphaTestOpaque(face) {
				r.drawFace(face)
			}
		}

		b.SetBlendFunc()
		r.setAlphaFunc(AlphaLess, 1)
		b.SetDepthMask(false)
		additive := false
		for _, face := range r.visible.AlphaFaces {
			if faceBlendMode(face) == scene.BlendAdditive {
				if !additive {
					r.unsetAlphaFunc()
					additive = true
				}
			} else if additive {
				r.restoreAlphaFunc()
				additive = false
			}
			r.drawFace(face)
		}
	}
	b.EndScene()
	r.reportSkippedFaces()

	// overlays
	r.resetState(false)
	r.unsetAlphaFunc()
	b.SetDepthTest(false)
	b.SetBlendFunc()
	r.RenderOverlays()
}

// changeToScenery sets the full-window viewport and perspective projection.
func (r *Renderer) changeToScenery() {
	r.backend.SetViewport(0, 0, r.width, r.height)
	aspect := float64(r.width) / float64(r.height)
	r.projection.Set(mgl64.Perspective(verticalViewingAngle, aspect, nearPlane, farPlane))
}

func (r *Renderer) resetState(wireFrame bool) {
	r.backend.ResetState()
	r.alphaEnabled = false
	if wireFrame {
		r.backend.SetWireFrame(true)
	}
}

func (r *Renderer) setAlphaFunc(fn AlphaFunction, ref float32) {
	r.alphaFunc = fn
	r.alphaRef = ref
	r.alphaEnabled = true
	r.backend.SetAlphaFunc(fn, ref)
}

// restoreAlphaFunc re-enables the alpha test with the last comparison set.
func (r *Renderer) restoreAlphaFunc() {
	r.setAlphaFunc(r.alphaFunc, r.alphaRef)
}

func (r *Renderer) unsetAlphaFunc() {
	r.alphaEnabled = false
	r.backend.UnsetAlphaFunc()
}

// drawFace skips faces whose object was never placed.
func (r *Renderer) drawFace(f scene.FaceState) {
	if !f.Placed() {
		r.skippedFaces++
		return
	}
	r.backend.DrawFace(f)
}

func (r *Renderer) reportSkippedFaces() {
	if r.skippedFaces == r.reportedFaces {
		return
	}
	r.reportedFaces = r.skippedFaces
	if r.skippedFaces == 0 {
		return
	}
	r.log.Error("faces without an object in the visible list", zap.Int("count", r.skippedFaces))
	if r.messages != nil {
		r.messages.AddMessage(messages.Error, false,
			fmt.Sprintf("%d faces referencing no object were not drawn.", r.skippedFaces))
	}
}

func faceBlendMode(f scene.FaceState) scene.BlendMode {
	if !f.Placed() {
		return scene.BlendNormal
	}
	return f.Material().BlendMode
}

// isAlphaTestOpaque reports whether an alpha face is drawn in the depth-writing
// quality sub-pass: normal blending, no glow and a fully opaque color.
func isAlphaTestOpaque(f scene.FaceState) bool {
	if !f.Placed() {
		return false
	}
	m := f.Material()
	return m.BlendMode == scene.BlendNormal && m.GlowAttenuation == 0 && m.Color.A == 255
}

// ReleaseMeshes drops GPU copies of prototypes after the world was cleared.
// Backends that keep nothing between frames ignore it.
func (r *Renderer) ReleaseMeshes() {
	if f, ok := r.backend.(interface{ ForgetAll() }); ok {
		f.ForgetAll()
	}
}

// SetNight switches between day lighting and its night variant.
func (r *Renderer) SetNight(day Lighting, night bool) {
	r.Options.LightingNight = night
	if night {
		r.Lighting = day.AtTime(0)
		return
	}
	r.Lighting = day
}

// ApplyBackgroundColor sets the clear and text colors for the selected
// background.
func (r *Renderer) ApplyBackgroundColor() {
	if r.backgroundColor == BackgroundCustom {
		r.backend.SetClearColor(r.clearColor)
		return
	}
	r.backgroundColor = clampBackground(r.backgroundColor)
	bg := backgrounds[r.backgroundColor]
	r.clearColor = bg.clear
	r.textColor = bg.text
	r.backend.SetClearColor(bg.clear)
}

// SetBackgroundColor selects one of the preset backgrounds. Indices outside
// 0..MaxBackgroundColor-1 are clamped.
func (r *Renderer) SetBackgroundColor(index int) {
	r.backgroundColor = clampBackground(index)
	r.ApplyBackgroundColor()
}

// ApplyCustomBackgroundColor clears to an arbitrary color. The text color is
// left as it was.
func (r *Renderer) ApplyCustomBackgroundColor(red, green, blue uint8) {
	r.backgroundColor = BackgroundCustom
	r.clearColor = RGB(red, green, blue)
	r.backend.SetClearColor(r.clearColor)
}

// CycleBackgroundColor moves to the next preset background.
func (r *Renderer) CycleBackgroundColor() {
	next := r.backgroundColor + 1
	if next < 0 || next >= MaxBackgroundColor {
		next = 0
	}
	r.SetBackgroundColor(next)
}

// BackgroundColor returns the selected preset, or BackgroundCustom.
func (r *Renderer) BackgroundColor() int {
	return r.backgroundColor
}

// BackgroundColorName returns the display name of the background.
func (r *Renderer) BackgroundColorName() string {
	if r.backgroundColor < 0 || r.backgroundColor >= MaxBackgroundColor {
		return "Custom"
	}
	return backgrounds[r.backgroundColor].name
}

// ClearColor returns the color the frame is cleared to.
func (r *Renderer) ClearColor() Color {
	return r.clearColor
}

// TextColor returns the overlay text color.
func (r *Renderer) TextColor() Color {
	return r.textColor
}

func clampBackground(i int) int {
	if i < 0 {
		return 0
	}
	if i >= MaxBackgroundColor {
		return MaxBackgroundColor - 1
	}
	return i
}
