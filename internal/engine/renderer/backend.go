package renderer

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/bve-viewer/internal/engine/scene"
	"github.com/Faultbox/bve-viewer/pkg/math"
)

// Backend issues the GL calls for a frame. One backend is chosen at start-up
// and used for every pass until it is replaced; draw code never branches on
// the kind of backend.
type Backend interface {
	// Name is shown in the overlay diagnostics.
	Name() string

	// ResetState restores the pass defaults: depth test and depth writes on,
	// blending and the alpha test off, filled polygons.
	ResetState()
	SetClearColor(c Color)
	Clear()
	SetViewport(x, y, width, height int)
	SetDepthTest(enabled bool)
	SetDepthMask(enabled bool)
	// SetBlendFunc enables source-alpha blending.
	SetBlendFunc()
	UnsetBlendFunc()
	SetAlphaFunc(fn AlphaFunction, ref float32)
	UnsetAlphaFunc()
	SetWireFrame(enabled bool)

	// SetMatrices sets the scenery projection and view for the frame. Object
	// positions are drawn relative to camera.
	SetMatrices(projection, view mgl64.Mat4, camera math.Vector3)
	// BeginScene activates the face shader. A nil light disables lighting.
	BeginScene(light *Lighting)
	EndScene()
	// DrawFace draws one face of a placed object. Additive materials are drawn
	// with additive blending when blending is enabled.
	DrawFace(f scene.FaceState)
	// DrawBox draws a solid box of the given half extents at position.
	DrawBox(c Color, position, halfSize math.Vector3)

	// BeginOverlay starts a 2D pass using the given screen-space matrices.
	BeginOverlay(projection, modelview mgl64.Mat4)
	DrawRect(x, y, width, height float32, c Color)
	DrawString(text string, x, y float32, align TextAlignment, c Color)
	MeasureString(text string) (width, height float32)
	EndOverlay()

	// ReadPixels returns the RGBA contents of the back buffer, bottom row
	// first.
	ReadPixels(width, height int) []byte
	Close()
}
