package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/bve-viewer/internal/messages"
)

// RenderOverlays draws the interface on top of the scene. Both matrix stacks
// are left at the depth they had on entry.
func (r *Renderer) RenderOverlays() {
	b := r.backend
	b.SetBlendFunc()
	r.PushMatrix(MatrixProjection)
	r.projection.Set(mgl64.Ortho(0, float64(r.width), float64(r.height), 0, -1, 1))
	r.PushMatrix(MatrixModelview)
	r.modelview.Set(mgl64.Ident4())

	b.BeginOverlay(r.projection.Current(), r.modelview.Current())
	if r.Options.Interface {
		if len(r.visible.Objects) == 0 {
			r.drawEmptySceneHints()
		} else {
			r.drawSceneHints()
		}
	}
	b.EndOverlay()

	// finalize
	r.PopMatrix(MatrixProjection)
	r.PopMatrix(MatrixModelview)
}

func (r *Renderer) drawEmptySceneHints() {
	w, h := float32(r.width), float32(r.height)
	r.drawKeys(4, 4, 20, [][]string{{"F5"}, {"F9"}})
	r.drawText("Reload the scene files", 32, 4, AlignTopLeft, r.textColor)
	r.drawText("Write the message log", 32, 24, AlignTopLeft, r.textColor)
	if r.Version != "" {
		r.drawText("v"+r.Version, w-8, h-20, AlignTopRight, r.textColor)
	}
}

func (r *Renderer) drawSceneHints() {
	w, h := float32(r.width), float32(r.height)
	mid := float32(int(0.5*float64(r.width))) - 88
	pos := r.camera.AbsolutePosition()

	r.drawText(fmt.Sprintf("Position: %.2f, %.2f, %.2f", pos.X, pos.Y, pos.Z), mid, 4, AlignTopLeft, r.textColor)
	r.drawText("Renderer: "+r.backend.Name(), mid, 24, AlignTopLeft, r.textColor)

	r.drawKeys(4, 4, 24, [][]string{{"F5"}, {"del"}, {"T"}})
	r.drawText("Reload the currently open objects", 32, 4, AlignTopLeft, r.textColor)
	r.drawText("Clear currently open objects", 32, 24, AlignTopLeft, r.textColor)
	r.drawText("Transparency: "+r.Options.TransparencyMode.String(), 32, 44, AlignTopLeft, r.textColor)

	r.drawKeys(w-20, 4, 16, [][]string{{"F"}, {"L"}, {"G"}, {"B"}, {"I"}, {"R"}})
	r.drawText("WireFrame: "+onOff(r.Options.WireFrame), w-28, 4, AlignTopRight, r.textColor)
	lighting := "day"
	if r.Options.LightingNight {
		lighting = "night"
	}
	r.drawText("Lighting: "+lighting, w-28, 24, AlignTopRight, r.textColor)
	r.drawText("Grid: "+onOff(r.Options.CoordinateSystem), w-28, 44, AlignTopRight, r.textColor)
	r.drawText("Background: "+r.BackgroundColorName(), w-28, 64, AlignTopRight, r.textColor)
	r.drawText("Hide interface:", w-28, 84, AlignTopRight, r.textColor)
	r.drawText("Switch renderer type:", w-28, 104, AlignTopRight, r.textColor)

	r.drawKeys(4, h-40, 16, [][]string{{"", "W", ""}, {"A", "S", "D"}})
	r.drawKeys(mid+60, h-40, 16, [][]string{{"", "^", ""}, {"<", "v", ">"}})
	r.drawKeys(w-60, h-60, 16, [][]string{{"", "8", "9"}, {"4", "5", "6"}, {"", "2", "3"}})

	r.drawMessageNotice()
}

// drawMessageNotice tells the user how many messages are pending, in the
// notice color when any of them is worse than informational.
func (r *Renderer) drawMessageNotice() {
	if r.messages == nil {
		return
	}
	msgs := r.messages.Messages()
	if len(msgs) == 0 {
		return
	}
	r.drawKeys(4, 112, 20, [][]string{{"F9"}})

	color := r.textColor
	kind := ""
	if messages.HasErrors(msgs) {
		color = ColorNotice
		kind = "error "
	}
	var text string
	if len(msgs) == 1 {
		text = fmt.Sprintf("Display the 1 %smessage recently generated.", kind)
	} else {
		text = fmt.Sprintf("Display the %d %smessages recently generated.", len(msgs), kind)
	}
	r.drawText(text, 32, 112, AlignTopLeft, color)
}

func (r *Renderer) drawText(text string, x, y float32, align TextAlignment, c Color) {
	r.backend.DrawString(text, x, y, align, c)
}

// drawKeys draws rows of key caps starting at (left, top). Empty names leave
// a gap.
func (r *Renderer) drawKeys(left, top, width float32, keys [][]string) {
	b := r.backend
	py := top
	for _, row := range keys {
		px := left
		for _, key := range row {
			if key != "" {
				b.DrawRect(px-1, py-1, width+1, 17, colorKeyShadow)
				b.DrawRect(px-1, py-1, width-1, 15, colorKeyHighlight)
				b.DrawRect(px, py, width, 16, colorKeyFace)
				tw, th := b.MeasureString(key)
				b.DrawString(key, px+(width-tw)/2, py+(16-th)/2, AlignTopLeft, ColorWhite)
			}
			px += width + 4
		}
		py += 20
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
