package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/bve-viewer/internal/engine/shader"
)

// overlay batches 2D quads and glyphs and draws them in one go at the end of
// the overlay pass.
type overlay struct {
	solidShader uint32
	textShader  uint32

	solidVAO uint32
	solidVBO uint32
	textVAO  uint32
	textVBO  uint32

	solidVertices []float32
	textVertices  []float32

	atlas        *glyphAtlas
	atlasTexture uint32

	projection mgl32.Mat4
}

func newOverlay() (*overlay, error) {
	o := &overlay{
		solidVertices: make([]float32, 0, 4096),
		textVertices:  make([]float32, 0, 4096),
		atlas:         newGlyphAtlas(),
	}

	var err error
	o.solidShader, err = shader.Solid.Compile()
	if err != nil {
		return nil, err
	}
	o.textShader, err = shader.Text.Compile()
	if err != nil {
		gl.DeleteProgram(o.solidShader)
		return nil, err
	}

	o.createSolidBuffers()
	o.createTextBuffers()
	if err := o.uploadAtlas(); err != nil {
		o.close()
		return nil, fmt.Errorf("upload glyph atlas: %w", err)
	}
	return o, nil
}

// createSolidBuffers creates VAO/VBO for solid color quad rendering.
func (o *overlay) createSolidBuffers() {
	gl.GenVertexArrays(1, &o.solidVAO)
	gl.BindVertexArray(o.solidVAO)

	gl.GenBuffers(1, &o.solidVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.solidVBO)

	// Vertex format: pos(3) + color(4) = 7 floats, 28 bytes
	stride := int32(7 * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// createTextBuffers creates VAO/VBO for textured glyph quads.
func (o *overlay) createTextBuffers() {
	gl.GenVertexArrays(1, &o.textVAO)
	gl.BindVertexArray(o.textVAO)

	gl.GenBuffers(1, &o.textVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.textVBO)

	// Vertex format: pos(3) + texcoord(2) + color(4) = 9 floats, 36 bytes
	stride := int32(9 * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (o *overlay) uploadAtlas() error {
	img := o.atlas.img
	if len(img.Pix) == 0 {
		return fmt.Errorf("empty atlas")
	}
	gl.GenTextures(1, &o.atlasTexture)
	gl.BindTexture(gl.TEXTURE_2D, o.atlasTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (o *overlay) begin(projection mgl32.Mat4) {
	o.projection = projection
	o.solidVertices = o.solidVertices[:0]
	o.textVertices = o.textVertices[:0]
}

// addQuad adds a solid color quad to the vertex buffer.
func (o *overlay) addQuad(x, y, w, h float32, c Color) {
	o.solidVertices = append(o.solidVertices,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y+h, 0, c.R, c.G, c.B, c.A,
	)
}

// addTexturedQuad adds a glyph quad to the text vertex buffer.
func (o *overlay) addTexturedQuad(x, y, w, h, u0, v0, u1, v1 float32, c Color) {
	o.textVertices = append(o.textVertices,
		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, 0, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,
		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, 0, u0, v1, c.R, c.G, c.B, c.A,
	)
}

func (o *overlay) drawText(text string, x, y float32, align TextAlignment, c Color) {
	if align == AlignTopRight {
		w, _ := o.atlas.MeasureText(text)
		x -= w
	}
	gw, gh := o.atlas.GlyphSize()
	charW, charH := float32(gw), float32(gh)

	curX := x
	for _, ch := range text {
		if ch == '\n' {
			curX = x
			y += charH
			continue
		}
		u0, v0, u1, v1 := o.atlas.GlyphUV(ch)
		o.addTexturedQuad(curX, y, charW, charH, u0, v0, u1, v1, c)
		curX += charW
	}
}

// flush draws the queued quads, then the glyphs on top.
func (o *overlay) flush() {
	if len(o.solidVertices) > 0 {
		gl.UseProgram(o.solidShader)
		gl.UniformMatrix4fv(shader.GetUniform(o.solidShader, "uProjection"), 1, false, &o.projection[0])

		gl.BindVertexArray(o.solidVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, o.solidVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(o.solidVertices)*4, unsafe.Pointer(&o.solidVertices[0]), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(o.solidVertices)/7))
	}

	if len(o.textVertices) > 0 {
		gl.UseProgram(o.textShader)
		gl.UniformMatrix4fv(shader.GetUniform(o.textShader, "uProjection"), 1, false, &o.projection[0])
		gl.Uniform1i(shader.GetUniform(o.textShader, "uTexture"), 0)

		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, o.atlasTexture)

		gl.BindVertexArray(o.textVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, o.textVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(o.textVertices)*4, unsafe.Pointer(&o.textVertices[0]), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(o.textVertices)/9))
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

func (o *overlay) close() {
	if o.atlasTexture != 0 {
		gl.DeleteTextures(1, &o.atlasTexture)
	}
	if o.solidVAO != 0 {
		gl.DeleteVertexArrays(1, &o.solidVAO)
	}
	if o.solidVBO != 0 {
		gl.DeleteBuffers(1, &o.solidVBO)
	}
	if o.textVAO != 0 {
		gl.DeleteVertexArrays(1, &o.textVAO)
	}
	if o.textVBO != 0 {
		gl.DeleteBuffers(1, &o.textVBO)
	}
	if o.solidShader != 0 {
		gl.DeleteProgram(o.solidShader)
	}
	if o.textShader != 0 {
		gl.DeleteProgram(o.textShader)
	}
}
