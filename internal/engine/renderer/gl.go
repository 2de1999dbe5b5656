package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/bve-viewer/internal/engine/scene"
	"github.com/Faultbox/bve-viewer/internal/engine/shader"
	"github.com/Faultbox/bve-viewer/pkg/math"
)

// InitGL loads the GL entry points for the current context and returns the
// reported version string.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func InitGL(log *zap.Logger) (string, error) {
	if err := gl.Init(); err != nil {
		return "", fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)
	return version, nil
}

// ParseGLVersion extracts the major and minor version from a GL_VERSION
// string such as "4.1 Metal - 76.3" or "OpenGL ES 3.0". It returns 0, 0 if
// no version is found.
func ParseGLVersion(s string) (major, minor int) {
	i := strings.IndexAny(s, "0123456789")
	if i < 0 {
		return 0, 0
	}
	if _, err := fmt.Sscanf(s[i:], "%d.%d", &major, &minor); err != nil {
		return 0, 0
	}
	return major, minor
}

// SelectBackend picks the backend once for the lifetime of the context.
// The window only creates core contexts, so both backends are available and
// the streaming one is used when legacy mode is forced.
func SelectBackend(version string, forceLegacy bool, log *zap.Logger) (Backend, error) {
	major, minor := ParseGLVersion(version)
	log.Debug("selecting renderer backend",
		zap.Int("gl_major", major),
		zap.Int("gl_minor", minor),
		zap.Bool("force_legacy", forceLegacy),
	)
	streaming, err := useStreaming(major, minor, forceLegacy)
	if err != nil {
		return nil, err
	}
	if streaming {
		b, err := NewImmediateBackend(log)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	b, err := NewRetainedBackend(log)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// useStreaming reports whether the immediate backend is selected. Both
// backends run GLSL 3.30 shaders; an unparsable version is accepted since the
// context was created as 3.3 core or newer.
func useStreaming(major, minor int, forceLegacy bool) (bool, error) {
	if major != 0 && (major < 3 || major == 3 && minor < 3) {
		return false, fmt.Errorf("OpenGL %d.%d is too old, 3.3 is required", major, minor)
	}
	return forceLegacy, nil
}

// faceUniforms are the locations in shader.Face.
type faceUniforms struct {
	projection, view, model    int32
	color, brightness          int32
	hasTexture, texture        int32
	isLight, lightPosition     int32
	lightAmbient, lightDiffuse int32
	lightSpecular, lightModel  int32
	alphaFunc, alphaRef        int32
}

// glBackend holds the GL state shared by both backends. The embedding
// backend supplies drawMesh.
type glBackend struct {
	log  *zap.Logger
	name string

	program uint32
	u       faceUniforms

	camera math.Vector3
	light  *Lighting
	blend  bool

	// box is the unit cube used for the axis markers.
	box     *scene.StaticObject
	overlay *overlay

	drawMesh func(obj *scene.StaticObject, face int)
}

func newGLBackend(name string, log *zap.Logger) (*glBackend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &glBackend{
		log:  log,
		name: name,
		box:  scene.NewBox("axis", math.Vector3{X: 1, Y: 1, Z: 1}, scene.Material{Color: scene.Color32{R: 255, G: 255, B: 255, A: 255}}),
	}

	var err error
	g.program, err = shader.Face.Compile()
	if err != nil {
		return nil, err
	}
	p := g.program
	g.u = faceUniforms{
		projection:    shader.MustGetUniform(p, "uProjection"),
		view:          shader.MustGetUniform(p, "uView"),
		model:         shader.MustGetUniform(p, "uModel"),
		color:         shader.GetUniform(p, "uColor"),
		brightness:    shader.GetUniform(p, "uBrightness"),
		hasTexture:    shader.GetUniform(p, "uHasTexture"),
		texture:       shader.GetUniform(p, "uTexture"),
		isLight:       shader.GetUniform(p, "uIsLight"),
		lightPosition: shader.GetUniform(p, "uLightPosition"),
		lightAmbient:  shader.GetUniform(p, "uLightAmbient"),
		lightDiffuse:  shader.GetUniform(p, "uLightDiffuse"),
		lightSpecular: shader.GetUniform(p, "uLightSpecular"),
		lightModel:    shader.GetUniform(p, "uLightModel"),
		alphaFunc:     shader.GetUniform(p, "uAlphaFunc"),
		alphaRef:      shader.GetUniform(p, "uAlphaRef"),
	}
	gl.UseProgram(p)
	gl.Uniform1i(g.u.texture, 0)
	gl.Uniform1f(g.u.brightness, 1)
	gl.UseProgram(0)

	g.overlay, err = newOverlay()
	if err != nil {
		gl.DeleteProgram(g.program)
		return nil, fmt.Errorf("create overlay: %w", err)
	}
	return g, nil
}

func (g *glBackend) Name() string {
	return g.name
}

func (g *glBackend) ResetState() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(true)
	gl.Disable(gl.CULL_FACE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.BLEND)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	g.blend = false
	g.UnsetAlphaFunc()
}

func (g *glBackend) SetClearColor(c Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
}

func (g *glBackend) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (g *glBackend) SetViewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (g *glBackend) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (g *glBackend) SetDepthMask(enabled bool) {
	gl.DepthMask(enabled)
}

func (g *glBackend) SetBlendFunc() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	g.blend = true
}

func (g *glBackend) UnsetBlendFunc() {
	gl.Disable(gl.BLEND)
	g.blend = false
}

func (g *glBackend) SetAlphaFunc(fn AlphaFunction, ref float32) {
	gl.UseProgram(g.program)
	gl.Uniform1i(g.u.alphaFunc, int32(fn)+1)
	gl.Uniform1f(g.u.alphaRef, ref)
}

func (g *glBackend) UnsetAlphaFunc() {
	gl.UseProgram(g.program)
	gl.Uniform1i(g.u.alphaFunc, 0)
}

func (g *glBackend) SetWireFrame(enabled bool) {
	if enabled {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (g *glBackend) SetMatrices(projection, view mgl64.Mat4, camera math.Vector3) {
	g.camera = camera
	g.setMatrix(g.u.projection, projection)
	g.setMatrix(g.u.view, view)
}

func (g *glBackend) setMatrix(loc int32, m mgl64.Mat4) {
	m32 := toMat32(m)
	gl.UseProgram(g.program)
	gl.UniformMatrix4fv(loc, 1, false, &m32[0])
}

func (g *glBackend) BeginScene(light *Lighting) {
	gl.UseProgram(g.program)
	g.light = light
	g.setLighting(light != nil)
	if light == nil {
		return
	}
	pos := mgl32.Vec3{float32(light.LightPosition.X), float32(light.LightPosition.Y), float32(-light.LightPosition.Z)}
	ambient := light.Ambient.Vec3()
	diffuse := light.Diffuse.Vec3()
	specular := light.Specular.Vec3()
	gl.Uniform3fv(g.u.lightPosition, 1, &pos[0])
	gl.Uniform3fv(g.u.lightAmbient, 1, &ambient[0])
	gl.Uniform3fv(g.u.lightDiffuse, 1, &diffuse[0])
	gl.Uniform3fv(g.u.lightSpecular, 1, &specular[0])
	gl.Uniform1f(g.u.lightModel, light.LightModel)
}

func (g *glBackend) setLighting(on bool) {
	var v int32
	if on {
		v = 1
	}
	gl.UseProgram(g.program)
	gl.Uniform1i(g.u.isLight, v)
}

func (g *glBackend) EndScene() {
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

func (g *glBackend) DrawFace(f scene.FaceState) {
	obj := f.Object
	mesh := &obj.Prototype.Mesh
	face := mesh.Faces[f.Face]
	mat := mesh.Materials[face.Material]

	color := Color{
		R: float32(mat.Color.R) / 255,
		G: float32(mat.Color.G) / 255,
		B: float32(mat.Color.B) / 255,
		A: float32(mat.Color.A) / 255,
	}
	if mat.GlowAttenuation != 0 {
		first := obj.WorldPosition(mesh.Vertices[face.Vertices[0]].Position)
		color.A *= float32(mat.GlowFactor(first.Sub(g.camera).Norm()))
	}

	gl.UseProgram(g.program)
	g.setMatrix(g.u.model, modelMatrix(obj.Transformation, obj.Position, g.camera))
	gl.Uniform4f(g.u.color, color.R, color.G, color.B, color.A)
	gl.Uniform1f(g.u.brightness, float32(obj.Brightness))
	if mat.Texture != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, mat.Texture)
		gl.Uniform1i(g.u.hasTexture, 1)
	} else {
		gl.Uniform1i(g.u.hasTexture, 0)
	}

	additive := g.blend && mat.BlendMode == scene.BlendAdditive
	if additive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	}
	g.drawMesh(obj.Prototype, f.Face)
	if additive {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func (g *glBackend) DrawBox(c Color, position, halfSize math.Vector3) {
	model := modelMatrix(math.Identity(), position, g.camera).Mul4(mgl64.Scale3D(halfSize.X, halfSize.Y, halfSize.Z))

	gl.UseProgram(g.program)
	g.setMatrix(g.u.model, model)
	gl.Uniform4f(g.u.color, c.R, c.G, c.B, c.A)
	gl.Uniform1f(g.u.brightness, 1)
	gl.Uniform1i(g.u.hasTexture, 0)
	g.setLighting(false)
	for i := range g.box.Mesh.Faces {
		g.drawMesh(g.box, i)
	}
	g.setLighting(g.light != nil)
}

func (g *glBackend) BeginOverlay(projection, modelview mgl64.Mat4) {
	g.overlay.begin(toMat32(projection.Mul4(modelview)))
}

func (g *glBackend) DrawRect(x, y, width, height float32, c Color) {
	g.overlay.addQuad(x, y, width, height, c)
}

func (g *glBackend) DrawString(text string, x, y float32, align TextAlignment, c Color) {
	g.overlay.drawText(text, x, y, align, c)
}

func (g *glBackend) MeasureString(text string) (float32, float32) {
	return g.overlay.atlas.MeasureText(text)
}

func (g *glBackend) EndOverlay() {
	g.overlay.flush()
}

func (g *glBackend) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func (g *glBackend) close() {
	g.overlay.close()
	if g.program != 0 {
		gl.DeleteProgram(g.program)
		g.program = 0
	}
}

// faceVAO creates a vertex array for the face vertex layout bound to vbo.
func faceVAO(vbo uint32) uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	// Vertex format: pos(3) + normal(3) + uv(2) = 8 floats, 32 bytes
	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)
	return vao
}
