package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/bve-viewer/internal/engine/scene"
)

// meshBuffers is the GPU copy of one prototype mesh.
type meshBuffers struct {
	vao, vbo, ibo uint32
	faces         []indexRange
}

// RetainedBackend uploads each prototype once and draws its faces from a
// vertex array object.
type RetainedBackend struct {
	*glBackend
	meshes map[*scene.StaticObject]*meshBuffers
}

// NewRetainedBackend compiles the shaders and registers the axis box.
func NewRetainedBackend(log *zap.Logger) (*RetainedBackend, error) {
	g, err := newGLBackend("Retained (GL 3.0+)", log)
	if err != nil {
		return nil, err
	}
	b := &RetainedBackend{
		glBackend: g,
		meshes:    make(map[*scene.StaticObject]*meshBuffers),
	}
	g.drawMesh = b.drawMesh
	b.buffers(g.box)
	return b, nil
}

// buffers returns the cached buffers for obj, uploading them on first use.
func (b *RetainedBackend) buffers(obj *scene.StaticObject) *meshBuffers {
	if m, ok := b.meshes[obj]; ok {
		return m
	}
	vertices := appendMeshVertices(make([]float32, 0, len(obj.Mesh.Vertices)*floatsPerVertex), &obj.Mesh)
	indices, ranges := buildIndices(&obj.Mesh)
	m := &meshBuffers{faces: ranges}

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	}
	m.vao = faceVAO(m.vbo)

	gl.GenBuffers(1, &m.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ibo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	b.meshes[obj] = m
	b.log.Debug("mesh uploaded",
		zap.String("name", obj.Name),
		zap.Int("vertices", len(obj.Mesh.Vertices)),
		zap.Int("indices", len(indices)),
	)
	return m
}

func (b *RetainedBackend) drawMesh(obj *scene.StaticObject, face int) {
	m := b.buffers(obj)
	r := m.faces[face]
	if r.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.count, gl.UNSIGNED_INT, uintptr(r.offset)*4)
}

// Forget releases the buffers of a prototype that will not be drawn again.
func (b *RetainedBackend) Forget(obj *scene.StaticObject) {
	m, ok := b.meshes[obj]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ibo)
	delete(b.meshes, obj)
}

// ForgetAll releases the buffers of every prototype except the axis box.
func (b *RetainedBackend) ForgetAll() {
	for obj := range b.meshes {
		if obj != b.box {
			b.Forget(obj)
		}
	}
}

// Close releases all GL resources.
func (b *RetainedBackend) Close() {
	b.log.Info("closing renderer backend", zap.String("backend", b.name))
	for obj := range b.meshes {
		b.Forget(obj)
	}
	b.close()
}
