package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/bve-viewer/internal/engine/scene"
)

// ImmediateBackend streams every face through a single dynamic buffer. Nothing
// is cached between draws.
type ImmediateBackend struct {
	*glBackend
	vao      uint32
	vbo      uint32
	vertices []float32
}

// NewImmediateBackend compiles the shaders and creates the stream buffer.
func NewImmediateBackend(log *zap.Logger) (*ImmediateBackend, error) {
	g, err := newGLBackend("Immediate (streamed)", log)
	if err != nil {
		return nil, err
	}
	b := &ImmediateBackend{
		glBackend: g,
		vertices:  make([]float32, 0, 64*floatsPerVertex),
	}
	gl.GenBuffers(1, &b.vbo)
	b.vao = faceVAO(b.vbo)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	g.drawMesh = b.drawMesh
	return b, nil
}

func (b *ImmediateBackend) drawMesh(obj *scene.StaticObject, face int) {
	f := obj.Mesh.Faces[face]
	if len(f.Vertices) < 3 {
		return
	}
	b.vertices = appendFaceVertices(b.vertices[:0], &obj.Mesh, f)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.vertices)*4, unsafe.Pointer(&b.vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(b.vertices)/floatsPerVertex))
}

// Close releases all GL resources.
func (b *ImmediateBackend) Close() {
	b.log.Info("closing renderer backend", zap.String("backend", b.name))
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	b.close()
}
