package renderer

import (
	"github.com/Faultbox/bve-viewer/internal/engine/scene"
)

// floatsPerVertex is the face vertex layout: position(3) + normal(3) + uv(2).
const floatsPerVertex = 8

func appendVertex(dst []float32, v scene.Vertex) []float32 {
	return append(dst,
		float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z),
		float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z),
		v.U, v.V,
	)
}

// appendMeshVertices appends every vertex of mesh in order.
func appendMeshVertices(dst []float32, mesh *scene.Mesh) []float32 {
	for _, v := range mesh.Vertices {
		dst = appendVertex(dst, v)
	}
	return dst
}

// appendFanIndices appends face as a triangle fan around its first vertex.
func appendFanIndices(dst []uint32, face scene.Face) []uint32 {
	for i := 1; i+1 < len(face.Vertices); i++ {
		dst = append(dst,
			uint32(face.Vertices[0]),
			uint32(face.Vertices[i]),
			uint32(face.Vertices[i+1]),
		)
	}
	return dst
}

// appendFaceVertices appends face as an unindexed triangle fan.
func appendFaceVertices(dst []float32, mesh *scene.Mesh, face scene.Face) []float32 {
	for i := 1; i+1 < len(face.Vertices); i++ {
		dst = appendVertex(dst, mesh.Vertices[face.Vertices[0]])
		dst = appendVertex(dst, mesh.Vertices[face.Vertices[i]])
		dst = appendVertex(dst, mesh.Vertices[face.Vertices[i+1]])
	}
	return dst
}

// indexRange is the slice of an index buffer holding one face.
type indexRange struct {
	offset int32 // in indices
	count  int32
}

// buildIndices triangulates every face of mesh. Faces that cannot be drawn get
// an empty range.
func buildIndices(mesh *scene.Mesh) ([]uint32, []indexRange) {
	var indices []uint32
	ranges := make([]indexRange, len(mesh.Faces))
	for i, f := range mesh.Faces {
		start := len(indices)
		if len(f.Vertices) >= 3 {
			indices = appendFanIndices(indices, f)
		}
		ranges[i] = indexRange{offset: int32(start), count: int32(len(indices) - start)}
	}
	return indices, ranges
}
