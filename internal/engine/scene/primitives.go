package scene

import "github.com/Faultbox/bve-viewer/pkg/math"

// boxCorners are the corners of the unit cube, +X+Y+Z first.
var boxCorners = [8]math.Vector3{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
}

// BoxQuads lists the six faces of the unit cube as corner indices, each wound
// counter-clockwise when seen from outside.
var BoxQuads = [6][4]int{
	{0, 3, 2, 1}, // +Z
	{0, 1, 5, 4}, // +X
	{0, 4, 7, 3}, // +Y
	{6, 7, 4, 5}, // -Z
	{6, 2, 3, 7}, // -X
	{6, 5, 1, 2}, // -Y
}

var boxNormals = [6]math.Vector3{
	math.Forward, math.Right, math.Up, math.Backward, math.Left, math.Down,
}

// BoxCorner returns corner i of a box with the given half extents.
func BoxCorner(i int, halfSize math.Vector3) math.Vector3 {
	c := boxCorners[i]
	return math.Vector3{X: c.X * halfSize.X, Y: c.Y * halfSize.Y, Z: c.Z * halfSize.Z}
}

// NewBox builds an axis-aligned box centered on the origin. Every side uses
// the single material m.
func NewBox(name string, halfSize math.Vector3, m Material) *StaticObject {
	obj := &StaticObject{Name: name}
	obj.Mesh.Materials = []Material{m}
	for side, quad := range BoxQuads {
		var face Face
		for k, corner := range quad {
			face.Vertices = append(face.Vertices, len(obj.Mesh.Vertices))
			obj.Mesh.Vertices = append(obj.Mesh.Vertices, Vertex{
				Position: BoxCorner(corner, halfSize),
				Normal:   boxNormals[side],
				U:        float32(k&1 ^ k>>1),
				V:        float32(k >> 1),
			})
		}
		obj.Mesh.Faces = append(obj.Mesh.Faces, face)
	}
	return obj
}

// NewQuad builds a width x height rectangle in the XY plane facing -Z, with
// a back face so it is visible from both sides.
func NewQuad(name string, width, height float64, m Material) *StaticObject {
	w, h := width/2, height/2
	obj := &StaticObject{Name: name}
	obj.Mesh.Materials = []Material{m}
	obj.Mesh.Vertices = []Vertex{
		{Position: math.Vector3{X: -w, Y: -h}, Normal: math.Backward, U: 0, V: 1},
		{Position: math.Vector3{X: -w, Y: h}, Normal: math.Backward, U: 0, V: 0},
		{Position: math.Vector3{X: w, Y: h}, Normal: math.Backward, U: 1, V: 0},
		{Position: math.Vector3{X: w, Y: -h}, Normal: math.Backward, U: 1, V: 1},
	}
	obj.Mesh.Faces = []Face{
		{Vertices: []int{0, 1, 2, 3}},
		{Vertices: []int{3, 2, 1, 0}},
	}
	return obj
}
