// Package scene holds the objects placed in the viewer's world and sorts their
// faces into the lists the renderer draws each frame.
package scene

import (
	"github.com/Faultbox/bve-viewer/pkg/math"
)

// BlendMode is the compositing rule of a material.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendAdditive
)

func (b BlendMode) String() string {
	if b == BlendAdditive {
		return "additive"
	}
	return "normal"
}

// Color32 is an 8-bit RGBA color.
type Color32 struct {
	R, G, B, A uint8
}

// Material describes how a group of faces is shaded.
type Material struct {
	Color           Color32
	BlendMode       BlendMode
	GlowAttenuation uint16 // 0 disables glow
	Texture         uint32 // GL texture name, 0 for none
	TextureAlpha    bool   // texture has a partially transparent alpha channel
}

// IsOpaque reports whether faces using m can be drawn without blending.
func (m Material) IsOpaque() bool {
	return m.Color.A == 255 &&
		m.BlendMode == BlendNormal &&
		m.GlowAttenuation == 0 &&
		!m.TextureAlpha
}

// GlowMode selects how glow fades with distance.
type GlowMode int

const (
	GlowNone GlowMode = iota
	GlowDivisionExponent2
	GlowDivisionExponent4
)

// Glow splits the packed attenuation data into its mode (top four bits) and
// half distance in meters (low twelve bits).
func (m Material) Glow() (mode GlowMode, halfDistance float64) {
	return GlowMode(m.GlowAttenuation >> 12), float64(m.GlowAttenuation & 0x0fff)
}

// GlowFactor returns the alpha multiplier for a glowing face whose first
// vertex is at squared distance distSq from the camera. Faces fade out as the
// camera approaches and reach half intensity at the half distance.
func (m Material) GlowFactor(distSq float64) float64 {
	mode, half := m.Glow()
	switch mode {
	case GlowDivisionExponent2:
		return distSq / (distSq + half*half)
	case GlowDivisionExponent4:
		t := distSq * distSq
		h := half * half
		return t / (t + h*h)
	default:
		return 1
	}
}

// Vertex is a mesh vertex in object space.
type Vertex struct {
	Position math.Vector3
	Normal   math.Vector3
	U, V     float32
}

// Face is a convex polygon indexing into Mesh.Vertices.
type Face struct {
	Vertices []int
	Material int
}

// Mesh is the geometry of a static object.
type Mesh struct {
	Vertices  []Vertex
	Faces     []Face
	Materials []Material
}

// validFace reports whether face i can be drawn.
func (m *Mesh) validFace(i int) bool {
	f := m.Faces[i]
	if len(f.Vertices) < 3 || f.Material < 0 || f.Material >= len(m.Materials) {
		return false
	}
	for _, v := range f.Vertices {
		if v < 0 || v >= len(m.Vertices) {
			return false
		}
	}
	return true
}

// UnifiedObject is a prototype handed over by an object loader.
type UnifiedObject interface {
	// Parts returns the static pieces of the object and their placement
	// relative to the object's origin.
	Parts() []Part
}

// Part is a static piece of a composite object.
type Part struct {
	Prototype *StaticObject
	Position  math.Vector3
	Yaw       float64
	Pitch     float64
	Roll      float64
}

// StaticObject is a single rigid mesh.
type StaticObject struct {
	Name string
	Mesh Mesh
}

// Parts returns the object itself at the origin.
func (s *StaticObject) Parts() []Part {
	return []Part{{Prototype: s}}
}

// AnimatedObjectCollection groups static parts, each turned relative to the
// collection's frame.
type AnimatedObjectCollection struct {
	Name    string
	Objects []Part
}

// Parts returns the collection's parts.
func (a *AnimatedObjectCollection) Parts() []Part {
	return a.Objects
}

// ObjectState is an instance of a static prototype in the world.
type ObjectState struct {
	ID         int
	Prototype  *StaticObject
	Position   math.Vector3
	Base       math.Transformation
	Aux        math.Transformation
	Brightness float64

	// Transformation is always math.Compose(Base, Aux). Use SetPose to change it.
	Transformation math.Transformation
}

// NewObjectState places proto at position with the given frames.
func NewObjectState(id int, proto *StaticObject, position math.Vector3, base, aux math.Transformation) *ObjectState {
	o := &ObjectState{ID: id, Prototype: proto, Brightness: 1}
	o.SetPose(position, base, aux)
	return o
}

// SetPose moves the object and re-derives its combined transformation.
func (o *ObjectState) SetPose(position math.Vector3, base, aux math.Transformation) {
	o.Position = position
	o.Base = base
	o.Aux = aux
	o.Transformation = math.Compose(base, aux)
}

// WorldPosition converts a point in object space to world space.
func (o *ObjectState) WorldPosition(local math.Vector3) math.Vector3 {
	return o.Position.Add(o.Transformation.Apply(local))
}

// FaceState references one face of a placed object.
type FaceState struct {
	Object *ObjectState
	Face   int
}

// Placed reports whether the face refers to an object with a prototype.
func (f FaceState) Placed() bool {
	return f.Object != nil && f.Object.Prototype != nil
}

// Material returns the material of the face.
func (f FaceState) Material() Material {
	mesh := &f.Object.Prototype.Mesh
	return mesh.Materials[mesh.Faces[f.Face].Material]
}

// Center returns the face's centroid in world space.
func (f FaceState) Center() math.Vector3 {
	mesh := &f.Object.Prototype.Mesh
	face := mesh.Faces[f.Face]
	var c math.Vector3
	for _, vi := range face.Vertices {
		c = c.Add(mesh.Vertices[vi].Position)
	}
	c = c.Scale(1 / float64(len(face.Vertices)))
	return f.Object.WorldPosition(c)
}
