package scene

import (
	"sort"

	"github.com/Faultbox/bve-viewer/pkg/math"
)

// VisibleObjects holds the objects drawn this frame and their classified faces.
// Every drawable face is in exactly one of OpaqueFaces and AlphaFaces.
type VisibleObjects struct {
	Objects     []*ObjectState
	OpaqueFaces []FaceState
	AlphaFaces  []FaceState
}

// Add registers o and classifies its faces. Faces that cannot be drawn (too few
// vertices, bad indices) are left out; their number is returned.
func (v *VisibleObjects) Add(o *ObjectState) (skipped int) {
	v.Objects = append(v.Objects, o)
	if o.Prototype == nil {
		return 0
	}
	mesh := &o.Prototype.Mesh
	for i := range mesh.Faces {
		if !mesh.validFace(i) {
			skipped++
			continue
		}
		fs := FaceState{Object: o, Face: i}
		if fs.Material().IsOpaque() {
			v.OpaqueFaces = append(v.OpaqueFaces, fs)
		} else {
			v.AlphaFaces = append(v.AlphaFaces, fs)
		}
	}
	return skipped
}

// Remove drops the object with the given ID and its faces.
func (v *VisibleObjects) Remove(id int) bool {
	idx := -1
	for i, o := range v.Objects {
		if o.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	v.Objects = append(v.Objects[:idx], v.Objects[idx+1:]...)
	v.OpaqueFaces = removeFaces(v.OpaqueFaces, id)
	v.AlphaFaces = removeFaces(v.AlphaFaces, id)
	return true
}

func removeFaces(faces []FaceState, id int) []FaceState {
	out := faces[:0]
	for _, f := range faces {
		if f.Object == nil || f.Object.ID != id {
			out = append(out, f)
		}
	}
	return out
}

// Clear removes everything.
func (v *VisibleObjects) Clear() {
	v.Objects = nil
	v.OpaqueFaces = nil
	v.AlphaFaces = nil
}

// FaceCount returns the number of classified faces.
func (v *VisibleObjects) FaceCount() int {
	return len(v.OpaqueFaces) + len(v.AlphaFaces)
}

// SortAlphaFaces orders the alpha faces back to front as seen from camera.
// Faces at equal distance keep their relative order. Faces without a placed
// object go last.
func (v *VisibleObjects) SortAlphaFaces(camera math.Vector3) {
	dist := make([]float64, len(v.AlphaFaces))
	for i, f := range v.AlphaFaces {
		if !f.Placed() {
			dist[i] = -1
			continue
		}
		dist[i] = f.Center().Sub(camera).Norm()
	}
	sort.Stable(byDistance{faces: v.AlphaFaces, dist: dist})
}

type byDistance struct {
	faces []FaceState
	dist  []float64
}

func (b byDistance) Len() int           { return len(b.faces) }
func (b byDistance) Less(i, j int) bool { return b.dist[i] > b.dist[j] }
func (b byDistance) Swap(i, j int) {
	b.faces[i], b.faces[j] = b.faces[j], b.faces[i]
	b.dist[i], b.dist[j] = b.dist[j], b.dist[i]
}
