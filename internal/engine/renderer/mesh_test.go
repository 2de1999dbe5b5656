package renderer

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/bve-viewer/internal/engine/scene"
	"github.com/Faultbox/bve-viewer/pkg/math"
)

func TestAppendFanIndices(t *testing.T) {
	tests := []struct {
		name string
		face []int
		want []uint32
	}{
		{"triangle", []int{4, 5, 6}, []uint32{4, 5, 6}},
		{"quad", []int{0, 1, 2, 3}, []uint32{0, 1, 2, 0, 2, 3}},
		{"pentagon", []int{9, 8, 7, 6, 5}, []uint32{9, 8, 7, 9, 7, 6, 9, 6, 5}},
		{"degenerate", []int{0, 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := appendFanIndices(nil, scene.Face{Vertices: tt.face})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildIndices(t *testing.T) {
	box := scene.NewBox("box", math.Vector3{X: 1, Y: 1, Z: 1}, matOpaque)
	box.Mesh.Faces = append(box.Mesh.Faces, scene.Face{Vertices: []int{0}})

	indices, ranges := buildIndices(&box.Mesh)
	require.Len(t, ranges, 7)
	assert.Len(t, indices, 6*6)
	for i := 0; i < 6; i++ {
		assert.Equal(t, indexRange{offset: int32(i * 6), count: 6}, ranges[i])
	}
	assert.Equal(t, int32(0), ranges[6].count)
}

func TestAppendFaceVertices(t *testing.T) {
	quad := scene.NewQuad("q", 2, 2, matGlass)
	got := appendFaceVertices(nil, &quad.Mesh, quad.Mesh.Faces[0])
	require.Len(t, got, 6*floatsPerVertex)

	// The first vertex of each fan triangle is the face's first vertex.
	first := quad.Mesh.Vertices[0]
	for tri := 0; tri < 2; tri++ {
		off := tri * 3 * floatsPerVertex
		assert.Equal(t, float32(first.Position.X), got[off])
		assert.Equal(t, float32(first.Position.Y), got[off+1])
		assert.Equal(t, first.U, got[off+6])
		assert.Equal(t, first.V, got[off+7])
	}
}

func TestMatrixStack(t *testing.T) {
	s := NewMatrixStack()
	assert.Equal(t, mgl64.Ident4(), s.Current())
	assert.Equal(t, 0, s.Depth())
	assert.False(t, s.Pop())

	s.Push()
	s.Set(mgl64.Translate3D(1, 2, 3))
	s.Push()
	s.Set(mgl64.Scale3D(2, 2, 2))
	assert.Equal(t, 2, s.Depth())

	require.True(t, s.Pop())
	assert.Equal(t, mgl64.Translate3D(1, 2, 3), s.Current())
	require.True(t, s.Pop())
	assert.Equal(t, mgl64.Ident4(), s.Current())
	assert.Equal(t, 0, s.Depth())
}

func TestViewPutsCameraDirectionInFront(t *testing.T) {
	directions := []math.Vector3{
		math.Forward,
		math.Right,
		math.Backward,
		math.NewTransformation(0.7, 0.3, 0).Z,
	}
	camera := math.Vector3{X: 1000, Y: 5, Z: -20000}
	for _, d := range directions {
		frame := orientationLookingAlong(d)
		view := lookAt(frame.Z, frame.Y)
		target := camera.Add(d.Scale(5))
		model := modelMatrix(math.Identity(), target, camera)
		eye := view.Mul4(model).Mul4x1(mgl64.Vec4{0, 0, 0, 1})

		assert.InDelta(t, 0, eye.X(), 1e-9, "direction %v", d)
		assert.InDelta(t, 0, eye.Y(), 1e-9, "direction %v", d)
		assert.InDelta(t, -5, eye.Z(), 1e-9, "direction %v", d)
	}
}

// orientationLookingAlong returns a frame whose Z axis is d, for d with a
// non-vertical direction.
func orientationLookingAlong(d math.Vector3) math.Transformation {
	x := math.Up.Cross(d).Normalize()
	return math.Transformation{X: x, Y: d.Cross(x), Z: d}
}

func TestGlyphAtlas(t *testing.T) {
	a := newGlyphAtlas()
	w, h := a.GlyphSize()
	require.Equal(t, 7, w)
	require.Equal(t, 13, h)

	coverage := func(ch rune) int {
		col, row := a.cell(ch)
		n := 0
		for y := row * h; y < (row+1)*h; y++ {
			for x := col * w; x < (col+1)*w; x++ {
				if a.img.At(x, y).(color.RGBA).A > 0 {
					n++
				}
			}
		}
		return n
	}
	assert.Zero(t, coverage(' '))
	assert.NotZero(t, coverage('A'))
	assert.NotZero(t, coverage('~'))

	u0, v0, u1, v1 := a.GlyphUV('A')
	assert.Less(t, u0, u1)
	assert.Less(t, v0, v1)

	// Characters outside the atlas fall back to '?'.
	qu0, qv0, _, _ := a.GlyphUV('?')
	fu0, fv0, _, _ := a.GlyphUV('é')
	assert.Equal(t, qu0, fu0)
	assert.Equal(t, qv0, fv0)
}

func TestMeasureText(t *testing.T) {
	a := newGlyphAtlas()
	tests := []struct {
		text string
		w, h float32
	}{
		{"", 0, 13},
		{"F5", 14, 13},
		{"Grid: on", 56, 13},
		{"ab\nabcd", 28, 26},
	}
	for _, tt := range tests {
		w, h := a.MeasureText(tt.text)
		assert.Equal(t, tt.w, w, tt.text)
		assert.Equal(t, tt.h, h, tt.text)
	}
}
