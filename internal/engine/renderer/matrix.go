package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/bve-viewer/pkg/math"
)

// MatrixMode selects one of the renderer's matrix stacks.
type MatrixMode int

const (
	MatrixProjection MatrixMode = iota
	MatrixModelview
)

// MatrixStack is a current matrix plus the matrices saved beneath it.
type MatrixStack struct {
	current mgl64.Mat4
	saved   []mgl64.Mat4
}

// NewMatrixStack returns a stack holding the identity.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{current: mgl64.Ident4()}
}

// Current returns the top matrix.
func (s *MatrixStack) Current() mgl64.Mat4 {
	return s.current
}

// Set replaces the top matrix.
func (s *MatrixStack) Set(m mgl64.Mat4) {
	s.current = m
}

// Push saves the current matrix. The current matrix is left unchanged.
func (s *MatrixStack) Push() {
	s.saved = append(s.saved, s.current)
}

// Pop restores the last saved matrix. It reports false if nothing was saved.
func (s *MatrixStack) Pop() bool {
	n := len(s.saved)
	if n == 0 {
		return false
	}
	s.current = s.saved[n-1]
	s.saved = s.saved[:n-1]
	return true
}

// Depth returns the number of saved matrices.
func (s *MatrixStack) Depth() int {
	return len(s.saved)
}

// flipZ converts the viewer's left-handed world (Z forward) into GL's
// right-handed eye conventions.
var flipZ = mgl64.Scale3D(1, 1, -1)

// lookAt builds the view matrix for a camera at the origin. Camera position is
// handled per object so large world coordinates never reach float32.
func lookAt(direction, up math.Vector3) mgl64.Mat4 {
	return mgl64.LookAtV(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{direction.X, direction.Y, -direction.Z},
		mgl64.Vec3{up.X, up.Y, -up.Z},
	)
}

// modelMatrix places an object relative to the camera in GL space.
func modelMatrix(t math.Transformation, position, camera math.Vector3) mgl64.Mat4 {
	return flipZ.Mul4(t.Mat4(position.Sub(camera)))
}

func toMat32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}
