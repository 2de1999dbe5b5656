package camera

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/bve-viewer/pkg/math"
)

func assertVec(t *testing.T, want, got math.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "X")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "Y")
	assert.InDelta(t, want.Z, got.Z, 1e-9, "Z")
}

func TestMoveAlongOwnAxes(t *testing.T) {
	c := New(math.Zero, math.Identity())
	c.Move(2, 3, 4)
	assertVec(t, math.Vector3{X: 3, Y: 4, Z: 2}, c.AbsolutePosition())

	c = New(math.Zero, math.NewTransformation(gomath.Pi/2, 0, 0))
	c.Move(1, 0, 0)
	assertVec(t, math.Vector3{X: 1}, c.Position)
}

func TestTurn(t *testing.T) {
	c := New(math.Zero, math.Identity())
	c.Turn(gomath.Pi/2, 0, 0)
	assertVec(t, math.Right, c.AbsoluteDirection())
	assertVec(t, math.Up, c.AbsoluteUp())
	assertVec(t, math.Vector3{Z: -1}, c.AbsoluteSide())

	c.Reset()
	c.Turn(0, gomath.Pi/2, 0)
	assertVec(t, math.Up, c.AbsoluteDirection())
}

func TestTurnStaysOrthonormal(t *testing.T) {
	c := NewDefault()
	for i := 0; i < 10000; i++ {
		c.Turn(0.013, 0.007, 0.011)
	}
	assert.True(t, c.Orientation.IsOrthonormal(1e-12))
}

func TestReset(t *testing.T) {
	c := NewDefault()
	c.SetInput(AxisForward, 1)
	c.Move(5, 5, 5)
	c.Turn(1, 0.5, 0.2)

	c.Reset()
	assert.Equal(t, math.Vector3{Y: 1, Z: -10}, c.Position)
	assert.Equal(t, math.Identity(), c.Orientation)
	assert.False(t, c.Moving())

	c.SetHome(math.Vector3{X: 7}, math.NewTransformation(1, 0, 0))
	c.Reset()
	assert.Equal(t, math.Vector3{X: 7}, c.Position)
}

func TestInputClamped(t *testing.T) {
	c := NewDefault()
	c.SetInput(AxisYaw, 3)
	assert.Equal(t, 1.0, c.Input(AxisYaw))
	c.AddInput(AxisYaw, -5)
	assert.Equal(t, -1.0, c.Input(AxisYaw))
	c.AddInput(AxisYaw, 1)
	assert.Equal(t, 0.0, c.Input(AxisYaw))

	c.SetInput(Axis(42), 1)
	assert.Equal(t, 0.0, c.Input(Axis(42)))
	assert.False(t, c.Moving())
}

func TestUpdate(t *testing.T) {
	c := New(math.Zero, math.Identity())
	c.Speed = 4

	c.Update(1)
	assert.Equal(t, math.Zero, c.Position, "no input, no motion")

	c.SetInput(AxisForward, 1)
	c.SetInput(AxisUp, -0.5)
	c.Update(0.5)
	assertVec(t, math.Vector3{Y: -1, Z: 2}, c.Position)

	c.SetInput(AxisForward, 0)
	c.SetInput(AxisUp, 0)
	c.SetInput(AxisYaw, 1)
	c.TurnRate = gomath.Pi
	c.Update(0.5)
	assertVec(t, math.Right, c.AbsoluteDirection())
	assertVec(t, math.Vector3{Y: -1, Z: 2}, c.Position)
}

func TestAxisString(t *testing.T) {
	assert.Equal(t, "forward", AxisForward.String())
	assert.Equal(t, "roll", AxisRoll.String())
	assert.Equal(t, "unknown", Axis(99).String())
}
