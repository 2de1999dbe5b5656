// Package camera provides the free-flying viewer camera.
package camera

import (
	"github.com/Faultbox/bve-viewer/pkg/math"
)

// Axis is one degree of freedom the camera can be driven along.
type Axis int

const (
	AxisForward Axis = iota
	AxisRight
	AxisUp
	AxisYaw
	AxisPitch
	AxisRoll
	axisCount
)

func (a Axis) String() string {
	switch a {
	case AxisForward:
		return "forward"
	case AxisRight:
		return "right"
	case AxisUp:
		return "up"
	case AxisYaw:
		return "yaw"
	case AxisPitch:
		return "pitch"
	case AxisRoll:
		return "roll"
	default:
		return "unknown"
	}
}

// Camera flies freely through the scene. Movement is relative to its own
// orientation.
type Camera struct {
	Position    math.Vector3
	Orientation math.Transformation

	// Speed in metres per second and TurnRate in radians per second at full
	// input.
	Speed    float64
	TurnRate float64

	homePosition    math.Vector3
	homeOrientation math.Transformation
	input           [axisCount]float64
}

// New creates a camera that returns to position and orientation on Reset.
func New(position math.Vector3, orientation math.Transformation) *Camera {
	return &Camera{
		Position:        position,
		Orientation:     orientation,
		Speed:           10,
		TurnRate:        1,
		homePosition:    position,
		homeOrientation: orientation,
	}
}

// NewDefault creates a camera a few metres behind the origin looking along +Z.
func NewDefault() *Camera {
	return New(math.Vector3{Y: 1, Z: -10}, math.Identity())
}

// AbsolutePosition returns the world position.
func (c *Camera) AbsolutePosition() math.Vector3 { return c.Position }

// AbsoluteDirection returns the viewing direction.
func (c *Camera) AbsoluteDirection() math.Vector3 { return c.Orientation.Z }

// AbsoluteUp returns the up vector.
func (c *Camera) AbsoluteUp() math.Vector3 { return c.Orientation.Y }

// AbsoluteSide returns the right-hand vector.
func (c *Camera) AbsoluteSide() math.Vector3 { return c.Orientation.X }

// Move translates the camera along its own axes.
func (c *Camera) Move(forward, right, up float64) {
	c.Position = c.Position.
		Add(c.Orientation.Z.Scale(forward)).
		Add(c.Orientation.X.Scale(right)).
		Add(c.Orientation.Y.Scale(up))
}

// Turn rotates the camera about its own axes. The result is
// re-orthonormalized since turns accumulate over many frames.
func (c *Camera) Turn(yaw, pitch, roll float64) {
	c.Orientation = c.Orientation.Rotate(yaw, pitch, roll).Orthonormalize()
}

// Reset returns the camera to where it was created and clears any input.
func (c *Camera) Reset() {
	c.Position = c.homePosition
	c.Orientation = c.homeOrientation
	c.input = [axisCount]float64{}
}

// SetHome changes the pose restored by Reset.
func (c *Camera) SetHome(position math.Vector3, orientation math.Transformation) {
	c.homePosition = position
	c.homeOrientation = orientation
}

// SetInput sets the input on axis, clamped to [-1, 1].
func (c *Camera) SetInput(axis Axis, value float64) {
	if axis < 0 || axis >= axisCount {
		return
	}
	switch {
	case value > 1:
		value = 1
	case value < -1:
		value = -1
	}
	c.input[axis] = value
}

// AddInput adds delta to the input on axis.
func (c *Camera) AddInput(axis Axis, delta float64) {
	if axis < 0 || axis >= axisCount {
		return
	}
	c.SetInput(axis, c.input[axis]+delta)
}

// Input returns the current input on axis.
func (c *Camera) Input(axis Axis) float64 {
	if axis < 0 || axis >= axisCount {
		return 0
	}
	return c.input[axis]
}

// Moving reports whether any input is held.
func (c *Camera) Moving() bool {
	for _, v := range c.input {
		if v != 0 {
			return true
		}
	}
	return false
}

// Update applies the held input over elapsed seconds.
func (c *Camera) Update(elapsed float64) {
	if !c.Moving() {
		return
	}
	step := c.Speed * elapsed
	c.Move(c.input[AxisForward]*step, c.input[AxisRight]*step, c.input[AxisUp]*step)

	turn := c.TurnRate * elapsed
	yaw, pitch, roll := c.input[AxisYaw]*turn, c.input[AxisPitch]*turn, c.input[AxisRoll]*turn
	if yaw != 0 || pitch != 0 || roll != 0 {
		c.Turn(yaw, pitch, roll)
	}
}
