package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/bve-viewer/internal/engine/camera"
)

// Command is a viewer action bound to a single key press.
type Command int

const (
	CommandNone Command = iota
	CommandReload
	CommandClear
	CommandTransparency
	CommandWireFrame
	CommandLighting
	CommandGrid
	CommandBackground
	CommandInterface
	CommandSwitchRenderer
	CommandMessages
	CommandResetCamera
	CommandScreenshot
	CommandQuit
)

// Commands maps keys to viewer commands.
var Commands = map[sdl.Scancode]Command{
	sdl.SCANCODE_F5:     CommandReload,
	sdl.SCANCODE_DELETE: CommandClear,
	sdl.SCANCODE_T:      CommandTransparency,
	sdl.SCANCODE_F:      CommandWireFrame,
	sdl.SCANCODE_L:      CommandLighting,
	sdl.SCANCODE_G:      CommandGrid,
	sdl.SCANCODE_B:      CommandBackground,
	sdl.SCANCODE_I:      CommandInterface,
	sdl.SCANCODE_R:      CommandSwitchRenderer,
	sdl.SCANCODE_F9:     CommandMessages,
	sdl.SCANCODE_KP_5:   CommandResetCamera,
	sdl.SCANCODE_F12:    CommandScreenshot,
	sdl.SCANCODE_ESCAPE: CommandQuit,
}

// Binding drives a camera axis while its key is held.
type Binding struct {
	Axis camera.Axis
	Sign float64
}

// CameraBindings maps keys to camera axes: WASD moves sideways and vertically,
// the arrows move forward and turn, the numpad turns.
var CameraBindings = map[sdl.Scancode]Binding{
	sdl.SCANCODE_W:     {camera.AxisUp, 1},
	sdl.SCANCODE_S:     {camera.AxisUp, -1},
	sdl.SCANCODE_A:     {camera.AxisRight, -1},
	sdl.SCANCODE_D:     {camera.AxisRight, 1},
	sdl.SCANCODE_UP:    {camera.AxisForward, 1},
	sdl.SCANCODE_DOWN:  {camera.AxisForward, -1},
	sdl.SCANCODE_LEFT:  {camera.AxisYaw, -1},
	sdl.SCANCODE_RIGHT: {camera.AxisYaw, 1},
	sdl.SCANCODE_KP_4:  {camera.AxisYaw, -1},
	sdl.SCANCODE_KP_6:  {camera.AxisYaw, 1},
	sdl.SCANCODE_KP_8:  {camera.AxisPitch, 1},
	sdl.SCANCODE_KP_2:  {camera.AxisPitch, -1},
	sdl.SCANCODE_KP_9:  {camera.AxisRoll, 1},
	sdl.SCANCODE_KP_3:  {camera.AxisRoll, -1},
}

// CommandFor returns the command bound to key, if any.
func CommandFor(key sdl.Scancode) Command {
	return Commands[key]
}

var cameraAxes = []camera.Axis{
	camera.AxisForward, camera.AxisRight, camera.AxisUp,
	camera.AxisYaw, camera.AxisPitch, camera.AxisRoll,
}

// ApplyCamera sets every camera axis from the keys currently held. Opposite
// keys cancel out.
func (i *Input) ApplyCamera(c *camera.Camera) {
	sum := make(map[camera.Axis]float64, len(cameraAxes))
	for key, b := range CameraBindings {
		if i.held[key] {
			sum[b.Axis] += b.Sign
		}
	}
	for _, a := range cameraAxes {
		c.SetInput(a, sum[a])
	}
}
