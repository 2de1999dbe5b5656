// Package sound drives looping sounds placed in the world, such as the hum of
// a transformer or a level crossing bell. Playback itself is delegated to a
// Host.
package sound

import (
	"time"

	"github.com/Faultbox/bve-viewer/pkg/math"
)

// MaxElapsed is the longest frame time, in seconds, for which a world sound is
// updated. Longer frames are skipped so function scripts never see a jump.
const MaxElapsed = 0.05

// DefaultRadius is the distance from the camera within which a world sound is
// considered visible.
const DefaultRadius = 25.0

// Buffer is decoded sample data owned by a Host.
type Buffer interface {
	Duration() time.Duration
}

// Source is a sound that is currently playing on a Host.
type Source interface {
	SetPitch(pitch float64)
	SetVolume(volume float64)
	IsPlaying() bool
	Stop()
}

// Host plays buffers. Play may return nil if the buffer cannot be played, in
// which case the caller retries on its next update.
type Host interface {
	Play(buffer Buffer, pitch, volume float64, position math.Vector3, looped bool) Source
}

// Follower maps a track position to a point in the world.
type Follower interface {
	WorldPosition(trackPosition float64) math.Vector3
}

// LinearTrack is a straight track starting at Origin.
type LinearTrack struct {
	Origin    math.Vector3
	Direction math.Vector3
}

// WorldPosition returns the point trackPosition metres along the track.
func (l LinearTrack) WorldPosition(trackPosition float64) math.Vector3 {
	return l.Origin.Add(l.Direction.Normalize().Scale(trackPosition))
}

// State is the input to a Function.
type State struct {
	Position      math.Vector3
	TrackPosition float64
	Elapsed       float64
	// Time is the total of every elapsed time the sound was updated with.
	Time float64
}

// Function computes a value from the sound's current state. Functions must be
// free of side effects so they can be shared between clones.
type Function func(s State) float64
