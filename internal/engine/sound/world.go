package sound

import (
	"github.com/Faultbox/bve-viewer/pkg/math"
)

// WorldSound is a looping sound attached to a point in the world, optionally
// moving along a track.
type WorldSound struct {
	Buffer        Buffer
	Position      math.Vector3
	TrackPosition float64
	Radius        float64

	// Follower places the sound on a track. When nil the sound stays at
	// Position.
	Follower Follower

	// TrackFunction returns an offset from TrackPosition. VolumeFunction and
	// PitchFunction replace the current volume and pitch. Any may be nil.
	TrackFunction  Function
	VolumeFunction Function
	PitchFunction  Function

	host     Host
	source   Source
	pitch    float64
	volume   float64
	followed float64
	time     float64
}

// New returns a world sound playing buffer on host at unit pitch and volume.
func New(host Host, buffer Buffer) *WorldSound {
	return &WorldSound{
		Buffer: buffer,
		Radius: DefaultRadius,
		host:   host,
		pitch:  1,
		volume: 1,
	}
}

// Clone returns a new instance of w placed at position and trackPosition. The
// clone shares the buffer, follower and functions but not the playing source.
func (w *WorldSound) Clone(position math.Vector3, trackPosition float64) *WorldSound {
	c := New(w.host, w.Buffer)
	c.Position = position
	c.TrackPosition = trackPosition
	c.Radius = w.Radius
	c.Follower = w.Follower
	c.TrackFunction = w.TrackFunction
	c.VolumeFunction = w.VolumeFunction
	c.PitchFunction = w.PitchFunction
	c.followed = trackPosition
	return c
}

// Pitch returns the pitch computed by the last update.
func (w *WorldSound) Pitch() float64 { return w.pitch }

// Volume returns the volume computed by the last update.
func (w *WorldSound) Volume() float64 { return w.volume }

// FollowerPosition returns the track position of the follower.
func (w *WorldSound) FollowerPosition() float64 { return w.followed }

// PlaceOnTrack moves the sound to trackPosition. Track functions offset from
// this position.
func (w *WorldSound) PlaceOnTrack(trackPosition float64) {
	w.TrackPosition = trackPosition
	w.followed = trackPosition
}

// IsPlaying reports whether the sound has a source that is still playing.
func (w *WorldSound) IsPlaying() bool {
	return w.source != nil && w.source.IsPlaying()
}

// WorldPosition returns where the sound is heard from.
func (w *WorldSound) WorldPosition() math.Vector3 {
	if w.Follower == nil {
		return w.Position
	}
	return w.Follower.WorldPosition(w.followed).Add(w.Position)
}

// Update advances the sound by elapsed seconds. A sound that is not visible is
// stopped. A visible sound that is not playing is started again.
func (w *WorldSound) Update(elapsed float64, visible bool) {
	if !visible {
		if w.IsPlaying() {
			w.source.Stop()
		}
		return
	}
	if elapsed > MaxElapsed {
		return
	}
	w.time += elapsed

	if w.TrackFunction != nil {
		w.followed = w.TrackPosition + w.TrackFunction(w.state(elapsed))
	}
	if w.VolumeFunction != nil {
		w.volume = w.VolumeFunction(w.state(elapsed))
	}
	if w.PitchFunction != nil {
		w.pitch = w.PitchFunction(w.state(elapsed))
	}

	if w.source != nil {
		w.source.SetPitch(w.pitch)
		w.source.SetVolume(w.volume)
	}
	if !w.IsPlaying() && w.Buffer != nil && w.host != nil {
		w.source = w.host.Play(w.Buffer, w.pitch, w.volume, w.WorldPosition(), true)
	}
}

// Stop stops the source, if any.
func (w *WorldSound) Stop() {
	if w.IsPlaying() {
		w.source.Stop()
	}
	w.source = nil
}

// Visible reports whether camera is within the sound's radius.
func (w *WorldSound) Visible(camera math.Vector3) bool {
	d := w.WorldPosition().Sub(camera)
	return d.Dot(d) <= w.Radius*w.Radius
}

func (w *WorldSound) state(elapsed float64) State {
	return State{
		Position:      w.Position,
		TrackPosition: w.followed,
		Elapsed:       elapsed,
		Time:          w.time,
	}
}
