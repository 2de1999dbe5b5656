package sound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/bve-viewer/pkg/math"
)

type fakeBuffer struct{}

func (fakeBuffer) Duration() time.Duration { return time.Second }

type fakeSource struct {
	pitch, volume float64
	playing       bool
	stops         int
}

func (s *fakeSource) SetPitch(p float64)  { s.pitch = p }
func (s *fakeSource) SetVolume(v float64) { s.volume = v }
func (s *fakeSource) IsPlaying() bool     { return s.playing }

func (s *fakeSource) Stop() {
	s.playing = false
	s.stops++
}

type play struct {
	pitch, volume float64
	position      math.Vector3
	looped        bool
}

type fakeHost struct {
	plays   []play
	sources []*fakeSource
}

func (h *fakeHost) Play(b Buffer, pitch, volume float64, position math.Vector3, looped bool) Source {
	h.plays = append(h.plays, play{pitch, volume, position, looped})
	s := &fakeSource{pitch: pitch, volume: volume, playing: true}
	h.sources = append(h.sources, s)
	return s
}

func TestUpdateStartsLoopedSource(t *testing.T) {
	host := &fakeHost{}
	w := New(host, fakeBuffer{})
	w.Position = math.Vector3{X: 1, Y: 2, Z: 3}

	w.Update(0.01, true)
	require.Len(t, host.plays, 1)
	assert.Equal(t, play{1, 1, math.Vector3{X: 1, Y: 2, Z: 3}, true}, host.plays[0])
	assert.True(t, w.IsPlaying())

	// Still playing: no new source.
	w.Update(0.01, true)
	assert.Len(t, host.plays, 1)
}

func TestUpdateRestartsFinishedSource(t *testing.T) {
	host := &fakeHost{}
	w := New(host, fakeBuffer{})
	w.Update(0.01, true)
	host.sources[0].playing = false

	w.Update(0.01, true)
	assert.Len(t, host.plays, 2)
}

func TestUpdateSkipsLongFrames(t *testing.T) {
	host := &fakeHost{}
	w := New(host, fakeBuffer{})
	calls := 0
	w.VolumeFunction = func(State) float64 {
		calls++
		return 0.5
	}

	w.Update(MaxElapsed+0.001, true)
	assert.Empty(t, host.plays)
	assert.Zero(t, calls)

	w.Update(MaxElapsed, true)
	assert.Len(t, host.plays, 1)
	assert.Equal(t, 1, calls)
}

func TestUpdatePushesFunctionsToSource(t *testing.T) {
	host := &fakeHost{}
	w := New(host, fakeBuffer{})
	w.Update(0.01, true)

	w.VolumeFunction = func(s State) float64 { return 0.25 }
	w.PitchFunction = func(s State) float64 { return 1 + s.Elapsed }
	w.Update(0.02, true)

	src := host.sources[0]
	assert.InDelta(t, 0.25, src.volume, 1e-12)
	assert.InDelta(t, 1.02, src.pitch, 1e-12)
	assert.InDelta(t, 0.25, w.Volume(), 1e-12)
	assert.InDelta(t, 1.02, w.Pitch(), 1e-12)
}

func TestUpdateStopsWhenNotVisible(t *testing.T) {
	host := &fakeHost{}
	w := New(host, fakeBuffer{})
	w.Update(0.01, true)

	w.Update(0.01, false)
	assert.Equal(t, 1, host.sources[0].stops)
	assert.False(t, w.IsPlaying())

	// Long frames still stop an invisible sound; a stopped one is not stopped twice.
	w.Update(1, false)
	assert.Equal(t, 1, host.sources[0].stops)
}

func TestTrackFunctionMovesAlongFollower(t *testing.T) {
	host := &fakeHost{}
	w := New(host, fakeBuffer{})
	w.Follower = LinearTrack{Origin: math.Vector3{X: 10}, Direction: math.Vector3{Z: 2}}
	w.Position = math.Vector3{Y: 1}
	w.TrackPosition = 100
	w.TrackFunction = func(s State) float64 { return 5 }

	w.Update(0.01, true)
	assert.InDelta(t, 105, w.FollowerPosition(), 1e-12)
	assert.Equal(t, math.Vector3{X: 10, Y: 1, Z: 105}, w.WorldPosition())
	assert.Equal(t, math.Vector3{X: 10, Y: 1, Z: 105}, host.plays[0].position)
}

func TestClone(t *testing.T) {
	host := &fakeHost{}
	proto := New(host, fakeBuffer{})
	proto.Radius = 40
	proto.Follower = LinearTrack{Direction: math.Forward}
	proto.PitchFunction = func(State) float64 { return 2 }
	proto.Update(0.01, true)

	c := proto.Clone(math.Vector3{X: 3}, 50)
	assert.Equal(t, proto.Buffer, c.Buffer)
	assert.Equal(t, 40.0, c.Radius)
	assert.InDelta(t, 50, c.FollowerPosition(), 1e-12)
	assert.Equal(t, math.Vector3{X: 3, Z: 50}, c.WorldPosition())
	assert.False(t, c.IsPlaying(), "clone does not share the source")
	assert.Equal(t, 1.0, c.Pitch())

	c.Update(0.01, true)
	assert.Len(t, host.plays, 2)
	assert.Equal(t, 2.0, host.plays[1].pitch)
}

func TestVisible(t *testing.T) {
	w := New(nil, fakeBuffer{})
	w.Position = math.Vector3{X: 100}
	assert.True(t, w.Visible(math.Vector3{X: 80}))
	assert.True(t, w.Visible(math.Vector3{X: 75}))
	assert.False(t, w.Visible(math.Vector3{X: 74}))
}

func TestUpdateWithoutHost(t *testing.T) {
	w := New(nil, fakeBuffer{})
	assert.NotPanics(t, func() { w.Update(0.01, true) })
	assert.False(t, w.IsPlaying())
}

func TestStateTimeAccumulates(t *testing.T) {
	w := New(&fakeHost{}, fakeBuffer{})
	var seen []float64
	w.VolumeFunction = func(s State) float64 {
		seen = append(seen, s.Time)
		return 1
	}
	w.Update(0.02, true)
	w.Update(0.5, true) // skipped
	w.Update(0.03, true)
	w.Update(0.01, false)
	w.Update(0.01, true)

	require.Len(t, seen, 3)
	assert.InDelta(t, 0.02, seen[0], 1e-12)
	assert.InDelta(t, 0.05, seen[1], 1e-12)
	assert.InDelta(t, 0.06, seen[2], 1e-12)
}
