package audio

import (
	"sync/atomic"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"

	"github.com/Faultbox/bve-viewer/pkg/math"
)

// source is one playing buffer. The chain is
// buffer -> loop -> resampler (pitch) -> ctrl (stop) -> volume.
type source struct {
	m         *Manager
	buffer    *Buffer
	resampler *beep.Resampler
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	output    beep.Streamer
	position  math.Vector3

	// rateRatio converts the buffer's sample rate to the speaker's.
	rateRatio float64
	done      atomic.Bool
}

func newSource(m *Manager, b *Buffer, pitch, volume float64, position math.Vector3, looped bool) *source {
	s := &source{
		m:         m,
		buffer:    b,
		position:  position,
		rateRatio: float64(b.data.Format().SampleRate) / float64(m.sampleRate),
	}

	var in beep.Streamer = b.data.Streamer(0, b.data.Len())
	if looped {
		in = &loopStreamer{buffer: b.data, streamer: b.data.Streamer(0, b.data.Len())}
	}
	s.resampler = beep.ResampleRatio(resampleQuality, s.ratio(pitch), in)
	s.ctrl = &beep.Ctrl{Streamer: s.resampler}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 10}
	s.applyVolume(volume)
	s.output = beep.Seq(s.volume, beep.Callback(s.finish))
	return s
}

// ratio converts a pitch into a resampling ratio. Pitch is clamped to a small
// positive value as the resampler cannot run backwards.
func (s *source) ratio(pitch float64) float64 {
	if pitch < 0.01 {
		pitch = 0.01
	}
	return pitch * s.rateRatio
}

func (s *source) applyVolume(volume float64) {
	vol := clamp(volume, 0, 1) * s.m.MasterVolume()
	s.volume.Silent = vol <= 0
	s.volume.Volume = volumeToDb(vol) / 20
}

func (s *source) SetPitch(pitch float64) {
	s.m.lock()
	s.resampler.SetRatio(s.ratio(pitch))
	s.m.unlock()
}

func (s *source) SetVolume(volume float64) {
	s.m.lock()
	s.applyVolume(volume)
	s.m.unlock()
}

func (s *source) IsPlaying() bool {
	return !s.done.Load()
}

// Stop ends the stream. The mixer drops it on its next read.
func (s *source) Stop() {
	s.m.lock()
	s.ctrl.Streamer = nil
	s.m.unlock()
	s.finish()
}

func (s *source) finish() {
	if s.done.CompareAndSwap(false, true) {
		s.m.finished(s)
	}
}

// loopStreamer restarts a buffer streamer when it runs out.
type loopStreamer struct {
	buffer   *beep.Buffer
	streamer beep.StreamSeeker
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.streamer.Stream(samples[filled:])
		filled += n
		if !ok {
			if err := l.streamer.Seek(0); err != nil {
				return filled, filled > 0
			}
			if n == 0 && l.buffer.Len() == 0 {
				return filled, filled > 0
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
