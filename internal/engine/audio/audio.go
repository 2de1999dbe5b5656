// Package audio plays world sounds through the system speaker.
package audio

import (
	"fmt"
	"io"
	stdmath "math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/bve-viewer/internal/engine/sound"
	"github.com/Faultbox/bve-viewer/pkg/math"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// resampleQuality is passed to beep's resampler. 4 is beep's recommended
// trade-off for real time playback.
const resampleQuality = 4

// Manager mixes every playing source into the speaker. It implements
// sound.Host.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	log         *zap.Logger

	// Volume settings (0.0 to 1.0)
	masterVolume float64

	mixer   *beep.Mixer
	sources map[*source]struct{}
}

// New creates a new audio manager.
func New(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		sampleRate:   DefaultSampleRate,
		log:          log,
		masterVolume: 1.0,
		mixer:        &beep.Mixer{},
		sources:      make(map[*source]struct{}),
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close stops every source and shuts the speaker down.
func (m *Manager) Close() {
	m.mu.Lock()
	sources := make([]*source, 0, len(m.sources))
	for s := range m.sources {
		sources = append(sources, s)
	}
	m.mu.Unlock()

	for _, s := range sources {
		s.Stop()
	}

	// Finishing sources take m.mu from the speaker goroutine, so the speaker
	// is closed without holding it.
	m.mu.Lock()
	initialized := m.initialized
	m.initialized = false
	m.mu.Unlock()

	if initialized {
		speaker.Clear()
		speaker.Close()
	}
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0). Playing sources pick it
// up on their next volume change.
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// Playing returns the number of sources that have not finished.
func (m *Manager) Playing() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sources)
}

// lock guards streamer parameters against the speaker goroutine.
func (m *Manager) lock() {
	if m.IsInitialized() {
		speaker.Lock()
	}
}

func (m *Manager) unlock() {
	if m.IsInitialized() {
		speaker.Unlock()
	}
}

// Play starts buffer at the given pitch and volume. Buffers that were not
// loaded by this package are rejected with a nil source.
func (m *Manager) Play(buffer sound.Buffer, pitch, volume float64, position math.Vector3, looped bool) sound.Source {
	b, ok := buffer.(*Buffer)
	if !ok || b == nil || b.data.Len() == 0 {
		m.log.Warn("cannot play buffer", zap.String("type", fmt.Sprintf("%T", buffer)))
		return nil
	}

	s := newSource(m, b, pitch, volume, position, looped)

	m.mu.Lock()
	m.sources[s] = struct{}{}
	initialized := m.initialized
	m.mu.Unlock()

	if initialized {
		speaker.Lock()
		m.mixer.Add(s.output)
		speaker.Unlock()
	}
	m.log.Debug("sound started",
		zap.String("buffer", b.name),
		zap.Float64("pitch", pitch),
		zap.Float64("volume", volume),
		zap.Bool("looped", looped),
	)
	return s
}

func (m *Manager) finished(s *source) {
	m.mu.Lock()
	delete(m.sources, s)
	m.mu.Unlock()
}

// Buffer is a decoded sound held in memory.
type Buffer struct {
	name string
	data *beep.Buffer
}

// LoadBuffer decodes WAV data from r.
func LoadBuffer(name string, r io.Reader) (*Buffer, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode wav %s: %w", name, err)
	}
	defer streamer.Close()

	data := beep.NewBuffer(format)
	data.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read wav %s: %w", name, err)
	}
	return &Buffer{name: name, data: data}, nil
}

// LoadFile decodes the WAV file at path. The buffer is named after the file.
func LoadFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadBuffer(filepath.Base(path), f)
}

// Name returns the name the buffer was loaded under.
func (b *Buffer) Name() string { return b.name }

// Duration returns the playing time at unit pitch.
func (b *Buffer) Duration() time.Duration {
	return b.data.Format().SampleRate.D(b.data.Len())
}

// volumeToDb converts a 0-1 volume to decibel scale.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB
	return 20 * stdmath.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
