// Package sound plays buzzer-style tones for game events.
package sound

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/oled-pong/internal/pong"
)

// Note is one tone in a cue. A zero Freq is a rest.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Cue is a short sequence of notes.
type Cue []Note

// Duration returns the total length of the cue.
func (c Cue) Duration() time.Duration {
	var d time.Duration
	for _, n := range c {
		d += n.Duration
	}
	return d
}

var (
	cueWall      = Cue{{Freq: 440, Duration: 20 * time.Millisecond}}
	cuePlayerHit = Cue{{Freq: 880, Duration: 30 * time.Millisecond}}
	cueCPUHit    = Cue{{Freq: 660, Duration: 30 * time.Millisecond}}
	cuePoint     = Cue{{Freq: 220, Duration: 150 * time.Millisecond}}
	cueWin       = Cue{
		{Freq: 523, Duration: 120 * time.Millisecond},
		{Freq: 659, Duration: 120 * time.Millisecond},
		{Freq: 784, Duration: 240 * time.Millisecond},
	}
	cueLose = Cue{
		{Freq: 392, Duration: 120 * time.Millisecond},
		{Freq: 330, Duration: 120 * time.Millisecond},
		{Freq: 262, Duration: 240 * time.Millisecond},
	}
)

// CueFor picks the cue for a game event. Skipped serves are silent.
func CueFor(e pong.Event) (Cue, bool) {
	switch e.Kind {
	case pong.EventWallBounce:
		return cueWall, true
	case pong.EventPaddleBounce:
		if e.Side == pong.SidePlayer {
			return cuePlayerHit, true
		}
		return cueCPUHit, true
	case pong.EventPoint:
		return cuePoint, true
	case pong.EventGameOver:
		if e.Side == pong.SidePlayer {
			return cueWin, true
		}
		return cueLose, true
	default:
		return nil, false
	}
}

// Streamer renders c at the given rate and volume (0..1).
func (c Cue) Streamer(rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(c))
	for _, n := range c {
		samples := rate.N(n.Duration)
		if n.Freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(rate, n.Freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", n.Freq, err)
		}
		parts = append(parts, beep.Take(samples, tone))
	}
	return withVolume(beep.Seq(parts...), volume), nil
}

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Manager owns the speaker and mixes cues into it. Its methods may be called
// from any goroutine.
type Manager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
}

// NewManager creates a manager; call Initialize before playing.
func NewManager(sampleRate int, volume float64) *Manager {
	return &Manager{
		rate:   beep.SampleRate(sampleRate),
		volume: volume,
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the audio device.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops everything that is playing.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// Play mixes c in. It is a no-op before Initialize.
func (m *Manager) Play(c Cue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}
	s, err := c.Streamer(m.rate, m.volume)
	if err != nil {
		return err
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// OnEvent plays the cue for e. It has the pong listener signature.
func (m *Manager) OnEvent(e pong.Event) {
	if c, ok := CueFor(e); ok {
		_ = m.Play(c)
	}
}
