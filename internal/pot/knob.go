// Package pot emulates the potentiometer the player turns. Front ends move
// the knob from keyboard or mouse events; the game reads it through
// pong.AnalogInput on the tick goroutine.
package pot

import (
	"sync"

	"github.com/Garsondee/oled-pong/internal/pong"
)

// Knob is a 10-bit analog value on one channel. It may be moved from one
// goroutine while another reads it.
type Knob struct {
	mu      sync.Mutex
	channel int
	value   int
}

// NewKnob returns a knob on the given channel, centred.
func NewKnob(channel int) *Knob {
	return &Knob{channel: channel, value: (pong.SampleMax + 1) / 2}
}

// Read returns the current sample for the knob's channel, or 0 for any
// other channel, like an unconnected ADC input pulled low.
func (k *Knob) Read(channel int) int {
	if channel != k.channel {
		return 0
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.value
}

// Set moves the knob to v, pinned to [0, SampleMax].
func (k *Knob) Set(v int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.value = clamp(v)
}

// Turn moves the knob by delta counts.
func (k *Knob) Turn(delta int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.value = clamp(k.value + delta)
}

// SetFraction moves the knob to f of its travel, f in [0,1].
func (k *Knob) SetFraction(f float64) {
	k.Set(int(f*pong.SampleMax + 0.5))
}

// Value returns the raw sample regardless of channel.
func (k *Knob) Value() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.value
}

func clamp(v int) int {
	return min(max(v, 0), pong.SampleMax)
}
