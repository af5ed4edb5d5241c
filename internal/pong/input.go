package pong

// AnalogInput reads a 10-bit sample (0..1023) from an ADC channel.
type AnalogInput interface {
	Read(channel int) int
}

// MapSample converts a raw potentiometer sample to a paddle top edge in
// [0, PaddleTrack], rounding to the nearest pixel. Samples outside
// [0, SampleMax] are pinned to the nearest end first.
func MapSample(sample int) int {
	if sample < 0 {
		sample = 0
	}
	if sample > SampleMax {
		sample = SampleMax
	}
	return (sample*PaddleTrack + SampleMax/2) / SampleMax
}

// FixedInput is an AnalogInput that always reads the same sample.
type FixedInput int

func (v FixedInput) Read(int) int { return int(v) }
