package pong

import "testing"

func TestMapSample_Ends(t *testing.T) {
	if got := MapSample(1023); got != 23 {
		t.Fatalf("expected 1023 -> 23, got %d", got)
	}
	if got := MapSample(0); got != 0 {
		t.Fatalf("expected 0 -> 0, got %d", got)
	}
}

func TestMapSample_Rounds(t *testing.T) {
	tests := []struct{ sample, want int }{
		{22, 0},   // 0.49
		{23, 1},   // 0.52
		{511, 11}, // 11.49
		{512, 12}, // 11.51
		{1000, 22},
	}
	for _, tc := range tests {
		if got := MapSample(tc.sample); got != tc.want {
			t.Fatalf("sample %d: expected %d, got %d", tc.sample, tc.want, got)
		}
	}
}

func TestMapSample_MonotonicAndInRange(t *testing.T) {
	prev := 0
	for s := 0; s <= SampleMax; s++ {
		got := MapSample(s)
		if got < prev {
			t.Fatalf("sample %d mapped to %d, below previous %d", s, got, prev)
		}
		if got < 0 || got > PaddleTrack {
			t.Fatalf("sample %d mapped outside [0,%d]: %d", s, PaddleTrack, got)
		}
		prev = got
	}
}

func TestMapSample_PinsOutOfRange(t *testing.T) {
	if got := MapSample(-50); got != 0 {
		t.Fatalf("expected negative sample to map to 0, got %d", got)
	}
	if got := MapSample(4095); got != PaddleTrack {
		t.Fatalf("expected oversize sample to map to %d, got %d", PaddleTrack, got)
	}
}
