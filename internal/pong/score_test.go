package pong

import "testing"

func TestScore_ReachesMaxAfterExactlyMaxIncreases(t *testing.T) {
	var s Score
	for i := 1; i <= MaxScore; i++ {
		if !s.Increase() {
			t.Fatalf("increase %d should apply", i)
		}
		if s.Value() != i {
			t.Fatalf("expected %d, got %d", i, s.Value())
		}
	}
	if !s.Maxed() {
		t.Fatal("expected score to be maxed")
	}
}

func TestScore_Saturates(t *testing.T) {
	var s Score
	for i := 0; i < 3*MaxScore; i++ {
		s.Increase()
		if s.Value() > MaxScore {
			t.Fatalf("score exceeded MaxScore: %d", s.Value())
		}
	}
	if s.Increase() {
		t.Fatal("increase past MaxScore should report false")
	}
	if s.Value() != MaxScore {
		t.Fatalf("expected %d, got %d", MaxScore, s.Value())
	}
}
