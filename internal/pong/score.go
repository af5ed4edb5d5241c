package pong

// Score is a point counter that saturates at MaxScore.
type Score struct {
	value int
}

// Increase adds one point. At MaxScore it does nothing and returns false.
func (s *Score) Increase() bool {
	if s.value == MaxScore {
		return false
	}
	s.value++
	return true
}

func (s Score) Value() int { return s.value }

// Maxed reports whether the counter has reached MaxScore.
func (s Score) Maxed() bool { return s.value == MaxScore }
