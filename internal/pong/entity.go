package pong

// Side identifies one of the two competitors.
type Side int

const (
	SideNone Side = iota
	SidePlayer
	SideCPU
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideCPU:
		return "cpu"
	default:
		return "--"
	}
}

// Entity is one competitor: a paddle and its score, held by value.
type Entity struct {
	Paddle Paddle
	Score  Score
}
