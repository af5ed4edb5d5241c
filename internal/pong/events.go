package pong

// EventKind classifies something that happened during a tick.
type EventKind int

const (
	EventWallBounce EventKind = iota
	EventPaddleBounce
	EventPoint
	EventResetSkipped
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventWallBounce:
		return "wall_bounce"
	case EventPaddleBounce:
		return "paddle_bounce"
	case EventPoint:
		return "point"
	case EventResetSkipped:
		return "reset_skipped"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is emitted to session listeners right after the collision pass,
// before the ball moves. X and Y are the ball position at that moment.
type Event struct {
	Tick        int
	Kind        EventKind
	Side        Side // who bounced or scored; SideNone for walls
	PlayerScore int
	CPUScore    int
	X, Y        int
}

// eventsFor expands one collision result into events, in the order wall,
// horizontal hit, skipped reset, game over.
func eventsFor(s *Session, c Collision) []Event {
	base := Event{
		Tick:        s.tick,
		PlayerScore: s.Player.Score.Value(),
		CPUScore:    s.CPU.Score.Value(),
		X:           s.Ball.x,
		Y:           s.Ball.y,
	}
	var out []Event
	add := func(k EventKind, side Side) {
		e := base
		e.Kind = k
		e.Side = side
		out = append(out, e)
	}

	if c.Wall {
		add(EventWallBounce, SideNone)
	}
	switch c.Hit {
	case HitPlayerPaddle:
		add(EventPaddleBounce, SidePlayer)
	case HitCPUPaddle:
		add(EventPaddleBounce, SideCPU)
	case HitRightGoal, HitLeftGoal:
		add(EventPoint, c.Scored())
		if !c.Reset {
			add(EventResetSkipped, c.Scored())
		}
	}
	if c.GameOver {
		add(EventGameOver, c.Scored())
	}
	return out
}
