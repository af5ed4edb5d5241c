package pong

// HitKind is the single horizontal outcome of a collision pass.
type HitKind int

const (
	HitNone HitKind = iota
	HitRightGoal
	HitLeftGoal
	HitPlayerPaddle
	HitCPUPaddle
)

func (h HitKind) String() string {
	switch h {
	case HitRightGoal:
		return "right_goal"
	case HitLeftGoal:
		return "left_goal"
	case HitPlayerPaddle:
		return "player_paddle"
	case HitCPUPaddle:
		return "cpu_paddle"
	default:
		return "none"
	}
}

// Collision reports what one resolver pass did.
type Collision struct {
	Wall     bool    // vertical direction flipped off the top or bottom edge
	Hit      HitKind // at most one horizontal outcome per pass
	Reset    bool    // ball was moved to a serve point (goals only)
	GameOver bool    // this pass ended the match
}

// Scored returns the side that won a point in this pass, if any.
func (c Collision) Scored() Side {
	switch c.Hit {
	case HitRightGoal:
		return SidePlayer
	case HitLeftGoal:
		return SideCPU
	default:
		return SideNone
	}
}

// Serve points the ball is reset to after a goal.
const (
	playerServeX = 3 * Width / 4
	cpuServeX    = Width / 4
	serveY       = Height / 2
)

// ResolveCollisions examines the ball against the walls, the goals and both
// paddles, and mutates ball direction, scores and match state.
//
// The wall check always runs. The four horizontal checks are an else-if
// chain evaluated in order right goal, left goal, player paddle, CPU paddle,
// so at most one of them fires.
func ResolveCollisions(s *Session) Collision {
	var c Collision
	b := &s.Ball

	if b.y >= Height-BallHeight || b.y < 0 {
		b.FlipVerticalDir()
		c.Wall = true
	}

	switch {
	case b.x >= Width-BallWidth && b.hSpeed > 0:
		c.Hit = HitRightGoal
		c.Reset, c.GameOver = s.score(&s.Player, playerServeX)
	case b.x < 0 && b.hSpeed < 0:
		c.Hit = HitLeftGoal
		c.Reset, c.GameOver = s.score(&s.CPU, cpuServeX)
	case b.x >= PaddleWidth && b.x <= PaddleWidth+BallWidth && b.hSpeed < 0:
		if paddleCovers(s.Player.Paddle, b.y, playerHitMargin) {
			b.FlipHorizontalDir()
			c.Hit = HitPlayerPaddle
		}
	case b.x >= Width-PaddleWidth-2*BallWidth && b.x <= Width-PaddleWidth-BallWidth && b.hSpeed > 0:
		if paddleCovers(s.CPU.Paddle, b.y, cpuHitMargin) {
			b.FlipHorizontalDir()
			c.Hit = HitCPUPaddle
		}
	}
	return c
}

// paddleCovers reports whether a ball at row y is inside the open interval
// (top-margin, top+PaddleHeight).
func paddleCovers(p Paddle, y, margin int) bool {
	return y > p.position-margin && y < p.position+PaddleHeight
}

// score awards a point to e, serves the ball from serveX and flips it back
// toward the side that conceded. It reports whether the ball actually moved
// and whether the point ended the match.
func (s *Session) score(e *Entity, serveX int) (reset, over bool) {
	e.Score.Increase()
	reset = s.Ball.Reset(serveX, serveY)
	s.Ball.FlipHorizontalDir()
	if e.Score.Maxed() {
		s.state = StateGameOver
		over = true
	}
	return reset, over
}
