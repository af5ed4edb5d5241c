package pong

import "math/rand"

// TestMatch is a headless match harness for tests and simulation tools. It
// wraps a Session with deterministic seeding, a MatchLog and an optional
// display, and lets the caller place the ball and paddles directly.
type TestMatch struct {
	Session *Session
	Log     *MatchLog

	display Display
	input   AnalogInput
	rng     Rand
	verbose bool
}

// matchOptionKind controls the pass in which an option is applied.
type matchOptionKind int

const (
	matchOptInfra matchOptionKind = iota // seed, verbose, collaborators, before the session exists
	matchOptSetup                        // ball, paddles, scores, applied to the built session
)

// MatchOption is a builder function applied to a TestMatch during construction.
type MatchOption struct {
	kind matchOptionKind
	fn   func(*TestMatch)
}

// WithMatchSeed seeds the AI.
func WithMatchSeed(seed int64) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) {
		tm.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithMatchRand replaces the AI random source.
func WithMatchRand(r Rand) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) { tm.rng = r }}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) { tm.verbose = v }}
}

// WithInput sets the analog input the player paddle follows.
func WithInput(in AnalogInput) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) { tm.input = in }}
}

// WithDisplay attaches a display so Tick renders.
func WithDisplay(d Display) MatchOption {
	return MatchOption{matchOptInfra, func(tm *TestMatch) { tm.display = d }}
}

// WithBall places the ball at (x, y) with the given signed speeds.
func WithBall(x, y, hSpeed, vSpeed int) MatchOption {
	return MatchOption{matchOptSetup, func(tm *TestMatch) {
		tm.Session.Ball = Ball{x: x, y: y, hSpeed: hSpeed, vSpeed: vSpeed}
	}}
}

// WithPlayerPaddle moves the player paddle's top edge to pos.
func WithPlayerPaddle(pos int) MatchOption {
	return MatchOption{matchOptSetup, func(tm *TestMatch) {
		tm.Session.Player.Paddle.SetPosition(pos)
	}}
}

// WithCPUPaddle moves the CPU paddle's top edge to pos.
func WithCPUPaddle(pos int) MatchOption {
	return MatchOption{matchOptSetup, func(tm *TestMatch) {
		tm.Session.CPU.Paddle.SetPosition(pos)
	}}
}

// WithScores starts the match from the given score line.
func WithScores(player, cpu int) MatchOption {
	return MatchOption{matchOptSetup, func(tm *TestMatch) {
		for i := 0; i < player; i++ {
			tm.Session.Player.Score.Increase()
		}
		for i := 0; i < cpu; i++ {
			tm.Session.CPU.Score.Increase()
		}
	}}
}

// NewTestMatch constructs a TestMatch from the given options in two passes:
//  1. Infrastructure (seed, verbose, input, display), then build the Session
//  2. Setup (ball, paddles, scores)
func NewTestMatch(opts ...MatchOption) *TestMatch {
	tm := &TestMatch{
		rng: rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		if o.kind == matchOptInfra {
			o.fn(tm)
		}
	}
	tm.Log = NewMatchLog(tm.verbose)
	tm.Session = NewSession(tm.display, tm.input, WithRand(tm.rng), WithMatchLog(tm.Log))
	for _, o := range opts {
		if o.kind == matchOptSetup {
			o.fn(tm)
		}
	}
	return tm
}

// Resolve runs a single collision pass without moving paddles or the ball.
func (tm *TestMatch) Resolve() Collision {
	return ResolveCollisions(tm.Session)
}

// RunTicks advances the match n ticks (gameplay only, no rendering).
func (tm *TestMatch) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tm.Session.Step()
	}
}

// RunUntil advances the match up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (tm *TestMatch) RunUntil(predicate func(*TestMatch) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tm.Session.Step()
		if predicate(tm) {
			return tm.Session.Ticks()
		}
	}
	return -1
}

// Snapshot is a lightweight copy of match state at a tick.
type Snapshot struct {
	Tick        int
	State       State
	BallX       int
	BallY       int
	BallH       int
	BallV       int
	PlayerPos   int
	CPUPos      int
	PlayerScore int
	CPUScore    int
}

// Snapshot returns the current match state.
func (tm *TestMatch) Snapshot() Snapshot {
	s := tm.Session
	return Snapshot{
		Tick:        s.Ticks(),
		State:       s.State(),
		BallX:       s.Ball.x,
		BallY:       s.Ball.y,
		BallH:       s.Ball.hSpeed,
		BallV:       s.Ball.vSpeed,
		PlayerPos:   s.Player.Paddle.Position(),
		CPUPos:      s.CPU.Paddle.Position(),
		PlayerScore: s.Player.Score.Value(),
		CPUScore:    s.CPU.Score.Value(),
	}
}
