package pong

import (
	"fmt"
	"math/rand"
)

// State is the match state machine. GameOver is terminal.
type State int

const (
	StateRunning State = iota
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Session owns everything one match needs: both competitors, the ball, the
// state machine and the collaborators. It is driven by calling Tick once per
// frame from a single goroutine and is not safe for concurrent use.
type Session struct {
	Player Entity
	CPU    Entity
	Ball   Ball

	state State
	tick  int

	rng       Rand
	input     AnalogInput
	display   Display
	renderer  *Renderer
	log       *MatchLog
	listeners []func(Event)
}

// Option configures a Session at construction.
type Option func(*Session)

// WithRand sets the AI's random source. The default is seeded with 1.
func WithRand(r Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithSeed seeds the AI's random source.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) } // #nosec G404 -- game AI
}

// WithMatchLog records every event, and per-tick positions when the log is
// verbose.
func WithMatchLog(ml *MatchLog) Option {
	return func(s *Session) {
		s.log = ml
		s.listeners = append(s.listeners, ml.Record)
	}
}

// WithListener registers fn to be called for every event, on the tick
// goroutine, in registration order.
func WithListener(fn func(Event)) Option {
	return func(s *Session) { s.listeners = append(s.listeners, fn) }
}

// NewSession builds a match in its starting position: paddles at the top,
// scores at zero, ball in the centre heading toward the CPU. d may be nil
// for sessions that are only ever stepped, never rendered.
func NewSession(d Display, in AnalogInput, opts ...Option) *Session {
	s := &Session{
		Ball:    NewBall(Width/2, Height/2),
		state:   StateRunning,
		rng:     rand.New(rand.NewSource(1)), // #nosec G404 -- game AI
		input:   in,
		display: d,
	}
	if d != nil {
		s.renderer = NewRenderer(d)
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Setup starts the panel and blanks it. Call once before the first Tick.
func (s *Session) Setup(cfg DisplayConfig) error {
	if s.display == nil {
		return nil
	}
	if err := s.display.Begin(cfg); err != nil {
		return fmt.Errorf("display begin: %w", err)
	}
	s.display.ClearDisplay()
	if err := s.display.Display(); err != nil {
		return fmt.Errorf("display flush: %w", err)
	}
	return nil
}

// Tick runs one full frame: Step, then Render.
func (s *Session) Tick() (Collision, error) {
	c := s.Step()
	if s.renderer == nil {
		return c, nil
	}
	if err := s.renderer.Render(s); err != nil {
		return c, fmt.Errorf("render tick %d: %w", s.tick, err)
	}
	return c, nil
}

// Step advances the simulation by one tick without drawing. While running it
// moves the CPU paddle toward the AI target, moves the player paddle from the
// input, resolves collisions and advances the ball, in that order. After
// GameOver it only counts the tick.
func (s *Session) Step() Collision {
	s.tick++
	if s.state != StateRunning {
		return Collision{}
	}

	s.CPU.Paddle.SetPosition(AITarget(s.Ball, s.rng))
	if s.input != nil {
		s.Player.Paddle.SetPosition(MapSample(s.input.Read(PotChannel)))
	}

	c := ResolveCollisions(s)
	s.emit(c)
	s.Ball.Update()
	s.logPositions()
	return c
}

// Render draws the current state without advancing it.
func (s *Session) Render() error {
	if s.renderer == nil {
		return nil
	}
	return s.renderer.Render(s)
}

func (s *Session) State() State { return s.state }

// Ticks returns how many ticks have run.
func (s *Session) Ticks() int { return s.tick }

// Winner returns the side that reached MaxScore, or SideNone while running.
func (s *Session) Winner() Side {
	switch {
	case s.Player.Score.Maxed():
		return SidePlayer
	case s.CPU.Score.Maxed():
		return SideCPU
	default:
		return SideNone
	}
}

func (s *Session) emit(c Collision) {
	if len(s.listeners) == 0 {
		return
	}
	for _, e := range eventsFor(s, c) {
		for _, fn := range s.listeners {
			fn(e)
		}
	}
}

func (s *Session) logPositions() {
	if s.log == nil {
		return
	}
	s.log.AddVerbose(s.tick, SideNone, "move", "ball",
		fmt.Sprintf("(%d,%d) v=(%d,%d)", s.Ball.x, s.Ball.y, s.Ball.hSpeed, s.Ball.vSpeed), 0)
	s.log.AddVerbose(s.tick, SidePlayer, "move", "paddle",
		fmt.Sprintf("%d", s.Player.Paddle.position), float64(s.Player.Paddle.position))
	s.log.AddVerbose(s.tick, SideCPU, "move", "paddle",
		fmt.Sprintf("%d", s.CPU.Paddle.position), float64(s.CPU.Paddle.position))
}
