// Package session is the headless Pong simulation: two kinematic paddles, a
// dynamic ball, the walls around them, and the score and respawn rules. It
// has no rendering or input dependencies so the client, the dedicated server
// and the terminal viewer all run the same code.
package session

import (
	"math/rand/v2"

	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/physics"
)

type intent int

const (
	intentNone intent = iota
	intentUp
	intentDown
	intentStop
)

// Session owns all mutable game state. It is not safe for concurrent use;
// only the loop that calls Tick may touch it.
type Session struct {
	cfg    Config
	layout *arena.Layout
	world  World

	paddles []*PaddleController
	ball    *BallController
	coord   *Coordinator

	pending [2]intent
	events  []Event
	started bool
	tick    uint64
}

// New builds a session on a fresh physics world. A nil layout uses
// arena.Default and a nil rng seeds one from the runtime.
func New(cfg Config, layout *arena.Layout, rng RandomSource) *Session {
	if layout == nil {
		layout = arena.Default()
	}
	w := physics.NewWorld(layout.Width, layout.Height)
	w.MaxSpeed = cfg.BallMaxSpeed
	return NewWithWorld(cfg, layout, w, rng)
}

// NewWithWorld builds a session on the given world. The layout must be
// valid.
func NewWithWorld(cfg Config, layout *arena.Layout, world World, rng RandomSource) *Session {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &Session{
		cfg:    cfg,
		layout: layout,
		world:  world,
	}

	for _, wall := range layout.Walls {
		body := physics.NewStaticBox(wall.Center, wall.Width, wall.Height, TagWall)
		body.Restitution = wall.Restitution
		body.Data = wall.Name
		world.AddBody(body)
	}

	for _, p := range []netconfig.PlayerID{netconfig.Player1, netconfig.Player2} {
		spawn, _ := layout.Paddle(p)
		s.paddles = append(s.paddles, NewPaddleController(world, spawn, cfg.PaddleSpeed))
	}

	s.ball = NewBallController(world, layout.Ball, rng, cfg)
	s.coord = NewCoordinator(s.ball, s.paddles, layout.GoalLeft, layout.GoalRight, cfg, s.emit)
	return s
}

// Start serves the first ball. Calling it again does nothing.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	s.coord.Serve()
}

// Started reports whether Start has been called.
func (s *Session) Started() bool {
	return s.started
}

// MoveUp records an up intent for p, applied on the next Tick.
func (s *Session) MoveUp(p netconfig.PlayerID) {
	s.setIntent(p, intentUp)
}

// MoveDown records a down intent for p, applied on the next Tick.
func (s *Session) MoveDown(p netconfig.PlayerID) {
	s.setIntent(p, intentDown)
}

// StopPaddle records a stop intent for p, applied on the next Tick.
func (s *Session) StopPaddle(p netconfig.PlayerID) {
	s.setIntent(p, intentStop)
}

func (s *Session) setIntent(p netconfig.PlayerID, in intent) {
	if i := p.Index(); i >= 0 {
		s.pending[i] = in
	}
}

// Tick advances the simulation by dt seconds. It does nothing before Start.
func (s *Session) Tick(dt float64) {
	if !s.started {
		return
	}

	s.applyIntents()

	contacts := s.world.Step(dt)
	s.ball.Update(dt)
	s.handleContacts(contacts)

	s.coord.Update(dt)

	for _, p := range s.paddles {
		p.Update(dt)
	}
	s.tick++
}

func (s *Session) applyIntents() {
	for i, in := range s.pending {
		c := s.paddles[i]
		switch in {
		case intentUp:
			c.MoveUp()
		case intentDown:
			c.MoveDown()
		case intentStop:
			c.Stop()
		}
		s.pending[i] = intentNone
	}
}

func (s *Session) handleContacts(contacts []physics.Contact) {
	if s.coord.State != netconfig.RallyInPlay {
		return
	}
	for _, c := range contacts {
		if c.Body != s.ball.Ball.Body {
			continue
		}
		switch c.Other.Tag {
		case TagPaddle:
			s.coord.PaddleHit()
			side, _ := c.Other.Data.(netconfig.PlayerID)
			s.emit(Event{Kind: EventPaddleHit, Player: side, Position: s.ball.Ball.Position})
		case TagWall:
			s.emit(Event{Kind: EventWallHit, Position: s.ball.Ball.Position})
		}
	}
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// DrainEvents returns the events emitted since the last call.
func (s *Session) DrainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}

// Paddle returns the paddle of p, or nil for PlayerNone.
func (s *Session) Paddle(p netconfig.PlayerID) *Paddle {
	if i := p.Index(); i >= 0 {
		return s.paddles[i].Paddle
	}
	return nil
}

// Ball returns the live ball state.
func (s *Session) Ball() *Ball {
	return s.ball.Ball
}

// Score returns the current score.
func (s *Session) Score() Score {
	return s.coord.Score
}

// Respawn returns the respawn countdown.
func (s *Session) Respawn() RespawnTimer {
	return s.coord.Respawn
}

// State returns the rally state.
func (s *Session) State() netconfig.RallyStateID {
	return s.coord.State
}

// Winner is PlayerNone unless a target score was reached.
func (s *Session) Winner() netconfig.PlayerID {
	return s.coord.Winner()
}

// Layout returns the arena the session was built on.
func (s *Session) Layout() *arena.Layout {
	return s.layout
}

// Config returns the tuning the session was built with.
func (s *Session) Config() Config {
	return s.cfg
}

// Ticks returns the number of ticks simulated since Start.
func (s *Session) Ticks() uint64 {
	return s.tick
}

// PaddleState is a read-only copy of a paddle.
type PaddleState struct {
	Side      netconfig.PlayerID
	Position  gamemath.Vec2
	VelocityY float64
	Width     float64
	Height    float64
}

// BallState is a read-only copy of the ball.
type BallState struct {
	Position gamemath.Vec2
	Velocity gamemath.Vec2
	Radius   float64
}

// Snapshot is a value copy of everything presentation reads.
type Snapshot struct {
	Tick         uint64
	Paddles      [2]PaddleState
	Ball         BallState
	Score        Score
	Respawn      RespawnTimer
	State        netconfig.RallyStateID
	Winner       netconfig.PlayerID
	Rally        int
	LongestRally int
}

// Snapshot copies the state presentation needs.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick: s.tick,
		Ball: BallState{
			Position: s.ball.Ball.Position,
			Velocity: s.ball.Ball.Velocity,
			Radius:   s.ball.Ball.Radius,
		},
		Score:        s.coord.Score,
		Respawn:      s.coord.Respawn,
		State:        s.coord.State,
		Winner:       s.coord.Winner(),
		Rally:        s.coord.Rally,
		LongestRally: s.coord.LongestRally,
	}
	for i, c := range s.paddles {
		p := c.Paddle
		snap.Paddles[i] = PaddleState{
			Side:      p.Side,
			Position:  p.Position(),
			VelocityY: p.VelocityY,
			Width:     p.Body.Width,
			Height:    p.Body.Height,
		}
	}
	return snap
}
