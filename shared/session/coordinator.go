package session

import (
	"github.com/automoto/pong/shared/netconfig"
)

// respawnEpsilon absorbs float drift when a delay is counted down in
// fractional ticks (90 ticks of 1/60 do not sum to exactly 1.5).
const respawnEpsilon = 1e-9

// Score holds the goals of both players.
type Score struct {
	Player1 int
	Player2 int
}

// Of returns the goals scored by p.
func (s Score) Of(p netconfig.PlayerID) int {
	switch p {
	case netconfig.Player1:
		return s.Player1
	case netconfig.Player2:
		return s.Player2
	default:
		return 0
	}
}

func (s *Score) add(p netconfig.PlayerID) {
	switch p {
	case netconfig.Player1:
		s.Player1++
	case netconfig.Player2:
		s.Player2++
	}
}

// RespawnTimer counts down the pause between a goal and the next serve.
type RespawnTimer struct {
	Remaining float64
	Active    bool
}

// Coordinator watches the ball for goals, keeps the score and serves the
// ball again once the respawn delay has run out.
type Coordinator struct {
	State   netconfig.RallyStateID
	Score   Score
	Respawn RespawnTimer

	// Rally counts paddle hits since the last serve.
	Rally        int
	LongestRally int

	GoalLeft    float64
	GoalRight   float64
	Delay       float64
	TargetScore int

	winner  netconfig.PlayerID
	ball    *BallController
	paddles []*PaddleController
	emit    func(Event)
}

func NewCoordinator(ball *BallController, paddles []*PaddleController, goalLeft, goalRight float64, cfg Config, emit func(Event)) *Coordinator {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Coordinator{
		State:       netconfig.RallyInPlay,
		Respawn:     RespawnTimer{Remaining: cfg.RespawnDelay},
		GoalLeft:    goalLeft,
		GoalRight:   goalRight,
		Delay:       cfg.RespawnDelay,
		TargetScore: cfg.TargetScore,
		ball:        ball,
		paddles:     paddles,
		emit:        emit,
	}
}

// Serve launches the ball and reports it.
func (c *Coordinator) Serve() {
	impulse := c.ball.Launch()
	c.Rally = 0
	c.emit(Event{Kind: EventBallLaunched, Position: c.ball.Ball.Position, Vector: impulse})
}

// Update evaluates one tick. Goals are only checked while in play, so a ball
// resting beyond a goal line scores once.
func (c *Coordinator) Update(dt float64) {
	switch c.State {
	case netconfig.RallyInPlay:
		if scorer := c.scorer(); scorer != netconfig.PlayerNone {
			c.goal(scorer)
		}
	case netconfig.RallyRespawning:
		c.Respawn.Remaining -= dt
		if c.Respawn.Remaining > respawnEpsilon {
			return
		}
		c.Respawn.Remaining = c.Delay
		c.Respawn.Active = false
		c.State = netconfig.RallyInPlay
		c.Serve()
	}
}

// PaddleHit records a return for the rally counter.
func (c *Coordinator) PaddleHit() {
	c.Rally++
	if c.Rally > c.LongestRally {
		c.LongestRally = c.Rally
	}
}

// Winner returns the player that reached the target score, if any.
func (c *Coordinator) Winner() netconfig.PlayerID {
	return c.winner
}

func (c *Coordinator) scorer() netconfig.PlayerID {
	x := c.ball.Ball.Position.X
	switch {
	case x <= c.GoalLeft:
		return netconfig.Player2
	case x >= c.GoalRight:
		return netconfig.Player1
	default:
		return netconfig.PlayerNone
	}
}

func (c *Coordinator) goal(scorer netconfig.PlayerID) {
	at := c.ball.Ball.Position
	c.Score.add(scorer)

	c.ball.Reset()
	for _, p := range c.paddles {
		p.Reset()
	}
	c.emit(Event{Kind: EventGoal, Player: scorer, Position: at})

	if c.TargetScore > 0 && c.Score.Of(scorer) >= c.TargetScore {
		c.State = netconfig.RallyFinished
		c.winner = scorer
		c.Respawn = RespawnTimer{Remaining: c.Delay}
		c.emit(Event{Kind: EventMatchWon, Player: scorer, Position: at})
		return
	}

	c.State = netconfig.RallyRespawning
	c.Respawn = RespawnTimer{Remaining: c.Delay, Active: true}
}
