package core

import (
	"log"

	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/messages"
	"github.com/automoto/pong/shared/netcomponents"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/session"
)

// match runs sessions back to back on the server. The rally only advances
// while both paddles are controlled.
type match struct {
	cfg    session.Config
	layout *arena.Layout
	rng    session.RandomSource

	session      *session.Session
	state        netcomponents.MatchState
	resultsDelay float64
	resultsLeft  float64
}

func newMatch(cfg session.Config, layout *arena.Layout, rng session.RandomSource, resultsDelay float64) *match {
	m := &match{
		cfg:          cfg,
		layout:       layout,
		rng:          rng,
		resultsDelay: resultsDelay,
	}
	m.reset()
	return m
}

func (m *match) reset() {
	m.session = session.New(m.cfg, m.layout, m.rng)
	m.state = netcomponents.MatchStateWaiting
	m.resultsLeft = 0
}

// step applies the seat actions and advances the session by dt. It returns
// the events the session emitted.
func (m *match) step(dt float64, actions [2]messages.PaddleAction, ready bool) []session.Event {
	for i, a := range actions {
		applyAction(m.session, netconfig.PlayerID(i+1), a)
	}

	switch m.state {
	case netcomponents.MatchStateWaiting:
		if !ready {
			return nil
		}
		log.Println("[server] both paddles taken, serving")
		m.state = netcomponents.MatchStatePlaying
		m.session.Start()
		return m.session.DrainEvents()

	case netcomponents.MatchStatePlaying:
		if !ready {
			// Hold the rally until the seat is filled again.
			return nil
		}
		m.session.Tick(dt)
		if m.session.State() == netconfig.RallyFinished {
			log.Printf("[server] %s wins %d-%d", m.session.Winner(), m.session.Score().Player1, m.session.Score().Player2)
			m.state = netcomponents.MatchStateFinished
			m.resultsLeft = m.resultsDelay
		}
		return m.session.DrainEvents()

	case netcomponents.MatchStateFinished:
		m.resultsLeft -= dt
		if m.resultsLeft <= 0 {
			log.Println("[server] starting a new match")
			m.reset()
		}
	}
	return nil
}

func applyAction(s *session.Session, p netconfig.PlayerID, a messages.PaddleAction) {
	switch a {
	case messages.PaddleActionUp:
		s.MoveUp(p)
	case messages.PaddleActionDown:
		s.MoveDown(p)
	case messages.PaddleActionStop:
		s.StopPaddle(p)
	}
}

// eventMessage converts a session event to the message broadcast to
// clients, or nil for events clients do not need.
func eventMessage(e session.Event, snap session.Snapshot) any {
	switch e.Kind {
	case session.EventGoal:
		return messages.GoalEvent{
			Scorer:  e.Player,
			Player1: snap.Score.Player1,
			Player2: snap.Score.Player2,
		}
	case session.EventPaddleHit:
		return messages.HitEvent{Paddle: e.Player, X: e.Position.X, Y: e.Position.Y}
	case session.EventWallHit:
		return messages.HitEvent{Paddle: netconfig.PlayerNone, X: e.Position.X, Y: e.Position.Y}
	case session.EventBallLaunched:
		return messages.ServeEvent{ImpulseX: e.Vector.X, ImpulseY: e.Vector.Y}
	case session.EventMatchWon:
		return messages.MatchOverEvent{Winner: e.Player, LongestRally: snap.LongestRally}
	default:
		return nil
	}
}
