package core

import (
	"testing"

	"github.com/automoto/pong/shared/gamemath"
	"github.com/automoto/pong/shared/messages"
	"github.com/automoto/pong/shared/netcomponents"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60.0

type fixedRand struct{ v int }

func (r fixedRand) IntN(n int) int { return r.v % n }

var noActions [2]messages.PaddleAction

func newTestMatch(target int) *match {
	cfg := session.DefaultConfig()
	cfg.TargetScore = target
	return newMatch(cfg, nil, fixedRand{v: 13}, 1)
}

func TestMatchWaitsForBothPaddles(t *testing.T) {
	m := newTestMatch(0)

	for i := 0; i < 10; i++ {
		assert.Empty(t, m.step(dt, noActions, false))
	}

	assert.Equal(t, netcomponents.MatchStateWaiting, m.state)
	assert.False(t, m.session.Started())
}

func TestMatchServesWhenReady(t *testing.T) {
	m := newTestMatch(0)

	events := m.step(dt, noActions, true)

	require.Len(t, events, 1)
	assert.Equal(t, session.EventBallLaunched, events[0].Kind)
	assert.Equal(t, netcomponents.MatchStatePlaying, m.state)
}

func TestMatchHoldsRallyWhenSeatEmpties(t *testing.T) {
	m := newTestMatch(0)
	m.step(dt, noActions, true)
	m.step(dt, noActions, true)
	before := m.session.Snapshot().Ball.Position

	m.step(dt, noActions, false)

	assert.Equal(t, before, m.session.Snapshot().Ball.Position)
	assert.Equal(t, netcomponents.MatchStatePlaying, m.state)
}

func TestMatchAppliesActions(t *testing.T) {
	m := newTestMatch(0)
	m.step(dt, noActions, true)

	m.step(dt, [2]messages.PaddleAction{messages.PaddleActionUp, messages.PaddleActionDown}, true)

	snap := m.session.Snapshot()
	assert.Equal(t, 0.5, snap.Paddles[0].Position.Y)
	assert.Equal(t, -0.5, snap.Paddles[1].Position.Y)
}

func TestMatchRestartsAfterResults(t *testing.T) {
	m := newTestMatch(1)
	m.step(dt, noActions, true)

	// Let the serve run until someone scores.
	for i := 0; i < 60*20 && m.state == netcomponents.MatchStatePlaying; i++ {
		m.step(dt, noActions, true)
	}
	require.Equal(t, netcomponents.MatchStateFinished, m.state)
	assert.Equal(t, netconfig.Player2, m.session.Winner())

	for i := 0; i < 70; i++ {
		m.step(dt, noActions, false)
	}

	assert.Equal(t, netcomponents.MatchStateWaiting, m.state)
	assert.Equal(t, session.Score{}, m.session.Score())
}

func TestEventMessages(t *testing.T) {
	snap := session.Snapshot{Score: session.Score{Player1: 2, Player2: 3}, LongestRally: 7}
	at := gamemath.Vec2{X: 38, Y: 4}

	tests := []struct {
		name  string
		event session.Event
		want  any
	}{
		{"goal", session.Event{Kind: session.EventGoal, Player: netconfig.Player2}, messages.GoalEvent{Scorer: netconfig.Player2, Player1: 2, Player2: 3}},
		{"paddle", session.Event{Kind: session.EventPaddleHit, Player: netconfig.Player1, Position: at}, messages.HitEvent{Paddle: netconfig.Player1, X: 38, Y: 4}},
		{"wall", session.Event{Kind: session.EventWallHit, Position: at}, messages.HitEvent{X: 38, Y: 4}},
		{"serve", session.Event{Kind: session.EventBallLaunched, Vector: gamemath.Vec2{X: 12, Y: -3}}, messages.ServeEvent{ImpulseX: 12, ImpulseY: -3}},
		{"won", session.Event{Kind: session.EventMatchWon, Player: netconfig.Player1}, messages.MatchOverEvent{Winner: netconfig.Player1, LongestRally: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eventMessage(tt.event, snap))
		})
	}
}
