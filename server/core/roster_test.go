package core

import (
	"testing"

	"github.com/automoto/pong/shared/messages"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstTwoJoinersTakePaddles(t *testing.T) {
	r := newRoster(4)

	side, token, err := r.join("a", "alice", "", false)
	require.NoError(t, err)
	assert.Equal(t, netconfig.Player1, side)
	assert.NotEmpty(t, token)
	assert.False(t, r.full())

	side, token2, err := r.join("b", "bob", "", false)
	require.NoError(t, err)
	assert.Equal(t, netconfig.Player2, side)
	assert.NotEqual(t, token, token2)
	assert.True(t, r.full())

	side, token, err = r.join("c", "carol", "", false)
	require.NoError(t, err)
	assert.Equal(t, netconfig.PlayerNone, side)
	assert.Empty(t, token)

	assert.Equal(t, [2]string{"alice", "bob"}, r.names())
	assert.Equal(t, 3, r.count())
}

func TestSpectateRequestSkipsFreePaddle(t *testing.T) {
	r := newRoster(4)

	side, _, err := r.join("a", "alice", "", true)
	require.NoError(t, err)

	assert.Equal(t, netconfig.PlayerNone, side)
	assert.Equal(t, [2]string{}, r.names())
}

func TestJoinTwiceFails(t *testing.T) {
	r := newRoster(4)
	_, _, err := r.join("a", "alice", "", false)
	require.NoError(t, err)

	_, _, err = r.join("a", "alice", "", false)
	assert.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestSpectatorLimit(t *testing.T) {
	r := newRoster(1)
	for _, id := range []string{"a", "b", "c"} {
		_, _, err := r.join(id, id, "", false)
		require.NoError(t, err)
	}

	_, _, err := r.join("d", "d", "", false)
	assert.ErrorIs(t, err, ErrServerFull)
}

func TestReconnectTokenReclaimsPaddle(t *testing.T) {
	r := newRoster(4)
	_, _, err := r.join("a", "alice", "", false)
	require.NoError(t, err)
	_, bobToken, err := r.join("b", "bob", "", false)
	require.NoError(t, err)

	assert.Equal(t, netconfig.Player2, r.leave("b"))
	assert.False(t, r.full())
	assert.Equal(t, [2]string{"alice", ""}, r.names())

	side, token, err := r.join("b2", "bob", bobToken, false)
	require.NoError(t, err)
	assert.Equal(t, netconfig.Player2, side)
	assert.Equal(t, bobToken, token)
	assert.True(t, r.full())
}

func TestNewcomerTakesAbandonedPaddle(t *testing.T) {
	r := newRoster(4)
	_, _, _ = r.join("a", "alice", "", false)
	_, oldToken, _ := r.join("b", "bob", "", false)
	r.leave("a")

	side, token, err := r.join("c", "carol", "", false)
	require.NoError(t, err)
	assert.Equal(t, netconfig.Player1, side)
	assert.NotEqual(t, oldToken, token)
}

func TestLeaveUnknownClient(t *testing.T) {
	r := newRoster(4)
	assert.Equal(t, netconfig.PlayerNone, r.leave("ghost"))
}

func TestInputKeepsLatestInOrder(t *testing.T) {
	r := newRoster(4)
	_, _, _ = r.join("a", "alice", "", false)
	_, _, _ = r.join("c", "carol", "", true)

	assert.True(t, r.input("a", messages.PaddleInput{Sequence: 1, Action: messages.PaddleActionUp}))
	assert.True(t, r.input("a", messages.PaddleInput{Sequence: 3, Action: messages.PaddleActionDown}))
	assert.False(t, r.input("a", messages.PaddleInput{Sequence: 2, Action: messages.PaddleActionUp}), "stale input")
	assert.False(t, r.input("c", messages.PaddleInput{Sequence: 4, Action: messages.PaddleActionUp}), "spectators have no paddle")

	got := r.takeInputs()
	assert.Equal(t, [2]messages.PaddleAction{messages.PaddleActionDown, messages.PaddleActionNone}, got)
	assert.Equal(t, [2]messages.PaddleAction{}, r.takeInputs())
}

func TestOccupyStopsPaddle(t *testing.T) {
	r := newRoster(4)
	_, _, _ = r.join("a", "alice", "", false)

	assert.Equal(t, messages.PaddleActionStop, r.takeInputs()[0])
}
