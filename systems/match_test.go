package systems

import (
	"testing"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func TestCommandForClassicControls(t *testing.T) {
	pressed := components.ActionState{Pressed: true, JustPressed: true}
	released := components.ActionState{JustReleased: true}
	idle := components.ActionState{}

	assert.Equal(t, paddleUp, commandFor(pressed, idle, false))
	assert.Equal(t, paddleDown, commandFor(idle, pressed, false))
	assert.Equal(t, paddleKeep, commandFor(released, idle, false))
	assert.Equal(t, paddleKeep, commandFor(idle, idle, false))
}

func TestCommandForHoldToMove(t *testing.T) {
	held := components.ActionState{Pressed: true}
	released := components.ActionState{JustReleased: true}
	idle := components.ActionState{}

	assert.Equal(t, paddleStop, commandFor(released, idle, true))
	assert.Equal(t, paddleDown, commandFor(released, held, true))
	assert.Equal(t, paddleUp, commandFor(held, released, true))
	assert.Equal(t, paddleKeep, commandFor(held, idle, true))
}

func newMatchECS(t *testing.T, mode components.MatchMode) (*ecs.ECS, *components.MatchData) {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	sess := session.New(session.DefaultConfig(), arena.Default(), fixedRand{})
	sess.Start()

	entry := e.World.Entry(e.World.Create(components.Match, components.HUD, components.ScreenShake))
	components.Match.SetValue(entry, components.MatchData{Session: sess, Mode: mode, Snapshot: sess.Snapshot()})
	return e, components.Match.Get(entry)
}

func TestUpdateMatchTicksSession(t *testing.T) {
	e, match := newMatchECS(t, components.MatchModeLocal)
	update := NewUpdateMatch(func() { t.Fatal("unexpected exit") }, func() { t.Fatal("unexpected rematch") })

	update(e)
	update(e)

	assert.Equal(t, uint64(2), match.Snapshot.Tick)
	assert.Equal(t, netconfig.RallyInPlay, match.Snapshot.State)
}

func TestUpdateMatchAppliesPlayerInput(t *testing.T) {
	e, match := newMatchECS(t, components.MatchModeLocal)
	update := NewUpdateMatch(func() {}, func() {})

	input := getOrCreateInput(e)
	input.Current[cfg.ActionP2Down] = true

	update(e)

	assert.Less(t, match.Snapshot.Paddles[1].VelocityY, 0.0)
	assert.Equal(t, 0.0, match.Snapshot.Paddles[0].VelocityY)
}

func TestUpdateMatchIgnoresSecondPlayerAgainstCPU(t *testing.T) {
	e, match := newMatchECS(t, components.MatchModeVersusCPU)
	update := NewUpdateMatch(func() {}, func() {})

	input := getOrCreateInput(e)
	input.Current[cfg.ActionP2Down] = true

	update(e)

	assert.Equal(t, 0.0, match.Snapshot.Paddles[1].VelocityY)
}

func TestUpdateMatchFreezesWhilePaused(t *testing.T) {
	e, match := newMatchECS(t, components.MatchModeLocal)
	update := NewUpdateMatch(func() {}, func() {})

	GetOrCreatePause(e).IsPaused = true
	update(e)

	assert.Equal(t, uint64(0), match.Snapshot.Tick)
}

func TestUpdateMatchQuitExits(t *testing.T) {
	e, match := newMatchECS(t, components.MatchModeLocal)
	exits := 0
	update := NewUpdateMatch(func() { exits++ }, func() {})

	pause := GetOrCreatePause(e)
	pause.IsPaused = true
	pause.QuitRequested = true
	update(e)

	require.Equal(t, 1, exits)
	assert.True(t, match.Recorded)
}

func TestUpdateMatchRematch(t *testing.T) {
	e, match := newMatchECS(t, components.MatchModeVersusCPU)
	rematches := 0
	update := NewUpdateMatch(func() { t.Fatal("unexpected exit") }, func() { rematches++ })

	pause := ConfigurePause(e, components.MenuResume, components.MenuRematch, components.MenuQuit)
	pause.Open()
	pause.Move(1)
	selectPauseOption(e, pause)
	update(e)

	require.Equal(t, 1, rematches)
	assert.False(t, pause.IsPaused)
	assert.False(t, pause.RematchRequested)
	assert.True(t, match.Recorded)
}

func TestShouldAutoPauseOnlyLocal(t *testing.T) {
	local := &components.PauseData{Options: []components.PauseMenuOption{components.MenuResume, components.MenuRematch}}
	online := &components.PauseData{Options: components.DefaultPauseOptions}

	assert.True(t, shouldAutoPause(local, false))
	assert.False(t, shouldAutoPause(local, true))
	assert.False(t, shouldAutoPause(online, false))

	local.IsPaused = true
	assert.False(t, shouldAutoPause(local, false))
}

func TestHandleMatchEventsQueuesSounds(t *testing.T) {
	e, _ := newMatchECS(t, components.MatchModeLocal)

	handleMatchEvents(e, []session.Event{
		{Kind: session.EventPaddleHit, Player: netconfig.Player1},
		{Kind: session.EventGoal, Player: netconfig.Player2},
	})

	assert.Equal(t, []cfg.SoundID{cfg.SoundPaddleHit, cfg.SoundGoal}, GetOrCreateAudio(e).PendingSFX)

	hudEntry, _ := components.HUD.First(e.World)
	hud := components.HUD.Get(hudEntry)
	assert.NotNil(t, hud.ScorePop[1])
	assert.Equal(t, "P2 SCORES", hud.Banner)

	shakeEntry, _ := components.ScreenShake.First(e.World)
	assert.Equal(t, cfg.HUD.ShakeFrames, components.ScreenShake.Get(shakeEntry).Duration)
}

func TestAdvanceHUDSettlesScorePop(t *testing.T) {
	var hud components.HUDData
	TriggerScorePop(&hud, netconfig.Player1)

	advanceHUD(&hud, cfg.HUD.PopDuration/3)
	assert.InDelta(t, cfg.HUD.PopScale, hud.ScoreScale[0], 0.01)

	advanceHUD(&hud, cfg.HUD.PopDuration)
	assert.Nil(t, hud.ScorePop[0])
	assert.Equal(t, 1.0, hud.ScoreScale[0])
	assert.Equal(t, 1.0, hud.ScoreScale[1])
}
