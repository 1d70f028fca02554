package systems

import (
	"errors"
	"testing"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/messages"
	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func TestNetworkInputSendsOnEdgesOnly(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	var sent []messages.PaddleAction
	system := NewNetworkInputSystem(func(a messages.PaddleAction) error {
		sent = append(sent, a)
		return nil
	})

	input := getOrCreateInput(e)
	input.Current[cfg.ActionP2Up] = true
	system(e)

	// Still held: nothing new to say
	input.Previous = input.Current
	system(e)

	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}
	input.Current[cfg.ActionP1Down] = true
	system(e)

	assert.Equal(t, []messages.PaddleAction{messages.PaddleActionUp, messages.PaddleActionDown}, sent)
}

func TestNetworkInputSkipsWhilePaused(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	calls := 0
	system := NewNetworkInputSystem(func(messages.PaddleAction) error {
		calls++
		return errors.New("not connected")
	})

	GetOrCreatePause(e).IsPaused = true
	getOrCreateInput(e).Current[cfg.ActionP1Up] = true
	system(e)

	assert.Zero(t, calls)
}

func TestPushInterpTargetFirstSnapshotSnaps(t *testing.T) {
	var interp components.NetInterpData

	PushInterpTarget(&interp, 3, 4, 0, 0)

	assert.True(t, interp.Initialized)
	assert.Equal(t, 3.0, interp.X)
	assert.Equal(t, 4.0, interp.Y)
	assert.Equal(t, 1.0, interp.T)
}

func TestStepInterpMovesPaddleHalfway(t *testing.T) {
	var interp components.NetInterpData
	PushInterpTarget(&interp, 40, 0, 0, 0)
	PushInterpTarget(&interp, 40, 2, 0, 0.5)

	stepInterp(&interp, false, 0.5, 1.0/30)

	assert.Equal(t, 40.0, interp.X)
	assert.InDelta(t, 1.0, interp.Y, 1e-9)
}

func TestStepInterpExtrapolatesBall(t *testing.T) {
	var interp components.NetInterpData
	PushInterpTarget(&interp, 0, 0, 0, 0)
	PushInterpTarget(&interp, 1, 0, 30, 0)

	stepInterp(&interp, true, 1.5, 1.0/30)

	assert.InDelta(t, 1.5, interp.X, 1e-9)
	assert.Equal(t, maxInterpT, interp.T)
}

func TestStepInterpSnapsBallOnServe(t *testing.T) {
	var interp components.NetInterpData
	PushInterpTarget(&interp, -43, 8, 0, 0)
	PushInterpTarget(&interp, 0, 0, 0, 0)

	stepInterp(&interp, true, 0.25, 1.0/30)

	assert.Equal(t, 0.0, interp.X)
	assert.Equal(t, 0.0, interp.Y)
}
