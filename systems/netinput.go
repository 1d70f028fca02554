package systems

import (
	"log"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/messages"
	"github.com/yohamta/donburi/ecs"
)

// NewNetworkInputSystem returns an ECS system that turns either paddle
// binding into a paddle command and sends it to the server when it changes.
// The server owns the paddle, so nothing is applied locally.
func NewNetworkInputSystem(send func(messages.PaddleAction) error) ecs.System {
	return func(e *ecs.ECS) {
		if GetOrCreatePause(e).IsPaused {
			return
		}
		input := getOrCreateInput(e)

		up := mergeActions(input, cfg.ActionP1Up, cfg.ActionP2Up)
		down := mergeActions(input, cfg.ActionP1Down, cfg.ActionP2Down)

		action := paddleAction(commandFor(up, down, cfg.Input.HoldToMove))
		if action == messages.PaddleActionNone {
			return
		}
		if err := send(action); err != nil {
			log.Printf("[netinput] send error: %v", err)
		}
	}
}

// mergeActions treats two bindings as one key, so either player's keys
// steer the paddle this client controls.
func mergeActions(input *components.InputData, a, b cfg.ActionID) components.ActionState {
	cur := input.Current[a] || input.Current[b]
	prev := input.Previous[a] || input.Previous[b]
	return components.ActionState{
		Pressed:      cur,
		JustPressed:  cur && !prev,
		JustReleased: !cur && prev,
	}
}

func paddleAction(cmd paddleCommand) messages.PaddleAction {
	switch cmd {
	case paddleUp:
		return messages.PaddleActionUp
	case paddleDown:
		return messages.PaddleActionDown
	case paddleStop:
		return messages.PaddleActionStop
	default:
		return messages.PaddleActionNone
	}
}
