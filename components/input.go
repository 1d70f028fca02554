package components

import (
	cfg "github.com/automoto/pong/config"
	"github.com/yohamta/donburi"
)

// InputSource is the device family that produced the most recent input.
// Menus pick their button hints from it.
type InputSource int

const (
	SourceKeyboard InputSource = iota
	SourceXbox
	SourcePlayStation
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData holds this frame's and last frame's action state.
// The first gamepad drives player 1 and the menus, the second player 2.
type InputData struct {
	Current    [cfg.ActionCount]bool
	Previous   [cfg.ActionCount]bool
	LastSource InputSource
	Pads       int // Gamepads with a standard layout seen this frame
}

// Action derives edges for id by comparing both frames.
func (in *InputData) Action(id cfg.ActionID) ActionState {
	curr := in.Current[id]
	prev := in.Previous[id]
	return ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}

// Advance starts a new frame.
func (in *InputData) Advance() {
	in.Previous = in.Current
	in.Current = [cfg.ActionCount]bool{}
}

var Input = donburi.NewComponentType[InputData]()
