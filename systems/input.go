package systems

import (
	"sort"
	"strings"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// Cache controller types to avoid string allocation every frame
var padSourceCache = make(map[ebiten.GamepadID]components.InputSource)

// UpdateInput polls the keyboard and gamepads into the Input component.
// Must run BEFORE the match and menu systems.
func UpdateInput(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)
	input.Advance()

	keyboardUsed := false
	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
				keyboardUsed = true
			}
		}
	}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])
	sort.Slice(gamepadIDs, func(i, j int) bool { return gamepadIDs[i] < gamepadIDs[j] })

	slot := 0
	lastPad := ebiten.GamepadID(-1)
	for _, gpID := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		if readPad(input, slot, gpID) {
			lastPad = gpID
		}
		slot++
	}
	input.Pads = slot

	// Gamepad takes priority if both were used
	if lastPad >= 0 {
		input.LastSource = padSource(lastPad)
	} else if keyboardUsed {
		input.LastSource = components.SourceKeyboard
	}
}

// readPad merges one gamepad's buttons and left stick into input and
// reports whether it was touched.
func readPad(input *components.InputData, slot int, gpID ebiten.GamepadID) bool {
	used := false
	for actionID, binding := range cfg.Input.Bindings {
		target := padAction(slot, actionID)
		if target == cfg.ActionNone {
			continue
		}
		for _, btn := range binding.StandardGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
				input.Current[target] = true
				used = true
			}
		}
	}

	h := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
	v := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)
	if applyStick(&input.Current, slot, h, v, cfg.Input.AnalogDeadzone) {
		used = true
	}
	return used
}

// padAction maps a bound action to what it means on the pad in slot. The
// second pad moves player 2 and can still pause and drive menus; pads past
// the second are ignored.
func padAction(slot int, id cfg.ActionID) cfg.ActionID {
	switch slot {
	case 0:
		return id
	case 1:
		switch id {
		case cfg.ActionP1Up:
			return cfg.ActionP2Up
		case cfg.ActionP1Down:
			return cfg.ActionP2Down
		case cfg.ActionP2Up, cfg.ActionP2Down:
			return cfg.ActionNone
		}
		return id
	}
	return cfg.ActionNone
}

// applyStick sets the paddle and menu actions a stick deflection produces.
// Screen y grows downward on the stick, so negative vertical is up.
func applyStick(current *[cfg.ActionCount]bool, slot int, horizontal, vertical, deadzone float64) bool {
	set := func(id cfg.ActionID) {
		if target := padAction(slot, id); target != cfg.ActionNone {
			current[target] = true
		}
	}

	used := false
	if vertical < -deadzone {
		set(cfg.ActionP1Up)
		set(cfg.ActionMenuUp)
		used = true
	}
	if vertical > deadzone {
		set(cfg.ActionP1Down)
		set(cfg.ActionMenuDown)
		used = true
	}
	if horizontal < -deadzone {
		set(cfg.ActionMenuLeft)
		used = true
	}
	if horizontal > deadzone {
		set(cfg.ActionMenuRight)
		used = true
	}
	return used && slot < 2
}

// padSource returns the cached controller family, detecting on first access
func padSource(gpID ebiten.GamepadID) components.InputSource {
	if source, ok := padSourceCache[gpID]; ok {
		return source
	}
	source := classifyPad(ebiten.GamepadName(gpID))
	padSourceCache[gpID] = source
	return source
}

func classifyPad(name string) components.InputSource {
	name = strings.ToLower(name)
	for _, marker := range []string{"ps4", "ps5", "playstation", "dualshock", "dualsense"} {
		if strings.Contains(name, marker) {
			return components.SourcePlayStation
		}
	}
	return components.SourceXbox
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Input))
	}
	return components.Input.Get(entry)
}

// GetAction returns the full ActionState for an action ID.
func GetAction(input *components.InputData, id cfg.ActionID) components.ActionState {
	return input.Action(id)
}
