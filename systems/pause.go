package systems

import (
	"log"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePause handles pause toggle and menu navigation.
// This system should run AFTER UpdateInput but BEFORE the match systems.
func UpdatePause(ecs *ecs.ECS) {
	pause := GetOrCreatePause(ecs)
	input := getOrCreateInput(ecs)

	// Settings owns Escape while it is open
	if IsSettingsOpen(ecs) {
		return
	}

	if shouldAutoPause(pause, ebiten.IsFocused()) {
		log.Println("[pause] window lost focus")
		pause.Open()
		return
	}

	if GetAction(input, cfg.ActionPause).JustPressed {
		if pause.IsPaused {
			pause.IsPaused = false
		} else {
			pause.Open()
		}
		return
	}

	if !pause.IsPaused {
		return
	}

	if GetAction(input, cfg.ActionMenuUp).JustPressed {
		pause.Move(-1)
		PlaySFX(ecs, cfg.SoundMenuNavigate)
	}
	if GetAction(input, cfg.ActionMenuDown).JustPressed {
		pause.Move(1)
		PlaySFX(ecs, cfg.SoundMenuNavigate)
	}

	if GetAction(input, cfg.ActionMenuSelect).JustPressed {
		PlaySFX(ecs, cfg.SoundMenuSelect)
		selectPauseOption(ecs, pause)
	}
}

func selectPauseOption(ecs *ecs.ECS, pause *components.PauseData) {
	switch pause.Current() {
	case components.MenuResume:
		pause.IsPaused = false
	case components.MenuRematch:
		pause.IsPaused = false
		pause.RematchRequested = true
	case components.MenuSettings:
		OpenSettings(ecs, true)
	case components.MenuQuit:
		pause.QuitRequested = true
	}
}

// shouldAutoPause reports whether a match with a rematch option (a local
// one) should pause because the window is in the background.
func shouldAutoPause(pause *components.PauseData, focused bool) bool {
	if focused || pause.IsPaused || !cfg.Pause.PauseOnBlur {
		return false
	}
	for _, o := range pause.Options {
		if o == components.MenuRematch {
			return true
		}
	}
	return false
}

// DrawPause renders the pause overlay and menu.
func DrawPause(ecs *ecs.ECS, screen *ebiten.Image) {
	pause := GetOrCreatePause(ecs)

	if !pause.IsPaused {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.Pause.OverlayColor,
		false,
	)

	menuOptions := pause.Options
	totalMenuHeight := float64(len(menuOptions)) * (cfg.Pause.MenuItemHeight + cfg.Pause.MenuItemGap)
	startY := (height - totalMenuHeight) / 2

	fontFace := fonts.Bold.Get()

	for i, option := range menuOptions {
		y := startY + float64(i)*(cfg.Pause.MenuItemHeight+cfg.Pause.MenuItemGap)

		textColor := cfg.Pause.TextColorNormal
		if i == pause.Selected {
			textColor = cfg.Pause.TextColorSelected
		}

		label := option.Label()
		x := centeredX(label, fontFace, width)
		text.Draw(screen, label, fontFace, x, int(y)+int(cfg.Pause.MenuItemHeight), textColor)
	}

	input := getOrCreateInput(ecs)
	hint := getPauseHint(input.LastSource)
	hintFont := fonts.Small.Get()
	text.Draw(screen, hint, hintFont, centeredX(hint, hintFont, width), int(height)-12, cfg.Pause.TextColorNormal)
}

// getPauseHint returns the appropriate hint for pause menu
func getPauseHint(method components.InputSource) string {
	switch method {
	case components.SourcePlayStation:
		return "Left Stick/D-Pad: Navigate   Cross: Select   Options: Resume"
	case components.SourceXbox:
		return "Left Stick/D-Pad: Navigate   A: Select   Start: Resume"
	}
	return "Arrows: Navigate   Enter: Select   Esc: Resume"
}

// WithPauseCheck wraps a system to skip execution when paused.
func WithPauseCheck(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if pause := GetOrCreatePause(e); pause.IsPaused {
			return
		}
		system(e)
	}
}

// GetOrCreatePause returns the singleton Pause component, creating it with
// the default options if needed.
func GetOrCreatePause(ecs *ecs.ECS) *components.PauseData {
	return ConfigurePause(ecs, components.DefaultPauseOptions...)
}

// ConfigurePause returns the Pause singleton, creating it with options when
// it does not exist yet.
func ConfigurePause(ecs *ecs.ECS, options ...components.PauseMenuOption) *components.PauseData {
	entry, ok := components.Pause.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Pause))
		components.Pause.SetValue(entry, components.PauseData{Options: options})
	}
	return components.Pause.Get(entry)
}
