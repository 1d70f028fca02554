package systems

import (
	"fmt"
	"math"
	"strings"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const numSettingsOptions = int(components.SettingsOptBack) + 1

// UpdateSettingsMenu handles settings navigation and value changes.
func UpdateSettingsMenu(e *ecs.ECS) {
	settings := GetOrCreateSettingsMenu(e)

	if !settings.IsOpen {
		return
	}

	input := getOrCreateInput(e)

	if settings.ShowingControls {
		if GetAction(input, cfg.ActionMenuBack).JustPressed ||
			GetAction(input, cfg.ActionMenuSelect).JustPressed {
			settings.ShowingControls = false
			PlaySFX(e, cfg.SoundMenuSelect)
		}
		return
	}

	if GetAction(input, cfg.ActionMenuUp).JustPressed {
		navigateSettings(settings, -1)
		PlaySFX(e, cfg.SoundMenuNavigate)
	}
	if GetAction(input, cfg.ActionMenuDown).JustPressed {
		navigateSettings(settings, +1)
		PlaySFX(e, cfg.SoundMenuNavigate)
	}
	if GetAction(input, cfg.ActionMenuLeft).JustPressed {
		adjustValue(e, settings, -1)
	}
	if GetAction(input, cfg.ActionMenuRight).JustPressed {
		adjustValue(e, settings, +1)
	}
	if GetAction(input, cfg.ActionMenuSelect).JustPressed {
		handleSelect(e, settings)
	}

	if GetAction(input, cfg.ActionMenuBack).JustPressed {
		closeSettings(e, settings)
	}
}

// navigateSettings moves the selection, skipping hidden options
func navigateSettings(s *components.SettingsMenuData, direction int) {
	for {
		s.SelectedOption = components.SettingsMenuOption(wrap(int(s.SelectedOption), direction, numSettingsOptions))
		if !isOptionHidden(s, s.SelectedOption) {
			break
		}
	}
}

// visibleSettings lists the options shown for the current menu state.
func visibleSettings(s *components.SettingsMenuData) []components.SettingsMenuOption {
	var opts []components.SettingsMenuOption
	for opt := components.SettingsOptSFXVolume; opt <= components.SettingsOptBack; opt++ {
		if !isOptionHidden(s, opt) {
			opts = append(opts, opt)
		}
	}
	return opts
}

// wrap steps i by delta within [0, n).
func wrap(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

// isOptionHidden returns true if the option should be hidden
func isOptionHidden(s *components.SettingsMenuData, opt components.SettingsMenuOption) bool {
	switch opt {
	case components.SettingsOptResolution:
		return s.Fullscreen
	case components.SettingsOptTargetScore, components.SettingsOptDifficulty:
		// Match rules cannot change mid-match
		return s.OpenedFromPause
	}
	return false
}

// adjustValue changes the value for the selected option
func adjustValue(e *ecs.ECS, s *components.SettingsMenuData, direction int) {
	switch s.SelectedOption {
	case components.SettingsOptSFXVolume:
		s.SFXVolume = adjustVolumeStep(s.SFXVolume, direction)
		if !s.Muted {
			SetSFXVolume(e, s.SFXVolume)
		}
		// Preview at the new volume
		PlaySFX(e, cfg.SoundPaddleHit)

	case components.SettingsOptMute:
		toggleMute(e, s)
		PlaySFX(e, cfg.SoundMenuSelect)

	case components.SettingsOptFullscreen:
		toggleFullscreen(s)
		PlaySFX(e, cfg.SoundMenuSelect)

	case components.SettingsOptResolution:
		cycleResolution(s, direction)
		PlaySFX(e, cfg.SoundMenuNavigate)

	case components.SettingsOptTargetScore:
		s.TargetScoreIndex = wrap(s.TargetScoreIndex, direction, len(cfg.SettingsMenu.TargetScores))
		cfg.Match.TargetScore = targetScoreAt(s.TargetScoreIndex)
		PlaySFX(e, cfg.SoundMenuNavigate)

	case components.SettingsOptDifficulty:
		s.Difficulty = wrap(s.Difficulty, direction, len(cfg.SettingsMenu.Difficulties))
		cfg.Bot.Default = cfg.BotDifficulty(s.Difficulty)
		PlaySFX(e, cfg.SoundMenuNavigate)

	case components.SettingsOptHoldToMove:
		s.HoldToMove = !s.HoldToMove
		cfg.Input.HoldToMove = s.HoldToMove
		PlaySFX(e, cfg.SoundMenuSelect)
	}
}

// adjustVolumeStep moves from the step nearest current to its neighbour,
// stopping at either end.
func adjustVolumeStep(current float64, direction int) float64 {
	steps := cfg.SettingsMenu.VolumeSteps
	nearest := 0
	for i, step := range steps {
		if math.Abs(current-step) < math.Abs(current-steps[nearest]) {
			nearest = i
		}
	}
	return steps[min(max(nearest+direction, 0), len(steps)-1)]
}

func toggleMute(e *ecs.ECS, s *components.SettingsMenuData) {
	s.Muted = !s.Muted
	if s.Muted {
		s.PreMuteSFXVol = s.SFXVolume
		SetSFXVolume(e, 0)
	} else {
		SetSFXVolume(e, s.SFXVolume)
	}
}

func toggleFullscreen(s *components.SettingsMenuData) {
	s.Fullscreen = !s.Fullscreen
	ebiten.SetFullscreen(s.Fullscreen)
}

func cycleResolution(s *components.SettingsMenuData, direction int) {
	s.ResolutionIndex = wrap(s.ResolutionIndex, direction, len(cfg.SettingsMenu.Resolutions))

	res := cfg.SettingsMenu.Resolutions[s.ResolutionIndex]
	ebiten.SetWindowSize(res.Width, res.Height)
}

// handleSelect handles the select/enter action
func handleSelect(e *ecs.ECS, s *components.SettingsMenuData) {
	switch s.SelectedOption {
	case components.SettingsOptMute, components.SettingsOptFullscreen, components.SettingsOptHoldToMove:
		adjustValue(e, s, +1)
	case components.SettingsOptControls:
		s.ShowingControls = true
		PlaySFX(e, cfg.SoundMenuSelect)
	case components.SettingsOptBack:
		closeSettings(e, s)
	}
}

// closeSettings closes the settings menu and saves settings
func closeSettings(e *ecs.ECS, s *components.SettingsMenuData) {
	s.IsOpen = false
	PlaySFX(e, cfg.SoundMenuSelect)
	SaveCurrentSettings(s)
}

// DrawSettingsMenu renders the settings overlay.
func DrawSettingsMenu(e *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettingsMenu(e)

	if !settings.IsOpen {
		return
	}

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.Menu.BackgroundColor,
		false,
	)

	if settings.ShowingControls {
		drawControlsScreen(e, screen, width, height)
		return
	}

	fontFace := fonts.Bold.Get()
	titleFont := fonts.Title.Get()

	title := "SETTINGS"
	text.Draw(screen, title, titleFont, centeredX(title, titleFont, width), 40, cfg.Menu.TitleColor)

	const itemHeight, itemGap = 20.0, 6.0
	visible := visibleSettings(settings)
	startY := (height-float64(len(visible))*(itemHeight+itemGap))/2 + 14

	for i, opt := range visible {
		y := int(startY + float64(i)*(itemHeight+itemGap) + itemHeight)

		textColor := cfg.Pause.TextColorNormal
		if opt == settings.SelectedOption {
			textColor = cfg.Pause.TextColorSelected
		}

		label, value := getOptionDisplay(settings, opt)
		text.Draw(screen, label, fontFace, int(width/2)-150, y, textColor)
		if value != "" {
			text.Draw(screen, value, fontFace, int(width/2)+30, y, textColor)
		}
	}

	input := getOrCreateInput(e)
	hint := getSettingsHint(input.LastSource)
	hintFont := fonts.Small.Get()
	text.Draw(screen, hint, hintFont, centeredX(hint, hintFont, width), int(height)-12, cfg.Pause.TextColorNormal)
}

// drawControlsScreen renders the key mapping screen
func drawControlsScreen(e *ecs.ECS, screen *ebiten.Image, width, height float64) {
	input := getOrCreateInput(e)
	fontFace := fonts.Bold.Get()
	titleFont := fonts.Title.Get()
	smallFont := fonts.Small.Get()

	title := "CONTROLS"
	text.Draw(screen, title, titleFont, centeredX(title, titleFont, width), 40, cfg.Menu.TitleColor)

	startY := 80.0
	lineHeight := 24.0
	for i, mapping := range getControlMappings(input.LastSource, input.Pads) {
		y := int(startY + float64(i)*lineHeight)
		text.Draw(screen, mapping.Action, fontFace, int(width/2)-150, y, cfg.Pause.TextColorNormal)
		text.Draw(screen, mapping.Button, fontFace, int(width/2)+10, y, cfg.Pause.TextColorSelected)
	}

	hint := "Press Enter or Esc to go back"
	text.Draw(screen, hint, smallFont, centeredX(hint, smallFont, width), int(height)-12, cfg.Pause.TextColorNormal)
}

// controlMapping represents a single control mapping entry
type controlMapping struct {
	Action string
	Button string
}

// getControlMappings returns control mappings for the given input method.
// With two pads attached the second one takes the right paddle.
func getControlMappings(method components.InputSource, pads int) []controlMapping {
	switch method {
	case components.SourcePlayStation, components.SourceXbox:
		pause := "Start"
		if method == components.SourcePlayStation {
			pause = "Options"
		}
		right := "Left / Right arrows"
		if pads >= 2 {
			right = "Pad 2 Stick / D-Pad"
		}
		return []controlMapping{
			{"Left paddle", "Pad 1 Stick / D-Pad"},
			{"Right paddle", right},
			{"Pause", pause},
		}
	default:
		return []controlMapping{
			{"Left paddle up", "Up / W"},
			{"Left paddle down", "Down / S"},
			{"Right paddle up", "Left"},
			{"Right paddle down", "Right"},
			{"Pause", "Esc / P"},
		}
	}
}

// getSettingsHint returns the appropriate hint for settings menu
func getSettingsHint(method components.InputSource) string {
	switch method {
	case components.SourcePlayStation:
		return "D-Pad: Navigate   Left/Right: Change   Cross: Select   Circle: Back"
	case components.SourceXbox:
		return "D-Pad: Navigate   Left/Right: Change   A: Select   B: Back"
	}
	return "Arrows: Navigate   Left/Right: Change   Enter: Select   Esc: Back"
}

// getOptionDisplay returns the label and value display for an option
func getOptionDisplay(s *components.SettingsMenuData, opt components.SettingsMenuOption) (string, string) {
	switch opt {
	case components.SettingsOptSFXVolume:
		return "Volume", formatVolumeBar(s.SFXVolume)
	case components.SettingsOptMute:
		return "Mute", formatToggle(s.Muted)
	case components.SettingsOptFullscreen:
		return "Fullscreen", formatToggle(s.Fullscreen)
	case components.SettingsOptResolution:
		if s.ResolutionIndex < len(cfg.SettingsMenu.Resolutions) {
			return "Resolution", cfg.SettingsMenu.Resolutions[s.ResolutionIndex].Label
		}
		return "Resolution", "Unknown"
	case components.SettingsOptTargetScore:
		return "Play to", formatTargetScore(targetScoreAt(s.TargetScoreIndex))
	case components.SettingsOptDifficulty:
		if s.Difficulty < len(cfg.SettingsMenu.Difficulties) {
			return "CPU", cfg.SettingsMenu.Difficulties[s.Difficulty]
		}
		return "CPU", "Unknown"
	case components.SettingsOptHoldToMove:
		return "Hold to move", formatToggle(s.HoldToMove)
	case components.SettingsOptControls:
		return "Controls", ">"
	case components.SettingsOptBack:
		return "< Back", ""
	default:
		return "", ""
	}
}

// formatVolumeBar creates a visual volume bar
func formatVolumeBar(volume float64) string {
	filled := int(volume * 10)
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("|", filled), strings.Repeat(".", 10-filled), int(volume*100))
}

// formatToggle formats a boolean as On/Off
func formatToggle(value bool) string {
	if value {
		return "[X] On"
	}
	return "[ ] Off"
}

func formatTargetScore(score int) string {
	if score <= 0 {
		return "Endless"
	}
	return fmt.Sprintf("%d points", score)
}

// GetOrCreateSettingsMenu returns the singleton SettingsMenu component, creating if needed.
func GetOrCreateSettingsMenu(e *ecs.ECS) *components.SettingsMenuData {
	if _, ok := components.SettingsMenu.First(e.World); !ok {
		ent := e.World.Entry(e.World.Create(components.SettingsMenu))

		sfxVol := GetSFXVolume()
		components.SettingsMenu.SetValue(ent, components.SettingsMenuData{
			SelectedOption:   components.SettingsOptSFXVolume,
			SFXVolume:        sfxVol,
			Fullscreen:       ebiten.IsFullscreen(),
			ResolutionIndex:  cfg.SettingsMenu.DefaultResolutionIndex,
			TargetScoreIndex: targetScoreIndex(cfg.Match.TargetScore),
			Difficulty:       int(cfg.Bot.Default),
			HoldToMove:       cfg.Input.HoldToMove,
			PreMuteSFXVol:    sfxVol,
		})
	}

	ent, _ := components.SettingsMenu.First(e.World)
	return components.SettingsMenu.Get(ent)
}

// OpenSettings opens the settings menu from a specific origin
func OpenSettings(e *ecs.ECS, fromPause bool) {
	settings := GetOrCreateSettingsMenu(e)
	settings.IsOpen = true
	settings.OpenedFromPause = fromPause
	settings.SelectedOption = components.SettingsOptSFXVolume

	// Sync current values
	if !settings.Muted {
		settings.SFXVolume = GetSFXVolume()
	}
	settings.Fullscreen = ebiten.IsFullscreen()
}

// IsSettingsOpen returns true if the settings menu is currently open
func IsSettingsOpen(e *ecs.ECS) bool {
	settings := GetOrCreateSettingsMenu(e)
	return settings.IsOpen
}
