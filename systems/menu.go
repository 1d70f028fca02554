package systems

import (
	"fmt"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// MenuRoutes are where the main menu entries lead.
type MenuRoutes struct {
	Match       func(mode components.MatchMode)
	Multiplayer func()
	Quit        func()
}

// NewUpdateMenu creates the main menu system.
func NewUpdateMenu(routes MenuRoutes) ecs.System {
	return func(e *ecs.ECS) {
		// Settings draws over the menu and owns input while open
		if IsSettingsOpen(e) {
			return
		}

		menu := GetOrCreateMenu(e)
		input := getOrCreateInput(e)

		n := len(menu.VisibleOptions)
		if n == 0 {
			return
		}

		if GetAction(input, cfg.ActionMenuUp).JustPressed {
			PlaySFX(e, cfg.SoundMenuNavigate)
			menu.SelectedIndex = wrap(menu.SelectedIndex, -1, n)
		}
		if GetAction(input, cfg.ActionMenuDown).JustPressed {
			PlaySFX(e, cfg.SoundMenuNavigate)
			menu.SelectedIndex = wrap(menu.SelectedIndex, 1, n)
		}

		if GetAction(input, cfg.ActionMenuSelect).JustPressed {
			PlaySFX(e, cfg.SoundMenuSelect)
			followMenu(e, routes, menu.VisibleOptions[menu.SelectedIndex])
			return
		}

		if GetAction(input, cfg.ActionMenuBack).JustPressed {
			routes.Quit()
		}
	}
}

func followMenu(e *ecs.ECS, routes MenuRoutes, option components.MainMenuOption) {
	switch option {
	case components.MainMenuLocal:
		routes.Match(components.MatchModeLocal)
	case components.MainMenuVersusCPU:
		routes.Match(components.MatchModeVersusCPU)
	case components.MainMenuMultiplayer:
		routes.Multiplayer()
	case components.MainMenuSettings:
		OpenSettings(e, false)
	case components.MainMenuExit:
		routes.Quit()
	}
}

// DrawMenu renders the main menu screen
func DrawMenu(e *ecs.ECS, screen *ebiten.Image) {
	menu := GetOrCreateMenu(e)

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.Menu.BackgroundColor,
		false,
	)

	titleFont := fonts.Title.Get()
	title := "PONG"
	text.Draw(screen, title, titleFont, centeredX(title, titleFont, width), int(cfg.Menu.TitleY), cfg.Menu.TitleColor)

	menuFont := fonts.Bold.Get()

	for i, option := range menu.VisibleOptions {
		y := cfg.Menu.MenuStartY + float64(i)*(cfg.Menu.MenuItemHeight+cfg.Menu.MenuItemGap)

		textColor := cfg.Menu.TextColorNormal
		if i == menu.SelectedIndex {
			textColor = cfg.Menu.TextColorSelected
		}

		label := getOptionLabel(option)
		text.Draw(screen, label, menuFont, centeredX(label, menuFont, width), int(y)+int(cfg.Menu.MenuItemHeight), textColor)
	}

	hintFont := fonts.Small.Get()
	if menu.StatsLine != "" {
		text.Draw(screen, menu.StatsLine, hintFont, centeredX(menu.StatsLine, hintFont, width), int(height)-30, cfg.Gray)
	}

	input := getOrCreateInput(e)
	hint := getMenuHint(input.LastSource, input.Pads)
	text.Draw(screen, hint, hintFont, centeredX(hint, hintFont, width), int(height)-12, cfg.Menu.TextColorNormal)
}

// getMenuHint returns the navigation hint, noting when a second gamepad
// is ready to take the right paddle.
func getMenuHint(method components.InputSource, pads int) string {
	hint := "Arrows: Navigate   Enter: Select"
	switch method {
	case components.SourcePlayStation:
		hint = "Left Stick/D-Pad: Navigate   Cross: Select"
	case components.SourceXbox:
		hint = "Left Stick/D-Pad: Navigate   A: Select"
	}
	if pads >= 2 {
		hint += "   Pad 2: right paddle"
	}
	return hint
}

// getOptionLabel returns the display text for a menu option
func getOptionLabel(option components.MainMenuOption) string {
	switch option {
	case components.MainMenuLocal:
		return "Local Match"
	case components.MainMenuVersusCPU:
		return "Versus CPU"
	case components.MainMenuMultiplayer:
		return "Multiplayer"
	case components.MainMenuSettings:
		return "Settings"
	case components.MainMenuExit:
		return "Exit"
	default:
		return ""
	}
}

// FormatStats renders lifetime stats as a single menu line; empty before the first match.
func FormatStats(s SavedStats) string {
	if s.MatchesPlayed == 0 {
		return ""
	}
	return fmt.Sprintf("Matches %d   Goals %d-%d   Longest rally %d   vs CPU %d-%d",
		s.MatchesPlayed, s.GoalsP1, s.GoalsP2, s.LongestRally, s.CPUWins, s.CPULosses)
}

// GetOrCreateMenu returns the singleton Menu component, creating if needed
func GetOrCreateMenu(e *ecs.ECS) *components.MenuData {
	if _, ok := components.Menu.First(e.World); !ok {
		visibleOptions := []components.MainMenuOption{
			components.MainMenuLocal,
			components.MainMenuVersusCPU,
			components.MainMenuMultiplayer,
			components.MainMenuSettings,
			components.MainMenuExit,
		}

		ent := e.World.Entry(e.World.Create(components.Menu))
		components.Menu.SetValue(ent, components.MenuData{
			SelectedIndex:  0,
			VisibleOptions: visibleOptions,
			StatsLine:      FormatStats(LoadStats()),
		})
	}

	ent, _ := components.Menu.First(e.World)
	return components.Menu.Get(ent)
}
