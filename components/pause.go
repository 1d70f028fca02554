package components

import "github.com/yohamta/donburi"

// PauseMenuOption is an entry of the pause menu.
type PauseMenuOption int

const (
	MenuResume PauseMenuOption = iota
	MenuRematch
	MenuSettings
	MenuQuit
)

func (o PauseMenuOption) Label() string {
	switch o {
	case MenuResume:
		return "Resume"
	case MenuRematch:
		return "Rematch"
	case MenuSettings:
		return "Settings"
	case MenuQuit:
		return "Main Menu"
	}
	return ""
}

// DefaultPauseOptions is the menu of a match that cannot be restarted locally.
var DefaultPauseOptions = []PauseMenuOption{MenuResume, MenuSettings, MenuQuit}

// PauseData stores the pause state and menu selection
type PauseData struct {
	IsPaused bool
	Options  []PauseMenuOption
	Selected int // Index into Options

	// Set by the menu, consumed by the scene's match system
	RematchRequested bool
	QuitRequested    bool
}

// Open pauses with the cursor on the first option.
func (p *PauseData) Open() {
	p.IsPaused = true
	p.Selected = 0
}

// Move shifts the cursor by delta, wrapping at both ends.
func (p *PauseData) Move(delta int) {
	n := len(p.Options)
	if n == 0 {
		return
	}
	p.Selected = ((p.Selected+delta)%n + n) % n
}

// Current is the highlighted option.
func (p *PauseData) Current() PauseMenuOption {
	if p.Selected < 0 || p.Selected >= len(p.Options) {
		return MenuResume
	}
	return p.Options[p.Selected]
}

var Pause = donburi.NewComponentType[PauseData]()
