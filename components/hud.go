package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// HUDData stores score display animation state (singleton component)
type HUDData struct {
	// ScorePop animates the scorer's digits after a goal; nil when idle.
	ScorePop   [2]*gween.Sequence
	ScoreScale [2]float64

	Banner      string // Short message such as "P1 WINS"
	BannerTimer int    // Frames left to show the banner
}

var HUD = donburi.NewComponentType[HUDData]()
