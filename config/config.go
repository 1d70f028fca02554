package config

import (
	"image/color"

	"github.com/automoto/pong/shared/session"
)

// PaddleConfig contains paddle movement values
type PaddleConfig struct {
	Speed float64 // Units per tick
}

// BallConfig contains serve and speed values for the ball
type BallConfig struct {
	ImpulseX    float64 // Horizontal serve impulse (always toward player 2)
	ImpulseYMax int     // Vertical serve impulse is drawn from [-ImpulseYMax, ImpulseYMax] \ {0}
	MaxSpeed    float64 // Speed cap so the ball cannot tunnel through a wall
}

// MatchConfig contains score and respawn values
type MatchConfig struct {
	RespawnDelay       float64 // Seconds between a goal and the next serve
	TargetScore        int     // 0 = endless rally
	ResultsDisplayTime int     // Frames to show the results before returning to the menu
}

// ArenaViewConfig controls how the table is drawn
type ArenaViewConfig struct {
	Margin          float64 // Screen pixels kept free around the table
	HUDHeight       float64 // Screen pixels reserved above the table for the score
	BackgroundColor color.RGBA
	WallColor       color.RGBA
	CenterLineColor color.RGBA
	GoalLineColor   color.RGBA
	BallColor       color.RGBA
	PaddleColors    [2]color.RGBA
	FlashColor      color.RGBA
}

// HUDConfig contains score display values
type HUDConfig struct {
	ScoreY        float64
	PopScale      float64 // Peak scale of the score digits after a goal
	PopDuration   float32 // Seconds for the pop to settle back to 1
	FlashFrames   int     // Frames a paddle stays lit after a hit
	ShakeFrames   int     // Frames the table shakes after a goal
	ShakeAmount   float64 // Max shake offset in pixels
	RespawnFormat string
}

// PauseConfig contains pause menu configuration values
type PauseConfig struct {
	OverlayColor      color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	MenuItemHeight    float64
	MenuItemGap       float64
	PauseOnBlur       bool // Pause a local match when the window loses focus
}

// MenuConfig contains main menu configuration values
type MenuConfig struct {
	BackgroundColor   color.RGBA
	TitleColor        color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	TitleY            float64
	MenuStartY        float64
	MenuItemHeight    float64
	MenuItemGap       float64
}

// NetworkConfig contains multiplayer connection values
type NetworkConfig struct {
	GameVersion     string
	MasterServerURL string
	DefaultHost     string
	DefaultPort     string
	PlayerName      string

	BrowserRefreshFrames int // Frames between automatic server list refreshes
}

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	SkipMenu bool // Skip menu and go directly to a local match
	Overlay  bool // Goal lines, paddle limits, ball velocity and the CPU target
}

// Global configuration instances
var C *Config
var Paddle PaddleConfig
var Ball BallConfig
var Match MatchConfig
var ArenaView ArenaViewConfig
var HUD HUDConfig
var Pause PauseConfig
var Menu MenuConfig
var Network NetworkConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	BrightOrange = color.RGBA{R: 255, G: 180, B: 50, A: 255}
	BrightGreen  = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	LightRed     = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	Gray         = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Paddle = PaddleConfig{
		Speed: 0.5,
	}

	Ball = BallConfig{
		ImpulseX:    12,
		ImpulseYMax: 12,
		MaxSpeed:    60,
	}

	Match = MatchConfig{
		RespawnDelay:       1.5,
		TargetScore:        0,
		ResultsDisplayTime: 240, // 4 seconds at 60fps
	}

	ArenaView = ArenaViewConfig{
		Margin:          8,
		HUDHeight:       36,
		BackgroundColor: color.RGBA{R: 10, G: 12, B: 24, A: 255},
		WallColor:       color.RGBA{R: 200, G: 200, B: 215, A: 255},
		CenterLineColor: color.RGBA{R: 70, G: 70, B: 95, A: 255},
		GoalLineColor:   color.RGBA{R: 120, G: 40, B: 40, A: 255},
		BallColor:       White,
		PaddleColors:    [2]color.RGBA{LightBlue, BrightOrange},
		FlashColor:      White,
	}

	HUD = HUDConfig{
		ScoreY:        28,
		PopScale:      1.8,
		PopDuration:   0.45,
		FlashFrames:   8,
		ShakeFrames:   12,
		ShakeAmount:   3,
		RespawnFormat: "Serve in %.1f",
	}

	Pause = PauseConfig{
		OverlayColor:      BlackOverlay,
		TextColorNormal:   White,
		TextColorSelected: BrightOrange,
		MenuItemHeight:    30,
		MenuItemGap:       15,
		PauseOnBlur:       true,
	}

	Menu = MenuConfig{
		BackgroundColor:   color.RGBA{R: 15, G: 25, B: 50, A: 255},
		TitleColor:        Orange,
		TextColorNormal:   White,
		TextColorSelected: BrightOrange,
		TitleY:            60,
		MenuStartY:        100,
		MenuItemHeight:    30,
		MenuItemGap:       10,
	}

	Network = NetworkConfig{
		GameVersion:     "0.3.0",
		MasterServerURL: "http://localhost:8080",
		DefaultHost:     "localhost",
		DefaultPort:     "7373",
		PlayerName:      "Player",

		BrowserRefreshFrames: 15 * 60,
	}

	Debug = DebugConfig{
		SkipMenu: false,
	}
}

// SessionConfig builds the headless simulation config from the globals.
func SessionConfig() session.Config {
	return session.Config{
		PaddleSpeed:      Paddle.Speed,
		ServeImpulseX:    Ball.ImpulseX,
		ServeImpulseYMax: Ball.ImpulseYMax,
		RespawnDelay:     Match.RespawnDelay,
		BallMaxSpeed:     Ball.MaxSpeed,
		TargetScore:      Match.TargetScore,
	}
}
