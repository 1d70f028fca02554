package config

import "github.com/automoto/pong/shared/autopilot"

// BotDifficulty affects reaction time and tracking quality
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds tuning values for the CPU paddle at a specific difficulty
type BotDifficultyConfig = autopilot.Tuning

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
	Default      BotDifficulty
}

// Bot holds CPU opponent configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Default: BotDifficultyNormal,
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy:   autopilot.Easy,
			BotDifficultyNormal: autopilot.Normal,
			BotDifficultyHard:   autopilot.Hard,
		},
	}
}
