package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi/ecs"
)

const (
	settingsKey = "settings"
	statsKey    = "stats"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	SFXVolume       float64 `json:"sfxVolume"`
	Muted           bool    `json:"muted"`
	Fullscreen      bool    `json:"fullscreen"`
	ResolutionIndex int     `json:"resolutionIndex"`
	TargetScore     int     `json:"targetScore"`
	Difficulty      int     `json:"difficulty"`
	HoldToMove      bool    `json:"holdToMove"`
}

// SavedStats are lifetime totals shown on the main menu
type SavedStats struct {
	MatchesPlayed int `json:"matchesPlayed"`
	GoalsP1       int `json:"goalsP1"`
	GoalsP2       int `json:"goalsP2"`
	LongestRally  int `json:"longestRally"`
	CPUWins       int `json:"cpuWins"`   // Matches the player won against the bot
	CPULosses     int `json:"cpuLosses"` // Matches the bot won
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "pong",
	})
	if err != nil {
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

func loadItem(key string, v any) (bool, error) {
	if !gdataInitialized || gdataManager == nil {
		return false, nil
	}

	data, err := gdataManager.LoadItem(key)
	if err != nil {
		log.Printf("Warning: Could not load %s: %v", key, err)
		return false, nil
	}
	if len(data) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Warning: Could not parse saved %s: %v", key, err)
		return false, err
	}
	return true, nil
}

func saveItem(key string, v any) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Warning: Could not serialize %s: %v", key, err)
		return err
	}

	if err := gdataManager.SaveItem(key, data); err != nil {
		log.Printf("Warning: Could not save %s: %v", key, err)
		return err
	}
	return nil
}

// LoadSettings loads settings from disk. It returns nil when nothing was saved.
func LoadSettings() (*SavedSettings, error) {
	var settings SavedSettings
	ok, err := loadItem(settingsKey, &settings)
	if !ok {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	return saveItem(settingsKey, s)
}

// LoadStats loads lifetime stats, zero when nothing was saved.
func LoadStats() SavedStats {
	var stats SavedStats
	_, _ = loadItem(statsKey, &stats)
	return stats
}

// SaveStats saves lifetime stats to disk
func SaveStats(s SavedStats) error {
	return saveItem(statsKey, s)
}

// MergeMatchStats folds a finished (or abandoned) match into the totals.
func MergeMatchStats(stats SavedStats, snap session.Snapshot, mode components.MatchMode) SavedStats {
	stats.MatchesPlayed++
	stats.GoalsP1 += snap.Score.Player1
	stats.GoalsP2 += snap.Score.Player2
	if snap.LongestRally > stats.LongestRally {
		stats.LongestRally = snap.LongestRally
	}

	if mode == components.MatchModeVersusCPU && snap.State == netconfig.RallyFinished {
		switch snap.Winner {
		case netconfig.Player1:
			stats.CPUWins++
		case netconfig.Player2:
			stats.CPULosses++
		}
	}
	return stats
}

// RecordMatch merges the match into the saved stats once.
func RecordMatch(match *components.MatchData) {
	if match.Recorded {
		return
	}
	match.Recorded = true

	// A match nobody scored in is not worth a line in the stats.
	if match.Snapshot.Score.Player1+match.Snapshot.Score.Player2 == 0 {
		return
	}
	_ = SaveStats(MergeMatchStats(LoadStats(), match.Snapshot, match.Mode))
}

// SaveCurrentSettings saves the current settings from the SettingsMenuData component
func SaveCurrentSettings(s *components.SettingsMenuData) {
	_ = SaveSettings(settingsFromMenu(s))
}

func settingsFromMenu(s *components.SettingsMenuData) *SavedSettings {
	return &SavedSettings{
		SFXVolume:       s.SFXVolume,
		Muted:           s.Muted,
		Fullscreen:      s.Fullscreen,
		ResolutionIndex: s.ResolutionIndex,
		TargetScore:     targetScoreAt(s.TargetScoreIndex),
		Difficulty:      s.Difficulty,
		HoldToMove:      s.HoldToMove,
	}
}

// ApplySavedSettings applies loaded settings to the running game and the
// settings menu, if one exists in this ECS.
func ApplySavedSettings(e *ecs.ECS, saved *SavedSettings) {
	if saved == nil {
		return
	}
	ApplySavedSettingsGlobal(saved)

	if entry, ok := components.SettingsMenu.First(e.World); ok {
		settings := components.SettingsMenu.Get(entry)
		settings.SFXVolume = saved.SFXVolume
		settings.Muted = saved.Muted
		settings.Fullscreen = saved.Fullscreen
		settings.ResolutionIndex = saved.ResolutionIndex
		settings.TargetScoreIndex = targetScoreIndex(saved.TargetScore)
		settings.Difficulty = saved.Difficulty
		settings.HoldToMove = saved.HoldToMove
		if saved.Muted {
			settings.PreMuteSFXVol = saved.SFXVolume
		}
	}
}

// ApplySavedSettingsGlobal applies settings without needing an ECS reference.
// Used during startup before any scene exists.
func ApplySavedSettingsGlobal(saved *SavedSettings) {
	if saved == nil {
		return
	}

	globalSFXVolume = saved.SFXVolume
	if saved.Muted {
		globalSFXVolume = 0
	}

	cfg.Match.TargetScore = saved.TargetScore
	cfg.Input.HoldToMove = saved.HoldToMove
	if saved.Difficulty >= 0 && saved.Difficulty < len(cfg.SettingsMenu.Difficulties) {
		cfg.Bot.Default = cfg.BotDifficulty(saved.Difficulty)
	}

	ebiten.SetFullscreen(saved.Fullscreen)

	// Apply resolution (only if not fullscreen)
	if !saved.Fullscreen && saved.ResolutionIndex >= 0 && saved.ResolutionIndex < len(cfg.SettingsMenu.Resolutions) {
		res := cfg.SettingsMenu.Resolutions[saved.ResolutionIndex]
		ebiten.SetWindowSize(res.Width, res.Height)
	}
}

func targetScoreAt(i int) int {
	if i < 0 || i >= len(cfg.SettingsMenu.TargetScores) {
		return 0
	}
	return cfg.SettingsMenu.TargetScores[i]
}

// targetScoreIndex maps a saved target back to a menu index, endless when unknown.
func targetScoreIndex(score int) int {
	for i, s := range cfg.SettingsMenu.TargetScores {
		if s == score {
			return i
		}
	}
	return 0
}
