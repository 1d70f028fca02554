package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/automoto/pong/assets"
	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/session"
	"github.com/automoto/pong/systems"
	"github.com/automoto/pong/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// MatchScene plays a local match on one keyboard, optionally against the CPU.
type MatchScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	mode         components.MatchMode
	once         sync.Once
}

// NewMatchScene creates a local match scene
func NewMatchScene(sc SceneChanger, mode components.MatchMode) *MatchScene {
	return &MatchScene{sceneChanger: sc, mode: mode}
}

func (ms *MatchScene) Update() {
	ms.once.Do(ms.configure)
	ms.ecs.Update()
}

func (ms *MatchScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ms.ecs == nil {
		return
	}
	ms.ecs.Draw(screen)
}

func (ms *MatchScene) configure() {
	// Render the blips up front so the first hit does not stall
	systems.PreloadAllSFX()

	layout, err := arena.Load(assets.Arenas, assets.ClassicArena)
	if err != nil {
		log.Printf("[match] failed to load %s, using the built-in table: %v", assets.ClassicArena, err)
		layout = arena.Default()
	}

	sess := session.New(cfg.SessionConfig(), layout, nil)

	e := ecs.NewECS(donburi.NewWorld())

	backToMenu := func() {
		ms.sceneChanger.ChangeScene(NewMenuScene(ms.sceneChanger))
	}
	rematch := func() {
		log.Printf("[match] rematch")
		ms.sceneChanger.ChangeScene(NewMatchScene(ms.sceneChanger, ms.mode))
	}

	systems.ConfigurePause(e, components.MenuResume, components.MenuRematch,
		components.MenuSettings, components.MenuQuit)

	// Audio system (runs first, even when paused for menu sounds)
	e.AddSystem(systems.UpdateAudio)

	// Systems that always run
	e.AddSystem(systems.UpdateInput)
	e.AddSystem(systems.UpdateDebug)
	e.AddSystem(systems.UpdatePause)

	// The CPU issues its command before the simulation steps
	e.AddSystem(systems.WithPauseCheck(systems.UpdateBots))
	e.AddSystem(systems.NewUpdateMatch(backToMenu, rematch))
	e.AddSystem(systems.WithPauseCheck(systems.UpdateEffects))
	e.AddSystem(systems.WithPauseCheck(systems.UpdateHUD))

	// Runs while paused so the overlay can be driven
	e.AddSystem(systems.UpdateSettingsMenu)

	e.AddRenderer(cfg.Default, systems.DrawTable)
	e.AddRenderer(cfg.Default, systems.DrawPaddles)
	e.AddRenderer(cfg.Default, systems.DrawBall)
	e.AddRenderer(cfg.Default, systems.DrawHUD)
	e.AddRenderer(cfg.Default, systems.DrawDebug)
	e.AddRenderer(cfg.Default, systems.DrawPause)
	e.AddRenderer(cfg.Default, systems.DrawSettingsMenu)

	factory.CreateMatch(e, sess, ms.mode)
	ms.ecs = e

	sess.Start()
	log.Printf("[match] %s started on %s (target %d)", modeName(ms.mode), layout.Name, cfg.Match.TargetScore)
}

func modeName(mode components.MatchMode) string {
	if mode == components.MatchModeVersusCPU {
		return "versus CPU"
	}
	return "local"
}
