package archetypes

import (
	"github.com/automoto/pong/components"
	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Match = newArchetype(
		components.Match,
		components.HUD,
		components.ScreenShake,
	)
	Paddle = newArchetype(
		tags.Paddle,
		components.PaddleView,
		components.Flash,
	)
	Ball = newArchetype(
		tags.Ball,
		components.Trail,
	)
	Wall = newArchetype(
		tags.Wall,
		components.WallView,
	)
	Bot = newArchetype(
		tags.Bot,
		components.Bot,
	)
	// NetTable carries the score effects of a networked match; the
	// paddles and ball arrive from the server.
	NetTable = newArchetype(
		components.HUD,
		components.ScreenShake,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
