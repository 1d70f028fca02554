package factory

import (
	"testing"

	"github.com/automoto/pong/components"
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/automoto/pong/shared/session"
	"github.com/automoto/pong/tags"
	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func countTagged(w donburi.World, tag *donburi.ComponentType[donburi.Tag]) int {
	n := 0
	tag.Each(w, func(*donburi.Entry) { n++ })
	return n
}

func TestCreateMatchSpawnsTable(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	sess := session.New(session.DefaultConfig(), arena.Default(), nil)

	CreateMatch(e, sess, components.MatchModeLocal)

	assert.Equal(t, 4, countTagged(e.World, tags.Wall))
	assert.Equal(t, 2, countTagged(e.World, tags.Paddle))
	assert.Equal(t, 1, countTagged(e.World, tags.Ball))
	assert.Equal(t, 0, countTagged(e.World, tags.Bot))

	entry, ok := components.Match.First(e.World)
	assert.True(t, ok)
	assert.Same(t, sess, components.Match.Get(entry).Session)
}

func TestCreateMatchVersusCPUAddsBot(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	sess := session.New(session.DefaultConfig(), arena.Default(), nil)

	CreateMatch(e, sess, components.MatchModeVersusCPU)

	entry, ok := components.Bot.First(e.World)
	assert.True(t, ok)
	assert.Equal(t, netconfig.Player2, components.Bot.Get(entry).Side)
}
