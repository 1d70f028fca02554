package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/automoto/pong/components"
	"github.com/automoto/pong/network"
	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/messages"
	"github.com/automoto/pong/shared/netcomponents"
	"github.com/automoto/pong/systems"
	"github.com/automoto/pong/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/automoto/pong/config"
)

type NetworkedScene struct {
	ecsWorld     *ecs.ECS
	sceneChanger SceneChanger
	netClient    *network.Client
	once         sync.Once
	presentIDs   map[esync.NetworkId]bool
}

func NewNetworkedScene(sc SceneChanger, client *network.Client) *NetworkedScene {
	return &NetworkedScene{
		sceneChanger: sc,
		netClient:    client,
		presentIDs:   make(map[esync.NetworkId]bool),
	}
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)

	state := ns.netClient.State()
	if state == network.StateDisconnected || state == network.StateError {
		log.Println("[networked] disconnected, returning to browser")
		ns.netClient.Disconnect()
		ns.sceneChanger.ChangeScene(NewServerBrowserScene(ns.sceneChanger))
		return
	}

	if pause := systems.GetOrCreatePause(ns.ecsWorld); pause.QuitRequested {
		log.Println("[networked] leaving match")
		ns.netClient.Disconnect()
		ns.sceneChanger.ChangeScene(NewMenuScene(ns.sceneChanger))
		return
	}

	if snap := ns.netClient.LatestSnapshot(); snap != nil {
		ns.applySnapshot(*snap)
	}

	ns.ecsWorld.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ns.ecsWorld == nil {
		return
	}

	ns.ecsWorld.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	systems.PreloadAllSFX()

	ns.ecsWorld = ecs.NewECS(donburi.NewWorld())
	factory.CreateNetTable(ns.ecsWorld)

	send := func(action messages.PaddleAction) error {
		if ns.netClient.State() != network.StateJoinedGame {
			return nil
		}
		return ns.netClient.SendInput(action)
	}

	ns.ecsWorld.AddSystem(systems.UpdateAudio)
	ns.ecsWorld.AddSystem(systems.UpdateInput)
	ns.ecsWorld.AddSystem(systems.UpdatePause)
	ns.ecsWorld.AddSystem(systems.NewNetworkInputSystem(send))
	ns.ecsWorld.AddSystem(systems.NewNetInterpSystem(ns.netClient.TickRate))
	ns.ecsWorld.AddSystem(systems.NewNetEventsSystem(ns.netClient))
	ns.ecsWorld.AddSystem(systems.UpdateNetTrail)
	ns.ecsWorld.AddSystem(systems.UpdateEffects)
	ns.ecsWorld.AddSystem(systems.UpdateHUD)
	ns.ecsWorld.AddSystem(systems.UpdateSettingsMenu)

	// The server's arena is the classic one; only the table outline is drawn
	// from it, everything else comes from snapshots.
	ns.ecsWorld.AddRenderer(cfg.Default, systems.NewNetworkTableRenderer(arena.Default()))
	ns.ecsWorld.AddRenderer(cfg.Default, systems.NewNetworkHUDRenderer(ns.netClient))
	ns.ecsWorld.AddRenderer(cfg.Default, systems.DrawPause)
	ns.ecsWorld.AddRenderer(cfg.Default, systems.DrawSettingsMenu)
}

func (ns *NetworkedScene) applySnapshot(snapshot esync.WorldSnapshot) {
	world := ns.ecsWorld.World

	clear(ns.presentIDs)

	for _, ent := range snapshot {
		ns.presentIDs[ent.Id] = true

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}

		entity := esync.FindByNetworkId(world, ent.Id)
		if !world.Valid(entity) {
			ctypes := componentTypesFromInstances(compData)
			if len(ctypes) == 0 {
				continue
			}
			entity = world.Create(ctypes...)

			entry := world.Entry(entity)
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, ent.Id)
			attachLocalComponents(entry, compData)
		}

		entry := world.Entry(entity)
		for _, data := range compData {
			applyComponentToEntry(entry, data)
		}
	}

	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !ns.presentIDs[*id] {
			entry.Remove()
		}
	})
}

// attachLocalComponents adds the client-only rendering state a freshly
// replicated paddle or ball needs.
func attachLocalComponents(entry *donburi.Entry, compData []any) {
	for _, data := range compData {
		switch data.(type) {
		case netcomponents.NetPaddleData:
			entry.AddComponent(components.NetInterp)
			entry.AddComponent(components.Flash)
		case netcomponents.NetBallData:
			entry.AddComponent(components.NetInterp)
			entry.AddComponent(components.Trail)
		}
	}
}

func componentTypesFromInstances(compData []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, data := range compData {
		switch data.(type) {
		case netcomponents.NetPaddleData:
			ctypes = append(ctypes, netcomponents.NetPaddle)
		case netcomponents.NetBallData:
			ctypes = append(ctypes, netcomponents.NetBall)
		case netcomponents.NetGameStateData:
			ctypes = append(ctypes, netcomponents.NetGameState)
		}
	}
	return ctypes
}

// applyComponentToEntry stores replicated state. Paddle and ball positions
// also become the next interpolation target.
func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetPaddleData:
		if !entry.HasComponent(netcomponents.NetPaddle) {
			entry.AddComponent(netcomponents.NetPaddle)
		}
		netcomponents.NetPaddle.SetValue(entry, v)
		if entry.HasComponent(components.NetInterp) {
			systems.PushInterpTarget(components.NetInterp.Get(entry), v.X, v.Y, 0, v.VelocityY)
		}
	case netcomponents.NetBallData:
		if !entry.HasComponent(netcomponents.NetBall) {
			entry.AddComponent(netcomponents.NetBall)
		}
		netcomponents.NetBall.SetValue(entry, v)
		if entry.HasComponent(components.NetInterp) {
			systems.PushInterpTarget(components.NetInterp.Get(entry), v.X, v.Y, v.VelX, v.VelY)
		}
	case netcomponents.NetGameStateData:
		if !entry.HasComponent(netcomponents.NetGameState) {
			entry.AddComponent(netcomponents.NetGameState)
		}
		netcomponents.NetGameState.SetValue(entry, v)
	}
}
