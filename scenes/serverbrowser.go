package scenes

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	cfg "github.com/automoto/pong/config"
	"github.com/automoto/pong/network"
	"github.com/automoto/pong/systems"
	"github.com/automoto/pong/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type fetchResult struct {
	servers []ui.ServerEntry
	err     error
}

// ServerBrowserScene lists public tables from the master server and joins
// one, either from the list or by address.
type ServerBrowserScene struct {
	ecsWorld     *ecs.ECS
	sceneChanger SceneChanger
	browserUI    *ui.ServerBrowserUI
	netClient    *network.Client
	once         sync.Once
	shouldGoBack bool

	httpClient   *http.Client
	results      chan fetchResult
	cancelFetch  context.CancelFunc
	refreshTimer int // Frames until the next automatic refresh
}

func NewServerBrowserScene(sc SceneChanger) *ServerBrowserScene {
	return &ServerBrowserScene{
		sceneChanger: sc,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		results:      make(chan fetchResult, 1),
	}
}

func (s *ServerBrowserScene) Update() {
	s.once.Do(s.configure)

	s.ecsWorld.Update()
	s.browserUI.Update()

	select {
	case res := <-s.results:
		s.applyFetch(res)
	default:
	}

	if s.shouldGoBack {
		s.leave()
		s.sceneChanger.ChangeScene(NewMenuScene(s.sceneChanger))
		return
	}

	if s.netClient == nil {
		if s.refreshTimer--; s.refreshTimer <= 0 && s.cancelFetch == nil {
			s.fetchServers()
		}
		return
	}

	state := s.netClient.State()
	switch state {
	case network.StateJoinedGame:
		client := s.netClient
		s.netClient = nil
		s.leave()
		s.sceneChanger.ChangeScene(NewNetworkedScene(s.sceneChanger, client))
		return
	case network.StateError:
		msg := "Connection failed"
		if err := s.netClient.LastError(); err != nil {
			msg = err.Error()
		}
		s.dropConnection(msg)
	case network.StateDisconnected:
		s.dropConnection("Disconnected")
	default:
		s.browserUI.SetStatus(connectStatus(state))
	}
}

func (s *ServerBrowserScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	if s.ecsWorld == nil {
		return
	}

	s.browserUI.UI.Draw(screen)
}

func (s *ServerBrowserScene) configure() {
	s.ecsWorld = ecs.NewECS(donburi.NewWorld())
	s.ecsWorld.AddSystem(systems.UpdateAudio)

	s.browserUI = ui.NewServerBrowserUI(
		cfg.Network.DefaultHost,
		cfg.Network.DefaultPort,
		s.connect,
		func() { s.shouldGoBack = true },
		s.fetchServers,
	)

	s.fetchServers()
}

func (s *ServerBrowserScene) connect(address string, spectate bool) {
	if s.netClient != nil {
		s.netClient.Disconnect()
	}

	s.browserUI.SetStatus(connectStatus(network.StateConnecting))
	s.browserUI.SetConnecting(true)

	log.Printf("[browser] connecting to %s (spectate=%v)", address, spectate)
	s.netClient = network.NewClient()
	s.netClient.Connect(address, cfg.Network.GameVersion, cfg.Network.PlayerName, spectate)
}

func (s *ServerBrowserScene) dropConnection(msg string) {
	s.browserUI.SetStatus(msg)
	s.browserUI.SetConnecting(false)
	s.netClient.Disconnect()
	s.netClient = nil
}

// leave stops any pending query and connection before the scene changes.
func (s *ServerBrowserScene) leave() {
	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}
	if s.netClient != nil {
		s.netClient.Disconnect()
		s.netClient = nil
	}
}

func (s *ServerBrowserScene) fetchServers() {
	if s.cancelFetch != nil {
		return
	}
	s.browserUI.SetBrowseStatus("Fetching servers...")
	s.browserUI.SetRefreshing(true)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelFetch = cancel
	go func() {
		servers, err := fetchServerList(ctx, s.httpClient, cfg.Network.MasterServerURL, cfg.Network.GameVersion)
		s.results <- fetchResult{servers: servers, err: err}
	}()
}

// applyFetch runs on the update goroutine.
func (s *ServerBrowserScene) applyFetch(res fetchResult) {
	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}
	s.refreshTimer = cfg.Network.BrowserRefreshFrames
	s.browserUI.SetRefreshing(false)

	if res.err != nil {
		log.Printf("[browser] master server query failed: %v", res.err)
		s.browserUI.SetBrowseStatus("Master server unreachable")
		return
	}
	s.browserUI.SetServerList(res.servers)
	s.browserUI.SetBrowseStatus(fmt.Sprintf("%d online", len(res.servers)))
}

func connectStatus(state network.ClientState) string {
	switch state {
	case network.StateConnecting:
		return "Connecting..."
	case network.StateConnected:
		return "Connected, taking a seat..."
	case network.StateJoinedGame:
		return "Joined! Loading table..."
	default:
		return state.String()
	}
}

// fetchServerList asks the master for tables running version and orders
// them so the ones with a free seat come first.
func fetchServerList(ctx context.Context, client *http.Client, masterURL, version string) ([]ui.ServerEntry, error) {
	endpoint := masterURL + "/servers?version=" + url.QueryEscape(version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query master: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("master server returned status %d", resp.StatusCode)
	}

	var servers []ui.ServerEntry
	if err := json.NewDecoder(resp.Body).Decode(&servers); err != nil {
		return nil, fmt.Errorf("decode server list: %w", err)
	}

	joinable := servers[:0]
	for _, srv := range servers {
		if srv.Address != "" {
			joinable = append(joinable, srv)
		}
	}
	sort.SliceStable(joinable, func(i, j int) bool {
		return openSeat(joinable[i]) && !openSeat(joinable[j])
	})
	return joinable, nil
}

// openSeat reports whether a paddle is still free at the table.
func openSeat(e ui.ServerEntry) bool {
	return e.Players < 2
}
