package core

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/pong/shared/arena"
	"github.com/automoto/pong/shared/messages"
	"github.com/automoto/pong/shared/netcomponents"
	"github.com/automoto/pong/shared/session"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// Options configures a Server.
type Options struct {
	Name          string
	Version       string // Required client version, empty accepts any
	TickRate      int
	MaxSpectators int // Negative for no limit
	ResultsDelay  float64
	Session       session.Config
	Layout        *arena.Layout
	RNG           session.RandomSource
}

// Server manages the game state and client connections
type Server struct {
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport
	opts      Options

	// Only touched by the loop goroutine.
	match    *match
	ball     donburi.Entity
	paddles  [2]donburi.Entity
	scoreEnt donburi.Entity

	mu      sync.RWMutex
	roster  *roster
	clients map[string]*router.NetworkClient
	status  Status
}

// Status is the match summary other goroutines may read.
type Status struct {
	Score [2]int
	Match netcomponents.MatchState
}

// NewServer creates a new game server
func NewServer(opts Options) (*Server, error) {
	if opts.Layout == nil {
		opts.Layout = arena.Default()
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}

	world := donburi.NewWorld()

	s := &Server{
		world:   world,
		opts:    opts,
		match:   newMatch(opts.Session, opts.Layout, opts.RNG, opts.ResultsDelay),
		roster:  newRoster(opts.MaxSpectators),
		clients: make(map[string]*router.NetworkClient),
	}
	s.loop = NewGameLoop(s, opts.TickRate)

	// Set up the world for esync
	srvsync.UseEsync(world)

	if err := s.spawnEntities(); err != nil {
		return nil, err
	}

	s.setupRouterCallbacks()

	return s, nil
}

// Start runs the game loop until ctx is done and serves clients on port.
func (s *Server) Start(ctx context.Context, port uint) error {
	go s.loop.Run(ctx)

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) spawnEntities() error {
	s.ball = s.world.Create(netcomponents.NetBall)
	if err := srvsync.NetworkSync(s.world, &s.ball, srvsync.WithInterp(netcomponents.NetBall)); err != nil {
		return fmt.Errorf("sync ball: %w", err)
	}

	for i := range s.paddles {
		s.paddles[i] = s.world.Create(netcomponents.NetPaddle)
		if err := srvsync.NetworkSync(s.world, &s.paddles[i], srvsync.WithInterp(netcomponents.NetPaddle)); err != nil {
			return fmt.Errorf("sync paddle %d: %w", i+1, err)
		}
	}

	s.scoreEnt = s.world.Create(netcomponents.NetGameState)
	if err := srvsync.NetworkSync(s.world, &s.scoreEnt, netcomponents.NetGameState); err != nil {
		return fmt.Errorf("sync game state: %w", err)
	}

	s.mirror([2]string{})
	return nil
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
		s.mu.Lock()
		s.clients[client.Id()] = client
		s.mu.Unlock()
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoin(client, req)
	})

	router.On(func(client *router.NetworkClient, input messages.PaddleInput) {
		s.mu.Lock()
		s.roster.input(client.Id(), input)
		s.mu.Unlock()
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) onJoin(client *router.NetworkClient, req messages.JoinRequest) {
	if s.opts.Version != "" && req.Version != s.opts.Version {
		log.Printf("[server] rejecting %q: version %q, want %q", req.PlayerName, req.Version, s.opts.Version)
		s.send(client, messages.JoinRejected{
			Reason: fmt.Sprintf("version mismatch: server %s, client %s", s.opts.Version, req.Version),
		})
		return
	}

	s.mu.Lock()
	side, token, err := s.roster.join(client.Id(), req.PlayerName, req.ReconnectToken, req.Spectate)
	s.mu.Unlock()

	if err != nil {
		log.Printf("[server] rejecting %q: %v", req.PlayerName, err)
		s.send(client, messages.JoinRejected{Reason: err.Error()})
		return
	}

	log.Printf("[server] %q joined as %s", req.PlayerName, side)
	s.send(client, messages.JoinAccepted{
		Side:           side,
		ReconnectToken: token,
		ServerName:     s.opts.Name,
		TickRate:       s.opts.TickRate,
	})
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("[server] client %s disconnected", client.Id())
	}

	s.mu.Lock()
	delete(s.clients, client.Id())
	name := s.roster.names()
	side := s.roster.leave(client.Id())
	s.mu.Unlock()

	if i := side.Index(); i >= 0 {
		s.broadcast(messages.PlayerLeftEvent{Side: side, Name: name[i]})
	}
}

// step runs one server tick. Called from the game loop only.
func (s *Server) step(dt float64) {
	s.mu.Lock()
	actions := s.roster.takeInputs()
	ready := s.roster.full()
	names := s.roster.names()
	s.mu.Unlock()

	events := s.match.step(dt, actions, ready)
	if len(events) > 0 {
		snap := s.match.session.Snapshot()
		for _, e := range events {
			if msg := eventMessage(e, snap); msg != nil {
				s.broadcast(msg)
			}
		}
	}

	s.mirror(names)

	snap := s.match.session.Snapshot()
	s.mu.Lock()
	s.status = Status{
		Score: [2]int{snap.Score.Player1, snap.Score.Player2},
		Match: s.match.state,
	}
	s.mu.Unlock()
}

// mirror copies the session snapshot into the synced components.
func (s *Server) mirror(names [2]string) {
	snap := s.match.session.Snapshot()

	netcomponents.NetBall.SetValue(s.world.Entry(s.ball), netcomponents.NetBallData{
		X:      snap.Ball.Position.X,
		Y:      snap.Ball.Position.Y,
		VelX:   snap.Ball.Velocity.X,
		VelY:   snap.Ball.Velocity.Y,
		Radius: snap.Ball.Radius,
	})

	for i, p := range snap.Paddles {
		netcomponents.NetPaddle.SetValue(s.world.Entry(s.paddles[i]), netcomponents.NetPaddleData{
			Side:      p.Side,
			X:         p.Position.X,
			Y:         p.Position.Y,
			VelocityY: p.VelocityY,
			Width:     p.Width,
			Height:    p.Height,
			OwnerName: names[i],
		})
	}

	netcomponents.NetGameState.SetValue(s.world.Entry(s.scoreEnt), netcomponents.NetGameStateData{
		Player1:          snap.Score.Player1,
		Player2:          snap.Score.Player2,
		Rally:            snap.State,
		RespawnRemaining: snap.Respawn.Remaining,
		RespawnActive:    snap.Respawn.Active,
		Winner:           snap.Winner,
		LongestRally:     snap.LongestRally,
		MatchState:       s.match.state,
	})
}

func (s *Server) send(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Printf("[server] send to %s failed: %v", client.Id(), err)
	}
}

func (s *Server) broadcast(msg any) {
	s.mu.RLock()
	clients := make([]*router.NetworkClient, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		s.send(c, msg)
	}
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// Status returns the score and match state as of the last tick.
func (s *Server) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// PlayerCount returns the number of joined clients, spectators included
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster.count()
}
