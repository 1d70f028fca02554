package network

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/automoto/pong/shared/messages"
	"github.com/automoto/pong/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state          ClientState
	lastError      error
	side           netconfig.PlayerID
	reconnectToken string
	serverName     string
	tickRate       int
	sequence       uint32
	conn           *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	hitCh   chan messages.HitEvent
	goalCh  chan messages.GoalEvent
	serveCh chan messages.ServeEvent
	overCh  chan messages.MatchOverEvent
	leftCh  chan messages.PlayerLeftEvent
}

func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		hitCh:      make(chan messages.HitEvent, 8),
		goalCh:     make(chan messages.GoalEvent, 4),
		serveCh:    make(chan messages.ServeEvent, 4),
		overCh:     make(chan messages.MatchOverEvent, 2),
		leftCh:     make(chan messages.PlayerLeftEvent, 4),
	}
}

// Connect dials the server in a background goroutine and initiates the join
// handshake. A token from an earlier JoinAccepted reclaims the same paddle.
func (c *Client) Connect(address, version, playerName string, spectate bool) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	token := c.reconnectToken
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:        version,
			PlayerName:     playerName,
			ReconnectToken: token,
			Spectate:       spectate,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: side=%s server=%s tickRate=%d",
			msg.Side, msg.ServerName, msg.TickRate)
		c.mu.Lock()
		c.side = msg.Side
		if msg.ReconnectToken != "" {
			c.reconnectToken = msg.ReconnectToken
		}
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.state = StateJoinedGame
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.HitEvent) { offer(c.hitCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.GoalEvent) { offer(c.goalCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.ServeEvent) { offer(c.serveCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.MatchOverEvent) { offer(c.overCh, evt) })
	router.On(func(_ *router.NetworkClient, evt messages.PlayerLeftEvent) { offer(c.leftCh, evt) })

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Side is the paddle this client controls, PlayerNone when spectating.
func (c *Client) Side() netconfig.PlayerID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.side
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// SendInput sends a paddle action with the next sequence number. Spectators
// send nothing.
func (c *Client) SendInput(action messages.PaddleAction) error {
	c.mu.Lock()
	if c.state != StateJoinedGame || c.side == netconfig.PlayerNone {
		c.mu.Unlock()
		return nil
	}
	c.sequence++
	input := messages.PaddleInput{
		Sequence:  c.sequence,
		Action:    action,
		Timestamp: time.Now().UnixMilli(),
	}
	c.mu.Unlock()

	return c.SendMessage(input)
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainHitEvents returns all pending bounce events, non-blocking.
func (c *Client) DrainHitEvents() []messages.HitEvent {
	return drainChan(c.hitCh)
}

// DrainGoalEvents returns all pending goal events, non-blocking.
func (c *Client) DrainGoalEvents() []messages.GoalEvent {
	return drainChan(c.goalCh)
}

// DrainServeEvents returns all pending serve events, non-blocking.
func (c *Client) DrainServeEvents() []messages.ServeEvent {
	return drainChan(c.serveCh)
}

// DrainMatchOverEvents returns all pending match results, non-blocking.
func (c *Client) DrainMatchOverEvents() []messages.MatchOverEvent {
	return drainChan(c.overCh)
}

// DrainPlayerLeftEvents returns all pending departures, non-blocking.
func (c *Client) DrainPlayerLeftEvents() []messages.PlayerLeftEvent {
	return drainChan(c.leftCh)
}

// offer pushes v unless the channel is full; stale effects are not worth
// blocking a router goroutine for.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
