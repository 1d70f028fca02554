package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

const heartbeatInterval = 30 * time.Second

// Registration lists the server with a master server and keeps the listing
// alive with heartbeats.
type Registration struct {
	masterURL string
	serverID  string
	info      regRequest
	server    *Server
	client    *http.Client
	stopCh    chan struct{}
	stopOnce  sync.Once
}

type regRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Arena      string `json:"arena"`
	Target     int    `json:"targetScore"`
}

type regResponse struct {
	ID string `json:"id"`
}

// heartbeatRequest also carries the live score so the browser can show it.
type heartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Score   [2]int `json:"score"`
	Match   string `json:"match"`
}

// NewRegistration prepares a listing for server reachable at address.
func NewRegistration(masterURL, address string, server *Server) *Registration {
	maxPlayers := 2
	if server.opts.MaxSpectators >= 0 {
		maxPlayers += server.opts.MaxSpectators
	}
	return &Registration{
		masterURL: masterURL,
		info: regRequest{
			Name:       server.opts.Name,
			Address:    address,
			MaxPlayers: maxPlayers,
			Version:    server.opts.Version,
			Arena:      server.opts.Layout.Name,
			Target:     server.opts.Session.TargetScore,
		},
		server: server,
		client: &http.Client{Timeout: 5 * time.Second},
		stopCh: make(chan struct{}),
	}
}

func (r *Registration) Start() {
	if err := r.register(); err != nil {
		log.Printf("[registration] initial registration failed: %v", err)
	}
	go r.heartbeatLoop()
}

// Stop ends the heartbeats and removes the listing from the master.
func (r *Registration) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		if err := r.unregister(); err != nil {
			log.Printf("[registration] unregister failed: %v", err)
		}
	})
}

func (r *Registration) unregister() error {
	if r.serverID == "" {
		return nil
	}
	req, err := http.NewRequest(http.MethodDelete, r.masterURL+"/servers/"+r.serverID, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusNotFound:
		log.Printf("[registration] removed listing %s", r.serverID)
		return nil
	default:
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
}

func (r *Registration) register() error {
	req := r.info
	req.Players = r.server.PlayerCount()

	var result regResponse
	status, err := r.post("/servers/register", req, &result)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("unexpected status: %d", status)
	}

	r.serverID = result.ID
	log.Printf("[registration] registered with master (id=%s)", r.serverID)
	return nil
}

func (r *Registration) heartbeatLoop() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.sendHeartbeat(); err != nil {
				log.Printf("[registration] heartbeat failed: %v", err)
			}
		}
	}
}

func (r *Registration) sendHeartbeat() error {
	table := r.server.Status()
	status, err := r.post("/servers/heartbeat", heartbeatRequest{
		ID:      r.serverID,
		Players: r.server.PlayerCount(),
		Score:   table.Score,
		Match:   table.Match.String(),
	}, nil)
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		log.Println("[registration] master lost our registration, re-registering")
		return r.register()
	default:
		return fmt.Errorf("unexpected status: %d", status)
	}
}

// post sends body as JSON and decodes the response into out when non-nil.
func (r *Registration) post(path string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.masterURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode: %w", err)
		}
	}
	return resp.StatusCode, nil
}
