package main

import (
	"log"
	"sort"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
)

// ServerInfo describes a Pong server visible to clients.
type ServerInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Players     int    `json:"players"`
	MaxPlayers  int    `json:"maxPlayers"`
	Version     string `json:"version"`
	Arena       string `json:"arena"`
	TargetScore int    `json:"targetScore"`
	Score       [2]int `json:"score"`
	Match       string `json:"match"` // waiting, playing or finished
}

// TableStatus is what a heartbeat refreshes.
type TableStatus struct {
	Players int
	Score   [2]int
	Match   string
}

const matchWaiting = "waiting"

type serverRecord struct {
	ServerInfo
	LastSeen time.Time
}

// Registry is an in-memory store of active game servers with TTL-based expiry.
type Registry struct {
	mu      sync.RWMutex
	servers map[string]*serverRecord
	ttl     time.Duration
	now     func() time.Time
	stopCh  chan struct{}
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		servers: make(map[string]*serverRecord),
		ttl:     ttl,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
}

// Run expires stale servers every interval until Stop.
func (r *Registry) Run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.expire()
		}
	}
}

func (r *Registry) Stop() {
	close(r.stopCh)
}

func (r *Registry) Register(info ServerInfo) string {
	id := uuid.NewV4().String()

	info.ID = id
	if info.Match == "" {
		info.Match = matchWaiting
	}

	r.mu.Lock()
	r.servers[id] = &serverRecord{
		ServerInfo: info,
		LastSeen:   r.now(),
	}
	r.mu.Unlock()

	return id
}

// Heartbeat refreshes a listing. It reports false for unknown ids.
func (r *Registry) Heartbeat(id string, status TableStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.servers[id]
	if !ok {
		return false
	}
	rec.LastSeen = r.now()
	rec.Players = status.Players
	rec.Score = status.Score
	if status.Match != "" {
		rec.Match = status.Match
	}
	return true
}

// Unregister drops a listing right away instead of waiting for the TTL.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.servers[id]; !ok {
		return false
	}
	delete(r.servers, id)
	return true
}

// List returns the live servers, fullest first. A non-empty version keeps
// only servers that accept it.
func (r *Registry) List(version string) []ServerInfo {
	r.mu.RLock()
	result := make([]ServerInfo, 0, len(r.servers))
	for _, rec := range r.servers {
		if version != "" && rec.Version != "" && rec.Version != version {
			continue
		}
		result = append(result, rec.ServerInfo)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Players != result[j].Players {
			return result[i].Players > result[j].Players
		}
		return result[i].Name < result[j].Name
	})
	return result
}

func (r *Registry) expire() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, rec := range r.servers {
		if now.Sub(rec.LastSeen) >= r.ttl {
			log.Printf("[master] expired server %q (id=%s, last seen %s ago)",
				rec.Name, id, now.Sub(rec.LastSeen).Round(time.Second))
			delete(r.servers, id)
		}
	}
}
