package main

import (
	"encoding/json"
	"log"
	"net/http"
)

const maxRequestBody = 1 << 16 // 64 KB

type registerRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Players     int    `json:"players"`
	MaxPlayers  int    `json:"maxPlayers"`
	Version     string `json:"version"`
	Arena       string `json:"arena"`
	TargetScore int    `json:"targetScore"`
}

type registerResponse struct {
	ID string `json:"id"`
}

// heartbeatRequest refreshes a listing with the table's live state.
type heartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Score   [2]int `json:"score"`
	Match   string `json:"match"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// withCORS lets browser-based tools read the listing.
func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[master] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody reads a size-limited JSON body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// ListServers answers GET /servers[?version=v].
func ListServers(reg *Registry) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, reg.List(r.URL.Query().Get("version")))
	})
}

// RegisterServer answers POST /servers/register with the new listing id.
func RegisterServer(reg *Registry) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Name == "" || req.Address == "" {
			writeError(w, http.StatusBadRequest, "name and address required")
			return
		}
		// Two seats at least; spectators come on top.
		req.MaxPlayers = max(req.MaxPlayers, 2)

		id := reg.Register(ServerInfo{
			Name:        req.Name,
			Address:     req.Address,
			Players:     req.Players,
			MaxPlayers:  req.MaxPlayers,
			Version:     req.Version,
			Arena:       req.Arena,
			TargetScore: req.TargetScore,
		})
		log.Printf("[master] registered %q at %s, arena %s, target %d (id=%s)",
			req.Name, req.Address, req.Arena, req.TargetScore, id)

		writeJSON(w, http.StatusCreated, registerResponse{ID: id})
	})
}

// Heartbeat answers POST /servers/heartbeat. 404 tells the server to
// register again.
func Heartbeat(reg *Registry) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		var req heartbeatRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if !reg.Heartbeat(req.ID, TableStatus{Players: req.Players, Score: req.Score, Match: req.Match}) {
			writeError(w, http.StatusNotFound, "unknown server")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Unregister answers DELETE /servers/{id}; servers call it on shutdown.
func Unregister(reg *Registry) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if !reg.Unregister(id) {
			writeError(w, http.StatusNotFound, "unknown server")
			return
		}
		log.Printf("[master] unregistered id=%s", id)
		w.WriteHeader(http.StatusNoContent)
	})
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
