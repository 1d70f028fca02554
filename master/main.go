// Command master lists the public Pong servers for the in-game browser.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

func newMux(reg *Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /servers", ListServers(reg))
	mux.HandleFunc("POST /servers/register", RegisterServer(reg))
	mux.HandleFunc("POST /servers/heartbeat", Heartbeat(reg))
	mux.HandleFunc("DELETE /servers/{id}", Unregister(reg))
	mux.HandleFunc("GET /health", Health())
	return mux
}

func main() {
	port := flag.Int("port", 8080, "HTTP listen port")
	ttl := flag.Duration("ttl", 90*time.Second, "Server TTL before expiry")
	flag.Parse()

	reg := NewRegistry(*ttl)
	go reg.Run(30 * time.Second)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("[master] starting on %s (TTL=%s)", addr, *ttl)
	if err := http.ListenAndServe(addr, newMux(reg)); err != nil {
		log.Fatalf("[master] fatal: %v", err)
	}
}
