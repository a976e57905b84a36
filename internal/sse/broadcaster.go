package sse

import (
	"log"
	"sync"
	"time"
)

// Message is one Server-Sent Event
type Message struct {
	Event string // Event type (e.g., "state-update")
	Data  string // HTML content or data to send
}

// Hub tracks the open UI tabs listening for state changes
type Hub struct {
	mu      sync.RWMutex
	clients map[chan Message]struct{}
	timeout time.Duration
	debug   bool
}

// NewHub creates a hub that drops a message for a client that does not
// accept it within timeout
func NewHub(timeout time.Duration, debug bool) *Hub {
	return &Hub{
		clients: make(map[chan Message]struct{}),
		timeout: timeout,
		debug:   debug,
	}
}

// AddClient registers a new client channel
func (h *Hub) AddClient(client chan Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	if h.debug {
		log.Printf("sse: client added, now have %d total clients", len(h.clients))
	}
}

// RemoveClient unregisters a client channel
func (h *Hub) RemoveClient(client chan Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
	if h.debug {
		log.Printf("sse: client removed, now have %d total clients", len(h.clients))
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to all connected clients
func (h *Hub) Broadcast(event, data string) {
	h.mu.RLock()
	// Collect all client channels while holding the lock
	clients := make([]chan Message, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	// Send messages WITHOUT holding the lock
	msg := Message{Event: event, Data: data}
	sent := 0
	for _, client := range clients {
		select {
		case client <- msg:
			sent++
		case <-time.After(h.timeout):
			if h.debug {
				log.Printf("sse: timeout sending %s to client", event)
			}
		}
	}
	if h.debug {
		log.Printf("sse: sent %s to %d/%d clients", event, sent, len(clients))
	}
}
