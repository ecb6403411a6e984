package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub fans rotation events out to every connected client.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{}
	stopped    bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if _, ok := h.clients[client]; ok {
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Slow consumer; drop the event rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop gracefully shuts down the hub and closes every client.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Broadcast marshals and queues a rotation event for every connected client.
func (h *Hub) Broadcast(eventType EventType, payload interface{}) {
	event, err := NewEvent(eventType, payload)
	if err != nil {
		log.Printf("ERROR [websocket.Hub] marshal event payload: %v", err)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR [websocket.Hub] marshal event: %v", err)
		return
	}

	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("ERROR [websocket.Hub] broadcast buffer full, dropping %s", event.Type)
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
