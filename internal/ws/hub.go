package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

type directMessage struct {
	userID  uuid.UUID
	payload []byte
}

// Hub tracks live clients per user. A user may hold several sockets, one
// per open tab.
type Hub struct {
	mu    sync.RWMutex
	users map[uuid.UUID]map[*Client]struct{}
	count int

	broadcast  chan []byte
	direct     chan directMessage
	register   chan *Client
	unregister chan *Client
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		users:      make(map[uuid.UUID]map[*Client]struct{}),
		broadcast:  make(chan []byte, 1024),
		direct:     make(chan directMessage, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

// Run owns client registration and fan-out until done is closed.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			h.closeAll()
			return
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case message := <-h.broadcast:
			targets := h.targets(uuid.Nil)
			h.deliver(targets, message)
			h.logger.Printf("ws=broadcast clients=%d", len(targets))
		case msg := <-h.direct:
			targets := h.targets(msg.userID)
			h.deliver(targets, msg.payload)
			h.logger.Printf("ws=direct user=%s clients=%d", msg.userID, len(targets))
		}
	}
}

func (h *Hub) add(client *Client) {
	if client == nil {
		return
	}
	h.mu.Lock()
	set, ok := h.users[client.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.users[client.userID] = set
	}
	set[client] = struct{}{}
	h.count++
	total := h.count
	h.mu.Unlock()
	h.logger.Printf("ws=connect user=%s clients=%d", client.userID, total)
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mu.Lock()
	set := h.users[client.userID]
	if _, ok := set[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.users, client.userID)
	}
	h.count--
	close(client.send)
	total := h.count
	h.mu.Unlock()
	h.logger.Printf("ws=disconnect user=%s clients=%d", client.userID, total)
}

// targets snapshots the clients of one user, or of everyone for uuid.Nil.
func (h *Hub) targets(userID uuid.UUID) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if userID != uuid.Nil {
		out := make([]*Client, 0, len(h.users[userID]))
		for c := range h.users[userID] {
			out = append(out, c)
		}
		return out
	}
	out := make([]*Client, 0, h.count)
	for _, set := range h.users {
		for c := range set {
			out = append(out, c)
		}
	}
	return out
}

// deliver drops clients whose send buffer is full rather than blocking the hub.
func (h *Hub) deliver(targets []*Client, message []byte) {
	for _, client := range targets {
		select {
		case client.send <- message:
		default:
			h.remove(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, set := range h.users {
		for c := range set {
			close(c.send)
		}
		delete(h.users, id)
	}
	h.count = 0
}

func (h *Hub) Register(client *Client) {
	if h != nil {
		h.register <- client
	}
}

func (h *Hub) Unregister(client *Client) {
	if h != nil {
		h.unregister <- client
	}
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.Printf("ws=broadcast status=dropped reason=buffer_full")
	}
}

func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	if h == nil || userID == uuid.Nil {
		return
	}
	select {
	case h.direct <- directMessage{userID: userID, payload: message}:
	default:
		h.logger.Printf("ws=direct status=dropped user=%s reason=buffer_full", userID)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}
