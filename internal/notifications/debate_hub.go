package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per user
	maxConnsPerUser = 8
	// Max total connections
	maxTotalConns = 10000
)

// DebateHub manages WebSocket connections for debate waiting rooms.
// It is room-centric: a client subscribes to the debates whose rooms it
// is viewing, and room broadcasts only reach those subscribers.
type DebateHub struct {
	mu         sync.RWMutex
	rooms      map[uint]map[*Client]struct{}
	clients    map[*Client]map[uint]struct{}
	userConns  map[uint]int
	totalConns int
}

// NewDebateHub creates a new DebateHub instance.
func NewDebateHub() *DebateHub {
	return &DebateHub{
		rooms:   make(map[uint]map[*Client]struct{}),
		clients: make(map[*Client]map[uint]struct{}),
	}
}

// Name returns a human-readable identifier for this hub.
func (h *DebateHub) Name() string { return "debate hub" }

// Register creates a Client for the connection, or errors if limits are exceeded.
func (h *DebateHub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}
	if h.userConns == nil {
		h.userConns = make(map[uint]int)
	}
	if h.userConns[userID] >= maxConnsPerUser {
		return nil, errors.New("user connection limit reached")
	}

	client := NewClient(h, conn, userID)
	h.clients[client] = make(map[uint]struct{})
	h.userConns[userID]++
	h.totalConns++
	return client, nil
}

// UnregisterClient removes the client and its room subscriptions.
func (h *DebateHub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	roomIDs, ok := h.clients[client]
	if !ok {
		return
	}
	for roomID := range roomIDs {
		if members, ok := h.rooms[roomID]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	delete(h.clients, client)
	h.userConns[client.UserID]--
	if h.userConns[client.UserID] <= 0 {
		delete(h.userConns, client.UserID)
	}
	h.totalConns--
}

// JoinRoom subscribes the client to a debate's waiting room.
func (h *DebateHub) JoinRoom(client *Client, debateID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rooms, ok := h.clients[client]
	if !ok {
		return
	}
	rooms[debateID] = struct{}{}

	if h.rooms[debateID] == nil {
		h.rooms[debateID] = make(map[*Client]struct{})
	}
	h.rooms[debateID][client] = struct{}{}
}

// LeaveRoom unsubscribes the client from a debate's waiting room.
func (h *DebateHub) LeaveRoom(client *Client, debateID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rooms, ok := h.clients[client]; ok {
		delete(rooms, debateID)
	}
	if members, ok := h.rooms[debateID]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, debateID)
		}
	}
}

// RoomSize returns the number of clients subscribed to a debate's room.
func (h *DebateHub) RoomSize(debateID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[debateID])
}

// BroadcastToRoom sends the payload to every subscriber of the debate's room.
func (h *DebateHub) BroadcastToRoom(debateID uint, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[debateID] {
		client.TrySend(payload)
	}
}

// PublishReady delivers a ready event directly to local subscribers.
// It backs single-instance deployments running without Redis; with
// Redis the Notifier publishes and StartWiring fans in.
func (h *DebateHub) PublishReady(_ context.Context, debateID uint) error {
	payload, err := json.Marshal(NewReadyEvent(debateID))
	if err != nil {
		return fmt.Errorf("marshal ready event: %w", err)
	}
	h.BroadcastToRoom(debateID, payload)
	return nil
}

// StartWiring connects the Notifier to this hub: it subscribes to the
// debate room pattern and forwards messages to matching room subscribers.
func (h *DebateHub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartDebateSubscriber(ctx, func(channel, payload string) {
		var debateID uint
		if _, err := fmt.Sscanf(channel, "debate:room:%d", &debateID); err != nil {
			log.Printf("invalid debate room channel: %s", channel)
			return
		}
		h.BroadcastToRoom(debateID, []byte(payload))
	})
}

// Shutdown gracefully closes all websocket connections.
func (h *DebateHub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if client.Conn == nil {
			continue
		}
		if err := client.Conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
			log.Printf("failed to write close message for user %d: %v", client.UserID, err)
		}
		if err := client.Conn.Close(); err != nil {
			log.Printf("failed to close websocket for user %d: %v", client.UserID, err)
		}
	}

	h.rooms = make(map[uint]map[*Client]struct{})
	h.clients = make(map[*Client]map[uint]struct{})
	h.userConns = nil
	h.totalConns = 0
	return nil
}
