package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"agora/internal/middleware"
	"agora/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// clientCommand is the envelope waiting-room clients send over the socket.
type clientCommand struct {
	Type     string `json:"type"` // "join" | "leave"
	DebateID uint   `json:"debate_id"`
}

// WebSocketDebateHandler upgrades the connection and serves the waiting-room
// protocol: a client joins one or more debate rooms and receives the ready
// event when the debate's second side is claimed.
func (s *Server) WebSocketDebateHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("userID").(uint)
		if !ok || userID == 0 {
			_ = conn.WriteJSON(fiber.Map{"type": "error", "message": "Authentication required"})
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			_ = conn.WriteJSON(fiber.Map{"type": "error", "message": err.Error()})
			_ = conn.Close()
			return
		}

		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		client.IncomingHandler = s.handleDebateSocketMessage

		go client.WritePump()
		client.ReadPump()
	})
}

func (s *Server) handleDebateSocketMessage(client *notifications.Client, message []byte) {
	var cmd clientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		client.TrySend(mustJSON(fiber.Map{"type": "error", "message": "Invalid message"}))
		return
	}

	switch cmd.Type {
	case "join":
		s.handleJoinRoom(client, cmd.DebateID)
	case "leave":
		s.hub.LeaveRoom(client, cmd.DebateID)
		client.TrySend(mustJSON(fiber.Map{"type": "left", "debate_id": cmd.DebateID}))
	default:
		client.TrySend(mustJSON(fiber.Map{"type": "error", "message": "Unknown message type"}))
	}
}

func (s *Server) handleJoinRoom(client *notifications.Client, debateID uint) {
	ctx := context.Background()

	// Reject joins for debates that don't exist so a client can't park
	// on an arbitrary room.
	status, err := s.debateService.CheckStatus(ctx, debateID)
	if err != nil {
		client.TrySend(mustJSON(fiber.Map{
			"type":      "error",
			"debate_id": debateID,
			"message":   "Debate not found",
		}))
		return
	}

	s.hub.JoinRoom(client, debateID)

	middleware.Logger.Info("client joined debate room",
		slog.Uint64("user_id", uint64(client.UserID)),
		slog.Uint64("debate_id", uint64(debateID)))

	// Echo the current status on join. A client that connects after the
	// debate became ready would otherwise wait forever for an event that
	// already fired.
	client.TrySend(mustJSON(fiber.Map{
		"type":      "joined",
		"debate_id": debateID,
		"status":    status.Status,
		"message":   status.Message,
	}))
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"type":"error","message":"encoding failure"}`)
	}
	return b
}
