// Package notifications provides real-time delivery of debate room events.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"agora/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// ReadyEvent is the payload pushed to waiting-room viewers when both
// sides of a debate have been claimed.
type ReadyEvent struct {
	Type     string `json:"type"` // always "update"
	DebateID uint   `json:"debate_id"`
	Status   string `json:"status"` // "ready"
	Message  string `json:"message"`
}

// NewReadyEvent builds the ready event for a debate.
func NewReadyEvent(debateID uint) ReadyEvent {
	return ReadyEvent{
		Type:     "update",
		DebateID: debateID,
		Status:   "ready",
		Message:  "Both sides have joined. The debate is ready.",
	}
}

// DebateRoomChannel derives the Redis channel name for a debate's room.
func DebateRoomChannel(debateID uint) string {
	return "debate:room:" + strconv.FormatUint(uint64(debateID), 10)
}

// Notifier publishes debate room events into Redis channels so that
// every app instance's hub sees them.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishReady sends a single ready event to the debate's room channel.
// Fire-and-forget: no delivery guarantee beyond currently-subscribed rooms.
func (n *Notifier) PublishReady(ctx context.Context, debateID uint) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(NewReadyEvent(debateID))
	if err != nil {
		return fmt.Errorf("marshal ready event: %w", err)
	}
	if err := n.rdb.Publish(ctx, DebateRoomChannel(debateID), payload).Err(); err != nil {
		return err
	}
	middleware.ReadyEventsPublished.Inc()
	return nil
}

// StartDebateSubscriber subscribes to pattern `debate:room:*` and calls
// onMessage for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartDebateSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "debate:room:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in DebateSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
