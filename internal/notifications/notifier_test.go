package notifications

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishReady_NilRedisIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishReady(context.Background(), 1))
}

func TestDebateRoomChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		debateID uint
		expected string
	}{
		{1, "debate:room:1"},
		{100, "debate:room:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DebateRoomChannel(tt.debateID))
	}
}

func TestNewReadyEvent_Shape(t *testing.T) {
	t.Parallel()
	event := NewReadyEvent(42)
	assert.Equal(t, "update", event.Type)
	assert.Equal(t, uint(42), event.DebateID)
	assert.Equal(t, "ready", event.Status)
	assert.NotEmpty(t, event.Message)
}

func TestNotifier_PublishReady_ReachesSubscriber(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 2)
	channels := make(chan string, 2)
	require.NoError(t, n.StartDebateSubscriber(ctx, func(channel, payload string) {
		channels <- channel
		payloads <- payload
	}))

	require.NoError(t, n.PublishReady(context.Background(), 7))

	select {
	case channel := <-channels:
		assert.Equal(t, "debate:room:7", channel)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the ready event")
	}

	var event ReadyEvent
	require.NoError(t, json.Unmarshal([]byte(<-payloads), &event))
	assert.Equal(t, "update", event.Type)
	assert.Equal(t, uint(7), event.DebateID)
	assert.Equal(t, "ready", event.Status)
}

func TestNotifier_StartDebateSubscriber_StopsOnCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var received int32
	require.NoError(t, n.StartDebateSubscriber(ctx, func(_, _ string) {
		atomic.AddInt32(&received, 1)
	}))

	require.NoError(t, n.PublishReady(context.Background(), 1))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) >= 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, n.PublishReady(context.Background(), 1))
	assert.Never(t, func() bool {
		return atomic.LoadInt32(&received) >= 2
	}, 200*time.Millisecond, 10*time.Millisecond)
}
