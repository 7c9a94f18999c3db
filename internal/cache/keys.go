package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	DebateKeyPrefix = "debate:%d"
)

const (
	UserTTL   = 5 * time.Minute
	DebateTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func DebateKey(debateID uint) string {
	return fmt.Sprintf(DebateKeyPrefix, debateID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateDebate(ctx context.Context, debateID uint) {
	Invalidate(ctx, DebateKey(debateID))
}
