package dedup

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisFilter shares the seen-message window across bot instances. SETNX
// with a TTL gives the mark-and-check in one round trip; expiry replaces the
// in-memory pruning.
type redisFilter struct {
	client *redis.Client
	window time.Duration
}

func NewRedisFilter(client *redis.Client, window time.Duration) Filter {
	return &redisFilter{client: client, window: window}
}

func (f *redisFilter) Seen(ctx context.Context, messageID string) (bool, error) {
	ok, err := f.client.SetNX(ctx, "dedup:msg:"+messageID, 1, f.window).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}
