package server

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"candidate-gateway/internal/common/logger"
)

// Throttle limits access-code attempts per client using a redis
// fixed-window counter. A nil Throttle allows everything; redis
// failures fail open.
type Throttle struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	logger logger.Logger
}

func NewThrottle(rdb *redis.Client, limit int, window time.Duration, log logger.Logger) *Throttle {
	return &Throttle{
		rdb:    rdb,
		limit:  int64(limit),
		window: window,
		logger: log.WithFields(map[string]interface{}{"component": "throttle"}),
	}
}

// Allow reports whether another attempt from this client is permitted.
func (t *Throttle) Allow(ctx context.Context, client string) bool {
	if t == nil || t.rdb == nil {
		return true
	}

	key := fmt.Sprintf("throttle:access-code:%s", client)

	count, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		t.logger.WithError(err).Warn("throttle backend unavailable, failing open", nil)
		return true
	}
	if count == 1 {
		if err := t.rdb.Expire(ctx, key, t.window).Err(); err != nil {
			t.logger.WithError(err).Warn("throttle expire failed", nil)
		}
	}
	return count <= t.limit
}
