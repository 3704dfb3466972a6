package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// New returns a client for addr, or nil when addr is empty (cache disabled).
func New(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	r := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := r.Ping(pingCtx).Err(); err != nil {
		// run without a cache rather than refuse to start
		_ = r.Close()
		return nil
	}
	return r
}
