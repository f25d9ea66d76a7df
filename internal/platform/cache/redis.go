package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client and pings it. addr is either host:port or a
// redis:// URL carrying credentials and a database number.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	opts, err := Options(addr)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("platform/cache: ping: %w", err)
	}

	return client, nil
}

// Options parses addr into client options.
func Options(addr string) (*redis.Options, error) {
	addr = strings.TrimSpace(addr)
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("platform/cache: parse url: %w", err)
		}
		return opts, nil
	}
	if addr == "" {
		return nil, fmt.Errorf("platform/cache: address required")
	}
	return &redis.Options{Addr: addr}, nil
}
