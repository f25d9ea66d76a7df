package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// LoadTimeout bounds a shared loader call. The load is detached from the
// caller that started it because other callers may be waiting on it.
const LoadTimeout = 15 * time.Second

// Versioned caches JSON values under keys suffixed with a namespace version.
// Bumping the version orphans every key written before it; they expire by TTL.
type Versioned struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
	group     singleflight.Group
}

// NewVersioned instantiates the cache helper. A nil client disables caching.
func NewVersioned(client *redis.Client, namespace string, ttl time.Duration) *Versioned {
	return &Versioned{client: client, namespace: namespace, ttl: ttl}
}

func (c *Versioned) versionKey() string {
	return c.namespace + ":version"
}

// Version returns the current cache version, initialising when missing.
func (c *Versioned) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, c.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		// SetNX so two cold readers agree on the first version.
		if err := c.client.SetNX(ctx, c.versionKey(), 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, c.versionKey()).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey composes the cache key with the current version.
func (c *Versioned) BuildKey(ctx context.Context, parts ...string) (string, error) {
	if c == nil {
		return strings.Join(parts, ":"), nil
	}
	joined := c.namespace + ":" + strings.Join(parts, ":")
	if c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d", joined, ver), nil
}

// FetchJSON loads a cached value or populates it using the loader. Concurrent
// misses on the same key share one loader call.
func (c *Versioned) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return roundTrip(value, dest)
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return err
	}
	raw, err, _ := c.group.Do(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
		defer cancel()
		value, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(loadCtx, key, raw, c.ttl).Err(); err != nil {
			return nil, err
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(raw.([]byte), dest)
}

// Bump invalidates the cache by incrementing the namespace version.
func (c *Versioned) Bump(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	return c.client.Incr(ctx, c.versionKey()).Result()
}

// PutJSON stores value under a fixed, unversioned key.
func (c *Versioned) PutJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.namespace+":"+key, raw, ttl).Err()
}

// GetJSON reads a value written by PutJSON. found is false on a miss.
func (c *Versioned) GetJSON(ctx context.Context, key string, dest any) (found bool, err error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	payload, err := c.client.Get(ctx, c.namespace+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(payload, dest)
}

// Forget removes a key written by PutJSON.
func (c *Versioned) Forget(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.namespace+":"+key).Err()
}

func roundTrip(value, dest any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
